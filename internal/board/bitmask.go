package board

import (
	"math/bits"
	"strings"
)

// BitMask is a 64-bit grid where bit row*8+col corresponds to cell (row, col).
// Row 0 is the top of the board and column 0 its left edge.
type BitMask uint64

// Column masks
const (
	Col0 BitMask = 0x0101010101010101
	Col7 BitMask = 0x8080808080808080

	NotCol0 BitMask = ^Col0
	NotCol7 BitMask = ^Col7
)

// Direction is one of the eight compass steps, expressed as the bit
// index delta of moving one cell that way.
type Direction int8

const (
	Up        Direction = -8
	Down      Direction = 8
	Left      Direction = -1
	Right     Direction = 1
	UpLeft    Direction = -9
	UpRight   Direction = -7
	DownLeft  Direction = 7
	DownRight Direction = 9
)

// Directions lists all eight directions.
var Directions = [8]Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return -d
}

// Delta returns the (row, col) step of the direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case UpLeft:
		return -1, -1
	case UpRight:
		return -1, 1
	case DownLeft:
		return 1, -1
	case DownRight:
		return 1, 1
	}
	return 0, 0
}

// CellMask returns a mask with only (row, col) set.
func CellMask(row, col int) BitMask {
	return 1 << (row*8 + col)
}

// MaskOf returns a mask with all the given cells set.
func MaskOf(cells ...[2]int) BitMask {
	var m BitMask
	for _, c := range cells {
		m |= CellMask(c[0], c[1])
	}
	return m
}

// IsEmpty returns true if no bits are set.
func (m BitMask) IsEmpty() bool {
	return m == 0
}

// Bit returns true if (row, col) is set.
func (m BitMask) Bit(row, col int) bool {
	return (m>>(row*8+col))&1 != 0
}

// Count returns the number of set bits.
func (m BitMask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// NextBit returns a mask holding only the lowest set bit.
func (m BitMask) NextBit() BitMask {
	return m & -m
}

// PopNextBit removes and returns the lowest set bit.
func (m *BitMask) PopNextBit() BitMask {
	lsb := m.NextBit()
	*m &= *m - 1
	return lsb
}

// ToPosition returns the (row, col) of the lowest set bit.
func (m BitMask) ToPosition() (row, col int) {
	n := bits.TrailingZeros64(uint64(m))
	return n >> 3, n & 7
}

// Shift moves every bit one cell in direction d. Bits that would wrap
// around to the opposite edge are dropped.
func (m BitMask) Shift(d Direction) BitMask {
	var x BitMask
	if d < 0 {
		x = m >> uint(-d)
	} else {
		x = m << uint(d)
	}
	switch d {
	case Left, DownLeft, UpLeft:
		x &= NotCol7
	case Right, UpRight, DownRight:
		x &= NotCol0
	}
	return x
}

// ParseMask reads a mask drawn with 'X' for set cells; anything else is unset.
func ParseMask(s string) BitMask {
	var m BitMask
	for row, line := range splitRows(s) {
		col := 0
		for _, ch := range line {
			if ch == 'X' && row < 8 && col < 8 {
				m |= CellMask(row, col)
			}
			col++
		}
	}
	return m
}

// String draws the mask as eight rows of 'X' and '·'.
func (m BitMask) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if m.Bit(row, col) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('·')
			}
		}
		if row != 7 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

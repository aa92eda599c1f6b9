package board

import (
	"fmt"
	"iter"
)

// Move places a disc of Player on (Row, Col).
type Move struct {
	Player Colour
	Row    int
	Col    int
}

// NewMove creates a move for player at (row, col).
func NewMove(player Colour, row, col int) Move {
	return Move{Player: player, Row: row, Col: col}
}

// Mask returns the single-bit mask of the move's cell.
func (m Move) Mask() BitMask {
	return CellMask(m.Row, m.Col)
}

// String returns the move as a column letter and row number (e.g. "E3"
// for row 2, column 4).
func (m Move) String() string {
	return fmt.Sprintf("%c%c", 'A'+m.Col, '1'+m.Row)
}

// ParseMove parses the notation produced by Move.String, case-insensitively.
func ParseMove(s string, player Colour) (Move, error) {
	if len(s) != 2 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}

	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	col := int(c) - 'A'
	row := int(s[1]) - '1'

	if outOfRange(row, col) {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}

	return NewMove(player, row, col), nil
}

func outOfRange(row, col int) bool {
	return uint(row) >= Size || uint(col) >= Size
}

// movesOf yields one move for player per set bit of mask, lowest bit first.
func movesOf(player Colour, mask BitMask) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for mask != 0 {
			row, col := mask.PopNextBit().ToPosition()
			if !yield(Move{Player: player, Row: row, Col: col}) {
				return
			}
		}
	}
}

// MovesMask collects a move sequence into a mask.
func MovesMask(moves iter.Seq[Move]) BitMask {
	var m BitMask
	for mv := range moves {
		m |= mv.Mask()
	}
	return m
}

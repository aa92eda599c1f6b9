package board

import (
	"fmt"
	"iter"
)

// BitBoard is the compact encoding: one mask per colour. The masks never
// overlap.
type BitBoard struct {
	Blacks BitMask
	Whites BitMask
}

var _ Board[BitBoard] = BitBoard{}

func (b BitBoard) split(player Colour) (mine, theirs BitMask) {
	if player == Black {
		return b.Blacks, b.Whites
	}
	return b.Whites, b.Blacks
}

func join(player Colour, mine, theirs BitMask) BitBoard {
	if player == Black {
		return BitBoard{Blacks: mine, Whites: theirs}
	}
	return BitBoard{Blacks: theirs, Whites: mine}
}

// MoveMask returns the set of cells where player may move.
func (b BitBoard) MoveMask(player Colour) BitMask {
	mine, theirs := b.split(player)

	var moves BitMask
	for _, d := range Directions {
		moves |= FillOccluded(mine, theirs, d).Shift(d)
	}
	return moves &^ b.Occupied()
}

// Moves yields the legal moves for player, lowest bit first.
func (b BitBoard) Moves(player Colour) iter.Seq[Move] {
	return movesOf(player, b.MoveMask(player))
}

// IsValidMove reports whether m is legal on this board.
func (b BitBoard) IsValidMove(m Move) bool {
	if outOfRange(m.Row, m.Col) {
		return false
	}
	return b.MoveMask(m.Player)&m.Mask() != 0
}

// flips returns the opponent discs captured by placing a disc at sq.
func flips(mine, theirs, sq BitMask) BitMask {
	var f BitMask
	for _, d := range Directions {
		f |= Fill(mine, theirs, d) & Fill(sq, theirs, d.Reverse())
	}
	return f
}

// Apply places the disc and flips every captured run. A move on an
// occupied cell or one that flips nothing is illegal and panics.
func (b BitBoard) Apply(m Move) BitBoard {
	mine, theirs := b.split(m.Player)
	sq := m.Mask()

	f := flips(mine, theirs, sq)
	if b.Occupied()&sq != 0 || f == 0 {
		panic(fmt.Sprintf("board: illegal move %v for %v", m, m.Player))
	}

	mine |= sq | f
	theirs &^= f
	return join(m.Player, mine, theirs)
}

// Get returns the piece on (row, col).
func (b BitBoard) Get(row, col int) Piece {
	switch {
	case b.Blacks.Bit(row, col):
		return BlackDisc
	case b.Whites.Bit(row, col):
		return WhiteDisc
	default:
		return Empty
	}
}

// Set returns the board with (row, col) replaced by p.
func (b BitBoard) Set(row, col int, p Piece) BitBoard {
	bit := CellMask(row, col)
	b.Blacks &^= bit
	b.Whites &^= bit
	switch p {
	case BlackDisc:
		b.Blacks |= bit
	case WhiteDisc:
		b.Whites |= bit
	}
	return b
}

// Scores returns the disc counts of both colours.
func (b BitBoard) Scores() (black, white int) {
	return b.Blacks.Count(), b.Whites.Count()
}

// Occupied returns all discs of either colour.
func (b BitBoard) Occupied() BitMask {
	return b.Blacks | b.Whites
}

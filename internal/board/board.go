// Package board implements Othello positions, legal move generation and
// move application, using 64-bit masks and bit-parallel flood fills.
package board

import (
	"iter"

	"lukechampine.com/frand"
)

// Size is the width and height of the board.
const Size = 8

// Board is the contract shared by every board encoding. B is the
// implementing type itself, so that Apply and Set return the concrete
// value and search code can stay monomorphic.
//
// Boards are values: Apply and Set return an updated copy and never
// modify the receiver.
type Board[B any] interface {
	// Moves yields the legal moves for player in ascending row-major order.
	Moves(player Colour) iter.Seq[Move]
	IsValidMove(m Move) bool
	// Apply returns the board after m. It panics if m is not legal.
	Apply(m Move) B
	Get(row, col int) Piece
	// Set returns the board with (row, col) replaced. Meant for construction
	// and parsing only: it does not flip anything.
	Set(row, col int, p Piece) B
	Scores() (black, white int)
}

// NewBoard returns B with the four centre discs of the starting layout.
func NewBoard[B Board[B]]() B {
	var b B
	b = b.Set(3, 3, BlackDisc)
	b = b.Set(3, 4, WhiteDisc)
	b = b.Set(4, 3, WhiteDisc)
	b = b.Set(4, 4, BlackDisc)
	return b
}

// Convert copies every cell of src into a fresh board of type B2.
func Convert[B1 Board[B1], B2 Board[B2]](src B1) B2 {
	var dst B2
	for row := range Size {
		for col := range Size {
			dst = dst.Set(row, col, src.Get(row, col))
		}
	}
	return dst
}

// RandomBoard fills every cell independently with an empty cell or a disc
// of either colour, uniformly. The result is usually not reachable in play.
func RandomBoard[B Board[B]](rng *frand.RNG) B {
	pieces := [3]Piece{Empty, BlackDisc, WhiteDisc}

	var b B
	for row := range Size {
		for col := range Size {
			b = b.Set(row, col, pieces[rng.Intn(len(pieces))])
		}
	}
	return b
}

// Equal reports whether two boards, of any encodings, hold the same discs.
func Equal[B1 Board[B1], B2 Board[B2]](a B1, b B2) bool {
	for row := range Size {
		for col := range Size {
			if a.Get(row, col) != b.Get(row, col) {
				return false
			}
		}
	}
	return true
}

// CountMoves returns the number of legal moves for player.
func CountMoves[B Board[B]](b B, player Colour) int {
	n := 0
	for range b.Moves(player) {
		n++
	}
	return n
}

// HasMoves reports whether player has at least one legal move.
func HasMoves[B Board[B]](b B, player Colour) bool {
	for range b.Moves(player) {
		return true
	}
	return false
}

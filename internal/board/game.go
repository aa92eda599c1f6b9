package board

import (
	"iter"
	"strings"
)

// Game pairs a board with the colour to move.
//
// A game is terminal when NextTurn has no legal move. Game never passes on
// its own: callers check Moves and decide whether to Pass or stop.
type Game[B Board[B]] struct {
	Board    B
	NextTurn Colour
}

// Position is a game on the compact encoding, used by the search engine.
type Position = Game[BitBoard]

// NewGame returns the starting position with Black to move.
func NewGame[B Board[B]]() Game[B] {
	return Game[B]{Board: NewBoard[B](), NextTurn: Black}
}

// EmptyGame returns a game with no discs and Black to move.
func EmptyGame[B Board[B]]() Game[B] {
	return Game[B]{NextTurn: Black}
}

// NewPosition returns the starting position on the compact encoding.
func NewPosition() Position {
	return NewGame[BitBoard]()
}

// Moves yields the legal moves for player.
func (g Game[B]) Moves(player Colour) iter.Seq[Move] {
	return g.Board.Moves(player)
}

// ValidMoves returns the legal moves for player as a slice.
func (g Game[B]) ValidMoves(player Colour) []Move {
	var moves []Move
	for m := range g.Board.Moves(player) {
		moves = append(moves, m)
	}
	return moves
}

// IsValidMove reports whether m is legal on the board.
func (g Game[B]) IsValidMove(m Move) bool {
	return g.Board.IsValidMove(m)
}

// Apply returns the game after m, with the turn passed to the other colour.
// It panics if m is not legal.
func (g Game[B]) Apply(m Move) Game[B] {
	return Game[B]{
		Board:    g.Board.Apply(m),
		NextTurn: g.NextTurn.Opponent(),
	}
}

// ApplyInPlace replaces g with g.Apply(m).
func (g *Game[B]) ApplyInPlace(m Move) {
	*g = g.Apply(m)
}

// Pass returns the game with the turn handed over and the board unchanged.
func (g Game[B]) Pass() Game[B] {
	return Game[B]{Board: g.Board, NextTurn: g.NextTurn.Opponent()}
}

// Get returns the piece on (row, col).
func (g Game[B]) Get(row, col int) Piece {
	return g.Board.Get(row, col)
}

// Scores returns the disc counts of both colours.
func (g Game[B]) Scores() (black, white int) {
	return g.Board.Scores()
}

// IsTerminal reports whether the player to move has no legal move.
func (g Game[B]) IsTerminal() bool {
	return !HasMoves(g.Board, g.NextTurn)
}

// IsOver reports whether neither player can move.
func (g Game[B]) IsOver() bool {
	return !HasMoves(g.Board, Black) && !HasMoves(g.Board, White)
}

// Winner returns the colour with more discs, and false on a tie.
func (g Game[B]) Winner() (Colour, bool) {
	black, white := g.Scores()
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return Black, false
}

// String renders the board in the text format, one line per row, each
// terminated by a newline.
func (g Game[B]) String() string {
	return Render(g.Board)
}

// Render draws a board in the text format.
func Render[B Board[B]](b B) string {
	var sb strings.Builder
	for row := range Size {
		for col := range Size {
			sb.WriteRune(b.Get(row, col).Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ConvertGame copies a game onto another encoding.
func ConvertGame[B1 Board[B1], B2 Board[B2]](g Game[B1]) Game[B2] {
	return Game[B2]{Board: Convert[B1, B2](g.Board), NextTurn: g.NextTurn}
}

// Perft counts the leaf positions reached by playing every legal move
// sequence of the given length from g. A player without moves passes; a
// game that ends early counts as one leaf.
func Perft[B Board[B]](g Game[B], depth int) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	moved := false
	for m := range g.Moves(g.NextTurn) {
		moved = true
		if depth == 1 {
			nodes++
			continue
		}
		nodes += Perft(g.Apply(m), depth-1)
	}
	if moved {
		return nodes
	}

	if !HasMoves(g.Board, g.NextTurn.Opponent()) {
		return 1
	}
	return Perft(g.Pass(), depth-1)
}

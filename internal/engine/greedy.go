package engine

import "github.com/ejrh/othello/internal/board"

// Greedy looks one ply ahead and takes the move that leaves the best
// immediate material balance.
type Greedy struct{}

// NewGreedy creates a one-ply player.
func NewGreedy() *Greedy {
	return &Greedy{}
}

// ChooseMove returns the move with the best immediate evaluation.
func (*Greedy) ChooseMove(g board.Position) (board.Move, bool) {
	m, _, ok := pickBestMove(g, func(m board.Move) Score {
		return EvaluateImmediate(g.Board.Apply(m), g.NextTurn)
	})
	return m, ok
}

// Info returns an empty snapshot.
func (*Greedy) Info() SearchInfo {
	return SearchInfo{}
}

// Clone returns a new greedy player.
func (*Greedy) Clone() AI {
	return NewGreedy()
}

package engine

import "github.com/ejrh/othello/internal/board"

// Minimax searches the full game tree to a fixed depth.
type Minimax struct {
	MaxDepth int
	stats    *Stats
}

// NewMinimax creates a full-width searcher. Depth 0 looks one ply ahead,
// like Greedy; each extra level adds one opponent reply.
func NewMinimax(maxDepth int) *Minimax {
	return &Minimax{MaxDepth: maxDepth, stats: &Stats{}}
}

// ChooseMove returns the best move for the player to move.
func (s *Minimax) ChooseMove(g board.Position) (board.Move, bool) {
	m, _, ok := s.BestMove(g)
	return m, ok
}

// BestMove returns the best move together with its score from the point of
// view of the player to move.
func (s *Minimax) BestMove(g board.Position) (board.Move, Score, bool) {
	player := g.NextTurn
	s.stats.beginSearch(board.CountMoves(g.Board, player))
	defer s.stats.finishSearch()

	return pickBestMove(g, func(m board.Move) Score {
		return EvaluateToDepth(g.Apply(m), player, s.MaxDepth, s.stats)
	})
}

// Info returns a snapshot of the search counters.
func (s *Minimax) Info() SearchInfo {
	return s.stats.Snapshot()
}

// Clone returns a searcher with the same depth and fresh counters.
func (s *Minimax) Clone() AI {
	return NewMinimax(s.MaxDepth)
}

// EvaluateToDepth scores g from the point of view of player, who has just
// moved into it. The opponent is assumed to answer with the reply that is
// worst for player, depth plies deep. Each ply negates the score exactly
// once; g.NextTurn is not consulted. stats may be nil.
func EvaluateToDepth[B board.Board[B]](g board.Game[B], player board.Colour, depth int, stats *Stats) Score {
	if stats != nil {
		stats.addNode()
	}

	if depth == 0 {
		return EvaluateImmediate(g.Board, player)
	}

	opponent := player.Opponent()
	best := Infinity
	replied := false
	for m := range g.Board.Moves(opponent) {
		replied = true
		score := -EvaluateToDepth(g.Apply(m), opponent, depth-1, stats)
		if score < best {
			best = score
		}
	}

	if !replied {
		return EvaluateImmediate(g.Board, player)
	}
	return best
}

package engine

import "github.com/ejrh/othello/internal/board"

// AlphaBeta searches to a fixed depth like Minimax, skipping subtrees that
// cannot change the result. It returns the same move and score.
type AlphaBeta struct {
	MaxDepth int
	stats    *Stats
}

// NewAlphaBeta creates a pruning searcher.
func NewAlphaBeta(maxDepth int) *AlphaBeta {
	return &AlphaBeta{MaxDepth: maxDepth, stats: &Stats{}}
}

// ChooseMove returns the best move for the player to move.
func (s *AlphaBeta) ChooseMove(g board.Position) (board.Move, bool) {
	m, _, ok := s.BestMove(g)
	return m, ok
}

// BestMove returns the best move together with its score from the point of
// view of the player to move.
//
// Ties go to the last move enumerated, as in Minimax, so each root move is
// searched with alpha one below the best score so far: a move scoring equal
// to the best still gets an exact value.
func (s *AlphaBeta) BestMove(g board.Position) (board.Move, Score, bool) {
	player := g.NextTurn
	s.stats.beginSearch(board.CountMoves(g.Board, player))
	defer s.stats.finishSearch()

	alpha := -Infinity
	return pickBestMove(g, func(m board.Move) Score {
		score := AlphaBetaToDepth(g.Apply(m), player, alpha, Infinity, s.MaxDepth, s.stats)
		if score-1 > alpha {
			alpha = score - 1
		}
		return score
	})
}

// Info returns a snapshot of the search counters.
func (s *AlphaBeta) Info() SearchInfo {
	return s.stats.Snapshot()
}

// Clone returns a searcher with the same depth and fresh counters.
func (s *AlphaBeta) Clone() AI {
	return NewAlphaBeta(s.MaxDepth)
}

// AlphaBetaToDepth scores g from the point of view of player, who has just
// moved into it, like EvaluateToDepth. Scores at or below alpha come back
// as alpha and scores at or above beta as beta; scores strictly inside the
// window are exact. stats may be nil.
func AlphaBetaToDepth[B board.Board[B]](g board.Game[B], player board.Colour, alpha, beta Score, depth int, stats *Stats) Score {
	if stats != nil {
		stats.addNode()
	}

	if depth == 0 {
		return EvaluateImmediate(g.Board, player)
	}

	// The opponent maximises its own score, which is the negation of ours:
	// our window (alpha, beta) is its window (-beta, -alpha).
	opponent := player.Opponent()
	oppAlpha, oppBeta := -beta, -alpha
	replied := false
	for m := range g.Board.Moves(opponent) {
		replied = true
		score := AlphaBetaToDepth(g.Apply(m), opponent, oppAlpha, oppBeta, depth-1, stats)
		if score >= oppBeta {
			return -oppBeta
		}
		if score > oppAlpha {
			oppAlpha = score
		}
	}

	if !replied {
		return EvaluateImmediate(g.Board, player)
	}
	return -oppAlpha
}

package engine

import "github.com/ejrh/othello/internal/board"

// EvaluateImmediate scores a board from the point of view of player, in the
// negamax sense: higher is better for player. The score is the material
// difference, own discs minus opponent discs.
func EvaluateImmediate[B board.Board[B]](b B, player board.Colour) Score {
	black, white := b.Scores()
	return (black - white) * player.Sign()
}

// pickBestMove scores every legal move of the player to move with evaluate
// and returns the highest scoring one. Ties go to the move enumerated
// last. ok is false when there is no legal move.
func pickBestMove[B board.Board[B]](g board.Game[B], evaluate func(board.Move) Score) (best board.Move, bestScore Score, ok bool) {
	bestScore = -Infinity
	for m := range g.Moves(g.NextTurn) {
		score := evaluate(m)
		if !ok || score >= bestScore {
			best, bestScore, ok = m, score, true
		}
	}
	return best, bestScore, ok
}

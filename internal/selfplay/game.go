// Package selfplay plays engines against each other and surveys random
// games for branching statistics.
package selfplay

import (
	"context"
	"fmt"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

// Result describes one finished game.
type Result struct {
	Black, White int    // Final disc counts
	Turns        int    // Turns on which the player to move had a move
	TotalMoves   int    // Legal moves summed over those turns
	MaxMoves     int    // Most legal moves on a single turn
	Passes       int    // Turns passed for lack of a move
	Nodes        uint64 // Search nodes visited by both engines
	Final        board.Position
}

// Winner returns the winning colour, or false for a draw.
func (r Result) Winner() (board.Colour, bool) {
	return r.Final.Winner()
}

// DiscDiff returns black discs minus white discs.
func (r Result) DiscDiff() int {
	return r.Black - r.White
}

// BranchingFactor returns the mean number of legal moves per turn.
func (r Result) BranchingFactor() float64 {
	if r.Turns == 0 {
		return 0
	}
	return float64(r.TotalMoves) / float64(r.Turns)
}

// Options adjusts PlayGame.
type Options struct {
	// Start is the initial position; nil means the standard opening.
	Start *board.Position

	// OnTurn is called before a player with n legal moves chooses one.
	OnTurn func(g board.Position, n int)
}

// PlayGame plays black against white until neither side can move. A player
// with no move passes. The context is checked between turns.
func PlayGame(ctx context.Context, black, white engine.AI, opts Options) (Result, error) {
	g := board.NewPosition()
	if opts.Start != nil {
		g = *opts.Start
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		n := board.CountMoves(g.Board, g.NextTurn)
		if n == 0 {
			if g.IsOver() {
				break
			}
			g = g.Pass()
			res.Passes++
			continue
		}

		res.Turns++
		res.TotalMoves += n
		res.MaxMoves = max(res.MaxMoves, n)
		if opts.OnTurn != nil {
			opts.OnTurn(g, n)
		}

		ai := black
		if g.NextTurn == board.White {
			ai = white
		}
		m, ok := ai.ChooseMove(g)
		if !ok || !g.IsValidMove(m) {
			return res, fmt.Errorf("%v engine returned illegal move %v (ok=%t)", g.NextTurn, m, ok)
		}
		res.Nodes += ai.Info().LastNodes
		g = g.Apply(m)
	}

	res.Final = g
	res.Black, res.White = g.Scores()
	return res, nil
}

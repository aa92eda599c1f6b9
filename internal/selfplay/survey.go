package selfplay

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

// SurveyResult summarises random self-play.
type SurveyResult struct {
	Games      int
	Turns      int
	TotalMoves int
	Passes     int
	MaxMoves   int
	// MaxPosition is the latest position seen with MaxMoves legal moves.
	MaxPosition board.Position
}

// BranchingFactor returns the mean number of legal moves per turn.
func (s SurveyResult) BranchingFactor() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Turns)
}

// Survey plays games of uniformly random moves and records how many moves
// were available per turn. rng seeds both players; nil uses system entropy.
func Survey(ctx context.Context, games int, rng *frand.RNG) (SurveyResult, error) {
	if games < 1 {
		return SurveyResult{}, fmt.Errorf("survey needs at least one game, got %d", games)
	}
	if rng == nil {
		rng = frand.New()
	}

	var s SurveyResult
	onTurn := func(g board.Position, n int) {
		if n >= s.MaxMoves {
			if n > s.MaxMoves {
				log.Debug().Int("game", s.Games).Int("moves", n).Msg("new-max-moves")
			}
			s.MaxMoves = n
			s.MaxPosition = g
		}
	}

	for range games {
		black := engine.NewRandom(rng.Uint64n(math.MaxUint64) + 1)
		white := engine.NewRandom(rng.Uint64n(math.MaxUint64) + 1)
		r, err := PlayGame(ctx, black, white, Options{OnTurn: onTurn})
		if err != nil {
			return s, err
		}
		s.Games++
		s.Turns += r.Turns
		s.TotalMoves += r.TotalMoves
		s.Passes += r.Passes
	}

	log.Info().
		Int("games", s.Games).
		Int("max-moves", s.MaxMoves).
		Float64("branching-factor", s.BranchingFactor()).
		Msg("survey-finished")
	return s, nil
}

package selfplay

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

// Match plays a series of games between two engine configurations.
type Match struct {
	Black, White engine.Config
	Games        int
	Workers      int // Goroutines playing games; at least one is used

	// OpeningPlies random moves are played before the engines take over,
	// so that deterministic engines do not repeat one game.
	OpeningPlies int

	// Seed makes openings reproducible; game i uses Seed+i. Zero draws
	// fresh openings from system entropy.
	Seed uint64
}

// Summary aggregates the results of a match.
type Summary struct {
	Black, White string // Engine names
	Games        int
	BlackWins    int
	WhiteWins    int
	Draws        int
	DiscDiff     int // Black discs minus white discs, summed over games
	Turns        int
	TotalMoves   int
	MaxMoves     int
	Passes       int
	Nodes        uint64
}

// MeanDiscDiff returns the average final margin in Black's favour.
func (s Summary) MeanDiscDiff() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.DiscDiff) / float64(s.Games)
}

// BranchingFactor returns the mean number of legal moves per turn.
func (s Summary) BranchingFactor() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Turns)
}

// Summarize aggregates game results.
func Summarize(black, white string, results []Result) Summary {
	blackWins := lo.CountBy(results, func(r Result) bool { return r.Black > r.White })
	whiteWins := lo.CountBy(results, func(r Result) bool { return r.White > r.Black })

	s := Summary{
		Black:      black,
		White:      white,
		Games:      len(results),
		BlackWins:  blackWins,
		WhiteWins:  whiteWins,
		Draws:      len(results) - blackWins - whiteWins,
		DiscDiff:   lo.SumBy(results, Result.DiscDiff),
		Turns:      lo.SumBy(results, func(r Result) int { return r.Turns }),
		TotalMoves: lo.SumBy(results, func(r Result) int { return r.TotalMoves }),
		Passes:     lo.SumBy(results, func(r Result) int { return r.Passes }),
		Nodes:      lo.SumBy(results, func(r Result) uint64 { return r.Nodes }),
	}
	if len(results) > 0 {
		s.MaxMoves = lo.MaxBy(results, func(a, b Result) bool {
			return a.MaxMoves > b.MaxMoves
		}).MaxMoves
	}
	return s
}

// Run plays the match. Games are shared out between the workers, each of
// which plays with its own clones of the two engines. The first error
// cancels the remaining games.
func (m Match) Run(ctx context.Context) (Summary, error) {
	if m.Games < 1 {
		return Summary{}, fmt.Errorf("match needs at least one game, got %d", m.Games)
	}
	workers := min(max(m.Workers, 1), m.Games)

	black, err := engine.New(m.Black)
	if err != nil {
		return Summary{}, fmt.Errorf("black engine: %w", err)
	}
	white, err := engine.New(m.White)
	if err != nil {
		return Summary{}, fmt.Errorf("white engine: %w", err)
	}

	// Random.Clone draws from the source generator, so clones are taken
	// before any worker starts.
	blacks := make([]engine.AI, workers)
	whites := make([]engine.AI, workers)
	for w := range workers {
		blacks[w], whites[w] = black.Clone(), white.Clone()
	}

	log.Info().
		Str("black", m.Black.String()).
		Str("white", m.White.String()).
		Int("games", m.Games).
		Int("workers", workers).
		Msg("match-starting")

	results := make([]Result, m.Games)
	var next atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= m.Games {
					return nil
				}

				start, err := m.opening(ctx, i)
				if err != nil {
					return err
				}
				r, err := PlayGame(ctx, blacks[w], whites[w], Options{Start: &start})
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				results[i] = r

				log.Debug().
					Int("game", i).
					Int("worker", w).
					Int("black", r.Black).
					Int("white", r.White).
					Uint64("nodes", r.Nodes).
					Msg("game-finished")
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summarize(m.Black.String(), m.White.String(), results)
	log.Info().
		Int("black-wins", s.BlackWins).
		Int("white-wins", s.WhiteWins).
		Int("draws", s.Draws).
		Float64("mean-disc-diff", s.MeanDiscDiff()).
		Float64("branching-factor", s.BranchingFactor()).
		Msg("match-finished")
	return s, nil
}

// opening returns the start position of game i.
func (m Match) opening(ctx context.Context, i int) (board.Position, error) {
	g := board.NewPosition()
	if m.OpeningPlies == 0 {
		return g, nil
	}

	seed := uint64(0)
	if m.Seed != 0 {
		seed = m.Seed + uint64(i)
	}
	r := engine.NewRandom(seed)
	for range m.OpeningPlies {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		mv, ok := r.ChooseMove(g)
		if !ok {
			if g.IsOver() {
				break
			}
			g = g.Pass()
			continue
		}
		g = g.Apply(mv)
	}
	return g, nil
}

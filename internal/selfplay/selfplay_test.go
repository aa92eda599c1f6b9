package selfplay

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestPlayGameToEnd(t *testing.T) {
	is := is.New(t)

	turns := 0
	r, err := PlayGame(context.Background(), engine.NewGreedy(), engine.NewAlphaBeta(1), Options{
		OnTurn: func(g board.Position, n int) {
			turns++
			is.Equal(board.CountMoves(g.Board, g.NextTurn), n)
		},
	})
	is.NoErr(err)
	is.True(r.Final.IsOver())
	is.Equal(r.Turns, turns)
	is.True(r.Black+r.White <= 64)
	is.True(r.Black+r.White >= 5)
	is.True(r.TotalMoves >= r.Turns)
	is.True(r.MaxMoves >= 4)
	is.True(r.Nodes > 0) // alpha-beta counts its nodes

	black, white := r.Final.Scores()
	is.Equal(r.Black, black)
	is.Equal(r.White, white)
}

func TestPlayGameDeterministic(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()
	a, err := PlayGame(ctx, engine.NewGreedy(), engine.NewMinimax(1), Options{})
	is.NoErr(err)
	b, err := PlayGame(ctx, engine.NewGreedy(), engine.NewMinimax(1), Options{})
	is.NoErr(err)
	is.Equal(a, b)
}

func TestPlayGamePasses(t *testing.T) {
	is := is.New(t)

	// Black is to move but stuck; White takes C1 and the board is all white.
	start := board.MustParseGame[board.BitBoard]("●○·")
	r, err := PlayGame(context.Background(), engine.NewGreedy(), engine.NewGreedy(), Options{Start: &start})
	is.NoErr(err)
	is.Equal(r.Passes, 1)
	is.Equal(r.Turns, 1)
	is.Equal(r.Black, 0)
	is.Equal(r.White, 3)

	w, ok := r.Winner()
	is.True(ok)
	is.Equal(w, board.White)
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlayGame(ctx, engine.NewGreedy(), engine.NewGreedy(), Options{})
	is.True(errors.Is(err, context.Canceled))
}

// cheat always claims A1, which is never legal from the standard opening.
type cheat struct{}

func (cheat) ChooseMove(g board.Position) (board.Move, bool) {
	return board.NewMove(g.NextTurn, 0, 0), true
}
func (cheat) Info() engine.SearchInfo { return engine.SearchInfo{} }
func (cheat) Clone() engine.AI        { return cheat{} }

func TestPlayGameRejectsIllegalMove(t *testing.T) {
	is := is.New(t)

	_, err := PlayGame(context.Background(), cheat{}, engine.NewGreedy(), Options{})
	is.True(err != nil)
}

func TestSummarize(t *testing.T) {
	is := is.New(t)

	results := []Result{
		{Black: 40, White: 24, Turns: 60, TotalMoves: 500, MaxMoves: 14, Nodes: 10},
		{Black: 20, White: 44, Turns: 58, TotalMoves: 480, MaxMoves: 17, Passes: 2, Nodes: 5},
		{Black: 32, White: 32, Turns: 60, TotalMoves: 520, MaxMoves: 12},
	}
	s := Summarize("greedy", "random", results)
	is.Equal(s.Games, 3)
	is.Equal(s.BlackWins, 1)
	is.Equal(s.WhiteWins, 1)
	is.Equal(s.Draws, 1)
	is.Equal(s.DiscDiff, 16-24)
	is.Equal(s.Turns, 178)
	is.Equal(s.TotalMoves, 1500)
	is.Equal(s.MaxMoves, 17)
	is.Equal(s.Passes, 2)
	is.Equal(s.Nodes, uint64(15))
	is.Equal(s.BranchingFactor(), 1500.0/178.0)

	empty := Summarize("a", "b", nil)
	is.Equal(empty.Games, 0)
	is.Equal(empty.MeanDiscDiff(), 0.0)
}

func TestMatchRun(t *testing.T) {
	is := is.New(t)

	m := Match{
		Black:        engine.Config{Kind: engine.KindGreedy},
		White:        engine.Config{Kind: engine.KindRandom, Seed: 3},
		Games:        8,
		Workers:      3,
		OpeningPlies: 2,
		Seed:         11,
	}
	s, err := m.Run(context.Background())
	is.NoErr(err)
	is.Equal(s.Games, 8)
	is.Equal(s.BlackWins+s.WhiteWins+s.Draws, 8)
	is.Equal(s.Black, "greedy")
	is.Equal(s.White, "random")
	is.True(s.Turns > 8*20)
}

// Deterministic engines with seeded openings give the same summary however
// the games are spread over workers.
func TestMatchWorkersAgree(t *testing.T) {
	is := is.New(t)

	m := Match{
		Black:        engine.Config{Kind: engine.KindMinimax, Depth: 1},
		White:        engine.Config{Kind: engine.KindAlphaBeta, Depth: 2},
		Games:        6,
		Workers:      1,
		OpeningPlies: 4,
		Seed:         99,
	}
	single, err := m.Run(context.Background())
	is.NoErr(err)

	m.Workers = 4
	parallel, err := m.Run(context.Background())
	is.NoErr(err)
	is.Equal(parallel, single)
	is.True(single.Nodes > 0)
}

func TestMatchErrors(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()
	_, err := Match{Black: engine.Config{Kind: engine.KindGreedy}, White: engine.Config{Kind: engine.KindGreedy}}.Run(ctx)
	is.True(err != nil) // no games

	_, err = Match{
		Black: engine.Config{Kind: engine.KindMinimax, Depth: -1},
		White: engine.Config{Kind: engine.KindGreedy},
		Games: 1,
	}.Run(ctx)
	is.True(err != nil) // bad depth

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Match{
		Black: engine.Config{Kind: engine.KindGreedy},
		White: engine.Config{Kind: engine.KindGreedy},
		Games: 4,
	}.Run(cancelled)
	is.True(errors.Is(err, context.Canceled))
}

func TestSurvey(t *testing.T) {
	is := is.New(t)

	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	s, err := Survey(context.Background(), 25, rng)
	is.NoErr(err)
	is.Equal(s.Games, 25)
	is.True(s.Turns >= 25*20)
	is.True(s.MaxMoves >= 4)
	is.Equal(board.CountMoves(s.MaxPosition.Board, s.MaxPosition.NextTurn), s.MaxMoves)

	bf := s.BranchingFactor()
	is.True(bf > 1 && bf < float64(s.MaxMoves))

	_, err = Survey(context.Background(), 0, nil)
	is.True(err != nil)
}

// Command othello-selfplay plays engines against each other, or surveys
// random games, and records aggregate results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/config"
	"github.com/ejrh/othello/internal/engine"
	"github.com/ejrh/othello/internal/selfplay"
	"github.com/ejrh/othello/internal/storage"
)

var (
	configFile = flag.String("config", "", "config file (default ./othello.yaml if present)")
	black      = flag.String("black", "", "black strategy or difficulty (overrides config)")
	white      = flag.String("white", "", "white strategy or difficulty (overrides config)")
	depth      = flag.Int("depth", 0, "search depth (overrides config)")
	games      = flag.Int("games", 0, "number of games (overrides config)")
	workers    = flag.Int("workers", 0, "parallel games (overrides config)")
	seed       = flag.Uint64("seed", 0, "seed for openings and random players (overrides config)")
	dataDir    = flag.String("data-dir", "", "data directory holding the statistics database (overrides config)")
	opening    = flag.Int("opening", 4, "random plies played before the engines take over")
	survey     = flag.Bool("survey", false, "survey the branching factor of random games instead of playing a match")
	noStore    = flag.Bool("no-store", false, "do not record statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *survey {
		runSurvey(ctx, cfg)
		return
	}
	runMatch(ctx, cfg)
}

// applyFlags copies the flags given on the command line over the config.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "black":
			cfg.Black = *black
		case "white":
			cfg.White = *white
		case "depth":
			cfg.Depth = *depth
		case "games":
			cfg.Games = *games
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "data-dir":
			cfg.DataDir = *dataDir
		}
	})
}

func runSurvey(ctx context.Context, cfg *config.Config) {
	s, err := selfplay.Survey(ctx, cfg.Games, engine.NewRNG(cfg.Seed))
	if err != nil {
		log.Error().Err(err).Msg("survey-failed")
		return
	}

	fmt.Printf("Average branching factor was %.2f (%d moves / %d turns, %d passes)\n",
		s.BranchingFactor(), s.TotalMoves, s.Turns, s.Passes)
	fmt.Printf("Most moves available: %d, %v to move in\n%v", s.MaxMoves, s.MaxPosition.NextTurn, s.MaxPosition)
}

func runMatch(ctx context.Context, cfg *config.Config) {
	blackCfg, err := enginePlayer(cfg, board.Black)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid black player")
	}
	whiteCfg, err := enginePlayer(cfg, board.White)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid white player")
	}

	m := selfplay.Match{
		Black:        blackCfg,
		White:        whiteCfg,
		Games:        cfg.Games,
		Workers:      cfg.Workers,
		OpeningPlies: *opening,
		Seed:         cfg.Seed,
	}
	s, err := m.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("match-failed")
		return
	}

	fmt.Printf("%s vs %s: %d games, black %d, white %d, drawn %d\n",
		s.Black, s.White, s.Games, s.BlackWins, s.WhiteWins, s.Draws)
	fmt.Printf("Mean disc difference %+.2f, branching factor %.2f, %d nodes\n",
		s.MeanDiscDiff(), s.BranchingFactor(), s.Nodes)

	if *noStore {
		return
	}
	if err := record(cfg.DataDir, s); err != nil {
		log.Error().Err(err).Msg("could not record statistics")
	}
}

func enginePlayer(cfg *config.Config, colour board.Colour) (engine.Config, error) {
	ecfg, human, err := cfg.Player(colour)
	if err != nil {
		return engine.Config{}, err
	}
	if human {
		return engine.Config{}, fmt.Errorf("self-play needs an engine for %v", colour)
	}
	return ecfg, nil
}

func record(dir string, s selfplay.Summary) error {
	store, err := storage.OpenDataDir(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	total, err := store.RecordMatch(storage.PairingKey(s.Black, s.White), storage.MatchStats{
		Games:      s.Games,
		BlackWins:  s.BlackWins,
		WhiteWins:  s.WhiteWins,
		Draws:      s.Draws,
		DiscDiff:   s.DiscDiff,
		Turns:      s.Turns,
		TotalMoves: s.TotalMoves,
		Nodes:      int64(s.Nodes),
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("games", total.Games).
		Float64("black-win-rate", total.BlackWinRate()).
		Float64("branching-factor", total.BranchingFactor()).
		Msg("statistics-recorded")
	return nil
}

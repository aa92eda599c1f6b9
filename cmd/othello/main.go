// Command othello runs the text protocol on stdin and stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/config"
	"github.com/ejrh/othello/internal/engine"
	"github.com/ejrh/othello/internal/protocol"
	"github.com/ejrh/othello/internal/storage"
)

var (
	configFile = flag.String("config", "", "config file (default ./othello.yaml if present)")
	strategy   = flag.String("strategy", "", "engine strategy (random, greedy, minimax, alphabeta) or difficulty (easy, medium, hard)")
	depth      = flag.Int("depth", -1, "search depth (overrides config)")
	resume     = flag.Bool("resume", false, "start with the engine saved by the previous session")
	noStore    = flag.Bool("no-store", false, "do not read or write saved preferences")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.Info().Str("path", profilePath).Msg("cpu-profiling-enabled")
	}

	var store *storage.Storage
	if !*noStore {
		store, err = storage.OpenDataDir(cfg.DataDir)
		if err != nil {
			log.Warn().Err(err).Msg("preferences unavailable")
		} else {
			defer store.Close()
		}
	}

	ecfg, err := engineConfig(cfg, store)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid engine")
	}

	h, err := protocol.New(ecfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid engine")
	}
	log.Info().Str("engine", ecfg.String()).Msg("protocol-ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := h.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("protocol-failed")
	}

	if store != nil {
		savePreferences(store, h.Config())
	}
}

// engineConfig picks the engine: the strategy flag first, then saved
// preferences when resuming, then the first non-human player in the config.
// The depth flag applies on top of any of them.
func engineConfig(cfg *config.Config, store *storage.Storage) (engine.Config, error) {
	var (
		ecfg  engine.Config
		human bool
		err   error
	)
	switch {
	case *strategy != "":
		ecfg, human, err = cfg.Engine(*strategy)
		if human {
			return engine.Config{}, errors.New("the protocol needs an engine strategy")
		}
	case *resume && store != nil:
		var prefs *storage.Preferences
		if prefs, err = store.LoadPreferences(); err == nil {
			ecfg, err = prefs.Config()
		}
	default:
		ecfg, human, err = cfg.Player(board.White)
		if err == nil && human {
			ecfg, human, err = cfg.Player(board.Black)
		}
		if err == nil && human {
			ecfg, _, err = cfg.Engine(engine.KindAlphaBeta.String())
		}
	}
	if err != nil {
		return engine.Config{}, err
	}

	if *depth >= 0 {
		ecfg.Depth = *depth
	}
	return ecfg, nil
}

func savePreferences(store *storage.Storage, ecfg engine.Config) {
	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Warn().Err(err).Msg("could not load preferences")
		return
	}
	prefs.SetConfig(ecfg)
	if err := store.SavePreferences(prefs); err != nil {
		log.Warn().Err(err).Msg("could not save preferences")
	}
}

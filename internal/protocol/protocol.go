// Package protocol implements a line-based text protocol for driving the
// engines, in the manner of UCI.
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// asciiPieces lets boards be typed without the disc characters.
var asciiPieces = strings.NewReplacer(
	"x", "○", "X", "○", "b", "○", "B", "○",
	"o", "●", "O", "●", "w", "●", "W", "●",
	".", "·", "-", "·",
)

// Handler reads commands and writes responses.
type Handler struct {
	out  io.Writer
	game board.Position
	cfg  engine.Config
	ai   engine.AI
}

// New creates a handler playing with the engine described by cfg.
func New(cfg engine.Config, out io.Writer) (*Handler, error) {
	ai, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{
		out:  out,
		game: board.NewPosition(),
		cfg:  cfg,
		ai:   ai,
	}, nil
}

// Position returns the current position.
func (h *Handler) Position() board.Position {
	return h.game
}

// Config returns the current engine configuration.
func (h *Handler) Config() engine.Config {
	return h.cfg
}

// Run executes commands from in until quit, end of input or cancellation.
func (h *Handler) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := h.Execute(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			log.Debug().Err(err).Msg("command-failed")
			h.printf("error %v\n", err)
		}
	}
	return scanner.Err()
}

// Execute runs one command line. Blank lines are ignored.
func (h *Handler) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]
	log.Debug().Str("cmd", cmd).Strs("args", args).Msg("protocol-command")

	switch cmd {
	case "othello":
		h.handleHello()
	case "isready":
		h.printf("readyok\n")
	case "new":
		h.game = board.NewPosition()
	case "position":
		return h.handlePosition(args)
	case "moves":
		h.handleMoves()
	case "play":
		if len(args) != 1 {
			return errors.New("usage: play <move>")
		}
		return h.play(args[0])
	case "pass":
		return h.play("pass")
	case "go":
		return h.handleGo(args)
	case "setoption":
		return h.handleSetOption(args)
	case "d":
		h.handleDisplay()
	case "perft":
		return h.handlePerft(args)
	case "quit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (h *Handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

// handleHello responds to the "othello" command.
func (h *Handler) handleHello() {
	h.printf("id name othello\n")
	h.printf("option name Strategy type combo default %s vars %s\n", h.cfg.Kind, strings.Join(engine.KindNames(), " "))
	h.printf("option name Depth type spin default %d min 0\n", h.cfg.Depth)
	h.printf("option name Seed type spin default %d min 0\n", h.cfg.Seed)
	h.printf("option name Difficulty type combo vars easy medium hard\n")
	h.printf("othellook\n")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves E3 F5
//   - position board <row>/<row>/... <black|white>
//   - position board <row>/<row>/... <black|white> moves E3
func (h *Handler) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|board ...")
	}

	var (
		g    board.Position
		rest []string
	)
	switch args[0] {
	case "startpos":
		g = board.NewPosition()
		rest = args[1:]
	case "board":
		if len(args) < 3 {
			return errors.New("usage: position board <rows> <black|white>")
		}
		b, err := board.ParseBoard[board.BitBoard](strings.ReplaceAll(asciiPieces.Replace(args[1]), "/", "\n"))
		if err != nil {
			return err
		}
		turn, ok := board.ParseColour(args[2])
		if !ok {
			return fmt.Errorf("invalid colour %q", args[2])
		}
		g = board.Position{Board: b, NextTurn: turn}
		rest = args[3:]
	default:
		return fmt.Errorf("unknown position type %q", args[0])
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			return fmt.Errorf("unexpected %q", rest[0])
		}
		for _, s := range rest[1:] {
			next, err := applyMove(g, s)
			if err != nil {
				return err
			}
			g = next
		}
	}

	h.game = g
	return nil
}

// applyMove plays a move, or "pass" for a player without one.
func applyMove(g board.Position, s string) (board.Position, error) {
	if strings.EqualFold(s, "pass") {
		if !g.IsTerminal() {
			return g, fmt.Errorf("%v cannot pass with moves available", g.NextTurn)
		}
		return g.Pass(), nil
	}

	m, err := board.ParseMove(s, g.NextTurn)
	if err != nil {
		return g, err
	}
	if !g.IsValidMove(m) {
		return g, fmt.Errorf("illegal move %v", m)
	}
	return g.Apply(m), nil
}

func (h *Handler) play(s string) error {
	g, err := applyMove(h.game, s)
	if err != nil {
		return err
	}
	h.game = g
	return nil
}

func (h *Handler) handleMoves() {
	moves := h.game.ValidMoves(h.game.NextTurn)
	if len(moves) == 0 {
		h.printf("moves none\n")
		return
	}

	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	h.printf("moves %s\n", strings.Join(names, " "))
}

// handleGo searches the current position and reports the chosen move
// without playing it. "go depth N" searches with depth N this time only.
func (h *Handler) handleGo(args []string) error {
	ai := h.ai
	if len(args) > 0 {
		if len(args) != 2 || args[0] != "depth" {
			return errors.New("usage: go [depth N]")
		}
		depth, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid depth %q", args[1])
		}
		cfg := h.cfg
		cfg.Depth = depth
		if ai, err = engine.New(cfg); err != nil {
			return err
		}
	}

	m, ok := ai.ChooseMove(h.game)
	info := ai.Info()
	h.printf("info nodes %d total %d choices %d\n", info.LastNodes, info.TotalNodes, info.LastChoices)
	if !ok {
		h.printf("bestmove pass\n")
		return nil
	}
	h.printf("bestmove %s\n", m)
	return nil
}

// handleSetOption applies "setoption name <name> [value <value>]". Names
// and values may contain spaces.
func (h *Handler) handleSetOption(args []string) error {
	rest, ok := strings.CutPrefix(strings.Join(args, " "), "name ")
	if !ok {
		return errors.New("usage: setoption name <name> value <value>")
	}
	name, value, _ := strings.Cut(rest, " value ")
	name = strings.TrimSpace(name)

	cfg := h.cfg
	switch strings.ToLower(name) {
	case "strategy":
		kind, err := engine.ParseKind(value)
		if err != nil {
			return err
		}
		cfg.Kind = kind
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid depth %q", value)
		}
		cfg.Depth = depth
	case "seed":
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q", value)
		}
		cfg.Seed = seed
	case "difficulty":
		d, err := engine.ParseDifficulty(value)
		if err != nil {
			return err
		}
		cfg = cfg.WithDifficulty(d)
	default:
		return fmt.Errorf("unknown option %q", name)
	}

	ai, err := engine.New(cfg)
	if err != nil {
		return err
	}
	h.cfg, h.ai = cfg, ai
	log.Debug().Str("engine", cfg.String()).Msg("engine-configured")
	return nil
}

// handleDisplay prints the board, the scores and the side to move.
func (h *Handler) handleDisplay() {
	black, white := h.game.Scores()
	h.printf("%s", h.game)
	h.printf("score black %d white %d\n", black, white)
	if h.game.IsOver() {
		h.printf("gameover\n")
		return
	}
	h.printf("turn %s\n", strings.ToLower(h.game.NextTurn.String()))
}

func (h *Handler) handlePerft(args []string) error {
	depth := 5
	if len(args) > 0 {
		var err error
		if depth, err = strconv.Atoi(args[0]); err != nil || depth < 0 {
			return fmt.Errorf("invalid depth %q", args[0])
		}
	}

	h.printf("nodes %d\n", board.Perft(h.game, depth))
	return nil
}

// Package engine chooses moves for Othello positions: random, one-ply
// greedy, negamax to a fixed depth, and negamax with alpha-beta pruning.
package engine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/ejrh/othello/internal/board"
)

// Score is a position value. Higher is better for the player it is computed for.
type Score = int

// Infinity bounds every score the heuristic can produce.
const Infinity Score = 30000

// AI picks moves. Implementations are not safe for concurrent use; give
// each goroutine its own Clone.
type AI interface {
	// ChooseMove returns a move for the player to move, and false exactly
	// when that player has no legal move.
	ChooseMove(g board.Position) (board.Move, bool)
	// Info returns a snapshot of the search counters.
	Info() SearchInfo
	// Clone returns an independent copy with zeroed counters.
	Clone() AI
}

// Kind selects a strategy.
type Kind int

const (
	KindRandom Kind = iota
	KindGreedy
	KindMinimax
	KindAlphaBeta
)

var kindNames = map[Kind]string{
	KindRandom:    "random",
	KindGreedy:    "greedy",
	KindMinimax:   "minimax",
	KindAlphaBeta: "alphabeta",
}

// String returns the strategy name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a strategy name, case-insensitively. "immediate" is
// accepted for greedy.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "immediate" {
		return KindGreedy, nil
	}
	if k, ok := lo.FindKey(kindNames, s); ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want one of %s)", s, strings.Join(KindNames(), ", "))
}

// KindNames lists the strategy names in Kind order.
func KindNames() []string {
	return lo.Map([]Kind{KindRandom, KindGreedy, KindMinimax, KindAlphaBeta}, func(k Kind, _ int) string {
		return k.String()
	})
}

// Config describes an engine.
type Config struct {
	Kind  Kind
	Depth int // Search depth for minimax and alpha-beta; 0 is one ply
	Seed  uint64
}

// String returns e.g. "alphabeta(4)".
func (c Config) String() string {
	switch c.Kind {
	case KindMinimax, KindAlphaBeta:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Depth)
	}
	return c.Kind.String()
}

// Difficulty is a named engine preset.
type Difficulty int

const (
	Easy   Difficulty = iota // one ply
	Medium                   // 3 ply alpha-beta
	Hard                     // 5 ply alpha-beta
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
}

// DifficultySettings maps difficulty to engine configuration.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {Kind: KindGreedy},
	Medium: {Kind: KindAlphaBeta, Depth: 3},
	Hard:   {Kind: KindAlphaBeta, Depth: 5},
}

func (d Difficulty) String() string {
	if s, ok := difficultyNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty parses easy, medium or hard, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	if d, ok := lo.FindKey(difficultyNames, strings.ToLower(strings.TrimSpace(s))); ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// WithDifficulty returns the preset for d, keeping c's seed.
func (c Config) WithDifficulty(d Difficulty) Config {
	preset := DifficultySettings[d]
	preset.Seed = c.Seed
	return preset
}

// New builds the engine described by cfg.
func New(cfg Config) (AI, error) {
	if cfg.Depth < 0 {
		return nil, fmt.Errorf("invalid search depth %d", cfg.Depth)
	}

	switch cfg.Kind {
	case KindRandom:
		return NewRandom(cfg.Seed), nil
	case KindGreedy:
		return NewGreedy(), nil
	case KindMinimax:
		return NewMinimax(cfg.Depth), nil
	case KindAlphaBeta:
		return NewAlphaBeta(cfg.Depth), nil
	}
	return nil, fmt.Errorf("unknown strategy kind %d", int(cfg.Kind))
}

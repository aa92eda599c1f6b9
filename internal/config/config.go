// Package config loads settings for the othello commands from defaults, an
// optional config file and OTHELLO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ejrh/othello/internal/board"
	"github.com/ejrh/othello/internal/engine"
)

const envPrefix = "OTHELLO"

// Human is the player name for moves read from the protocol instead of
// chosen by an engine.
const Human = "human"

// Config holds the command settings.
type Config struct {
	Black    string `mapstructure:"black"`
	White    string `mapstructure:"white"`
	Depth    int    `mapstructure:"depth"`
	Seed     uint64 `mapstructure:"seed"`
	Games    int    `mapstructure:"games"`
	Workers  int    `mapstructure:"workers"`
	DataDir  string `mapstructure:"data_dir"`
	LogLevel string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("black", Human)
	v.SetDefault("white", engine.KindAlphaBeta.String())
	v.SetDefault("depth", 3)
	v.SetDefault("seed", 0)
	v.SetDefault("games", 100)
	v.SetDefault("workers", 4)
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", "info")
}

// Load reads the configuration. If file is empty, othello.yaml is looked
// up in the working directory and the user config directory, and a missing
// file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("othello")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/othello")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	for _, colour := range []board.Colour{board.Black, board.White} {
		if _, _, err := c.Player(colour); err != nil {
			return fmt.Errorf("%v player: %w", colour, err)
		}
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// whiteSeedMix separates White's random stream from Black's when both
// share the configured seed.
const whiteSeedMix = 0x9e3779b97f4a7c15

// Player resolves the configured player for colour. White's seed is
// derived from the configured one so two seeded random players do not
// mirror each other; a zero seed stays zero and means unseeded.
func (c *Config) Player(colour board.Colour) (cfg engine.Config, human bool, err error) {
	name := c.Black
	if colour == board.White {
		name = c.White
	}
	cfg, human, err = c.Engine(name)
	if err != nil || human {
		return cfg, human, err
	}
	if colour == board.White && cfg.Seed != 0 {
		cfg.Seed ^= whiteSeedMix
	}
	return cfg, false, nil
}

// Engine resolves a player name into an engine configuration. A strategy
// name uses the configured depth; a difficulty (easy, medium, hard) uses
// its preset depth. Both take the configured seed. human reports the Human
// player, for which the engine configuration is unset.
func (c *Config) Engine(name string) (cfg engine.Config, human bool, err error) {
	if strings.EqualFold(strings.TrimSpace(name), Human) {
		return engine.Config{}, true, nil
	}
	if d, err := engine.ParseDifficulty(name); err == nil {
		return engine.Config{Seed: c.Seed}.WithDifficulty(d), false, nil
	}
	kind, err := engine.ParseKind(name)
	if err != nil {
		return engine.Config{}, false, fmt.Errorf("%w, or a difficulty", err)
	}
	return engine.Config{Kind: kind, Depth: c.Depth, Seed: c.Seed}, false, nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

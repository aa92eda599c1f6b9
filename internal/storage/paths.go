// Package storage provides persistent storage for preferences and
// aggregate match statistics.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// EnvDataDir names the environment variable that moves the data directory.
const EnvDataDir = "OTHELLO_DATA_DIR"

// databaseSubdir holds the badger files inside the data directory.
const databaseSubdir = "badger"

// ResolveDataDir returns the data directory, creating it if needed. The
// first of these that is set wins: override, $OTHELLO_DATA_DIR, then
// othello under the user config directory.
func ResolveDataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = os.Getenv(EnvDataDir)
	}
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("no data directory: %w", err)
		}
		dir = filepath.Join(base, "othello")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DatabaseDir returns the database directory inside dataDir, creating it
// if needed.
func DatabaseDir(dataDir string) (string, error) {
	dbDir := filepath.Join(dataDir, databaseSubdir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	log.Debug().Str("dir", dbDir).Msg("database-directory")
	return dbDir, nil
}

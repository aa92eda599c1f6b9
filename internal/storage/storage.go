package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/ejrh/othello/internal/engine"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStatsPrefix = "stats/"
)

// Preferences remembers the engine of the last protocol session.
type Preferences struct {
	Strategy string    `json:"strategy"`
	Depth    int       `json:"depth"`
	Seed     uint64    `json:"seed"`
	LastUsed time.Time `json:"last_used"`
}

// DefaultPreferences returns default preferences: a 3 ply alpha-beta search.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Strategy: engine.KindAlphaBeta.String(),
		Depth:    3,
		LastUsed: time.Now(),
	}
}

// Config returns the saved engine.
func (p *Preferences) Config() (engine.Config, error) {
	kind, err := engine.ParseKind(p.Strategy)
	if err != nil {
		return engine.Config{}, fmt.Errorf("saved preferences: %w", err)
	}
	return engine.Config{Kind: kind, Depth: p.Depth, Seed: p.Seed}, nil
}

// SetConfig records cfg as the engine to resume with.
func (p *Preferences) SetConfig(cfg engine.Config) {
	p.Strategy = cfg.Kind.String()
	p.Depth = cfg.Depth
	p.Seed = cfg.Seed
}

// MatchStats aggregates finished games between one pairing of strategies.
// Only counters are kept, never the games themselves.
type MatchStats struct {
	Games      int   `json:"games"`
	BlackWins  int   `json:"black_wins"`
	WhiteWins  int   `json:"white_wins"`
	Draws      int   `json:"draws"`
	DiscDiff   int   `json:"disc_diff"` // Sum of black minus white discs
	Turns      int   `json:"turns"`
	TotalMoves int   `json:"total_moves"`
	Nodes      int64 `json:"nodes"`
}

// BlackWinRate returns Black's win rate as a percentage (0-100).
func (s *MatchStats) BlackWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.BlackWins) / float64(s.Games) * 100
}

// BranchingFactor returns the mean number of legal moves per turn.
func (s *MatchStats) BranchingFactor() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Turns)
}

// Add folds other into s.
func (s *MatchStats) Add(other MatchStats) {
	s.Games += other.Games
	s.BlackWins += other.BlackWins
	s.WhiteWins += other.WhiteWins
	s.Draws += other.Draws
	s.DiscDiff += other.DiscDiff
	s.Turns += other.Turns
	s.TotalMoves += other.TotalMoves
	s.Nodes += other.Nodes
}

// PairingKey names a pairing of strategies, e.g. "alphabeta(3)-vs-random".
func PairingKey(black, white string) string {
	return black + "-vs-" + white
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (creating if needed) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenDataDir opens the database under the data directory chosen by
// ResolveDataDir.
func OpenDataDir(override string) (*Storage, error) {
	dataDir, err := ResolveDataDir(override)
	if err != nil {
		return nil, err
	}
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v and reports whether it was present.
func (s *Storage) get(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastUsed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	_, err := s.get(keyPreferences, prefs)
	return prefs, err
}

// LoadStats loads the statistics of one pairing, returns empty stats if not found
func (s *Storage) LoadStats(pairing string) (*MatchStats, error) {
	stats := &MatchStats{}
	_, err := s.get(keyStatsPrefix+pairing, stats)
	return stats, err
}

// RecordMatch adds the results of a match to the stored statistics of its
// pairing and returns the new totals.
func (s *Storage) RecordMatch(pairing string, result MatchStats) (*MatchStats, error) {
	stats := &MatchStats{}
	key := []byte(keyStatsPrefix + pairing)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}

		stats.Add(result)
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, fmt.Errorf("record match %s: %w", pairing, err)
	}
	return stats, nil
}

// Pairings returns the stored statistics of every pairing.
func (s *Storage) Pairings() (map[string]MatchStats, error) {
	all := make(map[string]MatchStats)
	prefix := []byte(keyStatsPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var stats MatchStats
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			}); err != nil {
				return err
			}
			all[string(item.Key()[len(prefix):])] = stats
		}
		return nil
	})
	return all, err
}

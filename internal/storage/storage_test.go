package storage

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ejrh/othello/internal/engine"
)

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		cfg, err := prefs.Config()
		require.NoError(t, err)
		assert.Equal(t, engine.Config{Kind: engine.KindAlphaBeta, Depth: 3}, cfg)
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &MatchStats{Games: 10, BlackWins: 5, WhiteWins: 3, Draws: 2}
		assert.Equal(t, 50.0, stats.BlackWinRate())
		assert.Equal(t, 0.0, (&MatchStats{}).BlackWinRate())
	})

	t.Run("BranchingFactor", func(t *testing.T) {
		stats := &MatchStats{Turns: 60, TotalMoves: 600}
		assert.Equal(t, 10.0, stats.BranchingFactor())
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences().Strategy, prefs.Strategy)

	want := engine.Config{Kind: engine.KindRandom, Depth: 5, Seed: 17}
	prefs.SetConfig(want)
	require.NoError(t, s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "random", loaded.Strategy)
	assert.False(t, loaded.LastUsed.IsZero())

	got, err := loaded.Config()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	loaded.Strategy = "mcts"
	_, err = loaded.Config()
	assert.Error(t, err)
}

func TestRecordMatch(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	key := PairingKey("alphabeta(3)", "random")
	assert.Equal(t, "alphabeta(3)-vs-random", key)

	empty, err := s.LoadStats(key)
	require.NoError(t, err)
	assert.Equal(t, MatchStats{}, *empty)

	first := MatchStats{Games: 4, BlackWins: 3, WhiteWins: 1, DiscDiff: 40, Turns: 240, TotalMoves: 2100, Nodes: 1000}
	_, err = s.RecordMatch(key, first)
	require.NoError(t, err)

	total, err := s.RecordMatch(key, MatchStats{Games: 2, Draws: 2, Turns: 120, TotalMoves: 900})
	require.NoError(t, err)
	assert.Equal(t, 6, total.Games)
	assert.Equal(t, 3, total.BlackWins)
	assert.Equal(t, 2, total.Draws)
	assert.Equal(t, 3000, total.TotalMoves)

	loaded, err := s.LoadStats(key)
	require.NoError(t, err)
	assert.Equal(t, *total, *loaded)

	_, err = s.RecordMatch(PairingKey("greedy", "greedy"), MatchStats{Games: 1, Draws: 1})
	require.NoError(t, err)

	all, err := s.Pairings()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 6, all[key].Games)
	assert.Equal(t, 1, all["greedy-vs-greedy"].Draws)
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.RecordMatch("a-vs-b", MatchStats{Games: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	stats, err := s.LoadStats("a-vs-b")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Games)
}

func TestResolveDataDir(t *testing.T) {
	t.Run("Override", func(t *testing.T) {
		t.Setenv(EnvDataDir, t.TempDir())
		want := filepath.Join(t.TempDir(), "custom")

		dir, err := ResolveDataDir(want)
		require.NoError(t, err)
		assert.Equal(t, want, dir)
		assert.DirExists(t, dir)
	})

	t.Run("Environment", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "from-env")
		t.Setenv(EnvDataDir, want)

		dir, err := ResolveDataDir("")
		require.NoError(t, err)
		assert.Equal(t, want, dir)
	})

	t.Run("UserConfigDir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME is only honoured on linux")
		}
		base := t.TempDir()
		t.Setenv(EnvDataDir, "")
		t.Setenv("XDG_CONFIG_HOME", base)

		dir, err := ResolveDataDir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "othello"), dir)
		assert.DirExists(t, dir)
	})
}

func TestOpenDataDir(t *testing.T) {
	dataDir := t.TempDir()

	s, err := OpenDataDir(dataDir)
	require.NoError(t, err)
	_, err = s.RecordMatch("a-vs-b", MatchStats{Games: 2})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.DirExists(t, filepath.Join(dataDir, "badger"))

	s, err = Open(filepath.Join(dataDir, "badger"))
	require.NoError(t, err)
	defer s.Close()
	stats, err := s.LoadStats("a-vs-b")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Games)
}

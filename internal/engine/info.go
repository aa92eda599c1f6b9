package engine

import "sync/atomic"

// SearchInfo contains information about the last search.
type SearchInfo struct {
	LastNodes   uint64 // Nodes visited by the last search, leaves included
	TotalNodes  uint64 // Nodes visited by every search of this engine
	LastChoices int    // Legal moves at the root of the last search (branching factor)
}

// Stats accumulates the counters behind SearchInfo. Increments are atomic,
// so one Stats may be shared by concurrent searches.
type Stats struct {
	lastNodes   atomic.Uint64
	totalNodes  atomic.Uint64
	lastChoices atomic.Int64
}

func (s *Stats) addNode() {
	s.lastNodes.Add(1)
}

func (s *Stats) beginSearch(choices int) {
	s.lastChoices.Store(int64(choices))
	s.lastNodes.Store(0)
}

func (s *Stats) finishSearch() {
	s.totalNodes.Add(s.lastNodes.Load())
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() SearchInfo {
	return SearchInfo{
		LastNodes:   s.lastNodes.Load(),
		TotalNodes:  s.totalNodes.Load(),
		LastChoices: int(s.lastChoices.Load()),
	}
}

package links

import "sync"

// Stats counts resolutions by kind. Safe for concurrent use.
type Stats struct {
	mu     sync.Mutex
	counts map[Kind]int
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{counts: make(map[Kind]int)}
}

// Observe records one resolution; it matches Resolver.WithObserver.
func (s *Stats) Observe(res Resolution) {
	s.mu.Lock()
	s.counts[res.Kind]++
	s.mu.Unlock()
}

// Count returns the number of resolutions of kind k.
func (s *Stats) Count(k Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[k]
}

// Snapshot returns the counts keyed by kind name.
func (s *Stats) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(Kinds))
	for _, k := range Kinds {
		out[k.String()] = s.counts[k]
	}
	return out
}

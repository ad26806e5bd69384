package variation

import (
	"sync/atomic"
)

// Store holds the currently published catalog snapshot of one synth unit.
// Publication is a single atomic pointer swap: readers on the real-time
// path never block and never observe a partially built catalog. A
// superseded snapshot stays valid for any reader still holding it and is
// reclaimed once unreferenced.
type Store struct {
	snap atomic.Pointer[Catalog]
}

func NewStore() *Store {
	return &Store{}
}

// Publish swaps in a new snapshot. Must only be called with a catalog
// that finished building; builds happen off the live snapshot.
func (s *Store) Publish(c *Catalog) {
	s.snap.Store(c)
}

// Current returns the latest published snapshot, nil before the first
// publication.
func (s *Store) Current() *Catalog {
	return s.snap.Load()
}

// PresetInfo returns the preset info of the latest snapshot, the zero
// value before the first publication.
func (s *Store) PresetInfo() PresetInfo {
	if c := s.snap.Load(); c != nil {
		return c.preset
	}
	return PresetInfo{}
}

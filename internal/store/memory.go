// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used by tests and by STORE_BACKEND=memory when durability is not required.
//
// Characteristics:
//   - Holds a single *leaderboard.Data document.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Load/Save copy the document so callers never share slices with the store.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/associa/internal/leaderboard"
)

// memory is a single-document Store implementation.
type memory struct {
	mu  sync.RWMutex      // guards doc
	doc *leaderboard.Data // nil until the first Save
}

// NewMemoryStore constructs a new, empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{}
}

// Load returns a copy of the stored document or leaderboard.ErrNotFound.
func (m *memory) Load(ctx context.Context) (*leaderboard.Data, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, leaderboard.ErrNotFound
	}
	return m.doc.Clone(), nil
}

// Save replaces the stored document with a copy of d.
func (m *memory) Save(ctx context.Context, d *leaderboard.Data) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = d.Clone()
	return nil
}

func (m *memory) Close() error { return nil }

// internal/store/memory.go
//
// In-memory session store for the HTTP surface.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Map access is guarded by an RWMutex; each entry also carries its own
//     mutex so one session advances strictly sequentially while different
//     sessions proceed in parallel.
//   - Entries record when they were last used; Sweep drops idle ones.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Update runs fn with exclusive access to the session with the given ID.
	// Returns ErrNotFound if the ID is unknown, otherwise fn's error.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete removes a session. Returns ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions not saved or updated within idle and returns how many went.
	Sweep(ctx context.Context, idle time.Duration) int
}

type entry struct {
	mu      sync.Mutex
	s       *game.Session
	touched atomic.Int64 // unix nanos of the last Save/Update
}

func newEntry(s *game.Session) *entry {
	e := &entry{s: s}
	e.touch()
	return e
}

func (e *entry) touch() { e.touched.Store(time.Now().UnixNano()) }

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]*entry // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry)}
}

// Save adds or replaces the session in the map.
func (m *memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = newEntry(s)
	return nil
}

// Update looks up a session and runs fn under its entry lock.
func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()
	return fn(e.s)
}

// Delete drops a session.
func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Sweep drops every entry last touched at or before now-idle.
func (m *memory) Sweep(_ context.Context, idle time.Duration) int {
	cutoff := time.Now().Add(-idle).UnixNano()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.touched.Load() <= cutoff {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

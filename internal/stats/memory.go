// internal/stats/memory.go
//
// In-memory Store. Concurrency-safe via a mutex; state is lost on restart.

package stats

import (
	"context"
	"sync"

	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
)

// Memory keeps per-player records in a map.
type Memory struct {
	mu      sync.Mutex
	players map[string]*Record
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{players: make(map[string]*Record)}
}

// Player returns a recorder bound to playerID.
func (m *Memory) Player(playerID string) game.Recorder {
	return recorderFunc{
		win: func(_ context.Context, k int) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			return m.get(playerID).addWin(k)
		},
		loss: func(_ context.Context) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.get(playerID).addLoss()
			return nil
		},
	}
}

// Load returns a copy of the player's record (zeroed if never seen).
func (m *Memory) Load(_ context.Context, playerID string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.players[playerID]; ok {
		return r.clone(), nil
	}
	return NewRecord(), nil
}

// get must be called with mu held.
func (m *Memory) get(playerID string) *Record {
	r, ok := m.players[playerID]
	if !ok {
		nr := NewRecord()
		r = &nr
		m.players[playerID] = r
	}
	return r
}

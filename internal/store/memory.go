// internal/store/memory.go
//
// In-memory session store for games in progress.
//
// Characteristics:
//   - Stores *Session values keyed by game ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Session carries its own mutex; callers hold it while touching the Game,
//     so one game's tracker is never updated concurrently.
//   - State is lost when the process restarts; finished games live on in SQLite.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle-engine/internal/game"
)

var ErrNotFound = errors.New("not found")

// Session is a live game plus who is playing it.
type Session struct {
	sync.Mutex
	Game     *game.Game
	PlayerID string // empty for guests
	Mode     string // "random" | "daily"
}

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save persists or updates a session under its game ID.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by game ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete forgets a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Game.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

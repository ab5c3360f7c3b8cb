// internal/store/memory.go
//
// In-memory implementation of the game.Store interface.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores *game.Session values keyed by session id in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - game.ErrSessionNotFound / game.ErrSessionExists for missing or
//     duplicate session ids.

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/zkmastermind/go-server/internal/game"
)

// memory is an in-memory map-based game.Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions map
	sessions map[game.SessionID]*game.Session
}

var _ game.Store = (*memory)(nil)

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() game.Store {
	return &memory{sessions: make(map[game.SessionID]*game.Session)}
}

// Create inserts the session, rejecting id reuse.
func (m *memory) Create(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return game.ErrSessionExists
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

// Save overwrites the stored session state.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

// Get looks up a session by id and returns a copy.
func (m *memory) Get(ctx context.Context, id game.SessionID) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return nil, game.ErrSessionNotFound
}

// ListByPlayer scans for sessions the player is part of.
func (m *memory) ListByPlayer(ctx context.Context, player game.PlayerID) ([]*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*game.Session
	for _, s := range m.sessions {
		if s.Player1 == player || s.Player2 == player {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

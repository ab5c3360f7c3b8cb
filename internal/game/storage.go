// internal/game/storage.go
//
// Persistence boundary of the state machine. The Engine owns the Store
// interface; implementations live in internal/store and depend on this
// package, never the other way around.

package game

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by Store.Get for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned by Store.Create when the id is taken.
var ErrSessionExists = errors.New("session already exists")

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory, SQLite, etc.
// Sessions are never deleted; terminal state is permanent.
type Store interface {
	// Create inserts a new session; fails with ErrSessionExists on id reuse.
	Create(ctx context.Context, s *Session) error

	// Save persists an updated session state.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by id, or ErrSessionNotFound.
	Get(ctx context.Context, id SessionID) (*Session, error)

	// ListByPlayer returns the sessions a player participates in,
	// newest session id first.
	ListByPlayer(ctx context.Context, player PlayerID) ([]*Session, error)
}

// internal/hub/hub.go
//
// GameHub boundary. The hub is the external collaborator that holds the
// players' stakes: it is told when a session starts and who won when it
// ends, and settles points accordingly. Custody itself is out of scope
// here, so the default implementation only logs the notifications.

package hub

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Hub receives session lifecycle notifications.
type Hub interface {
	// StartGame records a new session and the stakes of both parties.
	// An error aborts session creation; nothing is persisted.
	StartGame(ctx context.Context, sessionID uint32, player1, player2 string, player1Points, player2Points int64) error
	// EndGame reports the terminal outcome. player1Won is true when the
	// Codemaker keeps the pot (secret survived all attempts).
	EndGame(ctx context.Context, sessionID uint32, player1Won bool) error
}

// logHub is the default no-custody Hub.
type logHub struct{}

// NewLogHub returns a Hub that only logs notifications.
func NewLogHub() Hub { return logHub{} }

func (logHub) StartGame(ctx context.Context, sessionID uint32, player1, player2 string, p1Points, p2Points int64) error {
	log.Info().
		Uint32("sessionId", sessionID).
		Str("player1", player1).
		Str("player2", player2).
		Int64("player1Points", p1Points).
		Int64("player2Points", p2Points).
		Msg("hub: game started")
	return nil
}

func (logHub) EndGame(ctx context.Context, sessionID uint32, player1Won bool) error {
	log.Info().
		Uint32("sessionId", sessionID).
		Bool("player1Won", player1Won).
		Msg("hub: game ended")
	return nil
}

// internal/store/sqlite.go
//
// SQLite-backed Store. Sessions survive restarts with every invariant
// intact: scalar state lives in columns, the append-only guess/feedback
// sequences are stored as JSON (they are only ever read back whole).
//
// Schema is applied by the server's migration runner (sql/*.sql); this
// file only reads and writes the sessions table.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/zkmastermind/go-server/internal/game"
)

// sqliteStore persists sessions in a sessions table.
type sqliteStore struct {
	db *sql.DB
}

var _ game.Store = (*sqliteStore)(nil)

// NewSQLiteStore wraps an already-opened (and migrated) database handle.
func NewSQLiteStore(db *sql.DB) game.Store {
	return &sqliteStore{db: db}
}

// Create inserts the session row; a primary-key conflict maps to
// game.ErrSessionExists.
func (s *sqliteStore) Create(ctx context.Context, g *game.Session) error {
	guesses, feedbacks, err := marshalHistory(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions
            (id, player1, player2, player1_points, player2_points,
             commitment, max_attempts, attempts_used, next_guess_id,
             pending_guess_id, guesses, feedbacks, winner, solved, ended)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		g.ID, string(g.Player1), string(g.Player2), g.Player1Points, g.Player2Points,
		commitmentBytes(g), g.MaxAttempts, g.AttemptsUsed, g.NextGuessID,
		pendingValue(g), guesses, feedbacks, winnerValue(g), g.Solved, g.Ended)
	if sqliteErr, ok := err.(sqlite3.Error); ok && sqliteErr.Code == sqlite3.ErrConstraint {
		return game.ErrSessionExists
	}
	return err
}

// Save overwrites the mutable columns of an existing session row.
func (s *sqliteStore) Save(ctx context.Context, g *game.Session) error {
	guesses, feedbacks, err := marshalHistory(g)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        UPDATE sessions SET
            commitment=?, attempts_used=?, next_guess_id=?, pending_guess_id=?,
            guesses=?, feedbacks=?, winner=?, solved=?, ended=?
        WHERE id=?`,
		commitmentBytes(g), g.AttemptsUsed, g.NextGuessID, pendingValue(g),
		guesses, feedbacks, winnerValue(g), g.Solved, g.Ended, g.ID)
	return err
}

// Get loads one session row.
func (s *sqliteStore) Get(ctx context.Context, id game.SessionID) (*game.Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, player1, player2, player1_points, player2_points,
               commitment, max_attempts, attempts_used, next_guess_id,
               pending_guess_id, guesses, feedbacks, winner, solved, ended
        FROM sessions WHERE id=?`, id)
	g, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, game.ErrSessionNotFound
	}
	return g, err
}

// ListByPlayer returns the player's sessions, newest id first.
func (s *sqliteStore) ListByPlayer(ctx context.Context, player game.PlayerID) ([]*game.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, player1, player2, player1_points, player2_points,
               commitment, max_attempts, attempts_used, next_guess_id,
               pending_guess_id, guesses, feedbacks, winner, solved, ended
        FROM sessions WHERE player1=? OR player2=? ORDER BY id DESC`,
		string(player), string(player))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*game.Session
	for rows.Next() {
		g, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession converts one row into a *game.Session.
func scanSession(row rowScanner) (*game.Session, error) {
	var (
		g          game.Session
		p1, p2     string
		commitment []byte
		pending    sql.NullInt64
		winner     sql.NullString
		guesses    []byte
		feedbacks  []byte
	)
	if err := row.Scan(&g.ID, &p1, &p2, &g.Player1Points, &g.Player2Points,
		&commitment, &g.MaxAttempts, &g.AttemptsUsed, &g.NextGuessID,
		&pending, &guesses, &feedbacks, &winner, &g.Solved, &g.Ended); err != nil {
		return nil, err
	}
	g.Player1, g.Player2 = game.PlayerID(p1), game.PlayerID(p2)
	if len(commitment) == 32 {
		var c [32]byte
		copy(c[:], commitment)
		g.Commitment = &c
	}
	if pending.Valid {
		v := uint32(pending.Int64)
		g.PendingGuess = &v
	}
	if winner.Valid {
		w := game.PlayerID(winner.String)
		g.Winner = &w
	}
	if err := json.Unmarshal(guesses, &g.Guesses); err != nil {
		return nil, fmt.Errorf("decode guesses for session %d: %w", g.ID, err)
	}
	if err := json.Unmarshal(feedbacks, &g.Feedbacks); err != nil {
		return nil, fmt.Errorf("decode feedbacks for session %d: %w", g.ID, err)
	}
	return &g, nil
}

// marshalHistory encodes the append-only sequences for storage.
func marshalHistory(g *game.Session) (guesses, feedbacks []byte, err error) {
	if guesses, err = json.Marshal(g.Guesses); err != nil {
		return nil, nil, fmt.Errorf("encode guesses: %w", err)
	}
	if feedbacks, err = json.Marshal(g.Feedbacks); err != nil {
		return nil, nil, fmt.Errorf("encode feedbacks: %w", err)
	}
	return guesses, feedbacks, nil
}

func commitmentBytes(g *game.Session) []byte {
	if g.Commitment == nil {
		return nil
	}
	return g.Commitment[:]
}

func pendingValue(g *game.Session) any {
	if g.PendingGuess == nil {
		return nil
	}
	return int64(*g.PendingGuess)
}

func winnerValue(g *game.Session) any {
	if g.Winner == nil {
		return nil
	}
	return string(*g.Winner)
}

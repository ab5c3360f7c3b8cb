// internal/game/engine.go
//
// Session state machine for the committed-secret Mastermind protocol.
// Responsibilities:
//   - Own every session mutation: create, commit_code, submit_guess,
//     submit_feedback_proof. Nothing else writes session state.
//   - Enforce role checks, operation ordering, and the single-pending-guess
//     rule; serialize concurrent submissions per session.
//   - Bind accepted feedback to a verified proof: recompute the expected
//     public inputs from its own state, compare with the claim, and only
//     then consult the proof verifier.
//   - Decide terminal conditions and notify the hub.
//
// The engine never sees the secret. Honest feedback is guaranteed solely
// by the public-input comparison plus proof verification.

package game

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/sha3"

	"github.com/zkmastermind/go-server/internal/hub"
	"github.com/zkmastermind/go-server/internal/verifier"
	"github.com/zkmastermind/go-server/internal/wire"
)

// Engine orchestrates all sessions against a Store, a proof Verifier and
// the hub. A nil Verifier means no verification key is configured; every
// feedback submission then fails VerifierNotSet rather than degrading.
type Engine struct {
	store    Store
	verifier verifier.Verifier
	hub      hub.Hub
	rules    Rules

	// Per-session mutexes so near-simultaneous submissions cannot slip
	// past the pending-guess guards. Entries are never removed: a mutex
	// is a few words and sessions are never deleted either.
	locks sync.Map // SessionID -> *sync.Mutex
}

// NewEngine wires the state machine to its collaborators.
func NewEngine(st Store, v verifier.Verifier, h hub.Hub, rules Rules) *Engine {
	return &Engine{store: st, verifier: v, hub: h, rules: rules}
}

// Rules reports the active deployment profile.
func (e *Engine) Rules() Rules { return e.rules }

// lockSession serializes all mutations of one session.
func (e *Engine) lockSession(id SessionID) func() {
	mu, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Create starts a new session between two distinct players with their
// stakes recorded. The session id is caller-chosen; reuse is rejected.
// The hub is notified before anything is persisted: if it refuses the
// stakes, no session comes into existence.
func (e *Engine) Create(ctx context.Context, id SessionID, player1, player2 PlayerID, player1Points, player2Points int64) (*Session, error) {
	if player1 == player2 || player1 == "" || player2 == "" {
		return nil, ErrNotPlayer
	}
	defer e.lockSession(id)()

	if _, err := e.store.Get(ctx, id); err == nil {
		return nil, ErrGameAlreadyEnded
	} else if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	if err := e.hub.StartGame(ctx, id, string(player1), string(player2), player1Points, player2Points); err != nil {
		return nil, fmt.Errorf("hub rejected session %d: %w", id, err)
	}

	s := &Session{
		ID:            id,
		Player1:       player1,
		Player2:       player2,
		Player1Points: player1Points,
		Player2Points: player2Points,
		MaxAttempts:   e.rules.MaxAttempts,
		Guesses:       []GuessRecord{},
		Feedbacks:     []FeedbackRecord{},
	}
	if err := e.store.Create(ctx, s); err != nil {
		if errors.Is(err, ErrSessionExists) {
			return nil, ErrGameAlreadyEnded
		}
		return nil, err
	}
	log.Info().Uint32("sessionId", id).Str("player1", string(player1)).Str("player2", string(player2)).Msg("session created")
	return s.Clone(), nil
}

// CommitCode stores the Codemaker's commitment, exactly once.
func (e *Engine) CommitCode(ctx context.Context, caller PlayerID, id SessionID, commitment [32]byte) error {
	defer e.lockSession(id)()

	s, err := e.load(ctx, id)
	if err != nil {
		return err
	}
	if s.Ended {
		return ErrGameAlreadyEnded
	}
	if caller != s.Player1 {
		return ErrNotPlayer
	}
	if s.Commitment != nil {
		return ErrCommitmentAlreadySet
	}

	s.Commitment = &commitment
	if err := e.store.Save(ctx, s); err != nil {
		return err
	}
	log.Info().Uint32("sessionId", id).Msg("commitment set")
	return nil
}

// SubmitGuess records the Codebreaker's next guess and returns its id.
// Exactly one guess may await feedback at any time.
func (e *Engine) SubmitGuess(ctx context.Context, caller PlayerID, id SessionID, guess [CodeLength]byte) (uint32, error) {
	defer e.lockSession(id)()

	s, err := e.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.Ended {
		return 0, ErrGameAlreadyEnded
	}
	if caller != s.Player2 {
		return 0, ErrNotPlayer
	}
	if s.Commitment == nil {
		return 0, ErrCommitmentNotSet
	}
	// Unreachable while feedback flips Ended on exhaustion; kept as a
	// belt against a store that lost the terminal flag.
	if s.AttemptsUsed >= s.MaxAttempts {
		return 0, ErrAttemptsExhausted
	}
	if s.PendingGuess != nil {
		return 0, ErrGuessPendingFeedback
	}
	if err := ValidateCode(guess, e.rules); err != nil {
		return 0, err
	}

	guessID := s.NextGuessID
	s.NextGuessID++
	s.PendingGuess = &guessID
	s.Guesses = append(s.Guesses, GuessRecord{GuessID: guessID, Guess: guess})

	if err := e.store.Save(ctx, s); err != nil {
		return 0, err
	}
	log.Info().Uint32("sessionId", id).Uint32("guessId", guessID).Msg("guess submitted")
	return guessID, nil
}

// SubmitFeedbackProof resolves the pending guess with (exact, partial)
// feedback, accepted only when the submitted blob carries exactly the
// public inputs this session implies and a proof the verifier accepts
// for them. On success the feedback is recorded and terminal rules run:
// exact == 4 wins for the Codebreaker even on the attempt that would
// have exhausted the cap.
func (e *Engine) SubmitFeedbackProof(ctx context.Context, caller PlayerID, id SessionID, guessID, exact, partial uint32, proofBlob []byte) error {
	defer e.lockSession(id)()

	s, err := e.load(ctx, id)
	if err != nil {
		return err
	}
	if s.Ended {
		return ErrGameAlreadyEnded
	}
	if caller != s.Player1 {
		return ErrNotPlayer
	}
	if s.Commitment == nil {
		return ErrCommitmentNotSet
	}
	if s.PendingGuess == nil {
		return ErrNoPendingGuess
	}
	if *s.PendingGuess != guessID {
		return ErrInvalidGuessID
	}
	if exact > CodeLength || partial > CodeLength || exact+partial > CodeLength {
		return ErrInvalidFeedback
	}

	guess, ok := s.guessByID(guessID)
	if !ok {
		return ErrInvalidGuessID
	}

	expected := wire.PublicInputs(id, guessID, *s.Commitment, guess, exact, partial)
	claimed, proof, err := wire.DecodeBlob(proofBlob)
	if err != nil {
		return ErrInvalidProofBlob
	}
	if !bytes.Equal(expected[:], claimed) {
		return ErrInvalidPublicInputs
	}

	if e.verifier == nil {
		return ErrVerifierNotSet
	}
	if err := e.verifier.Verify(ctx, claimed, proof); err != nil {
		if errors.Is(err, verifier.ErrVkNotSet) {
			return ErrVerifierNotSet
		}
		log.Debug().Err(err).Uint32("sessionId", id).Uint32("guessId", guessID).Msg("proof rejected")
		return ErrInvalidProof
	}

	s.Feedbacks = append(s.Feedbacks, FeedbackRecord{
		GuessID:   guessID,
		Exact:     exact,
		Partial:   partial,
		ProofHash: keccak256(proofBlob),
	})
	s.PendingGuess = nil
	s.AttemptsUsed++

	// Solved is evaluated before exhaustion: a 4-exact final attempt is
	// a Codebreaker win, not a timeout.
	switch {
	case exact == CodeLength:
		s.Solved = true
		s.Ended = true
		w := s.Player2
		s.Winner = &w
	case s.AttemptsUsed >= s.MaxAttempts:
		s.Solved = false
		s.Ended = true
		w := s.Player1
		s.Winner = &w
	}

	if err := e.store.Save(ctx, s); err != nil {
		return err
	}

	if s.Ended {
		if err := e.hub.EndGame(ctx, id, !s.Solved); err != nil {
			log.Warn().Err(err).Uint32("sessionId", id).Msg("hub end notification failed")
		}
	}
	log.Info().
		Uint32("sessionId", id).
		Uint32("guessId", guessID).
		Uint32("exact", exact).
		Uint32("partial", partial).
		Bool("ended", s.Ended).
		Msg("feedback accepted")
	return nil
}

// GetGame returns a read-only copy of the session state.
func (e *Engine) GetGame(ctx context.Context, id SessionID) (*Session, error) {
	return e.load(ctx, id)
}

// ListGames returns every session a player participates in.
func (e *Engine) ListGames(ctx context.Context, player PlayerID) ([]*Session, error) {
	return e.store.ListByPlayer(ctx, player)
}

// load fetches a session, mapping the store's miss to the protocol error.
func (e *Engine) load(ctx context.Context, id SessionID) (*Session, error) {
	s, err := e.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s, nil
}

// keccak256 is the audit hash of an accepted proof blob (legacy Keccak,
// the variant ledger tooling expects, not SHA3-256).
func keccak256(data []byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

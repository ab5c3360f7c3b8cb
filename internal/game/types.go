// internal/game/types.go
//
// Core type definitions for the Mastermind session protocol.
// Defines:
//   - SessionID / PlayerID: identifiers for sessions and the two parties.
//   - Rules: deployment profile (digit alphabet, duplicates, attempt cap).
//   - GuessRecord / FeedbackRecord: the append-only per-session history.
//   - Session: full state of one committed-secret game.

package game

// SessionID is the caller-chosen 32-bit identifier for a game session.
// Uniqueness is the caller's responsibility; Create rejects reuse.
type SessionID = uint32

// PlayerID identifies a party. The HTTP layer maps authenticated accounts
// onto PlayerIDs; the state machine only compares them for role checks.
type PlayerID string

// CodeLength is the number of digits in the secret and in every guess.
const CodeLength = 4

// Rules is the deployment profile for a set of sessions. Deployments
// have shipped with different alphabets and attempt caps, so both are
// expressible here instead of hard-coding either.
type Rules struct {
	DigitMin        byte   // lowest allowed digit value, inclusive
	DigitMax        byte   // highest allowed digit value, inclusive
	AllowDuplicates bool   // whether a code may repeat a digit
	MaxAttempts     uint32 // guesses the Codebreaker gets before losing
}

// ClassicRules is the early profile: unique digits 1-4, four attempts.
var ClassicRules = Rules{DigitMin: 1, DigitMax: 4, AllowDuplicates: false, MaxAttempts: 4}

// ExtendedRules is the deployed profile: unique digits 1-6, twelve attempts.
var ExtendedRules = Rules{DigitMin: 1, DigitMax: 6, AllowDuplicates: false, MaxAttempts: 12}

// GuessRecord is one submitted guess, keyed by its assigned guess id.
type GuessRecord struct {
	GuessID uint32           `json:"guessId"`
	Guess   [CodeLength]byte `json:"guess"`
}

// FeedbackRecord is the resolved feedback for one guess. ProofHash is a
// keccak256 commitment to the accepted proof blob, kept for audit; the
// blob itself is not retained.
type FeedbackRecord struct {
	GuessID   uint32   `json:"guessId"`
	Exact     uint32   `json:"exact"`
	Partial   uint32   `json:"partial"`
	ProofHash [32]byte `json:"proofHash"`
}

// Session holds the state of a single game. It is mutated only by the
// Engine, one operation at a time, and is never deleted; a terminal
// session stays readable forever.
type Session struct {
	ID            SessionID        `json:"sessionId"`
	Player1       PlayerID         `json:"player1"` // Codemaker
	Player2       PlayerID         `json:"player2"` // Codebreaker
	Player1Points int64            `json:"player1Points"`
	Player2Points int64            `json:"player2Points"`
	Commitment    *[32]byte        `json:"commitment,omitempty"` // set exactly once
	MaxAttempts   uint32           `json:"maxAttempts"`
	AttemptsUsed  uint32           `json:"attemptsUsed"`
	NextGuessID   uint32           `json:"nextGuessId"`
	PendingGuess  *uint32          `json:"pendingGuessId,omitempty"` // guess awaiting feedback
	Guesses       []GuessRecord    `json:"guesses"`
	Feedbacks     []FeedbackRecord `json:"feedbacks"`
	Winner        *PlayerID        `json:"winner,omitempty"`
	Solved        bool             `json:"solved"`
	Ended         bool             `json:"ended"`
}

// Clone returns a deep copy so callers can never mutate stored state
// behind the Engine's back.
func (s *Session) Clone() *Session {
	cp := *s
	if s.Commitment != nil {
		c := *s.Commitment
		cp.Commitment = &c
	}
	if s.PendingGuess != nil {
		p := *s.PendingGuess
		cp.PendingGuess = &p
	}
	if s.Winner != nil {
		w := *s.Winner
		cp.Winner = &w
	}
	cp.Guesses = append([]GuessRecord(nil), s.Guesses...)
	cp.Feedbacks = append([]FeedbackRecord(nil), s.Feedbacks...)
	return &cp
}

// guessByID returns the recorded guess digits for an id, if present.
func (s *Session) guessByID(guessID uint32) ([CodeLength]byte, bool) {
	for _, rec := range s.Guesses {
		if rec.GuessID == guessID {
			return rec.Guess, true
		}
	}
	return [CodeLength]byte{}, false
}

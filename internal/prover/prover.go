// internal/prover/prover.go
//
// Codemaker-side tooling. The core protocol never touches a secret; this
// package is the other half of the conversation. It keeps (secret, salt),
// computes honest feedback, and assembles the proof blob a feedback
// submission needs. It runs off the protocol boundary, typically in the
// Codemaker's own process, and proof generation (seconds of CPU) happens
// here, never inside the server's per-session critical section.

package prover

import (
	"context"
	"fmt"

	"github.com/zkmastermind/go-server/internal/commit"
	"github.com/zkmastermind/go-server/internal/game"
	"github.com/zkmastermind/go-server/internal/verifier"
	"github.com/zkmastermind/go-server/internal/wire"
)

// Codemaker holds one session's secret material.
type Codemaker struct {
	secret [game.CodeLength]byte
	salt   [commit.SaltSize]byte
	proofs verifier.ProofSystem
}

// New validates the secret against the rules, draws a fresh salt, and
// binds the proof system that will attest feedback.
func New(secret [game.CodeLength]byte, rules game.Rules, proofs verifier.ProofSystem) (*Codemaker, error) {
	if err := game.ValidateCode(secret, rules); err != nil {
		return nil, fmt.Errorf("secret rejected by rules: %w", err)
	}
	salt, err := commit.NewSalt()
	if err != nil {
		return nil, err
	}
	return &Codemaker{secret: secret, salt: salt, proofs: proofs}, nil
}

// Commitment is the value to publish via commit_code.
func (c *Codemaker) Commitment() [32]byte {
	return commit.Compute(c.secret, c.salt)
}

// Feedback computes the honest (exact, partial) for a guess.
func (c *Codemaker) Feedback(guess [game.CodeLength]byte) (exact, partial uint32) {
	return game.Score(c.secret, guess)
}

// ProveFeedback scores the guess, produces a proof bound to the canonical
// public inputs, and frames the submission blob. The returned values are
// exactly what submit_feedback_proof expects.
func (c *Codemaker) ProveFeedback(ctx context.Context, sessionID, guessID uint32, guess [game.CodeLength]byte) (exact, partial uint32, proofBlob []byte, err error) {
	exact, partial = game.Score(c.secret, guess)
	publicInputs := wire.PublicInputs(sessionID, guessID, c.Commitment(), guess, exact, partial)

	proof, err := c.proofs.Prove(ctx, publicInputs[:], c.witness())
	if err != nil {
		return 0, 0, nil, fmt.Errorf("prove feedback for guess %d: %w", guessID, err)
	}
	blob, err := wire.EncodeBlob(publicInputs, proof)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("frame proof blob: %w", err)
	}
	return exact, partial, blob, nil
}

// witness serializes the private inputs: secret digits then salt.
func (c *Codemaker) witness() []byte {
	w := make([]byte, 0, game.CodeLength+commit.SaltSize)
	w = append(w, c.secret[:]...)
	w = append(w, c.salt[:]...)
	return w
}

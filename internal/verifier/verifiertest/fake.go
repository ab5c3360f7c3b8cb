// internal/verifier/verifiertest/fake.go
//
// Deterministic in-memory ProofSystem for tests. A "proof" is a digest
// chain over the public inputs, so Verify accepts exactly the bytes Prove
// produced for those inputs and rejects any single-byte tamper. Enough
// to exercise every protocol path without a trusted setup.

package verifiertest

import (
	"bytes"
	"context"
	"crypto/sha256"

	"github.com/zkmastermind/go-server/internal/verifier"
)

// FakeProofSystem implements verifier.ProofSystem.
type FakeProofSystem struct {
	// RejectAll forces Verify to fail regardless of input.
	RejectAll bool
}

// Prove returns a 64-byte pseudo-proof bound to the public inputs. The
// private witness does not influence the output; honesty enforcement is
// the real circuit's job, not this fake's.
func (f *FakeProofSystem) Prove(ctx context.Context, publicInputs, privateWitness []byte) ([]byte, error) {
	return pseudoProof(publicInputs), nil
}

// Verify accepts exactly the pseudo-proof for these public inputs.
func (f *FakeProofSystem) Verify(ctx context.Context, publicInputs, proof []byte) error {
	if f.RejectAll || !bytes.Equal(pseudoProof(publicInputs), proof) {
		return verifier.ErrVerificationFailed
	}
	return nil
}

func pseudoProof(publicInputs []byte) []byte {
	a := sha256.Sum256(append([]byte("fake-proof:"), publicInputs...))
	b := sha256.Sum256(a[:])
	return append(a[:], b[:]...)
}

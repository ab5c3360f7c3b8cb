package verifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkmastermind/go-server/internal/wire"
)

// Full accept-path coverage needs a trusted setup and lives with the
// circuit deployment; these tests pin the adapter's rejection taxonomy,
// which is what the protocol's security relies on.

func TestNewGroth16EmptyKey(t *testing.T) {
	_, err := NewGroth16(nil)
	assert.ErrorIs(t, err, ErrVkNotSet)
}

func TestNewGroth16GarbageKey(t *testing.T) {
	_, err := NewGroth16([]byte("definitely not a verification key"))
	assert.ErrorIs(t, err, ErrVkParse)
}

func TestVerifyWithoutKeyRejects(t *testing.T) {
	var g *Groth16
	pi := make([]byte, wire.PublicInputsSize)
	err := g.Verify(context.Background(), pi, []byte{0x01})
	assert.ErrorIs(t, err, ErrVkNotSet)
}

func TestErrorTaxonomyIsClosedAndStable(t *testing.T) {
	require.Equal(t, Code(1), ErrVkParse.Code)
	require.Equal(t, Code(2), ErrProofParse.Code)
	require.Equal(t, Code(3), ErrVerificationFailed.Code)
	require.Equal(t, Code(4), ErrVkNotSet.Code)
}

func TestErrorIsMatchesByCode(t *testing.T) {
	wrapped := &Error{Code: CodeVerificationFailed, Name: "VerificationFailed"}
	assert.ErrorIs(t, wrapped, ErrVerificationFailed)
	assert.NotErrorIs(t, wrapped, ErrProofParse)
}

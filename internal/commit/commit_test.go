package commit

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bn254ScalarModulus is the field the proof system operates over; every
// commitment must be a canonical element of it.
var bn254ScalarModulus, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

func TestComputeMatchesTruncatedDigest(t *testing.T) {
	secret := [4]byte{1, 2, 3, 4}
	var salt [SaltSize]byte
	for i := range salt {
		salt[i] = byte(i)
	}

	got := Compute(secret, salt)

	// Reference: sha256(secret || salt), leading 31 bytes right-aligned.
	digest := sha256.Sum256(append(secret[:], salt[:]...))
	var want [32]byte
	copy(want[1:], digest[:31])
	assert.Equal(t, want, got)
	assert.Zero(t, got[0], "top byte is always padding")
}

func TestComputeIsFieldValued(t *testing.T) {
	secrets := [][4]byte{{1, 2, 3, 4}, {6, 5, 1, 2}, {4, 4, 4, 4}}
	for _, secret := range secrets {
		salt, err := NewSalt()
		require.NoError(t, err)
		c := Compute(secret, salt)
		v := new(big.Int).SetBytes(c[:])
		assert.Negative(t, v.Cmp(bn254ScalarModulus), "commitment must lie below the scalar modulus")
	}
}

func TestSaltChangesCommitment(t *testing.T) {
	secret := [4]byte{1, 2, 3, 4}
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
	assert.NotEqual(t, Compute(secret, s1), Compute(secret, s2))
}

func TestSecretChangesCommitment(t *testing.T) {
	var salt [SaltSize]byte
	a := Compute([4]byte{1, 2, 3, 4}, salt)
	b := Compute([4]byte{1, 2, 4, 3}, salt)
	assert.NotEqual(t, a, b)
}

func TestComputeDeterministic(t *testing.T) {
	secret := [4]byte{3, 1, 4, 2}
	var salt [SaltSize]byte
	salt[0] = 0x7f
	assert.Equal(t, Compute(secret, salt), Compute(secret, salt))
}

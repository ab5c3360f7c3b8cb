// internal/commit/commit.go
//
// Commitment scheme for the secret code. The Codemaker publishes
// Commit(secret, salt) before any guesses; the feedback circuit later
// proves knowledge of a preimage without revealing it.
//
// Construction: SHA-256 over secret digits ‖ salt, keeping only the
// leading 31 digest bytes as a big-endian integer, right-aligned in a
// 32-byte field value. 31 bytes (248 bits) is strictly below the BN254
// scalar field modulus (~254 bits), so the value is always a canonical
// field element for the proof system.
//
// The salt is mandatory: the secret space is tiny (at most digit-range^4
// codes), so an unsalted digest falls to offline brute force. A salt must
// never be reused across sessions and stays private alongside the secret
// until the session ends.

package commit

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// SaltSize is the required salt length in bytes.
const SaltSize = 16

// truncation keeps the commitment below the proof system's field modulus.
const digestKeep = 31

// Compute derives the 32-byte field-valued commitment for a secret code
// and salt.
func Compute(secret [4]byte, salt [SaltSize]byte) [32]byte {
	h := sha256.New()
	h.Write(secret[:])
	h.Write(salt[:])
	digest := h.Sum(nil)

	var out [32]byte
	copy(out[32-digestKeep:], digest[:digestKeep])
	return out
}

// NewSalt draws a fresh random salt.
func NewSalt() ([SaltSize]byte, error) {
	var s [SaltSize]byte
	if _, err := rand.Read(s[:]); err != nil {
		return s, fmt.Errorf("read salt entropy: %w", err)
	}
	return s, nil
}

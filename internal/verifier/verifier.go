// internal/verifier/verifier.go
//
// Boundary to the external proof system. The state machine depends only
// on Verifier; the full ProofSystem (with the Prove half) exists for the
// off-protocol proving party and for end-to-end tooling.
//
// Error contract: every non-success path rejects the submission. There is
// no "trust on internal failure" fallback anywhere behind this interface.

package verifier

import "context"

// Code is the stable numeric identifier of a verifier-side failure,
// matching the verifier contract's wire mapping.
type Code uint32

const (
	CodeVkParseError       Code = 1 // verification key malformed: configuration bug, fatal
	CodeProofParseError    Code = 2 // malformed proof bytes: adversarial input, reject
	CodeVerificationFailed Code = 3 // relation not satisfied: any dishonest feedback claim
	CodeVkNotSet           Code = 4 // no key configured: deployment error
)

// Error is a verifier-side failure.
type Error struct {
	Code Code
	Name string
}

func (e *Error) Error() string { return e.Name }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrVkParse            = &Error{CodeVkParseError, "VkParseError"}
	ErrProofParse         = &Error{CodeProofParseError, "ProofParseError"}
	ErrVerificationFailed = &Error{CodeVerificationFailed, "VerificationFailed"}
	ErrVkNotSet           = &Error{CodeVkNotSet, "VkNotSet"}
)

// Verifier checks a proof against its stored verification key and the
// given canonical public-input bytes. A nil return means the proof
// attests the relation for exactly those inputs.
type Verifier interface {
	Verify(ctx context.Context, publicInputs, proof []byte) error
}

// ProofSystem is the two-sided capability. Prove is used only by the
// proving party (it needs the private witness: secret and salt); the core
// protocol never calls it.
type ProofSystem interface {
	Verifier
	Prove(ctx context.Context, publicInputs, privateWitness []byte) (proof []byte, err error)
}

// internal/game/errors.go
//
// Closed protocol error set. Every failure the state machine can produce
// is one of these values; nothing is retried or silently recovered.
// The numeric codes are the stable wire mapping of the deployed contract
// (1-15) and must not be renumbered.

package game

// Code is the stable numeric identifier of a protocol error.
type Code uint32

const (
	CodeGameNotFound         Code = 1
	CodeNotPlayer            Code = 2
	CodeGameAlreadyEnded     Code = 3
	CodeCommitmentAlreadySet Code = 4
	CodeCommitmentNotSet     Code = 5
	CodeGuessPendingFeedback Code = 6
	CodeNoPendingGuess       Code = 7
	CodeInvalidGuessID       Code = 8
	CodeInvalidFeedback      Code = 9
	CodeInvalidPublicInputs  Code = 10
	CodeInvalidProof         Code = 11
	CodeAttemptsExhausted    Code = 12
	CodeVerifierNotSet       Code = 13
	CodeInvalidProofBlob     Code = 14
	CodeInvalidGuess         Code = 15
)

// Error is a protocol failure. Compare with errors.Is against the
// sentinel values below.
type Error struct {
	Code Code
	Name string
}

func (e *Error) Error() string { return e.Name }

// Is matches any *Error with the same code, so wrapped values still
// compare against the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrGameNotFound         = &Error{CodeGameNotFound, "GameNotFound"}
	ErrNotPlayer            = &Error{CodeNotPlayer, "NotPlayer"}
	ErrGameAlreadyEnded     = &Error{CodeGameAlreadyEnded, "GameAlreadyEnded"}
	ErrCommitmentAlreadySet = &Error{CodeCommitmentAlreadySet, "CommitmentAlreadySet"}
	ErrCommitmentNotSet     = &Error{CodeCommitmentNotSet, "CommitmentNotSet"}
	ErrGuessPendingFeedback = &Error{CodeGuessPendingFeedback, "GuessPendingFeedback"}
	ErrNoPendingGuess       = &Error{CodeNoPendingGuess, "NoPendingGuess"}
	ErrInvalidGuessID       = &Error{CodeInvalidGuessID, "InvalidGuessId"}
	ErrInvalidFeedback      = &Error{CodeInvalidFeedback, "InvalidFeedback"}
	ErrInvalidPublicInputs  = &Error{CodeInvalidPublicInputs, "InvalidPublicInputs"}
	ErrInvalidProof         = &Error{CodeInvalidProof, "InvalidProof"}
	ErrAttemptsExhausted    = &Error{CodeAttemptsExhausted, "AttemptsExhausted"}
	ErrVerifierNotSet       = &Error{CodeVerifierNotSet, "VerifierNotSet"}
	ErrInvalidProofBlob     = &Error{CodeInvalidProofBlob, "InvalidProofBlob"}
	ErrInvalidGuess         = &Error{CodeInvalidGuess, "InvalidGuess"}
)

// internal/game/score.go
//
// Feedback scoring and guess validation for the Mastermind protocol.
// Responsibilities:
//   - Score a guess against a secret with the classic two-pass algorithm
//     (exact matches first, then min-count partial matches).
//   - Validate codes against the active Rules (range, duplicate policy).
//
// Scoring is what an accepted feedback proof attests to; the pure function
// here is the reference the circuit's relation must agree with, and it is
// used directly by the proving-party tooling and the test suite. The state
// machine itself never computes it, since it cannot see the secret.

package game

// Score computes (exact, partial) for a guess against a secret.
//
// Pass 1:
//   - Count exact (position-correct) matches.
//   - Count remaining (non-exact) secret digits by value.
//
// Pass 2:
//   - For each non-exact guess digit with remaining count, consume one
//     count and credit a partial.
//
// Excluding exact positions from the counts before the min-count sum makes
// the subtraction step of the textbook formula unnecessary and keeps
// repeated digits correct in both codes.
func Score(secret, guess [CodeLength]byte) (exact, partial uint32) {
	// Digit values are bytes; 256 buckets covers any configured alphabet.
	var counts [256]int

	for i := 0; i < CodeLength; i++ {
		if guess[i] == secret[i] {
			exact++
		} else {
			counts[secret[i]]++
		}
	}
	for i := 0; i < CodeLength; i++ {
		if guess[i] == secret[i] {
			continue
		}
		if counts[guess[i]] > 0 {
			partial++
			counts[guess[i]]--
		}
	}
	return exact, partial
}

// ValidateCode checks a guess (or secret) against the rules: every digit
// within [DigitMin, DigitMax], and no repeats unless the profile allows
// them. Returns ErrInvalidGuess on violation.
func ValidateCode(code [CodeLength]byte, rules Rules) error {
	var seen [256]bool
	for _, d := range code {
		if d < rules.DigitMin || d > rules.DigitMax {
			return ErrInvalidGuess
		}
		if !rules.AllowDuplicates {
			if seen[d] {
				return ErrInvalidGuess
			}
			seen[d] = true
		}
	}
	return nil
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreGoldenVectors(t *testing.T) {
	cases := []struct {
		name           string
		secret, guess  [CodeLength]byte
		exact, partial uint32
	}{
		{"all exact", [4]byte{1, 2, 3, 4}, [4]byte{1, 2, 3, 4}, 4, 0},
		{"full reversal", [4]byte{1, 2, 3, 4}, [4]byte{4, 3, 2, 1}, 0, 4},
		{"no overlap", [4]byte{1, 2, 3, 4}, [4]byte{5, 6, 5, 6}, 0, 0},
		{"mixed", [4]byte{1, 2, 3, 4}, [4]byte{1, 3, 2, 5}, 1, 2},
		{"single swap", [4]byte{1, 2, 3, 4}, [4]byte{1, 2, 4, 3}, 2, 2},
		// Duplicate digits: a repeated guess digit may only consume as
		// many partial credits as the secret actually holds.
		{"guess repeats digit once in secret", [4]byte{1, 2, 3, 4}, [4]byte{2, 2, 5, 5}, 1, 0},
		{"secret repeats digit", [4]byte{2, 2, 3, 4}, [4]byte{2, 5, 2, 5}, 1, 1},
		{"both repeat", [4]byte{1, 1, 2, 2}, [4]byte{2, 2, 1, 1}, 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exact, partial := Score(tc.secret, tc.guess)
			assert.Equal(t, tc.exact, exact, "exact")
			assert.Equal(t, tc.partial, partial, "partial")
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	secret := [4]byte{3, 1, 4, 2}
	guess := [4]byte{1, 2, 3, 4}
	e1, p1 := Score(secret, guess)
	for i := 0; i < 50; i++ {
		e, p := Score(secret, guess)
		require.Equal(t, e1, e)
		require.Equal(t, p1, p)
	}
}

func TestValidateCodeClassic(t *testing.T) {
	rules := ClassicRules

	require.NoError(t, ValidateCode([4]byte{1, 2, 3, 4}, rules))
	assert.ErrorIs(t, ValidateCode([4]byte{1, 2, 3, 5}, rules), ErrInvalidGuess, "digit above range")
	assert.ErrorIs(t, ValidateCode([4]byte{0, 2, 3, 4}, rules), ErrInvalidGuess, "digit below range")
	assert.ErrorIs(t, ValidateCode([4]byte{1, 1, 2, 3}, rules), ErrInvalidGuess, "duplicate digit")
}

func TestValidateCodeExtended(t *testing.T) {
	rules := ExtendedRules

	require.NoError(t, ValidateCode([4]byte{3, 6, 1, 5}, rules))
	assert.ErrorIs(t, ValidateCode([4]byte{1, 2, 3, 7}, rules), ErrInvalidGuess)
	assert.ErrorIs(t, ValidateCode([4]byte{6, 6, 1, 2}, rules), ErrInvalidGuess)

	duplicates := rules
	duplicates.AllowDuplicates = true
	require.NoError(t, ValidateCode([4]byte{6, 6, 1, 2}, duplicates))
}

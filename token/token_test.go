// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketpuzzles/server/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := New("roundtrip-secret")

	for puzzle := 1; puzzle <= models.PuzzleCount; puzzle++ {
		for part := 1; part <= models.PartCount; part++ {
			value, err := codec.Encode(puzzle, part)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(value), MinLength)

			gotPuzzle, gotPart, err := codec.Decode(value)
			require.NoError(t, err)
			assert.Equal(t, puzzle, gotPuzzle)
			assert.Equal(t, part, gotPart)
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	codec := New("secret")

	tests := []struct {
		name   string
		puzzle int
		part   int
	}{
		{"puzzle zero", 0, 1},
		{"puzzle too high", models.PuzzleCount + 1, 1},
		{"part zero", 1, 0},
		{"part too high", 1, models.PartCount + 1},
		{"negative puzzle", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Encode(tt.puzzle, tt.part)
			assert.Error(t, err)
		})
	}
}

func TestDecodeRejectsTampering(t *testing.T) {
	codec := New("signing-secret")

	value, err := codec.Encode(5, 2)
	require.NoError(t, err)

	// Flip a byte in the payload; the signature no longer matches.
	tampered := []byte(value)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}
	_, _, err = codec.Decode(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	value, err := New("secret-one").Encode(3, 1)
	require.NoError(t, err)

	_, _, err = New("secret-two").Decode(value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := New("secret")

	for _, value := range []string{
		"",
		"not a token",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"ey.ey.ey",
	} {
		_, _, err := codec.Decode(value)
		assert.ErrorIs(t, err, ErrInvalidToken, "value %q", value)
	}
}

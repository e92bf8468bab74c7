// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketpuzzles/server/models"
)

var ErrInvalidToken = errors.New("invalid progress token")

// MinLength is a cheap pre-filter applied to cookie values before a
// decode is attempted. Anything shorter cannot be one of our tokens,
// and browsers carry plenty of unrelated cookies.
const MinLength = 40

// claims encodes one progress fact. No expiry: solved stays solved.
type claims struct {
	Puzzle int `json:"p"`
	Part   int `json:"t"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the tamper-evident tokens that carry
// anonymous progress in cookies.
type Codec struct {
	secret []byte
}

func New(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode mints a signed token for "puzzle solved part".
func (c *Codec) Encode(puzzle, part int) (string, error) {
	if puzzle < 1 || puzzle > models.PuzzleCount || part < 1 || part > models.PartCount {
		return "", fmt.Errorf("encode progress token: puzzle %d part %d out of range", puzzle, part)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{Puzzle: puzzle, Part: part})
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign progress token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token and returns its (puzzle, part) fact.
// Any failure is ErrInvalidToken; callers scanning cookies treat that
// as "not one of ours" and move on.
func (c *Codec) Decode(value string) (puzzle, part int, err error) {
	var parsed claims
	_, err = jwt.ParseWithClaims(value, &parsed, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return 0, 0, ErrInvalidToken
	}
	if parsed.Puzzle < 1 || parsed.Puzzle > models.PuzzleCount ||
		parsed.Part < 1 || parsed.Part > models.PartCount {
		return 0, 0, ErrInvalidToken
	}
	return parsed.Puzzle, parsed.Part, nil
}

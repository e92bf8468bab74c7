// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token signs and verifies the tamper-evident tokens that carry
anonymous puzzle progress in cookies.

# Format

Each token states exactly one fact, "puzzle P part T is solved", signed
with HMAC-SHA256. Tokens never expire: solved stays solved.

	codec := token.New(secret)
	value, err := codec.Encode(3, 2)
	puzzle, part, err := codec.Decode(value)

# Verification

Decode accepts only HS256 signatures under the configured secret and
range-checks the claims. Every failure is token.ErrInvalidToken;
callers scanning a cookie jar treat that as "not one of ours" and move
on. token.MinLength is a cheap length pre-filter applied before any
cryptographic work.

Possession of a token proves nothing about identity, only that this
server once issued it; that is exactly the guarantee anonymous progress
needs.
*/
package token

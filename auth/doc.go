// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session cookies and related utilities.

# Sessions

A Session carries the logged-in user's Discord identity plus the OAuth
access token needed later for the guild-join call. Sessions are signed
JWTs with a seven-day expiry, stored in an HttpOnly cookie:

	err := auth.SetSessionCookie(w, session, secret)
	session, ok := auth.FromRequest(r, secret)
	auth.ClearSessionCookie(w)

A cookie that fails verification is simply an anonymous request; no
error surfaces to the caller.

# OAuth State

The CSRF state for the Discord handshake lives in its own short-lived
cookie, auth.StateCookie. Generate the value with:

	state, err := auth.GenerateID(16) // 32 hex characters

# ID Generation

Random hex IDs of any byte length:

	id, err := auth.GenerateID(16)
*/
package auth

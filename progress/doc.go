// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package progress tracks which puzzle parts a caller has solved, in two
interchangeable modes.

# Sources

A Source answers "what has this caller solved" and records new solves:

	src := tracker.ForUser(session.UserID) // durable store rows
	src := tracker.ForCookies(r.Cookies()) // signed cookies, no server state

Both report the same [10][2]bool vector, so gating and rendering never
care which mode is active. Solved facts are monotonic: a part flips
false to true and never back.

The cookie source decodes every cookie value on each request, skipping
values that are too short or fail verification; browsers carry plenty
of unrelated cookies. Its MarkSolved returns the signed token the
handler must set as a new cookie, and touches no server state at all.

# Answer Checking

CheckAnswer normalizes the submission, compares it to the stored
solution, and records the solve through the caller's source:

	result, err := tracker.CheckAnswer(ctx, src, puzzle, part, answer)
	if result.Correct && result.Cookie != "" {
		// anonymous solve: set the cookie
	}

Normalization turns underscores into spaces, upper-cases, and trims:

	progress.NormalizeAnswer(" rocket_fuel ") == "ROCKET FUEL"

A wrong answer mutates nothing.

# Registration

Register creates the all-false record on first login:

	err := tracker.Register(ctx, &models.ProgressRecord{UserID: id, Name: name})

A duplicate registration is rejected by the store. Callers that cannot
register a user must drop the session rather than continue with an
inconsistent identity; progress.IsNotRegistered distinguishes "no
record yet" from real store faults.
*/
package progress

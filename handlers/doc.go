// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Rocket Puzzles
API.

# Handler Types

Each handler is a struct with its collaborators injected:

  - ContentHandler: index, challenge pages, answer submission, champions
  - SessionHandler: Discord OAuth login, callback, logout
  - AdminHandler: settings and puzzle content editing
  - AccessHandler: community channel access after a solve

Handlers are created via constructor functions:

	contentHandler := handlers.NewContentHandler(cache, tracker, cfg)

# Progress Modes

Content handlers pick the progress source per request: a valid session
cookie selects durable store rows, anything else selects signed
progress cookies. A correct anonymous answer is returned to the browser
as a new cookie named progress_{puzzle}_{part}; nothing about an
anonymous caller is ever stored server-side.

# Release Gate

Challenge URLs use obfuscated keys. A key past the release gate answers
404 for non-admins, exactly like an unknown key, so probing URLs leaks
nothing. Admins see every puzzle.

# Admin Surface

Admin endpoints authorize against the cached access set; there is no
separate permission store. Updates respond with "updated" or
"no_change" so the edit form can tell a real write from a no-op
resubmission. The release value is clamped to 1..10 before writing.

# Channel Access

POST /access/{key} requires a session and a configured bot token. It
ensures guild membership, grants the verified role to fresh joins,
announces the solve in the puzzle's channel, and returns the puzzle's
flavor text.
*/
package handlers

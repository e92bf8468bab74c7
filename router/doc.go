// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Rocket Puzzles API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(cache, tracker, discordClient, cfg)

# Endpoints

Health:

	GET /health

Public content:

	GET  /                        - Site state and caller progress
	GET  /challenge/{key}         - Puzzle content (obfuscated key)
	POST /challenge/{key}/answer  - Submit an answer
	GET  /champions               - Users who solved everything

Session lifecycle (Discord OAuth):

	GET  /login    - Redirect to Discord authorization
	GET  /callback - Complete the handshake
	POST /logout   - Clear the session

Community access:

	POST /access/{key} - Join guild, grant role, announce solve

Admin (requires a session in the cached access set):

	GET  /admin/settings     - Channels, permitted users, release gate
	POST /admin/settings     - Rewrite access set, routing, release gate
	GET  /admin/puzzles/{id} - Raw puzzle content for the edit form
	POST /admin/puzzles/{id} - Diff-and-write puzzle content

All routes are wrapped in middleware.WithLogging. Authorization happens
inside the handlers; the router only dispatches.
*/
package router

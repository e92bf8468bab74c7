// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rocket Puzzles API server.

Rocket Puzzles is a weekly puzzle challenge site: ten puzzles, two scored
parts each, released one per week behind a gate. Visitors can solve
anonymously (progress rides in signed cookies) or log in with Discord
for durable progress and community channel access.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SECRET_KEY=... TOKEN_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3419 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL or SQLite connection string
  - SECRET_KEY (-session-secret): Session cookie signing secret
  - TOKEN_SECRET (-token-secret): Progress token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - CLIENT_ID, CLIENT_SECRET, DISCORD_REDIRECT_URI, BOT_TOKEN: Discord integration
  - SEED_ADMIN_ID (-seed-admin): Extra admin granted on first seed

# Architecture

The server uses a handler-based architecture with dependency injection:

  - cache: In-memory mirror of puzzle content, solutions, access, release gate
  - store: Persistence interface and its database/sql implementation
  - progress: Dual-mode solve tracking (store rows or signed cookies)
  - token: Signed anonymous-progress tokens
  - auth: Session cookies
  - discord: OAuth and bot API client
  - handlers: HTTP request handlers (content, session, admin, access)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging and JSON helpers
  - models: Request/response and domain types
  - db: Schema creation and seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

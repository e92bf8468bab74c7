// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (via caarlos0/env), then CLI flags
override them.

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: PostgreSQL or SQLite connection string (required)
  - DatabaseType: "postgres" or "sqlite" (default: postgres)
  - BaseURL: Public base URL
  - SessionSecret: Session cookie signing secret (required)
  - TokenSecret: Progress token signing secret (required)
  - DiscordClientID / DiscordClientSecret / DiscordRedirectURI / DiscordBotToken
  - SeedAdminID: Extra admin granted on first seed

# Environment Variables

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	BASE_URL             → -base-url
	SECRET_KEY           → -session-secret
	TOKEN_SECRET         → -token-secret
	CLIENT_ID / CLIENT_SECRET / DISCORD_REDIRECT_URI / BOT_TOKEN
	SEED_ADMIN_ID        → -seed-admin

Secrets should come from the environment; the flags exist for dev
convenience.

# Validation

ParseFlags returns an error if DATABASE_URL, SECRET_KEY, or
TOKEN_SECRET is missing, or if the database type is not sqlite or
postgres.
*/
package cliparse

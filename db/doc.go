// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and first-run seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		// fatal
	}

Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
dialect subset shared by PostgreSQL and SQLite.

# Tables

  - puzzle: flavor text per puzzle
  - puzzle_part: the six content fields, exactly two rows per puzzle
  - solution: expected answers, one row per puzzle
  - obfuscation: static id <-> url_key <-> content_key mapping
  - access_entry: admin access set
  - discord_channel: channel routing ('guild', '1'..'10')
  - release_gate: singleton release value
  - user_progress: identified users
  - puzzle_progress: solved booleans, one row per user per puzzle

# Seeding

Seed inserts the rows the server cannot run without: release gate at 1,
the ten obfuscation rows, empty puzzle shells, the channel-routing
names, and the admin access set. Each group is written only when its
table is empty, so Seed runs on every start:

	if err := db.Seed(conn, cfg.SeedAdminID); err != nil {
		// fatal
	}

The permanently privileged admin is always seeded; SEED_ADMIN_ID adds
one more for bootstrap convenience.
*/
package db

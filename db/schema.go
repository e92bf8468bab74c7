// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the dialect subset shared by PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Puzzles
CREATE TABLE IF NOT EXISTS puzzle (
    id INTEGER PRIMARY KEY,
    flavor TEXT NOT NULL DEFAULT ''
);

-- Parts: exactly two per puzzle, created together with the puzzle row
CREATE TABLE IF NOT EXISTS puzzle_part (
    puzzle_id INTEGER NOT NULL REFERENCES puzzle(id) ON DELETE CASCADE,
    part INTEGER NOT NULL CHECK (part IN (1, 2)),
    title TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    instructions TEXT NOT NULL DEFAULT '',
    input_kind TEXT NOT NULL DEFAULT '',
    unsolved_form TEXT NOT NULL DEFAULT '',
    solved_form TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (puzzle_id, part)
);

-- Expected answers, one row per puzzle
CREATE TABLE IF NOT EXISTS solution (
    puzzle_id INTEGER PRIMARY KEY REFERENCES puzzle(id) ON DELETE CASCADE,
    part1 TEXT NOT NULL DEFAULT '',
    part2 TEXT NOT NULL DEFAULT ''
);

-- Static id obfuscation, seed-only
CREATE TABLE IF NOT EXISTS obfuscation (
    id INTEGER PRIMARY KEY,
    url_key TEXT NOT NULL UNIQUE,
    content_key TEXT NOT NULL UNIQUE
);

-- Admin access set
CREATE TABLE IF NOT EXISTS access_entry (
    user_id TEXT PRIMARY KEY
);

-- Channel routing for solve announcements ('guild', '1'..'10')
CREATE TABLE IF NOT EXISTS discord_channel (
    name TEXT PRIMARY KEY,
    channel_id TEXT NOT NULL DEFAULT ''
);

-- Release gate singleton
CREATE TABLE IF NOT EXISTS release_gate (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    release INTEGER NOT NULL CHECK (release >= 0 AND release <= 10)
);

-- Identified users
CREATE TABLE IF NOT EXISTS user_progress (
    user_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    avatar TEXT,
    created_at TIMESTAMP
);

-- Per-puzzle solved booleans, two per row
CREATE TABLE IF NOT EXISTS puzzle_progress (
    user_id TEXT NOT NULL REFERENCES user_progress(user_id) ON DELETE CASCADE,
    puzzle_id INTEGER NOT NULL,
    part1 BOOLEAN NOT NULL DEFAULT FALSE,
    part2 BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (user_id, puzzle_id)
);

CREATE INDEX IF NOT EXISTS idx_puzzle_part_puzzle_id ON puzzle_part(puzzle_id);
CREATE INDEX IF NOT EXISTS idx_puzzle_progress_user ON puzzle_progress(user_id);
`

// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/rocketpuzzles/server/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)

// FieldChange is one changed column of one puzzle part. The cache
// computes these against its last-known values so that a mutation
// writes exactly the fields that differ and nothing else.
type FieldChange struct {
	Part   int    // 1-based part index
	Column string // puzzle_part column name
	Value  string
}

// Snapshot is everything the cache loads at startup in one pass.
type Snapshot struct {
	Puzzles      map[int]models.Puzzle
	Solutions    map[int]models.Solution
	Obfuscations []models.Obfuscation
	Access       []string
	Channels     map[string]string
	Release      int
}

// Store is the durable-store contract the cache and progress tracker
// are written against. Every mutating method is one transaction: it
// either applies fully or not at all.
type Store interface {
	// LoadSnapshot performs the full cold load.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// UpdatePuzzle writes the given field changes and, when non-nil,
	// the flavor text, all inside one transaction.
	UpdatePuzzle(ctx context.Context, id int, fields []FieldChange, flavor *string) error

	// ReplaceAccess applies an access-set delta and replaces the
	// channel-routing map inside one transaction.
	ReplaceAccess(ctx context.Context, added, removed []string, channels map[string]string) error

	// UpdateRelease overwrites the release-gate singleton.
	UpdateRelease(ctx context.Context, value int) error

	// Progress returns a user's progress record, or ErrNotFound.
	Progress(ctx context.Context, userID string) (*models.ProgressRecord, error)

	// CreateProgress inserts an all-false record, or ErrDuplicate.
	CreateProgress(ctx context.Context, rec *models.ProgressRecord) error

	// MarkSolved sets a single (puzzle, part) boolean true. It never
	// clears a boolean back to false.
	MarkSolved(ctx context.Context, userID string, puzzle, part int) error

	// Champions lists users whose full progress vector is true.
	Champions(ctx context.Context) ([]models.Champion, error)
}

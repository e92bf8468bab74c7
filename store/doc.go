// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the persistence interface behind the cache and
progress tracker, and implements it on database/sql.

# Interface

Store is deliberately narrow: one snapshot read for the cold load,
delta writes for each mutable concern, and the progress operations:

	snap, err := st.LoadSnapshot(ctx)
	err = st.UpdatePuzzle(ctx, id, fieldChanges, flavor)
	err = st.ReplaceAccess(ctx, added, removed, channels)
	err = st.UpdateRelease(ctx, value)
	rec, err := st.Progress(ctx, userID)
	err = st.CreateProgress(ctx, rec)
	err = st.MarkSolved(ctx, userID, puzzle, part)
	champions, err := st.Champions(ctx)

Callers compute diffs; the store only applies them. Each multi-row
write runs in a single transaction.

# Errors

Two sentinels matter to callers:

	store.ErrNotFound  - row does not exist
	store.ErrDuplicate - unique constraint (progress registration)

Everything else is a wrapped driver error.

# SQL Implementation

NewSQL wraps a *sql.DB. Placeholders use the $N form, which both lib/pq
and modernc.org/sqlite accept, so one implementation serves PostgreSQL
in production and SQLite in development and tests. UpdatePuzzle
allowlists column names; values always travel through placeholders.
*/
package store

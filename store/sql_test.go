// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rocketpuzzles/server/db"
	"github.com/rocketpuzzles/server/models"
)

const extraAdminID = "100000000000000001"

// openTestDB runs the real schema and seed against in-memory SQLite.
// One connection only: each pooled connection would otherwise get its
// own empty :memory: database.
func openTestDB(t *testing.T) *SQL {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.CreateSchema(conn))
	require.NoError(t, db.Seed(conn, extraAdminID))
	return NewSQL(conn)
}

func TestLoadSnapshotSeeded(t *testing.T) {
	s := openTestDB(t)

	snap, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Puzzles, models.PuzzleCount)
	assert.Len(t, snap.Solutions, models.PuzzleCount)
	assert.Len(t, snap.Obfuscations, models.PuzzleCount)
	assert.Equal(t, 1, snap.Release)

	// Fresh puzzles are empty shells with both part rows present.
	p := snap.Puzzles[1]
	assert.Equal(t, 1, p.ID)
	assert.Empty(t, p.Flavor)
	assert.Empty(t, p.Parts[0].Title)
	assert.Empty(t, p.Parts[1].Title)

	assert.Contains(t, snap.Access, models.PrivilegedAdminID)
	assert.Contains(t, snap.Access, extraAdminID)

	// 'guild' plus one name per puzzle.
	assert.Len(t, snap.Channels, models.PuzzleCount+1)
	_, ok := snap.Channels["guild"]
	assert.True(t, ok)
}

func TestUpdatePuzzle(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	flavor := "a hint"
	changes := []FieldChange{
		{Part: 1, Column: "title", Value: "Week One"},
		{Part: 2, Column: "solved_form", Value: "<form>done</form>"},
	}
	require.NoError(t, s.UpdatePuzzle(ctx, 1, changes, &flavor))

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	p := snap.Puzzles[1]
	assert.Equal(t, "Week One", p.Parts[0].Title)
	assert.Equal(t, "<form>done</form>", p.Parts[1].SolvedForm)
	assert.Equal(t, "a hint", p.Flavor)

	// Untouched fields and puzzles stay empty.
	assert.Empty(t, p.Parts[0].Body)
	assert.Empty(t, snap.Puzzles[2].Parts[0].Title)
}

func TestUpdatePuzzleRejectsUnknownColumn(t *testing.T) {
	s := openTestDB(t)

	err := s.UpdatePuzzle(context.Background(), 1,
		[]FieldChange{{Part: 1, Column: "puzzle_id", Value: "2"}}, nil)
	assert.Error(t, err)
}

func TestReplaceAccess(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	channels := map[string]string{"guild": "g-123", "3": "c-333"}
	err := s.ReplaceAccess(ctx, []string{"900000000000000009"}, []string{extraAdminID}, channels)
	require.NoError(t, err)

	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap.Access, "900000000000000009")
	assert.Contains(t, snap.Access, models.PrivilegedAdminID)
	assert.NotContains(t, snap.Access, extraAdminID)
	assert.Equal(t, "g-123", snap.Channels["guild"])
	assert.Equal(t, "c-333", snap.Channels["3"])
	assert.Equal(t, "", snap.Channels["4"])
}

func TestUpdateRelease(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateRelease(ctx, 7))
	snap, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Release)
}

func TestProgressLifecycle(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	_, err := s.Progress(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := &models.ProgressRecord{UserID: "u-1", Name: "lin", Avatar: "av"}
	require.NoError(t, s.CreateProgress(ctx, rec))

	got, err := s.Progress(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "lin", got.Name)
	assert.Equal(t, "av", got.Avatar)
	assert.Equal(t, models.ProgressVector{}, got.Solved)

	require.NoError(t, s.MarkSolved(ctx, "u-1", 3, 1))
	require.NoError(t, s.MarkSolved(ctx, "u-1", 3, 2))
	require.NoError(t, s.MarkSolved(ctx, "u-1", 10, 2))

	got, err = s.Progress(ctx, "u-1")
	require.NoError(t, err)
	assert.True(t, got.Solved[2][0])
	assert.True(t, got.Solved[2][1])
	assert.True(t, got.Solved[9][1])
	assert.False(t, got.Solved[9][0])

	// Re-marking is harmless.
	require.NoError(t, s.MarkSolved(ctx, "u-1", 3, 1))
}

func TestCreateProgressDuplicate(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.CreateProgress(ctx, &models.ProgressRecord{UserID: "u-dup", Name: "first"}))
	err := s.CreateProgress(ctx, &models.ProgressRecord{UserID: "u-dup", Name: "second"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// The failed insert rolled back without touching the original.
	got, err := s.Progress(ctx, "u-dup")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
}

func TestMarkSolvedUnknownUser(t *testing.T) {
	s := openTestDB(t)
	err := s.MarkSolved(context.Background(), "ghost", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChampions(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, s.CreateProgress(ctx, &models.ProgressRecord{UserID: "u-full", Name: "zoe"}))
	require.NoError(t, s.CreateProgress(ctx, &models.ProgressRecord{UserID: "u-partial", Name: "kim"}))

	for id := 1; id <= models.PuzzleCount; id++ {
		require.NoError(t, s.MarkSolved(ctx, "u-full", id, 1))
		require.NoError(t, s.MarkSolved(ctx, "u-full", id, 2))
	}
	require.NoError(t, s.MarkSolved(ctx, "u-partial", 1, 1))

	champions, err := s.Champions(ctx)
	require.NoError(t, err)
	require.Len(t, champions, 1)
	assert.Equal(t, "zoe", champions[0].Name)
}

// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rocketpuzzles/server/models"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, CreateSchema(conn))
	require.NoError(t, CreateSchema(conn))
}

func TestSeedIdempotent(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, CreateSchema(conn))
	require.NoError(t, Seed(conn, "100000000000000001"))
	require.NoError(t, Seed(conn, "100000000000000001"))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM obfuscation`).Scan(&n))
	assert.Equal(t, models.PuzzleCount, n)

	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM puzzle`).Scan(&n))
	assert.Equal(t, models.PuzzleCount, n)

	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM puzzle_part`).Scan(&n))
	assert.Equal(t, models.PuzzleCount*models.PartCount, n)

	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM access_entry`).Scan(&n))
	assert.Equal(t, 2, n)

	var release int
	require.NoError(t, conn.QueryRow(`SELECT release FROM release_gate WHERE id = 1`).Scan(&release))
	assert.Equal(t, 1, release)
}

func TestSeedWithoutExtraAdmin(t *testing.T) {
	conn := openMemory(t)
	require.NoError(t, CreateSchema(conn))
	require.NoError(t, Seed(conn, ""))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM access_entry`).Scan(&n))
	assert.Equal(t, 1, n)

	var id string
	require.NoError(t, conn.QueryRow(`SELECT user_id FROM access_entry`).Scan(&id))
	assert.Equal(t, models.PrivilegedAdminID, id)
}

func TestSeedObfuscationsUnique(t *testing.T) {
	urlKeys := map[string]bool{}
	contentKeys := map[string]bool{}
	for _, o := range seedObfuscations {
		assert.False(t, urlKeys[o.URLKey], "duplicate url key %s", o.URLKey)
		assert.False(t, contentKeys[o.ContentKey], "duplicate content key %s", o.ContentKey)
		urlKeys[o.URLKey] = true
		contentKeys[o.ContentKey] = true
	}
	assert.Len(t, urlKeys, models.PuzzleCount)
}

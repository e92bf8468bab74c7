// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/rocketpuzzles/server/models"
)

// seedObfuscations is the static id mapping. The URL keys are what
// visitors see in challenge links; the content keys address page
// assets. Bijective by construction and by the UNIQUE constraints.
var seedObfuscations = []models.Obfuscation{
	{ID: 1, URLKey: "t4ff345gSkQrOZmPQJChtw", ContentKey: "8e29fd2c797c26da"},
	{ID: 2, URLKey: "7gqvZ78E83atuRQFhlb1Hw", ContentKey: "f80f482faa53e8dd"},
	{ID: 3, URLKey: "HSQdB852VRRrtmkfUB3efA", ContentKey: "a74b354f1d24915a"},
	{ID: 4, URLKey: "0a0eGZct1g4jGM87blNT7Q", ContentKey: "0936d2f613ca5153"},
	{ID: 5, URLKey: "cmfaaxpxu5zlmqKuqTaI2A", ContentKey: "89bdbd95a974e920"},
	{ID: 6, URLKey: "PQPM7aCOxurcuhlI7Exdjw", ContentKey: "0b120138bd68b054"},
	{ID: 7, URLKey: "BrDwPV2s6Xri6jndOt4NYg", ContentKey: "166e4d9bd8925981"},
	{ID: 8, URLKey: "pR7E8yDbYD8x4wLxt1sZ6A", ContentKey: "7e080b5b3709c31e"},
	{ID: 9, URLKey: "AKhb9NrpDLc6qMbkgpxkog", ContentKey: "e7ace8bf3a01dfc1"},
	{ID: 10, URLKey: "nG4os9WirzI0bKuX8jxEzQ", ContentKey: "24b5a6ac3b2bafa8"},
}

// Seed inserts the rows the server cannot run without: the release
// gate, the obfuscation table, empty puzzle/part/solution rows, the
// channel-routing names, and the admin access set. Each group is only
// written when its table is empty, so Seed is safe on every start.
// extraAdminID, when non-empty, is granted access alongside the
// permanently privileged identity.
func Seed(db *sql.DB, extraAdminID string) error {
	if err := seedOnce(db, `SELECT COUNT(*) FROM release_gate`, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO release_gate (id, release) VALUES (1, 1)`)
		return err
	}); err != nil {
		return fmt.Errorf("seed release gate: %w", err)
	}

	if err := seedOnce(db, `SELECT COUNT(*) FROM obfuscation`, func(tx *sql.Tx) error {
		for _, o := range seedObfuscations {
			_, err := tx.Exec(`
				INSERT INTO obfuscation (id, url_key, content_key) VALUES ($1, $2, $3)
			`, o.ID, o.URLKey, o.ContentKey)
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("seed obfuscations: %w", err)
	}

	if err := seedOnce(db, `SELECT COUNT(*) FROM puzzle`, func(tx *sql.Tx) error {
		for id := 1; id <= models.PuzzleCount; id++ {
			if _, err := tx.Exec(`INSERT INTO puzzle (id, flavor) VALUES ($1, '')`, id); err != nil {
				return err
			}
			for part := 1; part <= models.PartCount; part++ {
				if _, err := tx.Exec(`INSERT INTO puzzle_part (puzzle_id, part) VALUES ($1, $2)`, id, part); err != nil {
					return err
				}
			}
			if _, err := tx.Exec(`INSERT INTO solution (puzzle_id) VALUES ($1)`, id); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("seed puzzles: %w", err)
	}

	if err := seedOnce(db, `SELECT COUNT(*) FROM discord_channel`, func(tx *sql.Tx) error {
		names := []string{"guild"}
		for i := 1; i <= models.PuzzleCount; i++ {
			names = append(names, strconv.Itoa(i))
		}
		for _, name := range names {
			if _, err := tx.Exec(`INSERT INTO discord_channel (name, channel_id) VALUES ($1, '')`, name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("seed channels: %w", err)
	}

	if err := seedOnce(db, `SELECT COUNT(*) FROM access_entry`, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO access_entry (user_id) VALUES ($1)`, models.PrivilegedAdminID); err != nil {
			return err
		}
		if extraAdminID != "" && extraAdminID != models.PrivilegedAdminID {
			if _, err := tx.Exec(`INSERT INTO access_entry (user_id) VALUES ($1)`, extraAdminID); err != nil {
				return err
			}
			slog.Info("seeded admin access", "user_id", extraAdminID)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("seed access entries: %w", err)
	}

	return nil
}

// seedOnce runs insert in a transaction when countQuery reports zero rows.
func seedOnce(db *sql.DB, countQuery string, insert func(*sql.Tx) error) error {
	var n int
	if err := db.QueryRow(countQuery).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insert(tx); err != nil {
		return err
	}
	return tx.Commit()
}

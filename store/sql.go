// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rocketpuzzles/server/models"
)

// partColumns is the allowlist of puzzle_part columns UpdatePuzzle may
// touch. Field changes naming any other column are rejected.
var partColumns = map[string]bool{
	"title":         true,
	"body":          true,
	"instructions":  true,
	"input_kind":    true,
	"unsolved_form": true,
	"solved_form":   true,
}

// SQL implements Store on database/sql. Placeholders use the $N form,
// which both lib/pq and modernc.org/sqlite accept.
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Puzzles:   make(map[int]models.Puzzle),
		Solutions: make(map[int]models.Solution),
		Channels:  make(map[string]string),
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, flavor FROM puzzle ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Puzzle
		if err := rows.Scan(&p.ID, &p.Flavor); err != nil {
			return nil, fmt.Errorf("scan puzzle: %w", err)
		}
		snap.Puzzles[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT puzzle_id, part, title, body, instructions, input_kind, unsolved_form, solved_form
		FROM puzzle_part ORDER BY puzzle_id, part
	`)
	if err != nil {
		return nil, fmt.Errorf("load parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, part int
		var pt models.Part
		if err := rows.Scan(&id, &part, &pt.Title, &pt.Body, &pt.Instructions,
			&pt.InputKind, &pt.UnsolvedForm, &pt.SolvedForm); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		p, ok := snap.Puzzles[id]
		if !ok || part < 1 || part > models.PartCount {
			return nil, fmt.Errorf("orphan part row: puzzle %d part %d", id, part)
		}
		p.Parts[part-1] = pt
		snap.Puzzles[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load parts: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT puzzle_id, part1, part2 FROM solution`)
	if err != nil {
		return nil, fmt.Errorf("load solutions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var sol models.Solution
		if err := rows.Scan(&id, &sol.Part1, &sol.Part2); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		snap.Solutions[id] = sol
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load solutions: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, url_key, content_key FROM obfuscation ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load obfuscations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o models.Obfuscation
		if err := rows.Scan(&o.ID, &o.URLKey, &o.ContentKey); err != nil {
			return nil, fmt.Errorf("scan obfuscation: %w", err)
		}
		snap.Obfuscations = append(snap.Obfuscations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load obfuscations: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT user_id FROM access_entry`)
	if err != nil {
		return nil, fmt.Errorf("load access entries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan access entry: %w", err)
		}
		snap.Access = append(snap.Access, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load access entries: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT name, channel_id FROM discord_channel`)
	if err != nil {
		return nil, fmt.Errorf("load channels: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		snap.Channels[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load channels: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT release FROM release_gate WHERE id = 1`).Scan(&snap.Release)
	if err != nil {
		return nil, fmt.Errorf("load release gate: %w", err)
	}

	return snap, nil
}

func (s *SQL) UpdatePuzzle(ctx context.Context, id int, fields []FieldChange, flavor *string) error {
	for _, f := range fields {
		if !partColumns[f.Column] {
			return fmt.Errorf("unknown part column %q", f.Column)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, f := range fields {
		// Column name is allowlisted above; values go through placeholders.
		q := fmt.Sprintf(`UPDATE puzzle_part SET %s = $1 WHERE puzzle_id = $2 AND part = $3`, f.Column)
		if _, err := tx.ExecContext(ctx, q, f.Value, id, f.Part); err != nil {
			return fmt.Errorf("update part %d %s: %w", f.Part, f.Column, err)
		}
	}
	if flavor != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE puzzle SET flavor = $1 WHERE id = $2`, *flavor, id); err != nil {
			return fmt.Errorf("update flavor: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQL) ReplaceAccess(ctx context.Context, added, removed []string, channels map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, id := range removed {
		if _, err := tx.ExecContext(ctx, `DELETE FROM access_entry WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("delete access entry: %w", err)
		}
	}
	for _, id := range added {
		if _, err := tx.ExecContext(ctx, `INSERT INTO access_entry (user_id) VALUES ($1)`, id); err != nil {
			return fmt.Errorf("insert access entry: %w", err)
		}
	}
	for name, id := range channels {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO discord_channel (name, channel_id) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET channel_id = EXCLUDED.channel_id
		`, name, id)
		if err != nil {
			return fmt.Errorf("upsert channel %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQL) UpdateRelease(ctx context.Context, value int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE release_gate SET release = $1 WHERE id = 1`, value)
	if err != nil {
		return fmt.Errorf("update release gate: %w", err)
	}
	return nil
}

func (s *SQL) Progress(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	rec := &models.ProgressRecord{UserID: userID}
	var avatar sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT name, avatar FROM user_progress WHERE user_id = $1
	`, userID).Scan(&rec.Name, &avatar)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	rec.Avatar = avatar.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT puzzle_id, part1, part2 FROM puzzle_progress WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var p1, p2 bool
		if err := rows.Scan(&id, &p1, &p2); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		if id >= 1 && id <= models.PuzzleCount {
			rec.Solved[id-1][0] = p1
			rec.Solved[id-1][1] = p2
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	return rec, nil
}

func (s *SQL) CreateProgress(ctx context.Context, rec *models.ProgressRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_progress (user_id, name, avatar, created_at)
		VALUES ($1, $2, $3, $4)
	`, rec.UserID, rec.Name, rec.Avatar, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	for id := 1; id <= models.PuzzleCount; id++ {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO puzzle_progress (user_id, puzzle_id, part1, part2)
			VALUES ($1, $2, FALSE, FALSE)
		`, rec.UserID, id)
		if err != nil {
			return fmt.Errorf("insert progress row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQL) MarkSolved(ctx context.Context, userID string, puzzle, part int) error {
	col := "part1"
	if part == 2 {
		col = "part2"
	}
	q := fmt.Sprintf(`UPDATE puzzle_progress SET %s = TRUE WHERE user_id = $1 AND puzzle_id = $2`, col)
	res, err := s.db.ExecContext(ctx, q, userID, puzzle)
	if err != nil {
		return fmt.Errorf("mark solved: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) Champions(ctx context.Context) ([]models.Champion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.name, u.avatar
		FROM user_progress u
		WHERE (SELECT COUNT(*) FROM puzzle_progress p
		       WHERE p.user_id = u.user_id AND p.part1 AND p.part2) = $1
		ORDER BY u.name
	`, models.PuzzleCount)
	if err != nil {
		return nil, fmt.Errorf("query champions: %w", err)
	}
	defer rows.Close()

	champions := []models.Champion{}
	for rows.Next() {
		var c models.Champion
		var avatar sql.NullString
		if err := rows.Scan(&c.Name, &avatar); err != nil {
			return nil, fmt.Errorf("scan champion: %w", err)
		}
		c.Avatar = avatar.String
		champions = append(champions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query champions: %w", err)
	}
	return champions, nil
}

// isUniqueViolation matches the unique-constraint messages of both
// supported drivers.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") || // lib/pq
		strings.Contains(msg, "UNIQUE constraint failed") // modernc.org/sqlite
}

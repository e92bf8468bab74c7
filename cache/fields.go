// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"strings"

	"github.com/rocketpuzzles/server/models"
)

// partField describes one diffable column of a part. Content updates
// iterate this list instead of comparing named fields ad hoc, so adding
// a field to models.Part is a one-line change here.
type partField struct {
	column string
	get    func(*models.Part) string
	set    func(*models.Part, string)
}

var partFields = []partField{
	{"title", func(p *models.Part) string { return p.Title }, func(p *models.Part, v string) { p.Title = v }},
	{"body", func(p *models.Part) string { return p.Body }, func(p *models.Part, v string) { p.Body = v }},
	{"instructions", func(p *models.Part) string { return p.Instructions }, func(p *models.Part, v string) { p.Instructions = v }},
	{"input_kind", func(p *models.Part) string { return p.InputKind }, func(p *models.Part, v string) { p.InputKind = v }},
	{"unsolved_form", func(p *models.Part) string { return p.UnsolvedForm }, func(p *models.Part, v string) { p.UnsolvedForm = v }},
	{"solved_form", func(p *models.Part) string { return p.SolvedForm }, func(p *models.Part, v string) { p.SolvedForm = v }},
}

// normalizeNewlines canonicalizes line endings to \n before any
// comparison or write. Admin edits arrive from browsers on every
// platform, and a CRLF-only difference must not count as a change.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

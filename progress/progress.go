// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/models"
	"github.com/rocketpuzzles/server/store"
	"github.com/rocketpuzzles/server/token"
)

// Source answers "what has this caller solved" and records a new solve.
// Two implementations exist: durable store rows for identified users
// and signed cookies for anonymous ones. They report the same vector
// shape, so gating and rendering never care which mode is active.
type Source interface {
	// Vector returns the caller's full solved/unsolved state.
	Vector(ctx context.Context) (models.ProgressVector, error)

	// MarkSolved records one solved fact. The durable source returns
	// an empty cookie; the cookie source returns the signed token the
	// caller must set as a new cookie, and touches no server state.
	MarkSolved(ctx context.Context, puzzle, part int) (cookie string, err error)
}

// CheckResult is the outcome of one answer submission.
type CheckResult struct {
	Correct bool
	Cookie  string // non-empty only for a correct anonymous solve
}

// Tracker builds progress sources and runs the answer check.
type Tracker struct {
	cache *cache.Cache
	store store.Store
	codec *token.Codec
}

func New(c *cache.Cache, st store.Store, codec *token.Codec) *Tracker {
	return &Tracker{cache: c, store: st, codec: codec}
}

// ForUser returns the durable source for an identified caller.
func (t *Tracker) ForUser(userID string) Source {
	return &durableSource{store: t.store, userID: userID}
}

// ForCookies returns the ephemeral source for an anonymous caller.
func (t *Tracker) ForCookies(cookies []*http.Cookie) Source {
	return &cookieSource{codec: t.codec, cookies: cookies}
}

// Register creates the all-false progress record on first login.
// Callers that see an error here must treat the caller as not logged
// in for this request: losing a session beats corrupting progress.
func (t *Tracker) Register(ctx context.Context, rec *models.ProgressRecord) error {
	if err := t.store.CreateProgress(ctx, rec); err != nil {
		return fmt.Errorf("register %s: %w", rec.UserID, err)
	}
	slog.Info("user registered", "user_id", rec.UserID, "name", rec.Name)
	return nil
}

// NormalizeAnswer canonicalizes a submitted answer the way solutions
// are stored: underscores become spaces, upper-cased, trimmed.
func NormalizeAnswer(s string) string {
	return strings.TrimSpace(strings.ToUpper(strings.ReplaceAll(s, "_", " ")))
}

// CheckAnswer compares a submission against the stored solution and,
// when correct, records the solve through the caller's source. A wrong
// answer mutates nothing.
func (t *Tracker) CheckAnswer(ctx context.Context, src Source, puzzle, part int, answer string) (CheckResult, error) {
	sol, err := t.cache.Solution(puzzle)
	if err != nil {
		return CheckResult{}, err
	}
	if NormalizeAnswer(answer) != sol.Expected(part) {
		return CheckResult{Correct: false}, nil
	}

	cookie, err := src.MarkSolved(ctx, puzzle, part)
	if err != nil {
		return CheckResult{}, fmt.Errorf("mark solved %d/%d: %w", puzzle, part, err)
	}
	return CheckResult{Correct: true, Cookie: cookie}, nil
}

// durableSource reads and writes UserProgress rows. Writes are
// monotonic: a boolean only ever flips false to true.
type durableSource struct {
	store  store.Store
	userID string
}

func (s *durableSource) Vector(ctx context.Context) (models.ProgressVector, error) {
	rec, err := s.store.Progress(ctx, s.userID)
	if err != nil {
		// ErrNotFound is a signal to the registration path, not a
		// server fault; either way the caller gets a zero vector.
		return models.ProgressVector{}, err
	}
	return rec.Solved, nil
}

func (s *durableSource) MarkSolved(ctx context.Context, puzzle, part int) (string, error) {
	if err := s.store.MarkSolved(ctx, s.userID, puzzle, part); err != nil {
		return "", err
	}
	return "", nil
}

// cookieSource reconstructs progress per request from signed cookies.
// Nothing it does is ever persisted server-side.
type cookieSource struct {
	codec   *token.Codec
	cookies []*http.Cookie
}

func (s *cookieSource) Vector(ctx context.Context) (models.ProgressVector, error) {
	var vec models.ProgressVector
	for _, c := range s.cookies {
		if len(c.Value) < token.MinLength {
			continue
		}
		puzzle, part, err := s.codec.Decode(c.Value)
		if err != nil {
			// Not one of ours; browsers carry unrelated cookies.
			continue
		}
		vec[puzzle-1][part-1] = true
	}
	return vec, nil
}

func (s *cookieSource) MarkSolved(ctx context.Context, puzzle, part int) (string, error) {
	return s.codec.Encode(puzzle, part)
}

// IsNotRegistered reports whether a Vector error means the identified
// caller simply has no record yet.
func IsNotRegistered(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

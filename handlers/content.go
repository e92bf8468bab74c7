// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketpuzzles/server/auth"
	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/middleware"
	"github.com/rocketpuzzles/server/models"
	"github.com/rocketpuzzles/server/progress"
)

// progressCookieMaxAge keeps anonymous solves around for a year.
const progressCookieMaxAge = 365 * 24 * 60 * 60

type ContentHandler struct {
	cache   *cache.Cache
	tracker *progress.Tracker
	cfg     cliparse.Config
}

func NewContentHandler(c *cache.Cache, t *progress.Tracker, cfg cliparse.Config) *ContentHandler {
	return &ContentHandler{cache: c, tracker: t, cfg: cfg}
}

// sourceFor picks the progress mode for this request: durable rows when
// a valid session is present, signed cookies otherwise.
func (h *ContentHandler) sourceFor(r *http.Request) (progress.Source, *auth.Session) {
	if session, ok := auth.FromRequest(r, h.cfg.SessionSecret); ok {
		return h.tracker.ForUser(session.UserID), &session
	}
	return h.tracker.ForCookies(r.Cookies()), nil
}

// vectorFor resolves the caller's progress, treating a missing record
// as an empty vector.
func vectorFor(r *http.Request, src progress.Source) models.ProgressVector {
	vec, err := src.Vector(r.Context())
	if err != nil && !progress.IsNotRegistered(err) {
		slog.Error("failed to load progress", "error", err)
	}
	return vec
}

// Index handles GET /
func (h *ContentHandler) Index(w http.ResponseWriter, r *http.Request) {
	src, session := h.sourceFor(r)
	resp := models.IndexResponse{
		Release:  h.cache.Release(),
		Progress: vectorFor(r, src),
	}
	if session != nil {
		resp.LoggedIn = true
		resp.Name = session.Name
		resp.Avatar = session.Avatar
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// resolvePuzzle maps an obfuscated URL key to a cached puzzle, applying
// the release gate for non-admins. Gated and unknown puzzles are both
// reported as not found so URLs leak nothing.
func (h *ContentHandler) resolvePuzzle(r *http.Request, session *auth.Session) (int, models.Puzzle, error) {
	key := r.PathValue("key")
	id, err := h.cache.Deobfuscate(key)
	if err != nil {
		return 0, models.Puzzle{}, err
	}
	admin := session != nil && h.cache.IsAdmin(session.UserID)
	if id > h.cache.Release() && !admin {
		return 0, models.Puzzle{}, cache.ErrUnknownID
	}
	puzzle, err := h.cache.Puzzle(id)
	if err != nil {
		return 0, models.Puzzle{}, err
	}
	return id, puzzle, nil
}

// Challenge handles GET /challenge/{key}
func (h *ContentHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	src, session := h.sourceFor(r)
	id, puzzle, err := h.resolvePuzzle(r, session)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	vec := vectorFor(r, src)
	solved := vec[id-1]

	contentKey, _ := h.cache.ContentKey(id)
	resp := models.ChallengeResponse{
		Key:        r.PathValue("key"),
		ContentKey: contentKey,
		Parts:      puzzle.Parts,
		PartTwo:    solved[0],
		Done:       solved[1] && session != nil,
		Progress:   solved,
	}
	for i := range puzzle.Parts {
		if solved[i] {
			resp.Forms[i] = puzzle.Parts[i].SolvedForm
		} else {
			resp.Forms[i] = puzzle.Parts[i].UnsolvedForm
		}
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /challenge/{key}/answer
func (h *ContentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	src, session := h.sourceFor(r)
	id, _, err := h.resolvePuzzle(r, session)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Part < 1 || req.Part > models.PartCount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "part must be 1 or 2")
		return
	}
	if req.Answer == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answer is required")
		return
	}

	result, err := h.tracker.CheckAnswer(r.Context(), src, id, req.Part, req.Answer)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
			return
		}
		slog.Error("failed to record solve", "error", err, "puzzle", id, "part", req.Part)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record answer")
		return
	}

	if !result.Correct {
		middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswerResponse{
			Correct: false,
			Message: "Incorrect. Please try again.",
		})
		return
	}

	if result.Cookie != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     fmt.Sprintf("progress_%d_%d", id, req.Part),
			Value:    result.Cookie,
			Path:     "/",
			MaxAge:   progressCookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
	}

	slog.Info("answer accepted", "puzzle", id, "part", req.Part, "anonymous", session == nil)
	middleware.JSONResponse(w, http.StatusOK, models.SubmitAnswerResponse{Correct: true})
}

// Champions handles GET /champions
func (h *ContentHandler) Champions(w http.ResponseWriter, r *http.Request) {
	champions, err := h.cache.Champions(r.Context())
	if err != nil {
		slog.Error("failed to list champions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ChampionsResponse{Champions: champions})
}

// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketpuzzles/server/auth"
	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/middleware"
	"github.com/rocketpuzzles/server/models"
)

type AdminHandler struct {
	cache *cache.Cache
	cfg   cliparse.Config
}

func NewAdminHandler(c *cache.Cache, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{cache: c, cfg: cfg}
}

// requireAdmin authorizes the caller against the cached access set.
// The cache performs no authorization itself; this is the gate.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	session, ok := auth.FromRequest(r, h.cfg.SessionSecret)
	if !ok || !h.cache.IsAdmin(session.UserID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "No authorization")
		return auth.Session{}, false
	}
	return session, true
}

// GetSettings handles GET /admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	channels := make([]string, models.PuzzleCount)
	for i := 1; i <= models.PuzzleCount; i++ {
		channels[i-1] = h.cache.Channel(strconv.Itoa(i))
	}

	// The permanent admin is not shown or editable.
	permitted := []string{}
	for _, id := range h.cache.Access() {
		if id != models.PrivilegedAdminID {
			permitted = append(permitted, id)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminSettingsResponse{
		Guild:     h.cache.Channel("guild"),
		Channels:  channels,
		Permitted: permitted,
		Release:   h.cache.Release(),
	})
}

// UpdateSettings handles POST /admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req models.UpdateSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Channels) != models.PuzzleCount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "channels must list all ten puzzle channels")
		return
	}

	channels := map[string]string{"guild": req.Guild}
	for i, id := range req.Channels {
		channels[strconv.Itoa(i+1)] = id
	}

	if err := h.cache.UpdateAccessAndRouting(r.Context(), channels, req.Permitted); err != nil {
		slog.Error("failed to update access and routing", "error", err, "admin", session.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	release := min(models.PuzzleCount, max(1, req.Release))
	result, err := h.cache.UpdateReleaseGate(r.Context(), release)
	if err != nil {
		slog.Error("failed to update release gate", "error", err, "admin", session.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update release")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdateSettingsResponse{Release: result.String()})
}

// GetPuzzle handles GET /admin/puzzles/{id}
// Returns the raw cached entry for the edit form.
func (h *AdminHandler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid puzzle id")
		return
	}
	puzzle, err := h.cache.Puzzle(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, puzzle)
}

// UpdatePuzzle handles POST /admin/puzzles/{id}
func (h *AdminHandler) UpdatePuzzle(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid puzzle id")
		return
	}

	var req models.UpdatePuzzleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.cache.UpdatePuzzleContent(r.Context(), id, req.Parts, req.Flavor)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
			return
		}
		slog.Error("failed to update puzzle", "error", err, "puzzle", id, "admin", session.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update puzzle")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePuzzleResponse{Result: result.String()})
}

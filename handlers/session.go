// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/rocketpuzzles/server/auth"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/discord"
	"github.com/rocketpuzzles/server/middleware"
	"github.com/rocketpuzzles/server/models"
	"github.com/rocketpuzzles/server/progress"
)

type SessionHandler struct {
	tracker *progress.Tracker
	discord *discord.Client
	cfg     cliparse.Config
}

func NewSessionHandler(t *progress.Tracker, d *discord.Client, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{tracker: t, discord: d, cfg: cfg}
}

// Login handles GET /login
// Sends the caller to Discord's authorization page with a CSRF state.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate oauth state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start login")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.discord.AuthURL(state), http.StatusFound)
}

// Callback handles GET /callback
// Completes the OAuth handshake and establishes the session. A caller
// with no progress record gets one here; if that creation fails the
// session is dropped rather than continued with an inconsistent
// identity.
func (h *SessionHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("error") != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No code provided")
		return
	}

	stateCookie, err := r.Cookie(auth.StateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "State mismatch")
		return
	}

	accessToken, err := h.discord.ExchangeCode(r.Context(), code)
	if err != nil {
		slog.Error("oauth code exchange failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "No token received")
		return
	}

	user, err := h.discord.FetchUser(r.Context(), accessToken)
	if err != nil {
		slog.Error("failed to fetch discord user", "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "No user data received")
		return
	}

	session := auth.Session{
		UserID:      user.ID,
		Name:        user.Username,
		Avatar:      discord.AvatarURL(user),
		AccessToken: accessToken,
	}

	// First login: create the all-false progress record.
	_, err = h.tracker.ForUser(user.ID).Vector(r.Context())
	if progress.IsNotRegistered(err) {
		rec := &models.ProgressRecord{UserID: user.ID, Name: user.Username, Avatar: session.Avatar}
		if err := h.tracker.Register(r.Context(), rec); err != nil {
			slog.Error("registration failed, dropping session", "error", err, "user_id", user.ID)
			auth.ClearSessionCookie(w)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	} else if err != nil {
		slog.Error("failed to load progress during login", "error", err, "user_id", user.ID)
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := auth.SetSessionCookie(w, session, h.cfg.SessionSecret); err != nil {
		slog.Error("failed to set session cookie", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "name", user.Username)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles POST /logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

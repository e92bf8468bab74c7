// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketpuzzles/server/auth"
	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/discord"
	"github.com/rocketpuzzles/server/middleware"
	"github.com/rocketpuzzles/server/models"
)

// AccessHandler links a solved puzzle to its community channel: guild
// membership, the verified role, and a solve announcement.
type AccessHandler struct {
	cache   *cache.Cache
	discord *discord.Client
	cfg     cliparse.Config
}

func NewAccessHandler(c *cache.Cache, d *discord.Client, cfg cliparse.Config) *AccessHandler {
	return &AccessHandler{cache: c, discord: d, cfg: cfg}
}

// Grant handles POST /access/{key}
func (h *AccessHandler) Grant(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromRequest(r, h.cfg.SessionSecret)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	if h.cfg.DiscordBotToken == "" {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Bot token not found")
		return
	}

	id, err := h.cache.Deobfuscate(r.PathValue("key"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Puzzle not found")
		return
	}

	guildID := h.cache.Channel("guild")
	channelID := h.cache.Channel(strconv.Itoa(id))
	if guildID == "" || channelID == "" {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Channel routing not configured")
		return
	}

	if err := h.discord.EnsureMember(r.Context(), guildID, session.UserID, session.AccessToken); err != nil {
		slog.Error("failed to ensure guild membership", "error", err, "user_id", session.UserID)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to assign role")
		return
	}
	if err := h.discord.AnnounceSolve(r.Context(), channelID, session.UserID, id); err != nil {
		slog.Error("failed to announce solve", "error", err, "user_id", session.UserID, "puzzle", id)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to send message")
		return
	}

	var flavor string
	if puzzle, err := h.cache.Puzzle(id); err == nil {
		flavor = puzzle.Flavor
	}

	slog.Info("channel access granted", "user_id", session.UserID, "puzzle", id)
	middleware.JSONResponse(w, http.StatusOK, models.AccessResponse{Flavor: flavor})
}

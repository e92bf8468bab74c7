// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/discord"
	"github.com/rocketpuzzles/server/handlers"
	"github.com/rocketpuzzles/server/middleware"
	"github.com/rocketpuzzles/server/progress"
)

func NewRouter(c *cache.Cache, tracker *progress.Tracker, d *discord.Client, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contentHandler := handlers.NewContentHandler(c, tracker, cfg)
	sessionHandler := handlers.NewSessionHandler(tracker, d, cfg)
	adminHandler := handlers.NewAdminHandler(c, cfg)
	accessHandler := handlers.NewAccessHandler(c, d, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public content
	mux.HandleFunc("GET /{$}", middleware.WithLogging(contentHandler.Index))
	mux.HandleFunc("GET /challenge/{key}", middleware.WithLogging(contentHandler.Challenge))
	mux.HandleFunc("POST /challenge/{key}/answer", middleware.WithLogging(contentHandler.SubmitAnswer))
	mux.HandleFunc("GET /champions", middleware.WithLogging(contentHandler.Champions))

	// Session lifecycle (Discord OAuth)
	mux.HandleFunc("GET /login", middleware.WithLogging(sessionHandler.Login))
	mux.HandleFunc("GET /callback", middleware.WithLogging(sessionHandler.Callback))
	mux.HandleFunc("POST /logout", middleware.WithLogging(sessionHandler.Logout))

	// Community channel access
	mux.HandleFunc("POST /access/{key}", middleware.WithLogging(accessHandler.Grant))

	// Admin surface (authorization checked in the handlers)
	mux.HandleFunc("GET /admin/settings", middleware.WithLogging(adminHandler.GetSettings))
	mux.HandleFunc("POST /admin/settings", middleware.WithLogging(adminHandler.UpdateSettings))
	mux.HandleFunc("GET /admin/puzzles/{id}", middleware.WithLogging(adminHandler.GetPuzzle))
	mux.HandleFunc("POST /admin/puzzles/{id}", middleware.WithLogging(adminHandler.UpdatePuzzle))

	return mux
}

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/rocketpuzzles/server/cache"
	"github.com/rocketpuzzles/server/cliparse"
	"github.com/rocketpuzzles/server/db"
	"github.com/rocketpuzzles/server/discord"
	"github.com/rocketpuzzles/server/progress"
	"github.com/rocketpuzzles/server/router"
	"github.com/rocketpuzzles/server/store"
	"github.com/rocketpuzzles/server/token"
)

func main() {
	var err error

	// Load .env if present, then parse configuration
	_ = godotenv.Load()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema and seed the constant rows
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	if err := db.Seed(dbConn, cfg.SeedAdminID); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Cold-load the cache. This is the only failure that stops the
	// process once the schema exists.
	st := store.NewSQL(dbConn)
	contentCache := cache.New(st)
	if err := contentCache.Load(context.Background()); err != nil {
		slog.Error("cache load failed", "error", err)
		os.Exit(1)
	}

	// Progress tracking and external collaborators
	codec := token.New(cfg.TokenSecret)
	tracker := progress.New(contentCache, st, codec)
	discordClient := discord.New(cfg.DiscordClientID, cfg.DiscordClientSecret,
		cfg.DiscordRedirectURI, cfg.DiscordBotToken)

	// Create router
	mux := router.NewRouter(contentCache, tracker, discordClient, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

package cliparse

import (
	"errors"
	"flag"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	BaseURL      string

	// Secrets
	SessionSecret string
	TokenSecret   string

	// Discord integration
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURI  string
	DiscordBotToken     string

	// Granted admin access on first seed, alongside the permanent one
	SeedAdminID string
}

// envConfig holds raw environment values before flags override them.
type envConfig struct {
	Port         int    `env:"PORT" envDefault:"3419"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"postgres"`
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost:3419"`

	SessionSecret string `env:"SECRET_KEY"`
	TokenSecret   string `env:"TOKEN_SECRET"`

	DiscordClientID     string `env:"CLIENT_ID"`
	DiscordClientSecret string `env:"CLIENT_SECRET"`
	DiscordRedirectURI  string `env:"DISCORD_REDIRECT_URI"`
	DiscordBotToken     string `env:"BOT_TOKEN"`

	SeedAdminID string `env:"SEED_ADMIN_ID"`
}

// ParseFlags builds the configuration from CLI flags with environment
// fallback. Secrets should come from the environment; flags exist for
// dev convenience.
func ParseFlags(args []string) (Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:                raw.Port,
		DatabaseURL:         raw.DatabaseURL,
		DatabaseType:        raw.DatabaseType,
		BaseURL:             raw.BaseURL,
		SessionSecret:       raw.SessionSecret,
		TokenSecret:         raw.TokenSecret,
		DiscordClientID:     raw.DiscordClientID,
		DiscordClientSecret: raw.DiscordClientSecret,
		DiscordRedirectURI:  raw.DiscordRedirectURI,
		DiscordBotToken:     raw.DiscordBotToken,
		SeedAdminID:         raw.SeedAdminID,
	}

	fs := flag.NewFlagSet("rocketpuzzles", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Session signing secret (prefer env)")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Progress token signing secret (prefer env)")
	fs.StringVar(&cfg.SeedAdminID, "seed-admin", cfg.SeedAdminID, "Extra admin user id granted on first seed")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SECRET_KEY required")
	}
	if cfg.TokenSecret == "" {
		return Config{}, errors.New("TOKEN_SECRET required")
	}

	return cfg, nil
}

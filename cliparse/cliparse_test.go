package cliparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/puzzles")
	t.Setenv("SECRET_KEY", "session-secret")
	t.Setenv("TOKEN_SECRET", "token-secret")
}

func TestParseFlagsDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 3419, cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "http://localhost:3419", cfg.BaseURL)
	assert.Equal(t, "postgres://localhost/puzzles", cfg.DatabaseURL)
}

func TestParseFlagsEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", "file:puzzles.db")
	t.Setenv("BOT_TOKEN", "bot-xyz")
	t.Setenv("SEED_ADMIN_ID", "42")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "file:puzzles.db", cfg.DatabaseURL)
	assert.Equal(t, "bot-xyz", cfg.DiscordBotToken)
	assert.Equal(t, "42", cfg.SeedAdminID)
}

func TestParseFlagsFlagsBeatEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")

	cfg, err := ParseFlags([]string{"-p", "9000", "-t", "sqlite", "-d", "file:dev.db"})
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "file:dev.db", cfg.DatabaseURL)
}

func TestParseFlagsValidation(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T)
		args  []string
	}{
		{
			"missing database url",
			func(t *testing.T) {
				t.Setenv("DATABASE_URL", "")
				t.Setenv("SECRET_KEY", "s")
				t.Setenv("TOKEN_SECRET", "t")
			},
			nil,
		},
		{
			"bad database type",
			func(t *testing.T) { setRequiredEnv(t) },
			[]string{"-t", "oracle"},
		},
		{
			"missing session secret",
			func(t *testing.T) {
				t.Setenv("DATABASE_URL", "postgres://localhost/x")
				t.Setenv("SECRET_KEY", "")
				t.Setenv("TOKEN_SECRET", "t")
			},
			nil,
		},
		{
			"missing token secret",
			func(t *testing.T) {
				t.Setenv("DATABASE_URL", "postgres://localhost/x")
				t.Setenv("SECRET_KEY", "s")
				t.Setenv("TOKEN_SECRET", "")
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

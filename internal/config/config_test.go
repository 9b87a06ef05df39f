package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/hint-server/internal/config"
)

var envKeys = []string{
	"WORDLE_CONFIG", "PORT", "LOG_LEVEL", "WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE",
	"STATS_BACKEND", "STATS_PATH", "DB_PATH", "RANK_POOL", "TOP_K", "WORKERS",
	"DAILY_SALT", "JWT_SECRET", "JWT_EXPIRES_DAYS", "COOKIE_NAME", "CLIENT_ORIGIN",
	"SESSION_IDLE_MINUTES",
}

// clearEnv blanks every variable Load reads; empty counts as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "5175", cfg.Port)
	require.Equal(t, config.BackendMemory, cfg.Stats.Backend)
	require.Equal(t, 20, cfg.Rank.TopK)
	require.Equal(t, 60, cfg.SessionIdleMinutes)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wordle.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
log_level = "debug"

[words]
answers_file = "a.txt"

[stats]
backend = "json"
path = "stats.json"

[rank]
pool = "targets"
top_k = 10
workers = 2
`), 0o644))
	t.Setenv("WORDLE_CONFIG", path)
	t.Setenv("PORT", "7000")
	t.Setenv("TOP_K", "5")
	t.Setenv("STATS_BACKEND", "SQLite")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Port, "env beats file")
	require.Equal(t, "debug", cfg.LogLevel, "file beats default")
	require.Equal(t, "a.txt", cfg.Words.AnswersFile)
	require.Equal(t, config.BackendSQLite, cfg.Stats.Backend)
	require.Equal(t, "stats.json", cfg.Stats.Path)
	require.Equal(t, "targets", cfg.Rank.Pool)
	require.Equal(t, 5, cfg.Rank.TopK)
	require.Equal(t, 2, cfg.Rank.Workers)
	require.Equal(t, "dev_secret_change_me", cfg.JWTSecret)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"TOP_K":                "many",
		"WORKERS":              "-1",
		"STATS_BACKEND":        "redis",
		"RANK_POOL":            "everything",
		"SESSION_IDLE_MINUTES": "0",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := config.Load()
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = "), 0o644))
	t.Setenv("WORDLE_CONFIG", path)

	_, err := config.Load()
	require.Error(t, err)
}

// internal/config/config.go
//
// Runtime configuration.
// Precedence (lowest → highest):
//   1. Built-in defaults.
//   2. TOML file named by WORDLE_CONFIG (optional).
//   3. Environment variables (a .env file is loaded into the environment by main).
//
// Example wordle.toml:
//
//	port = "5175"
//	log_level = "debug"
//
//	[words]
//	answers_file = "data/answers.txt"
//	allowed_file = "data/allowed.txt"
//
//	[stats]
//	backend = "sqlite"
//	db_path = "data/app.db"
//
//	[rank]
//	pool = "guesses"
//	top_k = 20

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/robalobadob/wordle/apps/hint-server/internal/suggest"
)

// Stats backends.
const (
	BackendMemory = "memory"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrInvalid reports a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full runtime configuration.
type Config struct {
	Port     string `toml:"port"`
	LogLevel string `toml:"log_level"`

	Words Words `toml:"words"`
	Stats Stats `toml:"stats"`
	Rank  Rank  `toml:"rank"`

	DailySalt      string `toml:"daily_salt"`
	JWTSecret      string `toml:"jwt_secret"`
	JWTExpiresDays int    `toml:"jwt_expires_days"`
	CookieName     string `toml:"cookie_name"`
	ClientOrigin   string `toml:"client_origin"`

	// SessionIdleMinutes evicts HTTP games untouched for this long.
	SessionIdleMinutes int `toml:"session_idle_minutes"`
}

// Words locates the word lists. Empty paths fall back to the embedded lists.
type Words struct {
	AnswersFile string `toml:"answers_file"`
	AllowedFile string `toml:"allowed_file"`
}

// Stats selects the statistics backend.
type Stats struct {
	Backend string `toml:"backend"` // memory | json | sqlite
	Path    string `toml:"path"`    // json document
	DBPath  string `toml:"db_path"` // sqlite database
}

// Rank tunes the recommendation engine.
type Rank struct {
	Pool    string `toml:"pool"` // guesses | targets
	TopK    int    `toml:"top_k"`
	Workers int    `toml:"workers"` // 0 = GOMAXPROCS
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:     "5175",
		LogLevel: "info",
		Stats: Stats{
			Backend: BackendMemory,
			Path:    "data.json",
			DBPath:  "./data/app.db",
		},
		Rank: Rank{
			Pool: string(suggest.PoolGuesses),
			TopK: suggest.DefaultTopK,
		},
		DailySalt:      "local_dev_salt",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 180,
		CookieName:     "wordle_player",
		ClientOrigin:   "http://localhost:5173",

		SessionIdleMinutes: 60,
	}
}

// Load builds the configuration from defaults, WORDLE_CONFIG and the environment.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("WORDLE_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.Stats.Backend = strings.ToLower(cfg.Stats.Backend)
	cfg.Rank.Pool = strings.ToLower(cfg.Rank.Pool)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Words.AnswersFile = getEnv("WORDS_ANSWERS_FILE", c.Words.AnswersFile)
	c.Words.AllowedFile = getEnv("WORDS_ALLOWED_FILE", c.Words.AllowedFile)
	c.Stats.Backend = getEnv("STATS_BACKEND", c.Stats.Backend)
	c.Stats.Path = getEnv("STATS_PATH", c.Stats.Path)
	c.Stats.DBPath = getEnv("DB_PATH", c.Stats.DBPath)
	c.Rank.Pool = getEnv("RANK_POOL", c.Rank.Pool)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.CookieName = getEnv("COOKIE_NAME", c.CookieName)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)

	var err error
	if c.Rank.TopK, err = getEnvInt("TOP_K", c.Rank.TopK); err != nil {
		return err
	}
	if c.Rank.Workers, err = getEnvInt("WORKERS", c.Rank.Workers); err != nil {
		return err
	}
	if c.JWTExpiresDays, err = getEnvInt("JWT_EXPIRES_DAYS", c.JWTExpiresDays); err != nil {
		return err
	}
	if c.SessionIdleMinutes, err = getEnvInt("SESSION_IDLE_MINUTES", c.SessionIdleMinutes); err != nil {
		return err
	}
	return nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.Stats.Backend {
	case BackendMemory, BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("%w: stats backend %q", ErrInvalid, c.Stats.Backend)
	}
	switch suggest.Pool(c.Rank.Pool) {
	case suggest.PoolGuesses, suggest.PoolTargets:
	default:
		return fmt.Errorf("%w: rank pool %q", ErrInvalid, c.Rank.Pool)
	}
	if c.Rank.TopK <= 0 {
		return fmt.Errorf("%w: top_k %d", ErrInvalid, c.Rank.TopK)
	}
	if c.Rank.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Rank.Workers)
	}
	if c.SessionIdleMinutes <= 0 {
		return fmt.Errorf("%w: session_idle_minutes %d", ErrInvalid, c.SessionIdleMinutes)
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalid, k, v)
	}
	return n, nil
}

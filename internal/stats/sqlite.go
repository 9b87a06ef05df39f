// internal/stats/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Per-player win/loss counters and win-index histogram.

package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/hint-server/assets"
	"github.com/robalobadob/wordle/apps/hint-server/internal/game"
)

// SQLite stores statistics in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	migrations, err := assets.Migrations()
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Player returns a recorder writing to playerID's rows.
func (s *SQLite) Player(playerID string) game.Recorder {
	return recorderFunc{
		win:  func(ctx context.Context, k int) error { return s.recordWin(ctx, playerID, k) },
		loss: func(ctx context.Context) error { return s.recordLoss(ctx, playerID) },
	}
}

func (s *SQLite) recordWin(ctx context.Context, playerID string, k int) error {
	if err := checkGuessNumber(k); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO player_stats (player_id, matches_played, matches_won)
            VALUES (?, 1, 1)
            ON CONFLICT(player_id) DO UPDATE SET
                matches_played = matches_played + 1,
                matches_won    = matches_won + 1,
                updated_at     = CURRENT_TIMESTAMP`, playerID); err != nil {
			return fmt.Errorf("stats: record win: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO player_win_index (player_id, guess_number, wins)
            VALUES (?, ?, 1)
            ON CONFLICT(player_id, guess_number) DO UPDATE SET wins = wins + 1`,
			playerID, k); err != nil {
			return fmt.Errorf("stats: record win index: %w", err)
		}
		return nil
	})
}

func (s *SQLite) recordLoss(ctx context.Context, playerID string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO player_stats (player_id, matches_played, matches_lost)
        VALUES (?, 1, 1)
        ON CONFLICT(player_id) DO UPDATE SET
            matches_played = matches_played + 1,
            matches_lost   = matches_lost + 1,
            updated_at     = CURRENT_TIMESTAMP`, playerID)
	if err != nil {
		return fmt.Errorf("stats: record loss: %w", err)
	}
	return nil
}

// Load returns the player's record (zeroed if never seen).
func (s *SQLite) Load(ctx context.Context, playerID string) (Record, error) {
	r := NewRecord()
	err := s.db.QueryRowContext(ctx, `
        SELECT matches_played, matches_won, matches_lost
        FROM player_stats WHERE player_id = ?`, playerID,
	).Scan(&r.MatchesPlayed, &r.MatchesWon, &r.MatchesLost)
	if errors.Is(err, sql.ErrNoRows) {
		return r, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("stats: load %s: %w", playerID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT guess_number, wins FROM player_win_index WHERE player_id = ?`, playerID)
	if err != nil {
		return Record{}, fmt.Errorf("stats: load win index: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, wins int
		if err := rows.Scan(&k, &wins); err != nil {
			return Record{}, err
		}
		r.WinIndeces[strconv.Itoa(k)] = wins
	}
	return r, rows.Err()
}

func (s *SQLite) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// openDB opens (and creates if missing) a SQLite database file.
//
// - Ensures parent directory exists for relative DSNs (e.g. ./data/app.db).
// - Configures busy timeout and WAL journaling mode.
// - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// Single connection: stats writes are serialised.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from migrations in lexical order.
//
// - Uses a _migrations table to track applied files.
// - Each file runs in its own transaction together with its _migrations row.
func migrate(db *sql.DB, migrations fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(migrations, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// internal/store/sql.go
//
// SQL implementation of the Store interface.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout) or PostgreSQL.
//   - Applying embedded migrations from assets/sql/*.sql (idempotent,
//     recorded in _migrations).
//   - Loading/saving the leaderboard document as rows of scores + settings.
//
// Queries are written with "?" placeholders and rebound to "$n" for Postgres.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/associa/assets"
	"github.com/robalobadob/associa/internal/leaderboard"
)

const lastResetKey = "lastReset"

// SQL stores the document in a relational database.
type SQL struct {
	db       *sql.DB
	postgres bool
}

/**
 * OpenSQLite opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative paths (e.g. ./data/leaderboard.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Applies migrations.
 */
func OpenSQLite(path string) (*SQL, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	s := &SQL{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

/**
 * OpenPostgres connects to PostgreSQL using a lib/pq DSN or URL and applies
 * migrations.
 */
func OpenPostgres(dsn string) (*SQL, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &SQL{db: db, postgres: true}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// rebind rewrites "?" placeholders for the active driver.
func (s *SQL) rebind(q string) string {
	if !s.postgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

/**
 * migrate applies the embedded SQL migrations.
 *
 * - Uses a _migrations table to track applied files.
 * - Executes each script in lexical order inside its own transaction.
 * - Skips scripts already applied.
 */
func (s *SQL) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	scripts, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range scripts {
		var done int
		err := s.db.QueryRow(s.rebind(`SELECT 1 FROM _migrations WHERE name=?`), m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.Exec(s.rebind(`INSERT INTO _migrations(name) VALUES (?)`), m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Load reads settings and scores. No settings row means no document yet.
func (s *SQL) Load(ctx context.Context) (*leaderboard.Data, error) {
	d := &leaderboard.Data{Scores: []leaderboard.ScoreEntry{}}
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT value FROM settings WHERE key=?`), lastResetKey,
	).Scan(&d.Settings.LastReset)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, leaderboard.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, nickname, score, date FROM scores ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e leaderboard.ScoreEntry
		if err := rows.Scan(&e.ID, &e.Nickname, &e.Score, &e.Date); err != nil {
			return nil, err
		}
		d.Scores = append(d.Scores, e)
	}
	return d, rows.Err()
}

// Save replaces every score row and the settings in one transaction.
func (s *SQL) Save(ctx context.Context, d *leaderboard.Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	insert := s.rebind(`INSERT INTO scores (seq, id, nickname, score, date) VALUES (?, ?, ?, ?, ?)`)
	for i, e := range d.Scores {
		if _, err := tx.ExecContext(ctx, insert, i+1, e.ID, e.Nickname, e.Score, e.Date); err != nil {
			return fmt.Errorf("insert score %d: %w", e.ID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`
        INSERT INTO settings (key, value) VALUES (?, ?)
        ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		lastResetKey, d.Settings.LastReset,
	); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return tx.Commit()
}

// Close closes the database pool.
func (s *SQL) Close() error { return s.db.Close() }

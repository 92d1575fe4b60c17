package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// sqliteSchema is idempotent so it can run on every open.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS category_state (
    category_id TEXT PRIMARY KEY,
    visible     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS column_state (
    column_name TEXT PRIMARY KEY,
    enabled     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS options (
    name  TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
`

const optionShowOnlyGame = "show_only_game"

// SQLiteStore keeps settings in a SQLite database. Reads are served from an
// in-memory snapshot; every setter writes the row before updating it.
type SQLiteStore struct {
	db   *sql.DB
	snap Snapshot
}

// OpenSQLite opens (or creates) the settings database at dbPath.
func OpenSQLite(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("settings: creating directory for %s: %w", dbPath, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("settings: open database: %w", err)
	}

	// SQLite has a single writer; one connection avoids SQLITE_BUSY between
	// pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("settings: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("settings: create schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.Reload(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Reload re-reads every table into the in-memory snapshot.
func (s *SQLiteStore) Reload(ctx context.Context) error {
	snap := newSnapshot()

	if err := s.readBools(ctx, `SELECT category_id, visible FROM category_state`, snap.Categories); err != nil {
		return fmt.Errorf("settings: load category state: %w", err)
	}
	if err := s.readBools(ctx, `SELECT column_name, enabled FROM column_state`, snap.Columns); err != nil {
		return fmt.Errorf("settings: load column state: %w", err)
	}

	var only bool
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, optionShowOnlyGame).Scan(&only)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("settings: load options: %w", err)
	}
	snap.ShowOnlyGame = only

	s.snap = snap
	return nil
}

func (s *SQLiteStore) readBools(ctx context.Context, query string, into map[string]bool) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key string
			val bool
		)
		if err := rows.Scan(&key, &val); err != nil {
			return err
		}
		into[key] = val
	}
	return rows.Err()
}

// LoadCategoryStates copies every stored category state into into.
func (s *SQLiteStore) LoadCategoryStates(into map[registry.CategoryID]bool) {
	s.snap.loadCategoryStates(into)
}

// SetCategoryState upserts a category's visibility.
func (s *SQLiteStore) SetCategoryState(id registry.CategoryID, visible bool) error {
	const q = `
		INSERT INTO category_state (category_id, visible) VALUES (?, ?)
		ON CONFLICT(category_id) DO UPDATE SET visible = excluded.visible`
	if _, err := s.db.ExecContext(context.Background(), q, string(id), visible); err != nil {
		return fmt.Errorf("settings: set category %s: %w", id, err)
	}
	s.snap.Categories[string(id)] = visible
	return nil
}

// ShouldShowOnlyGame reports the game-only switch.
func (s *SQLiteStore) ShouldShowOnlyGame() bool { return s.snap.ShowOnlyGame }

// SetShowOnlyGame upserts the game-only switch.
func (s *SQLiteStore) SetShowOnlyGame(only bool) error {
	const q = `
		INSERT INTO options (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(context.Background(), q, optionShowOnlyGame, only); err != nil {
		return fmt.Errorf("settings: set %s: %w", optionShowOnlyGame, err)
	}
	s.snap.ShowOnlyGame = only
	return nil
}

// TableColumnState reports whether a column is enabled.
func (s *SQLiteStore) TableColumnState(name string) bool { return s.snap.columnState(name) }

// SetTableColumnState upserts a column toggle.
func (s *SQLiteStore) SetTableColumnState(name string, enabled bool) error {
	const q = `
		INSERT INTO column_state (column_name, enabled) VALUES (?, ?)
		ON CONFLICT(column_name) DO UPDATE SET enabled = excluded.enabled`
	if _, err := s.db.ExecContext(context.Background(), q, name, enabled); err != nil {
		return fmt.Errorf("settings: set column %s: %w", name, err)
	}
	s.snap.Columns[name] = enabled
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

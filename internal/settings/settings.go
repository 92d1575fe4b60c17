// Package settings persists the browser's user settings: category
// visibility, dynamic column toggles and the game-only switch. Two backends
// share one contract: a TOML file and a SQLite database.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// Backend names accepted by Open.
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown settings backend")

// Store is a persisted settings store. Every setter writes through before
// returning.
type Store interface {
	LoadCategoryStates(into map[registry.CategoryID]bool)
	SetCategoryState(id registry.CategoryID, visible bool) error
	ShouldShowOnlyGame() bool
	SetShowOnlyGame(only bool) error
	// TableColumnState reports whether the named column is enabled. Columns
	// with no stored state are enabled.
	TableColumnState(name string) bool
	SetTableColumnState(name string, enabled bool) error
	// Reload re-reads the backing medium, dropping in-memory state.
	Reload(ctx context.Context) error
	Close() error
}

// Open returns the store for backend at path.
func Open(ctx context.Context, backend, path string) (Store, error) {
	switch backend {
	case BackendTOML, "":
		return OpenTOML(path)
	case BackendSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("settings: %q: %w", backend, ErrUnknownBackend)
	}
}

// Snapshot is the full settings state. It is also the TOML file layout.
type Snapshot struct {
	ShowOnlyGame bool            `toml:"show_only_game"`
	Categories   map[string]bool `toml:"categories"`
	Columns      map[string]bool `toml:"columns"`
}

func newSnapshot() Snapshot {
	return Snapshot{
		Categories: make(map[string]bool),
		Columns:    make(map[string]bool),
	}
}

func (s *Snapshot) loadCategoryStates(into map[registry.CategoryID]bool) {
	for id, visible := range s.Categories {
		into[registry.CategoryID(id)] = visible
	}
}

func (s *Snapshot) columnState(name string) bool {
	enabled, ok := s.Columns[name]
	return !ok || enabled
}

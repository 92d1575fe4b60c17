package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// DefaultPath is the conventional location of the settings file.
const DefaultPath = ".sysbrowse/settings.toml"

// TOMLStore keeps settings in memory and rewrites the whole file on every
// change.
type TOMLStore struct {
	path string
	snap Snapshot
}

// OpenTOML loads the settings file at path. A missing file yields default
// settings; the file is created on the first write.
func OpenTOML(path string) (*TOMLStore, error) {
	s := &TOMLStore{path: path}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the settings file location.
func (s *TOMLStore) Path() string { return s.path }

// Reload re-reads the settings file.
func (s *TOMLStore) Reload(_ context.Context) error {
	snap := newSnapshot()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.snap = snap
			return nil
		}
		return fmt.Errorf("settings: reading %s: %w", s.path, err)
	}
	if err := toml.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("settings: parsing %s: %w", s.path, err)
	}
	if snap.Categories == nil {
		snap.Categories = make(map[string]bool)
	}
	if snap.Columns == nil {
		snap.Columns = make(map[string]bool)
	}
	s.snap = snap
	return nil
}

// LoadCategoryStates copies every stored category state into into.
func (s *TOMLStore) LoadCategoryStates(into map[registry.CategoryID]bool) {
	s.snap.loadCategoryStates(into)
}

// SetCategoryState stores a category's visibility and saves the file.
func (s *TOMLStore) SetCategoryState(id registry.CategoryID, visible bool) error {
	s.snap.Categories[string(id)] = visible
	return s.save()
}

// ShouldShowOnlyGame reports the game-only switch.
func (s *TOMLStore) ShouldShowOnlyGame() bool { return s.snap.ShowOnlyGame }

// SetShowOnlyGame stores the game-only switch and saves the file.
func (s *TOMLStore) SetShowOnlyGame(only bool) error {
	s.snap.ShowOnlyGame = only
	return s.save()
}

// TableColumnState reports whether a column is enabled.
func (s *TOMLStore) TableColumnState(name string) bool { return s.snap.columnState(name) }

// SetTableColumnState stores a column toggle and saves the file.
func (s *TOMLStore) SetTableColumnState(name string, enabled bool) error {
	s.snap.Columns[name] = enabled
	return s.save()
}

// Close is a no-op; every write is already on disk.
func (s *TOMLStore) Close() error { return nil }

func (s *TOMLStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: creating directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(s.snap)
	if err != nil {
		return fmt.Errorf("settings: marshaling settings: %w", err)
	}

	// Write to a temp file and rename so watchers never see a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("settings: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("settings: replacing %s: %w", s.path, err)
	}
	return nil
}

package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// openers builds each backend in a fresh temp dir so the same contract
// tests run against both.
var openers = map[string]func(t *testing.T, dir string) Store{
	BackendTOML: func(t *testing.T, dir string) Store {
		s, err := Open(context.Background(), BackendTOML, filepath.Join(dir, "settings.toml"))
		if err != nil {
			t.Fatalf("Open(toml): %v", err)
		}
		return s
	},
	BackendSQLite: func(t *testing.T, dir string) Store {
		s, err := Open(context.Background(), BackendSQLite, filepath.Join(dir, "settings.db"))
		if err != nil {
			t.Fatalf("Open(sqlite): %v", err)
		}
		return s
	},
}

func TestStore_Defaults(t *testing.T) {
	t.Parallel()
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t, t.TempDir())
			defer s.Close()

			states := make(map[registry.CategoryID]bool)
			s.LoadCategoryStates(states)
			if len(states) != 0 {
				t.Errorf("LoadCategoryStates() = %v, want empty", states)
			}
			if s.ShouldShowOnlyGame() {
				t.Error("ShouldShowOnlyGame() = true, want false")
			}
			if !s.TableColumnState("Module") {
				t.Error("TableColumnState(Module) = false, want true for unknown column")
			}
		})
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()

			s := open(t, dir)
			if err := s.SetCategoryState("world", false); err != nil {
				t.Fatalf("SetCategoryState: %v", err)
			}
			if err := s.SetCategoryState("engine", true); err != nil {
				t.Fatalf("SetCategoryState: %v", err)
			}
			if err := s.SetShowOnlyGame(true); err != nil {
				t.Fatalf("SetShowOnlyGame: %v", err)
			}
			if err := s.SetTableColumnState("Path", false); err != nil {
				t.Fatalf("SetTableColumnState: %v", err)
			}
			// Overwrite to exercise the upsert path.
			if err := s.SetCategoryState("world", false); err != nil {
				t.Fatalf("SetCategoryState again: %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			reopened := open(t, dir)
			defer reopened.Close()

			states := make(map[registry.CategoryID]bool)
			reopened.LoadCategoryStates(states)
			if len(states) != 2 || states["world"] || !states["engine"] {
				t.Errorf("category states = %v", states)
			}
			if !reopened.ShouldShowOnlyGame() {
				t.Error("show_only_game not persisted")
			}
			if reopened.TableColumnState("Path") {
				t.Error("Path column should be disabled")
			}
			if !reopened.TableColumnState("Module") {
				t.Error("Module column should default to enabled")
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), "etcd", "x")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestTOMLStore_FileLayout(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	s, err := OpenTOML(path)
	if err != nil {
		t.Fatalf("OpenTOML: %v", err)
	}
	if err := s.SetCategoryState("player", false); err != nil {
		t.Fatalf("SetCategoryState: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading settings file: %v", err)
	}
	for _, want := range []string{"show_only_game", "[categories]", "player = false"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("settings file missing %q:\n%s", want, data)
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestTOMLStore_Reload(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.toml")
	s, err := OpenTOML(path)
	if err != nil {
		t.Fatalf("OpenTOML: %v", err)
	}

	external := "show_only_game = true\n\n[categories]\nengine = false\n"
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	states := make(map[registry.CategoryID]bool)
	s.LoadCategoryStates(states)
	if v, ok := states["engine"]; !ok || v {
		t.Errorf("engine state = %v, %v; want false, true", v, ok)
	}
	if !s.ShouldShowOnlyGame() {
		t.Error("show_only_game not reloaded")
	}
	// Columns table was absent from the file; writes must still work.
	if err := s.SetTableColumnState("Owner", false); err != nil {
		t.Fatalf("SetTableColumnState after reload: %v", err)
	}
}

func TestTOMLStore_ParseError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("categories = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenTOML(path); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Fatalf("err = %v, want parse error", err)
	}
}

func TestWatcher_ReportsExternalWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Unrelated files in the directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("show_only_game = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ch := <-w.Changes:
		if ch.Path != w.Path {
			t.Errorf("Change.Path = %q, want %q", ch.Path, w.Path)
		}
		if ch.Removed {
			t.Error("Change.Removed = true for a write")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_StopAfterFailedStart(t *testing.T) {
	t.Parallel()
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "settings.toml"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err == nil {
		t.Fatal("Start on a missing directory should fail")
	}

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop after a failed Start did not return")
	}
	if _, ok := <-w.Changes; ok {
		t.Error("Changes still open after Stop")
	}
}

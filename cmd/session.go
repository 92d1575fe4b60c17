package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/sysbrowse/internal/browser"
	"github.com/papapumpkin/sysbrowse/internal/config"
	"github.com/papapumpkin/sysbrowse/internal/metrics"
	"github.com/papapumpkin/sysbrowse/internal/registry"
	"github.com/papapumpkin/sysbrowse/internal/settings"
	"github.com/papapumpkin/sysbrowse/internal/sim"
	"github.com/papapumpkin/sysbrowse/internal/telemetry"
	"github.com/papapumpkin/sysbrowse/internal/ui"
)

// session wires one browser model to its settings store, scene host,
// telemetry and metrics for the lifetime of a command.
type session struct {
	cfg      config.Config
	printer  *ui.Printer
	host     *sim.Host
	registry *registry.Registry
	store    settings.Store
	model    *browser.Model
	emitter  *telemetry.Emitter
	metrics  *metrics.Recorder
	cancels  []func()
}

// newPrinter returns a printer on the command's streams. The real terminal
// streams get a colored printer.
func newPrinter(cmd *cobra.Command) *ui.Printer {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if out == os.Stdout && errOut == os.Stderr {
		return ui.New()
	}
	return ui.NewWithWriters(out, errOut)
}

// openSession loads config and builds a populated model on the configured
// world. Callers must close the session.
func openSession(ctx context.Context, printer *ui.Printer) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &session{cfg: cfg, printer: printer, metrics: metrics.New()}

	sc, err := s.loadScene()
	if err != nil {
		return nil, err
	}
	s.host = sim.NewHost(sc)

	s.registry = registry.New()
	if err := s.registry.Install(sim.Plugin{}); err != nil {
		return nil, fmt.Errorf("failed to install built-in categories: %w", err)
	}

	s.store, err = settings.Open(ctx, cfg.Settings.Backend, cfg.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}

	if cfg.TelemetryPath != "" {
		s.emitter, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			s.store.Close()
			return nil, fmt.Errorf("failed to open telemetry: %w", err)
		}
	}

	world, err := s.lookupWorld(cfg.World)
	if err != nil {
		s.close()
		return nil, err
	}

	s.model = browser.New(s.registry, s.store)
	s.cancels = append(s.cancels, s.model.OnRebuilt(s.onRebuilt))
	s.model.SetCurrentWorld(world)
	return s, nil
}

// loadScene reads the configured scene file. A missing file or an empty
// path selects the built-in demo scene.
func (s *session) loadScene() (sim.Scene, error) {
	if s.cfg.ScenePath == "" {
		return sim.DemoScene(), nil
	}
	sc, err := sim.LoadScene(s.cfg.ScenePath)
	if errors.Is(err, fs.ErrNotExist) {
		if s.cfg.Verbose {
			s.printer.Info(fmt.Sprintf("no scene at %s, using the demo scene", s.cfg.ScenePath))
		}
		return sim.DemoScene(), nil
	}
	if err != nil {
		return sim.Scene{}, err
	}
	return sc, nil
}

// lookupWorld resolves name to a scene world. An empty name selects the
// first world; a scene without worlds yields a nil world.
func (s *session) lookupWorld(name string) (registry.World, error) {
	if name == "" {
		if w := s.host.DefaultWorld(); w != nil {
			return w, nil
		}
		return nil, nil
	}
	w, ok := s.host.World(name)
	if !ok {
		return nil, fmt.Errorf("unknown world %q (have: %s)", name, strings.Join(s.worldNames(), ", "))
	}
	return w, nil
}

func (s *session) worldNames() []string {
	var names []string
	for _, w := range s.host.Worlds() {
		names = append(names, w.Name())
	}
	return names
}

func (s *session) worldName() string {
	if w := s.model.CurrentWorld(); w != nil {
		return w.Name()
	}
	return ""
}

// nextWorld cycles through the scene's worlds.
func (s *session) nextWorld(cur registry.World) registry.World {
	if w := s.host.NextWorld(cur); w != nil {
		return w
	}
	return nil
}

func (s *session) onRebuilt(st browser.RebuildStats) {
	s.metrics.ObserveRebuild(st)
	if err := s.emitter.EmitRebuild(st); err != nil {
		s.printer.Warn(err.Error())
	}
	if s.cfg.Verbose {
		s.printer.Info(fmt.Sprintf("rebuilt %q (generation %d): %d categories, %d subsystems",
			st.World, st.Generation, st.Categories, st.Subsystems))
	}
}

// CategoryToggled records a visibility change.
func (s *session) CategoryToggled(id registry.CategoryID, visible bool) {
	s.metrics.ObserveToggle(id, visible)
	if err := s.emitter.EmitToggle(s.worldName(), id, visible); err != nil {
		s.printer.Warn(err.Error())
	}
}

// GameOnlyChanged records a change of the game-only switch.
func (s *session) GameOnlyChanged(only bool) {
	if err := s.emitter.EmitGameOnly(s.worldName(), only); err != nil {
		s.printer.Warn(err.Error())
	}
}

// SettingsReloaded records a reload after an external edit.
func (s *session) SettingsReloaded(path string) {
	if err := s.emitter.EmitSettingsReloaded(path); err != nil {
		s.printer.Warn(err.Error())
	}
	if s.cfg.Verbose {
		s.printer.Info("settings reloaded from " + path)
	}
}

// numListed counts the subsystems left in visible categories after the
// game-only setting and text filter.
func (s *session) numListed() int {
	n := 0
	for _, cat := range s.model.FilteredCategories() {
		n += len(s.model.FilteredSubsystems(cat))
	}
	return n
}

// category returns the populated category with the given ID.
func (s *session) category(id string) (*browser.CategoryItem, error) {
	var ids []string
	for _, cat := range s.model.AllCategories() {
		if string(cat.CategoryID()) == id {
			return cat, nil
		}
		ids = append(ids, string(cat.CategoryID()))
	}
	return nil, fmt.Errorf("unknown category %q (have: %s)", id, strings.Join(ids, ", "))
}

func (s *session) close() {
	for _, cancel := range s.cancels {
		cancel()
	}
	if err := s.store.Close(); err != nil {
		s.printer.Warn(err.Error())
	}
	if err := s.emitter.Close(); err != nil {
		s.printer.Warn(err.Error())
	}
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/sysbrowse/internal/ansi"
	"github.com/papapumpkin/sysbrowse/internal/settings"
	"github.com/papapumpkin/sysbrowse/internal/tui"
)

// tuiCmd launches the interactive browser.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive subsystem browser",
	Long: `Launch the interactive browser over the current world. Space toggles the
selected category, / edits the text filter, g switches game-only mode and w
moves to the next world. Edits to the settings file made elsewhere are
picked up while the browser runs.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("filter", "f", "", "initial text filter")
	tuiCmd.Flags().Bool("no-watch", false, "do not reload settings when the file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !ansi.IsTerminal(os.Stderr) {
		return fmt.Errorf("sysbrowse tui requires a TTY (terminal)")
	}

	printer := newPrinter(cmd)
	s, err := openSession(cmd.Context(), printer)
	if err != nil {
		return err
	}
	defer s.close()

	query, _ := cmd.Flags().GetString("filter")
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	opts := tui.Options{
		Model:     s.model,
		Settings:  s.store,
		NextWorld: s.nextWorld,
		Observer:  s,
		Query:     query,
	}

	if s.cfg.Settings.Watch && !noWatch && s.cfg.Settings.Backend != settings.BackendSQLite {
		w, err := startWatcher(s.cfg.Settings.Path)
		if err != nil {
			printer.Warn(fmt.Sprintf("settings hot reload disabled: %v", err))
		} else {
			defer w.Stop()
			opts.Changes = w.Changes
		}
	}

	return tui.Run(opts, tui.WithOutput(os.Stderr))
}

// startWatcher watches the settings file, creating its directory first so
// that the watch can be placed before the first save.
func startWatcher(path string) (*settings.Watcher, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	w, err := settings.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

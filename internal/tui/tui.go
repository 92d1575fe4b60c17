// Package tui implements the interactive subsystem browser: a BubbleTea
// program rendering the category tree, the active dynamic columns and a
// text filter over a browser.Model.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program over a new AppModel.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(opts Options, progOpts ...tea.ProgramOption) (*Program, AppModel) {
	model := NewAppModel(opts)
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, progOpts...)
	return tea.NewProgram(model, allOpts...), model
}

// Run creates and runs the browser, blocking until the user quits.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	p, model := NewProgram(opts, progOpts...)
	defer model.Close()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}

// WithInput returns a program option that reads input from r.
func WithInput(r io.Reader) tea.ProgramOption {
	return tea.WithInput(r)
}

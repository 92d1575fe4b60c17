package tui

import (
	"fmt"
	"strings"
)

// StatusBar renders the top summary line: the current world, how many
// subsystems the visible categories hold, and the active filters. Listed
// counts the subsystems left after game-only and text filtering.
type StatusBar struct {
	World      string
	Generation uint64
	Visible    int
	Listed     int
	GameOnly   bool
	Query      string
	Width      int
}

// View renders the status bar.
func (s StatusBar) View() string {
	world := s.World
	if world == "" {
		world = "(no world)"
	}
	parts := []string{
		styleStatusLabel.Render("sysbrowse"),
		styleStatusValue.Render(world),
		styleStatusValue.Render(fmt.Sprintf("%d subsystem(s)", s.Visible)),
	}
	if s.Listed != s.Visible {
		parts = append(parts, styleStatusFlag.Render(fmt.Sprintf("%d shown", s.Listed)))
	}
	if s.Generation > 0 {
		parts = append(parts, styleCount.Render(fmt.Sprintf("gen %d", s.Generation)))
	}
	if s.GameOnly {
		parts = append(parts, styleStatusFlag.Render("game only"))
	}
	if s.Query != "" {
		parts = append(parts, styleStatusFlag.Render("filter: "+s.Query))
	}
	line := strings.Join(parts, "  ")
	if s.Width > 0 {
		return styleStatusBar.Width(s.Width).Render(line)
	}
	return styleStatusBar.Render(line)
}

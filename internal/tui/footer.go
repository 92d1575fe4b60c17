package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width > 0 && f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		part := styleFooterKey.Render(help.Key)
		if !compact {
			part += styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	if f.Width > 0 {
		return styleFooter.Width(f.Width).Render(line)
	}
	return styleFooter.Render(line)
}

// BrowseFooterBindings returns footer bindings while navigating the tree.
func BrowseFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Toggle, km.Filter, km.GameOnly, km.NextWorld, km.Quit}
}

// FilterFooterBindings returns footer bindings while editing the filter.
func FilterFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Apply, km.Cancel, km.Quit}
}

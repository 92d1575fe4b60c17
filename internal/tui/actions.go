package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/sysbrowse/internal/filter"
	"github.com/papapumpkin/sysbrowse/internal/settings"
)

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.Keys.Up):
		m.moveUp()
	case key.Matches(msg, m.Keys.Down):
		m.moveDown()
	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.Keys.GameOnly):
		m.toggleGameOnly()
	case key.Matches(msg, m.Keys.NextWorld):
		m.advanceWorld()
	case key.Matches(msg, m.Keys.Filter):
		m.Filtering = true
		m.Keys = FilterKeyMap()
		return m.Input.Focus()
	}
	return nil
}

func (m *AppModel) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.Keys.Apply):
		m.endFiltering()
		return nil
	case key.Matches(msg, m.Keys.Cancel):
		m.Input.SetValue("")
		m.applyQuery("")
		m.endFiltering()
		return nil
	case key.Matches(msg, m.Keys.Up):
		m.moveUp()
		return nil
	case key.Matches(msg, m.Keys.Down):
		m.moveDown()
		return nil
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if after := m.Input.Value(); after != before {
		m.applyQuery(after)
	}
	return cmd
}

func (m *AppModel) endFiltering() {
	m.Filtering = false
	m.Input.Blur()
	m.Keys = DefaultKeyMap()
}

// applyQuery installs the parsed query as the model's text filter. A blank
// query removes the filter.
func (m *AppModel) applyQuery(q string) {
	q = strings.TrimSpace(q)
	m.StatusBar.Query = q
	if q == "" {
		m.Browser.SetTextFilter(nil)
	} else {
		m.Browser.SetTextFilter(filter.Parse(q))
	}
	m.pending.mark()
}

func (m *AppModel) toggleSelected() {
	r, ok := m.selected()
	if !ok {
		return
	}
	id := r.cat.CategoryID()
	cf := m.Browser.CategoryFilter()
	visible := !cf.IsCategoryVisible(id)

	var err error
	if visible {
		err = cf.ShowCategory(id)
	} else {
		err = cf.HideCategory(id)
	}
	m.observer.CategoryToggled(id, visible)
	if err != nil {
		m.addError(err)
		return
	}
	state := "hidden"
	if visible {
		state = "shown"
	}
	m.addMessage(fmt.Sprintf("%s %s", r.cat.DisplayName(), state))
}

func (m *AppModel) toggleGameOnly() {
	only := !m.Settings.ShouldShowOnlyGame()
	err := m.Settings.SetShowOnlyGame(only)
	m.pending.mark()
	if err != nil {
		m.addError(err)
		return
	}
	m.observer.GameOnlyChanged(only)
	if only {
		m.addMessage("showing game subsystems only")
	} else {
		m.addMessage("showing all subsystems")
	}
}

func (m *AppModel) advanceWorld() {
	if m.nextWorld == nil {
		m.addMessage("world switching is unavailable")
		return
	}
	m.Browser.SetCurrentWorld(m.nextWorld(m.Browser.CurrentWorld()))
}

// reloadSettings re-reads the store after an external edit and resets the
// category filter from it.
func (m *AppModel) reloadSettings(c settings.Change) {
	if c.Removed {
		m.addMessage("settings file removed, keeping current state")
		return
	}
	if err := m.Settings.Reload(context.Background()); err != nil {
		m.addError(err)
		return
	}
	m.Browser.ReloadCategoryFilter()
	m.pending.mark()
	m.observer.SettingsReloaded(c.Path)
	m.addMessage("settings reloaded")
}

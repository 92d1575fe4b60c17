package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/sysbrowse/internal/browser"
	"github.com/papapumpkin/sysbrowse/internal/registry"
	"github.com/papapumpkin/sysbrowse/internal/settings"
)

// maxMessages bounds the message log shown under the tree.
const maxMessages = 3

// Observer is told about user actions that outlive the session: category
// toggles, game-only switches and settings reloads.
type Observer interface {
	CategoryToggled(id registry.CategoryID, visible bool)
	GameOnlyChanged(only bool)
	SettingsReloaded(path string)
}

type nopObserver struct{}

func (nopObserver) CategoryToggled(registry.CategoryID, bool) {}
func (nopObserver) GameOnlyChanged(bool)                      {}
func (nopObserver) SettingsReloaded(string)                   {}

// Options configures the browser TUI.
type Options struct {
	// Model is the populated subsystem model. Required.
	Model *browser.Model
	// Settings is the store backing Model. Required.
	Settings settings.Store
	// NextWorld returns the world after cur. Nil disables world switching.
	NextWorld func(cur registry.World) registry.World
	// Changes delivers settings file changes. Nil disables hot reload.
	Changes <-chan settings.Change
	Observer Observer
	// Query seeds the text filter.
	Query string
}

// pending records that a change notification arrived since the rows were
// last built. It is shared by every copy of AppModel.
type pending struct{ dirty bool }

func (p *pending) mark() { p.dirty = true }

func (p *pending) take() bool {
	d := p.dirty
	p.dirty = false
	return d
}

// AppModel is the root BubbleTea model for the subsystem browser.
type AppModel struct {
	Browser   *browser.Model
	Settings  settings.Store
	Keys      KeyMap
	StatusBar StatusBar
	Input     textinput.Model
	Filtering bool
	Cursor    int
	Width     int
	Height    int
	Messages  []string

	nextWorld   func(registry.World) registry.World
	changes     <-chan settings.Change
	observer    Observer
	rows        []row
	pending     *pending
	unsubscribe []func()
}

// NewAppModel creates a root model over opts.Model and subscribes to its
// change notifications. Call Close to unsubscribe.
func NewAppModel(opts Options) AppModel {
	if opts.Model == nil || opts.Settings == nil {
		panic("tui: Options.Model and Options.Settings are required")
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "name  -exclude  module:Engine"
	in.SetValue(opts.Query)

	m := AppModel{
		Browser:   opts.Model,
		Settings:  opts.Settings,
		Keys:      DefaultKeyMap(),
		Input:     in,
		nextWorld: opts.NextWorld,
		changes:   opts.Changes,
		observer:  obs,
		pending:   &pending{},
	}
	m.unsubscribe = append(m.unsubscribe,
		opts.Model.CategoryFilter().OnChanged(m.pending.mark),
		opts.Model.OnRebuilt(func(browser.RebuildStats) { m.pending.mark() }),
	)
	m.applyQuery(opts.Query)
	m.pending.take()
	m.refresh()
	return m
}

// Close unsubscribes from the model's notifications.
func (m AppModel) Close() {
	for _, cancel := range m.unsubscribe {
		cancel()
	}
}

// Init starts listening for settings changes.
func (m AppModel) Init() tea.Cmd {
	return waitForChange(m.changes)
}

// waitForChange blocks on ch and turns the next change into a message.
func waitForChange(ch <-chan settings.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return MsgWatchClosed{}
		}
		return MsgSettingsChanged{Change: c}
	}
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Input.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		if m.Filtering {
			cmd = m.handleFilterKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}

	case MsgSettingsChanged:
		m.reloadSettings(msg.Change)
		cmd = waitForChange(m.changes)

	case MsgWatchClosed:
		m.changes = nil
	}

	if m.pending.take() {
		m.refresh()
	}
	return m, cmd
}

func (m *AppModel) addMessage(text string) {
	m.Messages = append(m.Messages, styleInfo.Render(text))
	if len(m.Messages) > maxMessages {
		m.Messages = m.Messages[len(m.Messages)-maxMessages:]
	}
}

func (m *AppModel) addError(err error) {
	m.Messages = append(m.Messages, styleError.Render("error: "+err.Error()))
	if len(m.Messages) > maxMessages {
		m.Messages = m.Messages[len(m.Messages)-maxMessages:]
	}
}

func (m *AppModel) selected() (row, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.Cursor], true
}

func (m *AppModel) moveUp() {
	if m.Cursor > 0 {
		m.Cursor--
	}
}

func (m *AppModel) moveDown() {
	if m.Cursor < len(m.rows)-1 {
		m.Cursor++
	}
}

// refresh re-queries the model and keeps the cursor on the same item when
// it survives. A subsystem that disappeared falls back to its category.
func (m *AppModel) refresh() {
	prev, hadPrev := m.selected()
	m.rows = buildRows(m.Browser)

	m.StatusBar.Visible = m.Browser.NumSubsystemsFromVisibleCategories()
	m.StatusBar.Listed = 0
	for _, r := range m.rows {
		if r.sub != nil {
			m.StatusBar.Listed++
		}
	}
	m.StatusBar.Generation = m.Browser.Generation()
	m.StatusBar.GameOnly = m.Settings.ShouldShowOnlyGame()
	m.StatusBar.World = ""
	if w := m.Browser.CurrentWorld(); w != nil {
		m.StatusBar.World = w.Name()
	}

	if hadPrev {
		want := prev.id()
		for i, r := range m.rows {
			if r.id() == want {
				m.Cursor = i
				return
			}
		}
		catKey := browser.CategoryKey(prev.cat.CategoryID())
		for i, r := range m.rows {
			if r.id() == catKey {
				m.Cursor = i
				return
			}
		}
	}
	m.Cursor = max(0, min(m.Cursor, len(m.rows)-1))
}

// View renders the full TUI.
func (m AppModel) View() string {
	var sections []string
	sections = append(sections, m.StatusBar.View())
	if m.Filtering || m.Input.Value() != "" {
		sections = append(sections, m.Input.View())
	}

	l := measure(m.Browser, m.rows)
	if h := l.header(); h != "" {
		sections = append(sections, h)
	}

	footer := Footer{Width: m.Width, Bindings: BrowseFooterBindings(m.Keys)}
	if m.Filtering {
		footer.Bindings = FilterFooterBindings(m.Keys)
	}

	if len(m.rows) == 0 {
		sections = append(sections, styleEmpty.Render("  (no categories registered)"))
	} else {
		start, end := 0, len(m.rows)
		if m.Height > 0 {
			avail := max(m.Height-len(sections)-len(m.Messages)-1, 1)
			if m.Cursor >= avail {
				start = m.Cursor - avail + 1
			}
			end = min(start+avail, len(m.rows))
		}
		var lines []string
		for i := start; i < end; i++ {
			lines = append(lines, l.render(m.Browser, m.rows[i], i == m.Cursor))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, m.Messages...)
	sections = append(sections, footer.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

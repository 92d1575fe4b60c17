package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/sysbrowse/internal/browser"
	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// maxCellWidth caps a dynamic column so one long path cannot push the
// rest of the row off screen.
const maxCellWidth = 48

// row is one line of the flattened tree. Category rows have a nil sub.
type row struct {
	cat    *browser.CategoryItem
	sub    *browser.SubsystemItem
	hidden bool
	count  int
}

// id returns the tree key of the item on the row.
func (r row) id() browser.ItemID {
	if r.sub != nil {
		return r.sub.ID()
	}
	return r.cat.ID()
}

// buildRows flattens the model into display rows. Every category is listed
// so that hidden ones can be shown again; only visible categories expand
// into their filtered subsystems.
func buildRows(m *browser.Model) []row {
	filter := m.CategoryFilter()
	var rows []row
	for _, cat := range m.AllCategories() {
		if !filter.PassesFilter(cat) {
			rows = append(rows, row{cat: cat, hidden: true, count: cat.NumChildren()})
			continue
		}
		subs := m.FilteredSubsystems(cat)
		rows = append(rows, row{cat: cat, count: len(subs)})
		for _, sub := range subs {
			rows = append(rows, row{cat: cat, sub: sub})
		}
	}
	return rows
}

// layout holds the rendered widths of the name and dynamic columns.
type layout struct {
	cols   []registry.Column
	name   int
	widths []int
}

// measure computes column widths over the subsystem rows.
func measure(m *browser.Model, rows []row) layout {
	l := layout{cols: m.DynamicColumns(true)}
	l.name = lipgloss.Width("Name")
	l.widths = make([]int, len(l.cols))
	for i, c := range l.cols {
		l.widths[i] = lipgloss.Width(c.Label)
	}
	for _, r := range rows {
		if r.sub == nil {
			continue
		}
		l.name = max(l.name, lipgloss.Width(r.sub.DisplayName()))
		for i, c := range l.cols {
			l.widths[i] = max(l.widths[i], lipgloss.Width(m.ColumnValue(c, r.sub)))
		}
	}
	for i := range l.widths {
		l.widths[i] = min(l.widths[i], maxCellWidth)
	}
	l.name = min(l.name, maxCellWidth)
	return l
}

// cell pads or truncates s to exactly w cells.
func cell(s string, w int) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Render(s)
}

// header renders the column titles aligned with subsystem rows.
func (l layout) header() string {
	if len(l.cols) == 0 {
		return ""
	}
	parts := []string{cell("Name", l.name)}
	for i, c := range l.cols {
		parts = append(parts, cell(c.Label, l.widths[i]))
	}
	return "      " + styleHeader.Render(strings.Join(parts, "  "))
}

// render draws r. selected rows carry the selection indicator.
func (l layout) render(m *browser.Model, r row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = styleSelected.Render(selectionIndicator) + " "
	}

	if r.sub == nil {
		if r.hidden {
			return prefix + styleCount.Render(iconHidden) + " " +
				styleCategoryHidden.Render(r.cat.DisplayName()) + " " +
				styleCount.Render(fmt.Sprintf("(%d hidden)", r.count))
		}
		label := styleCategory.Render(r.cat.DisplayName())
		if selected {
			label = styleSelected.Render(r.cat.DisplayName())
		}
		return prefix + styleCount.Render(iconExpanded) + " " + label + " " +
			styleCount.Render(fmt.Sprintf("(%d)", r.count))
	}

	game := " "
	if r.sub.IsGameModule() {
		game = styleGame.Render(iconGame)
	}
	name := cell(r.sub.DisplayName(), l.name)
	if selected {
		name = styleSelected.Render(name)
	} else {
		name = styleSubsystem.Render(name)
	}
	parts := []string{name}
	for i, c := range l.cols {
		parts = append(parts, styleCell.Render(cell(m.ColumnValue(c, r.sub), l.widths[i])))
	}
	return prefix + "  " + game + " " + strings.Join(parts, "  ")
}

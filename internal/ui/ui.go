// Package ui provides console output for sysbrowse: status lines on stderr
// and the subsystem tree and column tables on stdout.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/papapumpkin/sysbrowse/internal/ansi"
	"github.com/papapumpkin/sysbrowse/internal/browser"
)

// Printer writes human-facing output. Status messages go to the error
// stream so that tables on the output stream stay pipeable.
type Printer struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New returns a Printer on stdout and stderr, colored when stderr is a terminal.
func New() *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr, color: ansi.ColorEnabled(os.Stderr)}
}

// NewWithWriters returns an uncolored Printer on the given writers.
func NewWithWriters(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

func (p *Printer) paint(s string, codes ...string) string {
	return ansi.Paint(p.color, s, codes...)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.err, "%s%s\n", p.paint("error: ", ansi.Red, ansi.Bold), msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.err, "%s%s\n", p.paint("warning: ", ansi.Yellow, ansi.Bold), msg)
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.err, p.paint(msg, ansi.Dim))
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.err, "%s %s\n", p.paint("✓", ansi.Green, ansi.Bold), msg)
}

// CategoryToggled confirms a visibility change.
func (p *Printer) CategoryToggled(label string, visible bool) {
	state := p.paint("hidden", ansi.Yellow)
	if visible {
		state = p.paint("visible", ansi.Green)
	}
	fmt.Fprintf(p.err, "%s %s is now %s\n", p.paint("◆", ansi.Cyan), label, state)
}

// TreeOptions controls what Tree renders.
type TreeOptions struct {
	// Columns adds the active dynamic columns after the display name.
	Columns bool
	// ShowHidden lists hidden categories after the visible ones.
	ShowHidden bool
}

// Tree prints every visible category of m with its filtered subsystems.
func (p *Printer) Tree(m *browser.Model, opts TreeOptions) {
	world := "(no world)"
	if w := m.CurrentWorld(); w != nil {
		world = w.Name()
	}
	fmt.Fprintf(p.out, "%s %s %s\n\n",
		p.paint("world", ansi.Dim),
		p.paint(world, ansi.Bold, ansi.Cyan),
		p.paint(fmt.Sprintf("(%d subsystem(s) in visible categories)", m.NumSubsystemsFromVisibleCategories()), ansi.Dim))

	cols := m.DynamicColumns(true)
	if !opts.Columns {
		cols = nil
	}

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	for _, cat := range m.FilteredCategories() {
		subs := m.FilteredSubsystems(cat)
		fmt.Fprintf(tw, "%s %s\n", p.paint(cat.DisplayName(), ansi.Bold), p.paint(fmt.Sprintf("(%d)", len(subs)), ansi.Dim))
		if len(subs) == 0 {
			fmt.Fprintf(tw, "  %s\n", p.paint("(empty)", ansi.Dim))
			continue
		}
		if len(cols) > 0 {
			header := []string{"NAME"}
			for _, c := range cols {
				header = append(header, strings.ToUpper(c.Label))
			}
			fmt.Fprintf(tw, "  %s\n", p.paint(strings.Join(header, "\t"), ansi.Dim))
		}
		for _, sub := range subs {
			row := []string{sub.DisplayName()}
			for _, c := range cols {
				row = append(row, m.ColumnValue(c, sub))
			}
			fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	if !opts.ShowHidden {
		return
	}
	filter := m.CategoryFilter()
	var hidden []string
	for _, cat := range m.AllCategories() {
		if !filter.IsCategoryVisible(cat.CategoryID()) {
			hidden = append(hidden, fmt.Sprintf("%s [%s]", cat.DisplayName(), cat.CategoryID()))
		}
	}
	if len(hidden) > 0 {
		fmt.Fprintln(p.out, p.paint("hidden: "+strings.Join(hidden, ", "), ansi.Dim))
	}
}

// Columns prints the dynamic columns of m in display order with their
// enabled state.
func (p *Printer) Columns(m *browser.Model, activeOnly bool) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.paint("NAME\tLABEL\tORDER\tENABLED", ansi.Dim))
	for _, c := range m.DynamicColumns(activeOnly) {
		_, active := m.FindDynamicColumn(c.Name, true)
		enabled := p.paint("no", ansi.Yellow)
		if active {
			enabled = p.paint("yes", ansi.Green)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Label, c.SortOrder, enabled)
	}
	tw.Flush()
}

// Categories prints every populated category with its visibility and
// total subsystem count.
func (p *Printer) Categories(m *browser.Model) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.paint("ID\tLABEL\tPRIORITY\tVISIBLE\tSUBSYSTEMS", ansi.Dim))
	filter := m.CategoryFilter()
	for _, cat := range m.AllCategories() {
		visible := p.paint("no", ansi.Yellow)
		if filter.IsCategoryVisible(cat.CategoryID()) {
			visible = p.paint("yes", ansi.Green)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\n", cat.CategoryID(), cat.DisplayName(), cat.SortPriority(), visible, cat.NumChildren())
	}
	tw.Flush()
}

// Worlds prints world names, marking current with an arrow.
func (p *Printer) Worlds(names []string, current string) {
	for _, name := range names {
		if name == current {
			fmt.Fprintf(p.out, "%s %s\n", p.paint("▸", ansi.Cyan), p.paint(name, ansi.Bold))
			continue
		}
		fmt.Fprintf(p.out, "  %s\n", name)
	}
}

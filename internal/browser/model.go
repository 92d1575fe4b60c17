// Package browser is the model behind the subsystem browser: a two-level
// tree of categories and the live subsystem instances inside them, rebuilt
// whenever the tracked world changes and read back through visibility,
// game-only and text filters.
//
// The model is single-goroutine. All mutation and all queries must happen
// on the same goroutine (normally the UI loop); nothing here locks.
package browser

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// Settings is the persisted settings store the model and category filter
// read and write through.
type Settings interface {
	LoadCategoryStates(into map[registry.CategoryID]bool)
	SetCategoryState(id registry.CategoryID, visible bool) error
	ShouldShowOnlyGame() bool
	TableColumnState(name string) bool
}

// Source supplies the registered category and column descriptors.
type Source interface {
	Categories() []registry.Category
	Columns() []registry.Column
}

// TextFilter is an attachable free-text predicate over tree items.
type TextFilter interface {
	PassesFilter(item TreeItem) bool
}

// RebuildStats summarizes one SetCurrentWorld rebuild.
type RebuildStats struct {
	World      string
	Generation uint64
	Categories int
	Subsystems int
	// PerCategory maps each category to its subsystem count.
	PerCategory map[registry.CategoryID]int
}

// Model owns the category and subsystem items for the current world.
type Model struct {
	source         Source
	settings       Settings
	categoryFilter *CategoryFilter
	textFilter     TextFilter
	collator       *collate.Collator

	world      registry.World
	generation uint64

	allCategories []*CategoryItem
	allSubsystems []*SubsystemItem
	byCategory    map[ItemID][]*SubsystemItem

	rebuilt subscribers[RebuildStats]
}

// New creates an empty model. Call SetCurrentWorld to populate it.
func New(source Source, settings Settings) *Model {
	if source == nil {
		contractf("model requires a descriptor source")
	}
	return &Model{
		source:         source,
		settings:       settings,
		categoryFilter: NewCategoryFilter(settings),
		collator:       collate.New(language.Und, collate.IgnoreCase),
		byCategory:     make(map[ItemID][]*SubsystemItem),
	}
}

// CategoryFilter returns the model's category visibility filter.
func (m *Model) CategoryFilter() *CategoryFilter { return m.categoryFilter }

// ReloadCategoryFilter re-reads category visibility from the settings store.
// Subscribers of the filter are kept and notified.
func (m *Model) ReloadCategoryFilter() { m.categoryFilter.reload() }

// SetTextFilter attaches f. A nil filter passes everything.
func (m *Model) SetTextFilter(f TextFilter) { m.textFilter = f }

// TextFilter returns the attached text filter, if any.
func (m *Model) TextFilter() TextFilter { return m.textFilter }

// OnRebuilt subscribes fn to completed rebuilds. The returned func unsubscribes.
func (m *Model) OnRebuilt(fn func(RebuildStats)) (cancel func()) {
	return m.rebuilt.add(fn)
}

// Generation counts rebuilds. Items built before the latest rebuild are stale.
func (m *Model) Generation() uint64 { return m.generation }

// CurrentWorld returns the tracked world, possibly nil.
func (m *Model) CurrentWorld() registry.World { return m.world }

// SetCurrentWorld tracks world and rebuilds the whole tree from scratch.
// A nil world yields categories with no subsystems.
func (m *Model) SetCurrentWorld(world registry.World) {
	m.world = world
	m.generation++

	m.EmptyModel()
	m.PopulateCategories()
	m.PopulateSubsystems()

	m.rebuilt.notify(m.stats())
}

// EmptyModel detaches every category's children and clears the tree. It is
// safe to call on an empty model.
func (m *Model) EmptyModel() {
	for _, cat := range m.allCategories {
		cat.RemoveAllChildren()
	}
	m.allCategories = nil
	m.allSubsystems = nil
	clear(m.byCategory)
}

// PopulateCategories creates one item per registered category and stable
// sorts them by priority. A category ID already present is skipped.
func (m *Model) PopulateCategories() {
	seen := make(map[registry.CategoryID]bool, len(m.allCategories))
	for _, cat := range m.allCategories {
		seen[cat.CategoryID()] = true
	}

	for _, desc := range m.source.Categories() {
		if seen[desc.ID] {
			continue
		}
		seen[desc.ID] = true
		m.allCategories = append(m.allCategories, newCategoryItem(m, desc))
	}

	slices.SortStableFunc(m.allCategories, func(a, b *CategoryItem) int {
		return cmp.Compare(a.SortPriority(), b.SortPriority())
	})
}

// PopulateSubsystems wraps every instance each category selects from the
// current world. It panics unless the subsystem containers are empty.
func (m *Model) PopulateSubsystems() {
	if len(m.allSubsystems) != 0 || len(m.byCategory) != 0 {
		contractf("PopulateSubsystems called on a populated model")
	}

	for _, cat := range m.allCategories {
		for _, inst := range cat.Select(m.world) {
			if inst == nil {
				continue
			}
			item := newSubsystemItem(m, cat, inst)
			cat.children = append(cat.children, item)
			m.allSubsystems = append(m.allSubsystems, item)
			m.byCategory[cat.ID()] = append(m.byCategory[cat.ID()], item)
		}
	}
}

// AllCategories returns every category in priority order.
func (m *Model) AllCategories() []*CategoryItem {
	return slices.Clone(m.allCategories)
}

// AllSubsystems returns every subsystem in population order.
func (m *Model) AllSubsystems() []*SubsystemItem {
	return slices.Clone(m.allSubsystems)
}

// FilteredCategories returns the visible categories in priority order.
func (m *Model) FilteredCategories() []*CategoryItem {
	var out []*CategoryItem
	for _, cat := range m.allCategories {
		if m.categoryFilter.PassesFilter(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// AllSubsystemsInCategory returns the unfiltered children of cat in
// population order.
func (m *Model) AllSubsystemsInCategory(cat *CategoryItem) []*SubsystemItem {
	mustCategory(cat)
	return slices.Clone(m.byCategory[cat.ID()])
}

// FilteredSubsystems returns the children of cat that pass the game-only
// setting and the text filter, sorted by display name.
func (m *Model) FilteredSubsystems(cat *CategoryItem) []*SubsystemItem {
	mustCategory(cat)

	onlyGame := m.settings.ShouldShowOnlyGame()

	var out []*SubsystemItem
	for _, item := range m.byCategory[cat.ID()] {
		if onlyGame && !item.IsGameModule() {
			continue
		}
		if m.textFilter != nil && !m.textFilter.PassesFilter(item) {
			continue
		}
		out = append(out, item)
	}

	if len(out) > 1 {
		slices.SortStableFunc(out, m.compareByName)
	}
	return out
}

// NumSubsystemsFromVisibleCategories counts the unfiltered subsystems of
// every visible category.
func (m *Model) NumSubsystemsFromVisibleCategories() int {
	count := 0
	for _, cat := range m.FilteredCategories() {
		count += len(m.byCategory[cat.ID()])
	}
	return count
}

func (m *Model) compareByName(a, b *SubsystemItem) int {
	an, bn := a.DisplayName(), b.DisplayName()
	if c := m.collator.CompareString(an, bn); c != 0 {
		return c
	}
	return strings.Compare(an, bn)
}

func (m *Model) stats() RebuildStats {
	st := RebuildStats{
		Generation:  m.generation,
		Categories:  len(m.allCategories),
		Subsystems:  len(m.allSubsystems),
		PerCategory: make(map[registry.CategoryID]int, len(m.allCategories)),
	}
	if m.world != nil {
		st.World = m.world.Name()
	}
	for _, cat := range m.allCategories {
		st.PerCategory[cat.CategoryID()] = cat.NumChildren()
	}
	return st
}

func mustCategory(cat *CategoryItem) {
	if cat == nil {
		contractf("nil category item")
	}
}

// contractf panics on a caller bug. Contract violations are never returned
// as errors.
func contractf(format string, args ...any) {
	panic(fmt.Sprintf("browser: "+format, args...))
}

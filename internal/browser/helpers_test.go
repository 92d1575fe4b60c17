package browser

import (
	"errors"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

type fakeWorld string

func (w fakeWorld) Name() string { return string(w) }

type fakeInstance struct {
	path   string
	name   string
	module string
	game   bool
}

func (i fakeInstance) Path() string        { return i.path }
func (i fakeInstance) ClassName() string   { return "U" + i.name }
func (i fakeInstance) DisplayName() string { return i.name }
func (i fakeInstance) Module() string      { return i.module }
func (i fakeInstance) IsGameModule() bool  { return i.game }

type write struct {
	id      registry.CategoryID
	visible bool
}

// fakeSettings records every persistence write in order.
type fakeSettings struct {
	categories map[registry.CategoryID]bool
	columns    map[string]bool
	onlyGame   bool
	writes     []write
	failWrites bool
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{
		categories: make(map[registry.CategoryID]bool),
		columns:    make(map[string]bool),
	}
}

func (s *fakeSettings) LoadCategoryStates(into map[registry.CategoryID]bool) {
	for id, v := range s.categories {
		into[id] = v
	}
}

func (s *fakeSettings) SetCategoryState(id registry.CategoryID, visible bool) error {
	s.writes = append(s.writes, write{id: id, visible: visible})
	if s.failWrites {
		return errors.New("disk full")
	}
	s.categories[id] = visible
	return nil
}

func (s *fakeSettings) ShouldShowOnlyGame() bool { return s.onlyGame }

func (s *fakeSettings) TableColumnState(name string) bool {
	enabled, ok := s.columns[name]
	return !ok || enabled
}

// fakeSource serves descriptors with per-world instance lists.
type fakeSource struct {
	categories []registry.Category
	columns    []registry.Column
}

func (s *fakeSource) Categories() []registry.Category { return s.categories }
func (s *fakeSource) Columns() []registry.Column      { return s.columns }

// addCategory registers a category whose Select returns the given instances
// for any non-nil world.
func (s *fakeSource) addCategory(id registry.CategoryID, priority int, names ...string) {
	insts := make([]registry.Instance, 0, len(names))
	for _, n := range names {
		insts = append(insts, fakeInstance{path: string(id) + "." + n, name: n, module: "Engine"})
	}
	s.addInstances(id, priority, insts...)
}

func (s *fakeSource) addInstances(id registry.CategoryID, priority int, insts ...registry.Instance) {
	s.categories = append(s.categories, registry.Category{
		ID:           id,
		Label:        string(id),
		SortPriority: priority,
		Select: func(w registry.World) []registry.Instance {
			if w == nil {
				return nil
			}
			return insts
		},
	})
}

func names(items []*SubsystemItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.DisplayName()
	}
	return out
}

func categoryIDs(items []*CategoryItem) []registry.CategoryID {
	out := make([]registry.CategoryID, len(items))
	for i, it := range items {
		out[i] = it.CategoryID()
	}
	return out
}

// textFilterFunc adapts a predicate to TextFilter.
type textFilterFunc func(TreeItem) bool

func (f textFilterFunc) PassesFilter(item TreeItem) bool { return f(item) }

package browser

import (
	"fmt"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// CategoryFilter decides which categories are visible. A category with no
// stored state is visible; only an explicit hide suppresses it.
type CategoryFilter struct {
	settings Settings
	state    map[registry.CategoryID]bool
	changed  subscribers[struct{}]
}

// NewCategoryFilter builds a filter seeded with every category state the
// settings store has persisted.
func NewCategoryFilter(settings Settings) *CategoryFilter {
	if settings == nil {
		contractf("category filter requires a settings store")
	}
	f := &CategoryFilter{
		settings: settings,
		state:    make(map[registry.CategoryID]bool),
	}
	settings.LoadCategoryStates(f.state)
	return f
}

// PassesFilter reports whether the category the item belongs to is visible.
func (f *CategoryFilter) PassesFilter(item TreeItem) bool {
	return f.IsCategoryVisible(item.ID().Category())
}

// IsCategoryVisible reports the stored visibility of id, defaulting to true.
func (f *CategoryFilter) IsCategoryVisible(id registry.CategoryID) bool {
	visible, ok := f.state[id]
	if !ok {
		return true
	}
	return visible
}

// ShowCategory marks id visible, persists it and notifies subscribers.
func (f *CategoryFilter) ShowCategory(id registry.CategoryID) error {
	return f.set(id, true)
}

// HideCategory marks id hidden, persists it and notifies subscribers.
func (f *CategoryFilter) HideCategory(id registry.CategoryID) error {
	return f.set(id, false)
}

// OnChanged subscribes fn to visibility changes. The notification carries
// no payload; subscribers re-query the model. The returned func unsubscribes.
func (f *CategoryFilter) OnChanged(fn func()) (cancel func()) {
	return f.changed.add(func(struct{}) { fn() })
}

// set updates memory and notifies subscribers even when the write fails.
func (f *CategoryFilter) set(id registry.CategoryID, visible bool) error {
	f.state[id] = visible
	err := f.settings.SetCategoryState(id, visible)
	f.changed.notify(struct{}{})
	if err != nil {
		return fmt.Errorf("browser: persist category %s: %w", id, err)
	}
	return nil
}

// reload replaces the in-memory state with what the settings store holds now.
func (f *CategoryFilter) reload() {
	clear(f.state)
	f.settings.LoadCategoryStates(f.state)
	f.changed.notify(struct{}{})
}

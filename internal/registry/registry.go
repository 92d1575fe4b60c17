// Package registry holds the category and column descriptors that drive the
// subsystem browser. Plugins contribute descriptors through Install; the
// browser model only ever reads them back.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateCategory is returned when a category ID is registered twice.
var ErrDuplicateCategory = errors.New("category already registered")

// ErrDuplicateColumn is returned when a column name is registered twice.
var ErrDuplicateColumn = errors.New("column already registered")

// CategoryID is the stable key of a subsystem category. It is also the key
// under which category visibility is persisted.
type CategoryID string

// World is the host's handle on a live world. The browser never owns it.
type World interface {
	Name() string
}

// Instance is a non-owning handle on one live subsystem object.
type Instance interface {
	// Path uniquely identifies the object within its host.
	Path() string
	ClassName() string
	DisplayName() string
	// Module is the code module that declares the subsystem class.
	Module() string
	// IsGameModule reports whether the class comes from game code rather
	// than the engine or an engine plugin.
	IsGameModule() bool
}

// SelectFunc enumerates the live instances of a category in the given world.
// It must tolerate a nil world and return no instances for it.
type SelectFunc func(world World) []Instance

// Category describes one group of subsystems.
type Category struct {
	ID           CategoryID
	Label        string
	SortPriority int
	Select       SelectFunc
}

// Column describes a dynamic table column.
type Column struct {
	Name      string
	Label     string
	SortOrder int
	Value     func(Instance) string
}

// Plugin contributes categories and columns to a Registry.
type Plugin interface {
	Name() string
	Register(r *Registry) error
}

// Registry accumulates category and column descriptors in registration order.
type Registry struct {
	categories []Category
	columns    []Column
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{}
}

// Install runs a plugin's registration against r.
func (r *Registry) Install(p Plugin) error {
	if err := p.Register(r); err != nil {
		return fmt.Errorf("registry: install plugin %s: %w", p.Name(), err)
	}
	return nil
}

// RegisterCategory adds a category descriptor. IDs must be unique.
func (r *Registry) RegisterCategory(c Category) error {
	if c.ID == "" {
		return fmt.Errorf("registry: category id must not be empty")
	}
	if c.Select == nil {
		return fmt.Errorf("registry: category %s has no select function", c.ID)
	}
	for _, existing := range r.categories {
		if existing.ID == c.ID {
			return fmt.Errorf("registry: %s: %w", c.ID, ErrDuplicateCategory)
		}
	}
	r.categories = append(r.categories, c)
	return nil
}

// RegisterColumn adds a dynamic column descriptor. Names must be unique.
func (r *Registry) RegisterColumn(c Column) error {
	if c.Name == "" {
		return fmt.Errorf("registry: column name must not be empty")
	}
	for _, existing := range r.columns {
		if existing.Name == c.Name {
			return fmt.Errorf("registry: %s: %w", c.Name, ErrDuplicateColumn)
		}
	}
	r.columns = append(r.columns, c)
	return nil
}

// Categories returns a copy of the registered categories in registration order.
func (r *Registry) Categories() []Category {
	return slices.Clone(r.categories)
}

// Columns returns a copy of the registered columns in registration order.
func (r *Registry) Columns() []Column {
	return slices.Clone(r.columns)
}

// SortCategories stable-sorts categories by ascending SortPriority.
func SortCategories(cats []Category) {
	slices.SortStableFunc(cats, func(a, b Category) int {
		return cmp.Compare(a.SortPriority, b.SortPriority)
	})
}

// SortColumns stable-sorts columns by ascending SortOrder.
func SortColumns(cols []Column) {
	slices.SortStableFunc(cols, func(a, b Column) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
}

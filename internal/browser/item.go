package browser

import (
	"fmt"
	"slices"
	"weak"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

type itemKind uint8

const (
	kindCategory itemKind = iota + 1
	kindSubsystem
)

// ItemID identifies a tree item. Category keys and subsystem keys carry
// different kinds, so the two spaces never collide.
type ItemID struct {
	kind     itemKind
	category registry.CategoryID
	path     string
}

// CategoryKey returns the ItemID of the category with the given ID.
func CategoryKey(id registry.CategoryID) ItemID {
	return ItemID{kind: kindCategory, category: id}
}

// SubsystemKey returns the ItemID of the subsystem at path inside category id.
func SubsystemKey(id registry.CategoryID, path string) ItemID {
	return ItemID{kind: kindSubsystem, category: id, path: path}
}

// Category returns the category the identified item belongs to. For a
// category key that is the category itself.
func (id ItemID) Category() registry.CategoryID { return id.category }

// IsCategory reports whether id names a category item.
func (id ItemID) IsCategory() bool { return id.kind == kindCategory }

// String renders the key for logs and debugging.
func (id ItemID) String() string {
	if id.kind == kindCategory {
		return "category:" + string(id.category)
	}
	return fmt.Sprintf("subsystem:%s/%s", id.category, id.path)
}

// TreeItem is a node of the two-level category/subsystem tree. It is
// implemented only by *CategoryItem and *SubsystemItem; use a type switch
// or Visit to dispatch on the concrete kind.
type TreeItem interface {
	ID() ItemID
	DisplayName() string
	// Model returns the owning model, or nil once it has been collected.
	Model() *Model
	// Generation is the model generation the item was built in.
	Generation() uint64

	treeItem()
}

// Visit calls the callback matching the concrete kind of item. Nil
// callbacks are skipped.
func Visit(item TreeItem, onCategory func(*CategoryItem), onSubsystem func(*SubsystemItem)) {
	switch it := item.(type) {
	case *CategoryItem:
		if onCategory != nil {
			onCategory(it)
		}
	case *SubsystemItem:
		if onSubsystem != nil {
			onSubsystem(it)
		}
	}
}

// CategoryItem is the tree node for one registered category.
type CategoryItem struct {
	desc       registry.Category
	model      weak.Pointer[Model]
	generation uint64
	children   []*SubsystemItem
}

func newCategoryItem(m *Model, desc registry.Category) *CategoryItem {
	return &CategoryItem{
		desc:       desc,
		model:      weak.Make(m),
		generation: m.generation,
	}
}

func (*CategoryItem) treeItem() {}

// ID returns the category key.
func (c *CategoryItem) ID() ItemID { return CategoryKey(c.desc.ID) }

// CategoryID returns the registry ID of the category.
func (c *CategoryItem) CategoryID() registry.CategoryID { return c.desc.ID }

// DisplayName returns the category label, falling back to its ID.
func (c *CategoryItem) DisplayName() string {
	if c.desc.Label == "" {
		return string(c.desc.ID)
	}
	return c.desc.Label
}

// SortPriority returns the registry's declared ordering priority.
func (c *CategoryItem) SortPriority() int { return c.desc.SortPriority }

// Model returns the owning model.
func (c *CategoryItem) Model() *Model { return c.model.Value() }

// Generation returns the model generation this item was built in.
func (c *CategoryItem) Generation() uint64 { return c.generation }

// Select enumerates the category's live instances in world.
func (c *CategoryItem) Select(world registry.World) []registry.Instance {
	if c.desc.Select == nil {
		return nil
	}
	return c.desc.Select(world)
}

// Children returns the category's subsystems in population order.
func (c *CategoryItem) Children() []*SubsystemItem {
	return slices.Clone(c.children)
}

// NumChildren returns the number of subsystems under the category.
func (c *CategoryItem) NumChildren() int { return len(c.children) }

// RemoveAllChildren detaches every child, clearing the child's parent link
// before dropping it.
func (c *CategoryItem) RemoveAllChildren() {
	for _, child := range c.children {
		child.parent = weak.Pointer[CategoryItem]{}
	}
	c.children = nil
}

// SubsystemItem is the tree node wrapping one live subsystem instance.
type SubsystemItem struct {
	instance   registry.Instance
	id         ItemID
	parent     weak.Pointer[CategoryItem]
	model      weak.Pointer[Model]
	generation uint64
}

func newSubsystemItem(m *Model, parent *CategoryItem, inst registry.Instance) *SubsystemItem {
	return &SubsystemItem{
		instance:   inst,
		id:         SubsystemKey(parent.CategoryID(), inst.Path()),
		parent:     weak.Make(parent),
		model:      weak.Make(m),
		generation: m.generation,
	}
}

func (*SubsystemItem) treeItem() {}

// ID returns the composite category and instance key.
func (s *SubsystemItem) ID() ItemID { return s.id }

// Instance returns the wrapped host object.
func (s *SubsystemItem) Instance() registry.Instance { return s.instance }

// DisplayName returns the instance's display name.
func (s *SubsystemItem) DisplayName() string { return s.instance.DisplayName() }

// ClassName returns the instance's class name.
func (s *SubsystemItem) ClassName() string { return s.instance.ClassName() }

// Module returns the module that declares the instance's class.
func (s *SubsystemItem) Module() string { return s.instance.Module() }

// Path returns the instance's object path.
func (s *SubsystemItem) Path() string { return s.instance.Path() }

// IsGameModule reports whether the instance's class comes from game code.
func (s *SubsystemItem) IsGameModule() bool { return s.instance.IsGameModule() }

// Parent returns the owning category, or nil once detached.
func (s *SubsystemItem) Parent() *CategoryItem { return s.parent.Value() }

// Model returns the owning model.
func (s *SubsystemItem) Model() *Model { return s.model.Value() }

// Generation returns the model generation this item was built in.
func (s *SubsystemItem) Generation() uint64 { return s.generation }

// Stale reports whether the model has been rebuilt since the item was
// created. Stale items must not be used to reach the wrapped instance.
func (s *SubsystemItem) Stale() bool {
	m := s.model.Value()
	return m == nil || m.generation != s.generation
}

// FilterStrings returns the strings a text filter matches against.
func (s *SubsystemItem) FilterStrings() []string {
	return []string{
		s.instance.DisplayName(),
		s.instance.ClassName(),
		s.instance.Module(),
		s.instance.Path(),
	}
}

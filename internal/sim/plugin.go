package sim

import "github.com/papapumpkin/sysbrowse/internal/registry"

// Built-in category IDs.
const (
	CategoryEngine       registry.CategoryID = "engine"
	CategoryGameInstance registry.CategoryID = "game_instance"
	CategoryWorld        registry.CategoryID = "world"
	CategoryPlayer       registry.CategoryID = "player"
)

// Built-in column names.
const (
	ColumnModule = "Module"
	ColumnClass  = "Class"
	ColumnPath   = "Path"
	ColumnOwner  = "Owner"
)

// Plugin registers the built-in categories and columns.
type Plugin struct{}

// Name identifies the plugin.
func (Plugin) Name() string { return "builtin" }

// Register adds the engine, game instance, world and player categories and
// the Module, Class, Path and Owner columns.
func (Plugin) Register(r *registry.Registry) error {
	categories := []registry.Category{
		{ID: CategoryEngine, Label: "Engine Subsystems", SortPriority: 0, Select: selectEngine},
		{ID: CategoryGameInstance, Label: "Game Instance Subsystems", SortPriority: 10, Select: selectGameInstance},
		{ID: CategoryWorld, Label: "World Subsystems", SortPriority: 20, Select: selectWorld},
		{ID: CategoryPlayer, Label: "Player Subsystems", SortPriority: 30, Select: selectPlayers},
	}
	for _, c := range categories {
		if err := r.RegisterCategory(c); err != nil {
			return err
		}
	}

	columns := []registry.Column{
		{Name: ColumnModule, Label: "Module", SortOrder: 10, Value: registry.Instance.Module},
		{Name: ColumnClass, Label: "Class", SortOrder: 20, Value: registry.Instance.ClassName},
		{Name: ColumnPath, Label: "Path", SortOrder: 30, Value: registry.Instance.Path},
		{Name: ColumnOwner, Label: "Owner", SortOrder: 40, Value: ownerOf},
	}
	for _, c := range columns {
		if err := r.RegisterColumn(c); err != nil {
			return err
		}
	}
	return nil
}

func asWorld(w registry.World) (*World, bool) {
	sw, ok := w.(*World)
	return sw, ok && sw != nil && sw.host != nil
}

func selectEngine(w registry.World) []registry.Instance {
	sw, ok := asWorld(w)
	if !ok {
		return nil
	}
	return instances(sw.host.engine)
}

func selectGameInstance(w registry.World) []registry.Instance {
	sw, ok := asWorld(w)
	if !ok {
		return nil
	}
	return instances(sw.host.gameInstance)
}

func selectWorld(w registry.World) []registry.Instance {
	sw, ok := asWorld(w)
	if !ok {
		return nil
	}
	return instances(sw.subsystems)
}

func selectPlayers(w registry.World) []registry.Instance {
	sw, ok := asWorld(w)
	if !ok {
		return nil
	}
	var out []registry.Instance
	for _, p := range sw.players {
		out = append(out, instances(p.subsystems)...)
	}
	return out
}

func ownerOf(inst registry.Instance) string {
	if o, ok := inst.(*Object); ok {
		return o.Owner()
	}
	return ""
}

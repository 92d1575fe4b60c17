package sim

import (
	"path"
	"strings"
	"unicode"

	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// Object is a live subsystem instance owned by the Host.
type Object struct {
	path    string
	class   string
	display string
	module  string
	game    bool
	owner   string
}

func newObject(parent, owner string, spec SubsystemSpec) *Object {
	display := spec.Name
	if display == "" {
		display = displayNameFor(spec.Class)
	}
	return &Object{
		path:    path.Join(parent, spec.Class),
		class:   spec.Class,
		display: display,
		module:  spec.Module,
		game:    spec.Game,
		owner:   owner,
	}
}

// Path returns the object's unique path.
func (o *Object) Path() string { return o.path }

// ClassName returns the object's class.
func (o *Object) ClassName() string { return o.class }

// DisplayName returns the human-readable name.
func (o *Object) DisplayName() string { return o.display }

// Module returns the declaring module.
func (o *Object) Module() string { return o.module }

// IsGameModule reports whether the class belongs to game code.
func (o *Object) IsGameModule() bool { return o.game }

// Owner returns the name of the engine, game instance, world or player that
// owns the object.
func (o *Object) Owner() string { return o.owner }

// Player is a local player inside a world.
type Player struct {
	name       string
	subsystems []*Object
}

// Name returns the player's name.
func (p *Player) Name() string { return p.name }

// World is a live world. It satisfies registry.World.
type World struct {
	name       string
	host       *Host
	subsystems []*Object
	players    []*Player
}

// Name returns the world's name. A nil world has no name.
func (w *World) Name() string {
	if w == nil {
		return ""
	}
	return w.name
}

// Players returns the world's local players.
func (w *World) Players() []*Player { return w.players }

// Host owns every object instantiated from a scene.
type Host struct {
	name         string
	engine       []*Object
	gameInstance []*Object
	worlds       []*World
}

// NewHost instantiates every subsystem the scene declares.
func NewHost(sc Scene) *Host {
	h := &Host{name: sc.Name}
	for _, spec := range sc.Engine {
		h.engine = append(h.engine, newObject("/Engine", "Engine", spec))
	}
	for _, spec := range sc.GameInstance {
		h.gameInstance = append(h.gameInstance, newObject("/GameInstance", "GameInstance", spec))
	}
	for _, ws := range sc.Worlds {
		w := &World{name: ws.Name, host: h}
		root := "/" + ws.Name
		for _, spec := range ws.Subsystems {
			w.subsystems = append(w.subsystems, newObject(root, ws.Name, spec))
		}
		for _, ps := range ws.Players {
			p := &Player{name: ps.Name}
			for _, spec := range ps.Subsystems {
				p.subsystems = append(p.subsystems, newObject(path.Join(root, ps.Name), ps.Name, spec))
			}
			w.players = append(w.players, p)
		}
		h.worlds = append(h.worlds, w)
	}
	return h
}

// Name returns the scene name.
func (h *Host) Name() string { return h.name }

// Worlds returns every world in scene order.
func (h *Host) Worlds() []*World { return h.worlds }

// World looks a world up by name.
func (h *Host) World(name string) (*World, bool) {
	for _, w := range h.worlds {
		if w.name == name {
			return w, true
		}
	}
	return nil, false
}

// DefaultWorld returns the first world, or nil for a scene without worlds.
func (h *Host) DefaultWorld() *World {
	if len(h.worlds) == 0 {
		return nil
	}
	return h.worlds[0]
}

// NextWorld returns the world after cur, wrapping around. A nil or unknown
// cur yields the first world.
func (h *Host) NextWorld(cur registry.World) *World {
	for i, w := range h.worlds {
		if registry.World(w) == cur {
			return h.worlds[(i+1)%len(h.worlds)]
		}
	}
	return h.DefaultWorld()
}

func instances(objs []*Object) []registry.Instance {
	out := make([]registry.Instance, len(objs))
	for i, o := range objs {
		out[i] = o
	}
	return out
}

// displayNameFor turns a class like "UAssetEditorSubsystem" into
// "Asset Editor Subsystem".
func displayNameFor(class string) string {
	name := class
	if len(name) > 1 && (name[0] == 'U' || name[0] == 'A') && unicode.IsUpper(rune(name[1])) {
		name = name[1:]
	}

	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

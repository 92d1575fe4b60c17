// Package sim is a stand-in host object system. It instantiates subsystem
// objects from a scene description and registers the built-in engine, game
// instance, world and player categories that select them.
package sim

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultScenePath is the conventional location of a scene file.
const DefaultScenePath = ".sysbrowse/scene.toml"

// SubsystemSpec declares one subsystem class.
type SubsystemSpec struct {
	Class  string `toml:"class"`
	Name   string `toml:"name,omitempty"`
	Module string `toml:"module"`
	Game   bool   `toml:"game,omitempty"`
}

// PlayerSpec declares a local player and its subsystems.
type PlayerSpec struct {
	Name       string          `toml:"name"`
	Subsystems []SubsystemSpec `toml:"subsystems"`
}

// WorldSpec declares a world, its subsystems and its local players.
type WorldSpec struct {
	Name       string          `toml:"name"`
	Subsystems []SubsystemSpec `toml:"subsystems"`
	Players    []PlayerSpec    `toml:"players"`
}

// Scene is the full host description: engine and game-instance subsystems
// shared by every world, plus the worlds themselves.
type Scene struct {
	Name         string          `toml:"name"`
	Engine       []SubsystemSpec `toml:"engine"`
	GameInstance []SubsystemSpec `toml:"game_instance"`
	Worlds       []WorldSpec     `toml:"worlds"`
}

// LoadScene reads and validates a scene file.
func LoadScene(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("sim: reading %s: %w", path, err)
	}
	var sc Scene
	if err := toml.Unmarshal(data, &sc); err != nil {
		return Scene{}, fmt.Errorf("sim: parsing %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return Scene{}, fmt.Errorf("sim: %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks that every object path the scene produces is unique.
func (sc Scene) Validate() error {
	if err := uniqueClasses("engine", sc.Engine); err != nil {
		return err
	}
	if err := uniqueClasses("game instance", sc.GameInstance); err != nil {
		return err
	}

	worlds := make(map[string]bool, len(sc.Worlds))
	for _, w := range sc.Worlds {
		if w.Name == "" {
			return fmt.Errorf("world with empty name")
		}
		if worlds[w.Name] {
			return fmt.Errorf("duplicate world %q", w.Name)
		}
		worlds[w.Name] = true

		if err := uniqueClasses("world "+w.Name, w.Subsystems); err != nil {
			return err
		}
		players := make(map[string]bool, len(w.Players))
		for _, p := range w.Players {
			if p.Name == "" {
				return fmt.Errorf("world %q: player with empty name", w.Name)
			}
			if players[p.Name] {
				return fmt.Errorf("world %q: duplicate player %q", w.Name, p.Name)
			}
			players[p.Name] = true
			if err := uniqueClasses("player "+p.Name, p.Subsystems); err != nil {
				return err
			}
		}
	}
	return nil
}

func uniqueClasses(owner string, specs []SubsystemSpec) error {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Class == "" {
			return fmt.Errorf("%s: subsystem with empty class", owner)
		}
		if seen[s.Class] {
			return fmt.Errorf("%s: duplicate subsystem class %q", owner, s.Class)
		}
		seen[s.Class] = true
	}
	return nil
}

// Package telemetry provides a JSONL event stream recording what happened to
// the browser model: rebuilds on world change, category visibility changes
// and settings reloads. Each line is one structured JSON event.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/papapumpkin/sysbrowse/internal/browser"
	"github.com/papapumpkin/sysbrowse/internal/registry"
)

// Event kinds identify the type of telemetry event.
const (
	KindModelRebuilt     = "model_rebuilt"
	KindCategoryShown    = "category_shown"
	KindCategoryHidden   = "category_hidden"
	KindGameOnlyChanged  = "game_only_changed"
	KindSettingsReloaded = "settings_reloaded"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag and optional world and category identifiers along with
// arbitrary structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	World     string    `json:"world,omitempty"`
	Category  string    `json:"category,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// RebuildData is the payload of a model_rebuilt event.
type RebuildData struct {
	Generation  uint64         `json:"generation"`
	Categories  int            `json:"categories"`
	Subsystems  int            `json:"subsystems"`
	PerCategory map[string]int `json:"per_category,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for concurrent
// use by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
		now:  time.Now,
	}, nil
}

// Emit writes a single event to the JSONL file. A zero Timestamp is filled
// with the current time. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.now().UTC()
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// EmitRebuild records a completed model rebuild.
func (e *Emitter) EmitRebuild(st browser.RebuildStats) error {
	per := make(map[string]int, len(st.PerCategory))
	for id, n := range st.PerCategory {
		per[string(id)] = n
	}
	return e.Emit(Event{
		Kind:  KindModelRebuilt,
		World: st.World,
		Data: RebuildData{
			Generation:  st.Generation,
			Categories:  st.Categories,
			Subsystems:  st.Subsystems,
			PerCategory: per,
		},
	})
}

// EmitToggle records a category visibility change.
func (e *Emitter) EmitToggle(world string, id registry.CategoryID, visible bool) error {
	kind := KindCategoryHidden
	if visible {
		kind = KindCategoryShown
	}
	return e.Emit(Event{Kind: kind, World: world, Category: string(id)})
}

// EmitGameOnly records a change of the game-only setting.
func (e *Emitter) EmitGameOnly(world string, only bool) error {
	return e.Emit(Event{Kind: KindGameOnlyChanged, World: world, Data: map[string]bool{"only": only}})
}

// EmitSettingsReloaded records a reload of the settings store at path.
func (e *Emitter) EmitSettingsReloaded(path string) error {
	return e.Emit(Event{Kind: KindSettingsReloaded, Data: map[string]string{"path": path}})
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

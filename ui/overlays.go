package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayMinimap     OverlayID = "minimap"
	OverlayMagnet      OverlayID = "magnet"
	OverlayLevels      OverlayID = "levels"
	OverlayGrid        OverlayID = "grid"
	OverlayPerformance OverlayID = "performance"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "M")
	Category    string    // Grouping (e.g., "visual", "debug")
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
// The minimap and floor grid start enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.enabled[OverlayMinimap] = true
	reg.enabled[OverlayGrid] = true
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayMinimap,
		Name:        "Minimap",
		Description: "Arena overview with chests and opponents",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "visual",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayGrid,
		Name:        "Floor Grid",
		Description: "Reference grid on the arena floor",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "visual",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayLevels,
		Name:        "Levels",
		Description: "Level labels above every creature",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "visual",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayMagnet,
		Name:        "Magnet Radius",
		Description: "Item attraction range around the head",
		Key:         rl.KeyR,
		KeyLabel:    "R",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerformance,
		Name:        "Performance",
		Description: "Frame and tick timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleInput toggles any overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleInput() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD      OverlayID = "hud"
	OverlayPerf     OverlayID = "perf"
	OverlayBounds   OverlayID = "bounds"
	OverlayControls OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // Keyboard key to toggle (0 = no key)
	KeyLabel    string // Key label for display (e.g., "H")
	Category    string
	Default     bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayHUD,
		Name:        "HUD",
		Description: "Device profile, particle budget and reveal status",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "info",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Frame Timing",
		Description: "Per-phase frame timing",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayBounds,
		Name:        "Reveal Bounds",
		Description: "Observed section rectangles and thresholds",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "debug",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayControls,
		Name:        "Controls",
		Description: "Overlay and key legend",
		Key:         rl.KeyTab,
		KeyLabel:    "Tab",
		Category:    "info",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
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

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID, its new state and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBinding is one non-overlay key shown in the legend.
type KeyBinding struct {
	Label  string
	Action string
}

// DefaultKeyBindings lists the page's global keys.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{"Up/Down", "Scroll"},
		{"PgUp/PgDn", "Scroll one screen"},
		{"Home/End", "Jump to top/bottom"},
		{"R", "Reduced motion"},
		{"M", "Simulate mobile"},
		{"S", "Save snapshot"},
		{"F11", "Fullscreen"},
	}
}

// ControlsPanel renders the overlay toggles and the key legend.
type ControlsPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
	keys     []KeyBinding
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(keys []KeyBinding) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		anchor:   AnchorBottomRight,
		width:    240,
		keys:     keys,
	}
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, screenW, screenH int32) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	items := len(c.keys) + 1
	for _, cat := range categories {
		items += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	panelHeight := int32(items)*lineHeight + padding*2 + lineHeight + 4

	x, y := c.anchor.Place(c.width, panelHeight, screenW, screenH, 10)
	r.DrawPanel(x, y, c.width, panelHeight)
	x += padding
	y += padding

	rl.DrawText("Controls", x, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range categories {
		y = r.DrawSectionHeader(x, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	y = r.DrawSectionHeader(x, y, "Keys")
	for _, k := range c.keys {
		y = r.DrawLabelValue(x, y, k.Label, k.Action)
	}
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := r.Theme.PhaseUnseen
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.PhaseRevealed
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "info":
		return "Info"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

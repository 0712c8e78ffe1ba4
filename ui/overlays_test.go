package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	r := NewOverlayRegistry()
	if !r.IsEnabled(OverlayHUD) {
		t.Error("HUD should start enabled")
	}
	for _, id := range []OverlayID{OverlayPerf, OverlayBounds, OverlayControls} {
		if r.IsEnabled(id) {
			t.Errorf("%s should start disabled", id)
		}
	}
	if got := r.Categories(); len(got) != 2 || got[0] != "info" || got[1] != "debug" {
		t.Errorf("categories = %v", got)
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, on, ok := r.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPerf || !on {
		t.Fatalf("P = (%q, %v, %v), want (perf, true, true)", id, on, ok)
	}
	if _, on, _ = r.HandleKeyPress(rl.KeyP); on {
		t.Error("second P should disable the overlay")
	}
	if _, _, ok = r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key reported a toggle")
	}
}

func TestOverlayUnknownID(t *testing.T) {
	r := NewOverlayRegistry()
	if r.Toggle("nope") {
		t.Error("unknown overlay toggled on")
	}
	r.SetEnabled("nope", true)
	if r.IsEnabled("nope") {
		t.Error("unknown overlay enabled")
	}
}

func TestAnchorPlace(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 690, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 690, 490},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Place(100, 100, 800, 600, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d placed at (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

package viewport

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	v := New(1280, 720, 3000)

	if v.ScrollY != 0 {
		t.Errorf("expected viewport at top, got %f", v.ScrollY)
	}
	if v.MaxScroll() != 2280 {
		t.Errorf("expected max scroll 2280, got %f", v.MaxScroll())
	}
}

func TestPageToScreen(t *testing.T) {
	v := New(1280, 720, 3000)
	v.ScrollTo(500)

	tests := []struct {
		px, py float32
		sx, sy float32
	}{
		{640, 860, 640, 360},
		{0, 500, 0, 0},
		{100, 0, 100, -500},
	}

	for _, tt := range tests {
		sx, sy := v.PageToScreen(tt.px, tt.py)
		if math.Abs(float64(sx-tt.sx)) > 0.01 || math.Abs(float64(sy-tt.sy)) > 0.01 {
			t.Errorf("PageToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.px, tt.py, sx, sy, tt.sx, tt.sy)
		}
	}
}

func TestScrollClamp(t *testing.T) {
	v := New(1280, 720, 2000)

	v.ScrollBy(-100)
	if v.ScrollY != 0 {
		t.Errorf("expected scroll clamped to 0, got %f", v.ScrollY)
	}

	v.ScrollBy(5000)
	if v.ScrollY != 1280 {
		t.Errorf("expected scroll clamped to 1280, got %f", v.ScrollY)
	}
	if v.Progress() != 1 {
		t.Errorf("expected progress 1 at bottom, got %f", v.Progress())
	}
}

func TestShortPageCannotScroll(t *testing.T) {
	v := New(1280, 720, 400)
	v.ScrollBy(300)
	if v.ScrollY != 0 {
		t.Errorf("page shorter than viewport should not scroll, got %f", v.ScrollY)
	}
	if v.Progress() != 1 {
		t.Errorf("expected progress 1 for unscrollable page, got %f", v.Progress())
	}
}

func TestResizeReclamps(t *testing.T) {
	v := New(1280, 720, 2000)
	v.ScrollTo(1280)

	v.Resize(1280, 1000)
	if v.ScrollY != 1000 {
		t.Errorf("expected scroll re-clamped to 1000, got %f", v.ScrollY)
	}
}

func TestIntersectionRatio(t *testing.T) {
	v := New(1000, 800, 5000)

	tests := []struct {
		name   string
		scroll float32
		rect   Rect
		want   float32
	}{
		{"fully inside", 0, Rect{X: 100, Y: 100, W: 200, H: 200}, 1},
		{"fully below", 0, Rect{X: 100, Y: 900, W: 200, H: 200}, 0},
		{"half below", 0, Rect{X: 0, Y: 700, W: 1000, H: 200}, 0.5},
		{"half visible after scroll", 700, Rect{X: 0, Y: 500, W: 1000, H: 400}, 0.5},
		{"taller than viewport", 0, Rect{X: 0, Y: 0, W: 1000, H: 1600}, 0.5},
		{"partly off right edge", 0, Rect{X: 900, Y: 0, W: 200, H: 100}, 0.5},
		{"degenerate inside", 0, Rect{X: 10, Y: 10}, 1},
		{"degenerate outside", 0, Rect{X: 10, Y: 900}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.ScrollTo(tt.scroll)
			got := v.IntersectionRatio(tt.rect)
			if math.Abs(float64(got-tt.want)) > 0.001 {
				t.Errorf("IntersectionRatio(%+v) at scroll %v = %v, want %v", tt.rect, tt.scroll, got, tt.want)
			}
		})
	}
}

func TestIsVisible(t *testing.T) {
	v := New(1000, 800, 5000)

	if !v.IsVisible(Rect{X: 0, Y: 790, W: 100, H: 100}) {
		t.Error("rect crossing bottom edge should be visible")
	}
	if v.IsVisible(Rect{X: 0, Y: 800, W: 100, H: 100}) {
		t.Error("rect starting at bottom edge should not be visible")
	}

	v.ScrollTo(1000)
	if v.IsVisible(Rect{X: 0, Y: 0, W: 100, H: 100}) {
		t.Error("rect scrolled past should not be visible")
	}
}

func TestReset(t *testing.T) {
	v := New(1280, 720, 3000)
	v.ScrollTo(900)
	v.Reset()
	if v.ScrollY != 0 {
		t.Errorf("expected scroll 0 after reset, got %f", v.ScrollY)
	}
}

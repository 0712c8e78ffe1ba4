// Package viewport models the visible window over a vertically scrolling
// page and detects when page elements cross into view.
package viewport

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	X, Y, W, H float32
}

// Area returns the rectangle's area (0 for degenerate rects).
func (r Rect) Area() float32 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Viewport is the window onto the page.
// The page scrolls vertically; horizontal extent always matches the viewport.
type Viewport struct {
	// ScrollY is the page coordinate at the top of the viewport
	ScrollY float32

	// Viewport dimensions (screen size)
	Width, Height float32

	// Total page height
	PageHeight float32
}

// New creates a viewport at the top of the page.
func New(width, height, pageHeight float32) *Viewport {
	return &Viewport{
		Width:      width,
		Height:     height,
		PageHeight: pageHeight,
	}
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float32 {
	m := v.PageHeight - v.Height
	if m < 0 {
		return 0
	}
	return m
}

// PageToScreen converts page coordinates to screen coordinates.
func (v *Viewport) PageToScreen(px, py float32) (sx, sy float32) {
	return px, py - v.ScrollY
}

// Bounds returns the visible region in page coordinates.
func (v *Viewport) Bounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, W: v.Width, H: v.Height}
}

// IntersectionRatio returns the fraction of r's area inside the viewport,
// in [0, 1]. Degenerate rects report 1 when their origin is visible.
func (v *Viewport) IntersectionRatio(r Rect) float32 {
	b := v.Bounds()
	area := r.Area()
	if area == 0 {
		if r.X >= b.X && r.X <= b.X+b.W && r.Y >= b.Y && r.Y <= b.Y+b.H {
			return 1
		}
		return 0
	}

	ix := overlap(r.X, r.X+r.W, b.X, b.X+b.W)
	iy := overlap(r.Y, r.Y+r.H, b.Y, b.Y+b.H)
	ratio := ix * iy / area
	return clamp(ratio, 0, 1)
}

// IsVisible returns true if any part of r is on screen.
func (v *Viewport) IsVisible(r Rect) bool {
	b := v.Bounds()
	return r.X < b.X+b.W && r.X+r.W > b.X && r.Y < b.Y+b.H && r.Y+r.H > b.Y
}

// Resize updates viewport dimensions and re-clamps the scroll position.
func (v *Viewport) Resize(width, height float32) {
	if width == v.Width && height == v.Height {
		return
	}
	v.Width = width
	v.Height = height
	v.ScrollY = clamp(v.ScrollY, 0, v.MaxScroll())
}

// SetPageHeight changes the page length and re-clamps the scroll position.
func (v *Viewport) SetPageHeight(h float32) {
	v.PageHeight = h
	v.ScrollY = clamp(v.ScrollY, 0, v.MaxScroll())
}

// ScrollBy moves the viewport by dy pixels, clamped to the page.
func (v *Viewport) ScrollBy(dy float32) {
	v.ScrollY = clamp(v.ScrollY+dy, 0, v.MaxScroll())
}

// ScrollTo sets the scroll position, clamped to the page.
func (v *Viewport) ScrollTo(y float32) {
	v.ScrollY = clamp(y, 0, v.MaxScroll())
}

// Progress returns how far down the page the viewport is, in [0, 1].
func (v *Viewport) Progress() float32 {
	m := v.MaxScroll()
	if m == 0 {
		return 1
	}
	return v.ScrollY / m
}

// Reset returns to the top of the page.
func (v *Viewport) Reset() {
	v.ScrollY = 0
}

// overlap returns the length of the intersection of [a0,a1] and [b0,b1].
func overlap(a0, a1, b0, b1 float32) float32 {
	lo := a0
	if b0 > lo {
		lo = b0
	}
	hi := a1
	if b1 < hi {
		hi = b1
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

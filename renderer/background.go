package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// GradientBackground is the static hero used when the particle renderer
// cannot initialize. It needs no GPU resources beyond immediate drawing.
type GradientBackground struct {
	top, bottom rl.Color
	glow        rl.Color

	screenW, screenH float32
}

// NewGradientBackground creates a fallback hero tinted by the particle color.
func NewGradientBackground(screenW, screenH int32, tint [3]uint8) *GradientBackground {
	return &GradientBackground{
		top:     rl.Color{R: 12, G: 10, B: 24, A: 255},
		bottom:  rl.Color{R: 28, G: 16, B: 40, A: 255},
		glow:    rl.Color{R: tint[0], G: tint[1], B: tint[2], A: 70},
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Resize updates the hero dimensions.
func (b *GradientBackground) Resize(w, h float32) {
	b.screenW = w
	b.screenH = h
}

// Draw renders the hero gradient with its top edge at screen y = top.
func (b *GradientBackground) Draw(top float32) {
	if top+b.screenH <= 0 {
		return
	}
	rl.DrawRectangleGradientV(0, int32(top), int32(b.screenW), int32(b.screenH), b.top, b.bottom)

	cx := int32(b.screenW / 2)
	cy := int32(top + b.screenH/2)
	radius := min(b.screenW, b.screenH) * 0.35
	rl.DrawCircleGradient(cx, cy, radius, b.glow, rl.Blank)
}

// DrawPage fills the area below the hero.
func DrawPage(top, width, height float32) {
	if top >= height {
		return
	}
	rl.DrawRectangle(0, int32(top), int32(width), int32(height-top), rl.Color{R: 10, G: 10, B: 16, A: 255})
}

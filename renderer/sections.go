package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ElementView is one text element with its animated style resolved.
// X and Y are screen coordinates before the style offset is applied.
type ElementView struct {
	Index   int // Position within its section, the title is 0
	Text    string
	Title   bool
	X, Y    float32
	Opacity float32
	OffsetX float32
	OffsetY float32
	Scale   float32
}

// MeterView is a skill bar drawn beside the item at Item. The bar fills to
// Value * Level percent and fades in with that item.
type MeterView struct {
	Item    int
	X, Y    float32
	Width   float32
	Level   float32
	Value   float32
	Counter int
}

// SectionView is one page section in screen coordinates.
type SectionView struct {
	Name     string
	Bounds   rl.Rectangle
	Visible  bool
	Elements []ElementView
	Meters   []MeterView
}

// Font sizes before scale.
const (
	titleFontSize     = 36
	itemFontSize      = 20
	heroTitleFontSize = 56
	heroLineFontSize  = 24
)

const meterHeight = 8

// SectionRenderer draws page sections.
type SectionRenderer struct {
	accent rl.Color
	text   rl.Color
	panel  rl.Color
}

// NewSectionRenderer creates a section renderer using accent for titles.
func NewSectionRenderer(accent [3]uint8) *SectionRenderer {
	return &SectionRenderer{
		accent: rl.Color{R: accent[0], G: accent[1], B: accent[2], A: 255},
		text:   rl.Color{R: 220, G: 220, B: 230, A: 255},
		panel:  rl.Color{R: 24, G: 24, B: 36, A: 255},
	}
}

// Draw renders each visible section.
func (r *SectionRenderer) Draw(sections []SectionView) {
	for i := range sections {
		s := &sections[i]
		if !s.Visible {
			continue
		}
		rl.DrawRectangleRec(s.Bounds, rl.Fade(r.panel, 0.6))
		for _, e := range s.Elements {
			r.drawElement(e)
		}
		for _, m := range s.Meters {
			r.drawMeter(m, itemOpacity(s.Elements, m.Item))
		}
	}
}

// DrawHero renders the hero copy centered on each line's X.
func (r *SectionRenderer) DrawHero(lines []ElementView) {
	for _, e := range lines {
		if e.Opacity <= 0 {
			continue
		}
		size := float32(heroLineFontSize)
		col := r.text
		if e.Title {
			size = heroTitleFontSize
			col = r.accent
		}
		if e.Scale > 0 {
			size *= e.Scale
		}
		fontSize := int32(size)
		w := rl.MeasureText(e.Text, fontSize)
		x := e.X + e.OffsetX - float32(w)/2
		rl.DrawText(e.Text, int32(x), int32(e.Y+e.OffsetY), fontSize, rl.Fade(col, e.Opacity))
	}
}

func (r *SectionRenderer) drawMeter(m MeterView, opacity float32) {
	if opacity <= 0 || m.Width <= 0 {
		return
	}
	y := m.Y + itemFontSize/2 - meterHeight/2
	track := rl.Rectangle{X: m.X, Y: y, Width: m.Width, Height: meterHeight}
	rl.DrawRectangleRec(track, rl.Fade(r.panel, opacity))
	fill := track
	fill.Width = m.Width * m.Value * m.Level / 100
	rl.DrawRectangleRec(fill, rl.Fade(r.accent, opacity))
	label := fmt.Sprintf("%d%%", m.Counter)
	rl.DrawText(label, int32(m.X+m.Width)-rl.MeasureText(label, itemFontSize), int32(y)-itemFontSize-2, itemFontSize, rl.Fade(r.text, opacity))
}

// itemOpacity returns the opacity of the element at index, or 1 when the
// section has no such element.
func itemOpacity(elements []ElementView, index int) float32 {
	for _, e := range elements {
		if e.Index == index {
			return e.Opacity
		}
	}
	return 1
}

func (r *SectionRenderer) drawElement(e ElementView) {
	if e.Opacity <= 0 {
		return
	}
	size := float32(itemFontSize)
	col := r.text
	if e.Title {
		size = titleFontSize
		col = r.accent
	}
	scale := e.Scale
	if scale <= 0 {
		scale = 1
	}
	fontSize := int32(size * scale)
	if fontSize < 1 {
		return
	}

	x := e.X + e.OffsetX
	y := e.Y + e.OffsetY
	if !e.Title {
		rl.DrawCircle(int32(x-14), int32(y+float32(fontSize)/2), 3*scale, rl.Fade(r.accent, e.Opacity))
	}
	rl.DrawText(e.Text, int32(x), int32(y), fontSize, rl.Fade(col, e.Opacity))
}

// Package ui draws the debug HUD and panels over the page. Panels are
// stateless renderers over plain data structs filled by the scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Place returns the top-left corner for a width x height panel anchored
// inside a screenW x screenH screen with the given margin.
func (a PanelAnchor) Place(width, height, screenW, screenH, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - width - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - height - margin
	case AnchorBottomRight:
		return screenW - width - margin, screenH - height - margin
	}
	return margin, margin
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	PhaseUnseen    rl.Color
	PhaseRevealing rl.Color
	PhaseRevealed  rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 230},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		PhaseUnseen:    rl.Color{R: 80, G: 80, B: 80, A: 255},
		PhaseRevealing: rl.Color{R: 200, G: 180, B: 100, A: 255},
		PhaseRevealed:  rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

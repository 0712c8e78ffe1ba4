package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/folio/motion"
	"github.com/pthm-cable/folio/telemetry"
)

// SectionStatus is one section's reveal state for display.
type SectionStatus struct {
	Name     string
	Phase    motion.Phase
	Fired    int
	Progress float32
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title           string
	FPS             int32
	Mobile          bool
	Width, Height   int
	Particles       int
	PointSize       float32
	ScrollProgress  float32
	ReducedMotion   bool
	SimulatedMobile bool
	PendingBatches  int
	Sections        []SectionStatus
}

// HUDActions reports which HUD buttons were clicked this frame.
type HUDActions struct {
	ToggleReducedMotion bool
	ToggleMobile        bool
	ScrollTop           bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), anchor: AnchorTopLeft, width: 280}
}

// Height returns the panel height for data.
func (h *HUD) Height(data HUDData) int32 {
	t := h.renderer.Theme
	lines := int32(6 + len(data.Sections))
	return t.Padding*3 + lines*t.LineHeight + 24 + 28
}

// Draw renders the HUD and its buttons.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) HUDActions {
	r := h.renderer
	t := r.Theme
	height := h.Height(data)
	x, y := h.anchor.Place(h.width, height, screenW, screenH, 10)
	r.DrawPanel(x, y, h.width, height)

	inner := h.width - t.Padding*2
	cx := x + t.Padding
	cy := y + t.Padding

	rl.DrawText(data.Title, cx, cy, 18, rl.White)
	cy += 24

	device := "desktop"
	if data.Mobile {
		device = "mobile"
	}
	if data.SimulatedMobile {
		device += " (simulated)"
	}
	cy = r.DrawLabelValue(cx, cy, "FPS", fmt.Sprintf("%d", data.FPS))
	cy = r.DrawLabelValue(cx, cy, "Device", fmt.Sprintf("%s %dx%d", device, data.Width, data.Height))
	cy = r.DrawLabelValue(cx, cy, "Particles", fmt.Sprintf("%d @ %.1fpx", data.Particles, data.PointSize))
	cy = r.DrawLabelValue(cx, cy, "Animating", fmt.Sprintf("%d", data.PendingBatches))
	cy = r.DrawBar(cx, cy, "Scroll", data.ScrollProgress, inner)

	cy = r.DrawSectionHeader(cx, cy+2, "Sections")
	for _, s := range data.Sections {
		cy = r.DrawPhase(cx, cy, s, inner)
	}

	var act HUDActions
	bw := (float32(inner) - 8) / 3
	by := float32(cy + 4)
	motionLabel := "Motion: full"
	if data.ReducedMotion {
		motionLabel = "Motion: reduced"
	}
	act.ToggleReducedMotion = gui.Button(rl.Rectangle{X: float32(cx), Y: by, Width: bw, Height: 22}, motionLabel)
	act.ToggleMobile = gui.Button(rl.Rectangle{X: float32(cx) + bw + 4, Y: by, Width: bw, Height: 22}, "Mobile")
	act.ScrollTop = gui.Button(rl.Rectangle{X: float32(cx) + 2*(bw+4), Y: by, Width: bw, Height: 22}, "Top")
	return act
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	anchor   PanelAnchor
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), anchor: AnchorTopRight, width: 260}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string, screenW, screenH int32) {
	r := p.renderer
	t := r.Theme
	height := t.Padding*2 + 40 + int32(len(phases))*14
	x, y := p.anchor.Place(p.width, height, screenW, screenH, 10)
	r.DrawPanel(x, y, p.width, height)

	x += t.Padding
	y += t.Padding
	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("avg %s  max %s  %.0f fps",
		stats.AvgFrameDuration.Round(time.Microsecond),
		stats.MaxFrameDuration.Round(time.Microsecond),
		stats.FPS,
	), x, y, 12, rl.Yellow)
	y += 18

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

package scene

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/folio/renderer"
	"github.com/pthm-cable/folio/telemetry"
	"github.com/pthm-cable/folio/ui"
)

// Horizontal inset of element text inside a section.
const contentInset = 48

// Fraction of the section width where meter bars start.
const meterColumn = 0.45

var hudPhases = []string{
	telemetry.PhaseDevice, telemetry.PhaseRotation, telemetry.PhaseAnimation,
	telemetry.PhaseVisibility, telemetry.PhaseRender, telemetry.PhaseTelemetry,
}

// initRendering creates the renderers. A particle renderer that cannot
// allocate its target is replaced by the static gradient hero.
func (s *Scene) initRendering(width, height int32, seed int64) {
	cfg := s.cfg
	heroH := int32(cfg.Derived.HeroHeight)

	pr := renderer.NewParticleRenderer(width, heroH, cfg.Particles.Color, float32(cfg.Particles.Shimmer), seed)
	if err := pr.Init(); err != nil {
		slog.Warn("particle renderer unavailable, using static hero", "error", err)
		s.background = renderer.NewGradientBackground(width, heroH, cfg.Particles.Color)
	} else {
		s.particleRenderer = pr
	}

	s.sectionRenderer = renderer.NewSectionRenderer(cfg.Particles.Color)
	s.overlays = ui.NewOverlayRegistry()
	s.hud = ui.NewHUD()
	s.perfPanel = ui.NewPerfPanel()
	s.controls = ui.NewControlsPanel(ui.DefaultKeyBindings())
}

func (s *Scene) resizeRendering(width, height int) {
	heroH := s.cfg.Derived.HeroHeight
	if s.particleRenderer != nil {
		if err := s.particleRenderer.Resize(int32(width), int32(heroH)); err != nil {
			slog.Warn("particle renderer lost on resize, using static hero", "error", err)
			s.particleRenderer = nil
			s.background = renderer.NewGradientBackground(int32(width), int32(heroH), s.cfg.Particles.Color)
		}
	}
	if s.background != nil {
		s.background.Resize(float32(width), heroH)
	}
}

func (s *Scene) unloadRendering() {
	if s.particleRenderer != nil {
		s.particleRenderer.Unload()
		s.particleRenderer = nil
	}
	s.background = nil
}

// Draw renders the page.
func (s *Scene) Draw() {
	if s.unloaded || s.headless {
		return
	}
	s.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	heroTop := -s.view.ScrollY
	heroH := s.cfg.Derived.HeroHeight
	renderer.DrawPage(heroTop+heroH, s.view.Width, s.view.Height)

	if s.particleRenderer != nil {
		q := s.field.Quality()
		s.particleRenderer.Draw(s.field.Buffer(), s.field.Rotation(), s.field.Radius(), q.PointSize, heroTop, s.lastDT)
	} else if s.background != nil {
		s.background.Draw(heroTop)
	}

	s.sectionRenderer.DrawHero(s.heroViews())
	views := s.sectionViews()
	s.sectionRenderer.Draw(views)
	s.drawOverlays(views)
	rl.EndDrawing()

	s.perf.EndFrame()
	s.perf.RecordPresent()
}

// sectionViews resolves section, element and meter entities to screen
// space. Sections entirely off screen are marked hidden.
func (s *Scene) sectionViews() []renderer.SectionView {
	views := make([]renderer.SectionView, len(s.cfg.Page.Sections))
	query := s.sectionFilter.Query()
	for query.Next() {
		sec, _, _ := query.Get()
		rect := s.sectionRect(query.Entity())()
		x, y := s.view.PageToScreen(rect.X, rect.Y)
		views[sec.Index] = renderer.SectionView{
			Name:    sec.Name,
			Bounds:  rl.Rectangle{X: x, Y: y, Width: rect.W, Height: rect.H},
			Visible: s.view.IsVisible(rect),
		}
	}

	eq := s.elementFilter.Query()
	for eq.Next() {
		el, st := eq.Get()
		if !s.world.Alive(el.Section) {
			continue
		}
		sec := s.sectionInfo.Get(el.Section)
		v := &views[sec.Index]
		v.Elements = append(v.Elements, renderer.ElementView{
			Index:   el.Index,
			Text:    el.Text,
			Title:   el.Kind == KindTitle,
			X:       v.Bounds.X + contentInset,
			Y:       v.Bounds.Y + el.OffsetY,
			Opacity: st.Opacity,
			OffsetX: st.X,
			OffsetY: st.Y,
			Scale:   st.Scale,
		})
	}

	mq := s.meterFilter.Query()
	for mq.Next() {
		m := mq.Get()
		if !s.world.Alive(m.Section) {
			continue
		}
		sec := s.sectionInfo.Get(m.Section)
		v := &views[sec.Index]
		v.Meters = append(v.Meters, renderer.MeterView{
			Item:    m.Index + 1,
			X:       v.Bounds.X + v.Bounds.Width*meterColumn,
			Y:       v.Bounds.Y + itemsOffset + float32(m.Index)*itemSpacing,
			Width:   v.Bounds.Width*(1-meterColumn) - contentInset,
			Level:   m.Level,
			Value:   m.Value,
			Counter: m.Counter(),
		})
	}
	return views
}

// heroViews resolves the hero copy to screen space, centered on the hero.
func (s *Scene) heroViews() []renderer.ElementView {
	_, centerY := s.view.PageToScreen(0, s.cfg.Derived.HeroHeight/2)
	var out []renderer.ElementView
	query := s.heroFilter.Query()
	for query.Next() {
		h, st := query.Get()
		out = append(out, renderer.ElementView{
			Index:   h.Index,
			Text:    h.Text,
			Title:   h.Title,
			X:       s.view.Width / 2,
			Y:       centerY + h.OffsetY,
			Opacity: st.Opacity,
			OffsetX: st.X,
			OffsetY: st.Y,
			Scale:   st.Scale,
		})
	}
	return out
}

func (s *Scene) drawOverlays(views []renderer.SectionView) {
	screenW, screenH := int32(s.view.Width), int32(s.view.Height)

	if s.overlays.IsEnabled(ui.OverlayBounds) {
		for i, v := range views {
			rl.DrawRectangleLinesEx(v.Bounds, 1, rl.SkyBlue)
			th := float32(s.cfg.SectionThreshold(i))
			y := v.Bounds.Y + v.Bounds.Height*th
			rl.DrawLineV(rl.Vector2{X: v.Bounds.X, Y: y}, rl.Vector2{X: v.Bounds.X + v.Bounds.Width, Y: y}, rl.Fade(rl.SkyBlue, 0.5))
			rl.DrawText(fmt.Sprintf("%s %.0f%%", v.Name, th*100), int32(v.Bounds.X)+4, int32(v.Bounds.Y)+4, 12, rl.SkyBlue)
		}
	}

	if s.overlays.IsEnabled(ui.OverlayHUD) {
		act := s.hud.Draw(s.hudData(), screenW, screenH)
		if act.ToggleReducedMotion {
			s.SetReducedMotion(!s.ReducedMotion())
		}
		if act.ToggleMobile {
			s.SimulateMobile(!s.simMobile)
		}
		if act.ScrollTop {
			s.view.Reset()
		}
	}
	if s.overlays.IsEnabled(ui.OverlayPerf) {
		s.perfPanel.Draw(s.perf.Stats(), hudPhases, screenW, screenH)
	}
	if s.overlays.IsEnabled(ui.OverlayControls) {
		s.controls.Draw(s.overlays, screenW, screenH)
	} else {
		s.hud.DrawControls(screenH, "[Tab] controls  [H] HUD  [P] timing  [B] bounds")
	}
}

func (s *Scene) hudData() ui.HUDData {
	p := s.watcher.Profile()
	q := s.field.Quality()
	states := s.Sections()
	sections := make([]ui.SectionStatus, len(states))
	for i, st := range states {
		sections[i] = ui.SectionStatus{Name: st.Name, Phase: st.Phase, Fired: st.Fired, Progress: st.Progress}
	}
	return ui.HUDData{
		Title:           s.cfg.Screen.Title,
		FPS:             rl.GetFPS(),
		Mobile:          p.IsMobile,
		Width:           p.Width,
		Height:          p.Height,
		Particles:       s.field.Buffer().Len(),
		PointSize:       q.PointSize,
		ScrollProgress:  s.view.Progress(),
		ReducedMotion:   s.ReducedMotion(),
		SimulatedMobile: s.simMobile,
		PendingBatches:  s.scheduler.Pending(),
		Sections:        sections,
	}
}

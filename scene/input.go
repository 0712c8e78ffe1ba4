package scene

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pixels scrolled per mouse wheel notch.
const wheelStep = 80

func (s *Scene) handleInput(dt float32) {
	if rl.IsWindowResized() {
		s.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	speed := float32(s.cfg.Reveal.ScrollSpeed)
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyJ) {
		s.view.ScrollBy(speed * dt)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyK) {
		s.view.ScrollBy(-speed * dt)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.view.ScrollBy(-wheel * wheelStep)
	}
	if rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeySpace) {
		s.view.ScrollBy(s.view.Height * 0.9)
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		s.view.ScrollBy(-s.view.Height * 0.9)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		s.view.Reset()
	}
	if rl.IsKeyPressed(rl.KeyEnd) {
		s.view.ScrollTo(s.view.MaxScroll())
	}

	if rl.IsKeyPressed(rl.KeyR) {
		s.SetReducedMotion(!s.ReducedMotion())
	}
	if rl.IsKeyPressed(rl.KeyM) {
		s.SimulateMobile(!s.simMobile)
	}
	if rl.IsKeyPressed(rl.KeyS) {
		s.saveManualSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := s.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", string(id), "enabled", on)
		}
	}
}

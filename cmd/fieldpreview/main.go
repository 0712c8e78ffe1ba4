// Particle field preview tool - interactive hero tuning with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/folio/device"
	"github.com/pthm-cable/folio/particles"
	"github.com/pthm-cable/folio/renderer"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 20
)

// FieldParams holds the tunable hero parameters.
type FieldParams struct {
	Count     int
	Radius    float32
	PointSize float32
	Shimmer   float32
	XDivisor  float32
	YDivisor  float32
	Mobile    bool
	Freeze    bool
	Seed      int64
}

func defaultParams() FieldParams {
	return FieldParams{
		Count:     5000,
		Radius:    1.5,
		PointSize: 1.6,
		Shimmer:   0.35,
		XDivisor:  10,
		YDivisor:  15,
		Seed:      42,
	}
}

func buildField(p FieldParams) *particles.Field {
	policy := particles.MobileSlow
	if p.Freeze {
		policy = particles.MobileFreeze
	}
	q := particles.Quality{Count: p.Count, PointSize: p.PointSize}
	return particles.NewField(particles.FieldOptions{
		Radius:  p.Radius,
		Desktop: q,
		Mobile:  q,
		Rotator: particles.Rotator{
			XDivisor:    p.XDivisor,
			YDivisor:    p.YDivisor,
			MobileSpeed: 0.3,
			Policy:      policy,
		},
	}, device.Profile{IsMobile: p.Mobile, Width: previewSize, Height: previewSize}, rand.New(rand.NewSource(p.Seed)))
}

// slider draws a labelled slider and returns the new value.
func slider(x float32, y *float32, label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, lo), fmt.Sprintf(format, hi),
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return next
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Particle Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	field := buildField(params)
	r := renderer.NewParticleRenderer(previewSize, previewSize, [3]uint8{244, 114, 182}, params.Shimmer, params.Seed)
	if err := r.Init(); err != nil {
		fmt.Println(err)
		return
	}
	defer r.Unload()

	for !rl.WindowShouldClose() {
		dt := rl.GetFrameTime()
		field.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// The renderer composites at x = 0
		rl.DrawRectangle(0, 10, previewSize, previewSize, rl.Color{R: 10, G: 10, B: 16, A: 255})
		r.Draw(field.Buffer(), field.Rotation(), params.Radius, params.PointSize, 10, dt)
		rl.DrawRectangleLines(0, 10, previewSize, previewSize, rl.DarkGray)

		rot := field.Rotation()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Points: %d  Rotation: (%.2f, %.2f)  FPS: %d",
			field.Buffer().Len(), rot.X, rot.Y, rl.GetFPS()), 15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 10)
		panelY := float32(10)
		rl.DrawText("Hero Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rebuild := false
		if n := int(slider(panelX, &panelY, "Count", "%.0f", float32(params.Count), 500, 12000)); n != params.Count {
			params.Count = n
			rebuild = true
		}
		if v := slider(panelX, &panelY, "Radius", "%.2f", params.Radius, 0.5, 2.5); v != params.Radius {
			params.Radius = v
			rebuild = true
		}
		params.PointSize = slider(panelX, &panelY, "Point size (px)", "%.1f", params.PointSize, 0.5, 4)
		if v := slider(panelX, &panelY, "Shimmer", "%.2f", params.Shimmer, 0, 1); v != params.Shimmer {
			params.Shimmer = v
			r.Unload()
			r = renderer.NewParticleRenderer(previewSize, previewSize, [3]uint8{244, 114, 182}, params.Shimmer, params.Seed)
			if err := r.Init(); err != nil {
				fmt.Println(err)
				return
			}
		}
		if v := slider(panelX, &panelY, "X divisor (s per radian)", "%.1f", params.XDivisor, 2, 40); v != params.XDivisor {
			params.XDivisor = v
			rebuild = true
		}
		if v := slider(panelX, &panelY, "Y divisor (s per radian)", "%.1f", params.YDivisor, 2, 40); v != params.YDivisor {
			params.YDivisor = v
			rebuild = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Mobile, "Mobile", "Desktop")) {
			params.Mobile = !params.Mobile
			rebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(params.Freeze, "Policy: freeze", "Policy: slow")) {
			params.Freeze = !params.Freeze
			rebuild = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			rebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			rebuild = true
		}
		panelY += 55

		if rebuild {
			field = buildField(params)
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := configYAML(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func configYAML(p FieldParams) string {
	policy := "slow"
	if p.Freeze {
		policy = "freeze"
	}
	return fmt.Sprintf(`particles:
  radius: %.2f
  desktop:
    count: %d
    point_size: %.1f
  shimmer: %.2f
rotation:
  x_divisor: %.1f
  y_divisor: %.1f
  mobile_policy: %s`,
		p.Radius, p.Count, p.PointSize, p.Shimmer, p.XDivisor, p.YDivisor, policy)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

package renderer

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestProjectionCentersOrigin(t *testing.T) {
	p := NewProjection(800, 600)
	sp, ok := p.Project(rl.Vector3{})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}
	if sp.X != 400 || sp.Y != 300 {
		t.Errorf("origin projected to %v, want (400, 300)", sp)
	}
}

func TestProjectionPerspective(t *testing.T) {
	p := NewProjection(800, 600)

	near, _ := p.Project(rl.Vector3{X: 1, Z: 1})
	far, _ := p.Project(rl.Vector3{X: 1, Z: -1})
	if near.X-400 <= far.X-400 {
		t.Errorf("nearer point should project further from center: near %v far %v", near.X, far.X)
	}

	// +Y is up on screen
	up, _ := p.Project(rl.Vector3{Y: 1})
	if up.Y >= 300 {
		t.Errorf("positive y projected below center: %v", up.Y)
	}

	if _, ok := p.Project(rl.Vector3{Z: cameraDistance}); ok {
		t.Error("point at the camera plane should be rejected")
	}
}

func TestProjectionFitsSphere(t *testing.T) {
	p := NewProjection(1280, 720)
	// A radius 1.5 sphere fits vertically in the frame
	top, _ := p.Project(rl.Vector3{Y: 1.5})
	bottom, _ := p.Project(rl.Vector3{Y: -1.5})
	if top.Y < 0 || bottom.Y > 720 {
		t.Errorf("sphere exceeds frame: top %v bottom %v", top.Y, bottom.Y)
	}
}

func TestBrightnessRange(t *testing.T) {
	r := NewParticleRenderer(64, 64, [3]uint8{255, 255, 255}, 0.35, 7)
	for i := 0; i < 200; i++ {
		f := float32(i)
		b := r.Brightness(rl.Vector3{X: f * 0.03, Y: f * 0.01, Z: -f * 0.02}, f*0.1)
		if b < 1-0.35-1e-5 || b > 1+1e-5 {
			t.Fatalf("brightness %v outside [0.65, 1]", b)
		}
	}

	flat := NewParticleRenderer(64, 64, [3]uint8{}, 0, 7)
	if flat.Brightness(rl.Vector3{X: 0.3}, 2) != 1 {
		t.Error("zero shimmer should not modulate brightness")
	}
}

func TestInitWithoutWindow(t *testing.T) {
	r := NewParticleRenderer(64, 64, [3]uint8{}, 0, 1)
	if err := r.Init(); !errors.Is(err, ErrRenderingUnavailable) {
		t.Errorf("Init without a window = %v, want ErrRenderingUnavailable", err)
	}
	// Unload on an uninitialized renderer is a no-op
	r.Unload()
}

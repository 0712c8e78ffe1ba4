package renderer

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/folio/particles"
)

// ErrRenderingUnavailable is returned when no graphics context or render
// target can be created. Callers fall back to GradientBackground.
var ErrRenderingUnavailable = errors.New("rendering unavailable")

// Camera placement for the hero sphere, in sphere units.
const (
	cameraDistance = 4.0
	cameraFovY     = 45.0 // degrees
)

// Projection maps rotated sphere points to pixels in a w x h target.
type Projection struct {
	Width, Height float32
	Distance      float32
	focal         float32
}

// NewProjection builds a perspective projection looking down -Z at the origin.
func NewProjection(width, height float32) Projection {
	half := float64(cameraFovY) * math.Pi / 360
	return Projection{
		Width:    width,
		Height:   height,
		Distance: cameraDistance,
		focal:    float32(float64(height) / 2 / math.Tan(half)),
	}
}

// Project returns the screen position of p and false if p is behind the camera.
func (pr Projection) Project(p rl.Vector3) (rl.Vector2, bool) {
	depth := pr.Distance - p.Z
	if depth <= 0.01 {
		return rl.Vector2{}, false
	}
	s := pr.focal / depth
	return rl.Vector2{
		X: pr.Width/2 + p.X*s,
		Y: pr.Height/2 - p.Y*s,
	}, true
}

// ParticleRenderer draws the rotating point sphere into an offscreen target
// sized to the hero section, then composites it at the hero's scroll offset.
type ParticleRenderer struct {
	target rl.RenderTexture2D
	noise  opensimplex.Noise32
	proj   Projection

	color   rl.Color
	shimmer float32
	time    float32

	width, height int32
	initialized   bool
}

// NewParticleRenderer creates a renderer for a width x height hero.
func NewParticleRenderer(width, height int32, color [3]uint8, shimmer float32, seed int64) *ParticleRenderer {
	return &ParticleRenderer{
		noise:   opensimplex.NewNormalized32(seed),
		proj:    NewProjection(float32(width), float32(height)),
		color:   rl.Color{R: color[0], G: color[1], B: color[2], A: 255},
		shimmer: shimmer,
		width:   width,
		height:  height,
	}
}

// Init allocates the render target (must be called after the raylib window is created).
func (r *ParticleRenderer) Init() error {
	if r.initialized {
		return nil
	}
	if !rl.IsWindowReady() {
		return fmt.Errorf("%w: no window", ErrRenderingUnavailable)
	}
	r.target = rl.LoadRenderTexture(r.width, r.height)
	if r.target.ID == 0 {
		return fmt.Errorf("%w: render target %dx%d", ErrRenderingUnavailable, r.width, r.height)
	}
	r.initialized = true
	return nil
}

// Resize recreates the render target for a new hero size.
func (r *ParticleRenderer) Resize(width, height int32) error {
	if width == r.width && height == r.height {
		return nil
	}
	r.Unload()
	r.width, r.height = width, height
	r.proj = NewProjection(float32(width), float32(height))
	return r.Init()
}

// Brightness returns the shimmer multiplier for a point at time t, in
// [1-shimmer, 1].
func (r *ParticleRenderer) Brightness(p rl.Vector3, t float32) float32 {
	if r.shimmer <= 0 {
		return 1
	}
	n := r.noise.Eval3(p.X*1.7, p.Y*1.7, p.Z*1.7+t*0.4)
	return 1 - r.shimmer*n
}

// Draw renders buf under rot with the given point size and composites the
// result at screen y = top.
func (r *ParticleRenderer) Draw(buf particles.Buffer, rot particles.RotationState, radius, pointSize, top, dt float32) {
	if !r.initialized {
		return
	}
	r.time += dt
	m := rot.Matrix()

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < buf.Len(); i++ {
		p := rl.Vector3Transform(buf.Point(i), m)
		sp, ok := r.proj.Project(p)
		if !ok {
			continue
		}
		// Far side of the sphere is dimmer
		depth := (p.Z + radius) / (2 * radius)
		alpha := (0.35 + 0.65*depth) * r.Brightness(p, r.time)
		rl.DrawCircleV(sp, pointSize, rl.Fade(r.color, alpha))
	}
	rl.EndBlendMode()
	rl.EndTextureMode()

	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: -float32(r.height)}
	dst := rl.Rectangle{X: 0, Y: top, Width: float32(r.width), Height: float32(r.height)}
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (r *ParticleRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.target)
		r.initialized = false
	}
}

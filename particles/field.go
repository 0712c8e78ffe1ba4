package particles

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/folio/device"
)

// Quality is the particle budget for one device class.
type Quality struct {
	Count     int
	PointSize float32
}

// FieldOptions configures a Field.
type FieldOptions struct {
	Radius  float32
	Desktop Quality
	Mobile  Quality
	Rotator Rotator
}

// Field is the hero visual's state: an immutable point buffer plus the
// rotation applied to it. The buffer is replaced, never edited, when the
// device profile changes the particle budget.
type Field struct {
	opts     FieldOptions
	rng      *rand.Rand
	profile  device.Profile
	buffer   Buffer
	rotation RotationState
	gen      int // Bumped on every regeneration
}

// NewField generates the initial buffer for the given profile.
func NewField(opts FieldOptions, profile device.Profile, rng *rand.Rand) *Field {
	f := &Field{opts: opts, rng: rng, profile: profile}
	f.regenerate()
	return f
}

// Quality returns the active particle budget.
func (f *Field) Quality() Quality {
	if f.profile.IsMobile {
		return f.opts.Mobile
	}
	return f.opts.Desktop
}

// SetProfile applies a new device profile, regenerating the buffer only
// when the particle count changes.
func (f *Field) SetProfile(p device.Profile) {
	before := f.Quality().Count
	f.profile = p
	if f.Quality().Count != before {
		f.regenerate()
	}
}

// Update advances rotation by dt seconds.
func (f *Field) Update(dt float32) {
	f.opts.Rotator.Tick(&f.rotation, dt, f.profile)
}

// Buffer returns the current point buffer.
func (f *Field) Buffer() Buffer {
	return f.buffer
}

// Rotation returns the current rotation.
func (f *Field) Rotation() RotationState {
	return f.rotation
}

// Profile returns the profile the field was last configured for.
func (f *Field) Profile() device.Profile {
	return f.profile
}

// Radius returns the sphere radius.
func (f *Field) Radius() float32 {
	return f.opts.Radius
}

// Generation counts buffer regenerations; renderers use it to detect a
// replaced buffer.
func (f *Field) Generation() int {
	return f.gen
}

func (f *Field) regenerate() {
	q := f.Quality()
	f.buffer = Generate(q.Count, f.opts.Radius, f.rng)
	f.gen++
	slog.Info("particle field generated",
		"count", q.Count,
		"radius", f.opts.Radius,
		"mobile", f.profile.IsMobile,
		"generation", f.gen,
	)
}

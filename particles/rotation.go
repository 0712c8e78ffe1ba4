package particles

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/folio/device"
)

// MobilePolicy selects how rotation behaves on mobile profiles.
type MobilePolicy uint8

const (
	MobileSlow   MobilePolicy = iota // Rotate at MobileSpeed
	MobileFreeze                     // Do not rotate at all
)

// ParseMobilePolicy maps a config string to a policy. Unknown values slow.
func ParseMobilePolicy(s string) MobilePolicy {
	if s == "freeze" {
		return MobileFreeze
	}
	return MobileSlow
}

// RotationState holds the angular offsets of the field in radians.
// It is owned by the frame loop.
type RotationState struct {
	X, Y float32
}

// Matrix returns the transform to apply to buffer points when drawing.
func (s RotationState) Matrix() rl.Matrix {
	return rl.MatrixRotateXYZ(rl.Vector3{X: s.X, Y: s.Y, Z: 0})
}

// Rotator advances a RotationState from elapsed time.
type Rotator struct {
	XDivisor    float32
	YDivisor    float32
	MobileSpeed float32
	Policy      MobilePolicy
}

// DefaultRotator returns the standard hero rotation.
func DefaultRotator() Rotator {
	return Rotator{XDivisor: 10, YDivisor: 15, MobileSpeed: 0.3, Policy: MobileSlow}
}

// Speed returns the rotation multiplier for a profile.
func (r Rotator) Speed(p device.Profile) float32 {
	if !p.IsMobile {
		return 1
	}
	if r.Policy == MobileFreeze {
		return 0
	}
	return r.MobileSpeed
}

// Tick advances s by dt seconds. Only elapsed time is used, so dropped
// frames do not change the cumulative rotation.
func (r Rotator) Tick(s *RotationState, dt float32, p device.Profile) {
	if dt <= 0 {
		return
	}
	speed := r.Speed(p)
	if speed == 0 {
		return
	}
	s.X -= dt / r.XDivisor * speed
	s.Y -= dt / r.YDivisor * speed
}

// Package particles generates the hero particle field: points sampled
// uniformly on a sphere's surface, plus the per-frame rotation applied to
// them at draw time.
package particles

import (
	"fmt"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Buffer is a flat x,y,z sequence, len = 3 * point count.
// It is never modified after Generate returns it.
type Buffer []float32

// Len returns the number of points.
func (b Buffer) Len() int {
	return len(b) / 3
}

// Point returns the i-th point.
func (b Buffer) Point(i int) rl.Vector3 {
	return rl.Vector3{X: b[3*i], Y: b[3*i+1], Z: b[3*i+2]}
}

// Generate samples count points uniformly on the surface of a sphere of the
// given radius. theta is uniform in [0, 2π) and phi = acos(2u-1), which
// avoids the pole clustering of sampling phi uniformly.
//
// A negative count or non-positive radius is a programming error and panics.
func Generate(count int, radius float32, rng *rand.Rand) Buffer {
	if count < 0 {
		panic(fmt.Sprintf("particles: negative count %d", count))
	}
	if radius <= 0 || math.IsNaN(float64(radius)) {
		panic(fmt.Sprintf("particles: non-positive radius %v", radius))
	}

	buf := make(Buffer, 3*count)
	r := float64(radius)
	for i := 0; i < count; i++ {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		sinPhi := math.Sin(phi)
		buf[3*i] = float32(r * sinPhi * math.Cos(theta))
		buf[3*i+1] = float32(r * sinPhi * math.Sin(theta))
		buf[3*i+2] = float32(r * math.Cos(phi))
	}
	return buf
}

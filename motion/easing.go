// Package motion drives time-based style interpolations: named variants,
// easing curves, staggered reveal batches and the reduced-motion policy.
package motion

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/gen2brain/raylib-go/easings"
)

// ErrUnknownEasing is returned by ParseEasing for unrecognized names.
var ErrUnknownEasing = errors.New("unknown easing")

// Easing maps linear progress in [0, 1] to eased progress. Curves start at
// 0 and end at 1; some (back, elastic, spring) overshoot in between.
type Easing func(t float32) float32

// Linear is the identity curve.
func Linear(t float32) float32 { return t }

// fromRaylib adapts a raylib (t, begin, change, duration) easing.
func fromRaylib(f func(t, b, c, d float32) float32) Easing {
	return func(t float32) float32 {
		return f(clamp01(t), 0, 1, 1)
	}
}

var namedEasings = map[string]Easing{
	"linear": Linear,
	"none":   Linear,

	// CSS keyword curves
	"ease":      CubicBezier(0.25, 0.1, 0.25, 1),
	"easeIn":    CubicBezier(0.42, 0, 1, 1),
	"easeOut":   CubicBezier(0, 0, 0.58, 1),
	"easeInOut": CubicBezier(0.42, 0, 0.58, 1),

	// Timeline-style power curves
	"power1.in":    fromRaylib(easings.QuadIn),
	"power1.out":   fromRaylib(easings.QuadOut),
	"power1.inOut": fromRaylib(easings.QuadInOut),
	"power2.in":    fromRaylib(easings.CubicIn),
	"power2.out":   fromRaylib(easings.CubicOut),
	"power2.inOut": fromRaylib(easings.CubicInOut),
	"power3.out":   CubicBezier(0.165, 0.84, 0.44, 1),
	"power3.inOut": CubicBezier(0.77, 0, 0.175, 1),

	"sine.in":     fromRaylib(easings.SineIn),
	"sine.out":    fromRaylib(easings.SineOut),
	"sine.inOut":  fromRaylib(easings.SineInOut),
	"circ.out":    fromRaylib(easings.CircOut),
	"circOut":     fromRaylib(easings.CircOut),
	"expo.out":    fromRaylib(easings.ExpoOut),
	"back.out":    fromRaylib(easings.BackOut),
	"backOut":     fromRaylib(easings.BackOut),
	"bounce.out":  fromRaylib(easings.BounceOut),
	"elastic.out": fromRaylib(easings.ElasticOut),

	"spring": SpringEasing(8, 0.6),
}

// ParseEasing resolves a curve by name. Besides the named curves it accepts
// "cubic-bezier(x1, y1, x2, y2)". An empty name is linear.
func ParseEasing(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Linear, nil
	}
	if e, ok := namedEasings[name]; ok {
		return e, nil
	}
	if strings.HasPrefix(name, "cubic-bezier(") && strings.HasSuffix(name, ")") {
		args := strings.Split(name[len("cubic-bezier("):len(name)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("%w: %q needs 4 control values", ErrUnknownEasing, name)
		}
		var p [4]float32
		for i, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrUnknownEasing, name, err)
			}
			p[i] = float32(v)
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

// CubicBezier returns the CSS cubic-bezier curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0, 1] so x(s) is monotonic.
func CubicBezier(x1, y1, x2, y2 float32) Easing {
	ax1, ax2 := float64(clamp01(x1)), float64(clamp01(x2))
	ay1, ay2 := float64(y1), float64(y2)

	bez := func(s, p1, p2 float64) float64 {
		u := 1 - s
		return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
	}
	dbez := func(s, p1, p2 float64) float64 {
		u := 1 - s
		return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
	}

	return func(t float32) float32 {
		x := float64(clamp01(t))
		if x == 0 || x == 1 {
			return float32(x)
		}

		// Newton steps, falling back to bisection when the slope is flat
		s := x
		for i := 0; i < 8; i++ {
			d := dbez(s, ax1, ax2)
			if math.Abs(d) < 1e-6 {
				break
			}
			next := s - (bez(s, ax1, ax2)-x)/d
			if next < 0 || next > 1 {
				break
			}
			s = next
		}
		if math.Abs(bez(s, ax1, ax2)-x) > 1e-5 {
			lo, hi := 0.0, 1.0
			for i := 0; i < 40; i++ {
				s = (lo + hi) / 2
				if bez(s, ax1, ax2) < x {
					lo = s
				} else {
					hi = s
				}
			}
		}
		return float32(bez(s, ay1, ay2))
	}
}

// springSamples is the resolution of the precomputed spring curve.
const springSamples = 120

// SpringEasing returns a damped-spring curve from 0 to 1, simulated with
// harmonica and sampled into a lookup table. Progress 1 maps to one second
// of spring time, and the final sample is pinned to 1.
func SpringEasing(angularFrequency, dampingRatio float64) Easing {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), angularFrequency, dampingRatio)

	table := make([]float32, springSamples+1)
	var pos, vel float64
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		table[i] = float32(pos)
	}
	table[springSamples] = 1

	return func(t float32) float32 {
		t = clamp01(t)
		f := t * springSamples
		i := int(f)
		if i >= springSamples {
			return 1
		}
		frac := f - float32(i)
		return table[i]*(1-frac) + table[i+1]*frac
	}
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

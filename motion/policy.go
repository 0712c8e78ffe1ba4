package motion

// DefaultReducedDuration is the transition length used when reduced motion
// is requested and no duration is configured.
const DefaultReducedDuration = 0.2

// ReducedMotion is the fallback applied when the system asks for minimal
// animation: no stagger or delay, a short fixed duration, and only opacity
// and value change.
type ReducedMotion struct {
	Active   bool
	Duration float32
}

// Apply returns v adjusted for the policy. Inactive policies return v as is.
func (p ReducedMotion) Apply(v Variant) Variant {
	if !p.Active {
		return v
	}
	d := p.Duration
	if d <= 0 || d > 0.3 {
		d = DefaultReducedDuration
	}

	v.Transition.Stagger = 0
	v.Transition.Delay = 0
	v.Transition.Duration = d
	v.Transition.Ease = "linear"
	v.easing = Linear

	// Translation and scale have no delta; only opacity animates
	v.Hidden.X = v.Visible.X
	v.Hidden.Y = v.Visible.Y
	v.Hidden.Scale = v.Visible.Scale
	return v
}

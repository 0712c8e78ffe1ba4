package motion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pthm-cable/folio/config"
)

// ErrUnknownVariant is returned by Registry.Lookup for unregistered names.
var ErrUnknownVariant = errors.New("unknown variant")

// Properties is an animatable style snapshot.
type Properties struct {
	Opacity float32
	X, Y    float32 // Offset from layout position, pixels
	Scale   float32
	Value   float32 // Fill fraction for meters and counters, in [0, 1]
}

// Lerp interpolates a toward b. t may leave [0, 1] for overshooting
// curves; opacity and value are clamped, offsets and scale are not.
func Lerp(a, b Properties, t float32) Properties {
	return Properties{
		Opacity: clamp01(a.Opacity + (b.Opacity-a.Opacity)*t),
		X:       a.X + (b.X-a.X)*t,
		Y:       a.Y + (b.Y-a.Y)*t,
		Scale:   a.Scale + (b.Scale-a.Scale)*t,
		Value:   clamp01(a.Value + (b.Value-a.Value)*t),
	}
}

// Transition holds variant timing, in seconds.
type Transition struct {
	Duration float32
	Delay    float32
	Stagger  float32
	Ease     string
}

// Variant is a named hidden/visible pair with its transition.
type Variant struct {
	Name       string
	Hidden     Properties
	Visible    Properties
	Transition Transition

	easing Easing
}

// NewVariant resolves the transition's easing.
func NewVariant(name string, hidden, visible Properties, tr Transition) (Variant, error) {
	e, err := ParseEasing(tr.Ease)
	if err != nil {
		return Variant{}, fmt.Errorf("variant %q: %w", name, err)
	}
	return Variant{Name: name, Hidden: hidden, Visible: visible, Transition: tr, easing: e}, nil
}

// Easing returns the resolved curve (linear if unset).
func (v Variant) Easing() Easing {
	if v.easing == nil {
		return Linear
	}
	return v.easing
}

// Offsets returns the start offset of each of n elements relative to the
// trigger time: delay + i*stagger.
func (v Variant) Offsets(n int) []float32 {
	offsets := make([]float32, n)
	for i := range offsets {
		offsets[i] = v.Transition.Delay + float32(i)*v.Transition.Stagger
	}
	return offsets
}

// Registry looks variants up by name.
type Registry struct {
	variants map[string]Variant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// RegistryFromConfig builds a registry from the configured variants.
func RegistryFromConfig(vs map[string]config.VariantConfig) (*Registry, error) {
	r := NewRegistry()
	for name, vc := range vs {
		v, err := NewVariant(name, propsFromConfig(vc.Hidden), propsFromConfig(vc.Visible), Transition{
			Duration: float32(vc.Transition.Duration),
			Delay:    float32(vc.Transition.Delay),
			Stagger:  float32(vc.Transition.Stagger),
			Ease:     vc.Transition.Ease,
		})
		if err != nil {
			return nil, err
		}
		r.Register(v)
	}
	return r, nil
}

// Register adds or replaces a variant.
func (r *Registry) Register(v Variant) {
	r.variants[v.Name] = v
}

// Lookup returns the named variant.
func (r *Registry) Lookup(name string) (Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func propsFromConfig(p config.PropertiesConfig) Properties {
	scale := float32(p.Scale)
	if scale == 0 {
		scale = 1
	}
	return Properties{
		Opacity: float32(p.Opacity),
		X:       float32(p.X),
		Y:       float32(p.Y),
		Scale:   scale,
		Value:   float32(p.Value),
	}
}

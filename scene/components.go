package scene

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/folio/motion"
	"github.com/pthm-cable/folio/viewport"
)

// Section identifies a page section entity.
type Section struct {
	Index   int
	Name    string
	Title   string
	Variant string
}

// Bounds is a section's vertical extent in page coordinates.
type Bounds struct {
	Top    float32
	Height float32
}

// Reveal binds a section to its state machine and visibility subscription.
// Meters is nil for sections without levels.
type Reveal struct {
	Target *motion.RevealTarget
	Meters *motion.RevealTarget
	Sub    viewport.Subscription
}

// ElementKind distinguishes section titles from list items.
type ElementKind uint8

const (
	KindTitle ElementKind = iota
	KindItem
)

// Element is one animated piece of text inside a section.
type Element struct {
	Section ecs.Entity
	Index   int
	Kind    ElementKind
	Text    string
	OffsetY float32 // From the section top
}

// Style is the element's current animated style.
type Style struct {
	motion.Properties
}

// Meter is an item's percentage bar and counter. Value is the animated fill
// fraction; the counter reads Value * Level.
type Meter struct {
	Section ecs.Entity
	Index   int // Item index within the section
	Label   string
	Level   float32 // Percent at full fill
	Value   float32
}

// Counter returns the displayed percentage, rounded.
func (m Meter) Counter() int {
	return int(math.Round(float64(m.Value * m.Level)))
}

// HeroText is one line of the copy revealed over the particle field.
type HeroText struct {
	Index   int
	Text    string
	Title   bool
	OffsetY float32 // From the hero's vertical center
}

package motion

// Phase is a RevealTarget's position in the reveal state machine.
type Phase uint8

const (
	PhaseUnseen Phase = iota
	PhaseRevealing
	PhaseRevealed
)

func (p Phase) String() string {
	switch p {
	case PhaseUnseen:
		return "unseen"
	case PhaseRevealing:
		return "revealing"
	case PhaseRevealed:
		return "revealed"
	}
	return "unknown"
}

// RevealTarget binds a group of elements to a variant and runs
//
//	UNSEEN -(in view)-> REVEALING -(duration elapsed)-> REVEALED
//
// With TriggerOnce, REVEALED is terminal and the target fires at most once.
// Otherwise leaving the viewport reverts to hidden and returns to UNSEEN.
type RevealTarget struct {
	Threshold   float32
	TriggerOnce bool

	elements  []Target
	variant   Variant
	scheduler *Scheduler
	scope     *Scope

	phase     Phase
	fired     int
	batch     *Batch
	listeners []func(Phase)
}

// NewRevealTarget creates a target in the UNSEEN phase and applies the
// variant's hidden style to its elements.
func NewRevealTarget(s *Scheduler, scope *Scope, v Variant, threshold float32, triggerOnce bool, elements ...Target) *RevealTarget {
	r := &RevealTarget{
		Threshold:   threshold,
		TriggerOnce: triggerOnce,
		elements:    elements,
		variant:     v,
		scheduler:   s,
		scope:       scope,
	}
	hidden := s.ReducedMotion().Apply(v).Hidden
	for _, e := range elements {
		e.SetStyle(hidden)
	}
	return r
}

// Phase returns the current phase.
func (r *RevealTarget) Phase() Phase {
	return r.phase
}

// Fired returns how many reveals have started.
func (r *RevealTarget) Fired() int {
	return r.fired
}

// Batch returns the most recent reveal batch, or nil.
func (r *RevealTarget) Batch() *Batch {
	return r.batch
}

// OnPhase registers fn to run on every phase change.
func (r *RevealTarget) OnPhase(fn func(Phase)) {
	r.listeners = append(r.listeners, fn)
}

// SetInView feeds a visibility change into the state machine.
func (r *RevealTarget) SetInView(inView bool) {
	if inView {
		if r.phase != PhaseUnseen || (r.TriggerOnce && r.fired > 0) {
			return
		}
		if r.scope != nil && r.scope.Closed() {
			return
		}
		r.fired++
		r.setPhase(PhaseRevealing)
		b := r.scheduler.Reveal(r.scope, r.elements, r.variant)
		r.batch = b
		b.OnComplete(func() {
			// A newer batch may have replaced this one
			if r.batch == b {
				r.setPhase(PhaseRevealed)
			}
		})
		return
	}

	if r.TriggerOnce || r.phase == PhaseUnseen {
		return
	}
	if r.batch != nil && !r.batch.Done() {
		r.batch.Cancel()
	} else {
		hidden := r.scheduler.ReducedMotion().Apply(r.variant).Hidden
		for _, e := range r.elements {
			e.SetStyle(hidden)
		}
	}
	r.setPhase(PhaseUnseen)
}

func (r *RevealTarget) setPhase(p Phase) {
	if p == r.phase {
		return
	}
	r.phase = p
	for _, fn := range r.listeners {
		fn(p)
	}
}

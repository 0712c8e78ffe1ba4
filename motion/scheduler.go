package motion

// Target receives interpolated styles.
type Target interface {
	SetStyle(Properties)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(Properties)

// SetStyle implements Target.
func (f TargetFunc) SetStyle(p Properties) { f(p) }

// Batch is one reveal: n targets animated hidden -> visible with staggered
// start offsets.
type Batch struct {
	variant   Variant
	targets   []Target
	offsets   []float32
	elapsed   float32
	done      bool
	cancelled bool
	scope     *Scope
	complete  []func()
}

// Offsets returns each target's start time relative to the trigger.
func (b *Batch) Offsets() []float32 {
	return b.offsets
}

// Variant returns the variant after policy adjustments.
func (b *Batch) Variant() Variant {
	return b.variant
}

// Done returns true once every target reached the visible state.
func (b *Batch) Done() bool {
	return b.done
}

// Cancelled returns true if the batch was cancelled before completing.
func (b *Batch) Cancelled() bool {
	return b.cancelled
}

// Elapsed returns seconds since the trigger.
func (b *Batch) Elapsed() float32 {
	return b.elapsed
}

// Progress returns target i's linear progress in [0, 1].
func (b *Batch) Progress(i int) float32 {
	if b.done {
		return 1
	}
	local := b.elapsed - b.offsets[i]
	if local <= 0 {
		return 0
	}
	if b.variant.Transition.Duration <= 0 {
		return 1
	}
	return clamp01(local / b.variant.Transition.Duration)
}

// End returns the time at which the last target finishes.
func (b *Batch) End() float32 {
	if len(b.offsets) == 0 {
		return 0
	}
	return b.offsets[len(b.offsets)-1] + b.variant.Transition.Duration
}

// OnComplete registers fn to run when the batch finishes. It is never
// called for a cancelled batch; for an already finished one it runs now.
func (b *Batch) OnComplete(fn func()) {
	if b.cancelled {
		return
	}
	if b.done {
		fn()
		return
	}
	b.complete = append(b.complete, fn)
}

// Cancel reverts every target to the hidden state and drops the batch.
// No target or completion callback runs afterwards.
func (b *Batch) Cancel() {
	if b.done || b.cancelled {
		return
	}
	b.cancelled = true
	for _, t := range b.targets {
		t.SetStyle(b.variant.Hidden)
	}
	b.targets = nil
	b.complete = nil
	if b.scope != nil {
		delete(b.scope.batches, b)
	}
}

func (b *Batch) apply() {
	ease := b.variant.Easing()
	for i, t := range b.targets {
		t.SetStyle(Lerp(b.variant.Hidden, b.variant.Visible, ease(b.Progress(i))))
	}
}

func (b *Batch) finish() {
	for _, t := range b.targets {
		t.SetStyle(b.variant.Visible)
	}
	b.done = true
	if b.scope != nil {
		delete(b.scope.batches, b)
	}
	callbacks := b.complete
	b.complete = nil
	b.targets = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Scope groups batches owned by one visual. Closing it cancels them all,
// which is how an unmount tears down in-flight animations.
type Scope struct {
	batches map[*Batch]struct{}
	closed  bool
}

// Close cancels every unfinished batch in the scope. Later reveals under a
// closed scope are cancelled on creation.
func (sc *Scope) Close() {
	if sc.closed {
		return
	}
	sc.closed = true
	for b := range sc.batches {
		b.Cancel()
	}
}

// Closed returns true after Close.
func (sc *Scope) Closed() bool {
	return sc.closed
}

// Pending returns the number of unfinished batches in the scope.
func (sc *Scope) Pending() int {
	return len(sc.batches)
}

// Scheduler advances reveal batches from frame deltas.
type Scheduler struct {
	policy  ReducedMotion
	batches []*Batch
}

// NewScheduler creates a scheduler with the given reduced-motion policy.
func NewScheduler(policy ReducedMotion) *Scheduler {
	return &Scheduler{policy: policy}
}

// SetReducedMotion toggles the policy for batches created afterwards.
func (s *Scheduler) SetReducedMotion(active bool) {
	s.policy.Active = active
}

// ReducedMotion returns the current policy.
func (s *Scheduler) ReducedMotion() ReducedMotion {
	return s.policy
}

// NewScope creates a cancellation scope.
func (s *Scheduler) NewScope() *Scope {
	return &Scope{batches: make(map[*Batch]struct{})}
}

// Reveal schedules targets to animate from v's hidden to visible state,
// target i starting at delay + i*stagger. Targets are set hidden
// immediately.
func (s *Scheduler) Reveal(scope *Scope, targets []Target, v Variant) *Batch {
	v = s.policy.Apply(v)
	b := &Batch{
		variant: v,
		targets: append([]Target(nil), targets...),
		offsets: v.Offsets(len(targets)),
		scope:   scope,
	}

	if scope != nil && scope.closed {
		b.cancelled = true
		b.targets = nil
		return b
	}

	for _, t := range b.targets {
		t.SetStyle(v.Hidden)
	}
	if len(b.targets) == 0 {
		b.done = true
		return b
	}

	if scope != nil {
		scope.batches[b] = struct{}{}
	}
	s.batches = append(s.batches, b)
	return b
}

// Tick advances every live batch by dt seconds.
func (s *Scheduler) Tick(dt float32) {
	if dt < 0 {
		dt = 0
	}
	// Completion callbacks may schedule new batches into s.batches
	current := s.batches
	s.batches = nil
	live := make([]*Batch, 0, len(current))
	for _, b := range current {
		if b.cancelled || b.done {
			continue
		}
		b.elapsed += dt
		if b.elapsed >= b.End() {
			b.finish()
			continue
		}
		b.apply()
		live = append(live, b)
	}
	s.batches = append(live, s.batches...)
}

// Pending returns the number of live batches.
func (s *Scheduler) Pending() int {
	n := 0
	for _, b := range s.batches {
		if !b.cancelled && !b.done {
			n++
		}
	}
	return n
}

package motion

import (
	"math"
	"testing"
)

// recorder is a Target that keeps every style it receives.
type recorder struct {
	styles []Properties
}

func (r *recorder) SetStyle(p Properties) {
	r.styles = append(r.styles, p)
}

func (r *recorder) last() Properties {
	return r.styles[len(r.styles)-1]
}

func fadeUp(t *testing.T, duration, stagger float32) Variant {
	t.Helper()
	v, err := NewVariant("fade_up",
		Properties{Opacity: 0, Y: 50, Scale: 1},
		Properties{Opacity: 1, Y: 0, Scale: 1},
		Transition{Duration: duration, Stagger: stagger, Ease: "linear"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func targets(n int) ([]Target, []*recorder) {
	ts := make([]Target, n)
	rs := make([]*recorder, n)
	for i := range ts {
		rs[i] = &recorder{}
		ts[i] = rs[i]
	}
	return ts, rs
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestRevealStaggerOffsets(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	ts, _ := targets(3)

	b := s.Reveal(s.NewScope(), ts, fadeUp(t, 0.8, 0.2))

	want := []float32{0, 0.2, 0.4}
	got := b.Offsets()
	if len(got) != len(want) {
		t.Fatalf("offsets = %v, want %v", got, want)
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("offset %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRevealDelayShiftsOffsets(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	v := fadeUp(t, 0.5, 0.1)
	v.Transition.Delay = 0.3
	ts, _ := targets(2)

	b := s.Reveal(nil, ts, v)
	if !approx(b.Offsets()[0], 0.3) || !approx(b.Offsets()[1], 0.4) {
		t.Errorf("offsets = %v, want [0.3 0.4]", b.Offsets())
	}
}

func TestRevealInterpolatesAndCompletes(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	ts, rs := targets(2)

	b := s.Reveal(s.NewScope(), ts, fadeUp(t, 1.0, 0.5))
	completed := 0
	b.OnComplete(func() { completed++ })

	// Hidden style applied at trigger time
	if rs[0].last().Opacity != 0 || rs[0].last().Y != 50 {
		t.Fatalf("expected hidden style at trigger, got %+v", rs[0].last())
	}

	s.Tick(0.5)
	if !approx(rs[0].last().Opacity, 0.5) || !approx(rs[0].last().Y, 25) {
		t.Errorf("first target at 0.5s = %+v, want opacity 0.5 y 25", rs[0].last())
	}
	if rs[1].last().Opacity != 0 {
		t.Errorf("second target should not have started, got %+v", rs[1].last())
	}

	s.Tick(0.5)
	if !approx(rs[0].last().Opacity, 1) || !approx(rs[1].last().Opacity, 0.5) {
		t.Errorf("at 1.0s got %+v and %+v", rs[0].last(), rs[1].last())
	}
	if b.Done() {
		t.Fatal("batch finished before last target")
	}

	s.Tick(0.5)
	if !b.Done() || completed != 1 {
		t.Fatalf("expected batch done with one completion, done=%v completed=%d", b.Done(), completed)
	}
	for i, r := range rs {
		if r.last() != (Properties{Opacity: 1, Y: 0, Scale: 1}) {
			t.Errorf("target %d final style %+v", i, r.last())
		}
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending batches, got %d", s.Pending())
	}

	// Late OnComplete runs immediately
	b.OnComplete(func() { completed++ })
	if completed != 2 {
		t.Error("OnComplete on finished batch should run immediately")
	}
}

func TestRevealLargeDeltaFinishes(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	ts, rs := targets(3)
	b := s.Reveal(nil, ts, fadeUp(t, 0.8, 0.2))

	s.Tick(10)
	if !b.Done() {
		t.Fatal("expected a dropped-frame delta to finish the batch")
	}
	for i, r := range rs {
		if r.last().Opacity != 1 {
			t.Errorf("target %d opacity %v after finish", i, r.last().Opacity)
		}
	}
}

func TestRevealEmptyIsDone(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	b := s.Reveal(s.NewScope(), nil, fadeUp(t, 1, 0.1))
	if !b.Done() {
		t.Error("reveal with no targets should complete immediately")
	}
	called := false
	b.OnComplete(func() { called = true })
	if !called {
		t.Error("completion should run for an empty batch")
	}
}

func TestReducedMotionReveal(t *testing.T) {
	s := NewScheduler(ReducedMotion{Active: true, Duration: 0.2})
	ts, rs := targets(3)

	v := fadeUp(t, 1.2, 0.2)
	v.Hidden.X = -40
	v.Hidden.Scale = 0.5
	b := s.Reveal(nil, ts, v)

	got := b.Variant()
	if got.Transition.Duration > 0.3 {
		t.Errorf("reduced duration = %v, want <= 0.3", got.Transition.Duration)
	}
	for i, off := range b.Offsets() {
		if off != 0 {
			t.Errorf("offset %d = %v, want 0 under reduced motion", i, off)
		}
	}
	if got.Hidden.X != got.Visible.X || got.Hidden.Y != got.Visible.Y || got.Hidden.Scale != got.Visible.Scale {
		t.Errorf("expected zero translation/scale delta, hidden %+v visible %+v", got.Hidden, got.Visible)
	}

	// Only opacity changes across the animation
	s.Tick(0.1)
	for i, r := range rs {
		st := r.last()
		if st.X != 0 || st.Y != 0 || st.Scale != 1 {
			t.Errorf("target %d moved under reduced motion: %+v", i, st)
		}
		if !approx(st.Opacity, 0.5) {
			t.Errorf("target %d opacity %v, want 0.5", i, st.Opacity)
		}
	}
	s.Tick(0.1)
	if !b.Done() {
		t.Error("reduced batch should finish after its short duration")
	}
}

func TestReducedMotionPolicyClampsDuration(t *testing.T) {
	v := fadeUp(t, 2, 0.3)
	tests := []struct {
		configured float32
		want       float32
	}{
		{0, DefaultReducedDuration},
		{0.25, 0.25},
		{5, DefaultReducedDuration},
	}
	for _, tt := range tests {
		got := ReducedMotion{Active: true, Duration: tt.configured}.Apply(v)
		if !approx(got.Transition.Duration, tt.want) {
			t.Errorf("Duration(%v) = %v, want %v", tt.configured, got.Transition.Duration, tt.want)
		}
	}

	if inactive := (ReducedMotion{}).Apply(v); inactive.Transition.Duration != 2 {
		t.Error("inactive policy changed the variant")
	}
}

func TestScopeCloseCancelsPending(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	scope := s.NewScope()
	ts, rs := targets(3)

	b := s.Reveal(scope, ts, fadeUp(t, 1, 0.2))
	completed := false
	b.OnComplete(func() { completed = true })

	s.Tick(0.3)
	scope.Close()

	if !b.Cancelled() {
		t.Fatal("expected batch cancelled by scope close")
	}
	// Cancel reverts to hidden
	for i, r := range rs {
		if r.last().Opacity != 0 || r.last().Y != 50 {
			t.Errorf("target %d not reverted: %+v", i, r.last())
		}
	}

	counts := make([]int, len(rs))
	for i, r := range rs {
		counts[i] = len(r.styles)
	}
	s.Tick(0.5)
	s.Tick(5)
	for i, r := range rs {
		if len(r.styles) != counts[i] {
			t.Errorf("target %d received %d styles after teardown", i, len(r.styles)-counts[i])
		}
	}
	if completed {
		t.Error("completion fired after teardown")
	}
	if scope.Pending() != 0 || s.Pending() != 0 {
		t.Errorf("pending after close: scope %d scheduler %d", scope.Pending(), s.Pending())
	}

	// New reveals under a closed scope never touch their targets
	late := &recorder{}
	lb := s.Reveal(scope, []Target{late}, fadeUp(t, 1, 0))
	if !lb.Cancelled() || len(late.styles) != 0 {
		t.Errorf("reveal on closed scope wrote %d styles", len(late.styles))
	}
}

func TestScopesAreIndependent(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	a, b := s.NewScope(), s.NewScope()
	ta, _ := targets(1)
	tb, rb := targets(1)

	s.Reveal(a, ta, fadeUp(t, 1, 0))
	bb := s.Reveal(b, tb, fadeUp(t, 1, 0))

	a.Close()
	s.Tick(1)
	if !bb.Done() || rb[0].last().Opacity != 1 {
		t.Error("closing one scope affected another")
	}
}

func TestCompletionMayScheduleReveal(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	ts, _ := targets(1)
	next, rn := targets(1)

	b := s.Reveal(nil, ts, fadeUp(t, 0.5, 0))
	var chained *Batch
	b.OnComplete(func() { chained = s.Reveal(nil, next, fadeUp(t, 0.5, 0)) })

	s.Tick(0.5)
	if chained == nil {
		t.Fatal("completion did not run")
	}
	if s.Pending() != 1 {
		t.Fatalf("expected chained batch pending, got %d", s.Pending())
	}
	s.Tick(0.5)
	if !chained.Done() || rn[0].last().Opacity != 1 {
		t.Error("chained batch did not complete")
	}
}

func TestLerpClampsOpacityOnly(t *testing.T) {
	a := Properties{Opacity: 0, Y: 10, Scale: 0.8}
	b := Properties{Opacity: 1, Y: 0, Scale: 1}
	got := Lerp(a, b, 1.2)
	if got.Opacity != 1 {
		t.Errorf("opacity %v, want clamped 1", got.Opacity)
	}
	if !approx(got.Y, -2) || !approx(got.Scale, 1.04) {
		t.Errorf("overshoot not preserved: %+v", got)
	}
}

func TestReducedMotionDropsDelay(t *testing.T) {
	s := NewScheduler(ReducedMotion{Active: true, Duration: 0.2})
	v := fadeUp(t, 0.2, 0)
	v.Transition.Delay = 1.5
	ts, rs := targets(2)

	b := s.Reveal(nil, ts, v)
	for i, off := range b.Offsets() {
		if off != 0 {
			t.Errorf("offset %d = %v, want 0", i, off)
		}
	}
	if b.End() > 0.3 {
		t.Errorf("end = %v, want <= 0.3", b.End())
	}
	s.Tick(0.3)
	if !b.Done() || rs[1].last().Opacity != 1 {
		t.Error("delayed variant still running under reduced motion")
	}
}

func meterVariant(t *testing.T) Variant {
	t.Helper()
	v, err := NewVariant("meter",
		Properties{Opacity: 1, Scale: 1, Value: 0},
		Properties{Opacity: 1, Scale: 1, Value: 1},
		Transition{Duration: 1.5, Stagger: 0.2, Ease: "power3.out"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestMeterValueFillsAndReverts(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	scope := s.NewScope()
	ts, rs := targets(3)

	s.Reveal(scope, ts, meterVariant(t))
	s.Tick(0.5)
	if v := rs[0].last().Value; v <= 0 || v >= 1 {
		t.Errorf("first meter at 0.5s = %v, want partly filled", v)
	}
	if rs[0].last().Value <= rs[2].last().Value {
		t.Error("later meters should trail earlier ones")
	}

	scope.Close()
	for i, r := range rs {
		if r.last().Value != 0 {
			t.Errorf("meter %d = %v after close, want 0", i, r.last().Value)
		}
	}
}

func TestMeterValueReachesFull(t *testing.T) {
	s := NewScheduler(ReducedMotion{})
	ts, rs := targets(3)

	b := s.Reveal(nil, ts, meterVariant(t))
	if !approx(b.End(), 1.9) {
		t.Errorf("end = %v, want 1.9", b.End())
	}
	s.Tick(2)
	for i, r := range rs {
		if r.last().Value != 1 {
			t.Errorf("meter %d = %v, want 1", i, r.last().Value)
		}
	}
}

func TestReducedMotionKeepsValue(t *testing.T) {
	got := ReducedMotion{Active: true}.Apply(meterVariant(t))
	if got.Hidden.Value != 0 || got.Visible.Value != 1 {
		t.Errorf("value delta lost: hidden %+v visible %+v", got.Hidden, got.Visible)
	}
}

func TestLerpClampsValue(t *testing.T) {
	got := Lerp(Properties{Value: 0}, Properties{Value: 1}, 1.3)
	if got.Value != 1 {
		t.Errorf("value %v, want clamped 1", got.Value)
	}
}

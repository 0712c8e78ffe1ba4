package viewport

import "testing"

func fixed(r Rect) func() Rect {
	return func() Rect { return r }
}

func TestObserverTriggerOnceNeverReverts(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	var changes []Change
	sub := o.Observe(fixed(Rect{X: 0, Y: 1000, W: 1000, H: 200}), 0.5, true, func(c Change) {
		changes = append(changes, c)
	})

	o.Update(v) // below the fold
	if len(changes) != 0 {
		t.Fatalf("expected no report while hidden, got %+v", changes)
	}

	v.ScrollTo(500) // rect fully visible
	o.Update(v)
	if len(changes) != 1 || !changes[0].InView {
		t.Fatalf("expected single InView=true, got %+v", changes)
	}
	if sub.Active() {
		t.Error("triggerOnce subscription should be released after firing")
	}

	// Leave and re-enter
	v.ScrollTo(0)
	o.Update(v)
	v.ScrollTo(500)
	o.Update(v)
	if len(changes) != 1 {
		t.Errorf("triggerOnce element reported again: %+v", changes)
	}
	if o.Len() != 0 {
		t.Errorf("expected empty observer, got %d", o.Len())
	}
}

func TestObserverRepeatingReportsBothWays(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	var states []bool
	o.Observe(fixed(Rect{X: 0, Y: 1000, W: 1000, H: 200}), 0.5, false, func(c Change) {
		states = append(states, c.InView)
	})

	v.ScrollTo(500)
	o.Update(v)
	o.Update(v) // no change, no report
	v.ScrollTo(0)
	o.Update(v)
	v.ScrollTo(500)
	o.Update(v)

	want := []bool{true, false, true}
	if len(states) != len(want) {
		t.Fatalf("got %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("report %d = %v, want %v", i, states[i], want[i])
		}
	}
}

func TestObserverThresholdCrossing(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	fired := false
	// Rect 800..1200; visible fraction = (scroll+800-800)/400
	o.Observe(fixed(Rect{X: 0, Y: 800, W: 1000, H: 400}), 0.5, true, func(Change) { fired = true })

	v.ScrollTo(100) // 25%
	o.Update(v)
	if fired {
		t.Fatal("fired below threshold")
	}
	v.ScrollTo(200) // exactly 50%
	o.Update(v)
	if !fired {
		t.Error("expected fire at exactly the threshold")
	}
}

func TestObserverZeroThreshold(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	fired := false
	o.Observe(fixed(Rect{X: 0, Y: 800, W: 1000, H: 400}), 0, true, func(Change) { fired = true })

	o.Update(v) // touching the edge, zero area visible
	if fired {
		t.Fatal("zero threshold fired with nothing visible")
	}
	v.ScrollTo(1)
	o.Update(v)
	if !fired {
		t.Error("zero threshold should fire once any pixel is visible")
	}
}

func TestObserverIndependentElements(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	var order []string
	o.Observe(fixed(Rect{X: 0, Y: 100, W: 100, H: 100}), 0.1, true, func(Change) { order = append(order, "a") })
	o.Observe(fixed(Rect{X: 0, Y: 2000, W: 100, H: 100}), 0.1, true, func(Change) { order = append(order, "b") })

	o.Update(v)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected only a to fire, got %v", order)
	}
	v.ScrollTo(1500)
	o.Update(v)
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("expected b to fire after scrolling, got %v", order)
	}
}

func TestObserverUnobserveAndClose(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	calls := 0
	sub := o.Observe(fixed(Rect{X: 0, Y: 0, W: 10, H: 10}), 0.1, false, func(Change) { calls++ })
	sub.Unobserve()
	sub.Unobserve()
	o.Update(v)
	if calls != 0 {
		t.Errorf("unobserved element reported %d times", calls)
	}

	o.Observe(fixed(Rect{X: 0, Y: 0, W: 10, H: 10}), 0.1, false, func(Change) { calls++ })
	o.Close()
	o.Update(v)
	if calls != 0 || o.Len() != 0 {
		t.Errorf("closed observer still active: calls=%d len=%d", calls, o.Len())
	}
}

func TestObserverCallbackMayUnobserveOthers(t *testing.T) {
	v := New(1000, 800, 5000)
	o := NewObserver()

	var second Subscription
	secondCalls := 0
	o.Observe(fixed(Rect{X: 0, Y: 0, W: 10, H: 10}), 0.1, true, func(Change) { second.Unobserve() })
	second = o.Observe(fixed(Rect{X: 0, Y: 20, W: 10, H: 10}), 0.1, true, func(Change) { secondCalls++ })

	o.Update(v)
	if secondCalls != 0 {
		t.Errorf("element unobserved mid-update still reported %d times", secondCalls)
	}
}

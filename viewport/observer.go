package viewport

// Change is reported when an observed element crosses its threshold.
type Change struct {
	InView bool
	Ratio  float32
}

// Subscription identifies one observed element.
type Subscription struct {
	id int
	o  *Observer
}

// Unobserve stops reporting for this element. Safe to call more than once.
func (s Subscription) Unobserve() {
	if s.o != nil {
		s.o.remove(s.id)
	}
}

// Active returns true while the element is still observed.
func (s Subscription) Active() bool {
	if s.o == nil {
		return false
	}
	e, ok := s.o.entries[s.id]
	return ok && !e.removed
}

type entry struct {
	id          int
	rect        func() Rect
	threshold   float32
	triggerOnce bool
	inView      bool
	removed     bool
	fn          func(Change)
}

// Observer tracks elements against a viewport and reports threshold
// crossings. Elements are evaluated in observation order; there is no other
// ordering guarantee between distinct elements.
type Observer struct {
	entries map[int]*entry
	order   []int
	nextID  int
}

// NewObserver creates an empty observer.
func NewObserver() *Observer {
	return &Observer{entries: make(map[int]*entry)}
}

// Observe starts watching the element whose geometry rect returns.
// fn is called with InView=true when the intersection ratio reaches
// threshold and InView=false when it drops below. With triggerOnce the
// element is unobserved right after its first true report, so it never
// reports false.
func (o *Observer) Observe(rect func() Rect, threshold float32, triggerOnce bool, fn func(Change)) Subscription {
	id := o.nextID
	o.nextID++
	o.entries[id] = &entry{
		id:          id,
		rect:        rect,
		threshold:   clamp(threshold, 0, 1),
		triggerOnce: triggerOnce,
		fn:          fn,
	}
	o.order = append(o.order, id)
	return Subscription{id: id, o: o}
}

// Update evaluates every observed element against v.
func (o *Observer) Update(v *Viewport) {
	// Callbacks may observe or unobserve; iterate a snapshot
	ids := append([]int(nil), o.order...)
	for _, id := range ids {
		e, ok := o.entries[id]
		if !ok || e.removed {
			continue
		}
		ratio := v.IntersectionRatio(e.rect())
		visible := crossed(ratio, e.threshold)
		if visible == e.inView {
			continue
		}
		e.inView = visible
		fn := e.fn
		if e.triggerOnce && visible {
			o.remove(id)
		}
		if fn != nil {
			fn(Change{InView: visible, Ratio: ratio})
		}
	}
	o.compact()
}

// Len returns the number of observed elements.
func (o *Observer) Len() int {
	n := 0
	for _, e := range o.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Close unobserves everything.
func (o *Observer) Close() {
	for id := range o.entries {
		o.remove(id)
	}
	o.compact()
}

func (o *Observer) remove(id int) {
	if e, ok := o.entries[id]; ok {
		e.removed = true
		e.fn = nil
	}
}

func (o *Observer) compact() {
	kept := o.order[:0]
	for _, id := range o.order {
		if e, ok := o.entries[id]; ok && !e.removed {
			kept = append(kept, id)
			continue
		}
		delete(o.entries, id)
	}
	o.order = kept
}

// crossed applies threshold semantics: a zero threshold means any visible
// pixel counts.
func crossed(ratio, threshold float32) bool {
	if threshold == 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

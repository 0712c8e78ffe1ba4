package scene

// FrameFunc runs once per frame with the frame delta in seconds.
type FrameFunc func(dt float32)

type frameEntry struct {
	id   int
	name string
	fn   FrameFunc
}

// FrameLoop is the per-frame callback list. Callbacks run in registration
// order; one removed during a tick does not run later in that tick.
type FrameLoop struct {
	nextID  int
	entries []frameEntry
	phase   func(name string)
}

// NewFrameLoop creates an empty loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// SetPhaseHook registers fn to be called with each callback's name before
// it runs. Used for per-phase timing.
func (l *FrameLoop) SetPhaseHook(fn func(name string)) {
	l.phase = fn
}

// Register adds fn under name and returns its teardown. Calling the
// teardown more than once is safe.
func (l *FrameLoop) Register(name string, fn FrameFunc) (unregister func()) {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, frameEntry{id: id, name: name, fn: fn})
	return func() { l.remove(id) }
}

// Tick runs every registered callback.
func (l *FrameLoop) Tick(dt float32) {
	snapshot := append([]frameEntry(nil), l.entries...)
	for _, e := range snapshot {
		if !l.has(e.id) {
			continue
		}
		if l.phase != nil {
			l.phase(e.name)
		}
		e.fn(dt)
	}
}

// Len returns the number of registered callbacks.
func (l *FrameLoop) Len() int {
	return len(l.entries)
}

// Names returns registered callback names in order.
func (l *FrameLoop) Names() []string {
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.name
	}
	return names
}

func (l *FrameLoop) has(id int) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (l *FrameLoop) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

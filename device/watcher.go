package device

import "log/slog"

// ResizeSource delivers viewport size changes. Subscribe returns the
// matching teardown.
type ResizeSource interface {
	Subscribe(fn func(width, height int)) (unsubscribe func())
}

// ResizeBus is a minimal in-process ResizeSource. The scene publishes
// window resizes into it once per frame.
type ResizeBus struct {
	nextID int
	subs   map[int]func(width, height int)
}

// NewResizeBus creates an empty bus.
func NewResizeBus() *ResizeBus {
	return &ResizeBus{subs: make(map[int]func(width, height int))}
}

// Subscribe registers fn until the returned function is called.
func (b *ResizeBus) Subscribe(fn func(width, height int)) func() {
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() { delete(b.subs, id) }
}

// Publish notifies every subscriber of a new size.
func (b *ResizeBus) Publish(width, height int) {
	for _, fn := range b.subs {
		fn(width, height)
	}
}

// Len returns the number of live subscriptions.
func (b *ResizeBus) Len() int {
	return len(b.subs)
}

// Watcher keeps a Profile current by re-classifying on every resize.
// Listeners are only called when IsMobile flips.
type Watcher struct {
	classifier  *Classifier
	userAgent   string
	profile     Profile
	listeners   []func(Profile)
	unsubscribe func()
}

// NewWatcher classifies the initial size and subscribes to src.
// Close must be called to release the subscription.
func NewWatcher(c *Classifier, src ResizeSource, userAgent string, width, height int) *Watcher {
	w := &Watcher{classifier: c, userAgent: userAgent}
	w.profile = w.classify(width, height)
	if src != nil {
		w.unsubscribe = src.Subscribe(w.handleResize)
	}
	return w
}

// Profile returns the current classification.
func (w *Watcher) Profile() Profile {
	return w.profile
}

// OnChange registers fn to run when the device class flips.
func (w *Watcher) OnChange(fn func(Profile)) {
	w.listeners = append(w.listeners, fn)
}

// Override forces a user agent and re-classifies at the current size.
// Used by the HUD to simulate a mobile browser.
func (w *Watcher) Override(userAgent string) {
	w.userAgent = userAgent
	w.handleResize(w.profile.Width, w.profile.Height)
}

// Close unsubscribes from the resize source. Safe to call twice.
func (w *Watcher) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.listeners = nil
}

func (w *Watcher) handleResize(width, height int) {
	next := w.classify(width, height)
	flipped := next.IsMobile != w.profile.IsMobile
	w.profile = next
	if !flipped {
		return
	}
	slog.Info("device profile changed", "profile", next)
	for _, fn := range w.listeners {
		fn(next)
	}
}

func (w *Watcher) classify(width, height int) Profile {
	p := w.classifier.Classify(width, w.userAgent)
	p.Height = height
	return p
}

package telemetry

// PageState is the snapshot of page-level values taken at flush time.
type PageState struct {
	ScrollProgress   float64
	IsMobile         bool
	ParticleCount    int
	RotationX        float64
	RotationY        float64
	PendingBatches   int
	RevealedSections int
}

// Collector accumulates frame deltas and reveal events within time windows
// and produces FrameStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int
	windowStartSec   float64
	frame            int
	timeSec          float64
	frameMS          []float64

	revealsStarted   int
	revealsCompleted int
	revealsReverted  int

	events []Event
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame advances the clock by dt seconds.
func (c *Collector) RecordFrame(dt float32) {
	if dt < 0 {
		dt = 0
	}
	c.frame++
	c.timeSec += float64(dt)
	c.frameMS = append(c.frameMS, float64(dt)*1000)
}

// Record stores an event and updates the window counters.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventRevealStart:
		c.revealsStarted++
	case EventRevealComplete:
		c.revealsCompleted++
	case EventRevealRevert:
		c.revealsReverted++
	}
	c.events = append(c.events, e)
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int {
	return c.frame
}

// Time returns seconds accumulated from frame deltas.
func (c *Collector) Time() float64 {
	return c.timeSec
}

// DrainEvents returns and clears the buffered events.
func (c *Collector) DrainEvents() []Event {
	ev := c.events
	c.events = nil
	return ev
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.timeSec-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a FrameStats and resets counters for the next window.
func (c *Collector) Flush(page PageState) FrameStats {
	mean, std, p50, p90, p99 := ComputeFrameStats(c.frameMS)

	stats := FrameStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		TimeSec:          c.timeSec,
		Frames:           len(c.frameMS),

		FrameMeanMS: mean,
		FrameStdMS:  std,
		FrameP50MS:  p50,
		FrameP90MS:  p90,
		FrameP99MS:  p99,

		ScrollProgress: page.ScrollProgress,
		IsMobile:       page.IsMobile,
		ParticleCount:  page.ParticleCount,
		RotationX:      page.RotationX,
		RotationY:      page.RotationY,

		RevealsStarted:   c.revealsStarted,
		RevealsCompleted: c.revealsCompleted,
		RevealsReverted:  c.revealsReverted,
		PendingBatches:   page.PendingBatches,
		RevealedSections: page.RevealedSections,
	}

	c.windowStartFrame = c.frame
	c.windowStartSec = c.timeSec
	c.frameMS = c.frameMS[:0]
	c.revealsStarted = 0
	c.revealsCompleted = 0
	c.revealsReverted = 0

	return stats
}

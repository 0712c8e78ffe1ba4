// Package telemetry provides frame timing, reveal activity tracking and CSV output.
package telemetry

// EventType identifies reveal events.
type EventType uint8

const (
	EventRevealStart EventType = iota
	EventRevealComplete
	EventRevealRevert
	EventProfileChange
)

func (e EventType) String() string {
	switch e {
	case EventRevealStart:
		return "reveal_start"
	case EventRevealComplete:
		return "reveal_complete"
	case EventRevealRevert:
		return "reveal_revert"
	case EventProfileChange:
		return "profile_change"
	}
	return "unknown"
}

// MarshalCSV implements gocsv's TypeMarshaller.
func (e EventType) MarshalCSV() (string, error) {
	return e.String(), nil
}

// Event is one row of reveals.csv.
type Event struct {
	Type    EventType `csv:"event"`
	Frame   int       `csv:"frame"`
	TimeSec float64   `csv:"time"`
	Section string    `csv:"section"`
	Fired   int       `csv:"fired"`
	Mobile  bool      `csv:"mobile"`
}

// NewRevealStartEvent records a section starting its reveal.
func NewRevealStartEvent(frame int, timeSec float64, section string, fired int) Event {
	return Event{Type: EventRevealStart, Frame: frame, TimeSec: timeSec, Section: section, Fired: fired}
}

// NewRevealCompleteEvent records a section reaching its visible state.
func NewRevealCompleteEvent(frame int, timeSec float64, section string, fired int) Event {
	return Event{Type: EventRevealComplete, Frame: frame, TimeSec: timeSec, Section: section, Fired: fired}
}

// NewRevealRevertEvent records a repeating section leaving the viewport.
func NewRevealRevertEvent(frame int, timeSec float64, section string, fired int) Event {
	return Event{Type: EventRevealRevert, Frame: frame, TimeSec: timeSec, Section: section, Fired: fired}
}

// NewProfileChangeEvent records the device class flipping.
func NewProfileChangeEvent(frame int, timeSec float64, mobile bool) Event {
	return Event{Type: EventProfileChange, Frame: frame, TimeSec: timeSec, Mobile: mobile}
}

package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame.
const (
	PhaseDevice     = "device"
	PhaseRotation   = "rotation"
	PhaseVisibility = "visibility"
	PhaseAnimation  = "animation"
	PhaseRender     = "render"
	PhaseTelemetry  = "telemetry"
)

var framePhases = []string{
	PhaseDevice, PhaseRotation, PhaseVisibility,
	PhaseAnimation, PhaseRender, PhaseTelemetry,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall clock between presented frames (graphics mode)
	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent records the time a frame reached the screen.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Frames the CPU side could sustain per second
	FramesPerSecond float64

	// Presented frame rate (graphics mode)
	PresentGap time.Duration
	FPS        float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.presentGap > 0 {
		fps = float64(time.Second) / float64(p.presentGap)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:   make(map[string]time.Duration),
			PhasePct:   make(map[string]float64),
			PresentGap: p.presentGap,
			FPS:        fps,
		}
	}

	var total, minFrame, maxFrame time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration

		if i == 0 || s.FrameDuration < minFrame {
			minFrame = s.FrameDuration
		}
		if s.FrameDuration > maxFrame {
			maxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgFrameDuration: avg,
		MinFrameDuration: minFrame,
		MaxFrameDuration: maxFrame,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		FramesPerSecond:  perSec,
		PresentGap:       p.presentGap,
		FPS:              fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameDuration.Microseconds(),
		"min_frame_us", s.MinFrameDuration.Microseconds(),
		"max_frame_us", s.MaxFrameDuration.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd     int     `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	FramesPerSec  float64 `csv:"frames_per_sec"`
	FPS           float64 `csv:"fps"`
	DevicePct     float64 `csv:"device_pct"`
	RotationPct   float64 `csv:"rotation_pct"`
	VisibilityPct float64 `csv:"visibility_pct"`
	AnimationPct  float64 `csv:"animation_pct"`
	RenderPct     float64 `csv:"render_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgFrameDuration.Microseconds(),
		MinFrameUS:    s.MinFrameDuration.Microseconds(),
		MaxFrameUS:    s.MaxFrameDuration.Microseconds(),
		FramesPerSec:  s.FramesPerSecond,
		FPS:           s.FPS,
		DevicePct:     s.PhasePct[PhaseDevice],
		RotationPct:   s.PhasePct[PhaseRotation],
		VisibilityPct: s.PhasePct[PhaseVisibility],
		AnimationPct:  s.PhasePct[PhaseAnimation],
		RenderPct:     s.PhasePct[PhaseRender],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameStats holds aggregated statistics for a time window.
type FrameStats struct {
	WindowStartFrame int     `csv:"-"`
	WindowEndFrame   int     `csv:"window_end"`
	TimeSec          float64 `csv:"time"`
	Frames           int     `csv:"frames"`

	// Frame delta distribution in milliseconds
	FrameMeanMS float64 `csv:"frame_mean_ms"`
	FrameStdMS  float64 `csv:"frame_std_ms"`
	FrameP50MS  float64 `csv:"frame_p50_ms"`
	FrameP90MS  float64 `csv:"frame_p90_ms"`
	FrameP99MS  float64 `csv:"frame_p99_ms"`

	// Page state at window end
	ScrollProgress float64 `csv:"scroll_progress"`
	IsMobile       bool    `csv:"mobile"`
	ParticleCount  int     `csv:"particles"`
	RotationX      float64 `csv:"rotation_x"`
	RotationY      float64 `csv:"rotation_y"`

	// Reveal activity during the window
	RevealsStarted   int `csv:"reveals_started"`
	RevealsCompleted int `csv:"reveals_completed"`
	RevealsReverted  int `csv:"reveals_reverted"`
	PendingBatches   int `csv:"pending_batches"`
	RevealedSections int `csv:"revealed_sections"`
}

// Quantile returns the p-th empirical quantile of values, p in [0, 1].
// values does not need to be sorted. Returns 0 for an empty slice.
func Quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeFrameStats calculates mean, standard deviation and tail quantiles
// of frame deltas given in milliseconds.
func ComputeFrameStats(ms []float64) (mean, std, p50, p90, p99 float64) {
	switch len(ms) {
	case 0:
		return 0, 0, 0, 0, 0
	case 1:
		return ms[0], 0, ms[0], ms[0], ms[0]
	}

	mean, std = stat.MeanStdDev(ms, nil)

	sorted := make([]float64, len(ms))
	copy(sorted, ms)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	p99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return mean, std, p50, p90, p99
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Float64("time", s.TimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("frame_mean_ms", s.FrameMeanMS),
		slog.Float64("frame_std_ms", s.FrameStdMS),
		slog.Float64("frame_p50_ms", s.FrameP50MS),
		slog.Float64("frame_p90_ms", s.FrameP90MS),
		slog.Float64("frame_p99_ms", s.FrameP99MS),
		slog.Float64("scroll_progress", s.ScrollProgress),
		slog.Bool("mobile", s.IsMobile),
		slog.Int("particles", s.ParticleCount),
		slog.Float64("rotation_x", s.RotationX),
		slog.Float64("rotation_y", s.RotationY),
		slog.Int("reveals_started", s.RevealsStarted),
		slog.Int("reveals_completed", s.RevealsCompleted),
		slog.Int("reveals_reverted", s.RevealsReverted),
		slog.Int("pending_batches", s.PendingBatches),
		slog.Int("revealed_sections", s.RevealedSections),
	)
}

// LogStats logs the window stats using slog.
func (s FrameStats) LogStats() {
	slog.Info("stats", "window", s)
}

package scene

import (
	"log/slog"

	"github.com/pthm-cable/folio/motion"
	"github.com/pthm-cable/folio/telemetry"
)

// Manual snapshots go here when no snapshot directory is configured.
const defaultSnapshotDir = "snapshots"

// flushTelemetry writes buffered reveal events and, at window boundaries,
// the frame and perf stats.
func (s *Scene) flushTelemetry() {
	if events := s.collector.DrainEvents(); len(events) > 0 {
		if err := s.output.WriteEvents(events); err != nil {
			slog.Error("failed to write events", "error", err)
		}
	}
	if !s.collector.ShouldFlush() {
		return
	}

	stats := s.collector.Flush(s.pageState())
	perf := s.perf.Stats()
	if err := s.output.WriteFrameStats(stats); err != nil {
		slog.Error("failed to write frame stats", "error", err)
	}
	if err := s.output.WritePerf(perf, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf stats", "error", err)
	}
	if s.logStats {
		stats.LogStats()
		perf.LogStats()
	}
	for _, b := range s.bookmarks.Check(stats) {
		b.LogBookmark()
		if s.snapshotDir != "" {
			s.saveSnapshot(s.snapshotDir, &b)
		}
	}
}

// Snapshot captures the current page state. bookmark may be nil.
func (s *Scene) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	rot := s.field.Rotation()
	p := s.watcher.Profile()
	snap := &telemetry.Snapshot{
		Version:        telemetry.SnapshotVersion,
		RNGSeed:        s.seed,
		Frame:          s.frame,
		TimeSec:        s.elapsed,
		ViewportWidth:  s.view.Width,
		ViewportHeight: s.view.Height,
		PageHeight:     s.view.PageHeight,
		ScrollY:        s.view.ScrollY,
		IsMobile:       p.IsMobile,
		ReducedMotion:  s.ReducedMotion(),
		ParticleCount:  s.field.Buffer().Len(),
		RotationX:      rot.X,
		RotationY:      rot.Y,
		Bookmark:       bookmark,
	}
	if s.unloaded {
		return snap
	}

	snap.Sections = make([]telemetry.SectionSnapshot, len(s.cfg.Page.Sections))
	query := s.sectionFilter.Query()
	for query.Next() {
		sec, b, r := query.Get()
		ss := telemetry.SectionSnapshot{Name: sec.Name, Top: b.Top, Height: b.Height}
		if r.Target != nil {
			ss.Phase = r.Target.Phase().String()
			ss.Fired = r.Target.Fired()
		}
		snap.Sections[sec.Index] = ss
	}

	eq := s.elementFilter.Query()
	for eq.Next() {
		el, st := eq.Get()
		if !s.world.Alive(el.Section) {
			continue
		}
		ss := &snap.Sections[s.sectionInfo.Get(el.Section).Index]
		for len(ss.Elements) <= el.Index {
			ss.Elements = append(ss.Elements, telemetry.ElementSnapshot{})
		}
		ss.Elements[el.Index] = telemetry.ElementSnapshot{
			Text:    el.Text,
			Opacity: st.Opacity,
			X:       st.X,
			Y:       st.Y,
			Scale:   st.Scale,
		}
	}

	for i := range snap.Sections {
		ss := &snap.Sections[i]
		for _, m := range s.Meters(ss.Name) {
			ss.Meters = append(ss.Meters, telemetry.MeterSnapshot{
				Label:   m.Label,
				Level:   m.Level,
				Value:   m.Value,
				Counter: m.Counter,
			})
		}
	}
	return snap
}

// manualSnapshotDir is where the S key saves. It falls back to a local
// directory without enabling bookmark snapshots.
func (s *Scene) manualSnapshotDir() string {
	if s.snapshotDir != "" {
		return s.snapshotDir
	}
	return defaultSnapshotDir
}

func (s *Scene) saveManualSnapshot() string {
	return s.saveSnapshot(s.manualSnapshotDir(), nil)
}

func (s *Scene) saveSnapshot(dir string, bookmark *telemetry.Bookmark) string {
	path, err := telemetry.SaveSnapshot(s.Snapshot(bookmark), dir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return ""
	}
	slog.Info("snapshot saved", "path", path, "frame", s.frame)
	return path
}

func (s *Scene) pageState() telemetry.PageState {
	rot := s.field.Rotation()
	revealed := 0
	for _, st := range s.Sections() {
		if st.Phase == motion.PhaseRevealed {
			revealed++
		}
	}
	return telemetry.PageState{
		ScrollProgress:   float64(s.view.Progress()),
		IsMobile:         s.field.Profile().IsMobile,
		ParticleCount:    s.field.Buffer().Len(),
		RotationX:        float64(rot.X),
		RotationY:        float64(rot.Y),
		PendingBatches:   s.scheduler.Pending(),
		RevealedSections: revealed,
	}
}

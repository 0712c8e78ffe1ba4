package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHitch         BookmarkType = "hitch"
	BookmarkSlowdown      BookmarkType = "slowdown"
	BookmarkQualitySwitch BookmarkType = "quality_switch"
	BookmarkPageRevealed  BookmarkType = "page_revealed"
	BookmarkSteady        BookmarkType = "steady"
)

// Bookmark marks a window worth looking at in a run's logs.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	Frame       int          `json:"frame"`
	Description string       `json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"description", b.Description,
	)
}

// BookmarkDetector flags frame-time anomalies and page milestones from
// consecutive FrameStats windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []FrameStats
	historySize int
	historyIdx  int
	historyFull bool

	steadyWindows int
	seen          bool
	lastMobile    bool
	revealed      bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady detection
	}
	return &BookmarkDetector{
		history:     make([]FrameStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats FrameStats) []Bookmark {
	var bookmarks []Bookmark

	if len(bd.getHistory()) > 0 {
		// Hitch: p99 frame time > 2x rolling average p99
		if b := bd.checkHitch(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		// Slowdown: mean frame time > 1.5x rolling average
		if b := bd.checkSlowdown(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkQualitySwitch(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPageRevealed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	// Steady: low variance over the last 4 windows, checked with the new one
	if b := bd.checkSteady(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats FrameStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []FrameStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// recent returns the last n windows in insertion order.
func (bd *BookmarkDetector) recent(n int) []FrameStats {
	h := bd.getHistory()
	if len(h) < n {
		return nil
	}
	out := make([]FrameStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkHitch(stats FrameStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var total float64
	for _, h := range history {
		total += h.FrameP99MS
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.FrameP99MS > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkHitch,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("p99 frame %.1fms is %.1fx average (%.1fms)", stats.FrameP99MS, stats.FrameP99MS/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkSlowdown(stats FrameStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var total float64
	for _, h := range history {
		total += h.FrameMeanMS
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.FrameMeanMS > avg*1.5 {
		return &Bookmark{
			Type:        BookmarkSlowdown,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("mean frame %.1fms vs %.1fms average", stats.FrameMeanMS, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkQualitySwitch(stats FrameStats) *Bookmark {
	defer func() {
		bd.seen = true
		bd.lastMobile = stats.IsMobile
	}()
	if !bd.seen || stats.IsMobile == bd.lastMobile {
		return nil
	}
	class := "desktop"
	if stats.IsMobile {
		class = "mobile"
	}
	return &Bookmark{
		Type:        BookmarkQualitySwitch,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("switched to %s quality with %d particles", class, stats.ParticleCount),
	}
}

func (bd *BookmarkDetector) checkPageRevealed(stats FrameStats) *Bookmark {
	if bd.revealed || stats.ScrollProgress < 1 || stats.PendingBatches > 0 {
		return nil
	}
	bd.revealed = true
	return &Bookmark{
		Type:        BookmarkPageRevealed,
		Frame:       stats.WindowEndFrame,
		Description: fmt.Sprintf("page fully scrolled with %d sections revealed after %.1fs", stats.RevealedSections, stats.TimeSec),
	}
}

func (bd *BookmarkDetector) checkSteady(stats FrameStats) *Bookmark {
	last := bd.recent(4)
	if last == nil {
		return nil
	}

	var sum float64
	for _, h := range last {
		sum += h.FrameMeanMS
	}
	mean := sum / 4
	var variance float64
	for _, h := range last {
		d := h.FrameMeanMS - mean
		variance += d * d
	}
	variance /= 4

	// CV^2 < 0.01 means CV < 10%
	if mean > 0 && variance/(mean*mean) < 0.01 {
		bd.steadyWindows++
	} else {
		bd.steadyWindows = 0
	}

	if bd.steadyWindows == 5 { // trigger exactly once per steady run
		return &Bookmark{
			Type:        BookmarkSteady,
			Frame:       stats.WindowEndFrame,
			Description: fmt.Sprintf("steady %.1fms frames over 5+ windows", mean),
		}
	}
	return nil
}

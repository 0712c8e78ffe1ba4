package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Hitch(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(FrameStats{WindowEndFrame: i * 300, FrameMeanMS: 16.7, FrameP99MS: 18})
	}

	bms := bd.Check(FrameStats{WindowEndFrame: 1500, FrameMeanMS: 17, FrameP99MS: 60})
	if !hasBookmark(bms, BookmarkHitch) {
		t.Error("expected hitch bookmark")
	}
	if hasBookmark(bms, BookmarkSlowdown) {
		t.Error("mean barely moved, slowdown should not fire")
	}
}

func TestBookmarkDetector_Slowdown(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(FrameStats{FrameMeanMS: 16.7, FrameP99MS: 18})
	}
	if !hasBookmark(bd.Check(FrameStats{FrameMeanMS: 33, FrameP99MS: 34}), BookmarkSlowdown) {
		t.Error("expected slowdown bookmark")
	}
}

func TestBookmarkDetector_NeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(FrameStats{FrameMeanMS: 16, FrameP99MS: 17})
	if bms := bd.Check(FrameStats{FrameMeanMS: 100, FrameP99MS: 200}); hasBookmark(bms, BookmarkHitch) {
		t.Error("hitch fired with one window of history")
	}
}

func TestBookmarkDetector_QualitySwitch(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if bms := bd.Check(FrameStats{IsMobile: true}); hasBookmark(bms, BookmarkQualitySwitch) {
		t.Error("first window should only record the class")
	}
	if bms := bd.Check(FrameStats{IsMobile: true}); hasBookmark(bms, BookmarkQualitySwitch) {
		t.Error("no switch without a change")
	}
	bms := bd.Check(FrameStats{IsMobile: false, ParticleCount: 5000})
	if !hasBookmark(bms, BookmarkQualitySwitch) {
		t.Error("expected quality_switch bookmark")
	}
}

func TestBookmarkDetector_PageRevealedOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if hasBookmark(bd.Check(FrameStats{ScrollProgress: 1, PendingBatches: 1}), BookmarkPageRevealed) {
		t.Error("fired while a batch is still animating")
	}
	if !hasBookmark(bd.Check(FrameStats{ScrollProgress: 1, RevealedSections: 6}), BookmarkPageRevealed) {
		t.Error("expected page_revealed bookmark")
	}
	if hasBookmark(bd.Check(FrameStats{ScrollProgress: 1}), BookmarkPageRevealed) {
		t.Error("page_revealed fired twice")
	}
}

func TestBookmarkDetector_Steady(t *testing.T) {
	bd := NewBookmarkDetector(10)
	fired := 0
	for i := 0; i < 12; i++ {
		if hasBookmark(bd.Check(FrameStats{WindowEndFrame: i * 300, FrameMeanMS: 16.7, FrameP99MS: 18}), BookmarkSteady) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("steady fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_MinimumHistory(t *testing.T) {
	bd := NewBookmarkDetector(1)
	if bd.historySize != 5 {
		t.Errorf("history size = %d, want 5", bd.historySize)
	}
}

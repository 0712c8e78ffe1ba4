package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:        SnapshotVersion,
		RNGSeed:        42,
		Frame:          600,
		TimeSec:        10,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		PageHeight:     3620,
		ScrollY:        1200,
		ParticleCount:  5000,
		RotationX:      -1,
		RotationY:      -0.667,
		Sections: []SectionSnapshot{
			{
				Name: "about", Top: 800, Height: 420, Phase: "revealed", Fired: 1,
				Elements: []ElementSnapshot{
					{Text: "About", Opacity: 1, Scale: 1},
					{Text: "Go", Opacity: 0.5, Y: 25, Scale: 1},
				},
			},
			{Name: "skills", Top: 1300, Height: 380, Phase: "unseen"},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkPageRevealed,
			Frame:       600,
			Description: "test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file not created at %s: %v", path, err)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.Frame != 600 || loaded.ScrollY != 1200 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(loaded.Sections))
	}
	about := loaded.Sections[0]
	if about.Phase != "revealed" || about.Fired != 1 || len(about.Elements) != 2 {
		t.Errorf("about = %+v", about)
	}
	if e := about.Elements[1]; e.Opacity != 0.5 || e.Y != 25 {
		t.Errorf("element = %+v", e)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkPageRevealed {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		snapshot *Snapshot
		want     string
	}{
		{
			name: "with bookmark",
			snapshot: &Snapshot{
				Version:  SnapshotVersion,
				Frame:    5000,
				Bookmark: &Bookmark{Type: BookmarkQualitySwitch, Frame: 5000},
			},
			want: "snapshot_5000_quality_switch.json",
		},
		{
			name:     "without bookmark",
			snapshot: &Snapshot{Version: SnapshotVersion, Frame: 3000},
			want:     "snapshot_3000.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := SaveSnapshot(tt.snapshot, tmpDir)
			if err != nil {
				t.Fatalf("SaveSnapshot failed: %v", err)
			}
			if want := filepath.Join(tmpDir, tt.want); path != want {
				t.Errorf("path = %s, want %s", path, want)
			}
		})
	}
}

func TestLoadSnapshotRejectsOtherVersions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "frame": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected a version error")
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

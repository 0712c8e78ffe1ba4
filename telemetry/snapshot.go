package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the page state at one frame, for inspecting a run after
// the fact.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Frame   int     `json:"frame"`
	TimeSec float64 `json:"time"`

	ViewportWidth  float32 `json:"viewport_width"`
	ViewportHeight float32 `json:"viewport_height"`
	PageHeight     float32 `json:"page_height"`
	ScrollY        float32 `json:"scroll_y"`

	IsMobile      bool    `json:"mobile"`
	ReducedMotion bool    `json:"reduced_motion"`
	ParticleCount int     `json:"particles"`
	RotationX     float32 `json:"rotation_x"`
	RotationY     float32 `json:"rotation_y"`

	Sections []SectionSnapshot `json:"sections"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SectionSnapshot holds one section's reveal state.
type SectionSnapshot struct {
	Name     string            `json:"name"`
	Top      float32           `json:"top"`
	Height   float32           `json:"height"`
	Phase    string            `json:"phase"`
	Fired    int               `json:"fired"`
	Elements []ElementSnapshot `json:"elements"`
	Meters   []MeterSnapshot   `json:"meters,omitempty"`
}

// MeterSnapshot holds one skill meter's fill.
type MeterSnapshot struct {
	Label   string  `json:"label"`
	Level   float32 `json:"level"`
	Value   float32 `json:"value"`
	Counter int     `json:"counter"`
}

// ElementSnapshot holds one element's current style.
type ElementSnapshot struct {
	Text    string  `json:"text"`
	Opacity float32 `json:"opacity"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Scale   float32 `json:"scale"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Frame, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}

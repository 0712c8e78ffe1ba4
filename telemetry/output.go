package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/folio/config"
)

// OutputManager handles run output with CSV logging.
type OutputManager struct {
	dir        string
	framesFile *os.File
	perfFile   *os.File
	eventsFile *os.File

	// Track if headers have been written
	framesHeaderWritten bool
	perfHeaderWritten   bool
	eventsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	var err error
	if om.framesFile, err = os.Create(filepath.Join(dir, "frames.csv")); err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	if om.perfFile, err = os.Create(filepath.Join(dir, "perf.csv")); err != nil {
		om.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	if om.eventsFile, err = os.Create(filepath.Join(dir, "reveals.csv")); err != nil {
		om.Close()
		return nil, fmt.Errorf("creating reveals.csv: %w", err)
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFrameStats writes a window stats record to frames.csv.
func (om *OutputManager) WriteFrameStats(stats FrameStats) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.framesFile, []FrameStats{stats}, &om.framesHeaderWritten); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	if err := writeRows(om.perfFile, []PerfStatsCSV{stats.ToCSV(windowEnd)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteEvents appends events to reveals.csv.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	if err := writeRows(om.eventsFile, events, &om.eventsHeaderWritten); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// writeRows marshals rows, emitting the header only on the first call.
func writeRows[T any](f *os.File, rows []T, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.framesFile, om.perfFile, om.eventsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

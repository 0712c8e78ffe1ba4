package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/folio/config"
	"github.com/pthm-cable/folio/device"
	"github.com/pthm-cable/folio/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, auto-scrolling the page")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Save a page snapshot for every bookmarked window into this directory")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = until the page is fully revealed in headless mode)")
	reducedMotion := flag.Bool("reduced-motion", false, "Force the reduced-motion policy")
	userAgent := flag.String("user-agent", "", "User agent used for device classification (empty = use config)")
	detectDisplay := flag.Bool("detect-display", false, "Size the viewport from the X11 screen")
	width := flag.Int("width", 0, "Viewport width (0 = use config)")
	height := flag.Int("height", 0, "Viewport height (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	w, h := cfg.Screen.Width, cfg.Screen.Height
	if *detectDisplay || cfg.Device.DetectDisplay {
		sw, sh, err := device.DetectDisplay()
		if err != nil {
			slog.Warn("display detection failed, using configured size", "error", err)
		} else {
			w, h = min(w, sw), min(h, sh)
			slog.Info("display detected", "screen_width", sw, "screen_height", sh)
		}
	}
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}

	opts := scene.Options{
		Config:        cfg,
		Seed:          rngSeed,
		Headless:      *headless,
		ReducedMotion: *reducedMotion,
		UserAgent:     *userAgent,
		Width:         w,
		Height:        h,
		OutputDir:     *outputDir,
		SnapshotDir:   *snapshotDir,
		LogStats:      *logStats,
	}

	if *headless {
		// Headless mode - fixed timestep, no raylib window
		s, err := scene.New(opts)
		if err != nil {
			slog.Error("failed to build scene", "error", err)
			os.Exit(1)
		}
		defer s.Unload()

		fps := cfg.Screen.TargetFPS
		if fps <= 0 {
			fps = 60
		}
		dt := 1 / float32(fps)

		slog.Info("starting headless run",
			"seed", rngSeed,
			"width", w,
			"height", h,
			"max_frames", *maxFrames,
		)

		for {
			s.UpdateHeadless(dt)

			if *maxFrames > 0 && s.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", s.Frame())
				return
			}
			if *maxFrames == 0 && s.Finished() {
				slog.Info("page fully revealed", "frame", s.Frame())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := scene.New(opts)
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		return
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		s.Update(rl.GetFrameTime())
		s.Draw()

		if *maxFrames > 0 && s.Frame() >= *maxFrames {
			break
		}
	}
}

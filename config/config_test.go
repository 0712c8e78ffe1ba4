package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Particles.Radius != 1.5 {
		t.Errorf("radius = %v, want 1.5", cfg.Particles.Radius)
	}
	if cfg.Particles.Mobile.Count >= cfg.Particles.Desktop.Count {
		t.Errorf("mobile count %d should be below desktop count %d",
			cfg.Particles.Mobile.Count, cfg.Particles.Desktop.Count)
	}
	if cfg.Device.Breakpoint != 768 {
		t.Errorf("breakpoint = %d, want 768", cfg.Device.Breakpoint)
	}
	if len(cfg.Derived.SectionTops) != len(cfg.Page.Sections) {
		t.Fatalf("expected %d section tops, got %d", len(cfg.Page.Sections), len(cfg.Derived.SectionTops))
	}
	if cfg.Derived.HeroHeight != float32(cfg.Screen.Height) {
		t.Errorf("hero height = %v, want screen height %d", cfg.Derived.HeroHeight, cfg.Screen.Height)
	}
}

func TestDerivedSectionLayout(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	// Sections must be stacked top to bottom without overlap
	for i := 1; i < len(cfg.Derived.SectionTops); i++ {
		prevBottom := cfg.Derived.SectionTops[i-1] + float32(cfg.Page.Sections[i-1].Height)
		if cfg.Derived.SectionTops[i] < prevBottom {
			t.Errorf("section %d top %v overlaps previous bottom %v", i, cfg.Derived.SectionTops[i], prevBottom)
		}
	}
	last := len(cfg.Page.Sections) - 1
	bottom := cfg.Derived.SectionTops[last] + float32(cfg.Page.Sections[last].Height)
	if cfg.Derived.PageHeight < bottom {
		t.Errorf("page height %v shorter than last section bottom %v", cfg.Derived.PageHeight, bottom)
	}
}

func TestVariantScaleDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	v := cfg.Variants["fade_up"]
	if v.Hidden.Scale != 1 || v.Visible.Scale != 1 {
		t.Errorf("expected unscaled fade_up, got hidden %v visible %v", v.Hidden.Scale, v.Visible.Scale)
	}
	if p := cfg.Variants["pop"]; p.Hidden.Scale != 0.8 {
		t.Errorf("pop hidden scale = %v, want 0.8", p.Hidden.Scale)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("rotation:\n  mobile_policy: freeze\nreduced_motion:\n  enabled: true\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}
	if cfg.Rotation.MobilePolicy != "freeze" {
		t.Errorf("mobile policy = %q, want freeze", cfg.Rotation.MobilePolicy)
	}
	if !cfg.ReducedMotion.Enabled {
		t.Error("expected reduced motion enabled by overlay")
	}
	// Untouched fields keep their defaults
	if cfg.Rotation.XDivisor != 10 {
		t.Errorf("x divisor = %v, want default 10", cfg.Rotation.XDivisor)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero radius", func(c *Config) { c.Particles.Radius = 0 }},
		{"negative count", func(c *Config) { c.Particles.Mobile.Count = -1 }},
		{"bad policy", func(c *Config) { c.Rotation.MobilePolicy = "spin" }},
		{"threshold above one", func(c *Config) { c.Reveal.Threshold = 1.5 }},
		{"unknown variant", func(c *Config) { c.Page.Sections[0].Variant = "nope" }},
		{"zero auto scroll", func(c *Config) { c.Reveal.AutoScroll = 0 }},
		{"negative auto scroll", func(c *Config) { c.Reveal.AutoScroll = -240 }},
		{"zero scroll speed", func(c *Config) { c.Reveal.ScrollSpeed = 0 }},
		{"section threshold above one", func(c *Config) { c.Page.Sections[0].Threshold = 2 }},
		{"level above 100", func(c *Config) { c.Page.Sections[1].Levels[0] = 120 }},
		{"more levels than items", func(c *Config) { c.Page.Sections[1].Levels = make([]float64, 20) }},
		{"unknown meter variant", func(c *Config) { c.Page.Sections[1].Meter = "nope" }},
		{"unknown hero variant", func(c *Config) { c.Page.Hero.Variant = "nope" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load defaults: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if again.Particles.Desktop.Count != cfg.Particles.Desktop.Count {
		t.Errorf("desktop count %d != %d after roundtrip", again.Particles.Desktop.Count, cfg.Particles.Desktop.Count)
	}
}

func TestLoadRejectsStalledAutoScroll(t *testing.T) {
	for _, v := range []string{"0", "-240"} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := []byte("reveal:\n  auto_scroll: " + v + "\n")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("auto_scroll %s: Load() = %v, want ErrInvalid", v, err)
		}
	}
}

func TestSectionThresholds(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	want := map[string]float64{
		"about": 0.3, "skills": 0.3, "services": 0.2,
		"projects": 0.2, "contact": 0.3, "footer": 0.5,
	}
	for i, s := range cfg.Page.Sections {
		if got := cfg.SectionThreshold(i); got != want[s.Name] {
			t.Errorf("%s threshold = %v, want %v", s.Name, got, want[s.Name])
		}
	}

	cfg.Page.Sections[0].Threshold = 0
	if got := cfg.SectionThreshold(0); got != cfg.Reveal.Threshold {
		t.Errorf("unset threshold = %v, want reveal.threshold %v", got, cfg.Reveal.Threshold)
	}
	if got := cfg.HeroThreshold(); got != cfg.Reveal.Threshold {
		t.Errorf("hero threshold = %v, want reveal.threshold %v", got, cfg.Reveal.Threshold)
	}
}

func TestProjectsTiming(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	v := cfg.Variants[cfg.Page.Sections[3].Variant]
	if v.Transition.Duration != 1 || v.Transition.Stagger != 0.3 {
		t.Errorf("projects transition = %+v, want duration 1 stagger 0.3", v.Transition)
	}
	if m := cfg.Variants[cfg.Page.Sections[1].Meter]; m.Hidden.Value != 0 || m.Visible.Value != 1 {
		t.Errorf("meter variant = %+v", m)
	}
}

// Package config provides configuration loading and access for the page.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration parameters.
type Config struct {
	Screen        ScreenConfig             `yaml:"screen"`
	Particles     ParticlesConfig          `yaml:"particles"`
	Rotation      RotationConfig           `yaml:"rotation"`
	Device        DeviceConfig             `yaml:"device"`
	Reveal        RevealConfig             `yaml:"reveal"`
	ReducedMotion ReducedMotionConfig      `yaml:"reduced_motion"`
	Variants      map[string]VariantConfig `yaml:"variants"`
	Page          PageConfig               `yaml:"page"`
	Telemetry     TelemetryConfig          `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// QualityConfig holds the particle budget for one device class.
type QualityConfig struct {
	Count     int     `yaml:"count"`
	PointSize float64 `yaml:"point_size"` // Rendered point radius in pixels
}

// ParticlesConfig holds particle field parameters.
type ParticlesConfig struct {
	Radius  float64       `yaml:"radius"`
	Desktop QualityConfig `yaml:"desktop"`
	Mobile  QualityConfig `yaml:"mobile"`
	Shimmer float64       `yaml:"shimmer"` // Per-point brightness noise amplitude [0, 1]
	Color   [3]uint8      `yaml:"color"`
}

// RotationConfig holds per-frame rotation parameters.
type RotationConfig struct {
	XDivisor     float64 `yaml:"x_divisor"`     // rotationX -= dt / XDivisor
	YDivisor     float64 `yaml:"y_divisor"`     // rotationY -= dt / YDivisor
	MobileSpeed  float64 `yaml:"mobile_speed"`  // Speed multiplier on mobile
	MobilePolicy string  `yaml:"mobile_policy"` // "slow" or "freeze"
}

// DeviceConfig holds device classification parameters.
type DeviceConfig struct {
	Breakpoint       int      `yaml:"breakpoint"`        // Widths below this are mobile
	UserAgent        string   `yaml:"user_agent"`        // Reported user agent (empty = none)
	MobileSignatures []string `yaml:"mobile_signatures"` // Case-insensitive regexps
	DetectDisplay    bool     `yaml:"detect_display"`    // Seed viewport width from the X11 screen
}

// RevealConfig holds scroll-reveal defaults.
type RevealConfig struct {
	Threshold   float64 `yaml:"threshold"`
	TriggerOnce bool    `yaml:"trigger_once"`
	ScrollSpeed float64 `yaml:"scroll_speed"` // Pixels per second for keyboard scroll
	AutoScroll  float64 `yaml:"auto_scroll"`  // Pixels per second for headless runs
}

// ReducedMotionConfig holds the reduced-motion fallback.
type ReducedMotionConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Duration float64 `yaml:"duration"` // Upper bound for any transition, seconds
}

// PropertiesConfig is an animatable style snapshot.
type PropertiesConfig struct {
	Opacity float64 `yaml:"opacity"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Scale   float64 `yaml:"scale"`
	Value   float64 `yaml:"value"` // Meter fill fraction
}

// TransitionConfig describes timing for a variant.
type TransitionConfig struct {
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
	Stagger  float64 `yaml:"stagger"`
	Ease     string  `yaml:"ease"`
}

// VariantConfig is a named hidden/visible pair.
type VariantConfig struct {
	Hidden     PropertiesConfig `yaml:"hidden"`
	Visible    PropertiesConfig `yaml:"visible"`
	Transition TransitionConfig `yaml:"transition"`
}

// SectionConfig describes one page section.
type SectionConfig struct {
	Name      string   `yaml:"name"`
	Title     string   `yaml:"title"`
	Height    float64  `yaml:"height"`
	Variant   string   `yaml:"variant"`
	Items     []string `yaml:"items"`
	Threshold float64  `yaml:"threshold"` // 0 = reveal.threshold

	// Levels gives items a percentage drawn as a filling meter and counter.
	// Meter names the variant that animates them.
	Levels []float64 `yaml:"levels"`
	Meter  string    `yaml:"meter"`
}

// HeroConfig holds the text revealed over the particle field.
type HeroConfig struct {
	Title     string   `yaml:"title"`
	Lines     []string `yaml:"lines"`
	Variant   string   `yaml:"variant"`
	Threshold float64  `yaml:"threshold"` // 0 = reveal.threshold
}

// PageConfig holds the page layout.
type PageConfig struct {
	HeroHeight float64         `yaml:"hero_height"` // 0 = screen height
	Hero       HeroConfig      `yaml:"hero"`
	Gap        float64         `yaml:"gap"`
	Margin     float64         `yaml:"margin"`
	Sections   []SectionConfig `yaml:"sections"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds between stats records
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Screen.Width as float32
	ScreenH32   float32 // Screen.Height as float32
	HeroHeight  float32 // Effective hero height
	PageHeight  float32 // Total page height including hero
	SectionTops []float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values that would make the particle field or the
// reveal orchestration meaningless.
func (c *Config) Validate() error {
	if c.Particles.Radius <= 0 {
		return fmt.Errorf("%w: particles.radius must be positive, got %v", ErrInvalid, c.Particles.Radius)
	}
	if c.Particles.Desktop.Count <= 0 || c.Particles.Mobile.Count <= 0 {
		return fmt.Errorf("%w: particle counts must be positive (desktop %d, mobile %d)",
			ErrInvalid, c.Particles.Desktop.Count, c.Particles.Mobile.Count)
	}
	if c.Rotation.XDivisor <= 0 || c.Rotation.YDivisor <= 0 {
		return fmt.Errorf("%w: rotation divisors must be positive", ErrInvalid)
	}
	switch c.Rotation.MobilePolicy {
	case "slow", "freeze":
	default:
		return fmt.Errorf("%w: rotation.mobile_policy %q (want slow or freeze)", ErrInvalid, c.Rotation.MobilePolicy)
	}
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("%w: reveal.threshold %v outside [0, 1]", ErrInvalid, c.Reveal.Threshold)
	}
	// A stalled auto-scroll never reaches the bottom, so headless runs would not end
	if c.Reveal.AutoScroll <= 0 {
		return fmt.Errorf("%w: reveal.auto_scroll must be positive, got %v", ErrInvalid, c.Reveal.AutoScroll)
	}
	if c.Reveal.ScrollSpeed <= 0 {
		return fmt.Errorf("%w: reveal.scroll_speed must be positive, got %v", ErrInvalid, c.Reveal.ScrollSpeed)
	}

	if h := c.Page.Hero; h.Title != "" || len(h.Lines) > 0 {
		if _, ok := c.Variants[h.Variant]; !ok {
			return fmt.Errorf("%w: hero uses unknown variant %q", ErrInvalid, h.Variant)
		}
		if h.Threshold < 0 || h.Threshold > 1 {
			return fmt.Errorf("%w: hero threshold %v outside [0, 1]", ErrInvalid, h.Threshold)
		}
	}

	for _, s := range c.Page.Sections {
		if s.Height <= 0 {
			return fmt.Errorf("%w: section %q has non-positive height", ErrInvalid, s.Name)
		}
		if _, ok := c.Variants[s.Variant]; !ok {
			return fmt.Errorf("%w: section %q uses unknown variant %q", ErrInvalid, s.Name, s.Variant)
		}
		if s.Threshold < 0 || s.Threshold > 1 {
			return fmt.Errorf("%w: section %q threshold %v outside [0, 1]", ErrInvalid, s.Name, s.Threshold)
		}
		if len(s.Levels) == 0 {
			continue
		}
		if len(s.Levels) > len(s.Items) {
			return fmt.Errorf("%w: section %q has %d levels for %d items", ErrInvalid, s.Name, len(s.Levels), len(s.Items))
		}
		if _, ok := c.Variants[s.Meter]; !ok {
			return fmt.Errorf("%w: section %q uses unknown meter variant %q", ErrInvalid, s.Name, s.Meter)
		}
		for _, l := range s.Levels {
			if l < 0 || l > 100 {
				return fmt.Errorf("%w: section %q level %v outside [0, 100]", ErrInvalid, s.Name, l)
			}
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	hero := c.Page.HeroHeight
	if hero == 0 {
		hero = float64(c.Screen.Height)
	}
	c.Derived.HeroHeight = float32(hero)

	// Sections stack below the hero separated by Gap
	y := hero + c.Page.Gap
	c.Derived.SectionTops = make([]float32, len(c.Page.Sections))
	for i, s := range c.Page.Sections {
		c.Derived.SectionTops[i] = float32(y)
		y += s.Height + c.Page.Gap
	}
	c.Derived.PageHeight = float32(y + c.Page.Margin)

	// Scale 0 in a variant means "unscaled"
	for name, v := range c.Variants {
		if v.Hidden.Scale == 0 {
			v.Hidden.Scale = 1
		}
		if v.Visible.Scale == 0 {
			v.Visible.Scale = 1
		}
		c.Variants[name] = v
	}
}

// HeroThreshold returns the effective reveal threshold for the hero text.
func (c *Config) HeroThreshold() float64 {
	if t := c.Page.Hero.Threshold; t > 0 {
		return t
	}
	return c.Reveal.Threshold
}

// SectionThreshold returns the effective reveal threshold for a section.
func (c *Config) SectionThreshold(i int) float64 {
	if t := c.Page.Sections[i].Threshold; t > 0 {
		return t
	}
	return c.Reveal.Threshold
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

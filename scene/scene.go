// Package scene composes the landing page: the hero particle field, the
// content sections and the reveal orchestration driven by one frame loop.
package scene

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/folio/config"
	"github.com/pthm-cable/folio/device"
	"github.com/pthm-cable/folio/motion"
	"github.com/pthm-cable/folio/particles"
	"github.com/pthm-cable/folio/renderer"
	"github.com/pthm-cable/folio/telemetry"
	"github.com/pthm-cable/folio/ui"
	"github.com/pthm-cable/folio/viewport"
)

// heroName labels hero reveal events.
const heroName = "hero"

// MobileUserAgent is reported while the HUD simulates a phone.
const MobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148"

// Section content layout, in pixels from the section top.
const (
	titleOffset = 40
	itemsOffset = 110
	itemSpacing = 40
)

// Hero copy layout, in pixels from the hero's vertical center.
const (
	heroTitleOffset = -60
	heroLinesOffset = 10
	heroLineSpacing = 40
)

// Options configures a Scene.
type Options struct {
	Config        *config.Config // nil = config.Cfg()
	Seed          int64
	Headless      bool
	ReducedMotion bool   // Forces reduced motion on
	UserAgent     string // Overrides device.user_agent when set
	Width, Height int    // Initial viewport size, 0 = screen size
	OutputDir     string
	SnapshotDir   string // Bookmarked frames are saved here when set
	LogStats      bool
}

// Scene holds the complete page state.
type Scene struct {
	cfg *config.Config
	rng *rand.Rand

	world         *ecs.World
	sectionMap    *ecs.Map3[Section, Bounds, Reveal]
	sectionFilter *ecs.Filter3[Section, Bounds, Reveal]
	elementMap    *ecs.Map2[Element, Style]
	elementFilter *ecs.Filter2[Element, Style]
	sectionInfo   *ecs.Map1[Section]
	boundsMap     *ecs.Map1[Bounds]
	styleMap      *ecs.Map1[Style]
	revealMap     *ecs.Map1[Reveal]
	meterMap      *ecs.Map1[Meter]
	meterFilter   *ecs.Filter1[Meter]
	heroMap       *ecs.Map2[HeroText, Style]
	heroFilter    *ecs.Filter2[HeroText, Style]
	heroReveal    *motion.RevealTarget

	loop      *FrameLoop
	teardown  []func()
	view      *viewport.Viewport
	observer  *viewport.Observer
	scheduler *motion.Scheduler
	scope     *motion.Scope
	variants  *motion.Registry

	resize    *device.ResizeBus
	watcher   *device.Watcher
	userAgent string
	simMobile bool

	field *particles.Field

	// Telemetry
	perf        *telemetry.PerfCollector
	collector   *telemetry.Collector
	output      *telemetry.OutputManager
	bookmarks   *telemetry.BookmarkDetector
	snapshotDir string
	logStats    bool

	// Rendering (nil when headless)
	particleRenderer *renderer.ParticleRenderer
	background       *renderer.GradientBackground
	sectionRenderer  *renderer.SectionRenderer
	hud              *ui.HUD
	perfPanel        *ui.PerfPanel
	controls         *ui.ControlsPanel
	overlays         *ui.OverlayRegistry

	seed     int64
	headless bool
	lastDT   float32
	elapsed  float64
	frame    int
	unloaded bool
}

// SectionState is a read-only view of one section's reveal progress.
type SectionState struct {
	Name     string
	Phase    motion.Phase
	Fired    int
	Progress float32
}

// New creates a scene from opts.
func New(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Screen.Width, cfg.Screen.Height
	}
	ua := cfg.Device.UserAgent
	if opts.UserAgent != "" {
		ua = opts.UserAgent
	}

	classifier, err := device.NewClassifier(cfg.Device.Breakpoint, cfg.Device.MobileSignatures)
	if err != nil {
		return nil, fmt.Errorf("device classifier: %w", err)
	}
	variants, err := motion.RegistryFromConfig(cfg.Variants)
	if err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}

	world := ecs.NewWorld()
	s := &Scene{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		world:         world,
		sectionMap:    ecs.NewMap3[Section, Bounds, Reveal](world),
		sectionFilter: ecs.NewFilter3[Section, Bounds, Reveal](world),
		elementMap:    ecs.NewMap2[Element, Style](world),
		elementFilter: ecs.NewFilter2[Element, Style](world),
		sectionInfo:   ecs.NewMap1[Section](world),
		boundsMap:     ecs.NewMap1[Bounds](world),
		styleMap:      ecs.NewMap1[Style](world),
		revealMap:     ecs.NewMap1[Reveal](world),
		meterMap:      ecs.NewMap1[Meter](world),
		meterFilter:   ecs.NewFilter1[Meter](world),
		heroMap:       ecs.NewMap2[HeroText, Style](world),
		heroFilter:    ecs.NewFilter2[HeroText, Style](world),
		loop:          NewFrameLoop(),
		view:          viewport.New(float32(width), float32(height), cfg.Derived.PageHeight),
		observer:      viewport.NewObserver(),
		variants:      variants,
		resize:        device.NewResizeBus(),
		userAgent:     ua,
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		bookmarks:     telemetry.NewBookmarkDetector(10),
		snapshotDir:   opts.SnapshotDir,
		logStats:      opts.LogStats,
		seed:          opts.Seed,
		headless:      opts.Headless,
	}

	s.scheduler = motion.NewScheduler(motion.ReducedMotion{
		Active:   opts.ReducedMotion || cfg.ReducedMotion.Enabled,
		Duration: float32(cfg.ReducedMotion.Duration),
	})
	s.scope = s.scheduler.NewScope()

	s.watcher = device.NewWatcher(classifier, s.resize, ua, width, height)
	s.watcher.OnChange(s.handleProfileChange)

	s.field = particles.NewField(particles.FieldOptions{
		Radius: float32(cfg.Particles.Radius),
		Desktop: particles.Quality{
			Count:     cfg.Particles.Desktop.Count,
			PointSize: float32(cfg.Particles.Desktop.PointSize),
		},
		Mobile: particles.Quality{
			Count:     cfg.Particles.Mobile.Count,
			PointSize: float32(cfg.Particles.Mobile.PointSize),
		},
		Rotator: particles.Rotator{
			XDivisor:    float32(cfg.Rotation.XDivisor),
			YDivisor:    float32(cfg.Rotation.YDivisor),
			MobileSpeed: float32(cfg.Rotation.MobileSpeed),
			Policy:      particles.ParseMobilePolicy(cfg.Rotation.MobilePolicy),
		},
	}, s.watcher.Profile(), s.rng)

	if err := s.spawnHero(); err != nil {
		s.Unload()
		return nil, err
	}
	if err := s.spawnSections(); err != nil {
		s.Unload()
		return nil, err
	}

	// Animation runs before visibility so a reveal triggered this frame
	// starts advancing on the next one.
	s.loop.SetPhaseHook(s.perf.StartPhase)
	s.teardown = append(s.teardown,
		s.loop.Register(telemetry.PhaseRotation, s.field.Update),
		s.loop.Register(telemetry.PhaseAnimation, s.scheduler.Tick),
		s.loop.Register(telemetry.PhaseVisibility, func(float32) { s.observer.Update(s.view) }),
	)

	s.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		s.Unload()
		return nil, err
	}
	if err := s.output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	if !s.headless {
		s.initRendering(int32(width), int32(height), opts.Seed)
	}

	slog.Info("scene ready",
		"sections", len(cfg.Page.Sections),
		"page_height", cfg.Derived.PageHeight,
		"profile", s.watcher.Profile(),
		"reduced_motion", s.scheduler.ReducedMotion().Active,
		"headless", s.headless,
	)
	return s, nil
}

// spawnSections creates one entity per section and per text element, and
// binds each section to a RevealTarget and an Observer subscription.
func (s *Scene) spawnSections() error {
	cfg := s.cfg
	for i, sc := range cfg.Page.Sections {
		v, err := s.variants.Lookup(sc.Variant)
		if err != nil {
			return fmt.Errorf("section %q: %w", sc.Name, err)
		}

		sec := Section{Index: i, Name: sc.Name, Title: sc.Title, Variant: sc.Variant}
		bounds := Bounds{Top: cfg.Derived.SectionTops[i], Height: float32(sc.Height)}
		entity := s.sectionMap.NewEntity(&sec, &bounds, &Reveal{})

		// Elements start hidden until their section is first revealed
		hidden := s.scheduler.ReducedMotion().Apply(v).Hidden
		targets := make([]motion.Target, 0, len(sc.Items)+1)
		targets = append(targets, s.spawnElement(entity, 0, KindTitle, sc.Title, titleOffset, hidden))
		for j, item := range sc.Items {
			targets = append(targets, s.spawnElement(entity, j+1, KindItem, item, itemsOffset+float32(j)*itemSpacing, hidden))
		}

		threshold := float32(cfg.SectionThreshold(i))
		triggerOnce := cfg.Reveal.TriggerOnce
		rt := motion.NewRevealTarget(s.scheduler, s.scope, v, threshold, triggerOnce, targets...)
		name := sc.Name
		rt.OnPhase(func(p motion.Phase) { s.recordPhase(name, rt, p) })

		// Meters fill on their own timeline, triggered with the section
		var meters *motion.RevealTarget
		if len(sc.Levels) > 0 {
			mv, err := s.variants.Lookup(sc.Meter)
			if err != nil {
				return fmt.Errorf("section %q meter: %w", sc.Name, err)
			}
			mts := make([]motion.Target, len(sc.Levels))
			for j, level := range sc.Levels {
				m := Meter{Section: entity, Index: j, Label: sc.Items[j], Level: float32(level)}
				mts[j] = meterTarget{world: s.world, meters: s.meterMap, entity: s.meterMap.NewEntity(&m)}
			}
			meters = motion.NewRevealTarget(s.scheduler, s.scope, mv, threshold, triggerOnce, mts...)
		}

		sub := s.observer.Observe(s.sectionRect(entity), threshold, triggerOnce, func(c viewport.Change) {
			rt.SetInView(c.InView)
			if meters != nil {
				meters.SetInView(c.InView)
			}
		})

		r := s.revealMap.Get(entity)
		r.Target = rt
		r.Meters = meters
		r.Sub = sub
	}
	return nil
}

// spawnHero creates the hero copy and reveals it while the hero is in
// view, which on a fresh page is the first frame.
func (s *Scene) spawnHero() error {
	hc := s.cfg.Page.Hero
	if hc.Title == "" && len(hc.Lines) == 0 {
		return nil
	}
	v, err := s.variants.Lookup(hc.Variant)
	if err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	hidden := s.scheduler.ReducedMotion().Apply(v).Hidden

	var targets []motion.Target
	spawn := func(text string, title bool, offsetY float32) {
		h := HeroText{Index: len(targets), Text: text, Title: title, OffsetY: offsetY}
		style := Style{Properties: hidden}
		e := s.heroMap.NewEntity(&h, &style)
		targets = append(targets, styleTarget{world: s.world, styles: s.styleMap, entity: e})
	}
	if hc.Title != "" {
		spawn(hc.Title, true, heroTitleOffset)
	}
	for j, line := range hc.Lines {
		spawn(line, false, heroLinesOffset+float32(j)*heroLineSpacing)
	}

	threshold := float32(s.cfg.HeroThreshold())
	rt := motion.NewRevealTarget(s.scheduler, s.scope, v, threshold, s.cfg.Reveal.TriggerOnce, targets...)
	rt.OnPhase(func(p motion.Phase) { s.recordPhase(heroName, rt, p) })
	s.observer.Observe(s.heroRect, threshold, s.cfg.Reveal.TriggerOnce, func(c viewport.Change) {
		rt.SetInView(c.InView)
	})
	s.heroReveal = rt
	return nil
}

func (s *Scene) heroRect() viewport.Rect {
	return viewport.Rect{W: s.view.Width, H: s.cfg.Derived.HeroHeight}
}

func (s *Scene) spawnElement(section ecs.Entity, index int, kind ElementKind, text string, offsetY float32, initial motion.Properties) motion.Target {
	el := Element{Section: section, Index: index, Kind: kind, Text: text, OffsetY: offsetY}
	style := Style{Properties: initial}
	e := s.elementMap.NewEntity(&el, &style)
	return styleTarget{world: s.world, styles: s.styleMap, entity: e}
}

// sectionRect returns the section's page-space rectangle at the current
// viewport width.
func (s *Scene) sectionRect(e ecs.Entity) func() viewport.Rect {
	return func() viewport.Rect {
		b := s.boundsMap.Get(e)
		return viewport.Rect{X: s.view.Width * 0.08, Y: b.Top, W: s.view.Width * 0.84, H: b.Height}
	}
}

// styleTarget writes animated styles into an element entity.
type styleTarget struct {
	world  *ecs.World
	styles *ecs.Map1[Style]
	entity ecs.Entity
}

func (t styleTarget) SetStyle(p motion.Properties) {
	if !t.world.Alive(t.entity) {
		return
	}
	t.styles.Get(t.entity).Properties = p
}

// meterTarget writes only the animated fill into a meter entity.
type meterTarget struct {
	world  *ecs.World
	meters *ecs.Map1[Meter]
	entity ecs.Entity
}

func (t meterTarget) SetStyle(p motion.Properties) {
	if !t.world.Alive(t.entity) {
		return
	}
	t.meters.Get(t.entity).Value = p.Value
}

// Update advances one frame by dt seconds.
func (s *Scene) Update(dt float32) {
	if s.unloaded {
		return
	}
	if dt < 0 {
		dt = 0
	}
	s.lastDT = dt

	s.perf.StartFrame()
	s.perf.StartPhase(telemetry.PhaseDevice)
	if !s.headless {
		s.handleInput(dt)
	}

	s.loop.Tick(dt)
	s.frame++
	s.elapsed += float64(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordFrame(dt)
	s.flushTelemetry()

	if s.headless {
		s.perf.EndFrame()
	}
}

// UpdateHeadless auto-scrolls the page and advances one frame.
func (s *Scene) UpdateHeadless(dt float32) {
	s.view.ScrollBy(float32(s.cfg.Reveal.AutoScroll) * dt)
	s.Update(dt)
}

// Resize propagates a new viewport size to the viewport, the device
// watcher and the renderers.
func (s *Scene) Resize(width, height int) {
	if s.unloaded {
		return
	}
	s.view.Resize(float32(width), float32(height))
	s.resize.Publish(width, height)
	s.resizeRendering(width, height)
}

// SetReducedMotion toggles the reduced-motion policy for future reveals.
func (s *Scene) SetReducedMotion(active bool) {
	s.scheduler.SetReducedMotion(active)
	slog.Info("reduced motion", "active", active)
}

// ReducedMotion reports whether reduced motion is active.
func (s *Scene) ReducedMotion() bool {
	return s.scheduler.ReducedMotion().Active
}

// SimulateMobile reports a phone user agent to the device watcher, or
// restores the configured one.
func (s *Scene) SimulateMobile(on bool) {
	s.simMobile = on
	if on {
		s.watcher.Override(MobileUserAgent)
		return
	}
	s.watcher.Override(s.userAgent)
}

func (s *Scene) handleProfileChange(p device.Profile) {
	s.field.SetProfile(p)
	s.collector.Record(telemetry.NewProfileChangeEvent(s.frame, s.collector.Time(), p.IsMobile))
}

func (s *Scene) recordPhase(name string, rt *motion.RevealTarget, p motion.Phase) {
	var e telemetry.Event
	switch p {
	case motion.PhaseRevealing:
		e = telemetry.NewRevealStartEvent(s.frame, s.collector.Time(), name, rt.Fired())
	case motion.PhaseRevealed:
		e = telemetry.NewRevealCompleteEvent(s.frame, s.collector.Time(), name, rt.Fired())
	default:
		e = telemetry.NewRevealRevertEvent(s.frame, s.collector.Time(), name, rt.Fired())
	}
	s.collector.Record(e)
	slog.Debug("reveal", "section", name, "phase", p.String(), "fired", rt.Fired())
}

// Sections returns reveal state for every section in page order.
func (s *Scene) Sections() []SectionState {
	if s.unloaded {
		return nil
	}
	out := make([]SectionState, len(s.cfg.Page.Sections))
	query := s.sectionFilter.Query()
	for query.Next() {
		sec, _, r := query.Get()
		st := SectionState{Name: sec.Name}
		if r.Target != nil {
			st.Phase = r.Target.Phase()
			st.Fired = r.Target.Fired()
			st.Progress = revealProgress(r.Target)
		}
		out[sec.Index] = st
	}
	return out
}

func revealProgress(rt *motion.RevealTarget) float32 {
	switch rt.Phase() {
	case motion.PhaseRevealed:
		return 1
	case motion.PhaseUnseen:
		return 0
	}
	b := rt.Batch()
	if b == nil || b.End() <= 0 {
		return 0
	}
	p := b.Elapsed() / b.End()
	if p > 1 {
		return 1
	}
	return p
}

// ElementStyles returns the current styles of a section's elements in
// element order, or nil for an unknown section.
func (s *Scene) ElementStyles(section string) []motion.Properties {
	if s.unloaded {
		return nil
	}
	var styles []motion.Properties
	var order []int
	query := s.elementFilter.Query()
	for query.Next() {
		el, st := query.Get()
		if !s.world.Alive(el.Section) || s.sectionInfo.Get(el.Section).Name != section {
			continue
		}
		styles = append(styles, st.Properties)
		order = append(order, el.Index)
	}
	out := make([]motion.Properties, len(styles))
	for i, idx := range order {
		out[idx] = styles[i]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MeterState is a read-only view of one animated skill meter.
type MeterState struct {
	Label   string
	Level   float32 // Target percentage
	Value   float32 // Fill fraction in [0, 1]
	Counter int     // Displayed percentage
}

// Meters returns a section's meters in item order, or nil when the
// section has none.
func (s *Scene) Meters(section string) []MeterState {
	if s.unloaded {
		return nil
	}
	var out []MeterState
	query := s.meterFilter.Query()
	for query.Next() {
		m := query.Get()
		if !s.world.Alive(m.Section) || s.sectionInfo.Get(m.Section).Name != section {
			continue
		}
		for len(out) <= m.Index {
			out = append(out, MeterState{})
		}
		out[m.Index] = MeterState{Label: m.Label, Level: m.Level, Value: m.Value, Counter: m.Counter()}
	}
	return out
}

// HeroStyles returns the current styles of the hero copy, title first.
func (s *Scene) HeroStyles() []motion.Properties {
	if s.unloaded {
		return nil
	}
	var out []motion.Properties
	query := s.heroFilter.Query()
	for query.Next() {
		h, st := query.Get()
		for len(out) <= h.Index {
			out = append(out, motion.Properties{})
		}
		out[h.Index] = st.Properties
	}
	return out
}

// HeroPhase returns the hero copy's reveal phase.
func (s *Scene) HeroPhase() motion.Phase {
	if s.heroReveal == nil {
		return motion.PhaseUnseen
	}
	return s.heroReveal.Phase()
}

// Scheduler returns the reveal scheduler.
func (s *Scene) Scheduler() *motion.Scheduler {
	return s.scheduler
}

// Finished returns true once the page is scrolled to the bottom and no
// reveal is still animating.
func (s *Scene) Finished() bool {
	return s.view.ScrollY >= s.view.MaxScroll() && s.scheduler.Pending() == 0
}

// Viewport returns the page viewport.
func (s *Scene) Viewport() *viewport.Viewport {
	return s.view
}

// Field returns the hero particle field.
func (s *Scene) Field() *particles.Field {
	return s.field
}

// Profile returns the current device profile.
func (s *Scene) Profile() device.Profile {
	return s.watcher.Profile()
}

// Frame returns the number of frames updated.
func (s *Scene) Frame() int {
	return s.frame
}

// Unload tears down every subscription and in-flight animation, then
// releases entities and resources. Safe to call twice.
func (s *Scene) Unload() {
	if s.unloaded {
		return
	}
	s.unloaded = true

	for i := len(s.teardown) - 1; i >= 0; i-- {
		s.teardown[i]()
	}
	s.teardown = nil

	// Cancelling reverts styles, so entities must still exist here
	s.scope.Close()
	s.observer.Close()
	s.watcher.Close()
	s.removeEntities()
	s.unloadRendering()

	if err := s.output.WriteEvents(s.collector.DrainEvents()); err != nil {
		slog.Error("failed to write events", "error", err)
	}
	if err := s.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("scene unloaded", "frames", s.frame)
}

// removeEntities deletes every section, element, meter and hero entity.
func (s *Scene) removeEntities() {
	var sections, elements, meters, hero []ecs.Entity

	query := s.sectionFilter.Query()
	for query.Next() {
		sections = append(sections, query.Entity())
	}
	eq := s.elementFilter.Query()
	for eq.Next() {
		elements = append(elements, eq.Entity())
	}
	mq := s.meterFilter.Query()
	for mq.Next() {
		meters = append(meters, mq.Entity())
	}
	hq := s.heroFilter.Query()
	for hq.Next() {
		hero = append(hero, hq.Entity())
	}

	// Removal happens after all queries are closed
	for _, e := range hero {
		s.heroMap.Remove(e)
	}
	for _, e := range meters {
		s.meterMap.Remove(e)
	}
	for _, e := range elements {
		s.elementMap.Remove(e)
	}
	for _, e := range sections {
		s.sectionMap.Remove(e)
	}
}

package marquee

import "sync"

// Frame is everything a renderer needs to paint one frame.
type Frame struct {
	Phase    Phase
	Position float64
	Plan     TravelPlan
	// Fade is the zero profile (no fade) when the text does not scroll.
	Fade          FadeProfile
	TextWidth     float64
	ViewportWidth float64
	// Offsets lists the x positions, relative to the viewport's left edge,
	// at which the text must be drawn. Loops paint a second copy so the wrap
	// is seamless.
	Offsets []float64
}

// Scroller is the control surface of the engine: it owns the configuration,
// the measured widths, the state machine and the driver, and reports frames
// through the redraw callback.
//
// Scroller is safe for concurrent use. Redraw callbacks must not call Start,
// Stop, Configure or SetMetrics synchronously.
type Scroller struct {
	log    Logger
	driver *Driver

	// serializes Configure, SetMetrics, Start and Stop; ticks never take it,
	// so a time source may tick from inside Driver.Attach
	ctlMu sync.Mutex

	mu            sync.Mutex
	cfg           Config
	textWidth     float64
	viewportWidth float64
	plan          TravelPlan
	machine       *Machine
	fade          fadeCache
	run           uint64
	onRedraw      func(Frame)

	// held while a redraw callback runs so Stop can wait it out
	redrawMu sync.Mutex
}

// NewScroller creates an idle scroller with DefaultConfig. A nil src ticks at
// 60Hz from a background goroutine; a nil log writes through the log package.
func NewScroller(src TimeSource, log Logger) *Scroller {
	if log == nil {
		log = stdLogger{}
	}
	s := &Scroller{
		log:    log,
		driver: NewDriver(src),
		cfg:    DefaultConfig(),
	}
	s.replanLocked()
	return s
}

// OnRedraw sets the callback that receives a frame after every tick.
func (s *Scroller) OnRedraw(fn func(Frame)) {
	s.mu.Lock()
	s.onRedraw = fn
	s.mu.Unlock()
}

// Configure replaces the configuration. Invalid configurations are rejected
// and leave the scroller untouched; valid ones stop any running animation
// and the caller must Start again.
func (s *Scroller) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()
	s.mu.Lock()
	s.stopLocked()
	s.cfg = cfg.Normalized()
	s.replanLocked()
	s.mu.Unlock()
	s.waitRedraw()
	return nil
}

// SetMetrics reports new text and viewport widths. A change stops any
// running animation and recomputes the plan; the caller must Start again.
func (s *Scroller) SetMetrics(textWidth, viewportWidth float64) {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()
	s.mu.Lock()
	if textWidth == s.textWidth && viewportWidth == s.viewportWidth {
		s.mu.Unlock()
		return
	}
	s.stopLocked()
	s.textWidth, s.viewportWidth = textWidth, viewportWidth
	s.replanLocked()
	s.mu.Unlock()
	s.waitRedraw()
}

// Start begins the delay-then-scroll cycle. It is a no-op when the text fits
// or the scroller is already running.
func (s *Scroller) Start() error {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()

	s.mu.Lock()
	if err := s.cfg.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	if !s.machine.Start() {
		s.mu.Unlock()
		return nil
	}
	s.run++
	run := s.run
	s.tracef("marquee: start mode=%s distance=%.1f delay=%.2fs", s.cfg.Mode, s.plan.TotalDistance, s.cfg.StartDelay)
	s.mu.Unlock()

	s.driver.Attach(func(dt float64) { s.tick(run, dt) })
	return nil
}

// Stop returns to Idle with position 0. No redraw callback runs after Stop
// returns. Stopping an idle scroller does nothing.
func (s *Scroller) Stop() {
	s.ctlMu.Lock()
	defer s.ctlMu.Unlock()
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()
	s.waitRedraw()
}

// Running reports whether the scroller is delaying or animating.
func (s *Scroller) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State().Phase != Idle
}

func (s *Scroller) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Scroller) Plan() TravelPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

func (s *Scroller) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

// Metrics returns the last reported text and viewport widths.
func (s *Scroller) Metrics() (textWidth, viewportWidth float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textWidth, s.viewportWidth
}

// Wraps counts loop restarts in the current run.
func (s *Scroller) Wraps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Wraps()
}

// Reversals counts bounce direction flips in the current run.
func (s *Scroller) Reversals() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Reversals()
}

// Frame returns the current frame.
func (s *Scroller) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Scroller) tick(run uint64, dt float64) {
	s.mu.Lock()
	if run != s.run || s.machine.State().Phase == Idle {
		s.mu.Unlock()
		return
	}
	before := s.machine.State().Phase
	s.machine.Tick(dt)
	if after := s.machine.State().Phase; after != before {
		s.tracef("marquee: %s -> %s", before, after)
	}
	f := s.frameLocked()
	cb := s.onRedraw
	s.redrawMu.Lock()
	s.mu.Unlock()

	if cb != nil {
		cb(f)
	}
	s.redrawMu.Unlock()
}

func (s *Scroller) stopLocked() {
	if s.machine != nil && s.machine.State().Phase != Idle {
		s.tracef("marquee: %s -> %s", s.machine.State().Phase, Idle)
	}
	s.run++
	s.driver.Detach()
	if s.machine != nil {
		s.machine.Stop()
	}
}

func (s *Scroller) replanLocked() {
	plan, err := ComputeTravelPlan(s.textWidth, s.viewportWidth, s.cfg)
	if err != nil {
		// unreachable while Configure validates; keep the engine static
		s.log.Printf("marquee: %v", err)
		plan = TravelPlan{Mode: s.cfg.Mode}
	}
	s.plan = plan
	s.machine = NewMachine(plan, s.cfg)
	s.tracef("marquee: plan text=%.1f viewport=%.1f mode=%s segment=%.1f", s.textWidth, s.viewportWidth, s.cfg.Mode, plan.SegmentLength)
}

func (s *Scroller) waitRedraw() {
	// empty critical section: returns once an in-flight redraw finishes
	s.redrawMu.Lock()
	s.redrawMu.Unlock()
}

func (s *Scroller) frameLocked() Frame {
	st := s.machine.State()
	f := Frame{
		Phase:         st.Phase,
		Position:      st.Position,
		Plan:          s.plan,
		TextWidth:     s.textWidth,
		ViewportWidth: s.viewportWidth,
	}
	if s.plan.Scrolls() {
		f.Fade = s.fade.get(s.cfg.FadeLength, s.viewportWidth)
	}
	f.Offsets = textOffsets(s.plan, st.Position, s.textWidth, s.viewportWidth, s.cfg.Alignment)
	return f
}

// textOffsets maps a machine position to the screen x of each text copy.
func textOffsets(plan TravelPlan, pos, textWidth, viewportWidth float64, align Alignment) []float64 {
	if !plan.Scrolls() {
		switch align {
		case AlignCenter:
			return []float64{(viewportWidth - textWidth) / 2}
		case AlignTrailing:
			return []float64{viewportWidth - textWidth}
		default:
			return []float64{0}
		}
	}
	seg := plan.SegmentLength
	if plan.Loop {
		return []float64{pos, pos - float64(plan.Direction)*seg}
	}
	if plan.Mode == LeftToRightBounce {
		return []float64{-(seg - pos)}
	}
	return []float64{-pos}
}

func (s *Scroller) tracef(format string, args ...any) {
	if isTraceLoggingEnabled() {
		s.log.Printf(format, args...)
	}
}

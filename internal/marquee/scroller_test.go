package marquee

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

type testLogger struct {
	mu    sync.Mutex
	lines int
}

func (l *testLogger) Printf(string, ...any) {
	l.mu.Lock()
	l.lines++
	l.mu.Unlock()
}

func newTestScroller(t *testing.T, cfg Config, text, viewport float64) (*Scroller, *ManualSource) {
	t.Helper()
	src := NewManualSource(time.Time{})
	s := NewScroller(src, &testLogger{})
	if err := s.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	s.SetMetrics(text, viewport)
	return s, src
}

func TestScrollerForwardLoopScenario(t *testing.T) {
	s, src := newTestScroller(t, Config{Mode: ForwardLoop, Rate: 50, TailBlankLength: 20, StartDelay: 1}, 300, 100)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.Step(100*time.Millisecond, 10)
	if s.State().Phase != Animating {
		t.Fatalf("want %s after delay, got %s", Animating, s.State().Phase)
	}
	src.Step(100*time.Millisecond, 64)
	if got := s.Wraps(); got != 1 {
		t.Fatalf("want one wrap, got %d", got)
	}
	if got := s.State().Position; math.Abs(got) > 1e-9 {
		t.Fatalf("want position ~0, got %v", got)
	}
}

func TestScrollerLeftToRightBounceScenario(t *testing.T) {
	s, src := newTestScroller(t, Config{Mode: LeftToRightBounce, Rate: 25, StartDelay: 1}, 150, 100)
	_ = s.Start()
	src.Step(100*time.Millisecond, 10)
	src.Step(100*time.Millisecond, 20)
	if got := s.Reversals(); got != 1 {
		t.Fatalf("want one reversal, got %d", got)
	}
	f := s.Frame()
	if f.Position != 50 {
		t.Fatalf("want position 50, got %v", f.Position)
	}
	if len(f.Offsets) != 1 || f.Offsets[0] != 0 {
		t.Fatalf("want head aligned offset 0, got %v", f.Offsets)
	}
}

func TestScrollerStartNoopWhenFits(t *testing.T) {
	s, src := newTestScroller(t, DefaultConfig(), 80, 100)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Running() || src.Running() {
		t.Fatal("nothing should run when text fits")
	}
	f := s.Frame()
	if f.Plan.TotalDistance != 0 || f.Fade != (FadeProfile{}) {
		t.Fatalf("unexpected static frame %+v", f)
	}
}

func TestScrollerRoundTrip(t *testing.T) {
	s, src := newTestScroller(t, Config{Mode: RightToLeftBounce, Rate: 60, StartDelay: 0.2}, 400, 100)
	redraws := 0
	s.OnRedraw(func(Frame) { redraws++ })
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.Step(50*time.Millisecond, 20)
	if redraws == 0 {
		t.Fatal("expected redraws while running")
	}
	s.Stop()
	st := s.State()
	if st.Phase != Idle || st.Position != 0 {
		t.Fatalf("want idle at 0, got %+v", st)
	}
	if src.Running() {
		t.Fatal("time source still attached after Stop")
	}
	before := redraws
	src.Step(50*time.Millisecond, 5)
	if redraws != before {
		t.Fatalf("redraw after Stop: %d -> %d", before, redraws)
	}

	s.Stop()
	if st := s.State(); st.Phase != Idle || st.Position != 0 {
		t.Fatalf("second Stop changed state: %+v", st)
	}
}

func TestScrollerReconfigureResets(t *testing.T) {
	s, src := newTestScroller(t, Config{Mode: ForwardLoop, Rate: 40}, 300, 100)
	_ = s.Start()
	src.Step(100*time.Millisecond, 10)
	if s.State().Position == 0 {
		t.Fatal("expected motion")
	}

	s.SetMetrics(300, 120)
	if s.Running() || s.State().Position != 0 {
		t.Fatalf("resize should stop the run, got %+v", s.State())
	}
	if got := s.Plan().SegmentLength; got != 300 {
		t.Fatalf("want segment 300, got %v", got)
	}

	_ = s.Start()
	src.Step(100*time.Millisecond, 3)
	if err := s.Configure(Config{Mode: BackwardLoop, Rate: 10, TailBlankLength: 5}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if s.Running() {
		t.Fatal("Configure should stop the run")
	}
	if p := s.Plan(); p.Direction != 1 || p.SegmentLength != 305 {
		t.Fatalf("unexpected plan %+v", p)
	}

	// unchanged metrics keep the run alive
	_ = s.Start()
	s.SetMetrics(300, 120)
	if !s.Running() {
		t.Fatal("identical metrics should not stop the run")
	}
}

func TestScrollerRejectsInvalidConfig(t *testing.T) {
	s, _ := newTestScroller(t, Config{Mode: BackwardLoop, Rate: 20, FadeLength: 6}, 300, 100)
	err := s.Configure(Config{Mode: ForwardLoop, Rate: 0})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("want ErrInvalidConfig, got %v", err)
	}
	if got := s.Config(); got.Mode != BackwardLoop || got.Rate != 20 {
		t.Fatalf("config changed after rejection: %+v", got)
	}
	if s.Running() {
		t.Fatal("rejected config must leave the scroller idle")
	}
}

func TestScrollerClampsCosmeticTunables(t *testing.T) {
	s, _ := newTestScroller(t, Config{Mode: ForwardLoop, Rate: 20, FadeLength: -4, TailBlankLength: -9, StartDelay: -2}, 300, 100)
	cfg := s.Config()
	if cfg.FadeLength != 0 || cfg.TailBlankLength != 0 || cfg.StartDelay != 0 {
		t.Fatalf("want clamped tunables, got %+v", cfg)
	}
}

func TestScrollerFrameOffsets(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		text  float64
		ticks int
		want  []float64
	}{
		{name: "forward loop", cfg: Config{Mode: ForwardLoop, Rate: 10, TailBlankLength: 50}, text: 250, ticks: 10, want: []float64{-10, 290}},
		{name: "backward loop", cfg: Config{Mode: BackwardLoop, Rate: 10, TailBlankLength: 50}, text: 250, ticks: 10, want: []float64{10, -290}},
		{name: "right to left", cfg: Config{Mode: RightToLeftBounce, Rate: 10}, text: 250, ticks: 10, want: []float64{-10}},
		{name: "left to right", cfg: Config{Mode: LeftToRightBounce, Rate: 10}, text: 250, ticks: 10, want: []float64{-140}},
		{name: "static center", cfg: Config{Mode: ForwardLoop, Rate: 10, Alignment: AlignCenter}, text: 60, want: []float64{20}},
		{name: "static trailing", cfg: Config{Mode: ForwardLoop, Rate: 10, Alignment: AlignTrailing}, text: 60, want: []float64{40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, src := newTestScroller(t, tt.cfg, tt.text, 100)
			_ = s.Start()
			src.Advance(10 * time.Millisecond) // leaves the zero delay
			src.Step(100*time.Millisecond, tt.ticks)
			got := s.Frame().Offsets
			if len(got) != len(tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("want %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestScrollerTraceLogging(t *testing.T) {
	SetTraceLoggingEnabled(true)
	defer SetTraceLoggingEnabled(false)

	log := &testLogger{}
	s := NewScroller(NewManualSource(time.Time{}), log)
	s.SetMetrics(300, 100)
	_ = s.Start()
	s.Stop()
	if log.lines < 3 {
		t.Fatalf("want trace lines for replan/start/stop, got %d", log.lines)
	}
}

// eagerSource ticks once from inside Start, like fyne's test driver does
// with a freshly started animation.
type eagerSource struct {
	*ManualSource
}

func (s eagerSource) Start(tick func(now time.Time)) {
	s.ManualSource.Start(tick)
	s.ManualSource.Advance(50 * time.Millisecond)
}

func TestScrollerStartWithSourceTickingImmediately(t *testing.T) {
	src := eagerSource{NewManualSource(time.Time{})}
	s := NewScroller(src, &testLogger{})
	if err := s.Configure(Config{Mode: RightToLeftBounce, Rate: 20, StartDelay: 1}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	s.SetMetrics(300, 100)

	var redraws int
	s.OnRedraw(func(Frame) { redraws++ })

	done := make(chan error, 1)
	go func() { done <- s.Start() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start blocked on a tick delivered during Start")
	}

	st := s.State()
	if st.Phase != Delaying || math.Abs(st.Elapsed-0.05) > 1e-9 {
		t.Fatalf("want the first tick applied while delaying, got %+v", st)
	}
	if redraws != 1 {
		t.Fatalf("want one redraw, got %d", redraws)
	}
	src.Step(100*time.Millisecond, 10)
	if s.State().Phase != Animating {
		t.Fatalf("want %s, got %s", Animating, s.State().Phase)
	}
	s.Stop()
	if src.Running() {
		t.Fatal("source still attached after Stop")
	}
}

package marquee

import (
	"sync"
	"time"
)

// DefaultTickInterval is roughly one frame at 60Hz.
const DefaultTickInterval = 16 * time.Millisecond

// TickerSource delivers ticks from a background goroutine driven by a
// time.Ticker.
type TickerSource struct {
	interval time.Duration

	mu   sync.Mutex
	done chan struct{}
}

// NewTickerSource creates a source ticking every interval. Non-positive
// intervals use DefaultTickInterval.
func NewTickerSource(interval time.Duration) *TickerSource {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickerSource{interval: interval}
}

func (s *TickerSource) Now() time.Time { return time.Now() }

// Start launches the ticking goroutine, replacing any previous one.
func (s *TickerSource) Start(tick func(now time.Time)) {
	s.mu.Lock()
	if s.done != nil {
		close(s.done)
	}
	done := make(chan struct{})
	s.done = done
	interval := s.interval
	s.mu.Unlock()

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case now := <-t.C:
				// a stop may race with the tick; prefer the stop
				select {
				case <-done:
					return
				default:
				}
				tick(now)
			}
		}
	}()
}

// Stop signals the goroutine to exit without waiting for it.
func (s *TickerSource) Stop() {
	s.mu.Lock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	s.mu.Unlock()
}

// ManualSource is a clock advanced by its owner: tests feed synthetic
// durations, render loops call Fire once per frame. Ticks run synchronously
// on the caller's goroutine.
type ManualSource struct {
	mu   sync.Mutex
	now  time.Time
	tick func(time.Time)
}

// NewManualSource creates a stopped clock reading start. A zero start uses
// the Unix epoch.
func NewManualSource(start time.Time) *ManualSource {
	if start.IsZero() {
		start = time.Unix(0, 0)
	}
	return &ManualSource{now: start}
}

func (s *ManualSource) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualSource) Start(tick func(now time.Time)) {
	s.mu.Lock()
	s.tick = tick
	s.mu.Unlock()
}

func (s *ManualSource) Stop() {
	s.mu.Lock()
	s.tick = nil
	s.mu.Unlock()
}

// Running reports whether a consumer is attached.
func (s *ManualSource) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick != nil
}

// Advance moves the clock forward by d and delivers one tick.
func (s *ManualSource) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now, tick := s.now, s.tick
	s.mu.Unlock()
	if tick != nil {
		tick(now)
	}
}

// Step calls Advance(d) n times.
func (s *ManualSource) Step(d time.Duration, n int) {
	for i := 0; i < n; i++ {
		s.Advance(d)
	}
}

// Fire delivers a tick stamped now. Timestamps behind the clock are clamped
// to it, which the Driver then drops as a zero delta.
func (s *ManualSource) Fire(now time.Time) {
	s.mu.Lock()
	if now.After(s.now) {
		s.now = now
	}
	now, tick := s.now, s.tick
	s.mu.Unlock()
	if tick != nil {
		tick(now)
	}
}

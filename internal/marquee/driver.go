package marquee

import (
	"math"
	"sync"
	"time"
)

// MaxTickDelta caps a single step, in seconds, so a process resumed after a
// long suspension does not jump the text across the viewport.
const MaxTickDelta = 0.1

// TimeSource is a periodic push clock. Start must deliver ticks strictly in
// order from one goroutine at a time; Stop must not block on an in-flight tick.
type TimeSource interface {
	Now() time.Time
	Start(tick func(now time.Time))
	Stop()
}

// Driver turns the timestamps of a TimeSource into bounded positive deltas.
type Driver struct {
	src TimeSource

	mu       sync.Mutex
	last     time.Time
	attached bool
	gen      uint64
}

// NewDriver wraps src. A nil src falls back to a 60Hz TickerSource.
func NewDriver(src TimeSource) *Driver {
	if src == nil {
		src = NewTickerSource(0)
	}
	return &Driver{src: src}
}

// Source exposes the wrapped time source.
func (d *Driver) Source() TimeSource { return d.src }

// Attach starts the time source and calls fn with the elapsed seconds of
// every tick. A previous attachment is detached first.
func (d *Driver) Attach(fn func(dt float64)) {
	d.Detach()

	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.last = d.src.Now()
	d.attached = true
	d.mu.Unlock()

	d.src.Start(func(now time.Time) {
		if dt, ok := d.delta(gen, now); ok {
			fn(dt)
		}
	})
}

// Detach stops the time source. Ticks already in flight are discarded.
func (d *Driver) Detach() {
	d.mu.Lock()
	was := d.attached
	d.attached = false
	d.gen++
	d.mu.Unlock()
	if was {
		d.src.Stop()
	}
}

// Attached reports whether the driver is currently delivering ticks.
func (d *Driver) Attached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attached
}

func (d *Driver) delta(gen uint64, now time.Time) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.attached || gen != d.gen {
		return 0, false
	}
	dt := now.Sub(d.last).Seconds()
	if dt <= 0 {
		return 0, false
	}
	d.last = now
	return math.Min(dt, MaxTickDelta), true
}

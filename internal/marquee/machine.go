package marquee

import (
	"fmt"
	"math"
)

// Phase is the lifecycle stage of the scroll state machine.
type Phase int

const (
	// Idle is both the initial and the terminal phase; position is 0.
	Idle Phase = iota
	// Delaying waits StartDelay seconds before motion begins.
	Delaying
	// Animating moves the text at the configured rate, forever.
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Delaying:
		return "delaying"
	case Animating:
		return "animating"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a snapshot of the machine.
type State struct {
	Phase Phase
	// Elapsed is the time spent in the current phase, in seconds.
	Elapsed float64
	// Position is the signed loop displacement (in the plan's direction), or
	// the bounce travel in [0, SegmentLength].
	Position float64
	// Direction is +1 or -1 and multiplies every step.
	Direction int
}

// timeEpsilon tolerates float drift when summing tick durations against the
// start delay.
const timeEpsilon = 1e-9

// Machine advances a scroll position along a TravelPlan. It is not safe for
// concurrent use; Scroller serializes access.
type Machine struct {
	plan  TravelPlan
	rate  float64
	delay float64

	state     State
	wraps     int
	reversals int
}

// NewMachine returns an Idle machine for the plan. cfg is expected to have
// passed Validate.
func NewMachine(plan TravelPlan, cfg Config) *Machine {
	cfg = cfg.Normalized()
	m := &Machine{plan: plan, rate: cfg.Rate, delay: cfg.StartDelay}
	m.reset()
	return m
}

// Plan returns the plan the machine was built with.
func (m *Machine) Plan() TravelPlan { return m.plan }

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Wraps counts loop restarts since the last Start.
func (m *Machine) Wraps() int { return m.wraps }

// Reversals counts bounce direction flips since the last Start.
func (m *Machine) Reversals() int { return m.reversals }

// Start moves Idle to Delaying. It reports false, and does nothing, when the
// plan has nothing to animate or the machine is already running.
func (m *Machine) Start() bool {
	if !m.plan.Scrolls() || m.state.Phase != Idle {
		return false
	}
	m.reset()
	m.state.Phase = Delaying
	return true
}

// Stop returns to Idle from any phase and resets the position.
func (m *Machine) Stop() { m.reset() }

// Tick advances the machine by dt seconds. Non-positive or NaN durations are
// ignored.
func (m *Machine) Tick(dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	switch m.state.Phase {
	case Delaying:
		m.state.Elapsed += dt
		if m.state.Elapsed+timeEpsilon >= m.delay {
			m.state.Phase = Animating
			m.state.Elapsed = 0
			m.state.Position = 0
		}
	case Animating:
		m.state.Elapsed += dt
		m.advance(dt * m.rate)
	}
}

func (m *Machine) advance(distance float64) {
	seg := m.plan.SegmentLength
	if m.plan.Loop {
		pos := m.state.Position + distance*float64(m.state.Direction)
		if math.Abs(pos) >= seg {
			m.wraps += int(math.Abs(pos) / seg)
			pos = math.Mod(pos, seg)
		}
		if pos == 0 {
			pos = 0 // drop negative zero
		}
		m.state.Position = pos
		return
	}

	// Unfold the bounce onto one out-and-back period of 2*seg: [0, seg) runs
	// forward, [seg, 2*seg) runs back. Overshoot past an end reflects.
	u0 := m.state.Position
	if m.state.Direction < 0 {
		u0 = 2*seg - u0
	}
	u := u0 + distance
	m.reversals += int(math.Floor(u/seg) - math.Floor(u0/seg))
	u = math.Mod(u, 2*seg)
	if u < seg {
		m.state.Position = u
		m.state.Direction = 1
	} else {
		m.state.Position = 2*seg - u
		m.state.Direction = -1
	}
}

func (m *Machine) reset() {
	dir := 1
	if m.plan.Loop {
		dir = m.plan.Direction
	}
	m.state = State{Phase: Idle, Direction: dir}
	m.wraps = 0
	m.reversals = 0
}

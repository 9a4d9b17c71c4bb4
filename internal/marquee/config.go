// Package marquee implements the scroll-motion engine behind the scrolling
// label: travel geometry, edge fades, the scroll state machine and the
// time-driven animation loop. It knows nothing about fonts or widgets; the
// presentation layer supplies measured widths and paints the frames.
package marquee

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mode selects how overflowing text travels through the viewport.
type Mode int

const (
	// ForwardLoop scrolls right to left and wraps around seamlessly.
	ForwardLoop Mode = iota
	// BackwardLoop scrolls left to right and wraps around seamlessly.
	BackwardLoop
	// RightToLeftBounce moves the text right to left until its tail is
	// visible, then reverses.
	RightToLeftBounce
	// LeftToRightBounce starts tail-aligned and moves left to right, then
	// reverses.
	LeftToRightBounce
)

var modeNames = [...]string{
	ForwardLoop:       "forward",
	BackwardLoop:      "backward",
	RightToLeftBounce: "rightToLeft",
	LeftToRightBounce: "leftToRight",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// IsLoop reports whether the mode wraps instead of bouncing.
func (m Mode) IsLoop() bool { return m == ForwardLoop || m == BackwardLoop }

// ParseMode resolves a mode name case-insensitively. Dashes and underscores
// are ignored so "right-to-left" and "right_to_left" both work.
func ParseMode(s string) (Mode, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	for i, name := range modeNames {
		if strings.EqualFold(key, name) {
			return Mode(i), nil
		}
	}
	return ForwardLoop, fmt.Errorf("unknown scroll mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("unknown scroll mode %d", int(m))
	}
	return []byte(modeNames[m]), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Alignment places text that fits inside the viewport and therefore does not
// scroll.
type Alignment int

const (
	AlignLeading Alignment = iota
	AlignCenter
	AlignTrailing
)

var alignmentNames = [...]string{
	AlignLeading:  "leading",
	AlignCenter:   "center",
	AlignTrailing: "trailing",
}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

func (a Alignment) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(alignmentNames) {
		return nil, fmt.Errorf("unknown alignment %d", int(a))
	}
	return []byte(alignmentNames[a]), nil
}

func (a *Alignment) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	for i, name := range alignmentNames {
		if strings.EqualFold(s, name) {
			*a = Alignment(i)
			return nil
		}
	}
	return fmt.Errorf("unknown alignment %q", s)
}

const (
	// DefaultRate is the scroll speed used by DefaultConfig, in pixels per second.
	DefaultRate = 30
	// DefaultFadeLength softens both viewport edges by this many pixels.
	DefaultFadeLength = 8
	// DefaultTailBlankLength separates the end of a looping text from its restart.
	DefaultTailBlankLength = 40
	// DefaultStartDelay is the pause before motion begins, in seconds.
	DefaultStartDelay = 1.0
)

// Config holds the tunables of one scrolling run. It is copied by value into
// the engine, so mutating a Config after Configure has no effect.
type Config struct {
	Mode Mode `json:"mode" yaml:"mode" toml:"mode"`
	// Rate is the scroll speed in pixels per second. Must be > 0.
	Rate            float64   `json:"rate" yaml:"rate" toml:"rate"`
	FadeLength      float64   `json:"fadeLength" yaml:"fadeLength" toml:"fadeLength"`
	TailBlankLength float64   `json:"tailBlankLength" yaml:"tailBlankLength" toml:"tailBlankLength"`
	StartDelay      float64   `json:"startDelay" yaml:"startDelay" toml:"startDelay"`
	Alignment       Alignment `json:"alignment" yaml:"alignment" toml:"alignment"`
}

// DefaultConfig returns a forward loop with the package defaults.
func DefaultConfig() Config {
	return Config{
		Mode:            ForwardLoop,
		Rate:            DefaultRate,
		FadeLength:      DefaultFadeLength,
		TailBlankLength: DefaultTailBlankLength,
		StartDelay:      DefaultStartDelay,
		Alignment:       AlignLeading,
	}
}

// Normalized clamps the cosmetic tunables to sane ranges. Rate is left alone;
// Validate decides about it.
func (c Config) Normalized() Config {
	c.FadeLength = nonNegative(c.FadeLength)
	c.TailBlankLength = nonNegative(c.TailBlankLength)
	c.StartDelay = nonNegative(c.StartDelay)
	if c.Mode < ForwardLoop || c.Mode > LeftToRightBounce {
		c.Mode = ForwardLoop
	}
	if c.Alignment < AlignLeading || c.Alignment > AlignTrailing {
		c.Alignment = AlignLeading
	}
	return c
}

// Validate rejects configurations the engine can never animate.
func (c Config) Validate() error {
	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) || c.Rate <= 0 {
		return &InvalidConfigError{Field: "rate", Value: c.Rate, Reason: "must be a finite number > 0"}
	}
	return nil
}

// ErrInvalidConfig matches every *InvalidConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid scroll config")

// InvalidConfigError reports a tunable that makes animation impossible.
type InvalidConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid scroll config: %s=%v %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigError) Is(target error) bool { return target == ErrInvalidConfig }

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

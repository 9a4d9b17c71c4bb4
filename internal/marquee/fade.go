package marquee

import "math"

// FadeProfile describes the opacity ramps at both edges of the viewport. The
// zero value means no fade.
type FadeProfile struct {
	// Length is the effective ramp length after clamping to half the viewport.
	Length        float64
	ViewportWidth float64
}

// ComputeFadeProfile builds the edge ramps for a viewport. The fade length is
// clamped to half the viewport so the two ramps never overlap.
func ComputeFadeProfile(fadeLength, viewportWidth float64) FadeProfile {
	viewportWidth = nonNegative(viewportWidth)
	fadeLength = math.Min(nonNegative(fadeLength), viewportWidth/2)
	return FadeProfile{Length: fadeLength, ViewportWidth: viewportWidth}
}

// Leading is the opacity of the left ramp at offset x from the left edge.
func (f FadeProfile) Leading(x float64) float64 {
	if f.Length <= 0 {
		return 1
	}
	return clampUnit(x / f.Length)
}

// Trailing is the opacity of the right ramp at offset x from the left edge.
func (f FadeProfile) Trailing(x float64) float64 {
	if f.Length <= 0 {
		return 1
	}
	return clampUnit((f.ViewportWidth - x) / f.Length)
}

// Opacity combines both ramps. Points outside the viewport are invisible.
func (f FadeProfile) Opacity(x float64) float64 {
	if f.Length <= 0 {
		return 1
	}
	if x < 0 || x > f.ViewportWidth {
		return 0
	}
	return math.Min(f.Leading(x), f.Trailing(x))
}

// fadeCache recomputes the profile only when its inputs change.
type fadeCache struct {
	fadeLength    float64
	viewportWidth float64
	profile       FadeProfile
	valid         bool
}

func (c *fadeCache) get(fadeLength, viewportWidth float64) FadeProfile {
	if c.valid && c.fadeLength == fadeLength && c.viewportWidth == viewportWidth {
		return c.profile
	}
	c.fadeLength, c.viewportWidth = fadeLength, viewportWidth
	c.profile = ComputeFadeProfile(fadeLength, viewportWidth)
	c.valid = true
	return c.profile
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

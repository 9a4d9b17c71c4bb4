package marquee

import "math"

// TravelPlan is the geometry of one scrolling run.
type TravelPlan struct {
	Mode Mode
	// TotalDistance is zero iff the text fits and nothing animates.
	TotalDistance float64
	// Direction is the initial screen direction of the content: -1 moves it
	// right to left, +1 left to right.
	Direction int
	Loop      bool
	// SegmentLength is one loop cycle (text plus tail blank) or, for bounce
	// modes, the overflow between text and viewport.
	SegmentLength float64
}

// Scrolls reports whether the plan needs animation at all.
func (p TravelPlan) Scrolls() bool { return p.TotalDistance > 0 }

// NeedsScroll reports whether text of the given width overflows the
// viewport. Text exactly as wide as the viewport fits.
func NeedsScroll(textWidth, viewportWidth float64) bool {
	if math.IsNaN(textWidth) || textWidth <= 0 {
		return false
	}
	return textWidth > nonNegative(viewportWidth)
}

// ComputeTravelPlan derives the travel geometry for text of textWidth inside
// a viewport of viewportWidth. It fails only when cfg.Rate cannot drive an
// animation; other out-of-range tunables are clamped.
func ComputeTravelPlan(textWidth, viewportWidth float64, cfg Config) (TravelPlan, error) {
	if err := cfg.Validate(); err != nil {
		return TravelPlan{}, err
	}
	cfg = cfg.Normalized()
	textWidth = nonNegative(textWidth)
	viewportWidth = nonNegative(viewportWidth)

	plan := TravelPlan{Mode: cfg.Mode, Direction: -1, Loop: cfg.Mode.IsLoop()}
	if cfg.Mode == BackwardLoop || cfg.Mode == LeftToRightBounce {
		plan.Direction = 1
	}
	if !NeedsScroll(textWidth, viewportWidth) {
		return plan, nil
	}

	if plan.Loop {
		plan.SegmentLength = textWidth + cfg.TailBlankLength
	} else {
		plan.SegmentLength = textWidth - viewportWidth
	}
	plan.TotalDistance = plan.SegmentLength
	return plan, nil
}

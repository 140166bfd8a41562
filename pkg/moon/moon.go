// Package moon buckets a position in the lunar cycle into the eight
// familiar phases.
package moon

import (
	"fmt"
	"math"
)

// Phase is one of the eight lunar phases.
type Phase uint

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var names = [...]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

var glyphs = [...]string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

func (p Phase) String() string {
	if int(p) < len(names) {
		return names[p]
	}
	return "invalid"
}

// Glyph returns the pictograph for the phase.
func (p Phase) Glyph() string {
	if int(p) < len(glyphs) {
		return glyphs[p]
	}
	return ""
}

// RangeError reports a cycle fraction outside [0, 1].
type RangeError struct {
	Fraction float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("moon: cycle fraction %v outside [0, 1]", e.Fraction)
}

// Classify buckets frac, a position in the lunar cycle, into its Phase. The
// cycle runs from 0 at new moon through 0.5 at full moon and wraps at 1. It
// splits into eight half open buckets of width 0.125; the final bucket also
// owns exactly 1. Fractions outside [0, 1], NaN included, return a
// RangeError.
func Classify(frac float64) (Phase, error) {
	if math.IsNaN(frac) || frac < 0 || frac > 1 {
		return NewMoon, &RangeError{Fraction: frac}
	}
	switch {
	case frac < 0.125:
		return NewMoon, nil
	case frac < 0.25:
		return WaxingCrescent, nil
	case frac < 0.375:
		return FirstQuarter, nil
	case frac < 0.5:
		return WaxingGibbous, nil
	case frac < 0.625:
		return FullMoon, nil
	case frac < 0.75:
		return WaningGibbous, nil
	case frac < 0.875:
		return LastQuarter, nil
	default:
		return WaningCrescent, nil
	}
}

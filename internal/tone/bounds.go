package tone

import (
	"fmt"
	"math"
)

// Bounds is an intensity pair used to drive remapping.
type Bounds struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// ByPercentage trims p percent of the pixels from each end of the
// distribution.
//
// With total = c.Total(), Low is the smallest intensity whose cumulative
// count reaches total*p/100 and High the smallest reaching total*(1-p/100).
// For p > 50 the targets cross and Low > High; the pair is returned as is and
// the remappers reject it.
//
// Returns ErrEmptyHistogram when total is 0 and ErrInvalidPercentage when p
// is NaN or outside [0,100].
func ByPercentage(c Cumulative, p float64) (Bounds, error) {
	total := c.Total()
	if total <= 0 {
		return Bounds{}, ErrEmptyHistogram
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return Bounds{}, fmt.Errorf("percentage %v: %w", p, ErrInvalidPercentage)
	}

	lowerTarget := float64(total) * (p / 100)
	upperTarget := float64(total) * (1 - p/100)

	low, ok := firstAtLeast(&c, lowerTarget)
	if !ok {
		return Bounds{}, fmt.Errorf("no intensity reaches %v of %d pixels: %w", lowerTarget, total, ErrDegenerateBounds)
	}
	high, ok := firstAtLeast(&c, upperTarget)
	if !ok {
		return Bounds{}, fmt.Errorf("no intensity reaches %v of %d pixels: %w", upperTarget, total, ErrDegenerateBounds)
	}
	return Bounds{Low: low, High: high}, nil
}

// firstAtLeast returns the smallest index whose count is >= target.
func firstAtLeast(c *Cumulative, target float64) (int, bool) {
	for i, n := range c {
		if float64(n) >= target {
			return i, true
		}
	}
	return 0, false
}

// ByMaxSlope returns the intensity pair (i, j), i < j, over which the
// cumulative histogram rises fastest, (c[j]-c[i])/(j-i).
//
// Every pair is examined; only a strictly larger slope replaces the current
// best, so the first pair found wins ties. If no pair has a positive slope
// (all pixels share intensity 0) the result is {0, 0}.
//
// Returns ErrEmptyHistogram when the histogram counts no pixels.
func ByMaxSlope(c Cumulative) (Bounds, error) {
	if c.Total() <= 0 {
		return Bounds{}, ErrEmptyHistogram
	}

	var best Bounds
	maxSlope := 0.0
	for i := 0; i < Levels-1; i++ {
		for j := i + 1; j < Levels; j++ {
			slope := float64(c[j]-c[i]) / float64(j-i)
			if slope > maxSlope {
				maxSlope = slope
				best = Bounds{Low: i, High: j}
			}
		}
	}
	return best, nil
}

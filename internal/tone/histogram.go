package tone

import (
	"errors"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

// Errors returned by histogram, bound selection and remapping functions.
var (
	ErrEmptyHistogram    = errors.New("tone: histogram has no pixels")
	ErrDegenerateBounds  = errors.New("tone: degenerate intensity bounds")
	ErrInvalidPercentage = errors.New("tone: percentage outside [0,100]")
)

// Levels is the number of 8-bit intensity levels.
const Levels = 256

// Histogram counts pixels per intensity; index = intensity.
type Histogram [Levels]int

// Cumulative is the prefix sum of a Histogram: entry i counts pixels with
// intensity <= i.
type Cumulative [Levels]int

// Compute counts the occurrences of every intensity in img.
func Compute(img raster.Gray8) Histogram {
	var h Histogram
	for _, v := range img.Pix[:img.Width*img.Height] {
		h[v]++
	}
	return h
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// Cumulate returns the running prefix sum of h.
func Cumulate(h Histogram) Cumulative {
	var c Cumulative
	c[0] = h[0]
	for i := 1; i < Levels; i++ {
		c[i] = c[i-1] + h[i]
	}
	return c
}

// Total returns the last entry, the number of pixels counted.
func (c *Cumulative) Total() int {
	return c[Levels-1]
}

// Min returns the smallest entry. A cumulative histogram never decreases, so
// this is always c[0].
func (c *Cumulative) Min() int {
	return c[0]
}

package tone

import (
	"fmt"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

// DefaultPercentages are the trim levels evaluated when Analyze is given none.
var DefaultPercentages = []float64{5, 10, 15}

// Method names a bound selection strategy.
type Method string

const (
	MethodPercentage Method = "percentage"
	MethodMaxSlope   Method = "max_slope"
)

// Selection is one bound selection and the images remapped with it.
//
// Err is set when the bounds could not be selected; StretchErr and
// EqualizeErr are set when the corresponding remap rejected the bounds. The
// matching image is the zero Gray8 in either case.
type Selection struct {
	Method     Method
	Percentage float64
	Bounds     Bounds
	Err        error

	Stretched  raster.Gray8
	StretchErr error

	Equalized   raster.Gray8
	EqualizeErr error
}

// Report is the outcome of Analyze.
type Report struct {
	Histogram  Histogram
	Cumulative Cumulative

	// Equalized is the full-range equalization, unset when EqualizeErr is.
	Equalized   raster.Gray8
	EqualizeErr error

	// Selections holds one entry per percentage, in the order given,
	// followed by the max-slope selection.
	Selections []Selection
}

// Analyze computes the histogram of img once and evaluates every contrast
// operation against it: percentile bounds for each of percentages (or
// DefaultPercentages when empty), max-slope bounds, the linear stretch and
// bounded equalization for each bound pair, and the full-range equalization.
//
// Individual remaps that fail are recorded in their Selection; Analyze itself
// fails only when img holds no pixels.
func Analyze(img raster.Gray8, percentages []float64) (*Report, error) {
	if len(percentages) == 0 {
		percentages = DefaultPercentages
	}

	hist := Compute(img)
	if hist.Total() == 0 {
		return nil, fmt.Errorf("analyze: %w", ErrEmptyHistogram)
	}

	r := &Report{
		Histogram:  hist,
		Cumulative: Cumulate(hist),
		Selections: make([]Selection, 0, len(percentages)+1),
	}
	r.Equalized, r.EqualizeErr = equalize(img, &r.Cumulative, r.Cumulative.Min(), r.Cumulative.Total())

	for _, p := range percentages {
		sel := Selection{Method: MethodPercentage, Percentage: p}
		sel.Bounds, sel.Err = ByPercentage(r.Cumulative, p)
		r.remap(img, &sel)
		r.Selections = append(r.Selections, sel)
	}

	sel := Selection{Method: MethodMaxSlope}
	sel.Bounds, sel.Err = ByMaxSlope(r.Cumulative)
	r.remap(img, &sel)
	r.Selections = append(r.Selections, sel)

	return r, nil
}

func (r *Report) remap(img raster.Gray8, sel *Selection) {
	if sel.Err != nil {
		return
	}
	sel.Stretched, sel.StretchErr = Stretch(img, sel.Bounds.Low, sel.Bounds.High)
	sel.Equalized, sel.EqualizeErr = equalizeRange(img, &r.Cumulative, sel.Bounds)
}

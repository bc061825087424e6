package imaging

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"github.com/ironsheep/edgetone-mcp/internal/tone"
)

// MethodManual selects caller-supplied bounds.
const MethodManual tone.Method = "manual"

// ErrUnknownMethod is returned for a bounds method other than percentage,
// max_slope or manual.
var ErrUnknownMethod = errors.New("imaging: unknown bounds method")

// BoundsRequest selects the intensity bounds used by a contrast operation.
type BoundsRequest struct {
	// Method is tone.MethodPercentage, tone.MethodMaxSlope or MethodManual.
	Method tone.Method

	// Percentage is the trim level for tone.MethodPercentage.
	Percentage float64

	// Low and High are used as-is for MethodManual.
	Low  int
	High int
}

// HistogramResult describes the intensity distribution of an image.
type HistogramResult struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	TotalPixels int `json:"total_pixels"`

	// Histogram and Cumulative have 256 entries, indexed by intensity.
	Histogram  []int `json:"histogram"`
	Cumulative []int `json:"cumulative"`

	// MinIntensity and MaxIntensity are the darkest and brightest occupied
	// levels.
	MinIntensity int `json:"min_intensity"`
	MaxIntensity int `json:"max_intensity"`

	MeanIntensity   float64 `json:"mean_intensity"`
	StdDevIntensity float64 `json:"stddev_intensity"`
}

// BoundsResult is a selected intensity interval.
type BoundsResult struct {
	Method     tone.Method `json:"method"`
	Percentage float64     `json:"percentage,omitempty"`
	Low        int         `json:"low"`
	High       int         `json:"high"`

	// Inverted is set when Low > High, which happens for percentages above
	// 50. Remapping operations reject inverted bounds.
	Inverted bool `json:"inverted"`
}

// RemapResult is a contrast-adjusted image and the bounds that produced it.
type RemapResult struct {
	Method     tone.Method `json:"method"`
	Percentage float64     `json:"percentage,omitempty"`
	Low        int         `json:"low"`
	High       int         `json:"high"`

	// OutputLow and OutputHigh are the target range of a stretch.
	OutputLow  int `json:"output_low,omitempty"`
	OutputHigh int `json:"output_high,omitempty"`

	Image *EncodedImage `json:"image"`

	// Histogram is the 256-bin histogram of the output image.
	Histogram []int `json:"histogram"`
}

// HistogramOf returns the histogram, cumulative histogram and summary
// statistics of the intensities of img.
func HistogramOf(img image.Image) (*HistogramResult, error) {
	g := ToGray(img)
	h := tone.Compute(g)
	if h.Total() == 0 {
		return nil, fmt.Errorf("histogram: %w", tone.ErrEmptyHistogram)
	}
	c := tone.Cumulate(h)

	levels := make([]float64, tone.Levels)
	weights := make([]float64, tone.Levels)
	minLevel, maxLevel := -1, 0
	for v, n := range h {
		levels[v] = float64(v)
		weights[v] = float64(n)
		if n > 0 {
			if minLevel < 0 {
				minLevel = v
			}
			maxLevel = v
		}
	}
	mean, std := stat.MeanStdDev(levels, weights)
	if h.Total() == 1 {
		std = 0
	}

	return &HistogramResult{
		Width:           g.Width,
		Height:          g.Height,
		TotalPixels:     h.Total(),
		Histogram:       h[:],
		Cumulative:      c[:],
		MinIntensity:    minLevel,
		MaxIntensity:    maxLevel,
		MeanIntensity:   mean,
		StdDevIntensity: std,
	}, nil
}

// IntensityBounds selects a low/high intensity pair for img.
//
// Parameters:
//   - img: Source image, converted to intensities.
//   - req: Selection method and its percentage or manual bounds.
//
// Returns:
//   - *BoundsResult: The selected pair. Inverted is set when Low > High.
//   - error: ErrUnknownMethod, or the wrapped tone error
//     (ErrEmptyHistogram, ErrInvalidPercentage).
func IntensityBounds(img image.Image, req BoundsRequest) (*BoundsResult, error) {
	g := ToGray(img)
	b, err := resolveBounds(g, req)
	if err != nil {
		return nil, err
	}

	return &BoundsResult{
		Method:     req.Method,
		Percentage: percentageOf(req),
		Low:        b.Low,
		High:       b.High,
		Inverted:   b.Low > b.High,
	}, nil
}

// ContrastStretch linearly maps the selected bounds of img onto
// [outLow, outHigh], clipping values outside the bounds.
//
// Parameters:
//   - img: Source image, converted to intensities.
//   - req: How the input bounds are selected.
//   - outLow, outHigh: Target intensity range, both in [0,255].
//
// Returns:
//   - *RemapResult: The stretched image as base64 PNG, the bounds used and
//     the output histogram.
//   - error: ErrUnknownMethod; tone.ErrDegenerateBounds for equal or inverted
//     bounds; raster.ErrOutOfRange for bounds outside [0,255].
func ContrastStretch(img image.Image, req BoundsRequest, outLow, outHigh int) (*RemapResult, error) {
	g := ToGray(img)
	b, err := resolveBounds(g, req)
	if err != nil {
		return nil, err
	}

	out, err := tone.StretchRange(g, b.Low, b.High, outLow, outHigh)
	if err != nil {
		return nil, fmt.Errorf("failed to stretch contrast: %w", err)
	}

	res, err := remapResult(out, req, b)
	if err != nil {
		return nil, err
	}
	res.OutputLow, res.OutputHigh = outLow, outHigh
	return res, nil
}

// Equalize histogram-equalizes img.
//
// Parameters:
//   - img: Source image, converted to intensities.
//   - req: Nil equalizes over the full cumulative range and reports method
//     "full". Otherwise the equalization is restricted to the selected
//     bounds and intensities outside them saturate.
//
// Returns:
//   - *RemapResult: The equalized image as base64 PNG, the bounds used and
//     the output histogram.
//   - error: ErrUnknownMethod; tone.ErrDegenerateBounds when the range holds
//     no pixels (including an all-black image) or is inverted;
//     raster.ErrOutOfRange for bounds outside [0,255].
func Equalize(img image.Image, req *BoundsRequest) (*RemapResult, error) {
	g := ToGray(img)

	if req == nil {
		out, err := tone.EqualizeFull(g)
		if err != nil {
			return nil, fmt.Errorf("failed to equalize: %w", err)
		}
		return remapResult(out, BoundsRequest{Method: "full"}, tone.Bounds{Low: 0, High: raster.MaxIntensity})
	}

	b, err := resolveBounds(g, *req)
	if err != nil {
		return nil, err
	}
	out, err := tone.EqualizeRange(g, b.Low, b.High)
	if err != nil {
		return nil, fmt.Errorf("failed to equalize: %w", err)
	}
	return remapResult(out, *req, b)
}

func resolveBounds(g raster.Gray8, req BoundsRequest) (tone.Bounds, error) {
	switch req.Method {
	case tone.MethodPercentage, tone.MethodMaxSlope:
		c := tone.Cumulate(tone.Compute(g))
		var (
			b   tone.Bounds
			err error
		)
		if req.Method == tone.MethodPercentage {
			b, err = tone.ByPercentage(c, req.Percentage)
		} else {
			b, err = tone.ByMaxSlope(c)
		}
		if err != nil {
			return tone.Bounds{}, fmt.Errorf("failed to select bounds: %w", err)
		}
		return b, nil
	case MethodManual:
		return tone.Bounds{Low: req.Low, High: req.High}, nil
	default:
		return tone.Bounds{}, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
}

func remapResult(out raster.Gray8, req BoundsRequest, b tone.Bounds) (*RemapResult, error) {
	enc, err := EncodeGray(out)
	if err != nil {
		return nil, err
	}
	h := tone.Compute(out)
	return &RemapResult{
		Method:     req.Method,
		Percentage: percentageOf(req),
		Low:        b.Low,
		High:       b.High,
		Image:      enc,
		Histogram:  h[:],
	}, nil
}

func percentageOf(req BoundsRequest) float64 {
	if req.Method == tone.MethodPercentage {
		return req.Percentage
	}
	return 0
}

package tone

import (
	"fmt"
	"math"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

// Stretch linearly maps [inLow, inHigh] onto the full [0, 255] range.
func Stretch(img raster.Gray8, inLow, inHigh int) (raster.Gray8, error) {
	return StretchRange(img, inLow, inHigh, 0, raster.MaxIntensity)
}

// StretchRange linearly maps [inLow, inHigh] onto [outLow, outHigh]:
//
//	v' = clip(round((v - inLow) * (outHigh - outLow) / (inHigh - inLow) + outLow), outLow, outHigh)
//
// inLow maps exactly to outLow and inHigh to outHigh; values outside the input
// range saturate.
//
// Returns raster.ErrOutOfRange for bounds outside [0,255] and
// ErrDegenerateBounds when inLow >= inHigh or outLow > outHigh.
func StretchRange(img raster.Gray8, inLow, inHigh, outLow, outHigh int) (raster.Gray8, error) {
	if err := checkBounds(inLow, inHigh); err != nil {
		return raster.Gray8{}, fmt.Errorf("input range: %w", err)
	}
	if inLow == inHigh {
		return raster.Gray8{}, fmt.Errorf("input range [%d,%d] is empty: %w", inLow, inHigh, ErrDegenerateBounds)
	}
	if err := checkBounds(outLow, outHigh); err != nil {
		return raster.Gray8{}, fmt.Errorf("output range: %w", err)
	}

	scale := float64(outHigh-outLow) / float64(inHigh-inLow)
	var lut [Levels]uint8
	for v := range lut {
		mapped := math.Round(float64(v-inLow)*scale + float64(outLow))
		lut[v] = clip(mapped, outLow, outHigh)
	}
	return img.Map(&lut), nil
}

// EqualizeFull remaps img through its own cumulative histogram:
//
//	v' = round((c[v] - c.Min()) * 255 / (total - c.Min()))
//
// Returns ErrEmptyHistogram for an empty image and ErrDegenerateBounds when
// total == c.Min(), which happens when every pixel has intensity 0.
func EqualizeFull(img raster.Gray8) (raster.Gray8, error) {
	c := Cumulate(Compute(img))
	return equalize(img, &c, c.Min(), c.Total())
}

// EqualizeRange remaps img through its cumulative histogram restricted to
// [low, high]:
//
//	v' = clip(round((c[v] - c[low]) * 255 / (c[high] - c[low])), 0, 255)
//
// Intensities at or below low map to 0 and those at or above high to 255.
//
// Returns raster.ErrOutOfRange for bounds outside [0,255], ErrEmptyHistogram
// for an empty image and ErrDegenerateBounds when low > high or no pixel
// falls in (low, high].
func EqualizeRange(img raster.Gray8, low, high int) (raster.Gray8, error) {
	if err := checkBounds(low, high); err != nil {
		return raster.Gray8{}, err
	}
	c := Cumulate(Compute(img))
	return equalizeRange(img, &c, Bounds{Low: low, High: high})
}

func equalizeRange(img raster.Gray8, c *Cumulative, b Bounds) (raster.Gray8, error) {
	if err := checkBounds(b.Low, b.High); err != nil {
		return raster.Gray8{}, err
	}
	return equalize(img, c, c[b.Low], c[b.High])
}

// equalize maps v to round((c[v] - lo) * 255 / (hi - lo)) clipped to [0,255].
func equalize(img raster.Gray8, c *Cumulative, lo, hi int) (raster.Gray8, error) {
	if c.Total() <= 0 {
		return raster.Gray8{}, ErrEmptyHistogram
	}
	if hi == lo {
		return raster.Gray8{}, fmt.Errorf("cumulative range [%d,%d] holds no pixels: %w", lo, hi, ErrDegenerateBounds)
	}

	scale := float64(raster.MaxIntensity) / float64(hi-lo)
	var lut [Levels]uint8
	for v := range lut {
		lut[v] = clip(math.Round(float64(c[v]-lo)*scale), 0, raster.MaxIntensity)
	}
	return img.Map(&lut), nil
}

// checkBounds validates an ordered intensity pair.
func checkBounds(low, high int) error {
	if low < 0 || low > raster.MaxIntensity || high < 0 || high > raster.MaxIntensity {
		return fmt.Errorf("bounds [%d,%d]: %w", low, high, raster.ErrOutOfRange)
	}
	if low > high {
		return fmt.Errorf("inverted bounds [%d,%d]: %w", low, high, ErrDegenerateBounds)
	}
	return nil
}

func clip(v float64, lo, hi int) uint8 {
	if v < float64(lo) {
		return uint8(lo)
	}
	if v > float64(hi) {
		return uint8(hi)
	}
	return uint8(v)
}

// Package tone implements histogram analysis and contrast remapping for 8-bit
// grayscale sample arrays.
//
// The package covers three stages that are usually chained:
//
//  1. Histogram: Compute counts the 256 intensities, Cumulate turns the counts
//     into a non-decreasing prefix sum.
//  2. Bound selection: ByPercentage trims a percentage of pixels from each end
//     of the cumulative distribution; ByMaxSlope finds the intensity interval
//     over which the cumulative histogram rises fastest.
//  3. Remapping: Stretch maps an intensity range linearly onto [0,255];
//     EqualizeFull and EqualizeRange remap through the cumulative histogram.
//
// Analyze runs all three for a set of percentages plus the max-slope bounds.
//
// # Rounding
//
// Remapped values are rounded half away from zero (math.Round) and clipped to
// the output range before being stored as uint8.
//
// # Error Handling
//
// No operation produces NaN, Inf or wrapped values. Instead:
//   - ErrEmptyHistogram: the histogram counts no pixels
//   - ErrDegenerateBounds: a remapping denominator would be zero, or a bound
//     pair is inverted (low > high)
//   - ErrInvalidPercentage: a percentage outside [0,100]
//   - raster.ErrOutOfRange: a bound outside [0,255]
package tone

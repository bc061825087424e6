// Package raster defines the grayscale sample arrays shared by the edge and
// tone analyses.
//
// A Gray8 is an immutable-by-convention H x W grid of 8-bit intensities stored
// row-major. Float sample arrays are gonum *mat.Dense values with rows = height
// and columns = width, produced by Gray8.Normalized for convolution input.
//
// # Coordinate System
//
// Samples are addressed as (row, col) with (0, 0) at the top-left corner:
//   - row: vertical position (0 = topmost row)
//   - col: horizontal position (0 = leftmost column)
//
// # Error Handling
//
// Constructors reject input that cannot be represented as 8-bit samples:
//   - ErrOutOfRange for values outside [0, 255]
//   - ErrShapeMismatch for ragged or empty row sets
package raster

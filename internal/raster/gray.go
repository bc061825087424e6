package raster

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// Errors shared by every stage that consumes sample arrays.
var (
	ErrOutOfRange    = errors.New("raster: intensity outside [0,255]")
	ErrShapeMismatch = errors.New("raster: shape mismatch")
)

// MaxIntensity is the largest 8-bit sample value.
const MaxIntensity = 255

// Gray8 is a row-major grid of 8-bit grayscale samples.
type Gray8 struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGray8 allocates a zeroed width x height sample array.
func NewGray8(width, height int) Gray8 {
	return Gray8{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// FromRows builds a Gray8 from integer rows.
//
// Every row must have the same non-zero length and every value must lie in
// [0, 255]. Values are never clamped: an out-of-range sample is reported as
// ErrOutOfRange together with its position.
func FromRows(rows [][]int) (Gray8, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Gray8{}, fmt.Errorf("empty sample rows: %w", ErrShapeMismatch)
	}

	width := len(rows[0])
	g := NewGray8(width, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return Gray8{}, fmt.Errorf("row %d has %d samples, want %d: %w", r, len(row), width, ErrShapeMismatch)
		}
		for c, v := range row {
			if v < 0 || v > MaxIntensity {
				return Gray8{}, fmt.Errorf("sample (%d,%d)=%d: %w", r, c, v, ErrOutOfRange)
			}
			g.Pix[r*width+c] = uint8(v)
		}
	}
	return g, nil
}

// FromImage copies an *image.Gray into a Gray8, dropping the image's origin
// offset and stride.
func FromImage(img *image.Gray) Gray8 {
	b := img.Bounds()
	g := NewGray8(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(g.Pix[y*g.Width:(y+1)*g.Width], src[:g.Width])
	}
	return g
}

// FromRGBALuma copies the red channel of img into a Gray8. It is meant for
// RGBA images whose channels all carry the same luma value, such as the
// output of a grayscale filter.
func FromRGBALuma(img *image.RGBA) Gray8 {
	b := img.Bounds()
	g := NewGray8(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Pix[y*g.Width+x] = img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return g
}

// Image returns the samples as an *image.Gray anchored at (0,0).
func (g Gray8) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(img.Pix, g.Pix)
	return img
}

// Empty reports whether the array holds no samples.
func (g Gray8) Empty() bool {
	return g.Width <= 0 || g.Height <= 0 || len(g.Pix) < g.Width*g.Height
}

// At returns the sample at (row, col). It panics when out of bounds, like a
// slice index.
func (g Gray8) At(row, col int) uint8 {
	return g.Pix[row*g.Width+col]
}

// Rows returns the samples as integer rows.
func (g Gray8) Rows() [][]int {
	rows := make([][]int, g.Height)
	for r := range rows {
		rows[r] = make([]int, g.Width)
		for c := range rows[r] {
			rows[r][c] = int(g.Pix[r*g.Width+c])
		}
	}
	return rows
}

// Normalized returns the samples scaled to [0,1] as a Height x Width matrix.
func (g Gray8) Normalized() *mat.Dense {
	data := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		data[i] = float64(v) / MaxIntensity
	}
	return mat.NewDense(g.Height, g.Width, data)
}

// Map returns a new Gray8 with every sample passed through lut.
func (g Gray8) Map(lut *[256]uint8) Gray8 {
	out := NewGray8(g.Width, g.Height)
	for i, v := range g.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

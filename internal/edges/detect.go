package edges

import (
	"fmt"
	"math"
	"runtime"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Result holds the per-pixel outcome of multi-scale detection.
type Result struct {
	// Magnitude is the largest accepted scale-normalised gradient magnitude
	// per pixel, or 0 where no scale exceeded the threshold.
	Magnitude *mat.Dense

	// KernelSize records the kernel size that produced Magnitude, or 0.
	// Indexed [row][col].
	KernelSize [][]int

	// Scales lists the kernel sizes that were evaluated, ascending.
	Scales []int
}

// Detector runs multi-scale edge detection.
//
// The zero value is ready to use and evaluates up to GOMAXPROCS scales at
// once.
type Detector struct {
	// Workers bounds how many scales are convolved concurrently.
	// Values <= 0 mean runtime.GOMAXPROCS(0).
	Workers int
}

// Detect runs multi-scale edge detection with a default Detector.
func Detect(img raster.Gray8, maxKernelSize int, threshold float64) (*Result, error) {
	return (&Detector{}).Detect(img, maxKernelSize, threshold)
}

// Detect finds, for each pixel, the strongest directional gradient across
// kernel sizes 3, 5, ..., maxKernelSize.
//
// Parameters:
//   - img: 8-bit grayscale samples; normalised to [0,1] before convolution.
//   - maxKernelSize: largest kernel size evaluated (odd, >= 3, inclusive).
//   - threshold: a magnitude must be strictly greater than this to be kept.
//
// For each size s the magnitude is sqrt((Rx² + Ry²) / s²), where Rx and Ry
// are the AxisX and AxisY responses. Scales are merged in ascending order
// with a strict comparison, so the smallest size wins ties.
//
// Returns ErrInvalidKernelSize for a bad maxKernelSize and
// raster.ErrShapeMismatch for an empty image.
func (d *Detector) Detect(img raster.Gray8, maxKernelSize int, threshold float64) (*Result, error) {
	if !ValidKernelSize(maxKernelSize) {
		return nil, fmt.Errorf("max kernel size %d: %w", maxKernelSize, ErrInvalidKernelSize)
	}
	if img.Empty() {
		return nil, fmt.Errorf("empty image: %w", raster.ErrShapeMismatch)
	}
	if math.IsNaN(threshold) {
		return nil, fmt.Errorf("threshold is NaN")
	}

	norm := img.Normalized()

	scales := make([]int, 0, (maxKernelSize-MinKernelSize)/2+1)
	for s := MinKernelSize; s <= maxKernelSize; s += 2 {
		scales = append(scales, s)
	}

	workers := d.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	perScale := make([]*mat.Dense, len(scales))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range scales {
		i, s := i, s
		g.Go(func() error {
			m, err := scaleMagnitude(norm, s)
			if err != nil {
				return fmt.Errorf("kernel size %d: %w", s, err)
			}
			perScale[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	h, w := norm.Dims()
	res := &Result{
		Magnitude:  mat.NewDense(h, w, nil),
		KernelSize: make([][]int, h),
		Scales:     scales,
	}
	for r := range res.KernelSize {
		res.KernelSize[r] = make([]int, w)
	}

	// Ascending merge keeps the first qualifying scale on ties.
	for i, s := range scales {
		m := perScale[i]
		for r := 0; r < h; r++ {
			for c := 0; c < w; c++ {
				mag := m.At(r, c)
				if mag > threshold && mag > res.Magnitude.At(r, c) {
					res.Magnitude.Set(r, c, mag)
					res.KernelSize[r][c] = s
				}
			}
		}
	}

	return res, nil
}

// scaleMagnitude returns sqrt((Rx² + Ry²) / size²) for every pixel of img.
func scaleMagnitude(img *mat.Dense, size int) (*mat.Dense, error) {
	kx, err := NewKernel(size, AxisX)
	if err != nil {
		return nil, err
	}
	ky, err := NewKernel(size, AxisY)
	if err != nil {
		return nil, err
	}

	rx, err := Convolve(img, kx)
	if err != nil {
		return nil, err
	}
	ry, err := Convolve(img, ky)
	if err != nil {
		return nil, err
	}

	norm := float64(size * size)
	h, w := img.Dims()
	mag := mat.NewDense(h, w, nil)
	mag.Apply(func(r, c int, _ float64) float64 {
		x, y := rx.At(r, c), ry.At(r, c)
		return math.Sqrt((x*x + y*y) / norm)
	}, mag)
	return mag, nil
}

package imaging

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/edgetone-mcp/internal/edges"
)

// EdgeOptions configures EdgeScales.
type EdgeOptions struct {
	// MaxKernelSize is the largest kernel size evaluated (odd, >= 3).
	MaxKernelSize int

	// Threshold is the magnitude a pixel must strictly exceed to be an edge.
	Threshold float64

	// Workers bounds concurrent scales. Values <= 0 mean GOMAXPROCS.
	Workers int

	// IncludeRaw adds the numeric magnitude and kernel-size maps to the
	// result in addition to the rendered images.
	IncludeRaw bool
}

// ScaleCount is the number of edge pixels attributed to one kernel size.
type ScaleCount struct {
	KernelSize int `json:"kernel_size"`
	Pixels     int `json:"pixels"`
}

// EdgeScalesResult summarises a multi-scale edge detection run.
type EdgeScalesResult struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	MaxKernelSize int     `json:"max_kernel_size"`
	Threshold     float64 `json:"threshold"`

	// EdgePixels counts pixels where some scale exceeded the threshold.
	EdgePixels   int     `json:"edge_pixels"`
	EdgeFraction float64 `json:"edge_fraction"`

	// MeanMagnitude and MaxMagnitude are taken over edge pixels only.
	MeanMagnitude float64 `json:"mean_magnitude"`
	MaxMagnitude  float64 `json:"max_magnitude"`

	// Scales lists every evaluated size, including those that won no pixel.
	Scales []ScaleCount `json:"scales"`

	// MagnitudeMap is the magnitude map scaled so its peak is white.
	MagnitudeMap *EncodedImage `json:"magnitude_map"`

	// KernelSizeMap colors each pixel by its winning kernel size, from dark
	// purple (3) to yellow (MaxKernelSize). Non-edge pixels are black.
	KernelSizeMap *EncodedImage `json:"kernel_size_map"`

	Magnitude  [][]float64 `json:"magnitude,omitempty"`
	KernelSize [][]int     `json:"kernel_size,omitempty"`
}

// EdgeScales runs multi-scale edge detection on the intensities of img.
//
// Parameters:
//   - img: Source image. Color images are converted with BT.601 luma weights.
//   - opts: Largest kernel size, threshold, worker bound and whether to include
//     the numeric maps in the result.
//
// Returns:
//   - *EdgeScalesResult: Encoded magnitude and kernel-size maps, per-scale
//     pixel counts and magnitude statistics over edge pixels.
//   - error: Wraps edges.ErrInvalidKernelSize for a bad MaxKernelSize and
//     raster.ErrShapeMismatch for an image with no pixels; also returned if
//     PNG encoding fails.
func EdgeScales(img image.Image, opts EdgeOptions) (*EdgeScalesResult, error) {
	gray := ToGray(img)

	d := edges.Detector{Workers: opts.Workers}
	res, err := d.Detect(gray, opts.MaxKernelSize, opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("edge detection failed: %w", err)
	}

	out := &EdgeScalesResult{
		Width:         gray.Width,
		Height:        gray.Height,
		MaxKernelSize: opts.MaxKernelSize,
		Threshold:     opts.Threshold,
	}

	counts := make(map[int]int, len(res.Scales))
	var edgeMags []float64
	for r, row := range res.KernelSize {
		for c, k := range row {
			if k == 0 {
				continue
			}
			counts[k]++
			edgeMags = append(edgeMags, res.Magnitude.At(r, c))
		}
	}
	for _, s := range res.Scales {
		out.Scales = append(out.Scales, ScaleCount{KernelSize: s, Pixels: counts[s]})
	}

	out.EdgePixels = len(edgeMags)
	out.EdgeFraction = float64(out.EdgePixels) / float64(gray.Width*gray.Height)
	if len(edgeMags) > 0 {
		out.MeanMagnitude = stat.Mean(edgeMags, nil)
		out.MaxMagnitude = mat.Max(res.Magnitude)
	}

	out.MagnitudeMap, err = encodePNG(magnitudeImage(res.Magnitude))
	if err != nil {
		return nil, err
	}
	out.KernelSizeMap, err = encodePNG(kernelSizeImage(res.KernelSize, opts.MaxKernelSize))
	if err != nil {
		return nil, err
	}

	if opts.IncludeRaw {
		out.Magnitude = denseRows(res.Magnitude)
		out.KernelSize = res.KernelSize
	}

	return out, nil
}

func denseRows(m *mat.Dense) [][]float64 {
	rows, _ := m.Dims()
	out := make([][]float64, rows)
	for r := range out {
		out[r] = mat.Row(nil, r, m)
	}
	return out
}

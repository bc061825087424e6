package imaging

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/edgetone-mcp/internal/edges"
)

// scaleStops is a perceptually ordered gradient from dark purple (smallest
// kernel) to yellow (largest kernel).
var scaleStops = []colorful.Color{
	{R: 0.267, G: 0.005, B: 0.329},
	{R: 0.231, G: 0.322, B: 0.545},
	{R: 0.129, G: 0.569, B: 0.549},
	{R: 0.369, G: 0.788, B: 0.384},
	{R: 0.992, G: 0.906, B: 0.145},
}

// scaleColor returns the display color for kernel size k out of sizes
// MinKernelSize..maxKernel. Size 0 (no edge) is black.
func scaleColor(k, maxKernel int) color.RGBA {
	if k <= 0 {
		return color.RGBA{A: 255}
	}

	t := 1.0
	if span := maxKernel - edges.MinKernelSize; span > 0 {
		t = float64(k-edges.MinKernelSize) / float64(span)
	}
	t = clamp(t, 0, 1)

	seg := t * float64(len(scaleStops)-1)
	i := int(seg)
	if i >= len(scaleStops)-1 {
		i = len(scaleStops) - 2
	}
	c := scaleStops[i].BlendLab(scaleStops[i+1], seg-float64(i)).Clamped()

	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// kernelSizeImage renders a kernel-size map with one color per scale.
func kernelSizeImage(sizes [][]int, maxKernel int) *image.RGBA {
	height := len(sizes)
	width := 0
	if height > 0 {
		width = len(sizes[0])
	}

	palette := make(map[int]color.RGBA)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range sizes {
		for x, k := range row {
			c, ok := palette[k]
			if !ok {
				c = scaleColor(k, maxKernel)
				palette[k] = c
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

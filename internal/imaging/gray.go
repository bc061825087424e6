package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

// ITU-R BT.601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ToGray converts img to an 8-bit intensity raster.
//
// Single-channel 8-bit images are copied as-is. Everything else goes through
// a BT.601 luminance conversion of the straight (non-premultiplied) color
// values, so alpha is ignored: a fully transparent white pixel is 255, not 0.
func ToGray(img image.Image) raster.Gray8 {
	if g, ok := img.(*image.Gray); ok {
		return raster.FromImage(g)
	}
	return raster.FromRGBALuma(effect.GrayscaleWithWeights(opaque(img), lumaR, lumaG, lumaB))
}

// opaque returns an NRGBA copy of img with every alpha set to 255.
func opaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

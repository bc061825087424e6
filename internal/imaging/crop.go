package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangular sub-area of an image in pixel coordinates.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (r Region) rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Crop restricts img to region. A nil region returns img unchanged.
//
// The returned image has its origin at (0,0) so downstream row/column indices
// are relative to the region. Grayscale inputs stay grayscale; other images
// are cropped to NRGBA.
func Crop(img image.Image, region *Region) (image.Image, error) {
	if region == nil {
		return img, nil
	}

	bounds := img.Bounds()
	r := *region

	// Validate coordinates
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}

	if g, ok := img.(*image.Gray); ok {
		return cropGray(g, r.rect()), nil
	}
	return imaging.Crop(img, r.rect()), nil
}

// cropGray copies rect out of g, keeping the single-channel representation.
func cropGray(g *image.Gray, rect image.Rectangle) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		src := g.Pix[g.PixOffset(rect.Min.X, rect.Min.Y+y):]
		copy(dst.Pix[y*dst.Stride:], src[:rect.Dx()])
	}
	return dst
}

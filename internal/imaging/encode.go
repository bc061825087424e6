package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

// EncodedImage is an image returned to the client as base64 PNG.
type EncodedImage struct {
	// Width of the encoded image in pixels.
	Width int `json:"width"`

	// Height of the encoded image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the PNG data encoded as standard base64.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

func encodePNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodeGray encodes an intensity raster as a grayscale PNG.
func EncodeGray(g raster.Gray8) (*EncodedImage, error) {
	return encodePNG(g.Image())
}

// magnitudeImage scales a magnitude map linearly so its maximum maps to 255.
// An all-zero map stays black.
func magnitudeImage(m *mat.Dense) *image.Gray {
	rows, cols := m.Dims()
	img := image.NewGray(image.Rect(0, 0, cols, rows))

	raw := m.RawMatrix()
	peak := 0.0
	for r := 0; r < rows; r++ {
		row := raw.Data[r*raw.Stride : r*raw.Stride+cols]
		if v := floats.Max(row); v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return img
	}

	scale := raster.MaxIntensity / peak
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := raw.Data[r*raw.Stride+c] * scale
			img.Pix[r*img.Stride+c] = uint8(clamp(v+0.5, 0, raster.MaxIntensity))
		}
	}
	return img
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

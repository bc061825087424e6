package edges

import (
	"fmt"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"gonum.org/v1/gonum/mat"
)

// Convolve applies a square kernel to img and returns a same-size response.
//
// The image is zero-padded by K/2 on all sides and every output cell is the
// sum of the element-wise product of the kernel with the K x K window of the
// padded image anchored at that cell. The kernel is not flipped.
//
// This is a direct O(H*W*K²) implementation.
func Convolve(img, kernel *mat.Dense) (*mat.Dense, error) {
	h, w := img.Dims()
	dst := mat.NewDense(h, w, nil)
	if err := ConvolveTo(dst, img, kernel); err != nil {
		return nil, err
	}
	return dst, nil
}

// ConvolveTo performs Convolve, writing into a pre-allocated destination with
// the same dimensions as img.
func ConvolveTo(dst, img, kernel *mat.Dense) error {
	kr, kc := kernel.Dims()
	if kr != kc || kr%2 == 0 {
		return fmt.Errorf("kernel %dx%d is not square and odd: %w", kr, kc, raster.ErrShapeMismatch)
	}
	h, w := img.Dims()
	dr, dc := dst.Dims()
	if dr != h || dc != w {
		return fmt.Errorf("destination %dx%d, image %dx%d: %w", dr, dc, h, w, raster.ErrShapeMismatch)
	}

	pad := kr / 2
	padded := padZero(img, pad)
	p := padded.RawMatrix()
	k := kernel.RawMatrix()

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			var sum float64
			for ki := 0; ki < kr; ki++ {
				prow := p.Data[(i+ki)*p.Stride+j:]
				krow := k.Data[ki*k.Stride:]
				for kj := 0; kj < kr; kj++ {
					sum += prow[kj] * krow[kj]
				}
			}
			dst.Set(i, j, sum)
		}
	}
	return nil
}

// padZero returns img surrounded by pad rows and columns of zeros.
func padZero(img *mat.Dense, pad int) *mat.Dense {
	h, w := img.Dims()
	padded := mat.NewDense(h+2*pad, w+2*pad, nil)
	padded.Slice(pad, pad+h, pad, pad+w).(*mat.Dense).Copy(img)
	return padded
}

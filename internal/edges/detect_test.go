package edges

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

const eps = 1e-9

func mustRows(t *testing.T, rows [][]int) raster.Gray8 {
	t.Helper()
	g, err := raster.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	return g
}

// stepImage returns a width x height image, black left of col and white from
// col onwards.
func stepImage(t *testing.T, width, height, col int) raster.Gray8 {
	t.Helper()
	g := raster.NewGray8(width, height)
	for y := 0; y < height; y++ {
		for x := col; x < width; x++ {
			g.Pix[y*width+x] = 255
		}
	}
	return g
}

func TestDetect_SinglePixel(t *testing.T) {
	// The spike sits on every kernel's zeroed centre lines when the kernel is
	// centred on it, so (1,1) sees nothing. The corners see it through a ±1
	// corner cell of both kernels: Rx = ±1, Ry = ±1, mag = sqrt(2/9).
	img := mustRows(t, [][]int{{0, 0, 0}, {0, 255, 0}, {0, 0, 0}})

	res, err := Detect(img, 3, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	corner := math.Sqrt(2.0 / 9.0)
	wantMag := [3][3]float64{
		{corner, 0, corner},
		{0, 0, 0},
		{corner, 0, corner},
	}
	wantSize := [3][3]int{{3, 0, 3}, {0, 0, 0}, {3, 0, 3}}

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if math.Abs(res.Magnitude.At(r, c)-wantMag[r][c]) > eps {
				t.Errorf("Magnitude[%d][%d]: got %v, want %v", r, c, res.Magnitude.At(r, c), wantMag[r][c])
			}
			if res.KernelSize[r][c] != wantSize[r][c] {
				t.Errorf("KernelSize[%d][%d]: got %d, want %d", r, c, res.KernelSize[r][c], wantSize[r][c])
			}
		}
	}
}

func TestDetect_SinglePixelLargerScalesLose(t *testing.T) {
	// At size 5 the corners get sqrt(2/25) < sqrt(2/9): size 3 is kept.
	img := mustRows(t, [][]int{{0, 0, 0}, {0, 255, 0}, {0, 0, 0}})

	res, err := Detect(img, 5, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got := res.KernelSize[0][0]; got != 3 {
		t.Errorf("KernelSize[0][0]: got %d, want 3", got)
	}
	if len(res.Scales) != 2 || res.Scales[0] != 3 || res.Scales[1] != 5 {
		t.Errorf("Scales: got %v, want [3 5]", res.Scales)
	}
}

func TestDetect_ExactTieKeepsSmallestScale(t *testing.T) {
	// At (3,5) sizes 3 and 9 both give exactly sqrt(4/9); 5 and 7 are lower.
	img := raster.NewGray8(10, 11)
	for _, p := range [][2]int{{4, 4}, {4, 6}, {7, 3}, {7, 4}, {7, 6}, {7, 7}} {
		img.Pix[p[0]*img.Width+p[1]] = 255
	}

	norm := img.Normalized()
	m3, err := scaleMagnitude(norm, 3)
	if err != nil {
		t.Fatalf("scaleMagnitude(3) failed: %v", err)
	}
	m9, err := scaleMagnitude(norm, 9)
	if err != nil {
		t.Fatalf("scaleMagnitude(9) failed: %v", err)
	}
	if m3.At(3, 5) != m9.At(3, 5) {
		t.Fatalf("sizes 3 and 9 should tie at (3,5): got %v and %v", m3.At(3, 5), m9.At(3, 5))
	}

	res, err := Detect(img, 9, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if got := res.KernelSize[3][5]; got != 3 {
		t.Errorf("KernelSize[3][5]: got %d, want 3", got)
	}
	if got := res.Magnitude.At(3, 5); math.Abs(got-2.0/3) > eps {
		t.Errorf("Magnitude(3,5): got %v, want 2/3", got)
	}
}

func TestDetect_UniformImage(t *testing.T) {
	// Uniform zero image: every response is 0, nothing exceeds threshold 0.
	img := raster.NewGray8(8, 8)

	res, err := Detect(img, 7, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if res.Magnitude.At(r, c) != 0 || res.KernelSize[r][c] != 0 {
				t.Fatalf("(%d,%d): got mag %v size %d, want 0/0", r, c, res.Magnitude.At(r, c), res.KernelSize[r][c])
			}
		}
	}
}

func TestDetect_ThresholdSuppresses(t *testing.T) {
	img := mustRows(t, [][]int{{0, 0, 0}, {0, 255, 0}, {0, 0, 0}})

	// sqrt(2/9) ~ 0.471; threshold at exactly that value rejects (strict >).
	res, err := Detect(img, 3, math.Sqrt(2.0/9.0))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if res.KernelSize[r][c] != 0 {
				t.Errorf("KernelSize[%d][%d]: got %d, want 0", r, c, res.KernelSize[r][c])
			}
		}
	}
}

func TestDetect_StepEdge(t *testing.T) {
	img := stepImage(t, 20, 20, 10)

	res, err := Detect(img, 5, 0.1)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	// Interior pixels next to the step respond; far-away interior ones do not.
	if res.KernelSize[10][9] == 0 || res.KernelSize[10][10] == 0 {
		t.Errorf("step not detected: sizes %d,%d", res.KernelSize[10][9], res.KernelSize[10][10])
	}
	if res.Magnitude.At(10, 3) != 0 {
		t.Errorf("flat dark region responded: %v", res.Magnitude.At(10, 3))
	}
}

func TestDetect_MonotoneAndSizesValid(t *testing.T) {
	img := stepImage(t, 15, 12, 7)

	small, err := Detect(img, 3, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	large, err := Detect(img, 9, 0)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	for r := 0; r < 12; r++ {
		for c := 0; c < 15; c++ {
			if large.Magnitude.At(r, c) < small.Magnitude.At(r, c) {
				t.Errorf("(%d,%d): adding scales lowered magnitude %v -> %v",
					r, c, small.Magnitude.At(r, c), large.Magnitude.At(r, c))
			}
			s := large.KernelSize[r][c]
			if s != 0 && (s < 3 || s > 9 || s%2 == 0) {
				t.Errorf("(%d,%d): invalid kernel size %d", r, c, s)
			}
			if (s == 0) != (large.Magnitude.At(r, c) == 0) {
				t.Errorf("(%d,%d): size %d and magnitude %v disagree", r, c, s, large.Magnitude.At(r, c))
			}
		}
	}
}

func TestDetect_WorkerCountDoesNotChangeResult(t *testing.T) {
	img := raster.NewGray8(17, 13)
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 37) % 256)
	}

	seq, err := (&Detector{Workers: 1}).Detect(img, 11, 0.05)
	if err != nil {
		t.Fatalf("sequential Detect failed: %v", err)
	}
	par, err := (&Detector{Workers: 8}).Detect(img, 11, 0.05)
	if err != nil {
		t.Fatalf("parallel Detect failed: %v", err)
	}

	for r := 0; r < 13; r++ {
		for c := 0; c < 17; c++ {
			if seq.KernelSize[r][c] != par.KernelSize[r][c] {
				t.Fatalf("(%d,%d): sizes %d vs %d", r, c, seq.KernelSize[r][c], par.KernelSize[r][c])
			}
			if seq.Magnitude.At(r, c) != par.Magnitude.At(r, c) {
				t.Fatalf("(%d,%d): magnitudes %v vs %v", r, c, seq.Magnitude.At(r, c), par.Magnitude.At(r, c))
			}
		}
	}
}

func TestDetect_Errors(t *testing.T) {
	img := raster.NewGray8(4, 4)

	for _, size := range []int{1, 2, 4, 12} {
		if _, err := Detect(img, size, 0.1); !errors.Is(err, ErrInvalidKernelSize) {
			t.Errorf("max kernel %d: got %v, want ErrInvalidKernelSize", size, err)
		}
	}
	if _, err := Detect(raster.Gray8{}, 3, 0.1); !errors.Is(err, raster.ErrShapeMismatch) {
		t.Errorf("empty image: got %v, want ErrShapeMismatch", err)
	}
	if _, err := Detect(img, 3, math.NaN()); err == nil {
		t.Error("NaN threshold: expected error")
	}
}

package tone

import (
	"errors"
	"testing"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
)

func TestStretch(t *testing.T) {
	img := mustRows(t, [][]int{{50, 100, 10}, {150, 200, 250}})

	got, err := Stretch(img, 50, 200)
	if err != nil {
		t.Fatalf("Stretch failed: %v", err)
	}
	want := []uint8{0, 85, 0, 170, 255, 255}
	for i, w := range want {
		if got.Pix[i] != w {
			t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
		}
	}
	if img.At(0, 1) != 100 {
		t.Error("Stretch modified its input")
	}
}

func TestStretch_EndpointsExact(t *testing.T) {
	img := rampImage()
	for _, b := range []Bounds{{0, 255}, {1, 2}, {17, 201}, {37, 38}, {100, 254}, {3, 250}} {
		got, err := Stretch(img, b.Low, b.High)
		if err != nil {
			t.Fatalf("Stretch(%d,%d) failed: %v", b.Low, b.High, err)
		}
		// Ramp image pixel i holds intensity i.
		if got.Pix[b.Low] != 0 {
			t.Errorf("Stretch(%d,%d): low maps to %d, want 0", b.Low, b.High, got.Pix[b.Low])
		}
		if got.Pix[b.High] != 255 {
			t.Errorf("Stretch(%d,%d): high maps to %d, want 255", b.Low, b.High, got.Pix[b.High])
		}
		for v := b.Low + 1; v <= b.High; v++ {
			if got.Pix[v] < got.Pix[v-1] {
				t.Fatalf("Stretch(%d,%d): not monotonic at %d", b.Low, b.High, v)
			}
		}
	}
}

func TestStretchRange_Output(t *testing.T) {
	img := mustRows(t, [][]int{{0, 128, 255}})

	got, err := StretchRange(img, 0, 255, 100, 200)
	if err != nil {
		t.Fatalf("StretchRange failed: %v", err)
	}
	want := []uint8{100, 150, 200}
	for i, w := range want {
		if got.Pix[i] != w {
			t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
		}
	}
}

func TestStretch_Errors(t *testing.T) {
	img := rampImage()

	tests := []struct {
		name                           string
		inLow, inHigh, outLow, outHigh int
		want                           error
	}{
		{"equal input bounds", 80, 80, 0, 255, ErrDegenerateBounds},
		{"inverted input", 200, 100, 0, 255, ErrDegenerateBounds},
		{"inverted output", 0, 255, 200, 100, ErrDegenerateBounds},
		{"negative input", -1, 100, 0, 255, raster.ErrOutOfRange},
		{"input above 255", 0, 300, 0, 255, raster.ErrOutOfRange},
		{"output above 255", 0, 255, 0, 256, raster.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StretchRange(img, tt.inLow, tt.inHigh, tt.outLow, tt.outHigh)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEqualizeFull_SmallImage(t *testing.T) {
	img := mustRows(t, [][]int{{10, 10}, {20, 30}})

	got, err := EqualizeFull(img)
	if err != nil {
		t.Fatalf("EqualizeFull failed: %v", err)
	}
	// cumulative 2, 3, 4 of 4 pixels, min 0: 127.5 -> 128, 191.25 -> 191, 255.
	want := []uint8{128, 128, 191, 255}
	for i, w := range want {
		if got.Pix[i] != w {
			t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
		}
	}
}

func TestEqualizeFull_UniformHistogramUnchanged(t *testing.T) {
	// Each intensity appears three times.
	img := raster.NewGray8(48, 16)
	for i := range img.Pix {
		img.Pix[i] = uint8(i % 256)
	}

	got, err := EqualizeFull(img)
	if err != nil {
		t.Fatalf("EqualizeFull failed: %v", err)
	}
	for i := range img.Pix {
		if got.Pix[i] != img.Pix[i] {
			t.Fatalf("Pix[%d]: got %d, want %d", i, got.Pix[i], img.Pix[i])
		}
	}
}

func TestEqualizeFull_Errors(t *testing.T) {
	if _, err := EqualizeFull(raster.Gray8{}); !errors.Is(err, ErrEmptyHistogram) {
		t.Errorf("empty: got %v, want ErrEmptyHistogram", err)
	}
	if _, err := EqualizeFull(raster.NewGray8(3, 3)); !errors.Is(err, ErrDegenerateBounds) {
		t.Errorf("all zero: got %v, want ErrDegenerateBounds", err)
	}
}

func TestEqualizeRange(t *testing.T) {
	img := mustRows(t, [][]int{{10, 10}, {20, 30}})

	got, err := EqualizeRange(img, 10, 30)
	if err != nil {
		t.Fatalf("EqualizeRange failed: %v", err)
	}
	// c[10]=2, c[30]=4: 10 -> 0, 20 -> 127.5 -> 128, 30 -> 255.
	want := []uint8{0, 0, 128, 255}
	for i, w := range want {
		if got.Pix[i] != w {
			t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
		}
	}
}

func TestEqualizeRange_ClipsOutside(t *testing.T) {
	img := mustRows(t, [][]int{{5, 20, 20, 40, 90}})

	got, err := EqualizeRange(img, 20, 40)
	if err != nil {
		t.Fatalf("EqualizeRange failed: %v", err)
	}
	// c[20]=3, c[40]=4: 5 -> negative -> 0, 90 -> (5-3)*255 -> 255.
	want := []uint8{0, 0, 0, 255, 255}
	for i, w := range want {
		if got.Pix[i] != w {
			t.Errorf("Pix[%d]: got %d, want %d", i, got.Pix[i], w)
		}
	}
}

func TestEqualizeRange_FullRangeMatchesEqualizeFull(t *testing.T) {
	img := patternImage(31, 29)

	full, err := EqualizeFull(img)
	if err != nil {
		t.Fatalf("EqualizeFull failed: %v", err)
	}
	ranged, err := EqualizeRange(img, 0, 255)
	if err != nil {
		t.Fatalf("EqualizeRange failed: %v", err)
	}
	for i := range full.Pix {
		d := int(full.Pix[i]) - int(ranged.Pix[i])
		if d < -1 || d > 1 {
			t.Fatalf("Pix[%d]: full %d, ranged %d", i, full.Pix[i], ranged.Pix[i])
		}
	}
}

func TestEqualizeRange_Errors(t *testing.T) {
	img := mustRows(t, [][]int{{10, 10}, {20, 30}})

	tests := []struct {
		name      string
		low, high int
		want      error
	}{
		{"no pixels in range", 40, 50, ErrDegenerateBounds},
		{"equal bounds", 20, 20, ErrDegenerateBounds},
		{"inverted", 30, 10, ErrDegenerateBounds},
		{"out of range", 10, 256, raster.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EqualizeRange(img, tt.low, tt.high); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

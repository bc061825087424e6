package imaging

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"github.com/ironsheep/edgetone-mcp/internal/tone"
)

func TestHistogramOf(t *testing.T) {
	img := grayRows([][]uint8{
		{0, 0},
		{128, 255},
	})

	res, err := HistogramOf(img)
	if err != nil {
		t.Fatalf("HistogramOf failed: %v", err)
	}

	if res.TotalPixels != 4 || len(res.Histogram) != tone.Levels || len(res.Cumulative) != tone.Levels {
		t.Fatalf("unexpected shape: total=%d bins=%d cumulative=%d", res.TotalPixels, len(res.Histogram), len(res.Cumulative))
	}
	if res.Histogram[0] != 2 || res.Histogram[128] != 1 || res.Histogram[255] != 1 {
		t.Errorf("histogram counts wrong: [0]=%d [128]=%d [255]=%d", res.Histogram[0], res.Histogram[128], res.Histogram[255])
	}
	if res.Cumulative[127] != 2 || res.Cumulative[255] != 4 {
		t.Errorf("cumulative wrong: [127]=%d [255]=%d", res.Cumulative[127], res.Cumulative[255])
	}
	if res.MinIntensity != 0 || res.MaxIntensity != 255 {
		t.Errorf("intensity range: got [%d,%d], want [0,255]", res.MinIntensity, res.MaxIntensity)
	}
	if math.Abs(res.MeanIntensity-95.75) > 1e-9 {
		t.Errorf("MeanIntensity: got %v, want 95.75", res.MeanIntensity)
	}
	if res.StdDevIntensity <= 0 {
		t.Errorf("StdDevIntensity: got %v, want > 0", res.StdDevIntensity)
	}
}

func TestHistogramOf_SinglePixel(t *testing.T) {
	res, err := HistogramOf(grayRows([][]uint8{{42}}))
	if err != nil {
		t.Fatalf("HistogramOf failed: %v", err)
	}
	if res.MeanIntensity != 42 || res.StdDevIntensity != 0 {
		t.Errorf("got mean %v stddev %v, want 42 and 0", res.MeanIntensity, res.StdDevIntensity)
	}
}

func TestIntensityBounds(t *testing.T) {
	img := rampImage()

	tests := []struct {
		name     string
		req      BoundsRequest
		low      int
		high     int
		inverted bool
	}{
		{"percentage 10", BoundsRequest{Method: tone.MethodPercentage, Percentage: 10}, 25, 230, false},
		{"percentage 0", BoundsRequest{Method: tone.MethodPercentage, Percentage: 0}, 0, 255, false},
		{"percentage 100", BoundsRequest{Method: tone.MethodPercentage, Percentage: 100}, 255, 0, true},
		{"manual", BoundsRequest{Method: MethodManual, Low: 10, High: 20}, 10, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := IntensityBounds(img, tt.req)
			if err != nil {
				t.Fatalf("IntensityBounds failed: %v", err)
			}
			if res.Low != tt.low || res.High != tt.high {
				t.Errorf("bounds: got [%d,%d], want [%d,%d]", res.Low, res.High, tt.low, tt.high)
			}
			if res.Inverted != tt.inverted {
				t.Errorf("Inverted: got %v, want %v", res.Inverted, tt.inverted)
			}
			if res.Method != tt.req.Method {
				t.Errorf("Method: got %s, want %s", res.Method, tt.req.Method)
			}
		})
	}
}

func TestIntensityBounds_MaxSlope(t *testing.T) {
	// Two dense clusters at 100 and 101 give the steepest cumulative rise.
	rows := make([][]uint8, 4)
	for i := range rows {
		rows[i] = []uint8{0, 100, 100, 101, 101, 255}
	}

	res, err := IntensityBounds(grayRows(rows), BoundsRequest{Method: tone.MethodMaxSlope})
	if err != nil {
		t.Fatalf("IntensityBounds failed: %v", err)
	}

	c := tone.Cumulate(tone.Compute(ToGray(grayRows(rows))))
	want, _ := tone.ByMaxSlope(c)
	if res.Low != want.Low || res.High != want.High {
		t.Errorf("bounds: got [%d,%d], want [%d,%d]", res.Low, res.High, want.Low, want.High)
	}
	if res.Percentage != 0 {
		t.Errorf("Percentage should be omitted for max_slope, got %v", res.Percentage)
	}
}

func TestIntensityBounds_Errors(t *testing.T) {
	img := rampImage()

	_, err := IntensityBounds(img, BoundsRequest{Method: "median"})
	if !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("unknown method: got %v, want ErrUnknownMethod", err)
	}

	_, err = IntensityBounds(img, BoundsRequest{Method: tone.MethodPercentage, Percentage: 120})
	if !errors.Is(err, tone.ErrInvalidPercentage) {
		t.Errorf("bad percentage: got %v, want ErrInvalidPercentage", err)
	}
}

func TestContrastStretch(t *testing.T) {
	img := grayRows([][]uint8{{0, 64, 128, 191, 255}})

	res, err := ContrastStretch(img, BoundsRequest{Method: MethodManual, Low: 64, High: 191}, 0, 255)
	if err != nil {
		t.Fatalf("ContrastStretch failed: %v", err)
	}

	want, err := tone.Stretch(ToGray(img), 64, 191)
	if err != nil {
		t.Fatalf("Stretch failed: %v", err)
	}
	got := ToGray(decodeEncoded(t, res.Image))
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Errorf("pixel %d: got %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}

	if res.Low != 64 || res.High != 191 || res.OutputLow != 0 || res.OutputHigh != 255 {
		t.Errorf("bounds echoed wrong: %+v", res)
	}
	if res.Histogram[0] != 2 || res.Histogram[255] != 2 {
		t.Errorf("output histogram: [0]=%d [255]=%d, want 2 and 2", res.Histogram[0], res.Histogram[255])
	}
}

func TestContrastStretch_RejectsBounds(t *testing.T) {
	img := rampImage()

	_, err := ContrastStretch(img, BoundsRequest{Method: tone.MethodPercentage, Percentage: 60}, 0, 255)
	if !errors.Is(err, tone.ErrDegenerateBounds) {
		t.Errorf("inverted bounds: got %v, want ErrDegenerateBounds", err)
	}

	_, err = ContrastStretch(img, BoundsRequest{Method: MethodManual, Low: 0, High: 300}, 0, 255)
	if !errors.Is(err, raster.ErrOutOfRange) {
		t.Errorf("out of range bounds: got %v, want ErrOutOfRange", err)
	}
}

func TestEqualize_Full(t *testing.T) {
	img := grayRows([][]uint8{{10, 10}, {20, 30}})

	res, err := Equalize(img, nil)
	if err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	if res.Method != "full" {
		t.Errorf("Method: got %s, want full", res.Method)
	}

	want, err := tone.EqualizeFull(ToGray(img))
	if err != nil {
		t.Fatalf("EqualizeFull failed: %v", err)
	}
	got := ToGray(decodeEncoded(t, res.Image))
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Errorf("pixel %d: got %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestEqualize_Bounded(t *testing.T) {
	img := rampImage()
	req := &BoundsRequest{Method: tone.MethodPercentage, Percentage: 10}

	res, err := Equalize(img, req)
	if err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	if res.Low != 25 || res.High != 230 || res.Percentage != 10 {
		t.Errorf("bounds: got %+v, want 10%% -> [25,230]", res)
	}

	want, err := tone.EqualizeRange(ToGray(img), 25, 230)
	if err != nil {
		t.Fatalf("EqualizeRange failed: %v", err)
	}
	got := ToGray(decodeEncoded(t, res.Image))
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d: got %d, want %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestEqualize_AllBlack(t *testing.T) {
	img := grayRows([][]uint8{{0, 0}, {0, 0}})
	if _, err := Equalize(img, nil); !errors.Is(err, tone.ErrDegenerateBounds) {
		t.Errorf("got %v, want ErrDegenerateBounds", err)
	}
}

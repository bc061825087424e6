package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"github.com/ironsheep/edgetone-mcp/internal/tone"
)

// SelectionResult is one row of a contrast report.
//
// Error is set when the bounds could not be selected. StretchError and
// EqualizeError are set when the selected bounds could not be used, in which
// case the matching image is omitted.
type SelectionResult struct {
	Method     tone.Method `json:"method"`
	Percentage float64     `json:"percentage,omitempty"`
	Low        int         `json:"low"`
	High       int         `json:"high"`
	Error      string      `json:"error,omitempty"`

	Stretched    *EncodedImage `json:"stretched,omitempty"`
	StretchError string        `json:"stretch_error,omitempty"`

	Equalized     *EncodedImage `json:"equalized,omitempty"`
	EqualizeError string        `json:"equalize_error,omitempty"`
}

// ReportResult compares every contrast operation on one image.
type ReportResult struct {
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	Histogram  []int `json:"histogram"`
	Cumulative []int `json:"cumulative"`

	// Equalized is the full-range equalization.
	Equalized     *EncodedImage `json:"equalized,omitempty"`
	EqualizeError string        `json:"equalize_error,omitempty"`

	Selections []SelectionResult `json:"selections"`
}

// ContrastReport evaluates percentile bounds for each of percentages, the
// max-slope bounds, and the stretch and equalization each pair produces.
// An empty percentages slice uses tone.DefaultPercentages.
func ContrastReport(img image.Image, percentages []float64) (*ReportResult, error) {
	g := ToGray(img)
	rep, err := tone.Analyze(g, percentages)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze contrast: %w", err)
	}

	out := &ReportResult{
		Width:      g.Width,
		Height:     g.Height,
		Histogram:  rep.Histogram[:],
		Cumulative: rep.Cumulative[:],
		Selections: make([]SelectionResult, 0, len(rep.Selections)),
	}

	out.Equalized, out.EqualizeError, err = encodeOutcome(rep.Equalized, rep.EqualizeErr)
	if err != nil {
		return nil, err
	}

	for _, sel := range rep.Selections {
		row := SelectionResult{
			Method:     sel.Method,
			Percentage: sel.Percentage,
			Low:        sel.Bounds.Low,
			High:       sel.Bounds.High,
		}
		if sel.Err != nil {
			row.Error = sel.Err.Error()
			out.Selections = append(out.Selections, row)
			continue
		}

		row.Stretched, row.StretchError, err = encodeOutcome(sel.Stretched, sel.StretchErr)
		if err != nil {
			return nil, err
		}
		row.Equalized, row.EqualizeError, err = encodeOutcome(sel.Equalized, sel.EqualizeErr)
		if err != nil {
			return nil, err
		}
		out.Selections = append(out.Selections, row)
	}

	return out, nil
}

// encodeOutcome encodes g unless opErr is set, in which case the operation
// error is returned as text. The returned error is an encoding failure.
func encodeOutcome(g raster.Gray8, opErr error) (*EncodedImage, string, error) {
	if opErr != nil {
		return nil, opErr.Error(), nil
	}
	enc, err := EncodeGray(g)
	if err != nil {
		return nil, "", err
	}
	return enc, "", nil
}

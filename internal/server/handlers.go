package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/edgetone-mcp/internal/imaging"
	"github.com/ironsheep/edgetone-mcp/internal/raster"
	"github.com/ironsheep/edgetone-mcp/internal/tone"
)

// errInvalidArgs marks tool failures caused by the caller's arguments rather
// than by the image or the analysis.
var errInvalidArgs = errors.New("invalid arguments")

func invalidArgs(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidArgs, fmt.Sprintf(format, a...))
}

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_edge_scales").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602; any other tool failure returns -32000
// with the error text as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	fields := map[string]interface{}{
		"tool":        params.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		s.log.Warning(component, "tool failed", withError(fields, err))
		if errors.Is(err, errInvalidArgs) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.log.Info(component, "tool finished", fields)

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for optional parameters
//  3. Loads the image from cache and applies the optional region
//  4. Calls the matching imaging function
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Edge Analysis
	case "image_edge_scales":
		return s.handleImageEdgeScales(args)

	// Tone Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_intensity_bounds":
		return s.handleImageIntensityBounds(args)
	case "image_contrast_stretch":
		return s.handleImageContrastStretch(args)
	case "image_equalize":
		return s.handleImageEqualize(args)
	case "image_contrast_report":
		return s.handleImageContrastReport(args)

	default:
		return nil, invalidArgs("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. Empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func withError(fields map[string]interface{}, err error) map[string]interface{} {
	fields["error"] = err.Error()
	return fields
}

// imageArgs are accepted by every tool.
type imageArgs struct {
	Path   string          `json:"path"`
	Region *imaging.Region `json:"region,omitempty"`
}

func (a *imageArgs) common() *imageArgs { return a }

// toolArgs is implemented by every argument struct through its embedded
// imageArgs.
type toolArgs interface {
	common() *imageArgs
}

// decodeArgs unmarshals tool arguments into v and checks the shared fields.
func decodeArgs(args json.RawMessage, v toolArgs) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidArgs("%v", err)
	}
	if v.common().Path == "" {
		return invalidArgs("path is required")
	}
	return nil
}

// loadImage loads a.Path through the cache and applies a.Region.
func (s *Server) loadImage(a *imageArgs) (image.Image, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	img, err = imaging.Crop(img, a.Region)
	if err != nil {
		return nil, invalidArgs("%v", err)
	}
	return img, nil
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Region == nil {
		return imaging.GetDimensions(s.cache, a.Path)
	}
	img, err := s.loadImage(&a)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &imaging.DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}

// === Edge Analysis Handlers ===

type imageEdgeScalesArgs struct {
	imageArgs
	MaxKernelSize *int     `json:"max_kernel_size,omitempty"`
	Threshold     *float64 `json:"threshold,omitempty"`
	IncludeRaw    bool     `json:"include_raw"`
}

func (s *Server) handleImageEdgeScales(args json.RawMessage) (interface{}, error) {
	var a imageEdgeScalesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	opts := imaging.EdgeOptions{
		MaxKernelSize: s.cfg.Edges.MaxKernelSize,
		Threshold:     s.cfg.Edges.Threshold,
		Workers:       s.cfg.Edges.Workers,
		IncludeRaw:    a.IncludeRaw,
	}
	if a.MaxKernelSize != nil {
		opts.MaxKernelSize = *a.MaxKernelSize
	}
	if a.Threshold != nil {
		opts.Threshold = *a.Threshold
	}

	img, err := s.loadImage(&a.imageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeScales(img, opts)
}

// === Tone Analysis Handlers ===

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(&a)
	if err != nil {
		return nil, err
	}
	return imaging.HistogramOf(img)
}

// boundsArgs select intensity bounds. Method defaults to "percentage".
type boundsArgs struct {
	Method     string   `json:"method"`
	Percentage *float64 `json:"percentage,omitempty"`
	Low        *int     `json:"low,omitempty"`
	High       *int     `json:"high,omitempty"`
}

// boundsRequest converts the arguments into an imaging.BoundsRequest, filling the
// percentage from the first configured trim level when omitted.
func (s *Server) boundsRequest(b boundsArgs) (imaging.BoundsRequest, error) {
	req := imaging.BoundsRequest{Method: tone.Method(b.Method)}
	if req.Method == "" {
		req.Method = tone.MethodPercentage
	}

	switch req.Method {
	case tone.MethodPercentage:
		req.Percentage = s.defaultPercentage()
		if b.Percentage != nil {
			req.Percentage = *b.Percentage
		}
	case tone.MethodMaxSlope:
	case imaging.MethodManual:
		if b.Low == nil || b.High == nil {
			return req, invalidArgs("manual bounds require low and high")
		}
		req.Low, req.High = *b.Low, *b.High
	default:
		return req, invalidArgs("unknown method %q (want percentage, max_slope or manual)", b.Method)
	}
	return req, nil
}

func (s *Server) defaultPercentage() float64 {
	if len(s.cfg.Tone.Percentages) > 0 {
		return s.cfg.Tone.Percentages[0]
	}
	return tone.DefaultPercentages[0]
}

type imageIntensityBoundsArgs struct {
	imageArgs
	boundsArgs
}

func (s *Server) handleImageIntensityBounds(args json.RawMessage) (interface{}, error) {
	var a imageIntensityBoundsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	req, err := s.boundsRequest(a.boundsArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.loadImage(&a.imageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.IntensityBounds(img, req)
}

type imageContrastStretchArgs struct {
	imageArgs
	boundsArgs
	OutputLow  *int `json:"output_low,omitempty"`
	OutputHigh *int `json:"output_high,omitempty"`
}

func (s *Server) handleImageContrastStretch(args json.RawMessage) (interface{}, error) {
	var a imageContrastStretchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	req, err := s.boundsRequest(a.boundsArgs)
	if err != nil {
		return nil, err
	}

	outLow, outHigh := 0, raster.MaxIntensity
	if a.OutputLow != nil {
		outLow = *a.OutputLow
	}
	if a.OutputHigh != nil {
		outHigh = *a.OutputHigh
	}

	img, err := s.loadImage(&a.imageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.ContrastStretch(img, req, outLow, outHigh)
}

type imageEqualizeArgs struct {
	imageArgs
	boundsArgs
}

func (s *Server) handleImageEqualize(args json.RawMessage) (interface{}, error) {
	var a imageEqualizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	// Equalization defaults to the full cumulative range.
	var req *imaging.BoundsRequest
	if a.Method != "" && a.Method != "full" {
		r, err := s.boundsRequest(a.boundsArgs)
		if err != nil {
			return nil, err
		}
		req = &r
	}

	img, err := s.loadImage(&a.imageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.Equalize(img, req)
}

type imageContrastReportArgs struct {
	imageArgs
	Percentages []float64 `json:"percentages,omitempty"`
}

func (s *Server) handleImageContrastReport(args json.RawMessage) (interface{}, error) {
	var a imageContrastReportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Percentages) == 0 {
		a.Percentages = s.cfg.Tone.Percentages
	}

	img, err := s.loadImage(&a.imageArgs)
	if err != nil {
		return nil, err
	}
	return imaging.ContrastReport(img, a.Percentages)
}

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty and regionProperty are shared by every tool schema.
var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	regionProperty = map[string]interface{}{
		"type":        "object",
		"description": "Optional region of interest; analysis runs on this crop only. (x1,y1) inclusive, (x2,y2) exclusive.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
)

// boundsProperties describe how a tone tool selects its intensity bounds.
func boundsProperties(methods []string, methodDescription string) map[string]interface{} {
	return map[string]interface{}{
		"method": map[string]interface{}{
			"type":        "string",
			"enum":        methods,
			"description": methodDescription,
		},
		"percentage": map[string]interface{}{
			"type":        "number",
			"minimum":     0,
			"maximum":     100,
			"description": "Percentage of pixels trimmed at each end for method=percentage. Defaults to the first configured percentage (5).",
		},
		"low": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     255,
			"description": "Lower intensity bound for method=manual",
		},
		"high": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     255,
			"description": "Upper intensity bound for method=manual",
		},
	}
}

// schema builds an object schema with path and region plus extra properties.
func schema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":   pathProperty,
		"region": regionProperty,
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	selectMethods := []string{"percentage", "max_slope", "manual"}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, bit depth and whether it is already grayscale. The decoded image is cached for subsequent calls.",
			InputSchema: schema(nil),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file, or of a region of it.",
			InputSchema: schema(nil),
		},

		// Edge Analysis
		{
			Name:        "image_edge_scales",
			Description: "Multi-scale edge detection. Convolves the grayscale image with directional difference kernels of odd sizes 3..max_kernel_size and keeps, per pixel, the strongest scale-normalised gradient above the threshold. Returns the magnitude map and a map coloured by the winning kernel size (purple = small, yellow = large, black = no edge) as base64 PNG, plus per-scale pixel counts.",
			InputSchema: schema(map[string]interface{}{
				"max_kernel_size": map[string]interface{}{
					"type":        "integer",
					"minimum":     3,
					"description": "Largest odd kernel size evaluated (inclusive). Default 13.",
				},
				"threshold": map[string]interface{}{
					"type":        "number",
					"minimum":     0,
					"description": "Magnitude a pixel must strictly exceed to count as an edge. Intensities are normalised to [0,1]. Default 0.1.",
				},
				"include_raw": map[string]interface{}{
					"type":        "boolean",
					"description": "Also return the numeric magnitude and kernel-size maps. Default false.",
				},
			}),
		},

		// Tone Analysis
		{
			Name:        "image_histogram",
			Description: "Compute the 256-bin intensity histogram and cumulative histogram of an image, with min, max, mean and standard deviation of intensity.",
			InputSchema: schema(nil),
		},
		{
			Name:        "image_intensity_bounds",
			Description: "Select a low/high intensity pair. method=percentage trims the given percentage of pixels from each end (values above 50 give inverted bounds); method=max_slope finds the intensity pair where the cumulative histogram rises most steeply.",
			InputSchema: schema(boundsProperties(selectMethods,
				"Bound selection method. Default percentage.")),
		},
		{
			Name:        "image_contrast_stretch",
			Description: "Linearly stretch the selected intensity bounds onto an output range (default 0..255), saturating values outside the bounds. Returns the stretched grayscale image as base64 PNG.",
			InputSchema: schema(mergeProperties(boundsProperties(selectMethods,
				"Bound selection method. Default percentage."), map[string]interface{}{
				"output_low": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"maximum":     255,
					"description": "Output intensity for the lower bound. Default 0.",
				},
				"output_high": map[string]interface{}{
					"type":        "integer",
					"minimum":     0,
					"maximum":     255,
					"description": "Output intensity for the upper bound. Default 255.",
				},
			})),
		},
		{
			Name:        "image_equalize",
			Description: "Histogram-equalize an image. With method=full (default) the whole cumulative histogram is used; otherwise equalization is restricted to the selected bounds and values outside them saturate. Returns the equalized grayscale image as base64 PNG.",
			InputSchema: schema(boundsProperties(append([]string{"full"}, selectMethods...),
				"Equalization range. Default full.")),
		},
		{
			Name:        "image_contrast_report",
			Description: "Compare every contrast operation on one image: the histogram, full-range equalization, and for each trim percentage plus the max-slope bounds the selected pair with its stretched and equalized images. Failed operations are reported per row.",
			InputSchema: schema(map[string]interface{}{
				"percentages": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "number"},
					"description": "Trim percentages to evaluate. Default [5, 10, 15].",
				},
			}),
		},
	}
}

func mergeProperties(a, b map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

// Package server implements the MCP (Model Context Protocol) server for edge
// and contrast analysis.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Edge Analysis:
//   - image_edge_scales: Multi-scale directional edge detection
//
// Tone Analysis:
//   - image_histogram: Intensity histogram and statistics
//   - image_intensity_bounds: Percentile or max-slope bound selection
//   - image_contrast_stretch: Linear contrast stretch
//   - image_equalize: Full or bounded histogram equalization
//   - image_contrast_report: All of the above compared on one image
//
// Every tool takes a path and an optional region; analysis then runs on the
// cropped area only. Omitted parameters fall back to the config.Config the
// server was created with.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC error responses:
//   - -32602: invalid arguments (missing path, bad region, unknown method or tool)
//   - -32000: the image could not be loaded or the analysis rejected its input
//   - data: the Go error string
//
// Lines that are not valid JSON get a -32700 parse error with a null id.
//
// # Usage
//
//	cfg, _ := config.Load()
//	srv := server.New(cfg, logger.New(os.Stderr, cfg.LogLevel), version)
//	if err := srv.Run(); err != nil {
//	    os.Exit(1)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server that
// exposes image sources to MCP clients.
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
// # Sources
//
// Every tool takes a "source" argument. A JSON string is a file path; an
// object {"base64": "..."} carries the encoded image in the request. Any
// other JSON kind fails with imagesource.ErrTypeMismatch. The older "path"
// argument is still accepted when "source" is absent.
//
// An optional "mode" selects how the image is decoded (see
// imagesource.ParseMode). Calls without it use the server's default mode.
//
// Each call builds its own imagesource.Source and closes it before
// returning. Nothing is cached between calls: a file that changes on disk
// is seen by the next call.
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Decode and report dimensions, channels and depth
//   - image_dimensions: Header-only size, format and EXIF orientation
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_crop_quadrant: Extract named region (top-left, center, etc.)
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(log.Logger))
//	if err := srv.Run(); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server

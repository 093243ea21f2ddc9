package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
	"github.com/ironsheep/image-source-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_crop").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
//  2. Builds an image source from the "source" (or legacy "path") argument
//  3. Calls the appropriate imaging function with the requested decode mode
//  4. Closes the source and returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// sourceArgs is embedded in every tool's arguments.
//
// "source" is either a JSON string (a file path) or an object
// {"base64": "..."} carrying the encoded image. "path" is accepted when
// "source" is absent.
type sourceArgs struct {
	Source json.RawMessage `json:"source,omitempty"`
	Path   string          `json:"path,omitempty"`
	Mode   string          `json:"mode,omitempty"`
}

// open resolves the arguments into a bound source and decode mode. The
// caller must Close the source.
func (s *Server) open(a sourceArgs) (imagesource.Source, imagesource.Mode, error) {
	mode := s.defaultMode
	if a.Mode != "" {
		m, err := imagesource.ParseMode(a.Mode)
		if err != nil {
			return imagesource.Source{}, 0, err
		}
		mode = m
	}

	v, err := sourceValue(a)
	if err != nil {
		return imagesource.Source{}, 0, err
	}

	src, err := imagesource.FromValue(v, imagesource.WithCodec(s.codec), imagesource.WithLogger(s.log))
	if err != nil {
		return imagesource.Source{}, 0, err
	}
	return src, mode, nil
}

// sourceValue maps the JSON argument onto the shapes FromValue accepts. Any
// other JSON kind is passed through so FromValue reports the mismatch.
func sourceValue(a sourceArgs) (any, error) {
	if len(a.Source) == 0 {
		if a.Path != "" {
			return a.Path, nil
		}
		return nil, errors.New("source or path is required")
	}

	var v any
	if err := json.Unmarshal(a.Source, &v); err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	encoded, ok := obj["base64"].(string)
	if !ok {
		return v, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 source: %w", err)
	}
	return data, nil
}

// withSource opens the source described by a, runs fn and closes the source.
func (s *Server) withSource(a sourceArgs, fn func(imagesource.Source, imagesource.Mode) (interface{}, error)) (interface{}, error) {
	src, mode, err := s.open(a)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return fn(src, mode)
}

// === Basic Image Information Handlers ===

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a sourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.withSource(a, func(src imagesource.Source, mode imagesource.Mode) (interface{}, error) {
		return imaging.Describe(src, mode)
	})
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a sourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.withSource(a, func(src imagesource.Source, _ imagesource.Mode) (interface{}, error) {
		return imaging.Dimensions(src)
	})
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	sourceArgs
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return s.withSource(a.sourceArgs, func(src imagesource.Source, mode imagesource.Mode) (interface{}, error) {
		return imaging.Crop(src, mode, imaging.Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}, a.Scale)
	})
}

type imageCropQuadrantArgs struct {
	sourceArgs
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return s.withSource(a.sourceArgs, func(src imagesource.Source, mode imagesource.Mode) (interface{}, error) {
		return imaging.CropQuadrant(src, mode, a.Region, a.Scale)
	})
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	sourceArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.withSource(a.sourceArgs, func(src imagesource.Source, mode imagesource.Mode) (interface{}, error) {
		return imaging.SampleColor(src, mode, a.X, a.Y)
	})
}

type imageSampleColorsMultiArgs struct {
	sourceArgs
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.withSource(a.sourceArgs, func(src imagesource.Source, mode imagesource.Mode) (interface{}, error) {
		return imaging.SampleColors(src, mode, a.Points)
	})
}

package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sourceProperties are shared by every tool: where the image comes from and
// how to decode it.
func sourceProperties() map[string]interface{} {
	return map[string]interface{}{
		"source": map[string]interface{}{
			"description": "Image source: a string is an absolute file path; an object {\"base64\": \"...\"} is an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP).",
			"oneOf": []interface{}{
				map[string]interface{}{"type": "string"},
				map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"base64": map[string]interface{}{"type": "string"},
					},
					"required": []string{"base64"},
				},
			},
		},
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file (used when source is omitted)",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"description": "Decode mode: color (default), grayscale, unchanged, reduced-color-2/4/8 or reduced-grayscale-2/4/8. Append +ignore-orientation to skip EXIF rotation.",
		},
	}
}

// schema builds an object schema from the shared source properties plus extra.
func schema(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := sourceProperties()
	for k, v := range extra {
		props[k] = v
	}
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Decode an image from a file path or base64 buffer and report its dimensions, channels, bit depth and format after the decode mode is applied.",
			InputSchema: schema(nil),
		},
		{
			Name:        "image_dimensions",
			Description: "Read the width, height, format and EXIF orientation of an image from its header, without decoding pixels.",
			InputSchema: schema(nil),
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Coordinates refer to the decoded image.",
			InputSchema: schema(map[string]interface{}{
				"x1": intProp("Left edge X coordinate (0-based)"),
				"y1": intProp("Top edge Y coordinate (0-based)"),
				"x2": intProp("Right edge X coordinate (exclusive)"),
				"y2": intProp("Bottom edge Y coordinate (exclusive)"),
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor for output (default: 1.0)",
					"default":     1.0,
				},
			}, "x1", "y1", "x2", "y2"),
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center) and return it as base64-encoded PNG.",
			InputSchema: schema(map[string]interface{}{
				"region": map[string]interface{}{
					"type": "string",
					"enum": []string{
						"top-left", "top-right", "bottom-left", "bottom-right",
						"top-half", "bottom-half", "left-half", "right-half", "center",
					},
					"description": "Named region to extract",
				},
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor for output (default: 1.0)",
					"default":     1.0,
				},
			}, "region"),
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel in hex, RGB, RGBA and HSL. Sampling happens after the decode mode is applied.",
			InputSchema: schema(map[string]interface{}{
				"x": intProp("X coordinate (0-based)"),
				"y": intProp("Y coordinate (0-based)"),
			}, "x", "y"),
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several labeled points, decoding the image once.",
			InputSchema: schema(map[string]interface{}{
				"points": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     intProp("X coordinate"),
							"y":     intProp("Y coordinate"),
							"label": map[string]interface{}{"type": "string"},
						},
						"required": []string{"x", "y"},
					},
				},
			}, "points"),
		},
	}
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

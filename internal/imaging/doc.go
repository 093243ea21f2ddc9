// Package imaging provides image operations for the MCP server that work on
// an imagesource.Source rather than a file path.
//
// Every operation takes a Source and a decode Mode, so the same code serves
// images on disk and images passed in as encoded buffers. Each call decodes
// the source afresh; nothing is cached between calls.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and refer to the decoded
// image, after the mode was applied:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Reduced modes shrink the decoded image, so coordinates valid for
// ModeColor may be out of bounds for ModeReducedColor2.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit non-premultiplied components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// An imagesource.Source reports undecodable content as an empty image rather
// than an error. Operations here need pixels, so they turn that empty result
// into ErrUndecodable. Empty or closed sources surface the imagesource
// errors unchanged. Other errors cover invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Encoding errors during image output
package imaging

package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor represents an RGBA color with 8-bit, non-premultiplied
// components. A is 255 for fully opaque.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// LabeledPoint is a pixel coordinate with an optional label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColors decodes src once with mode and samples every point.
//
// Sampling happens after the mode is applied, so a grayscale mode yields
// gray samples and ModeColor always reports A=255. On any out-of-bounds
// point no partial results are returned.
func SampleColors(src imagesource.Source, mode imagesource.Mode, points []LabeledPoint) (*MultiColorResult, error) {
	img, err := pixels(src, mode)
	if err != nil {
		return nil, err
	}

	results := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		c, err := sampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// SampleColor decodes src with mode and returns the color at (x, y).
func SampleColor(src imagesource.Source, mode imagesource.Mode, x, y int) (*ColorResult, error) {
	img, err := pixels(src, mode)
	if err != nil {
		return nil, err
	}
	return sampleColor(img, x, y)
}

func sampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	nc := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	result := &ColorResult{
		RGB:  RGBColor{R: nc.R, G: nc.G, B: nc.B},
		RGBA: RGBAColor{R: nc.R, G: nc.G, B: nc.B, A: nc.A},
	}

	// colorful cannot recover a color from a fully transparent pixel, so
	// build it from the straight RGB values instead.
	c := colorful.Color{R: float64(nc.R) / 255, G: float64(nc.G) / 255, B: float64(nc.B) / 255}
	result.Hex = strings.ToUpper(c.Hex())
	h, s, l := c.Hsl()
	result.HSL = HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
	return result, nil
}

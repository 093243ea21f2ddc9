package imagesource

import (
	"image"
)

// Image is a decoded result. A zero Image is empty: the codec could not
// read or interpret its input.
type Image struct {
	// Pixels holds the decoded pixel data, or nil when empty.
	Pixels image.Image

	// Channels is 1 for grayscale, 3 for color and 4 when alpha is kept.
	Channels int

	// Depth is the bit depth per channel, 8 or 16.
	Depth int

	// Format is the name reported by the format decoder ("png", "jpeg", ...).
	Format string
}

// Empty reports whether decoding produced no pixels.
func (m Image) Empty() bool {
	return m.Pixels == nil || m.Pixels.Bounds().Empty()
}

// Width returns the image width in pixels, 0 when empty.
func (m Image) Width() int {
	if m.Pixels == nil {
		return 0
	}
	return m.Pixels.Bounds().Dx()
}

// Height returns the image height in pixels, 0 when empty.
func (m Image) Height() int {
	if m.Pixels == nil {
		return 0
	}
	return m.Pixels.Bounds().Dy()
}

// HasAlpha reports whether the image carries an alpha channel.
func (m Image) HasAlpha() bool {
	return m.Channels == 4
}

// alphaChannels counts an alpha channel only when some pixel uses it; RGB
// formats such as JPEG and opaque PNG still decode to RGBA types.
func alphaChannels(opaque bool) int {
	if opaque {
		return 3
	}
	return 4
}

// layout derives channel count and bit depth from the concrete image type.
func layout(img image.Image) (channels, depth int) {
	switch p := img.(type) {
	case *image.Gray:
		return 1, 8
	case *image.Gray16:
		return 1, 16
	case *image.RGBA64:
		return alphaChannels(p.Opaque()), 16
	case *image.NRGBA64:
		return alphaChannels(p.Opaque()), 16
	case *image.RGBA:
		return alphaChannels(p.Opaque()), 8
	case *image.NRGBA:
		return alphaChannels(p.Opaque()), 8
	case *image.Paletted:
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4, 8
			}
		}
		return 3, 8
	default:
		// YCbCr, CMYK and anything else without a separate alpha plane.
		return 3, 8
	}
}

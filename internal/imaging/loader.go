package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
)

// ErrUndecodable is returned by operations that need pixels when the source
// decoded to an empty image.
var ErrUndecodable = errors.New("image could not be decoded")

// ImageInfo contains metadata about a decoded image.
//
// This struct provides essential information about an image without requiring
// the caller to analyze the image data directly.
type ImageInfo struct {
	// Width is the image width in pixels, after the decode mode was applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after the decode mode was applied.
	Height int `json:"height"`

	// Format is the format reported by the decoder: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// Channels is 1 (grayscale), 3 (color) or 4 (color with alpha).
	Channels int `json:"channels"`

	// HasAlpha indicates whether the decoded image kept an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Mode is the decode mode that produced this image.
	Mode string `json:"mode"`

	// Source is the kind of source the image came from: "file" or "buffer".
	Source string `json:"source"`
}

// Describe decodes src with mode and reports what the decode produced.
//
// Parameters:
//   - src: The image source. Must be bound; an empty source returns
//     imagesource.ErrEmptySource.
//   - mode: Decode mode, passed to the codec unchanged.
//
// Returns:
//   - *ImageInfo: Metadata about the decoded image.
//   - error: Non-nil if the source is empty or closed, or ErrUndecodable if
//     the codec produced no pixels.
func Describe(src imagesource.Source, mode imagesource.Mode) (*ImageInfo, error) {
	img, err := decode(src, mode)
	if err != nil {
		return nil, err
	}

	colorDepth := "8-bit"
	if img.Depth == 16 {
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:      img.Width(),
		Height:     img.Height(),
		Format:     img.Format,
		ColorDepth: colorDepth,
		Channels:   img.Channels,
		HasAlpha:   img.HasAlpha(),
		Mode:       mode.String(),
		Source:     src.Kind().String(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
//
// This is a lightweight result type for when only dimensions are needed,
// without the additional metadata provided by ImageInfo.
type DimensionsResult struct {
	// Width is the image width in pixels, as stored.
	Width int `json:"width"`

	// Height is the image height in pixels, as stored.
	Height int `json:"height"`

	// Format is the format reported by the header decoder.
	Format string `json:"format"`

	// Orientation is the EXIF orientation tag, omitted when absent.
	Orientation int `json:"orientation,omitempty"`
}

// Dimensions reads the image header without decoding pixels.
func Dimensions(src imagesource.Source) (*DimensionsResult, error) {
	info, err := src.Probe()
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:       info.Width,
		Height:      info.Height,
		Format:      info.Format,
		Orientation: info.Orientation,
	}, nil
}

// decode turns the soft empty-image result into ErrUndecodable for
// operations that cannot proceed without pixels.
func decode(src imagesource.Source, mode imagesource.Mode) (imagesource.Image, error) {
	img, err := src.Image(mode)
	if err != nil {
		return img, err
	}
	if img.Empty() {
		return img, fmt.Errorf("%s: %w", src, ErrUndecodable)
	}
	return img, nil
}

// pixels decodes src and returns just the pixel data.
func pixels(src imagesource.Source, mode imagesource.Mode) (image.Image, error) {
	img, err := decode(src, mode)
	if err != nil {
		return nil, err
	}
	return img.Pixels, nil
}

package imagesource

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Codec turns encoded image data into an Image. Implementations follow the
// silent-empty convention: content that cannot be read or interpreted yields
// an empty Image, never an error.
type Codec interface {
	DecodeFile(path string, mode Mode) Image
	DecodeBytes(data []byte, mode Mode) Image
}

// StdCodec decodes using the registered Go image format decoders. It holds
// no mutable state and is safe for concurrent use.
type StdCodec struct {
	log zerolog.Logger
}

// NewCodec returns a StdCodec that reports decode failures to log at debug
// level.
func NewCodec(log zerolog.Logger) *StdCodec {
	return &StdCodec{log: log}
}

// DecodeFile reads and decodes the file at path.
func (c *StdCodec) DecodeFile(path string, mode Mode) Image {
	f, err := os.Open(path)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("failed to open image")
		return Image{}
	}
	defer f.Close()

	img := c.decode(f, mode)
	if img.Empty() {
		c.log.Debug().Str("path", path).Stringer("mode", mode).Msg("failed to decode image file")
	}
	return img
}

// DecodeBytes decodes the encoded image held in data. data is only read.
func (c *StdCodec) DecodeBytes(data []byte, mode Mode) Image {
	if len(data) == 0 {
		return Image{}
	}
	img := c.decode(bytes.NewReader(data), mode)
	if img.Empty() {
		c.log.Debug().Int("bytes", len(data)).Stringer("mode", mode).Msg("failed to decode image buffer")
	}
	return img
}

func (c *StdCodec) decode(r io.ReadSeeker, mode Mode) Image {
	// Sniff the format first; imaging.Decode does not report it.
	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return Image{}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Image{}
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(!mode.IgnoresOrientation()))
	if err != nil {
		return Image{}
	}

	out := convert(img, mode)
	channels, depth := layout(out)
	return Image{Pixels: out, Channels: channels, Depth: depth, Format: format}
}

// convert applies the pixel layout a mode asks for.
func convert(img image.Image, mode Mode) image.Image {
	if mode.Base() == ModeUnchanged {
		return img
	}

	if n := mode.Reduction(); n > 1 {
		b := img.Bounds()
		w, h := max(b.Dx()/n, 1), max(b.Dy()/n, 1)
		img = imaging.Resize(img, w, h, imaging.Box)
	}

	if mode.Grayscale() {
		return toGray(dropAlpha(img))
	}
	return dropAlpha(img)
}

// toGray converts to a single 8-bit channel. bild returns the luma
// replicated over RGBA, so only the first byte of each pixel is kept.
func toGray(img *image.NRGBA) *image.Gray {
	rgba := effect.Grayscale(img)
	gray := image.NewGray(rgba.Bounds())
	for i := range gray.Pix {
		gray.Pix[i] = rgba.Pix[i*4]
	}
	return gray
}

// dropAlpha discards the alpha channel, keeping the straight color values.
func dropAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

package imagesource

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// Info is image metadata read without decoding pixels.
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Orientation is the EXIF orientation tag (1-8), or 0 when absent.
	// Width and Height are as stored, before orientation is applied.
	Orientation int `json:"orientation,omitempty"`
}

// Probe reads the image header and EXIF orientation.
//
// Unlike Image, a probe that cannot read or recognize the data returns an
// error, since there is no empty result to fall back on.
func (s Source) Probe() (Info, error) {
	sh, err := s.bound()
	if err != nil {
		return Info{}, err
	}

	rc, err := sh.strat.open()
	if err != nil {
		return Info{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer rc.Close()

	// Headers and EXIF live at the front of the file; buffer just that
	// much so both passes can read it.
	var head bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(rc, &head))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read image header: %w", err)
	}

	info := Info{Format: format, Width: cfg.Width, Height: cfg.Height}
	if format == "jpeg" || format == "tiff" {
		info.Orientation = orientation(io.MultiReader(&head, rc))
	}
	return info, nil
}

func orientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

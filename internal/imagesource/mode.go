package imagesource

import (
	"fmt"
	"strings"
)

// Mode selects how pixel data is produced during decode. The Source itself
// never interprets it; the value is handed to the Codec unchanged.
type Mode int

// The base values are renumbered so the zero Mode is color: 0 color,
// 1 grayscale, 2 unchanged. The reduced modes keep the OpenCV IMREAD values
// (16/17, 32/33, 64/65) and ModeIgnoreOrientation keeps 128, but a reduced
// mode is not the scale factor OR-ed with a base mode.
const (
	// ModeColor decodes to three channels, discarding any alpha.
	ModeColor Mode = 0

	// ModeGrayscale decodes to a single 8-bit channel.
	ModeGrayscale Mode = 1

	// ModeUnchanged returns the image as the format decoder produced it,
	// alpha included. EXIF orientation is not applied.
	ModeUnchanged Mode = 2

	ModeReducedGrayscale2 Mode = 16
	ModeReducedColor2     Mode = 17
	ModeReducedGrayscale4 Mode = 32
	ModeReducedColor4     Mode = 33
	ModeReducedGrayscale8 Mode = 64
	ModeReducedColor8     Mode = 65

	// ModeIgnoreOrientation may be OR-ed with any other mode to skip EXIF
	// orientation correction.
	ModeIgnoreOrientation Mode = 128
)

var modeNames = map[Mode]string{
	ModeColor:             "color",
	ModeGrayscale:         "grayscale",
	ModeUnchanged:         "unchanged",
	ModeReducedGrayscale2: "reduced-grayscale-2",
	ModeReducedColor2:     "reduced-color-2",
	ModeReducedGrayscale4: "reduced-grayscale-4",
	ModeReducedColor4:     "reduced-color-4",
	ModeReducedGrayscale8: "reduced-grayscale-8",
	ModeReducedColor8:     "reduced-color-8",
}

// Base strips ModeIgnoreOrientation.
func (m Mode) Base() Mode {
	return m &^ ModeIgnoreOrientation
}

// IgnoresOrientation reports whether EXIF orientation should be skipped.
// ModeUnchanged always ignores it.
func (m Mode) IgnoresOrientation() bool {
	return m&ModeIgnoreOrientation != 0 || m.Base() == ModeUnchanged
}

// Grayscale reports whether the mode yields a single channel.
func (m Mode) Grayscale() bool {
	switch m.Base() {
	case ModeGrayscale, ModeReducedGrayscale2, ModeReducedGrayscale4, ModeReducedGrayscale8:
		return true
	}
	return false
}

// Reduction returns the downscale divisor for reduced modes, or 1.
func (m Mode) Reduction() int {
	switch m.Base() {
	case ModeReducedGrayscale2, ModeReducedColor2:
		return 2
	case ModeReducedGrayscale4, ModeReducedColor4:
		return 4
	case ModeReducedGrayscale8, ModeReducedColor8:
		return 8
	}
	return 1
}

func (m Mode) String() string {
	name, ok := modeNames[m.Base()]
	if !ok {
		name = fmt.Sprintf("mode(%d)", int(m.Base()))
	}
	if m&ModeIgnoreOrientation != 0 {
		name += "+ignore-orientation"
	}
	return name
}

// ParseMode converts a textual mode such as "grayscale" or
// "color+ignore-orientation" into a Mode. An empty string yields ModeColor.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeColor, nil
	}

	var mode Mode
	base, flag, hasFlag := strings.Cut(s, "+")
	if hasFlag {
		if flag != "ignore-orientation" {
			return 0, fmt.Errorf("unknown decode mode flag %q", flag)
		}
		mode |= ModeIgnoreOrientation
	}

	for m, name := range modeNames {
		if name == base {
			return mode | m, nil
		}
	}
	return 0, fmt.Errorf("unknown decode mode %q", base)
}

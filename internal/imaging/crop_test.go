package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
)

// decodeResult turns a CropResult back into an image.
func decodeResult(t *testing.T, result *CropResult) image.Image {
	t.Helper()
	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	src := bufferSource(t, createPatternImage(100, 100))

	result, err := Crop(src, imagesource.ModeColor, Region{0, 0, 50, 50}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	// Center pixel of the top-left quadrant is red.
	r, g, b, _ := decodeResult(t, result).At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("cropped image color: got (%d,%d,%d), want (255,0,0)", r>>8, g>>8, b>>8)
	}
}

func TestCrop_FromFile(t *testing.T) {
	imgPath := createTestImage(t, 80, 60, color.RGBA{0, 0, 255, 255})
	defer os.Remove(imgPath)

	result, err := Crop(imagesource.FromFile(imgPath, quiet), imagesource.ModeColor, Region{10, 10, 30, 40}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 20 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 20x30", result.Width, result.Height)
	}
}

func TestCrop_Scale(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255}))

	tests := []struct {
		name         string
		region       Region
		scale        float64
		wantW, wantH int
	}{
		{"up 2x", Region{0, 0, 50, 50}, 2.0, 100, 100},
		{"down 0.5x", Region{0, 0, 100, 100}, 0.5, 50, 50},
		{"zero means none", Region{0, 0, 40, 20}, 0, 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(src, imagesource.ModeColor, tt.region, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCrop_ReducedModeBounds(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255}))

	if _, err := Crop(src, imagesource.ModeReducedColor2, Region{0, 0, 50, 50}, 1.0); err != nil {
		t.Errorf("Crop within reduced bounds failed: %v", err)
	}
	if _, err := Crop(src, imagesource.ModeReducedColor2, Region{0, 0, 51, 50}, 1.0); err == nil {
		t.Error("Crop should fail outside the reduced image")
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255}))

	tests := []struct {
		name   string
		region Region
	}{
		{"x1 negative", Region{-1, 0, 50, 50}},
		{"y2 too large", Region{0, 0, 50, 101}},
		{"all out of bounds", Region{-1, -1, 200, 200}},
		{"x1 >= x2", Region{50, 0, 50, 50}},
		{"y1 > y2", Region{0, 60, 50, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(src, imagesource.ModeColor, tt.region, 1.0); err == nil {
				t.Error("Crop should fail for invalid region")
			}
		})
	}
}

func TestCropQuadrant(t *testing.T) {
	src := bufferSource(t, createPatternImage(100, 100))

	tests := []struct {
		region       string
		wantW, wantH int
		wantHex      string
	}{
		{"top-left", 50, 50, "#FF0000"},
		{"top-right", 50, 50, "#00FF00"},
		{"bottom-left", 50, 50, "#0000FF"},
		{"bottom-right", 50, 50, "#FFFFFF"},
		{"top-half", 100, 50, ""},
		{"bottom-half", 100, 50, ""},
		{"left-half", 50, 100, ""},
		{"right-half", 50, 100, ""},
		{"center", 50, 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := CropQuadrant(src, imagesource.ModeColor, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropQuadrant(%s) failed: %v", tt.region, err)
			}

			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Width, result.Height, tt.wantW, tt.wantH)
			}
			if tt.wantHex == "" {
				return
			}

			cropped := bufferSource(t, decodeResult(t, result))
			c, err := SampleColor(cropped, imagesource.ModeColor, result.Width/2, result.Height/2)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if c.Hex != tt.wantHex {
				t.Errorf("color in %s: got %s, want %s", tt.region, c.Hex, tt.wantHex)
			}
		})
	}
}

func TestCropQuadrant_InvalidRegion(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255}))

	for _, region := range []string{"invalid", "TOP-LEFT", "middle", "", "center-left"} {
		t.Run(region, func(t *testing.T) {
			if _, err := CropQuadrant(src, imagesource.ModeColor, region, 1.0); err == nil {
				t.Errorf("CropQuadrant should fail for invalid region %q", region)
			}
		})
	}
}

func TestCropQuadrant_OddDimensions(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(101, 101, color.RGBA{255, 0, 0, 255}))

	result, err := CropQuadrant(src, imagesource.ModeGrayscale, "top-left", 1.0)
	if err != nil {
		t.Fatalf("CropQuadrant with odd dimensions failed: %v", err)
	}

	// 101/2 = 50 (integer division)
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
}

func TestCrop_EmptySource(t *testing.T) {
	if _, err := Crop(imagesource.Source{}, imagesource.ModeColor, Region{0, 0, 1, 1}, 1.0); err == nil {
		t.Error("Crop should fail for an empty source")
	}
}

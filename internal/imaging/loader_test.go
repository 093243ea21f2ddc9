package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
)

var quiet = imagesource.WithLogger(zerolog.Nop())

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// bufferSource encodes img as PNG and wraps the bytes in a buffer source.
func bufferSource(t *testing.T, img image.Image) imagesource.Source {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return imagesource.FromBytes(buf.Bytes(), quiet)
}

func TestDescribe_File(t *testing.T) {
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})
	defer os.Remove(imgPath)

	info, err := Describe(imagesource.FromFile(imgPath, quiet), imagesource.ModeUnchanged)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.Source != "file" {
		t.Errorf("Source: got %s, want file", info.Source)
	}
	if info.Mode != "unchanged" {
		t.Errorf("Mode: got %s, want unchanged", info.Mode)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
}

func TestDescribe_Modes(t *testing.T) {
	src := bufferSource(t, createInMemoryImage(64, 48, color.NRGBA{10, 20, 30, 200}))

	tests := []struct {
		mode         imagesource.Mode
		wantChannels int
		wantAlpha    bool
		wantW, wantH int
	}{
		{imagesource.ModeColor, 3, false, 64, 48},
		{imagesource.ModeGrayscale, 1, false, 64, 48},
		{imagesource.ModeUnchanged, 4, true, 64, 48},
		{imagesource.ModeReducedColor2, 3, false, 32, 24},
		{imagesource.ModeReducedGrayscale8, 1, false, 8, 6},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			info, err := Describe(src, tt.mode)
			if err != nil {
				t.Fatalf("Describe failed: %v", err)
			}
			if info.Channels != tt.wantChannels {
				t.Errorf("Channels: got %d, want %d", info.Channels, tt.wantChannels)
			}
			if info.HasAlpha != tt.wantAlpha {
				t.Errorf("HasAlpha: got %v, want %v", info.HasAlpha, tt.wantAlpha)
			}
			if info.Width != tt.wantW || info.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", info.Width, info.Height, tt.wantW, tt.wantH)
			}
			if info.Source != "buffer" {
				t.Errorf("Source: got %s, want buffer", info.Source)
			}
		})
	}
}

func TestDescribe_Gray16(t *testing.T) {
	info, err := Describe(bufferSource(t, image.NewGray16(image.Rect(0, 0, 4, 4))), imagesource.ModeUnchanged)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if info.ColorDepth != "16-bit" {
		t.Errorf("ColorDepth: got %s, want 16-bit", info.ColorDepth)
	}
}

func TestDescribe_NonExistent(t *testing.T) {
	_, err := Describe(imagesource.FromFile("/nonexistent/image.png", quiet), imagesource.ModeColor)
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("Describe should fail with ErrUndecodable, got %v", err)
	}
}

func TestDescribe_InvalidImage(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = Describe(imagesource.FromFile(tmpFile.Name(), quiet), imagesource.ModeColor)
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("Describe should fail with ErrUndecodable, got %v", err)
	}
}

func TestDescribe_EmptySource(t *testing.T) {
	_, err := Describe(imagesource.Source{}, imagesource.ModeColor)
	if !errors.Is(err, imagesource.ErrEmptySource) {
		t.Errorf("Describe should fail with ErrEmptySource, got %v", err)
	}
}

func TestDescribe_ConcurrentAccess(t *testing.T) {
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)
	src := imagesource.FromFile(imgPath, quiet)

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Describe(src, imagesource.ModeColor); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Describe error: %v", err)
	}
}

func TestDimensions(t *testing.T) {
	imgPath := createTestImage(t, 300, 200, color.RGBA{100, 100, 100, 255})
	defer os.Remove(imgPath)

	dims, err := Dimensions(imagesource.FromFile(imgPath, quiet))
	if err != nil {
		t.Fatalf("Dimensions failed: %v", err)
	}

	if dims.Width != 300 {
		t.Errorf("Width: got %d, want 300", dims.Width)
	}
	if dims.Height != 200 {
		t.Errorf("Height: got %d, want 200", dims.Height)
	}
	if dims.Format != "png" {
		t.Errorf("Format: got %s, want png", dims.Format)
	}
}

func TestDimensions_NonExistent(t *testing.T) {
	_, err := Dimensions(imagesource.FromFile(filepath.Join(t.TempDir(), "missing.png"), quiet))
	if err == nil {
		t.Error("Dimensions should fail for non-existent file")
	}
}

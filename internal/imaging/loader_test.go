package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// solidImage creates a w×h RGBA image filled with one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// writeTestPNG writes img as name under dir and returns the full path.
func writeTestPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write PNG: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", solidImage(12, 8, color.RGBA{10, 20, 30, 255}))

	cache := NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 12 || bounds.Dy() != 8 {
		t.Errorf("dimensions: got %dx%d, want 12x8", bounds.Dx(), bounds.Dy())
	}
}

func TestImageCache_ServesFromMemory(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", solidImage(4, 4, color.RGBA{10, 20, 30, 255}))

	cache := NewImageCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}

	// The second load must not touch the filesystem.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if _, err := cache.Load(path); err != nil {
		t.Errorf("cached Load failed after file removal: %v", err)
	}
}

func TestImageCache_Evict(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", solidImage(4, 4, color.RGBA{10, 20, 30, 255}))

	cache := NewImageCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Evict(path)
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load after Evict should re-read the (now missing) file and fail")
	}
}

func TestImageCache_Clear(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "a.png", solidImage(4, 4, color.RGBA{10, 20, 30, 255}))

	cache := NewImageCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load after Clear should re-read the (now missing) file and fail")
	}
}

func TestImageCache_MissingFile(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/image.png")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to open image") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestImageCache_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_an_image.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	cache := NewImageCache()
	_, err := cache.Load(path)
	if err == nil {
		t.Fatal("expected error for non-image file")
	}
	if !strings.Contains(err.Error(), "failed to decode image") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "info.png", solidImage(20, 10, color.RGBA{100, 150, 200, 255}))

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.ColorMode != "rgba" {
		t.Errorf("ColorMode: got %q, want rgba", info.ColorMode)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
}

func TestLoadImageInfo_GrayscaleMode(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "gray.png", image.NewGray(image.Rect(0, 0, 5, 5)))

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.ColorMode != "gray" {
		t.Errorf("ColorMode: got %q, want gray", info.ColorMode)
	}
}

func TestGetDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "dims.png", solidImage(33, 7, color.RGBA{0, 0, 0, 255}))

	dims, err := GetDimensions(NewImageCache(), path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 33 || dims.Height != 7 {
		t.Errorf("dimensions: got %dx%d, want 33x7", dims.Width, dims.Height)
	}
}

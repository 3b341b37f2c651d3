package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/ironsheep/image-compare-mcp/internal/compare"
)

// cached pairs a decoded image with the format name the decoder reported.
type cached struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images so a photo
// referenced by several tool calls is read from disk once.
//
// Images are keyed by the exact path string given to Load; a relative and
// an absolute path to the same file are separate entries. Entries stay in
// memory until evicted.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cached
}

// NewImageCache creates an empty cache, ready for concurrent use.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cached),
	}
}

// Load returns the decoded image at path, reading and decoding the file on
// the first call and serving from memory afterwards. PNG, JPEG, and GIF
// are supported.
func (c *ImageCache) Load(path string) (image.Image, error) {
	img, _, err := c.load(path)
	return img, err
}

func (c *ImageCache) load(path string) (image.Image, string, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry.img, entry.format, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = cached{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Clear removes all cached images, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cached)
	c.mu.Unlock()
}

// Evict removes a single cached image by the exact path it was loaded
// with. Evicting an unknown path does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a loaded image file.
type ImageInfo struct {
	// Width and Height are the decoded dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the name reported by the decoder: "png", "jpeg", or "gif".
	Format string `json:"format"`

	// ColorMode is the comparison engine's mode tag for the decoded image.
	// Two files are comparable only when their modes match.
	ColorMode string `json:"color_mode"`

	// FileSizeBytes is the encoded size on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
// The ColorMode field is the same tag the comparison operations validate,
// so callers can predict whether two files will be accepted as a pair.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, format, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorMode:     string(compare.Mode(img)),
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains just the width and height of an image, for
// callers that do not need the full ImageInfo.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads an image through the cache and returns its size.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

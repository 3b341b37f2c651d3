package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one quantized color and its share of the image's pixels.
type PaletteEntry struct {
	Hex        string  `json:"hex"`        // "#RRGGBB", quantized
	R          uint8   `json:"r"`          // Red component (quantized)
	G          uint8   `json:"g"`          // Green component (quantized)
	B          uint8   `json:"b"`          // Blue component (quantized)
	Percentage float64 `json:"percentage"` // Share of pixels (0-100)
}

// Palette extracts the count most frequent colors of an image, most common
// first. Channels are quantized to 16 levels ((v/16)*16) so near-identical
// shades group into one entry. Returns nil for a zero-area image.
func Palette(img image.Image, count int) []PaletteEntry {
	bounds := img.Bounds()
	counts := make(map[[3]uint8]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := [3]uint8{
				uint8((r >> 8) / 16 * 16),
				uint8((g >> 8) / 16 * 16),
				uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	entries := make([]PaletteEntry, 0, len(counts))
	for key, n := range counts {
		entries = append(entries, PaletteEntry{
			Hex:        fmt.Sprintf("#%02X%02X%02X", key[0], key[1], key[2]),
			R:          key[0],
			G:          key[1],
			B:          key[2],
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})

	if len(entries) > count {
		entries = entries[:count]
	}
	return entries
}

// PaletteDistanceResult describes how far apart two images' dominant
// palettes sit, along with the palettes themselves.
type PaletteDistanceResult struct {
	// Distance is the weighted mean CIE-Lab distance between the two
	// palettes. 0 means identical palettes; values grow with perceptual
	// color difference (Lab distances around 1.0 span e.g. black to white).
	Distance float64 `json:"distance"`

	PaletteA []PaletteEntry `json:"palette_a"`
	PaletteB []PaletteEntry `json:"palette_b"`
}

// PaletteDistance compares the dominant palettes of two images in CIE-Lab
// space. Unlike the pixel-exact comparison engine, this ignores layout
// entirely: a mirrored copy of a photo has distance 0.
//
// The measure is symmetric: each palette color is matched to its nearest
// color in the other palette, distances are weighted by the color's pixel
// share, and both directions are averaged.
func PaletteDistance(a, b image.Image, count int) (*PaletteDistanceResult, error) {
	if count < 1 {
		return nil, fmt.Errorf("palette size must be positive, got %d", count)
	}

	paletteA := Palette(a, count)
	paletteB := Palette(b, count)
	if len(paletteA) == 0 || len(paletteB) == 0 {
		return nil, fmt.Errorf("cannot build a palette for a zero-area image")
	}

	distance := (nearestDistance(paletteA, paletteB) + nearestDistance(paletteB, paletteA)) / 2

	return &PaletteDistanceResult{
		Distance: distance,
		PaletteA: paletteA,
		PaletteB: paletteB,
	}, nil
}

// nearestDistance is the percentage-weighted mean Lab distance from each
// color in from to its closest color in to.
func nearestDistance(from, to []PaletteEntry) float64 {
	var sum, weight float64
	for _, entry := range from {
		c := labColor(entry)
		best := math.Inf(1)
		for _, other := range to {
			if d := c.DistanceLab(labColor(other)); d < best {
				best = d
			}
		}
		sum += best * entry.Percentage
		weight += entry.Percentage
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

func labColor(e PaletteEntry) colorful.Color {
	return colorful.Color{
		R: float64(e.R) / 255.0,
		G: float64(e.G) / 255.0,
		B: float64(e.B) / 255.0,
	}
}

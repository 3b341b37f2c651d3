package compare

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ITU-R BT.601 luminance weights, matching the grayscale reduction used
// throughout this codebase. The weights sum to 1.0, so a pixel differing by
// the same amount in all three channels diffs to exactly that amount.
const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

// PixelDiff computes the per-pixel difference between two images of
// identical dimensions and color mode.
//
// Each pixel of the result is the per-channel absolute difference collapsed
// to 8-bit luminance, so brighter pixels mark larger differences. Neither
// input is mutated; the returned grayscale image is a fresh allocation with
// origin (0,0).
//
// Returns *IncompatibleImagesError if the dimensions or color modes differ.
// The error message carries both offending values.
func PixelDiff(a, b image.Image) (*image.Gray, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, &IncompatibleImagesError{
			Reason: "size",
			A:      formatSize(ab),
			B:      formatSize(bb),
		}
	}
	if ma, mb := Mode(a), Mode(b); ma != mb {
		return nil, &IncompatibleImagesError{
			Reason: "mode",
			A:      string(ma),
			B:      string(mb),
		}
	}

	w, h := ab.Dx(), ab.Dy()
	diff := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()

			// Convert from 16-bit to 8-bit, then diff per channel
			dr := absDiff(uint8(ar>>8), uint8(br>>8))
			dg := absDiff(uint8(ag>>8), uint8(bg>>8))
			db := absDiff(uint8(abl>>8), uint8(bbl>>8))

			lum := math.Round(lumR*float64(dr) + lumG*float64(dg) + lumB*float64(db))
			diff.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return diff, nil
}

// Histogram counts pixels at each of the 256 intensity levels of a
// single-channel difference image.
type Histogram [256]int

// HistogramOf builds the intensity histogram of a difference image.
func HistogramOf(diff *image.Gray) Histogram {
	var h Histogram
	bounds := diff.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			h[diff.GrayAt(x, y).Y]++
		}
	}
	return h
}

// WeightedSum returns the intensity-weighted pixel count, Σ level×count.
//
// Weighting by level makes this a difference magnitude score rather than a
// count of differing pixels: a pixel that differs by 200 contributes ten
// times as much as one that differs by 20.
func (h Histogram) WeightedSum() int64 {
	var sum int64
	for level, count := range h {
		sum += int64(level) * int64(count)
	}
	return sum
}

// DiffScore computes the raw difference score between two compatible
// images: the weighted histogram sum of their pixel difference.
//
// The score grows with both image area and difference magnitude, so it is
// only meaningful relative to a same-size reference; use DiffPercent for a
// normalized value.
func DiffScore(a, b image.Image) (int64, error) {
	diff, err := PixelDiff(a, b)
	if err != nil {
		return 0, err
	}
	return HistogramOf(diff).WeightedSum(), nil
}

// DiffPercent computes the difference between two images as a percentage
// of the worst possible difference for their size.
//
// The worst case is the score between an all-black and an all-white image
// of the same dimensions. Those references are always built in RGB, whatever
// the inputs' own mode; this pins the denominator scale consistently across
// mode types and keeps the percentage bounded. Since no single-channel swing
// can exceed black-to-white, the result stays within [0, 100] for inputs
// with normal 8-bit channel values.
//
// Returns *DecodeError if an input fails to decode, *IncompatibleImagesError
// if the inputs are not comparable, and *DegenerateImageError for zero-area
// inputs.
func DiffPercent(a, b Input) (float64, error) {
	imgA, err := a.decode()
	if err != nil {
		return 0, err
	}
	imgB, err := b.decode()
	if err != nil {
		return 0, err
	}
	return diffPercent(imgA, imgB)
}

// diffPercent is the decoded-image half of DiffPercent.
func diffPercent(a, b image.Image) (float64, error) {
	inputScore, err := DiffScore(a, b)
	if err != nil {
		return 0, err
	}

	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return 0, &DegenerateImageError{Width: w, Height: h}
	}

	black := imaging.New(w, h, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	white := imaging.New(w, h, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	worstScore, err := DiffScore(black, white)
	if err != nil {
		return 0, err
	}

	return float64(inputScore) / float64(worstScore) * 100, nil
}

// Equal reports whether two images are the same within tolerance, where
// tolerance is an inclusive upper bound on the difference percentage.
// Equal(a, a, 0) is always true for a valid image.
//
// Images of different sizes are trivially not equal: Equal returns false
// with a nil error rather than the strict-validation failure the scoring
// operations raise. A color mode mismatch is still an
// *IncompatibleImagesError, and decode failures are *DecodeError.
func Equal(a, b Input, tolerance float64) (bool, error) {
	imgA, err := a.decode()
	if err != nil {
		return false, err
	}
	imgB, err := b.decode()
	if err != nil {
		return false, err
	}

	// Different size means "not equal", not "invalid comparison".
	if imgA.Bounds().Dx() != imgB.Bounds().Dx() || imgA.Bounds().Dy() != imgB.Bounds().Dy() {
		return false, nil
	}

	percent, err := diffPercent(imgA, imgB)
	if err != nil {
		return false, err
	}
	return percent <= tolerance, nil
}

// EqualBytes decodes two encoded image buffers and compares them with Equal.
// Both decoded images are owned by the engine and discarded after the call.
func EqualBytes(a, b []byte, tolerance float64) (bool, error) {
	return Equal(FromBytes(a), FromBytes(b), tolerance)
}

// formatSize renders bounds as "WxH" for error messages.
func formatSize(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d", r.Dx(), r.Dy())
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// Denoise softens an image with a Gaussian blur so that sensor noise and
// compression artifacts smaller than the radius stop registering as pixel
// differences. A radius of zero or less returns the input unchanged.
//
// Blurring both sides of a comparison preserves identity: a blurred image
// still diffs to zero against a blurred copy of itself. It does change the
// images' color mode to RGBA, so callers must denoise either both images
// of a pair or neither.
func Denoise(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}

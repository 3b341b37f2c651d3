package compare

import (
	"bytes"
	"errors"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// ColorMode is an opaque tag identifying the pixel layout of a decoded
// image. Modes are only ever compared for equality; two images are
// comparable when their tags match.
type ColorMode string

// Color mode tags derived from the decoded image's concrete type.
const (
	ModeGray     ColorMode = "gray"
	ModeRGBA     ColorMode = "rgba"
	ModeYCbCr    ColorMode = "ycbcr"
	ModeCMYK     ColorMode = "cmyk"
	ModePaletted ColorMode = "paletted"
	ModeUnknown  ColorMode = "unknown"
)

// Mode reports the color mode tag for img.
//
// The tag follows the concrete Go image type, which in turn follows the
// source format: grayscale PNGs decode to *image.Gray, truecolor PNGs to
// *image.RGBA or *image.NRGBA, JPEGs to *image.YCbCr, and so on. Types this
// package does not recognize map to ModeUnknown and compare equal only to
// each other.
func Mode(img image.Image) ColorMode {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return ModeRGBA
	case *image.YCbCr, *image.NYCbCrA:
		return ModeYCbCr
	case *image.CMYK:
		return ModeCMYK
	case *image.Paletted:
		return ModePaletted
	default:
		return ModeUnknown
	}
}

// Input selects one of the three ways an image can reach the engine:
//
//   - FromImage: an already-decoded image, owned by the caller. The engine
//     never decodes, mutates, or releases it.
//   - FromBytes: an encoded image buffer. The engine decodes it and owns the
//     decoded pixels for the duration of the call.
//   - FromFile: a path to an encoded image file. The engine opens, decodes,
//     and closes the file within the call, on every exit path.
//
// The zero Input is invalid and fails to decode.
type Input struct {
	img  image.Image
	data []byte
	path string
}

// FromImage wraps a caller-owned decoded image.
func FromImage(img image.Image) Input { return Input{img: img} }

// FromBytes wraps an encoded image buffer for the engine to decode.
func FromBytes(data []byte) Input { return Input{data: data} }

// FromFile wraps a path to an encoded image file for the engine to decode.
func FromFile(path string) Input { return Input{path: path} }

// decode resolves the variant to a decoded image. Caller-owned images pass
// through untouched; bytes and paths are decoded here. Decode failures are
// reported as *DecodeError.
func (in Input) decode() (image.Image, error) {
	switch {
	case in.img != nil:
		return in.img, nil

	case in.data != nil:
		img, err := imaging.Decode(bytes.NewReader(in.data))
		if err != nil {
			return nil, &DecodeError{Source: "byte buffer", Err: err}
		}
		return img, nil

	case in.path != "":
		f, err := os.Open(in.path)
		if err != nil {
			return nil, &DecodeError{Source: in.path, Err: err}
		}
		defer f.Close()

		img, err := imaging.Decode(f)
		if err != nil {
			return nil, &DecodeError{Source: in.path, Err: err}
		}
		return img, nil

	default:
		return nil, &DecodeError{Source: "empty input", Err: errors.New("no image, bytes, or path supplied")}
	}
}

//go:build !cgo

package ocr

import "errors"

// ErrUnavailable is returned by ExtractText in builds without CGO.
var ErrUnavailable = errors.New("OCR support requires a cgo build with Tesseract installed")

// Available reports whether OCR support is compiled into this binary.
func Available() bool { return false }

// ExtractText is a stub for builds without CGO; it always fails with
// ErrUnavailable.
func ExtractText(path, language string) (string, error) {
	return "", ErrUnavailable
}

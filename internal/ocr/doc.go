// Package ocr extracts text from images via Tesseract, for the text-level
// comparison tool.
//
// The Tesseract binding (gosseract/v2) needs CGO and a system Tesseract
// installation, so it is gated behind the cgo build tag. Plain builds get a
// stub whose ExtractText always fails with ErrUnavailable; callers should
// check Available() before offering text comparison.
package ocr

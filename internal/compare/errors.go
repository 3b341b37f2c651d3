package compare

import "fmt"

// IncompatibleImagesError reports a comparison between images that do not
// share dimensions or color mode. It carries both offending values so the
// caller can see exactly what clashed. This is a contract violation on the
// caller's side and is never retried or coerced away.
type IncompatibleImagesError struct {
	// Reason names the mismatched attribute: "size" or "mode".
	Reason string

	// A and B are the offending values, formatted for diagnostics
	// (e.g. "10x10" vs "5x5", or "gray" vs "rgba").
	A, B string
}

func (e *IncompatibleImagesError) Error() string {
	return fmt.Sprintf("cannot compare images with different %s: A=%s B=%s", e.Reason, e.A, e.B)
}

// DecodeError reports that a byte buffer or file path could not be decoded
// into an image. The underlying decoder error is available via Unwrap.
type DecodeError struct {
	// Source identifies the failed input: a file path, or "byte buffer".
	Source string

	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image from %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DegenerateImageError reports a zero-area input, for which the black/white
// worst-case reference would contain no pixels and the percentage would be
// a division by zero.
type DegenerateImageError struct {
	Width, Height int
}

func (e *DegenerateImageError) Error() string {
	return fmt.Sprintf("degenerate image size %dx%d: worst-case reference has no pixels", e.Width, e.Height)
}

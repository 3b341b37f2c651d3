// Package compare implements perceptual image comparison with a normalized
// difference score and a tolerance-based equality test.
//
// The comparison pipeline is a straight line: validate that the two images
// share dimensions and color mode, take the per-pixel per-channel absolute
// difference, collapse it to a single luminance channel, sum the intensity
// histogram weighted by level, and normalize that score against the worst
// possible score for images of the same size (an all-black vs all-white
// pair). The result is a percentage in [0, 100].
//
// # Input Ownership
//
// Operations that can decode take an Input, an explicit variant built with
// FromImage, FromBytes, or FromFile. Images supplied with FromImage stay
// caller-owned and are never mutated or released. Bytes and file paths are
// decoded inside the engine; file handles are closed on every exit path and
// the decoded buffers live only for the duration of the call.
//
// # Error Handling
//
// Mismatched dimensions or color modes produce *IncompatibleImagesError,
// undecodable inputs produce *DecodeError, and zero-area images (for which
// no worst-case reference exists) produce *DegenerateImageError. Errors are
// returned, never logged here; the one intentional non-error negative is
// Equal's size-mismatch short circuit, where "different size" simply means
// "not equal".
//
// # Thread Safety
//
// The package holds no state. Every call operates on its inputs plus
// call-local temporaries, so independent comparisons may run concurrently.
//
// Scores are only comparable between images produced the same way: two
// JPEGs of the same scene will not diff to zero against their PNG exports.
package compare

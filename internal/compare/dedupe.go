package compare

import "errors"

// FindDuplicate checks an encoded candidate photo against a list of
// previously seen encoded photos and returns the index of the first one
// that is equal within tolerance, or -1 when the candidate is new.
//
// Entries that cannot be compared with the candidate (different color mode,
// e.g. a grayscale scan among color photos) are skipped rather than treated
// as matches; different sizes already count as "not equal" via Equal. Decode
// failures on the candidate or any stored photo are returned as *DecodeError.
func FindDuplicate(candidate []byte, existing [][]byte, tolerance float64) (int, error) {
	for i, seen := range existing {
		same, err := EqualBytes(candidate, seen, tolerance)
		if err != nil {
			var incompatible *IncompatibleImagesError
			if errors.As(err, &incompatible) {
				continue
			}
			return -1, err
		}
		if same {
			return i, nil
		}
	}
	return -1, nil
}

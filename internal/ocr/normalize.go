package ocr

import "strings"

// Normalize folds OCR output into a form stable enough to compare: case
// is lowered and every run of whitespace (Tesseract is inconsistent about
// line breaks and spacing between runs) collapses to a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

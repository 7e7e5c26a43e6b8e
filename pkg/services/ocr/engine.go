// Package ocr provides text recognition engines for receipt images.
// Recognition language is fixed to English.
package ocr

import "context"

// Engine recognizes printed text in a raster image.
type Engine interface {
	// Recognize runs OCR over the encoded image bytes and returns the
	// recognized text with line breaks preserved.
	Recognize(ctx context.Context, image []byte) (string, error)
}

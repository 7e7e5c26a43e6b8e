package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine recognizes text with a locally installed Tesseract via
// gosseract. Requires the tesseract C library and an English traineddata.
type TesseractEngine struct {
	lang string
}

// NewTesseractEngine creates a local OCR engine. An empty lang defaults to
// English.
func NewTesseractEngine(lang string) *TesseractEngine {
	if lang == "" {
		lang = "eng"
	}
	return &TesseractEngine{lang: lang}
}

// Recognize runs Tesseract over the image bytes. A fresh client per call
// keeps invocations independent; gosseract clients are not safe for
// concurrent reuse.
func (e *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.lang); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}
	return text, nil
}

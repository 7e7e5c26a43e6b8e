package ocr

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// EnhanceForOCR applies a series of image processing operations that make
// receipt text more readable for the OCR engine: grayscale for contrast,
// aggressive contrast boost, sharpening, a small brightness lift and gamma
// correction. The result is re-encoded as PNG.
func EnhanceForOCR(image []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode processed image: %w", err)
	}
	return buf.Bytes(), nil
}

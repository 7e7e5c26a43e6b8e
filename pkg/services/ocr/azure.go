package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// AzureEngine recognizes text using the Azure Computer Vision printed-text
// API.
type AzureEngine struct {
	client *computervision.BaseClient
}

// NewAzureEngine creates an engine against the given Computer Vision
// endpoint.
func NewAzureEngine(endpoint, apiKey string) *AzureEngine {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureEngine{client: &client}
}

// Recognize sends the image to the Computer Vision OCR endpoint and joins
// the recognized regions into newline-separated text.
func (e *AzureEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	reader := io.NopCloser(bytes.NewReader(image))

	result, err := e.client.RecognizePrintedTextInStream(
		ctx,
		true,
		reader,
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return flattenOCRResult(result), nil
}

// flattenOCRResult joins the OCR result's regions, lines and words back into
// plain text, one recognized line per output line.
func flattenOCRResult(result computervision.OcrResult) string {
	var sb strings.Builder
	if result.Regions == nil {
		return ""
	}
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) > 0 {
				sb.WriteString(strings.Join(words, " "))
				sb.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

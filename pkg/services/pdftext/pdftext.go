// Package pdftext extracts a PDF's text layer as positioned runs and
// reconstructs reading order from their page coordinates.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"splitscan/pkg/models"
)

// ExtractRuns reads every page's text layer in ascending page order and
// returns one slice of positioned runs per page, plus the page count.
// Runs are returned in the order the PDF emits them, which is not reading
// order; see Reconstruct.
func ExtractRuns(data []byte) (pages [][]models.PositionedTextRun, pageCount int, err error) {
	// The pdf package panics on some malformed documents; keep that from
	// crossing the package boundary.
	defer func() {
		if r := recover(); r != nil {
			pages, pageCount = nil, 0
			err = fmt.Errorf("unreadable PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount = reader.NumPage()
	pages = make([][]models.PositionedTextRun, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}

		var runs []models.PositionedTextRun
		for _, t := range page.Content().Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			runs = append(runs, models.PositionedTextRun{
				Text:  t.S,
				X:     t.X,
				Y:     t.Y,
				Width: t.W,
			})
		}
		pages = append(pages, runs)
	}

	return pages, pageCount, nil
}

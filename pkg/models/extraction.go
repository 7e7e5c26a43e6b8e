package models

import "github.com/shopspring/decimal"

func init() {
	// Prices serialize as JSON numbers, not strings; consumers do currency
	// formatting themselves.
	decimal.MarshalJSONWithoutQuotes = true
}

// File types reported in a ProcessingResult.
const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
)

// Extraction methods reported in a ProcessingResult.
const (
	MethodTextExtraction = "text-extraction"
	MethodOCR            = "ocr"
)

// ExtractedProduct is one (name, price) pair recognized on a receipt.
// Participants starts empty; assignment happens later in the bill editor.
type ExtractedProduct struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Participants []string        `json:"participants"`
}

// PositionedTextRun is one fragment of a PDF page's text layer with its
// baseline position in page coordinates. Y increases toward the top of the
// page (PDF user space).
type PositionedTextRun struct {
	Text  string
	X     float64
	Y     float64
	Width float64
}

// ProcessingResult is the extraction pipeline's output contract. It is
// self-contained and never mutated after being returned.
type ProcessingResult struct {
	Success   bool               `json:"success"`
	Text      string             `json:"text"`
	Products  []ExtractedProduct `json:"products"`
	FileType  string             `json:"fileType,omitempty"`
	PageCount int                `json:"pageCount,omitempty"`
	Method    string             `json:"method,omitempty"`
	Error     string             `json:"error,omitempty"`
}

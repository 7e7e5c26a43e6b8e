package receipt

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"splitscan/pkg/models"
	"splitscan/pkg/services/ocr"
	"splitscan/pkg/services/pdftext"
)

// ErrUnsupportedFileType is returned (inside a failed ProcessingResult) for
// uploads that are neither an image nor a PDF.
var ErrUnsupportedFileType = errors.New("unsupported file type: please upload an image or PDF")

// ProcessorOptions configures a Processor. Zero values get working defaults.
type ProcessorOptions struct {
	Filter     *Filter
	Layout     pdftext.Options
	Rasterizer *pdftext.Rasterizer
	Logger     *zap.Logger
}

func (o ProcessorOptions) withDefaults() ProcessorOptions {
	if o.Filter == nil {
		o.Filter = NewFilter()
	}
	if o.Layout == (pdftext.Options{}) {
		o.Layout = pdftext.DefaultOptions()
	}
	if o.Rasterizer == nil {
		o.Rasterizer = pdftext.NewRasterizer("", 0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Processor drives the extraction pipeline end to end. It is stateless per
// call: concurrent invocations on different files produce independent
// results, and an abandoned call simply runs to completion.
type Processor struct {
	engine ocr.Engine
	parser *Parser
	filter *Filter
	layout pdftext.Options
	log    *zap.Logger

	// Acquisition seams, overridable in tests.
	extractRuns func(data []byte) ([][]models.PositionedTextRun, int, error)
	renderPage  func(ctx context.Context, data []byte) ([]byte, error)
	enhance     func(image []byte) ([]byte, error)
}

// NewProcessor builds a processor around the given OCR engine.
func NewProcessor(engine ocr.Engine, opts ProcessorOptions) *Processor {
	opts = opts.withDefaults()
	return &Processor{
		engine:      engine,
		parser:      NewParser(opts.Filter),
		filter:      opts.Filter,
		layout:      opts.Layout,
		log:         opts.Logger,
		extractRuns: pdftext.ExtractRuns,
		renderPage:  opts.Rasterizer.RenderFirstPage,
		enhance:     ocr.EnhanceForOCR,
	}
}

// SupportedType reports whether a MIME type can be processed at all.
func SupportedType(mimeType string) bool {
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}

// ProcessFile runs the full auto-mode pipeline over an uploaded file.
// Acquisition failures come back as a failed result, never as a panic or an
// error the caller must distinguish.
func (p *Processor) ProcessFile(ctx context.Context, data []byte, mimeType string) models.ProcessingResult {
	switch {
	case mimeType == "application/pdf":
		return p.processPDF(ctx, data)
	case strings.HasPrefix(mimeType, "image/"):
		return p.processImage(ctx, data)
	default:
		p.log.Warn("rejected upload", zap.String("mimeType", mimeType))
		return failedResult(ErrUnsupportedFileType.Error())
	}
}

// ProcessReceiptAdvanced is auto mode plus the lossy title-case normalizer
// over the result. Trades name fidelity for consistent casing.
func (p *Processor) ProcessReceiptAdvanced(ctx context.Context, data []byte, mimeType string) models.ProcessingResult {
	result := p.ProcessFile(ctx, data, mimeType)
	if !result.Success {
		return result
	}
	result.Products = p.filter.Improve(result.Products)
	return result
}

// ParseReceiptText runs only the parser and filter over caller-supplied
// text. Manual mode for pasted receipts.
func (p *Processor) ParseReceiptText(text string) []models.ExtractedProduct {
	return p.parser.ParseText(text)
}

// ImproveProductDetection re-normalizes already-extracted products without
// re-running acquisition or parsing. Backs the "try different parsing"
// retry.
func (p *Processor) ImproveProductDetection(products []models.ExtractedProduct) []models.ExtractedProduct {
	return p.filter.Improve(products)
}

func (p *Processor) processImage(ctx context.Context, data []byte) models.ProcessingResult {
	text, err := p.recognize(ctx, data)
	if err != nil {
		p.log.Error("image OCR failed", zap.Error(err))
		return failedResult(err.Error())
	}

	result := models.ProcessingResult{
		Success:  true,
		Text:     text,
		Products: p.parser.ParseText(text),
		FileType: models.FileTypeImage,
		Method:   models.MethodOCR,
	}
	return finishResult(result)
}

// processPDF tries strategies in order, moving on while the previous one
// produced no products: reconstructed text layer, row-grouped raw runs, then
// OCR over a rasterized page 1.
func (p *Processor) processPDF(ctx context.Context, data []byte) models.ProcessingResult {
	pages, pageCount, err := p.extractRuns(data)
	if err != nil {
		p.log.Error("PDF text extraction failed", zap.Error(err))
		return failedResult(err.Error())
	}

	text := pdftext.Reconstruct(pages, p.layout)
	products := p.parser.ParseText(text)

	if len(products) == 0 {
		products = p.parser.ParseLines(pdftext.RowLines(pages, p.layout.RowTolerance))
	}

	if len(products) > 0 {
		return finishResult(models.ProcessingResult{
			Success:   true,
			Text:      text,
			Products:  products,
			FileType:  models.FileTypePDF,
			PageCount: pageCount,
			Method:    models.MethodTextExtraction,
		})
	}

	p.log.Info("text layer yielded no products, trying OCR fallback",
		zap.Int("pageCount", pageCount))

	png, err := p.renderPage(ctx, data)
	if err != nil {
		p.log.Error("PDF rasterization failed", zap.Error(err))
		return failedResult("failed to process PDF with both text extraction and OCR: " + err.Error())
	}

	ocrText, err := p.recognize(ctx, png)
	if err != nil {
		p.log.Error("PDF OCR fallback failed", zap.Error(err))
		return failedResult("failed to process PDF with both text extraction and OCR: " + err.Error())
	}

	// Zero products after a mechanically sound OCR pass is a valid terminal
	// state, not a failure; the caller offers manual entry from here.
	return finishResult(models.ProcessingResult{
		Success:   true,
		Text:      ocrText,
		Products:  p.parser.ParseText(ocrText),
		FileType:  models.FileTypePDF,
		PageCount: pageCount,
		Method:    models.MethodOCR,
	})
}

// recognize runs the OCR engine, preferring an enhanced copy of the image
// when the enhancement chain can decode it.
func (p *Processor) recognize(ctx context.Context, image []byte) (string, error) {
	input := image
	if enhanced, err := p.enhance(image); err == nil {
		input = enhanced
	} else {
		p.log.Debug("image enhancement skipped", zap.Error(err))
	}
	return p.engine.Recognize(ctx, input)
}

func failedResult(msg string) models.ProcessingResult {
	return models.ProcessingResult{
		Success:  false,
		Error:    msg,
		Products: []models.ExtractedProduct{},
	}
}

func finishResult(r models.ProcessingResult) models.ProcessingResult {
	if r.Products == nil {
		r.Products = []models.ExtractedProduct{}
	}
	return r
}

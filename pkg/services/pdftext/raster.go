package pdftext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// Rasterizer renders PDF pages to PNG images via poppler's pdftoppm.
type Rasterizer struct {
	// Binary is the pdftoppm executable name or absolute path.
	Binary string
	// DPI is the render resolution. 144 doubles the 72 dpi native PDF
	// resolution, enough for OCR on small receipt fonts.
	DPI int
}

// NewRasterizer builds a Rasterizer with defaults filled in.
func NewRasterizer(binary string, dpi int) *Rasterizer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 144
	}
	return &Rasterizer{Binary: binary, DPI: dpi}
}

// RenderFirstPage renders page 1 of the document to a PNG and returns its
// bytes. All intermediate files live in a temp dir removed before returning.
func (r *Rasterizer) RenderFirstPage(ctx context.Context, pdfData []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "splitscan-raster-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -f 1 -l 1 -r <DPI> -png <in.pdf> <prefix>
	cmd := exec.CommandContext(ctx, r.Binary,
		"-f", "1", "-l", "1",
		"-r", strconv.Itoa(r.DPI),
		"-png", pdfPath, prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v: %s", err, out)
	}

	// pdftoppm writes prefix-1.png (zero-padded on multi-page docs).
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no output")
	}
	sort.Strings(matches)

	png, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, err
	}
	return png, nil
}

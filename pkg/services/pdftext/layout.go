package pdftext

import (
	"math"
	"sort"
	"strings"

	"splitscan/pkg/models"
)

// Options are the layout reconstruction thresholds, in PDF user-space units.
// They are heuristics tuned against observed receipt and e-bill PDFs, not
// exact layout analysis.
type Options struct {
	// RowTolerance: runs whose baselines are within this vertical distance
	// belong to the same visual row.
	RowTolerance float64
	// LineGap: a vertical jump larger than this starts a new line.
	LineGap float64
	// ColumnGap: a horizontal gap from the previous run's right edge larger
	// than this inserts a space, so name and price columns stay separate
	// tokens.
	ColumnGap float64
}

// DefaultOptions returns the thresholds used when none are configured.
func DefaultOptions() Options {
	return Options{RowTolerance: 5, LineGap: 10, ColumnGap: 20}
}

// Reconstruct turns unordered positioned runs into text in natural reading
// order: top-to-bottom, then left-to-right within a row. Pages are joined
// with a blank line.
//
// PDF user space has its origin at the bottom-left with Y increasing upward,
// so top-of-page-first means descending Y.
func Reconstruct(pages [][]models.PositionedTextRun, opts Options) string {
	var parts []string
	for _, runs := range pages {
		parts = append(parts, reconstructPage(runs, opts))
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func reconstructPage(runs []models.PositionedTextRun, opts Options) string {
	if len(runs) == 0 {
		return ""
	}

	sorted := make([]models.PositionedTextRun, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if math.Abs(a.Y-b.Y) < opts.RowTolerance {
			return a.X < b.X
		}
		return a.Y > b.Y
	})

	var sb strings.Builder
	var lastY, lastRight float64
	first := true

	for _, run := range sorted {
		switch {
		case first:
			first = false
		case math.Abs(run.Y-lastY) > opts.LineGap:
			sb.WriteString("\n")
		case run.X-lastRight > opts.ColumnGap:
			sb.WriteString(" ")
		}
		sb.WriteString(run.Text)
		lastY = run.Y
		lastRight = run.X + run.Width
	}

	return sb.String()
}

// RowLines groups a page's runs into visual rows by baseline proximity and
// returns each row as a single space-joined line, top-to-bottom. This is the
// secondary parse used when the reconstructed text yields nothing: some PDF
// generators emit runs so fragmented that gap-based spacing scrambles them,
// but plain row grouping still lines names up with prices.
func RowLines(pages [][]models.PositionedTextRun, tolerance float64) []string {
	var lines []string
	for _, runs := range pages {
		type row struct {
			y     float64
			texts []string
			xs    []float64
		}
		var rows []row

		for _, run := range runs {
			placed := false
			for i := range rows {
				if math.Abs(rows[i].y-run.Y) < tolerance {
					rows[i].texts = append(rows[i].texts, run.Text)
					rows[i].xs = append(rows[i].xs, run.X)
					placed = true
					break
				}
			}
			if !placed {
				rows = append(rows, row{y: run.Y, texts: []string{run.Text}, xs: []float64{run.X}})
			}
		}

		sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
		for _, r := range rows {
			order := make([]int, len(r.texts))
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(i, j int) bool { return r.xs[order[i]] < r.xs[order[j]] })
			parts := make([]string, len(order))
			for i, idx := range order {
				parts[i] = r.texts[idx]
			}
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return lines
}

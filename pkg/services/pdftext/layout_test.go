package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitscan/pkg/models"
)

func run(text string, x, y, w float64) models.PositionedTextRun {
	return models.PositionedTextRun{Text: text, X: x, Y: y, Width: w}
}

func TestReconstructReadingOrder(t *testing.T) {
	// runs arrive scrambled; Y increases toward the top of the page
	pages := [][]models.PositionedTextRun{{
		run("3.50", 200, 650, 30),
		run("MILK", 10, 700, 40),
		run("BREAD", 10, 650, 50),
		run("2.99", 200, 700, 30),
	}}

	got := Reconstruct(pages, DefaultOptions())
	assert.Equal(t, "MILK 2.99\nBREAD 3.50", got)
}

func TestReconstructRowTolerance(t *testing.T) {
	// baselines 2 units apart are the same visual row, ordered by X
	pages := [][]models.PositionedTextRun{{
		run("2.99", 200, 699, 30),
		run("MILK", 10, 701, 40),
	}}

	got := Reconstruct(pages, DefaultOptions())
	assert.Equal(t, "MILK 2.99", got)
}

func TestReconstructSpacingThresholds(t *testing.T) {
	opts := DefaultOptions()

	// small horizontal gap: runs join without a space
	pages := [][]models.PositionedTextRun{{
		run("Oat", 10, 700, 30),
		run("milk", 45, 700, 30),
	}}
	assert.Equal(t, "Oatmilk", Reconstruct(pages, opts))

	// gap beyond ColumnGap: distinct columns stay separate tokens
	pages = [][]models.PositionedTextRun{{
		run("Oat", 10, 700, 30),
		run("2.99", 120, 700, 30),
	}}
	assert.Equal(t, "Oat 2.99", Reconstruct(pages, opts))
}

func TestReconstructLineBreakThreshold(t *testing.T) {
	opts := DefaultOptions()

	// a 6-unit drop is within LineGap: stays on one line
	pages := [][]models.PositionedTextRun{{
		run("MILK", 10, 700, 40),
		run("2.99", 200, 694, 30),
	}}
	assert.Equal(t, "MILK 2.99", Reconstruct(pages, opts))

	// a 15-unit drop starts a new line
	pages = [][]models.PositionedTextRun{{
		run("MILK", 10, 700, 40),
		run("BREAD", 10, 685, 50),
	}}
	assert.Equal(t, "MILK\nBREAD", Reconstruct(pages, opts))
}

func TestReconstructJoinsPagesWithBlankLine(t *testing.T) {
	pages := [][]models.PositionedTextRun{
		{run("PAGE ONE", 10, 700, 80)},
		{run("PAGE TWO", 10, 700, 80)},
	}

	got := Reconstruct(pages, DefaultOptions())
	assert.Equal(t, "PAGE ONE\n\nPAGE TWO", got)
}

func TestReconstructEmpty(t *testing.T) {
	assert.Equal(t, "", Reconstruct(nil, DefaultOptions()))
	assert.Equal(t, "", Reconstruct([][]models.PositionedTextRun{nil}, DefaultOptions()))
}

func TestRowLines(t *testing.T) {
	pages := [][]models.PositionedTextRun{{
		run("4.49", 200, 650, 30),
		run("Juice", 60, 651, 40),
		run("Orange", 10, 649, 45),
		run("MILK", 10, 700, 40),
		run("2.99", 200, 700, 30),
	}}

	got := RowLines(pages, 5)
	assert.Equal(t, []string{"MILK 2.99", "Orange Juice 4.49"}, got)
}

package draw

import "math"

// Viewport is the render area of a fixed-aspect playfield inside a terminal.
type Viewport struct {
	Width     int // Columns
	Height    int // Rows
	OffsetCol int // 0-based columns skipped before the render area
	OffsetRow int // 0-based rows skipped before the render area
}

// FitViewport sizes a render area with the given logical width/height ratio.
// The height is taken first as heightFraction of the terminal rows; when the
// resulting width does not fit, the width is capped two columns short of the
// terminal (room for the side border) and the height follows from the ratio.
// Each row holds two sub-pixels, so a ratio of 1 is twice as many columns as rows.
// minCols/minRows guard against degenerate terminals.
func FitViewport(termWidth, termHeight int, ratio, heightFraction float64, minCols, minRows int) Viewport {
	rows := int(math.Floor(float64(termHeight) * heightFraction))
	cols := int(math.Round(float64(rows) * 2 * ratio))

	if cols > termWidth {
		cols = termWidth - 2
		rows = int(math.Floor(float64(cols) / ratio / 2))
	}

	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}

	offsetCol := (termWidth - cols) / 2
	offsetRow := (termHeight - rows) / 2
	if offsetCol < 0 {
		offsetCol = 0
	}
	if offsetRow < 0 {
		offsetRow = 0
	}

	return Viewport{
		Width:     cols,
		Height:    rows,
		OffsetCol: offsetCol,
		OffsetRow: offsetRow,
	}
}

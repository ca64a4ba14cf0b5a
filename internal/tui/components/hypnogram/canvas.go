package hypnogram

import (
	"strings"

	drawille "github.com/exrook/drawille-go"
)

const (
	dotsPerCol = 2
	dotsPerRow = 4
)

// canvasRows returns exactly rows lines of exactly cols braille cells.
func canvasRows(canvas *drawille.Canvas, cols, rows int) []string {
	raw := canvas.Rows(0, 0, cols*dotsPerCol, rows*dotsPerRow)

	lines := make([]string, rows)
	for i := range rows {
		var line []rune
		if i < len(raw) {
			line = []rune(raw[i])
		}
		switch {
		case len(line) < cols:
			lines[i] = string(line) + strings.Repeat(" ", cols-len(line))
		default:
			lines[i] = string(line[:cols])
		}
	}
	return lines
}

func drawHLine(canvas *drawille.Canvas, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		canvas.Set(x, y)
	}
}

func drawVLine(canvas *drawille.Canvas, x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		canvas.Set(x, y)
	}
}

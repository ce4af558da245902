package tui

import (
	"strings"

	"github.com/go-drift/pagestatus/pkg/view"
)

// Sketch draws the texts and boxes of a laid out tree on a cols x rows
// character grid, scaling the root's bounds to fit.
func Sketch(root view.View, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	size := root.Bounds()
	sx := size.Width() / float64(cols)
	sy := size.Height() / float64(rows)
	if sx <= 0 || sy <= 0 {
		return joinGrid(grid)
	}

	view.Walk(root, func(v view.View) bool {
		if v.Visibility() != view.Visible {
			return false
		}
		b := view.AbsoluteBounds(v)
		col, row := int(b.Left/sx), int(b.Top/sy)
		switch v := v.(type) {
		case *view.Text:
			put(grid, row, col, v.Text())
		case *view.Box:
			w := max(int(b.Width()/sx), 1)
			h := max(int(b.Height()/sy), 1)
			drawBox(grid, row, col, w, h, v.Label())
		}
		return true
	})
	return joinGrid(grid)
}

func drawBox(grid [][]rune, row, col, w, h int, label string) {
	if w < 2 || h < 2 {
		put(grid, row, col, "#")
		return
	}
	put(grid, row, col, "+"+strings.Repeat("-", w-2)+"+")
	for r := row + 1; r < row+h-1; r++ {
		put(grid, r, col, "|")
		put(grid, r, col+w-1, "|")
	}
	put(grid, row+h-1, col, "+"+strings.Repeat("-", w-2)+"+")
	if label != "" && h > 2 {
		put(grid, row+h/2, col+1, truncate(label, w-2))
	}
}

// put writes s at (row, col), clipped to the grid.
func put(grid [][]rune, row, col int, s string) {
	if row < 0 || row >= len(grid) {
		return
	}
	line := grid[row]
	for i, r := range []rune(s) {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= len(line) {
			return
		}
		line[c] = r
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func joinGrid(grid [][]rune) string {
	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

package cipher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errRaggedGrid = errors.New("grid rows have different lengths")

// Grid is a rows x cols matrix of single letters used by the transposition
// ciphers. A zero cell is unfilled and renders as an empty string.
//
// Grids are mutated only while a generator builds them; every [Step] holds
// its own [Grid.Clone].
type Grid struct {
	rows  int
	cols  int
	cells []byte
}

// NewGrid returns an unfilled grid.
func NewGrid(rows, cols int) Grid {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("cipher: negative grid size %dx%d", rows, cols))
	}

	return Grid{rows: rows, cols: cols, cells: make([]byte, rows*cols)}
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// At returns the letter at (row, col), or 0 when the cell is unfilled.
func (g Grid) At(row, col int) byte {
	return g.cells[row*g.cols+col]
}

// Set writes a letter into (row, col).
func (g *Grid) Set(row, col int, c byte) {
	g.cells[row*g.cols+col] = c
}

// SetRow writes s into row r starting at column 0.
func (g *Grid) SetRow(r int, s string) {
	copy(g.cells[r*g.cols:(r+1)*g.cols], s)
}

// Row returns row r as a string; unfilled cells are skipped.
func (g Grid) Row(r int) string {
	var b strings.Builder

	for c := range g.cols {
		if ch := g.At(r, c); ch != 0 {
			b.WriteByte(ch)
		}
	}

	return b.String()
}

// Column returns column c read top to bottom; unfilled cells are skipped.
func (g Grid) Column(c int) string {
	var b strings.Builder

	for r := range g.rows {
		if ch := g.At(r, c); ch != 0 {
			b.WriteByte(ch)
		}
	}

	return b.String()
}

// ReadRows returns all rows concatenated (row-major).
func (g Grid) ReadRows() string {
	var b strings.Builder

	for r := range g.rows {
		b.WriteString(g.Row(r))
	}

	return b.String()
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	cells := make([]byte, len(g.cells))
	copy(cells, g.cells)

	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Cells returns the grid as rows of one-letter strings ("" for unfilled).
func (g Grid) Cells() [][]string {
	out := make([][]string, g.rows)

	for r := range g.rows {
		out[r] = make([]string, g.cols)

		for c := range g.cols {
			if ch := g.At(r, c); ch != 0 {
				out[r][c] = string(ch)
			}
		}
	}

	return out
}

// String renders the grid one row per line, '.' for unfilled cells.
func (g Grid) String() string {
	var b strings.Builder

	for r := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}

		for c := range g.cols {
			ch := g.At(r, c)
			if ch == 0 {
				ch = '.'
			}

			b.WriteByte(ch)
		}
	}

	return b.String()
}

// MarshalJSON encodes the grid as rows of one-letter strings.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Cells())
}

// UnmarshalJSON decodes rows of one-letter strings.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows [][]string

	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}

	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}

	grid := NewGrid(len(rows), cols)

	for r, row := range rows {
		if len(row) != cols {
			return errRaggedGrid
		}

		for c, cell := range row {
			if len(cell) > 1 {
				return fmt.Errorf("grid cell (%d,%d) holds %q, want one letter", r, c, cell)
			}

			if cell != "" {
				grid.Set(r, c, cell[0])
			}
		}
	}

	*g = grid

	return nil
}

// fillRows builds a grid of the given column count from padded text,
// writing it row-major.
func fillRows(padded string, cols int) Grid {
	rows := len(padded) / cols
	grid := NewGrid(rows, cols)

	for r := range rows {
		grid.SetRow(r, padded[r*cols:(r+1)*cols])
	}

	return grid
}

// Cell is a (row, col) coordinate. It encodes as a two-element JSON array.
type Cell struct {
	Row int
	Col int
}

// MarshalJSON encodes the cell as [row, col].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes [row, col].
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair [2]int

	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	c.Row, c.Col = pair[0], pair[1]

	return nil
}

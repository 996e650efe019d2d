package cipher

import (
	"fmt"
	"strconv"
	"strings"
)

// SpiralRoute returns every cell of a rows x cols grid in clockwise spiral
// order starting at the top-left corner: top row left to right, right
// column downwards, bottom row right to left, left column upwards, then the
// next ring inwards. Each cell appears exactly once.
func SpiralRoute(rows, cols int) []Cell {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	route := make([]Cell, 0, rows*cols)
	top, bottom, left, right := 0, rows-1, 0, cols-1

	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			route = append(route, Cell{Row: top, Col: c})
		}

		top++

		for r := top; r <= bottom; r++ {
			route = append(route, Cell{Row: r, Col: right})
		}

		right--

		if top <= bottom {
			for c := right; c >= left; c-- {
				route = append(route, Cell{Row: bottom, Col: c})
			}

			bottom--
		}

		if left <= right {
			for r := bottom; r >= top; r-- {
				route = append(route, Cell{Row: r, Col: left})
			}

			left++
		}
	}

	return route
}

// Route writes the text row by row into a grid and reads it along a
// clockwise spiral. The key is the column count.
type Route struct{}

func (Route) ID() ID          { return IDRoute }
func (Route) Name() string    { return "Route (spiral)" }
func (Route) KeyHint() string { return "number of columns (>= 2)" }

// Generate implements [Generator].
func (rt Route) Generate(req Request) Trace {
	text := Normalize(req.Text)

	cols, ok := parseColumns(req.Key)
	if text == "" || !ok {
		return emptyTrace(IDRoute, req.Mode)
	}

	base := Trace{Cipher: IDRoute, Mode: req.Mode, Input: text, Key: strconv.Itoa(cols)}

	if req.Mode == Decrypt {
		return rt.decrypt(base, text, cols)
	}

	return rt.encrypt(base, text, cols)
}

func (Route) encrypt(base Trace, text string, cols int) Trace {
	rows := ceilDiv(len(text), cols)
	padded := padTo(text, rows*cols)

	var rec recorder

	rec.add(fmt.Sprintf("Starting with plaintext: %q", text), Text{Text: text})

	if padded != text {
		rec.add(fmt.Sprintf("Padding text to fill %dx%d grid: %q", rows, cols, padded), Text{
			Text:      padded,
			Highlight: paddedPositions(len(text), len(padded)),
		})
	}

	grid := NewGrid(rows, cols)

	for r := range rows {
		row := padded[r*cols : (r+1)*cols]
		grid.SetRow(r, row)

		rec.add(fmt.Sprintf("Filling row %d: %q", r+1, row), GridView{
			Grid:         grid.Clone(),
			HighlightRow: intPtr(r),
		})
	}

	route := SpiralRoute(rows, cols)

	rec.add(fmt.Sprintf("Generated spiral route through %dx%d grid", rows, cols), GridView{
		Grid:      grid.Clone(),
		Route:     cloneCells(route),
		ShowRoute: true,
	})

	var out strings.Builder

	for i, cell := range route {
		ch := grid.At(cell.Row, cell.Col)
		out.WriteByte(ch)

		rec.add(fmt.Sprintf("Position (%d, %d): read '%c'", cell.Row+1, cell.Col+1, ch), GridView{
			Grid:    grid.Clone(),
			Route:   cloneCells(route[:i+1]),
			Current: cellPtr(cell),
			Partial: out.String(),
		})
	}

	ciphertext := out.String()

	return rec.finish(base, fmt.Sprintf("Ciphertext complete: %q", ciphertext), Result{
		Text:  ciphertext,
		Route: cloneCells(route),
	})
}

// decrypt lays the ciphertext along the spiral. Short ciphertext leaves the
// end of the route empty rather than filling it.
func (Route) decrypt(base Trace, text string, cols int) Trace {
	rows := ceilDiv(len(text), cols)
	route := SpiralRoute(rows, cols)

	var rec recorder

	rec.add(fmt.Sprintf("Starting with ciphertext: %q", text), Text{Text: text})

	grid := NewGrid(rows, cols)

	for i, cell := range route[:len(text)] {
		grid.Set(cell.Row, cell.Col, text[i])

		rec.add(fmt.Sprintf("Position (%d, %d): place '%c'", cell.Row+1, cell.Col+1, text[i]), GridView{
			Grid:    grid.Clone(),
			Route:   cloneCells(route[:i+1]),
			Current: cellPtr(cell),
		})
	}

	var out strings.Builder

	for r := range rows {
		row := grid.Row(r)
		out.WriteString(row)

		rec.add(fmt.Sprintf("Reading row %d: %q", r+1, row), GridView{
			Grid:         grid.Clone(),
			HighlightRow: intPtr(r),
			Partial:      out.String(),
		})
	}

	plaintext := stripPadding(out.String())

	return rec.finish(base, fmt.Sprintf("Plaintext complete: %q", plaintext), Result{
		Text:  plaintext,
		Route: cloneCells(route),
	})
}

func cloneCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	copy(out, cells)

	return out
}

// paddedPositions lists the indexes [from, to) that hold filler.
func paddedPositions(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}

	return out
}

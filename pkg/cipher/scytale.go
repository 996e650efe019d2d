package cipher

import (
	"fmt"
	"strconv"
	"strings"
)

// minColumns is the smallest usable grid width for the transposition
// ciphers.
const minColumns = 2

// parseColumns reads a decimal column count from key.
func parseColumns(key string) (int, bool) {
	cols, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || cols < minColumns {
		return 0, false
	}

	return cols, true
}

// Scytale writes the text row by row into a grid as wide as the key and
// reads it back column by column, like a strip wound around a rod.
type Scytale struct{}

func (Scytale) ID() ID          { return IDScytale }
func (Scytale) Name() string    { return "Scytale" }
func (Scytale) KeyHint() string { return "number of columns (>= 2)" }

// Generate implements [Generator].
func (s Scytale) Generate(req Request) Trace {
	text := Normalize(req.Text)

	cols, ok := parseColumns(req.Key)
	if text == "" || !ok {
		return emptyTrace(IDScytale, req.Mode)
	}

	base := Trace{Cipher: IDScytale, Mode: req.Mode, Input: text, Key: strconv.Itoa(cols)}

	if req.Mode == Decrypt {
		return s.decrypt(base, text, cols)
	}

	return s.encrypt(base, text, cols)
}

func (Scytale) encrypt(base Trace, text string, cols int) Trace {
	rows := ceilDiv(len(text), cols)
	padded := padTo(text, rows*cols)

	var rec recorder

	rec.add(fmt.Sprintf("Starting with plaintext: %q", text), Text{Text: text})

	grid := NewGrid(rows, cols)

	for r := range rows {
		row := padded[r*cols : (r+1)*cols]
		grid.SetRow(r, row)

		rec.add(fmt.Sprintf("Writing row %d: %q", r+1, row), GridView{
			Grid:         grid.Clone(),
			HighlightRow: intPtr(r),
		})
	}

	var out strings.Builder

	for c := range cols {
		column := grid.Column(c)
		out.WriteString(column)

		rec.add(fmt.Sprintf("Reading column %d: %q", c+1, column), GridView{
			Grid:            grid.Clone(),
			HighlightColumn: intPtr(c),
			Partial:         out.String(),
		})
	}

	ciphertext := out.String()

	return rec.finish(base, fmt.Sprintf("Ciphertext complete: %q", ciphertext), Result{Text: ciphertext})
}

// decrypt refills the grid column by column. Short ciphertext leaves the
// tail of the last row empty, the same cells an unpadded encrypt would.
func (Scytale) decrypt(base Trace, text string, cols int) Trace {
	rows := ceilDiv(len(text), cols)
	firstEmpty := cols - (rows*cols - len(text))

	var rec recorder

	rec.add(fmt.Sprintf("Starting with ciphertext: %q", text), Text{Text: text})

	grid := NewGrid(rows, cols)
	idx := 0

	for c := range cols {
		for r := range rows {
			if r == rows-1 && c >= firstEmpty {
				break
			}

			grid.Set(r, c, text[idx])
			idx++
		}

		rec.add(fmt.Sprintf("Filling column %d: %q", c+1, grid.Column(c)), GridView{
			Grid:            grid.Clone(),
			HighlightColumn: intPtr(c),
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

	return rec.finish(base, fmt.Sprintf("Plaintext complete: %q", plaintext), Result{Text: plaintext})
}

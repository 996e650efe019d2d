package cipher

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// minKeywordLen is the shortest usable columnar keyword.
const minKeywordLen = 2

// ColumnOrder ranks the letters of keyword: order[i] is the position in
// which column i is read. Letters are ranked alphabetically; repeated
// letters are ranked left to right, so the result is always a permutation
// of [0, len(keyword)).
func ColumnOrder(keyword string) []int {
	type indexed struct {
		letter byte
		index  int
	}

	pairs := make([]indexed, len(keyword))
	for i := 0; i < len(keyword); i++ {
		pairs[i] = indexed{letter: keyword[i], index: i}
	}

	slices.SortStableFunc(pairs, func(a, b indexed) int {
		if c := cmp.Compare(a.letter, b.letter); c != 0 {
			return c
		}

		return cmp.Compare(a.index, b.index)
	})

	order := make([]int, len(keyword))
	for rank, p := range pairs {
		order[p.index] = rank
	}

	return order
}

// ReadOrder inverts a column order: the result lists column indexes in the
// order they are read.
func ReadOrder(order []int) []int {
	cols := make([]int, len(order))
	for col, rank := range order {
		cols[rank] = col
	}

	return cols
}

// Columnar writes the text row by row under a keyword and reads whole
// columns in the alphabetical order of the keyword's letters.
type Columnar struct{}

func (Columnar) ID() ID          { return IDColumnar }
func (Columnar) Name() string    { return "Columnar transposition" }
func (Columnar) KeyHint() string { return "keyword (>= 2 letters)" }

// Generate implements [Generator].
func (c Columnar) Generate(req Request) Trace {
	text := Normalize(req.Text)
	keyword := Normalize(req.Key)

	if text == "" || len(keyword) < minKeywordLen {
		return emptyTrace(IDColumnar, req.Mode)
	}

	base := Trace{Cipher: IDColumnar, Mode: req.Mode, Input: text, Key: keyword}

	if req.Mode == Decrypt {
		return c.decrypt(base, text, keyword)
	}

	return c.encrypt(base, text, keyword)
}

func (Columnar) encrypt(base Trace, text, keyword string) Trace {
	cols := len(keyword)
	rows := ceilDiv(len(text), cols)
	padded := padTo(text, rows*cols)
	order := ColumnOrder(keyword)

	var rec recorder

	rec.add(fmt.Sprintf("Starting with plaintext: %q", text), Text{Text: text})
	rec.add(fmt.Sprintf("Keyword %q ranked alphabetically (repeated letters left to right)", keyword), Keyword{
		Keyword: keyword,
		Order:   slices.Clone(order),
	})

	grid := fillRows(padded, cols)

	rec.add(fmt.Sprintf("Plaintext written row-wise into %dx%d grid", rows, cols), GridView{
		Grid:    grid.Clone(),
		Keyword: keyword,
		Order:   slices.Clone(order),
	})

	var out strings.Builder

	for _, col := range ReadOrder(order) {
		out.WriteString(grid.Column(col))

		rec.add(fmt.Sprintf("Reading column %q (rank %d): %q", keyword[col], order[col]+1, grid.Column(col)), GridView{
			Grid:            grid.Clone(),
			Keyword:         keyword,
			Order:           slices.Clone(order),
			HighlightColumn: intPtr(col),
			Partial:         out.String(),
		})
	}

	ciphertext := out.String()

	return rec.finish(base, fmt.Sprintf("Ciphertext complete: %q", ciphertext), Result{Text: ciphertext})
}

func (Columnar) decrypt(base Trace, text, keyword string) Trace {
	cols := len(keyword)
	rows := ceilDiv(len(text), cols)
	firstEmpty := cols - (rows*cols - len(text))
	order := ColumnOrder(keyword)

	var rec recorder

	rec.add(fmt.Sprintf("Starting with ciphertext: %q", text), Text{Text: text})
	rec.add(fmt.Sprintf("Keyword %q ranked alphabetically (repeated letters left to right)", keyword), Keyword{
		Keyword: keyword,
		Order:   slices.Clone(order),
	})

	grid := NewGrid(rows, cols)
	idx := 0

	for _, col := range ReadOrder(order) {
		for r := range rows {
			// Short ciphertext leaves the tail of the last row empty.
			if r == rows-1 && col >= firstEmpty {
				break
			}

			grid.Set(r, col, text[idx])
			idx++
		}

		rec.add(fmt.Sprintf("Placing column %q (rank %d): %q", keyword[col], order[col]+1, grid.Column(col)), GridView{
			Grid:            grid.Clone(),
			Keyword:         keyword,
			Order:           slices.Clone(order),
			HighlightColumn: intPtr(col),
		})
	}

	var out strings.Builder

	for r := range rows {
		out.WriteString(grid.Row(r))

		rec.add(fmt.Sprintf("Reading row %d: %q", r+1, grid.Row(r)), GridView{
			Grid:         grid.Clone(),
			Keyword:      keyword,
			Order:        slices.Clone(order),
			HighlightRow: intPtr(r),
			Partial:      out.String(),
		})
	}

	plaintext := stripPadding(out.String())

	return rec.finish(base, fmt.Sprintf("Plaintext complete: %q", plaintext), Result{Text: plaintext})
}

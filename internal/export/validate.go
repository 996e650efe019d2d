package export

import (
	"errors"
	"fmt"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

var (
	errOutOfRange     = errors.New("index out of range")
	errNotPermutation = errors.New("order is not a permutation")
)

// checkVisual rejects visuals whose indices point outside the data they
// describe. Generated traces always pass.
func checkVisual(v cipher.Visual) error {
	switch v := v.(type) {
	case nil:
		return errors.New("missing visual")
	case cipher.Text:
		for _, h := range v.Highlight {
			if !inRange(h, len(v.Text)) {
				return fmt.Errorf("%w: highlight %d in text of %d letters", errOutOfRange, h, len(v.Text))
			}
		}
	case cipher.GridView:
		return checkGridView(v)
	case cipher.Keyword:
		return checkOrder(v.Keyword, v.Order)
	case cipher.Encoding:
		return checkCurrent(v.CurrentIndex, len(v.Encodings))
	case cipher.Decoding:
		return checkCurrent(v.CurrentIndex, len(v.Groups))
	}

	return nil
}

func checkGridView(v cipher.GridView) error {
	rows, cols := v.Grid.Rows(), v.Grid.Cols()

	if v.HighlightRow != nil && !inRange(*v.HighlightRow, rows) {
		return fmt.Errorf("%w: highlightRow %d in %d rows", errOutOfRange, *v.HighlightRow, rows)
	}

	if v.HighlightColumn != nil && !inRange(*v.HighlightColumn, cols) {
		return fmt.Errorf("%w: highlightColumn %d in %d columns", errOutOfRange, *v.HighlightColumn, cols)
	}

	cells := v.Route
	if v.Current != nil {
		cells = append(cells[:len(cells):len(cells)], *v.Current)
	}

	for _, c := range cells {
		if !inRange(c.Row, rows) || !inRange(c.Col, cols) {
			return fmt.Errorf("%w: cell (%d,%d) in %dx%d grid", errOutOfRange, c.Row, c.Col, rows, cols)
		}
	}

	if len(v.Order) > 0 || v.Keyword != "" {
		return checkOrder(v.Keyword, v.Order)
	}

	return nil
}

// checkOrder requires order to rank every keyword letter exactly once.
func checkOrder(keyword string, order []int) error {
	if len(order) != len(keyword) {
		return fmt.Errorf("%w: %d ranks for %d letters", errNotPermutation, len(order), len(keyword))
	}

	seen := make([]bool, len(order))

	for _, rank := range order {
		if !inRange(rank, len(order)) || seen[rank] {
			return fmt.Errorf("%w: %v", errNotPermutation, order)
		}

		seen[rank] = true
	}

	return nil
}

func checkCurrent(current, n int) error {
	if n > 0 && !inRange(current, n) {
		return fmt.Errorf("%w: currentIndex %d of %d entries", errOutOfRange, current, n)
	}

	return nil
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}

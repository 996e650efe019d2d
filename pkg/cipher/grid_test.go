package cipher_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func TestSpiralRouteVisitsEveryCellOnce(t *testing.T) {
	t.Parallel()

	for rows := 1; rows <= 7; rows++ {
		for cols := 1; cols <= 7; cols++ {
			t.Run(fmt.Sprintf("%dx%d", rows, cols), func(t *testing.T) {
				t.Parallel()

				route := cipher.SpiralRoute(rows, cols)
				require.Len(t, route, rows*cols)

				seen := make(map[cipher.Cell]bool, len(route))

				for _, cell := range route {
					require.False(t, seen[cell], "cell %v visited twice", cell)
					require.True(t, cell.Row >= 0 && cell.Row < rows && cell.Col >= 0 && cell.Col < cols, "cell %v out of bounds", cell)

					seen[cell] = true
				}
			})
		}
	}
}

func TestSpiralRouteOrder(t *testing.T) {
	t.Parallel()

	got := cipher.SpiralRoute(3, 4)
	want := []cipher.Cell{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
		{Row: 1, Col: 3}, {Row: 2, Col: 3},
		{Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0},
		{Row: 1, Col: 0},
		{Row: 1, Col: 1}, {Row: 1, Col: 2},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SpiralRoute(3,4) mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, cipher.SpiralRoute(0, 4))
}

func TestColumnOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		keyword string
		want    []int
	}{
		{keyword: "ZEBRA", want: []int{4, 2, 1, 3, 0}},
		{keyword: "BALLOON", want: []int{1, 0, 2, 3, 5, 6, 4}},
		{keyword: "AAA", want: []int{0, 1, 2}},
		{keyword: "CBA", want: []int{2, 1, 0}},
	}

	for _, testCase := range tests {
		got := cipher.ColumnOrder(testCase.keyword)
		if diff := cmp.Diff(testCase.want, got); diff != "" {
			t.Errorf("ColumnOrder(%q) mismatch (-want +got):\n%s", testCase.keyword, diff)
		}
	}
}

func TestColumnOrderIsPermutationWithRepeatedLetters(t *testing.T) {
	t.Parallel()

	for _, keyword := range []string{"MISSISSIPPI", "BOOKKEEPER", "ZZZZ", "ABRACADABRA"} {
		order := cipher.ColumnOrder(keyword)
		seen := make([]bool, len(order))

		for _, rank := range order {
			require.False(t, seen[rank], "%s: rank %d used twice (order %v)", keyword, rank, order)

			seen[rank] = true
		}

		read := cipher.ReadOrder(order)
		for rank, col := range read {
			assert.Equal(t, rank, order[col], "%s: ReadOrder should invert ColumnOrder", keyword)
		}
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	t.Parallel()

	grid := cipher.NewGrid(2, 2)
	grid.SetRow(0, "AB")

	clone := grid.Clone()
	grid.Set(0, 0, 'Z')

	assert.Equal(t, byte('A'), clone.At(0, 0))
	assert.Equal(t, "AB", clone.Row(0))
	assert.Equal(t, "", clone.Row(1), "unfilled row reads as empty")
	assert.Equal(t, "ZB\n..", grid.String())
}

func TestGridJSON(t *testing.T) {
	t.Parallel()

	grid := cipher.NewGrid(2, 3)
	grid.SetRow(0, "ABC")
	grid.Set(1, 1, 'D')

	data, err := json.Marshal(grid)
	require.NoError(t, err)
	assert.JSONEq(t, `[["A","B","C"],["","D",""]]`, string(data))

	var decoded cipher.Grid

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, grid.String(), decoded.String())

	err = json.Unmarshal([]byte(`[["A"],["B","C"]]`), &decoded)
	require.Error(t, err, "ragged rows should be rejected")
}

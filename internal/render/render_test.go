package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/internal/render"
	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func intPtr(i int) *int { return &i }

func sampleGrid() cipher.Grid {
	g := cipher.NewGrid(2, 3)
	g.SetRow(0, "ABC")
	g.SetRow(1, "DE")

	return g
}

func requireLines(t *testing.T, want, got []string) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func Test_Lines_Grid_Highlights(t *testing.T) {
	t.Parallel()

	r := render.Renderer{}

	type testCase struct {
		name string
		view cipher.GridView
		want []string
	}

	cases := []testCase{
		{
			name: "plain",
			view: cipher.GridView{Grid: sampleGrid()},
			want: []string{"  A  B  C ", "  D  E  . "},
		},
		{
			name: "row",
			view: cipher.GridView{Grid: sampleGrid(), HighlightRow: intPtr(0)},
			want: []string{"> A  B  C ", "  D  E  . "},
		},
		{
			name: "column with partial",
			view: cipher.GridView{Grid: sampleGrid(), HighlightColumn: intPtr(1), Partial: "AD"},
			want: []string{"  A  B  C ", "  D  E  . ", "     ^", "so far: AD"},
		},
		{
			name: "route",
			view: cipher.GridView{
				Grid:      sampleGrid(),
				Route:     []cipher.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
				Current:   &cipher.Cell{Row: 0, Col: 2},
				ShowRoute: true,
			},
			want: []string{" [A][B]<C>", "  D  E  . ", "route: (0,0) (0,1)"},
		},
		{
			name: "column left of grid",
			view: cipher.GridView{Grid: sampleGrid(), HighlightColumn: intPtr(-2)},
			want: []string{"  A  B  C ", "  D  E  . "},
		},
		{
			name: "column right of grid",
			view: cipher.GridView{Grid: sampleGrid(), HighlightColumn: intPtr(3)},
			want: []string{"  A  B  C ", "  D  E  . "},
		},
		{
			name: "keyword",
			view: cipher.GridView{Grid: sampleGrid(), Keyword: "CAB", Order: []int{2, 0, 1}},
			want: []string{"  C  A  B", "  3  1  2", "  A  B  C ", "  D  E  . "},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			requireLines(t, tc.want, r.Lines(tc.view))
		})
	}
}

func Test_Lines_Text_Marks_Highlighted_Positions(t *testing.T) {
	t.Parallel()

	got := render.Renderer{}.Lines(cipher.Text{Text: "HELLOXX", Highlight: []int{5, 6}})
	requireLines(t, []string{"HELLOXX", "     ^^"}, got)
}

func Test_Lines_Split_Draws_Boxes(t *testing.T) {
	t.Parallel()

	got := render.Renderer{}.Lines(cipher.Split{L: "SECU", R: "RITY"})
	require.Len(t, got, 4)
	assert.Equal(t, "┌──────┐ ┌──────┐", got[0])
	assert.Equal(t, "│ SECU │ │ RITY │", got[1])
	assert.Equal(t, " L0       R0", got[3])
}

func Test_Lines_Round_Shows_Key_And_New_Halves(t *testing.T) {
	t.Parallel()

	got := render.Renderer{}.Lines(cipher.Round{
		Round: 1, Phase: cipher.PhaseAdd,
		L: "SECU", R: "RITY", RoundKey: "CRYP", FResult: "TZRN",
		NewL: "RITY", NewR: "LDTH",
	})

	joined := strings.Join(got, "\n")
	assert.Equal(t, "round 1: add", got[0])
	assert.Contains(t, joined, "CRYP")
	assert.Contains(t, joined, "F(R,K)")
	assert.Contains(t, joined, "L' = RITY   R' = LDTH")
}

func Test_Lines_Codes(t *testing.T) {
	t.Parallel()

	r := render.Renderer{}
	entries := []cipher.LetterCode{{Letter: "H", Code: "AABBB"}, {Letter: "E", Code: "AABAA"}}

	requireLines(t,
		[]string{"  H -> AABBB", "> E -> AABAA", "so far: AABBBAABAA"},
		r.Lines(cipher.Encoding{Encodings: entries, CurrentIndex: 1, Partial: "AABBBAABAA"}))

	requireLines(t,
		[]string{"> AABBB -> H", "  AABAA -> E", "so far: HE"},
		r.Lines(cipher.Decoding{Groups: entries, CurrentIndex: 0, Partial: "HE"}))

	requireLines(t,
		[]string{"ciphertext: AABBB AABAA", "bits (A=0 B=1): 00111 00100"},
		r.Lines(cipher.Binary{Encodings: entries, Ciphertext: "AABBBAABAA", Bits: "0011100100"}))
}

func Test_Lines_Result_Wraps_To_Width(t *testing.T) {
	t.Parallel()

	got := render.Renderer{Width: 10}.Lines(cipher.Result{Text: "ABCDEFGHIJKLMNOPQRST"})
	requireLines(t, []string{"result: ABCDEFGH", "        IJKLMNOP", "        QRST"}, got)
}

func Test_Trace_Renders_Every_Step(t *testing.T) {
	t.Parallel()

	trace, err := cipher.Generate(cipher.IDScytale, cipher.Request{Text: "HELLO SPARTANS", Key: "4", Mode: cipher.Encrypt})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, render.Renderer{}.Trace(&out, trace))

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "scytale encrypt\n"), s)
	assert.Contains(t, s, "[1/10] ")
	assert.Contains(t, s, "[10/10] ")
	assert.Contains(t, s, "result: HORSESTXLPAXLANX")
	assert.NotContains(t, s, "\x1b[")
}

func Test_Trace_Empty(t *testing.T) {
	t.Parallel()

	trace, err := cipher.Generate(cipher.IDScytale, cipher.Request{Text: "", Key: "4", Mode: cipher.Encrypt})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, render.Renderer{}.Trace(&out, trace))
	assert.Contains(t, out.String(), "insufficient input")
}

func Test_Step_Uses_Color_When_Enabled(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	step := cipher.Step{Description: "Done", Visual: cipher.Result{Text: "ABC"}}
	require.NoError(t, render.Renderer{Color: true}.Step(&out, 2, 3, step))

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "[3/3] Done")
}

func Test_Dump_Shows_Raw_Values(t *testing.T) {
	t.Parallel()

	trace, err := cipher.Generate(cipher.IDBacon, cipher.Request{Text: "HI", Mode: cipher.Encrypt})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, render.Dump(&out, trace))

	assert.Contains(t, out.String(), "cipher.Trace")
	assert.Contains(t, out.String(), "AABBBABAAA")
}

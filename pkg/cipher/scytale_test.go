package cipher_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func TestScytaleEncrypt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		cols      string
		want      string
		wantSteps int
	}{
		// HELL / OSPA / RTAN / SXXX read by columns.
		{name: "pads last row", text: "HELLOSPARTANS", cols: "4", want: "HORSESTXLPAXLANX", wantSteps: 10},
		{name: "three columns", text: "WE ARE DISCOVERED", cols: "3", want: "WRIOREESVEADCED", wantSteps: 10},
		{name: "single row", text: "ab", cols: "2", want: "AB", wantSteps: 5},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			trace := cipher.Scytale{}.Generate(cipher.Request{Text: testCase.text, Key: testCase.cols, Mode: cipher.Encrypt})

			requireTraceShape(t, trace)
			assert.Equal(t, testCase.want, trace.Result)
			assert.Len(t, trace.Steps, testCase.wantSteps)
		})
	}
}

func TestScytaleEncryptSteps(t *testing.T) {
	t.Parallel()

	trace := cipher.Scytale{}.Generate(cipher.Request{Text: "HELLOSPARTANS", Key: "4", Mode: cipher.Encrypt})
	require.Len(t, trace.Steps, 10)

	text, ok := trace.Steps[0].Visual.(cipher.Text)
	require.True(t, ok)
	assert.Equal(t, "HELLOSPARTANS", text.Text)

	// Row-writing steps grow the grid one row at a time.
	for r := 0; r < 4; r++ {
		view, ok := trace.Steps[1+r].Visual.(cipher.GridView)
		require.True(t, ok, "step %d should be a grid", 1+r)
		require.NotNil(t, view.HighlightRow)
		assert.Equal(t, r, *view.HighlightRow)

		if r < 3 {
			assert.Empty(t, view.Grid.Row(r+1), "row %d should still be empty at step %d", r+1, 1+r)
		}
	}

	partials := []string{"HORS", "HORSESTX", "HORSESTXLPAX", "HORSESTXLPAXLANX"}

	for c, want := range partials {
		view, ok := trace.Steps[5+c].Visual.(cipher.GridView)
		require.True(t, ok)
		require.NotNil(t, view.HighlightColumn)
		assert.Equal(t, c, *view.HighlightColumn)
		assert.Equal(t, want, view.Partial)
	}
}

func TestScytaleDecrypt(t *testing.T) {
	t.Parallel()

	trace := cipher.Scytale{}.Generate(cipher.Request{Text: "HORSESTXLPAXLANX", Key: "4", Mode: cipher.Decrypt})

	requireTraceShape(t, trace)
	assert.Equal(t, "HELLOSPARTANS", trace.Result)
	// input + 4 column fills + 4 row reads + result
	assert.Len(t, trace.Steps, 10)

	fill, ok := trace.Steps[1].Visual.(cipher.GridView)
	require.True(t, ok)
	assert.Equal(t, "HORS", fill.Grid.Column(0))
	assert.Empty(t, fill.Grid.Column(1), "later columns should be unfilled in the first fill step")
}

func TestScytaleDecryptShortCiphertext(t *testing.T) {
	t.Parallel()

	// "ACDEB" written into 4 columns without padding reads back as "ABCDE".
	trace := cipher.Scytale{}.Generate(cipher.Request{Text: "ABCDE", Key: "4", Mode: cipher.Decrypt})

	requireTraceShape(t, trace)
	assert.Equal(t, "ACDEB", trace.Result)
	assert.NotContains(t, trace.Result, string(cipher.Filler))

	fill, ok := trace.Steps[2].Visual.(cipher.GridView)
	require.True(t, ok)
	assert.Equal(t, "C", fill.Grid.Column(1), "short columns stop above the empty tail")
}

func TestScytaleInsufficientInput(t *testing.T) {
	t.Parallel()

	for _, req := range []cipher.Request{
		{Text: "", Key: "4"},
		{Text: "123 !!", Key: "4"},
		{Text: "HELLO", Key: "1"},
		{Text: "HELLO", Key: "0"},
		{Text: "HELLO", Key: "four"},
		{Text: "HELLO", Key: ""},
		{Text: "HELLO", Key: "1", Mode: cipher.Decrypt},
	} {
		requireEmptyTrace(t, cipher.Scytale{}.Generate(req))
	}
}

func TestScytaleRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))

	for range 200 {
		plaintext := randomLetters(rng, 1+rng.Intn(40))
		key := strconv.Itoa(2 + rng.Intn(9))

		enc := cipher.Scytale{}.Generate(cipher.Request{Text: plaintext, Key: key, Mode: cipher.Encrypt})
		dec := cipher.Scytale{}.Generate(cipher.Request{Text: enc.Result, Key: key, Mode: cipher.Decrypt})

		require.Equal(t, plaintext, dec.Result, "round trip with %s columns", key)
	}
}

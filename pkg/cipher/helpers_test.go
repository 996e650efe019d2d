package cipher_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// randomLetters returns n random upper-case letters. The last letter is
// never the filler so padding-stripping round trips are exact.
func randomLetters(rng *rand.Rand, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('A' + rng.Intn(26))
	}

	if n > 0 && out[n-1] == cipher.Filler {
		out[n-1] = 'Q'
	}

	return string(out)
}

// requireTraceShape checks the invariants every non-empty trace shares.
func requireTraceShape(t *testing.T, trace cipher.Trace) {
	t.Helper()

	require.NotEmpty(t, trace.Steps, "trace should have steps")

	first := trace.Steps[0].Visual
	assert.Contains(t, []cipher.Kind{cipher.KindText, cipher.KindSplit}, first.Kind(), "first step should show the raw input")

	last, ok := trace.Last().Visual.(cipher.Result)
	require.True(t, ok, "last step should be a result, got %T", trace.Last().Visual)
	assert.Equal(t, trace.Result, last.Text, "result step text should equal trace result")

	for i, step := range trace.Steps {
		assert.NotEmpty(t, step.Description, "step %d should have a description", i)
		require.NotNil(t, step.Visual, "step %d should have a visual", i)

		if i < len(trace.Steps)-1 {
			assert.NotEqual(t, cipher.KindResult, step.Visual.Kind(), "only the last step may be a result (step %d)", i)
		}
	}
}

func requireEmptyTrace(t *testing.T, trace cipher.Trace) {
	t.Helper()

	assert.True(t, trace.Empty(), "trace should be empty")
	assert.Empty(t, trace.Steps)
	assert.Empty(t, trace.Result)
}

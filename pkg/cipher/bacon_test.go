package cipher_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func TestBaconEncrypt(t *testing.T) {
	t.Parallel()

	trace := cipher.Bacon{}.Generate(cipher.Request{Text: "Hello!", Mode: cipher.Encrypt})

	requireTraceShape(t, trace)
	assert.Equal(t, "AABBBAABAAABABAABABAABBAB", trace.Result)
	// input + 5 letters + binary view + result
	require.Len(t, trace.Steps, 8)

	enc, ok := trace.Steps[3].Visual.(cipher.Encoding)
	require.True(t, ok)
	assert.Equal(t, 2, enc.CurrentIndex)
	assert.Len(t, enc.Encodings, 3)
	assert.Equal(t, "AABBBAABAAABABA", enc.Partial)

	bin, ok := trace.Steps[6].Visual.(cipher.Binary)
	require.True(t, ok)
	assert.Equal(t, "0011100100010100101001101", bin.Bits)
}

func TestBaconSharedCodes(t *testing.T) {
	t.Parallel()

	for _, pair := range []string{"IJ", "UV"} {
		a, _ := cipher.BaconCode(pair[0])
		b, _ := cipher.BaconCode(pair[1])
		assert.Equal(t, a, b, "%c and %c should share a code", pair[0], pair[1])
	}

	_, ok := cipher.BaconCode('a')
	assert.False(t, ok, "lower-case letters have no code")

	trace := cipher.Bacon{}.Generate(cipher.Request{Text: "ABAAA BAABB", Mode: cipher.Decrypt})
	assert.Equal(t, "JV", trace.Result, "shared codes decode to the later letter")
}

func TestBaconDecrypt(t *testing.T) {
	t.Parallel()

	trace := cipher.Bacon{}.Generate(cipher.Request{Text: "AABBB AABAA ABABA ABABA ABBAB", Mode: cipher.Decrypt})

	requireTraceShape(t, trace)
	assert.Equal(t, "HELLO", trace.Result)
	// grouped input + 5 blocks + result
	require.Len(t, trace.Steps, 7)

	dec, ok := trace.Steps[5].Visual.(cipher.Decoding)
	require.True(t, ok)
	assert.Equal(t, 3, dec.CurrentIndex)
	assert.Equal(t, "HELL", dec.Partial)
}

func TestBaconDecryptUnknownBlock(t *testing.T) {
	t.Parallel()

	trace := cipher.Bacon{}.Generate(cipher.Request{Text: "AABBBBBBBBAABAA", Mode: cipher.Decrypt})

	requireTraceShape(t, trace)
	assert.Equal(t, "H?E", trace.Result, "unknown blocks decode to a placeholder and decoding continues")
}

func TestBaconInsufficientInput(t *testing.T) {
	t.Parallel()

	for _, req := range []cipher.Request{
		{Text: "", Mode: cipher.Encrypt},
		{Text: "12345", Mode: cipher.Encrypt},
		{Text: "AABB", Mode: cipher.Decrypt},
		{Text: "AABBBA", Mode: cipher.Decrypt},
		{Text: "CDEFG", Mode: cipher.Decrypt},
	} {
		requireEmptyTrace(t, cipher.Bacon{}.Generate(req))
	}
}

func TestBaconRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(4))
	shared := strings.NewReplacer("I", "J", "U", "V")

	for range 200 {
		plaintext := randomLetters(rng, 1+rng.Intn(30))

		enc := cipher.Bacon{}.Generate(cipher.Request{Text: plaintext, Mode: cipher.Encrypt})
		dec := cipher.Bacon{}.Generate(cipher.Request{Text: enc.Result, Mode: cipher.Decrypt})

		require.Equal(t, shared.Replace(plaintext), dec.Result)
	}
}

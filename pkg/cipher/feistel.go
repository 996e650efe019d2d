package cipher

import (
	"fmt"
	"strings"
)

// Feistel network parameters.
const (
	FeistelBlockSize = 8
	FeistelRounds    = 4
	// DefaultFeistelKey is used when the key normalizes to nothing.
	DefaultFeistelKey = "KEY"

	feistelHalf = FeistelBlockSize / 2
	// decryptPad fills short ciphertext. It differs from [Filler] on
	// purpose: padding ciphertext with 'X' would suggest the padding went
	// through the network. Short ciphertext therefore does not round-trip.
	decryptPad = 'A'
)

const alphabetSize = 26

// RoundKey returns the key for round r (1-indexed): key rotated left by
// (r-1) mod len(key) letters.
func RoundKey(key string, round int) string {
	if key == "" {
		return ""
	}

	n := (round - 1) % len(key)
	if n < 0 {
		n += len(key)
	}

	return key[n:] + key[:n]
}

// RoundFunction is F(half, roundKey): letter-wise addition mod 26 of half
// and the round key, indexing the key cyclically.
func RoundFunction(half, roundKey string) string {
	if roundKey == "" {
		return half
	}

	out := make([]byte, len(half))
	for i := 0; i < len(half); i++ {
		out[i] = letterAdd(half[i], roundKey[i%len(roundKey)])
	}

	return string(out)
}

// AddLetters adds a and b letter-wise mod 26. b must be at least as long
// as a.
func AddLetters(a, b string) string {
	out := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		out[i] = letterAdd(a[i], b[i])
	}

	return string(out)
}

// SubLetters subtracts b from a letter-wise mod 26; it inverts
// [AddLetters].
func SubLetters(a, b string) string {
	out := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		out[i] = letterSub(a[i], b[i])
	}

	return string(out)
}

func letterAdd(a, b byte) byte {
	return byte((int(a-'A')+int(b-'A'))%alphabetSize) + 'A'
}

func letterSub(a, b byte) byte {
	return byte((int(a-'A')-int(b-'A')+alphabetSize)%alphabetSize) + 'A'
}

// feistelKey normalizes key, falling back to [DefaultFeistelKey].
func feistelKey(key string) string {
	if k := Normalize(key); k != "" {
		return k
	}

	return DefaultFeistelKey
}

// feistelBlock truncates text to one block and pads it with pad.
func feistelBlock(text string, pad byte) string {
	if len(text) > FeistelBlockSize {
		text = text[:FeistelBlockSize]
	}

	return text + strings.Repeat(string(pad), FeistelBlockSize-len(text))
}

// FeistelEncryptBlock encrypts one 8-letter block without recording steps.
// Text and key are normalized first.
func FeistelEncryptBlock(block, key string) string {
	k := feistelKey(key)
	b := feistelBlock(Normalize(block), Filler)
	left, right := b[:feistelHalf], b[feistelHalf:]

	for round := 1; round <= FeistelRounds; round++ {
		f := RoundFunction(right, RoundKey(k, round))
		left, right = right, AddLetters(left, f)
	}

	return left + right
}

// FeistelDecryptBlock inverts [FeistelEncryptBlock] and strips trailing
// filler.
func FeistelDecryptBlock(block, key string) string {
	k := feistelKey(key)
	b := feistelBlock(Normalize(block), decryptPad)
	left, right := b[:feistelHalf], b[feistelHalf:]

	for round := FeistelRounds; round >= 1; round-- {
		f := RoundFunction(left, RoundKey(k, round))
		left, right = SubLetters(right, f), left
	}

	return stripPadding(left + right)
}

// Feistel is a toy four-round Feistel network over one block of eight
// letters with letter-wise modular addition in place of XOR.
type Feistel struct{}

func (Feistel) ID() ID          { return IDFeistel }
func (Feistel) Name() string    { return "Feistel network" }
func (Feistel) KeyHint() string { return "letters (default " + DefaultFeistelKey + ")" }

// Generate implements [Generator]. Only the first eight letters are used.
func (f Feistel) Generate(req Request) Trace {
	text := Normalize(req.Text)
	if text == "" {
		return emptyTrace(IDFeistel, req.Mode)
	}

	key := feistelKey(req.Key)

	if req.Mode == Decrypt {
		block := feistelBlock(text, decryptPad)

		return f.decrypt(Trace{Cipher: IDFeistel, Mode: req.Mode, Input: block, Key: key}, text, block, key)
	}

	block := feistelBlock(text, Filler)

	return f.encrypt(Trace{Cipher: IDFeistel, Mode: req.Mode, Input: block, Key: key}, text, block, key)
}

// keyMaterial expands a round key cyclically to one half-block, which is
// exactly the key letters F consumes.
func keyMaterial(roundKey string) string {
	out := make([]byte, feistelHalf)
	for i := range out {
		out[i] = roundKey[i%len(roundKey)]
	}

	return string(out)
}

func (Feistel) encrypt(base Trace, text, block, key string) Trace {
	var rec recorder

	rec.add(fmt.Sprintf("Starting with plaintext: %q", text), Text{Text: text})

	left, right := block[:feistelHalf], block[feistelHalf:]

	rec.add(fmt.Sprintf("Split input %q into L0=%q and R0=%q", block, left, right), Split{L: left, R: right})

	for round := 1; round <= FeistelRounds; round++ {
		material := keyMaterial(RoundKey(key, round))
		f := RoundFunction(right, material)
		newL, newR := right, AddLetters(left, f)

		rec.add(fmt.Sprintf("Round %d: F(R, K%d) = F(%q, %q) = %q", round, round, right, material, f), Round{
			Round: round, Phase: PhaseFunction, L: left, R: right, RoundKey: material, FResult: f,
		})
		rec.add(fmt.Sprintf("Round %d: L + F(R, K) = %q + %q = %q", round, left, f, newR), Round{
			Round: round, Phase: PhaseAdd, L: left, R: right, FResult: f, NewL: newL, NewR: newR,
		})

		left, right = newL, newR

		phase, what := PhaseSwap, "Swap"
		if round == FeistelRounds {
			phase, what = PhaseFinal, "Final halves"
		}

		rec.add(fmt.Sprintf("Round %d: %s -> L%d=%q, R%d=%q", round, what, round, left, round, right), Round{
			Round: round, Phase: phase, L: left, R: right,
		})
	}

	ciphertext := left + right

	return rec.finish(base, fmt.Sprintf("Ciphertext complete: %q", ciphertext), Result{
		Text: ciphertext, L: left, R: right,
	})
}

func (Feistel) decrypt(base Trace, text, block, key string) Trace {
	var rec recorder

	rec.add(fmt.Sprintf("Starting with ciphertext: %q", text), Text{Text: text})

	left, right := block[:feistelHalf], block[feistelHalf:]

	rec.add(fmt.Sprintf("Split ciphertext %q into L=%q and R=%q", block, left, right), Split{L: left, R: right})

	for round := FeistelRounds; round >= 1; round-- {
		step := FeistelRounds - round + 1
		material := keyMaterial(RoundKey(key, round))
		f := RoundFunction(left, material)
		newL, newR := SubLetters(right, f), left

		rec.add(fmt.Sprintf("Decrypt round %d: F(L, K%d) = F(%q, %q) = %q", step, round, left, material, f), Round{
			Round: round, Phase: PhaseFunction, L: left, R: right, RoundKey: material, FResult: f,
		})
		rec.add(fmt.Sprintf("Decrypt round %d: R - F(L, K) = %q - %q = %q", step, right, f, newL), Round{
			Round: round, Phase: PhaseSubtract, L: left, R: right, FResult: f, NewL: newL, NewR: newR,
		})

		left, right = newL, newR

		phase, what := PhaseSwap, "Swap"
		if round == 1 {
			phase, what = PhaseFinal, "Final halves"
		}

		rec.add(fmt.Sprintf("Decrypt round %d: %s -> L=%q, R=%q", step, what, left, right), Round{
			Round: round, Phase: phase, L: left, R: right,
		})
	}

	plaintext := stripPadding(left + right)

	return rec.finish(base, fmt.Sprintf("Plaintext complete: %q", plaintext), Result{
		Text: plaintext, L: left, R: right,
	})
}

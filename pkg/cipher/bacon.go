package cipher

import (
	"fmt"
	"strings"
)

// baconBlock is the length of one Bacon code.
const baconBlock = 5

// unknownLetter replaces Bacon blocks that have no letter.
const unknownLetter = "?"

// baconCodes is the historical 24-letter table: I/J and U/V share codes.
var baconCodes = [26]string{
	"AAAAA", "AAAAB", "AAABA", "AAABB", "AABAA", // A-E
	"AABAB", "AABBA", "AABBB", "ABAAA", "ABAAA", // F-J
	"ABAAB", "ABABA", "ABABB", "ABBAA", "ABBAB", // K-O
	"ABBBA", "ABBBB", "BAAAA", "BAAAB", "BAABA", // P-T
	"BAABB", "BAABB", "BABAA", "BABAB", "BABBA", // U-Y
	"BABBB", // Z
}

// baconLetters maps a code back to a letter. Shared codes decode to the
// later letter of the pair (J, V).
var baconLetters = func() map[string]string {
	m := make(map[string]string, len(baconCodes))

	for i, code := range baconCodes {
		m[code] = string(rune('A' + i))
	}

	return m
}()

// BaconCode returns the five-symbol code for an upper-case letter.
func BaconCode(letter byte) (string, bool) {
	if letter < 'A' || letter > 'Z' {
		return "", false
	}

	return baconCodes[letter-'A'], true
}

// BaconLetter decodes a five-symbol block.
func BaconLetter(block string) (string, bool) {
	letter, ok := baconLetters[block]

	return letter, ok
}

// Bits relabels a Bacon string as binary digits (A=0, B=1).
func Bits(ab string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case 'A':
			return '0'
		case 'B':
			return '1'
		default:
			return r
		}
	}, ab)
}

// Bacon substitutes every letter with a five-symbol A/B code. It takes no
// key.
type Bacon struct{}

func (Bacon) ID() ID          { return IDBacon }
func (Bacon) Name() string    { return "Bacon" }
func (Bacon) KeyHint() string { return "none" }

// Generate implements [Generator]. The key is ignored.
func (b Bacon) Generate(req Request) Trace {
	if req.Mode == Decrypt {
		text := NormalizeBinary(req.Text)
		if text == "" || len(text)%baconBlock != 0 {
			return emptyTrace(IDBacon, req.Mode)
		}

		return b.decrypt(Trace{Cipher: IDBacon, Mode: req.Mode, Input: text}, text)
	}

	text := Normalize(req.Text)
	if text == "" {
		return emptyTrace(IDBacon, req.Mode)
	}

	return b.encrypt(Trace{Cipher: IDBacon, Mode: req.Mode, Input: text}, text)
}

func (Bacon) encrypt(base Trace, text string) Trace {
	var rec recorder

	rec.add(fmt.Sprintf("Plaintext: %q", text), Text{Text: text})

	encodings := make([]LetterCode, 0, len(text))

	var out strings.Builder

	for i := 0; i < len(text); i++ {
		code, _ := BaconCode(text[i])
		encodings = append(encodings, LetterCode{Letter: string(text[i]), Code: code})
		out.WriteString(code)

		rec.add(fmt.Sprintf("Encoding %q -> %s", text[i], code), Encoding{
			Encodings:    cloneCodes(encodings),
			CurrentIndex: i,
			Partial:      out.String(),
		})
	}

	ciphertext := out.String()

	rec.add("Binary representation (A=0, B=1)", Binary{
		Encodings:  cloneCodes(encodings),
		Ciphertext: ciphertext,
		Bits:       Bits(ciphertext),
	})

	return rec.finish(base, fmt.Sprintf("Ciphertext complete: %q", ciphertext), Result{
		Text:      ciphertext,
		Encodings: cloneCodes(encodings),
	})
}

func (Bacon) decrypt(base Trace, text string) Trace {
	var rec recorder

	rec.add(fmt.Sprintf("Ciphertext grouped into %d-symbol blocks", baconBlock), Text{Text: text})

	groups := make([]LetterCode, 0, len(text)/baconBlock)

	var out strings.Builder

	for i := 0; i < len(text); i += baconBlock {
		block := text[i : i+baconBlock]

		letter, ok := BaconLetter(block)
		if !ok {
			letter = unknownLetter
		}

		groups = append(groups, LetterCode{Letter: letter, Code: block})
		out.WriteString(letter)

		rec.add(fmt.Sprintf("Decoding %s -> %q", block, letter), Decoding{
			Groups:       cloneCodes(groups),
			CurrentIndex: len(groups) - 1,
			Partial:      out.String(),
		})
	}

	plaintext := out.String()

	return rec.finish(base, fmt.Sprintf("Plaintext complete: %q", plaintext), Result{
		Text:      plaintext,
		Encodings: cloneCodes(groups),
	})
}

func cloneCodes(codes []LetterCode) []LetterCode {
	out := make([]LetterCode, len(codes))
	copy(out, codes)

	return out
}

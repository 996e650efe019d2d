package cipher

import (
	"fmt"
	"strings"
)

// ID identifies a cipher.
type ID string

// Cipher identifiers.
const (
	IDScytale  ID = "scytale"
	IDRoute    ID = "route"
	IDColumnar ID = "columnar"
	IDBacon    ID = "bacon"
	IDFeistel  ID = "feistel"
)

// Generator turns a request into a step trace. Implementations are pure:
// the same request always yields a structurally identical trace.
type Generator interface {
	ID() ID
	// Name is the display name.
	Name() string
	// KeyHint describes the key the cipher expects, for help output.
	KeyHint() string
	Generate(req Request) Trace
}

var generators = []Generator{
	Scytale{},
	Route{},
	Columnar{},
	Bacon{},
	Feistel{},
}

// All returns every generator in display order.
func All() []Generator {
	out := make([]Generator, len(generators))
	copy(out, generators)

	return out
}

// IDs returns every cipher identifier in display order.
func IDs() []ID {
	ids := make([]ID, len(generators))
	for i, g := range generators {
		ids[i] = g.ID()
	}

	return ids
}

// Lookup returns the generator for id (case-insensitive).
func Lookup(id string) (Generator, error) {
	want := ID(strings.ToLower(strings.TrimSpace(id)))

	for _, g := range generators {
		if g.ID() == want {
			return g, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, id)
}

// Generate looks up the cipher and runs it.
func Generate(id string, req Request) (Trace, error) {
	g, err := Lookup(id)
	if err != nil {
		return Trace{}, err
	}

	return g.Generate(req), nil
}

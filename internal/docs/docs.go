// Package docs holds the reference notes for each cipher.
package docs

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tailscale/hujson"
)

// ErrNotFound is returned when no documentation exists for an id.
var ErrNotFound = errors.New("no documentation")

// Doc is the reference record for one cipher.
type Doc struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	History    string   `json:"history"`
	Concept    string   `json:"concept"`
	Encryption []string `json:"encryption"`
	Decryption string   `json:"decryption"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Modern     string   `json:"modern"`
}

//go:embed docs.jsonc
var raw []byte

var load = sync.OnceValues(func() ([]Doc, error) {
	return parse(raw)
})

func parse(data []byte) ([]Doc, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("docs: invalid JSONC: %w", err)
	}

	var out []Doc

	unmarshalErr := json.Unmarshal(standardized, &out)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("docs: invalid JSON: %w", unmarshalErr)
	}

	return out, nil
}

// All returns every record in display order.
func All() ([]Doc, error) {
	docs, err := load()
	if err != nil {
		return nil, err
	}

	out := make([]Doc, len(docs))
	copy(out, docs)

	return out, nil
}

// Lookup returns the record for a cipher id (case-insensitive).
func Lookup(id string) (Doc, error) {
	docs, err := load()
	if err != nil {
		return Doc{}, err
	}

	want := strings.ToLower(strings.TrimSpace(id))

	for _, d := range docs {
		if d.ID == want {
			return d, nil
		}
	}

	return Doc{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

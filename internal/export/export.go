// Package export saves and loads traces as self-checking JSON files.
//
// A file holds one [Envelope]. The digest is the hex BLAKE2b-256 of every
// other envelope field and is verified on load, which catches accidental
// edits and corruption. It is not a signature: anyone can recompute it, so
// Decode also checks that every step is drawable before returning it.
package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"golang.org/x/crypto/blake2b"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// Version is the envelope format version written by Encode.
const Version = 1

const (
	dirPerms  = 0o750
	filePerms = 0o644
)

// Error variables for export operations.
var (
	ErrUnsupportedVersion = errors.New("unsupported export version")
	ErrDigestMismatch     = errors.New("digest mismatch")
	ErrInvalidEnvelope    = errors.New("invalid export file")
)

// Envelope is the on-disk form of a trace.
type Envelope struct {
	Version int           `json:"version"`
	Cipher  cipher.ID     `json:"cipher"`
	Mode    cipher.Mode   `json:"mode"`
	Input   string        `json:"input"`
	Key     string        `json:"key"`
	Result  string        `json:"result"`
	Digest  string        `json:"digest"`
	Steps   []cipher.Step `json:"steps"`
}

// Digest returns the hex BLAKE2b-256 digest of the envelope fields of t,
// everything but the digest itself.
func Digest(t cipher.Trace) (string, error) {
	env := newEnvelope(t)

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encoding trace: %w", err)
	}

	sum := blake2b.Sum256(data)

	return hex.EncodeToString(sum[:]), nil
}

// Encode writes t as an indented envelope.
func Encode(w io.Writer, t cipher.Trace) error {
	digest, err := Digest(t)
	if err != nil {
		return err
	}

	env := newEnvelope(t)
	env.Digest = digest

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	encodeErr := enc.Encode(env)
	if encodeErr != nil {
		return fmt.Errorf("encoding envelope: %w", encodeErr)
	}

	return nil
}

// newEnvelope fills every field except Digest.
func newEnvelope(t cipher.Trace) Envelope {
	steps := t.Steps
	if steps == nil {
		steps = []cipher.Step{}
	}

	return Envelope{
		Version: Version,
		Cipher:  t.Cipher,
		Mode:    t.Mode,
		Input:   t.Input,
		Key:     t.Key,
		Result:  t.Result,
		Steps:   steps,
	}
}

// Decode reads an envelope and returns the trace it holds.
func Decode(r io.Reader) (cipher.Trace, error) {
	var env Envelope

	decodeErr := json.NewDecoder(r).Decode(&env)
	if decodeErr != nil {
		return cipher.Trace{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, decodeErr)
	}

	if env.Version != Version {
		return cipher.Trace{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	g, err := cipher.Lookup(string(env.Cipher))
	if err != nil {
		return cipher.Trace{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	mode, err := cipher.ParseMode(string(env.Mode))
	if err != nil {
		return cipher.Trace{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}

	t := cipher.Trace{
		Cipher: g.ID(),
		Mode:   mode,
		Input:  env.Input,
		Key:    env.Key,
		Steps:  env.Steps,
		Result: env.Result,
	}

	if len(t.Steps) == 0 {
		t.Steps = nil
	}

	if !t.Empty() {
		last, ok := t.Last().Visual.(cipher.Result)
		if !ok || last.Text != t.Result {
			return cipher.Trace{}, fmt.Errorf("%w: result does not match final step", ErrInvalidEnvelope)
		}
	}

	for i, step := range t.Steps {
		stepErr := checkVisual(step.Visual)
		if stepErr != nil {
			return cipher.Trace{}, fmt.Errorf("%w: step %d: %w", ErrInvalidEnvelope, i+1, stepErr)
		}
	}

	digest, err := Digest(t)
	if err != nil {
		return cipher.Trace{}, err
	}

	if digest != env.Digest {
		return cipher.Trace{}, fmt.Errorf("%w: file says %s, trace hashes to %s", ErrDigestMismatch, env.Digest, digest)
	}

	return t, nil
}

// WriteFile atomically writes t to path, creating parent directories.
func WriteFile(path string, t cipher.Trace) error {
	var buf bytes.Buffer

	err := Encode(&buf, t)
	if err != nil {
		return err
	}

	mkdirErr := os.MkdirAll(filepath.Dir(path), dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("failed to create export directory: %w", mkdirErr)
	}

	writeErr := atomic.WriteFile(path, &buf)
	if writeErr != nil {
		return fmt.Errorf("failed to write export file: %w", writeErr)
	}

	// atomic.WriteFile doesn't set permissions for new files
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return fmt.Errorf("failed to set file permissions: %w", chmodErr)
	}

	return nil
}

// ReadFile loads a trace written by WriteFile.
func ReadFile(path string) (cipher.Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return cipher.Trace{}, fmt.Errorf("failed to open export file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

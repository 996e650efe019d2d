package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// addCipherFlags registers the flags shared by commands that run a cipher.
func addCipherFlags(fs *flag.FlagSet) {
	fs.StringP("key", "k", "", "Cipher key (defaults to the configured key)")
	fs.BoolP("decrypt", "d", false, "Decrypt instead of encrypt")
	fs.Bool("fold", false, "Fold diacritics (é -> e) before normalizing")
}

// requestFromFlags resolves the cipher, mode, key and text for a command
// invoked as "<cmd> <cipher> [text...]". Text falls back to stdin.
func (a *app) requestFromFlags(fs *flag.FlagSet, o *IO, args []string) (cipher.Generator, cipher.Request, error) {
	if len(args) == 0 {
		return nil, cipher.Request{}, fmt.Errorf("%w (one of: %s)", ErrCipherRequired, joinIDs())
	}

	g, err := cipher.Lookup(args[0])
	if err != nil {
		return nil, cipher.Request{}, err
	}

	text, err := textFrom(args[1:], o.In())
	if err != nil {
		return nil, cipher.Request{}, err
	}

	decrypt, _ := fs.GetBool("decrypt")
	fold, _ := fs.GetBool("fold")

	key := a.cfg.KeyFor(g.ID())
	if fs.Changed("key") {
		key, _ = fs.GetString("key")
	}

	mode := cipher.Encrypt
	if decrypt {
		mode = cipher.Decrypt
	}

	return g, a.request(text, key, mode, fold), nil
}

// request builds a Request, folding diacritics when asked to or when
// configured.
func (a *app) request(text, key string, mode cipher.Mode, fold bool) cipher.Request {
	if fold || a.cfg.FoldDiacritics {
		text = cipher.FoldDiacritics(text)
		key = cipher.FoldDiacritics(key)
	}

	return cipher.Request{Text: text, Key: key, Mode: mode}
}

// generate runs g and logs the outcome.
func (a *app) generate(g cipher.Generator, req cipher.Request) cipher.Trace {
	trace := g.Generate(req)

	a.log.WithFields(logrus.Fields{
		"cipher": g.ID(),
		"mode":   req.Mode,
		"steps":  len(trace.Steps),
	}).Debug("trace generated")

	return trace
}

// textFrom joins positional words, or reads stdin when there are none and
// stdin is not a terminal.
func textFrom(words []string, stdin io.Reader) (string, error) {
	if len(words) > 0 {
		return strings.Join(words, " "), nil
	}

	if stdin == nil {
		return "", nil
	}

	if _, tty := terminalFd(stdin); tty {
		return "", nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

func joinIDs() string {
	ids := cipher.IDs()
	parts := make([]string, len(ids))

	for i, id := range ids {
		parts[i] = string(id)
	}

	return strings.Join(parts, ", ")
}

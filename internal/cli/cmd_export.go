package cli

import (
	"context"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/internal/export"
)

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	addCipherFlags(fs)
	fs.StringP("output", "o", "", "Write the trace to `file`")

	return &Command{
		Flags: fs,
		Usage: "export <cipher> [text...] -o <file>",
		Short: "Save a trace for later playback",
		Long: "Run a cipher and write its steps to a JSON file.\n\n" +
			"The file is written atomically and carries a digest of its steps.\n" +
			"Replay it with 'play --trace <file>'. Prints the digest.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			output, _ := fs.GetString("output")
			if output == "" {
				return ErrOutputRequired
			}

			g, req, err := a.requestFromFlags(fs, o, args)
			if err != nil {
				return err
			}

			trace := a.generate(g, req)
			o.WarnInsufficient(g, trace)

			path := output
			if !filepath.IsAbs(path) {
				path = filepath.Join(a.cfg.EffectiveCwd, path)
			}

			writeErr := export.WriteFile(path, trace)
			if writeErr != nil {
				return writeErr
			}

			digest, err := export.Digest(trace)
			if err != nil {
				return err
			}

			a.log.WithField("path", path).Debug("trace exported")
			o.Println(digest)

			return nil
		},
		TakesCipher: true,
	}
}

package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// RunCmd returns the run command.
func RunCmd(a *app) *Command {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	addCipherFlags(fs)

	return &Command{
		Flags: fs,
		Usage: "run <cipher> [text...] [flags]",
		Short: "Print only the result of a cipher run",
		Long: "Run a cipher and print the result on one line.\n\n" +
			"Insufficient input prints an empty line and a warning.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			g, req, err := a.requestFromFlags(fs, o, args)
			if err != nil {
				return err
			}

			trace := a.generate(g, req)
			o.WarnInsufficient(g, trace)
			o.Println(trace.Result)

			return nil
		},
		TakesCipher: true,
	}
}

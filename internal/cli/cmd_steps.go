package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/internal/export"
	"github.com/calvinalkan/cipherviz/internal/render"
)

// Output formats for the steps command.
const (
	formatText = "text"
	formatJSON = "json"
	formatDump = "dump"
)

// StepsCmd returns the steps command.
func StepsCmd(a *app) *Command {
	fs := flag.NewFlagSet("steps", flag.ContinueOnError)
	addCipherFlags(fs)
	fs.StringP("format", "f", formatText, "Output format: text|json|dump")

	return &Command{
		Flags: fs,
		Usage: "steps <cipher> [text...] [flags]",
		Short: "Print every step of a cipher run",
		Long: "Run a cipher and print each intermediate step.\n\n" +
			"Text is taken from the arguments, or from stdin when none are given.\n" +
			"--format=json writes the same envelope as 'export'.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return a.execSteps(o, fs, args)
		},
		TakesCipher: true,
	}
}

func (a *app) execSteps(o *IO, fs *flag.FlagSet, args []string) error {
	format, _ := fs.GetString("format")

	switch format {
	case formatText, formatJSON, formatDump:
	default:
		return fmt.Errorf("%w: %q", ErrFormatInvalid, format)
	}

	g, req, err := a.requestFromFlags(fs, o, args)
	if err != nil {
		return err
	}

	trace := a.generate(g, req)
	o.WarnInsufficient(g, trace)

	switch format {
	case formatJSON:
		return export.Encode(o.Out(), trace)
	case formatDump:
		return render.Dump(o.Out(), trace)
	default:
		return a.renderer.Trace(o.Out(), trace)
	}
}

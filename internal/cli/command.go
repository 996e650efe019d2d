package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// Command is one cipherviz subcommand.
type Command struct {
	// Flags holds the command's own flags. Its name is unused; the command
	// is named by the first word of Usage.
	Flags *flag.FlagSet

	// Usage follows "cipherviz" in help, e.g. "steps <cipher> [text...]".
	Usage string

	// Short is the one-line summary in the command list.
	Short string

	// Long is the help body. Short is shown when it is empty.
	Long string

	// TakesCipher adds the cipher table, with key hints, to the help and
	// lists the known ids when the command fails on an unknown one.
	TakesCipher bool

	// Exec runs the command with the remaining positional args.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine is the command's row in the global usage listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp writes "cipherviz <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: cipherviz", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.TakesCipher {
		o.Println()
		o.Println("Ciphers:")

		for _, g := range cipher.All() {
			o.Printf("  %-10s key: %s\n", g.ID(), g.KeyHint())
		}
	}

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		o.Printf("%s", c.Flags.FlagUsages())
	}
}

// Run parses args, executes the command and returns its exit code. Flag
// errors print the help to stderr; Exec errors print "error: ..." and exit 1.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	parseErr := c.Flags.Parse(args)

	switch {
	case errors.Is(parseErr, flag.ErrHelp):
		c.PrintHelp(o)

		return 0
	case parseErr != nil:
		o.ErrPrintln("error:", parseErr)
		o.ErrPrintln()
		c.PrintHelp(NewIO(o.errOut, o.errOut))

		return 1
	}

	execErr := c.Exec(ctx, o, c.Flags.Args())
	if execErr == nil {
		return o.Finish()
	}

	o.ErrPrintln("error:", execErr)

	if c.TakesCipher && errors.Is(execErr, cipher.ErrUnknownCipher) {
		o.ErrPrintln("known ciphers:", joinIDs())
	}

	return 1
}

package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// ListCmd returns the list command.
func ListCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("list", flag.ContinueOnError),
		Usage: "list",
		Short: "List available ciphers",
		Long:  "List cipher ids with their names and the key each one expects.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			for _, g := range cipher.All() {
				key := g.KeyHint()
				if def := a.cfg.KeyFor(g.ID()); def != "" {
					key += ", configured: " + def
				}

				o.Printf("%-10s %-24s key: %s\n", g.ID(), g.Name(), key)
			}

			return nil
		},
	}
}

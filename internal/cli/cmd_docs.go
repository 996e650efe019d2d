package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/internal/docs"
)

// DocsCmd returns the docs command.
func DocsCmd(_ *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("docs", flag.ContinueOnError),
		Usage: "docs [cipher]",
		Short: "Show background notes for a cipher",
		Long:  "Print the history, concept and trade-offs of one cipher, or of all ciphers.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				d, err := docs.Lookup(args[0])
				if err != nil {
					return err
				}

				printDoc(o, d)

				return nil
			}

			all, err := docs.All()
			if err != nil {
				return err
			}

			for i, d := range all {
				if i > 0 {
					o.Println()
				}

				printDoc(o, d)
			}

			return nil
		},
		TakesCipher: true,
	}
}

func printDoc(o *IO, d docs.Doc) {
	o.Printf("# %s (%s)\n\n", d.Name, d.ID)
	o.Println("History:", d.History)
	o.Println()
	o.Println("Concept:", d.Concept)
	o.Println()
	o.Println("Encryption:")

	for i, s := range d.Encryption {
		o.Printf("  %d. %s\n", i+1, s)
	}

	o.Println()
	o.Println("Decryption:", d.Decryption)
	o.Println()
	printList(o, "Strengths:", d.Strengths)
	printList(o, "Weaknesses:", d.Weaknesses)
	o.Println("Today:", d.Modern)
}

func printList(o *IO, title string, items []string) {
	o.Println(title)

	for _, s := range items {
		o.Println("  -", s)
	}

	o.Println()
}

package cli

import (
	"context"
	"maps"
	"slices"
	"strconv"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, a)
		},
	}
}

func execPrintConfig(o *IO, a *app) error {
	cfg := a.cfg

	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("default_cipher=" + cfg.DefaultCipher)
	o.Println("interval_ms=" + strconv.Itoa(cfg.IntervalMS))
	o.Println("color=" + cfg.Color)
	o.Println("fold_diacritics=" + strconv.FormatBool(cfg.FoldDiacritics))
	o.Println("log_level=" + cfg.LogLevel)

	for _, id := range slices.Sorted(maps.Keys(cfg.Keys)) {
		o.Println("keys." + id + "=" + cfg.Keys[id])
	}

	if cfg.HistoryFile != "" {
		o.Println("history_file=" + cfg.HistoryFile)
	}

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}

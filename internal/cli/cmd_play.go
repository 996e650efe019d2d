package cli

import (
	"context"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/internal/export"
	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// PlayCmd returns the play command.
func PlayCmd(a *app) *Command {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	addCipherFlags(fs)
	fs.String("trace", "", "Replay an exported trace `file`")
	fs.Int("interval", 0, "Delay between steps in `ms` (defaults to interval_ms)")
	fs.Bool("auto", false, "Play every step once and exit")

	return &Command{
		Flags: fs,
		Usage: "play [cipher] [text...] [flags]",
		Short: "Step through a cipher interactively",
		Long: "Open the step player. Without a cipher the configured default_cipher is used.\n\n" +
			"On a terminal the player reads commands with history and tab completion;\n" +
			"otherwise commands are read from stdin, one per line. --auto plays all\n" +
			"steps at the configured interval and exits.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return a.execPlay(ctx, o, fs, args)
		},
		TakesCipher: true,
	}
}

func (a *app) execPlay(ctx context.Context, o *IO, fs *flag.FlagSet, args []string) error {
	interval := a.cfg.Interval()
	if fs.Changed("interval") {
		ms, _ := fs.GetInt("interval")
		if ms <= 0 {
			return ErrIntervalInvalid
		}

		interval = time.Duration(ms) * time.Millisecond
	}

	auto, _ := fs.GetBool("auto")
	tracePath, _ := fs.GetString("trace")

	p := newPlayer(a, o.Out(), interval)
	defer p.seq.Close()

	if tracePath != "" {
		if len(args) > 0 {
			return ErrTraceWithCipher
		}

		if !filepath.IsAbs(tracePath) {
			tracePath = filepath.Join(a.cfg.EffectiveCwd, tracePath)
		}

		trace, err := export.ReadFile(tracePath)
		if err != nil {
			return err
		}

		g, err := cipher.Lookup(string(trace.Cipher))
		if err != nil {
			return err
		}

		a.log.WithField("path", tracePath).Debug("trace imported")

		p.gen = g
		p.req = cipher.Request{Text: trace.Input, Key: trace.Key, Mode: trace.Mode}
		p.show(trace)
	} else {
		if len(args) == 0 {
			args = []string{a.cfg.DefaultCipher}
		}

		// Text for the player only comes from arguments; stdin carries
		// commands.
		stdin := o.in
		o.in = nil
		g, req, err := a.requestFromFlags(fs, o, args)
		o.in = stdin

		if err != nil {
			return err
		}

		p.load(g, req)
	}

	if auto {
		return p.seq.PlayToEnd(ctx)
	}

	lines := a.lines
	if lines == nil {
		if _, tty := terminalFd(o.In()); tty {
			lines = newLinerReader(a.cfg.HistoryFile, p.complete)
		} else {
			lines = newScriptReader(o.In())
		}
	}

	defer func() { _ = lines.Close() }()

	return p.repl(ctx, lines)
}

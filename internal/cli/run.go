package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/cipherviz/internal/config"
	"github.com/calvinalkan/cipherviz/internal/render"
	"github.com/calvinalkan/cipherviz/pkg/playback"
)

const appName = "cipherviz"

// app is the state shared by all commands of one invocation. It is filled
// in after config is loaded; commands read it at exec time.
type app struct {
	cfg   config.Config
	log   *logrus.Logger
	env   map[string]string
	stdin io.Reader

	renderer render.Renderer

	// scheduler drives the player; nil means real timers.
	scheduler playback.Scheduler
	// lines overrides the player's line reader; nil means auto-detect.
	lines lineReader
}

func allCommands(a *app) []*Command {
	return []*Command{
		ListCmd(a),
		StepsCmd(a),
		RunCmd(a),
		ExportCmd(a),
		PlayCmd(a),
		DocsCmd(a),
		PrintConfigCmd(a),
	}
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	return run(&app{env: env, stdin: stdin}, out, errOut, args, sigCh)
}

func run(a *app, out io.Writer, errOut io.Writer, args []string, sigCh <-chan os.Signal) int {
	commands := allCommands(a)

	globals := flag.NewFlagSet(appName, flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	logLevel := globals.String("log-level", "", "Log `level` (debug|info|warn|error)")
	color := globals.String("color", "", "Color output: auto|always|never")
	help := globals.BoolP("help", "h", false, "Show help")

	if len(args) < 2 {
		printUsage(out, globals, commands)

		return 0
	}

	err := globals.Parse(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals, commands)

		return 1
	}

	if *help {
		printUsage(out, globals, commands)

		return 0
	}

	rest := globals.Args()
	if len(rest) == 0 {
		fprintln(errOut, "error:", ErrNoCommand)
		fprintln(errOut)
		printUsage(errOut, globals, commands)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:  *workDir,
		ConfigPath:       *configPath,
		LogLevelOverride: *logLevel,
		ColorOverride:    *color,
		Env:              a.env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, globals, commands)

		return 1
	}

	a.cfg = cfg
	a.log = newLogger(errOut, cfg.Level())
	a.renderer = render.Renderer{
		Color: colorEnabled(cfg.Color, a.env, out),
		Width: terminalWidth(out),
	}

	a.log.WithFields(logrus.Fields{
		"cwd":     cfg.EffectiveCwd,
		"global":  cfg.Sources.Global,
		"project": cfg.Sources.Project,
	}).Debug("config loaded")

	name := rest[0]

	var cmd *Command

	for _, c := range commands {
		if c.Name() == name {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
		fprintln(errOut)
		printUsage(errOut, globals, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case sig := <-sigCh:
				a.log.WithField("signal", sig).Debug("interrupted")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)
	o.in = a.stdin

	code := cmd.Run(ctx, o, rest[1:])

	if errors.Is(ctx.Err(), context.Canceled) && code == 0 {
		return 130
	}

	return code
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, appName+" - step-by-step classical cipher visualizer")
	fprintln(w)
	fprintln(w, "Usage: "+appName+" [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Global flags:")
	_, _ = io.WriteString(w, globals.FlagUsages())
	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range commands {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run '"+appName+" <command> --help' for command flags.")
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
	"github.com/calvinalkan/cipherviz/pkg/playback"
)

var (
	errPlayerArg      = errors.New("missing argument")
	errPlayerCommand  = errors.New("unknown player command")
	errPlayerNoCipher = errors.New("no cipher selected")
)

var playerCommands = []string{
	"play", "pause", "toggle",
	"next", "n", "prev", "p",
	"reset", "goto", "show",
	"speed", "mode", "key", "text", "cipher",
	"help", "quit", "exit", "q",
}

// player drives a Sequencer from typed commands. Frames are printed by the
// sequencer observer, which may run on a timer goroutine; out is guarded by
// mu.
type player struct {
	a     *app
	log   *logrus.Entry
	memo  *traceMemo
	seq   *playback.Sequencer
	gen   cipher.Generator
	req   cipher.Request
	trace cipher.Trace

	mu        sync.Mutex
	out       io.Writer
	lastIndex int
	lastTotal int
	lastState playback.State
}

func newPlayer(a *app, out io.Writer, interval time.Duration) *player {
	p := &player{
		a:         a,
		log:       a.log.WithField("component", "player"),
		memo:      newTraceMemo(),
		out:       out,
		lastIndex: -1,
	}

	p.seq = playback.New(nil, playback.Options{Interval: interval, Scheduler: a.scheduler})
	p.seq.OnChange(p.onFrame)

	return p
}

// load generates (or recalls) the trace for g and req and loads it.
func (p *player) load(g cipher.Generator, req cipher.Request) {
	trace, hit := p.memo.get(g, req, func() cipher.Trace { return p.a.generate(g, req) })

	p.log.WithFields(logrus.Fields{"cipher": g.ID(), "cached": hit, "memo": p.memo.len()}).Debug("trace loaded")

	p.gen, p.req = g, req
	p.show(trace)
}

// show loads an already generated trace.
func (p *player) show(trace cipher.Trace) {
	p.trace = trace

	if trace.Empty() {
		action := "provide text and a valid key"
		if p.gen != nil {
			action = insufficientAction(p.gen)
		}

		p.printf("%s: %s\n", insufficientIssue(trace.Cipher, trace.Mode), action)
	}

	p.seq.Load(trace.Steps)
}

func (p *player) onFrame(f playback.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f.Total == 0 {
		p.lastIndex, p.lastTotal, p.lastState = -1, 0, f.State

		return
	}

	if f.Index != p.lastIndex || f.Total != p.lastTotal {
		_ = p.a.renderer.Step(p.out, f.Index, f.Total, f.Step)
	} else if f.State != p.lastState {
		fmt.Fprintf(p.out, "-- %s --\n", f.State)
	}

	p.lastIndex, p.lastTotal, p.lastState = f.Index, f.Total, f.State
}

func (p *player) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, format, args...)
}

func (p *player) prompt() string {
	id := cipher.ID("-")
	if p.gen != nil {
		id = p.gen.ID()
	}

	f := p.seq.Frame()
	if f.Total == 0 {
		return fmt.Sprintf("%s %s> ", id, p.req.Mode)
	}

	return fmt.Sprintf("%s %s [%d/%d]> ", id, p.req.Mode, f.Index+1, f.Total)
}

// repl reads commands until quit, end of input or ctx is done.
func (p *player) repl(ctx context.Context, lines lineReader) error {
	p.printf("Type 'help' for player commands.\n")

	for ctx.Err() == nil {
		line, err := lines.Prompt(p.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines.AppendHistory(line)

		quit, cmdErr := p.exec(line)
		if cmdErr != nil {
			p.printf("error: %v\n", cmdErr)
		}

		if quit {
			return nil
		}
	}

	return nil
}

// exec runs one player command. It reports whether the player should quit.
func (p *player) exec(line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	p.log.WithField("command", name).Debug("player command")

	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		p.printHelp()
	case "play":
		if !p.seq.Play() {
			p.printf("nothing to play\n")
		}
	case "pause":
		p.seq.Pause()
	case "toggle":
		p.seq.Toggle()
	case "next", "n":
		p.seq.StepForward()
	case "prev", "p":
		p.seq.StepBackward()
	case "reset":
		p.seq.Reset()
	case "goto":
		n, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("goto: step number required: %w", errPlayerArg)
		}

		p.seq.Goto(n - 1)
	case "show":
		p.showCurrent()
	case "speed":
		ms, err := strconv.Atoi(rest)
		if err != nil || ms <= 0 {
			return false, fmt.Errorf("speed: milliseconds > 0 required: %w", errPlayerArg)
		}

		p.seq.SetInterval(time.Duration(ms) * time.Millisecond)
		p.printf("interval %dms\n", ms)
	case "mode":
		mode, err := cipher.ParseMode(rest)
		if err != nil {
			return false, err
		}

		return false, p.reload(func(r *cipher.Request) { r.Mode = mode })
	case "key":
		return false, p.reload(func(r *cipher.Request) { r.Key = rest })
	case "text":
		return false, p.reload(func(r *cipher.Request) { r.Text = rest })
	case "cipher":
		g, err := cipher.Lookup(rest)
		if err != nil {
			return false, err
		}

		req := p.req
		req.Key = p.a.cfg.KeyFor(g.ID())
		p.load(g, req)
	default:
		return false, fmt.Errorf("%w: %s (type 'help' for commands)", errPlayerCommand, name)
	}

	return false, nil
}

func (p *player) reload(edit func(*cipher.Request)) error {
	if p.gen == nil {
		return errPlayerNoCipher
	}

	req := p.req
	edit(&req)
	p.load(p.gen, p.a.request(req.Text, req.Key, req.Mode, false))

	return nil
}

func (p *player) showCurrent() {
	i, step, ok := p.seq.Current()
	if !ok {
		p.printf("(no steps)\n")

		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_ = p.a.renderer.Step(p.out, i, p.seq.Len(), step)
}

func (p *player) complete(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, c := range playerCommands {
		if strings.HasPrefix(c, lower) {
			completions = append(completions, c)
		}
	}

	if rest, ok := strings.CutPrefix(lower, "cipher "); ok {
		for _, id := range cipher.IDs() {
			if strings.HasPrefix(string(id), rest) {
				completions = append(completions, "cipher "+string(id))
			}
		}
	}

	return completions
}

func (p *player) printHelp() {
	p.printf(`Commands:
  play / pause / toggle     Start or stop automatic stepping
  next, n / prev, p         Step forward or back
  goto <n>                  Jump to step n
  reset                     Back to the first step
  show                      Print the current step again
  speed <ms>                Set the delay between steps
  mode encrypt|decrypt      Switch direction
  key <key>                 Change the key
  text <text>               Change the input text
  cipher <id>               Switch cipher
  help                      Show this help
  quit / exit / q           Leave the player
`)
}

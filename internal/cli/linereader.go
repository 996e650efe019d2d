package cli

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"
)

// lineReader is the player's input source.
type lineReader interface {
	// Prompt returns the next line. It returns io.EOF when input ends or
	// the user aborts.
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// linerReader is the interactive reader with history and completion.
type linerReader struct {
	state       *liner.State
	historyFile string
}

func newLinerReader(historyFile string, complete func(string) []string) *linerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(complete)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}

	return &linerReader{state: state, historyFile: historyFile}
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}

	return line, err
}

func (r *linerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close saves history and restores the terminal.
func (r *linerReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.Create(r.historyFile); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}

	return r.state.Close()
}

// scriptReader reads commands from a non-terminal input, one per line.
type scriptReader struct {
	scanner *bufio.Scanner
}

func newScriptReader(r io.Reader) *scriptReader {
	if r == nil {
		r = eofReader{}
	}

	return &scriptReader{scanner: bufio.NewScanner(r)}
}

func (r *scriptReader) Prompt(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	if err := r.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

func (*scriptReader) AppendHistory(string) {}

func (*scriptReader) Close() error { return nil }

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/calvinalkan/cipherviz/internal/config"
)

// terminalFd returns the file descriptor behind w if w is a terminal.
func terminalFd(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(f.Fd())

	return fd, term.IsTerminal(fd)
}

// colorEnabled resolves the color setting for output written to w.
// "auto" means color on a terminal unless NO_COLOR is set.
func colorEnabled(mode string, env map[string]string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if env["NO_COLOR"] != "" {
		return false
	}

	_, tty := terminalFd(w)

	return tty
}

// terminalWidth returns the width of the terminal behind w, or 0 when w
// is not a terminal.
func terminalWidth(w io.Writer) int {
	fd, tty := terminalFd(w)
	if !tty {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}

	return width
}

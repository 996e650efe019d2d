package render

import "strings"

// ANSI styles.
const (
	reset  = "\x1b[0m"
	bold   = "\x1b[1m"
	dim    = "\x1b[2m"
	cyan   = "\x1b[36m"
	yellow = "\x1b[33m"
	green  = "\x1b[32m"
	purple = "\x1b[35m"
)

// style wraps s with the given codes when color is enabled.
func (r Renderer) style(s string, codes ...string) string {
	if !r.Color || s == "" {
		return s
	}

	var b strings.Builder
	for _, c := range codes {
		b.WriteString(c)
	}

	b.WriteString(s)
	b.WriteString(reset)

	return b.String()
}

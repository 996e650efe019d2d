// Package render draws cipher steps as plain terminal text.
//
// Every visual kind has a fixed layout. Color only adds emphasis; the
// uncolored output carries the same information through markers.
package render

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-runewidth"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Renderer writes steps to a terminal.
type Renderer struct {
	Color bool
	Width int // wrap width for long strings; <= 0 disables wrapping
}

// Trace writes a heading and every step of t.
func (r Renderer) Trace(w io.Writer, t cipher.Trace) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, r.style(fmt.Sprintf("%s %s", t.Cipher, t.Mode), bold, purple))

	if t.Empty() {
		fmt.Fprintln(bw, r.style("(insufficient input: nothing to show)", dim))

		return bw.Flush()
	}

	for i, step := range t.Steps {
		if i > 0 {
			fmt.Fprintln(bw)
		}

		r.step(bw, i, len(t.Steps), step)
	}

	return bw.Flush()
}

// Step writes one step with a "[index/total]" header. index is zero-based.
func (r Renderer) Step(w io.Writer, index, total int, step cipher.Step) error {
	bw := bufio.NewWriter(w)
	r.step(bw, index, total, step)

	return bw.Flush()
}

func (r Renderer) step(w io.Writer, index, total int, step cipher.Step) {
	header := fmt.Sprintf("[%d/%d] %s", index+1, total, step.Description)
	fmt.Fprintln(w, r.style(header, bold))

	for _, line := range r.Lines(step.Visual) {
		fmt.Fprintln(w, "  "+line)
	}
}

// Lines returns the body of a visual, one string per output line.
func (r Renderer) Lines(v cipher.Visual) []string {
	switch v := v.(type) {
	case cipher.Empty:
		return []string{r.style("(empty)", dim)}
	case cipher.Text:
		return r.text(v)
	case cipher.Split:
		return r.boxes(
			labelled{"L" + strconv.Itoa(v.Round), v.L},
			labelled{"R" + strconv.Itoa(v.Round), v.R},
		)
	case cipher.GridView:
		return r.grid(v)
	case cipher.Keyword:
		return r.keyword(v.Keyword, v.Order)
	case cipher.Encoding:
		return r.codes(v.Encodings, v.CurrentIndex, v.Partial, false)
	case cipher.Decoding:
		return r.codes(v.Groups, v.CurrentIndex, v.Partial, true)
	case cipher.Binary:
		return r.binary(v)
	case cipher.Round:
		return r.round(v)
	case cipher.Result:
		return r.result(v)
	case nil:
		return nil
	default:
		return []string{fmt.Sprintf("(%s)", v.Kind())}
	}
}

// Dump writes the raw trace values, for debugging.
func Dump(w io.Writer, t cipher.Trace) error {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	_, err := io.WriteString(w, cfg.Sdump(t))

	return err
}

func (r Renderer) text(v cipher.Text) []string {
	if len(v.Highlight) == 0 {
		return r.wrap(v.Text)
	}

	var letters, marks strings.Builder

	for i, c := range v.Text {
		s := string(c)
		if slices.Contains(v.Highlight, i) {
			letters.WriteString(r.style(s, bold, yellow))
			marks.WriteString(strings.Repeat("^", runewidth.RuneWidth(c)))
		} else {
			letters.WriteString(s)
			marks.WriteString(strings.Repeat(" ", runewidth.RuneWidth(c)))
		}
	}

	return []string{letters.String(), strings.TrimRight(marks.String(), " ")}
}

type labelled struct {
	label   string
	content string
}

// boxes draws labelled boxes side by side.
func (r Renderer) boxes(items ...labelled) []string {
	var top, mid, bottom, labels []string

	for _, it := range items {
		inner := max(runewidth.StringWidth(it.content), runewidth.StringWidth(it.label)) + 2
		bar := strings.Repeat("─", inner)

		top = append(top, "┌"+bar+"┐")
		mid = append(mid, "│"+r.style(runewidth.FillRight(" "+it.content, inner), cyan)+"│")
		bottom = append(bottom, "└"+bar+"┘")
		labels = append(labels, runewidth.FillRight(" "+it.label, inner+2))
	}

	return []string{
		strings.Join(top, " "),
		strings.Join(mid, " "),
		strings.Join(bottom, " "),
		strings.TrimRight(strings.Join(labels, " "), " "),
	}
}

func (r Renderer) keyword(keyword string, order []int) []string {
	letters := make([]string, 0, len(keyword))
	ranks := make([]string, 0, len(order))

	for i, c := range keyword {
		letters = append(letters, fmt.Sprintf("%3s", string(c)))
		if i < len(order) {
			ranks = append(ranks, fmt.Sprintf("%3d", order[i]+1))
		}
	}

	return []string{
		r.style(strings.Join(letters, ""), bold),
		r.style(strings.Join(ranks, ""), dim),
	}
}

// grid draws one row per line. Route cells are bracketed, the current cell
// is angle-bracketed, a highlighted row gets a '>' marker and a highlighted
// column gets a '^' under it.
func (r Renderer) grid(v cipher.GridView) []string {
	var lines []string

	if v.Keyword != "" {
		lines = append(lines, r.keyword(v.Keyword, v.Order)...)
	}

	onRoute := make(map[cipher.Cell]bool, len(v.Route))
	for _, c := range v.Route {
		onRoute[c] = true
	}

	for row := range v.Grid.Rows() {
		var b strings.Builder

		if v.HighlightRow != nil && *v.HighlightRow == row {
			b.WriteString(r.style(">", yellow))
		} else {
			b.WriteString(" ")
		}

		for col := range v.Grid.Cols() {
			letter := string(cellByte(v.Grid.At(row, col)))
			cell := cipher.Cell{Row: row, Col: col}

			switch {
			case v.Current != nil && *v.Current == cell:
				b.WriteString("<" + r.style(letter, bold, yellow) + ">")
			case onRoute[cell]:
				b.WriteString("[" + r.style(letter, green) + "]")
			case v.HighlightColumn != nil && *v.HighlightColumn == col:
				b.WriteString(" " + r.style(letter, bold, cyan) + " ")
			case v.HighlightRow != nil && *v.HighlightRow == row:
				b.WriteString(" " + r.style(letter, bold, yellow) + " ")
			default:
				b.WriteString(" " + letter + " ")
			}
		}

		lines = append(lines, b.String())
	}

	if col := v.HighlightColumn; col != nil && *col >= 0 && *col < v.Grid.Cols() {
		lines = append(lines, " "+strings.Repeat("   ", *col)+" ^")
	}

	if v.ShowRoute && len(v.Route) > 0 {
		lines = append(lines, "route: "+routeString(v.Route))
	}

	if v.Partial != "" {
		lines = append(lines, r.labelled("so far", v.Partial)...)
	}

	return lines
}

func cellByte(c byte) byte {
	if c == 0 {
		return '.'
	}

	return c
}

func routeString(route []cipher.Cell) string {
	parts := make([]string, len(route))
	for i, c := range route {
		parts[i] = fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}

	return strings.Join(parts, " ")
}

// codes draws a letter/code table. The entry at current is marked.
func (r Renderer) codes(entries []cipher.LetterCode, current int, partial string, decoding bool) []string {
	lines := make([]string, 0, len(entries)+1)

	for i, e := range entries {
		marker := " "
		if i == current {
			marker = r.style(">", yellow)
		}

		left, right := e.Letter, e.Code
		if decoding {
			left, right = e.Code, e.Letter
		}

		lines = append(lines, fmt.Sprintf("%s %s -> %s", marker, left, r.style(right, cyan)))
	}

	if partial != "" {
		lines = append(lines, r.labelled("so far", partial)...)
	}

	return lines
}

func (r Renderer) binary(v cipher.Binary) []string {
	var lines []string
	lines = append(lines, r.labelled("ciphertext", group(v.Ciphertext, 5))...)
	lines = append(lines, r.labelled("bits (A=0 B=1)", group(v.Bits, 5))...)

	return lines
}

// group inserts a space after every n bytes.
func group(s string, n int) string {
	var b strings.Builder

	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(s[i:min(i+n, len(s))])
	}

	return b.String()
}

func (r Renderer) round(v cipher.Round) []string {
	lines := []string{r.style(fmt.Sprintf("round %d: %s", v.Round, v.Phase), bold)}

	items := []labelled{{"L", v.L}, {"R", v.R}}
	if v.RoundKey != "" {
		items = append(items, labelled{"K" + strconv.Itoa(v.Round), v.RoundKey})
	}

	if v.FResult != "" {
		items = append(items, labelled{"F(R,K)", v.FResult})
	}

	lines = append(lines, r.boxes(items...)...)

	if v.NewL != "" || v.NewR != "" {
		lines = append(lines, fmt.Sprintf("L' = %s   R' = %s", r.style(v.NewL, green), r.style(v.NewR, green)))
	}

	return lines
}

func (r Renderer) result(v cipher.Result) []string {
	lines := r.labelled("result", v.Text)
	if v.L != "" || v.R != "" {
		lines = append(lines, fmt.Sprintf("L = %s   R = %s", v.L, v.R))
	}

	return lines
}

// labelled writes "label: value", wrapping value to the renderer width with
// continuation lines aligned under the first character of value.
func (r Renderer) labelled(label, value string) []string {
	prefix := label + ": "
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))

	sub := r
	if sub.Width > 0 {
		sub.Width = max(sub.Width-len(prefix)-2, 8)
	}

	wrapped := sub.wrap(value)
	lines := make([]string, len(wrapped))

	for i, w := range wrapped {
		if i == 0 {
			lines[i] = prefix + r.style(w, bold, green)
		} else {
			lines[i] = indent + r.style(w, bold, green)
		}
	}

	return lines
}

// wrap splits s into lines of at most Width display cells.
func (r Renderer) wrap(s string) []string {
	if r.Width <= 0 || runewidth.StringWidth(s) <= r.Width {
		return []string{s}
	}

	var (
		lines []string
		cur   strings.Builder
		width int
	)

	for _, c := range s {
		cw := runewidth.RuneWidth(c)
		if width+cw > r.Width && width > 0 {
			lines = append(lines, cur.String())
			cur.Reset()

			width = 0
		}

		cur.WriteRune(c)
		width += cw
	}

	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}

	return lines
}

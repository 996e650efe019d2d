package cli_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/internal/cli"
	"github.com/calvinalkan/cipherviz/internal/export"
	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func Test_Export_Writes_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("export", "scytale", "-k", "4", "HELLOSPARTANS", "-o", "out/trace.json")

	trace, err := export.ReadFile(filepath.Join(c.Dir, "out", "trace.json"))
	require.NoError(t, err)
	assert.Equal(t, "HORSESTXLPAXLANX", trace.Result)

	digest, err := export.Digest(trace)
	require.NoError(t, err)
	assert.Equal(t, digest, stdout)
}

func Test_Export_Requires_Output_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("export", "scytale", "HELLO")

	cli.AssertContains(t, stderr, "--output is required")
}

func Test_Export_Then_Play_Trace_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("export", "route", "-k", "4", "MEET ME AT DAWN", "-o", "route.json")

	stdout := c.MustRun("play", "--trace", "route.json", "--auto", "--interval", "1")

	cli.AssertContains(t, stdout, "[1/18] ")
	cli.AssertContains(t, stdout, "[18/18] ")
	cli.AssertContains(t, stdout, "result: MEETTNWADMEA")
}

func Test_Play_Trace_Rejects_Tampered_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("export", "scytale", "-k", "4", "HELLOSPARTANS", "-o", "trace.json")

	content := c.ReadFile("trace.json")
	c.WriteFile("trace.json", strings.Replace(content, `"HORS"`, `"HORN"`, 1))

	stderr := c.MustFail("play", "--trace", "trace.json", "--auto")
	cli.AssertContains(t, stderr, "digest mismatch")
}

func Test_Play_Trace_With_Cipher_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("export", "bacon", "HI", "-o", "trace.json")

	stderr := c.MustFail("play", "--trace", "trace.json", "bacon")
	cli.AssertContains(t, stderr, "--trace cannot be combined")
}

func Test_Play_Trace_Rejects_Out_Of_Range_Highlight_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	column := -2
	forged := cipher.Trace{
		Cipher: cipher.IDScytale,
		Mode:   cipher.Encrypt,
		Input:  "AB",
		Key:    "2",
		Steps: []cipher.Step{
			{Description: "grid", Visual: cipher.GridView{Grid: cipher.NewGrid(1, 2), HighlightColumn: &column}},
			{Description: "done", Visual: cipher.Result{Text: "AB"}},
		},
		Result: "AB",
	}
	require.NoError(t, export.WriteFile(filepath.Join(c.Dir, "trace.json"), forged))

	stderr := c.MustFail("play", "--trace", "trace.json", "--auto")
	cli.AssertContains(t, stderr, "invalid export file")
	cli.AssertContains(t, stderr, "highlightColumn -2")
}

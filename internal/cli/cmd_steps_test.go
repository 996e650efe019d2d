package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/cipherviz/internal/cli"
	"github.com/calvinalkan/cipherviz/internal/export"
	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

func Test_Steps_Text_Format_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("steps", "scytale", "-k", "4", "HELLO", "SPARTANS")

	cli.AssertContains(t, stdout, "scytale encrypt")
	cli.AssertContains(t, stdout, "[1/10] ")
	cli.AssertContains(t, stdout, "[10/10] ")
	cli.AssertContains(t, stdout, "result: HORSESTXLPAXLANX")
	cli.AssertNotContains(t, stdout, "\x1b[")
}

func Test_Steps_Color_Always_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--color=always", "steps", "feistel", "SECURITY")

	cli.AssertContains(t, stdout, "\x1b[")
	cli.AssertContains(t, stdout, "[15/15] ")
}

func Test_Steps_JSON_Format_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("steps", "--format", "json", "columnar", "-d", "CAXTTXTANADXAKW")

	trace, err := export.Decode(strings.NewReader(stdout))
	require.NoError(t, err)

	assert.Equal(t, cipher.IDColumnar, trace.Cipher)
	assert.Equal(t, cipher.Decrypt, trace.Mode)
	assert.Equal(t, "ZEBRA", trace.Key)
	assert.Equal(t, "ATTACKATDAWN", trace.Result)
}

func Test_Steps_Dump_Format_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("steps", "-f", "dump", "bacon", "HI")

	cli.AssertContains(t, stdout, "cipher.Trace")
	cli.AssertContains(t, stdout, "AABBBABAAA")
}

func Test_Steps_Invalid_Format_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("steps", "--format", "yaml", "bacon", "HI")

	cli.AssertContains(t, stderr, "invalid format")
}

func Test_Steps_Insufficient_Input_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("steps", "columnar", "-k", "A", "HELLO")

	assert.Equal(t, 1, code)
	cli.AssertContains(t, stdout, "insufficient input")
	cli.AssertContains(t, stderr, "warning: insufficient input for columnar encrypt")
}

package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvinalkan/cipherviz/internal/cli"
)

func Test_Play_Scripted_Navigation_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	script := strings.Join([]string{"next", "goto 10", "show", "prev", "reset", "quit"}, "\n")

	stdout, stderr, code := c.RunWithInput(script, "play", "scytale", "HELLO", "SPARTANS")

	assert.Equal(t, 0, code, stderr)

	headers := []string{"[1/10] ", "[2/10] ", "[10/10] ", "[10/10] ", "[9/10] ", "[1/10] "}

	rest := stdout
	for _, h := range headers {
		i := strings.Index(rest, h)
		if i < 0 {
			t.Fatalf("missing %q in order\noutput:\n%s", h, stdout)
		}

		rest = rest[i+len(h):]
	}

	cli.AssertContains(t, stdout, "result: HORSESTXLPAXLANX")
}

func Test_Play_Changes_Settings_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	script := strings.Join([]string{
		"goto 99",
		"mode decrypt",
		"text AABBBABAAA",
		"goto 4",
		"cipher scytale",
		"mode e",
		"key 5",
		"text HELLOSPARTANS",
		"goto 99",
		"q",
	}, "\n")

	stdout, stderr, code := c.RunWithInput(script, "play", "bacon", "HI")

	assert.Equal(t, 0, code, stderr)
	cli.AssertContains(t, stdout, "[5/5] ")
	cli.AssertContains(t, stdout, "result: AABBBABAAA")
	cli.AssertContains(t, stdout, "insufficient input for bacon decrypt")
	cli.AssertContains(t, stdout, "[4/4] ")
	cli.AssertContains(t, stdout, "result: HJ")
	cli.AssertContains(t, stdout, "result: HSAEPNLASLRXOTX")
}

func Test_Play_Reports_Command_Errors_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	script := strings.Join([]string{"dance", "goto x", "speed -1", "speed 50", "mode sideways", "cipher enigma", "help"}, "\n")

	stdout, _, code := c.RunWithInput(script, "play", "feistel", "SECURITY")

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stdout, "error: unknown player command: dance")
	cli.AssertContains(t, stdout, "error: goto: step number required")
	cli.AssertContains(t, stdout, "error: speed: milliseconds > 0 required")
	cli.AssertContains(t, stdout, "interval 50ms")
	cli.AssertContains(t, stdout, "error: invalid mode")
	cli.AssertContains(t, stdout, "error: unknown cipher")
	cli.AssertContains(t, stdout, "Commands:")
}

func Test_Play_Uses_Default_Cipher_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".cipherviz.json", `{"default_cipher": "route"}`)

	stdout, _, code := c.RunWithInput("", "play")

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stdout, "insufficient input for route encrypt")
}

func Test_Play_Auto_Plays_To_The_End_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("play", "feistel", "SECURITY", "--auto", "--interval", "1")

	cli.AssertContains(t, stdout, "[1/15] ")
	cli.AssertContains(t, stdout, "-- playing --")
	cli.AssertContains(t, stdout, "[15/15] ")
	cli.AssertContains(t, stdout, "result: CBNTKDCT")
}

func Test_Play_Invalid_Interval_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stderr := c.MustFail("play", "bacon", "HI", "--interval", "0")

	cli.AssertContains(t, stderr, "--interval must be positive")
}

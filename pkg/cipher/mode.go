package cipher

import (
	"fmt"
	"strings"
)

// Mode selects the direction a generator runs in.
type Mode string

// Mode constants.
const (
	Encrypt Mode = "encrypt"
	Decrypt Mode = "decrypt"
)

// ParseMode parses "encrypt" or "decrypt" (case-insensitive; "enc" and
// "dec" are accepted as short forms).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e":
		return Encrypt, nil
	case "decrypt", "dec", "d":
		return Decrypt, nil
	default:
		return "", fmt.Errorf("%w: %q (want encrypt|decrypt)", ErrInvalidMode, s)
	}
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Decrypt {
		return Encrypt
	}

	return Decrypt
}

func (m Mode) String() string {
	return string(m)
}

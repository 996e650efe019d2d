package cipher

import "errors"

// Error variables for lookups and argument parsing. Generators themselves
// never fail.
var (
	ErrUnknownCipher = errors.New("unknown cipher")
	ErrInvalidMode   = errors.New("invalid mode")
)

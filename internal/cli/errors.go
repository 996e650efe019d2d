package cli

import "errors"

// Error variables for command-line handling.
var (
	ErrNoCommand       = errors.New("no command given")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrCipherRequired  = errors.New("cipher is required")
	ErrOutputRequired  = errors.New("--output is required")
	ErrTraceWithCipher = errors.New("--trace cannot be combined with a cipher or text")
	ErrFormatInvalid   = errors.New("invalid format (want text|json|dump)")
	ErrIntervalInvalid = errors.New("--interval must be positive")
)

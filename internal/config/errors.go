package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDefaultCipherEmpty = errors.New("default_cipher cannot be empty")
	ErrUnknownCipher      = errors.New("unknown cipher")
	ErrIntervalInvalid    = errors.New("interval_ms must be positive")
	ErrColorInvalid       = errors.New("color must be auto, always or never")
	ErrLogLevelInvalid    = errors.New("invalid log level")
)

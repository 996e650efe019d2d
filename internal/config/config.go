// Package config loads the layered cipherviz configuration.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tailscale/hujson"

	"github.com/calvinalkan/cipherviz/pkg/cipher"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ConfigFileName is the project config file name.
const ConfigFileName = ".cipherviz.json"

// HistoryFileName is the default REPL history file, relative to $HOME.
const HistoryFileName = ".cipherviz_history"

// Config holds all configuration options.
type Config struct {
	DefaultCipher  string            `json:"default_cipher"`
	IntervalMS     int               `json:"interval_ms"`
	Color          string            `json:"color"`
	FoldDiacritics bool              `json:"fold_diacritics"`
	LogLevel       string            `json:"log_level"`
	Keys           map[string]string `json:"keys"`
	HistoryFile    string            `json:"history_file,omitempty"`

	// Resolved (not serialized)
	EffectiveCwd string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// layer is one config file. Pointers distinguish "absent" from zero.
type layer struct {
	DefaultCipher  *string           `json:"default_cipher"`
	IntervalMS     *int              `json:"interval_ms"`
	Color          *string           `json:"color"`
	FoldDiacritics *bool             `json:"fold_diacritics"`
	LogLevel       *string           `json:"log_level"`
	Keys           map[string]string `json:"keys"`
	HistoryFile    *string           `json:"history_file"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DefaultCipher: string(cipher.IDScytale),
		IntervalMS:    800,
		Color:         ColorAuto,
		LogLevel:      logrus.WarnLevel.String(),
		Keys: map[string]string{
			string(cipher.IDScytale):  "4",
			string(cipher.IDRoute):    "4",
			string(cipher.IDColumnar): "ZEBRA",
			string(cipher.IDFeistel):  "CRYPTO",
		},
	}
}

// Interval returns the playback interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Level returns the parsed log level. Config is validated on load, so an
// unparsable level only occurs for hand-built values; it maps to warn.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}

	return lvl
}

// KeyFor returns the configured default key for a cipher, or "".
func (c Config) KeyFor(id cipher.ID) string {
	return c.Keys[string(id)]
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	LogLevelOverride string            // --log-level flag value; empty means no override
	ColorOverride    string            // --color flag value; empty means no override
	Env              map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/cipherviz/config.json or $XDG_CONFIG_HOME/cipherviz/config.json)
// 3. Project config file at default location (.cipherviz.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()
	cfg.HistoryFile = defaultHistoryFile(input.Env)

	globalLayer, globalPath, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = merge(cfg, globalLayer)

	projectLayer, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectLayer)

	if input.LogLevelOverride != "" {
		cfg.LogLevel = input.LogLevelOverride
	}

	if input.ColorOverride != "" {
		cfg.Color = input.ColorOverride
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.HistoryFile = expandHome(cfg.HistoryFile, input.Env)

	return cfg, nil
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/cipherviz/config.json if set, otherwise ~/.config/cipherviz/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "cipherviz", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "cipherviz", "config.json")
	}

	return ""
}

func defaultHistoryFile(env map[string]string) string {
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, HistoryFileName)
	}

	return ""
}

func expandHome(path string, env map[string]string) string {
	home := env["HOME"]
	if home == "" {
		return path
	}

	if path == "~" {
		return home
	}

	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}

	return path
}

func loadGlobal(env map[string]string) (layer, string, error) {
	path := globalPath(env)
	if path == "" {
		return layer{}, "", nil
	}

	l, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return layer{}, "", err
	}

	return l, path, nil
}

// loadProject loads the project config file (.cipherviz.json) or an explicit config file.
func loadProject(workDir, configPath string) (layer, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return layer{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
	}

	l, loaded, err := loadFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return layer{}, "", err
	}

	return l, cfgFile, nil
}

// loadFile loads one config file. If mustExist is false, a missing file
// returns an empty layer and loaded=false.
func loadFile(path string, mustExist bool) (layer, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return layer{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return layer{}, false, nil
	}

	l, parseErr := parse(data)
	if parseErr != nil {
		return layer{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return l, true, nil
}

func parse(data []byte) (layer, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return layer{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var l layer

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	decodeErr := dec.Decode(&l)
	if decodeErr != nil {
		return layer{}, fmt.Errorf("invalid JSON: %w", decodeErr)
	}

	if l.DefaultCipher != nil && strings.TrimSpace(*l.DefaultCipher) == "" {
		return layer{}, ErrDefaultCipherEmpty
	}

	return l, nil
}

func merge(base Config, overlay layer) Config {
	if overlay.DefaultCipher != nil {
		base.DefaultCipher = *overlay.DefaultCipher
	}

	if overlay.IntervalMS != nil {
		base.IntervalMS = *overlay.IntervalMS
	}

	if overlay.Color != nil {
		base.Color = *overlay.Color
	}

	if overlay.FoldDiacritics != nil {
		base.FoldDiacritics = *overlay.FoldDiacritics
	}

	if overlay.LogLevel != nil {
		base.LogLevel = *overlay.LogLevel
	}

	if overlay.HistoryFile != nil {
		base.HistoryFile = *overlay.HistoryFile
	}

	if len(overlay.Keys) > 0 {
		keys := maps.Clone(base.Keys)
		if keys == nil {
			keys = make(map[string]string, len(overlay.Keys))
		}

		for id, key := range overlay.Keys {
			keys[strings.ToLower(strings.TrimSpace(id))] = key
		}

		base.Keys = keys
	}

	return base
}

func validate(cfg Config) error {
	if _, err := cipher.Lookup(cfg.DefaultCipher); err != nil {
		return fmt.Errorf("%w: default_cipher %q", ErrUnknownCipher, cfg.DefaultCipher)
	}

	for id := range cfg.Keys {
		if _, err := cipher.Lookup(id); err != nil {
			return fmt.Errorf("%w: keys.%s", ErrUnknownCipher, id)
		}
	}

	if cfg.IntervalMS <= 0 {
		return fmt.Errorf("%w: %d", ErrIntervalInvalid, cfg.IntervalMS)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrColorInvalid, cfg.Color)
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrLogLevelInvalid, cfg.LogLevel)
	}

	return nil
}

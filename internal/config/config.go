package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/logging"
)

// Config holds every termctl setting.
type Config struct {
	// Backend is "curses" or "tcell".
	Backend  string         `toml:"backend" yaml:"backend"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Colors   ColorsConfig   `toml:"colors" yaml:"colors"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// TerminalConfig configures the terminal device and startup modes.
type TerminalConfig struct {
	// EscDelay is the lone-ESC wait in milliseconds.
	EscDelay int `toml:"escdelay" yaml:"escdelay"`
	// TTY is the terminal device; "-" uses stdin/stdout.
	TTY string `toml:"tty" yaml:"tty"`

	AlternateScreen bool `toml:"alternate_screen" yaml:"alternate_screen"`
	MouseCapture    bool `toml:"mouse_capture" yaml:"mouse_capture"`
	RawMode         bool `toml:"raw_mode" yaml:"raw_mode"`
}

// ColorsConfig configures color handling.
type ColorsConfig struct {
	// Depth forces the palette size: 0 detects, otherwise 8, 16 or 256.
	Depth int `toml:"depth" yaml:"depth"`
	// Foreground and Background are applied when a terminal opens.
	// Empty leaves the terminal default.
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	// PairPolicy is "single-slot" or "lru".
	PairPolicy string `toml:"pair_policy" yaml:"pair_policy"`
}

// LoggingConfig configures diagnostics.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log lines; empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: "curses",
		Terminal: TerminalConfig{
			EscDelay: 25,
			TTY:      "/dev/tty",
		},
		Colors: ColorsConfig{
			PairPolicy: "single-slot",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from defaults, the file at path (skipped
// when path is empty or the file does not exist) and TERMCTL_*
// environment variables, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EscDelayDuration returns the ESC delay as a duration.
func (c *Config) EscDelayDuration() time.Duration {
	return time.Duration(c.Terminal.EscDelay) * time.Millisecond
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// ForegroundColor returns the parsed startup foreground, if any.
func (c *Config) ForegroundColor() (core.Color, bool) {
	return parseOptionalColor(c.Colors.Foreground)
}

// BackgroundColor returns the parsed startup background, if any.
func (c *Config) BackgroundColor() (core.Color, bool) {
	return parseOptionalColor(c.Colors.Background)
}

func parseOptionalColor(s string) (core.Color, bool) {
	if strings.TrimSpace(s) == "" {
		return core.ColorReset, false
	}
	c, err := core.ParseColor(s)
	if err != nil {
		return core.ColorReset, false
	}
	return c, true
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, value any, msg string) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Message: msg})
	}

	switch c.Backend {
	case "curses", "tcell":
	default:
		add("backend", c.Backend, `must be "curses" or "tcell"`)
	}

	if c.Terminal.EscDelay < 0 || c.Terminal.EscDelay > 10000 {
		add("terminal.escdelay", c.Terminal.EscDelay, "must be between 0 and 10000 milliseconds")
	}
	if c.Terminal.TTY != "" && c.Terminal.TTY != "-" && !filepath.IsAbs(c.Terminal.TTY) {
		add("terminal.tty", c.Terminal.TTY, `must be an absolute device path or "-"`)
	}

	switch c.Colors.Depth {
	case 0, 8, 16, 256:
	default:
		add("colors.depth", c.Colors.Depth, "must be 0, 8, 16 or 256")
	}
	for _, f := range []struct{ field, value string }{
		{"colors.foreground", c.Colors.Foreground},
		{"colors.background", c.Colors.Background},
	} {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		if _, err := core.ParseColor(f.value); err != nil {
			add(f.field, f.value, err.Error())
		}
	}
	switch strings.ToLower(c.Colors.PairPolicy) {
	case "", "single-slot", "lru":
	default:
		add("colors.pair_policy", c.Colors.PairPolicy, `must be "single-slot" or "lru"`)
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok && c.Logging.Level != "" {
		add("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	return errors.Join(errs...)
}

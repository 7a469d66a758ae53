package config

import (
	"errors"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every environment variable read by ApplyEnv.
const EnvPrefix = "TERMCTL_"

// envSetter applies one environment value to a config.
type envSetter func(c *Config, value string) error

// envMapping maps environment variables to the settings they override.
var envMapping = map[string]struct {
	path string
	set  envSetter
}{
	"TERMCTL_BACKEND":          {"backend", setString(func(c *Config) *string { return &c.Backend })},
	"TERMCTL_ESCDELAY":         {"terminal.escdelay", setInt(func(c *Config) *int { return &c.Terminal.EscDelay })},
	"TERMCTL_TTY":              {"terminal.tty", setString(func(c *Config) *string { return &c.Terminal.TTY })},
	"TERMCTL_ALTERNATE_SCREEN": {"terminal.alternate_screen", setBool(func(c *Config) *bool { return &c.Terminal.AlternateScreen })},
	"TERMCTL_MOUSE_CAPTURE":    {"terminal.mouse_capture", setBool(func(c *Config) *bool { return &c.Terminal.MouseCapture })},
	"TERMCTL_RAW_MODE":         {"terminal.raw_mode", setBool(func(c *Config) *bool { return &c.Terminal.RawMode })},
	"TERMCTL_COLORS":           {"colors.depth", setInt(func(c *Config) *int { return &c.Colors.Depth })},
	"TERMCTL_FOREGROUND":       {"colors.foreground", setString(func(c *Config) *string { return &c.Colors.Foreground })},
	"TERMCTL_BACKGROUND":       {"colors.background", setString(func(c *Config) *string { return &c.Colors.Background })},
	"TERMCTL_PAIR_POLICY":      {"colors.pair_policy", setString(func(c *Config) *string { return &c.Colors.PairPolicy })},
	"TERMCTL_LOG_LEVEL":        {"logging.level", setString(func(c *Config) *string { return &c.Logging.Level })},
	"TERMCTL_LOG_FILE":         {"logging.file", setString(func(c *Config) *string { return &c.Logging.File })},
}

// EnvVars lists the recognized environment variables, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv overrides c with any TERMCTL_* variables that are set.
// Empty values are treated as set. Unrecognized TERMCTL_* variables are
// ignored.
func ApplyEnv(c *Config) error {
	var errs []error
	for _, name := range EnvVars() {
		val, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		m := envMapping[name]
		if err := m.set(c, val); err != nil {
			errs = append(errs, &ValidationError{Field: m.path, Value: name + "=" + val, Message: err.Error()})
		}
	}
	return errors.Join(errs...)
}

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("not an integer")
		}
		*field(c) = n
		return nil
	}
}

func setBool(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0", "":
			*field(c) = false
		default:
			return errors.New("not a boolean")
		}
		return nil
	}
}

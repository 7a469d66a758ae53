// Package main is the termctl probe: it opens a terminal the way the
// configuration says and echoes every decoded input event until q or
// Ctrl-C.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/termctl/internal/backend"
	"github.com/dshills/termctl/internal/config"
	"github.com/dshills/termctl/internal/logging"
	"github.com/dshills/termctl/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	backend    string
	logLevel   string
	logFile    string
	tty        string
	mouse      bool
	altScreen  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening log: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	if opts.configPath != "" {
		w, err := config.Watch(opts.configPath, func(next *config.Config, err error) {
			if err != nil {
				logger.Warn("config reload: %v", err)
				return
			}
			logger.SetLevel(next.LogLevel())
			logger.Info("config reloaded, log level %s", next.LogLevel())
		})
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	term, err := terminal.Open(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer term.Close()

	// Raw mode delivers Ctrl-C as a key; this catches it otherwise.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := newProbe(term, logger).run(signals); err != nil {
		logger.Error("probe: %v", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.backend, "backend", "", fmt.Sprintf("Terminal backend %v", backend.Names()))
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flag.StringVar(&opts.tty, "tty", "", `Terminal device, or "-" for stdin/stdout`)
	flag.BoolVar(&opts.mouse, "mouse", false, "Enable mouse capture")
	flag.BoolVar(&opts.altScreen, "alt", false, "Use the alternate screen")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "termctl - terminal input and rendering probe\n\n")
		fmt.Fprintf(os.Stderr, "Usage: termctl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvVars() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nPress q or Ctrl-C to quit.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("termctl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	return opts
}

// applyFlags overrides cfg with flags given on the command line.
func applyFlags(cfg *config.Config, opts options) {
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	if opts.tty != "" {
		cfg.Terminal.TTY = opts.tty
	}
	if opts.mouse {
		cfg.Terminal.MouseCapture = true
	}
	if opts.altScreen {
		cfg.Terminal.AlternateScreen = true
	}
	// The probe reads keys one at a time.
	cfg.Terminal.RawMode = true
}

func newLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel(),
		Output: out,
		Prefix: "termctl",
	})
	return logger, closeFn, nil
}

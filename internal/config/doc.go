// Package config loads termctl settings.
//
// Settings are resolved in layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (cmd/termctl)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← TERMCTL_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← termctl.toml or termctl.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Basic Usage
//
//	cfg, err := config.Load("termctl.toml")
//	if err != nil {
//	    return err
//	}
//
// # Live Reload
//
// Watch reports every settled change to the file. Only the logging level
// is applied to a running terminal; the other settings take effect the
// next time a terminal is opened.
//
//	w, err := config.Watch(path, func(cfg *config.Config, err error) {
//	    if err == nil {
//	        logger.SetLevel(cfg.LogLevel())
//	    }
//	})
//	defer w.Close()
package config

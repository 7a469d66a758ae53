package main

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dshills/termctl/internal/backend"
	"github.com/dshills/termctl/internal/config"
	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/logging"
	"github.com/dshills/termctl/internal/terminal"
)

func TestQuit(t *testing.T) {
	tests := []struct {
		name     string
		ev       core.Event
		expected bool
	}{
		{"q", core.KeyPress(core.Char('q'), core.ModNone), true},
		{"ctrl-c", core.KeyPress(core.Char('c'), core.ModControl), true},
		{"alt-q", core.KeyPress(core.Char('q'), core.ModAlt), false},
		{"c", core.KeyPress(core.Char('c'), core.ModNone), false},
		{"resize", core.ResizeEvent(80, 24), false},
	}

	for _, tt := range tests {
		if got := quit(tt.ev); got != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}

func TestProbe_EchoesUntilQuit(t *testing.T) {
	rec := backend.NewRecorder(40, 10)
	term := terminal.New(rec, logging.Nop())
	defer term.Close()

	rec.Push(core.KeyPress(core.Char('x'), core.ModNone))
	rec.Push(core.KeyPress(core.Char('q'), core.ModNone))

	done := make(chan error, 1)
	go func() { done <- newProbe(term, logging.Nop()).run(make(chan os.Signal)) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected probe to stop on q")
	}

	text := rec.Text()
	if !strings.Contains(text, "termctl recorder  40x10") {
		t.Errorf("expected header, got %q", text)
	}
	if !strings.Contains(text, "Key(Char('x'))") {
		t.Errorf("expected echoed key, got %q", text)
	}
	if strings.Contains(text, "Key(Char('q'))") {
		t.Errorf("expected q to quit without echo, got %q", text)
	}
}

func TestProbe_StopsOnSignal(t *testing.T) {
	rec := backend.NewRecorder(40, 10)
	term := terminal.New(rec, logging.Nop())
	defer term.Close()

	signals := make(chan os.Signal, 1)
	signals <- os.Interrupt

	if err := newProbe(term, logging.Nop()).run(signals); err != nil {
		t.Errorf("expected clean stop, got %v", err)
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	applyFlags(cfg, options{backend: "tcell", logLevel: "debug", tty: "-", mouse: true})

	if cfg.Backend != "tcell" {
		t.Errorf("expected backend tcell, got %s", cfg.Backend)
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("expected debug, got %v", cfg.LogLevel())
	}
	if cfg.Terminal.TTY != "-" {
		t.Errorf("expected tty -, got %s", cfg.Terminal.TTY)
	}
	if !cfg.Terminal.MouseCapture || !cfg.Terminal.RawMode {
		t.Error("expected mouse capture and raw mode on")
	}
	if cfg.Terminal.AlternateScreen {
		t.Error("expected alternate screen left at default")
	}
}

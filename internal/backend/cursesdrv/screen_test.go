package cursesdrv

import (
	"testing"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
)

func newScreenDriver(t *testing.T, tty curses.TTY) (*Driver, *curses.Screen) {
	t.Helper()
	scr, err := curses.Newterm("xterm-256color", tty, curses.Options{})
	if err != nil {
		t.Fatalf("Newterm failed: %v", err)
	}
	d, err := New(scr, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d, scr
}

func TestScreen_ResetColorDropsPair(t *testing.T) {
	d, scr := newScreenDriver(t, &nullTTY{})

	pair := func() int { return curses.PairNumber(scr.AttrGet()) }

	if err := d.Batch(core.SetForegroundColor(core.ColorRed)); err != nil {
		t.Fatalf("SetForegroundColor failed: %v", err)
	}
	if pair() == 0 {
		t.Fatal("expected a color pair after setting red")
	}

	if err := d.Batch(core.ResetColor()); err != nil {
		t.Fatalf("ResetColor failed: %v", err)
	}
	if got := pair(); got != 0 {
		t.Errorf("expected default pair after ResetColor, got %d", got)
	}

	d.Batch(core.SetForegroundColor(core.ColorRed))
	if err := d.Batch(core.SetForegroundColor(core.ColorReset)); err != nil {
		t.Fatalf("SetForegroundColor(Reset) failed: %v", err)
	}
	if got := pair(); got != 0 {
		t.Errorf("expected default pair after SetForegroundColor(Reset), got %d", got)
	}
}

func TestScreen_ColorChangeKeepsAttributes(t *testing.T) {
	d, scr := newScreenDriver(t, &nullTTY{})

	d.Batch(core.SetAttribute(core.AttrBold))
	d.Batch(core.SetBackgroundColor(core.ColorBlue))
	d.Batch(core.ResetColor())

	if scr.AttrGet()&curses.ABold == 0 {
		t.Error("expected bold to survive a color reset")
	}
}

func TestScreen_PollSeesKeyBehindSkippedReport(t *testing.T) {
	// A release with no button held produces no event and is skipped.
	tty := &scriptTTY{chunks: []string{"\x1b[<0;1;1m", "a"}}
	d, _ := newScreenDriver(t, tty)

	got, err := d.Get(core.PollEvent(0))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Event == nil {
		t.Fatal("expected the pending key, got no event")
	}
	expected := core.KeyPress(core.Char('a'), core.ModNone)
	if *got.Event != expected {
		t.Errorf("expected %v, got %v", expected, *got.Event)
	}

	got, err = d.Get(core.PollEvent(0))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Event != nil {
		t.Errorf("expected no event once input is drained, got %v", *got.Event)
	}
}

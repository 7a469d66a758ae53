package cursesdrv

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
)

func TestNew_Initializes(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	if d.Name() != "curses" {
		t.Errorf("expected name 'curses', got '%s'", d.Name())
	}
	if w.calls[0] != "keypad" {
		t.Errorf("expected keypad to be enabled first, got %v", w.calls)
	}
	if w.mask != curses.AllMouseEvents|curses.ReportMousePosition {
		t.Errorf("expected all mouse events, got %#x", w.mask)
	}
	if len(w.pairs) != 1 || w.pairs[0] != (pairInit{0, -1, -1}) {
		t.Errorf("expected default pair initialized, got %v", w.pairs)
	}
	if d.colors != 256 {
		t.Errorf("expected 256 colors, got %d", d.colors)
	}
}

func TestNew_WithoutColors(t *testing.T) {
	w := newFakeWindow()
	w.colorErr = curses.ErrNoColor
	d := newTestDriver(t, w)

	if d.colors != 0 {
		t.Errorf("expected no colors, got %d", d.colors)
	}
	if err := d.Batch(core.SetForegroundColor(core.ColorRed)); err != nil {
		t.Errorf("expected color request to be accepted, got %v", err)
	}
}

func TestBatch_Cursor(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	if err := d.Batch(core.MoveCursorTo(10, 3)); err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	got, _ := d.Get(core.CursorPosition())
	if got.Column != 10 || got.Row != 3 {
		t.Errorf("expected cursor at (10, 3), got (%d, %d)", got.Column, got.Row)
	}

	err := d.Batch(core.MoveCursorTo(200, 3))
	var ioErr *core.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected IOError for out of range move, got %v", err)
	}

	d.Batch(core.HideCursor())
	if w.cursor != 0 {
		t.Errorf("expected hidden cursor, got %d", w.cursor)
	}
	d.Batch(core.ShowCursor())
	if w.cursor != 1 {
		t.Errorf("expected visible cursor, got %d", w.cursor)
	}
	d.Batch(core.EnableBlinking())
	if !w.blink {
		t.Error("expected blinking on")
	}
	d.Batch(core.DisableBlinking())
	if w.blink {
		t.Error("expected blinking off")
	}
}

func TestBatch_ClearAndScroll(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)
	w.calls = nil

	actions := []core.Action{
		core.ClearTerminal(core.ClearAll),
		core.ClearTerminal(core.ClearFromCursorDown),
		core.ClearTerminal(core.ClearFromCursorUp),
		core.ClearTerminal(core.ClearCurrentLine),
		core.ClearTerminal(core.ClearUntilNewLine),
		core.ScrollUp(2),
		core.ScrollDown(3),
	}
	for _, a := range actions {
		if err := d.Batch(a); err != nil {
			t.Fatalf("Batch(%v) failed: %v", a, err)
		}
	}

	expected := "clear clrtobot clrtotop clrline clrtoeol scrl 2 scrl -3"
	if got := strings.Join(w.calls, " "); got != expected {
		t.Errorf("expected calls '%s', got '%s'", expected, got)
	}
}

func TestBatch_SetTerminalSize(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	if err := d.Batch(core.SetTerminalSize(100, 30)); err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	got, err := d.Get(core.TerminalSize())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Columns != 100 || got.Rows != 30 {
		t.Errorf("expected 100x30, got %dx%d", got.Columns, got.Rows)
	}
}

func TestBatch_ModesAreImmediate(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)
	w.calls = nil

	d.Batch(core.EnableRawMode())
	d.Batch(core.DisableRawMode())
	d.Batch(core.EnterAlternateScreen())
	d.Batch(core.LeaveAlternateScreen())

	expected := "noecho raw nl echo noraw nl altscreen mainscreen"
	if got := strings.Join(w.calls, " "); got != expected {
		t.Errorf("expected calls '%s', got '%s'", expected, got)
	}
	if w.refreshes != 0 {
		t.Errorf("expected no refresh, got %d", w.refreshes)
	}
}

func TestBatch_MouseCaptureBytes(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	d.Batch(core.EnableMouseCapture())
	if got := w.out.String(); got != "\x1b[?1002h" {
		t.Errorf("expected enable sequence, got %q", got)
	}

	w.out.Reset()
	d.Batch(core.DisableMouseCapture())
	if got := w.out.String(); got != "\x1b[?1002l" {
		t.Errorf("expected disable sequence, got %q", got)
	}
}

func TestBatch_Colors(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)
	w.pairs = nil

	d.Batch(core.SetBackgroundColor(core.ColorBlue))
	d.Batch(core.SetForegroundColor(core.Rgb(138, 138, 138)))

	expected := []pairInit{{1, -1, 12}, {2, 245, 12}}
	if len(w.pairs) != len(expected) {
		t.Fatalf("expected %d pair inits, got %v", len(expected), w.pairs)
	}
	for i := range expected {
		if w.pairs[i] != expected[i] {
			t.Errorf("pair init %d: expected %v, got %v", i, expected[i], w.pairs[i])
		}
	}
	if curses.PairNumber(w.attr) != 2 {
		t.Errorf("expected pair 2 active, got %d", curses.PairNumber(w.attr))
	}

	// The same color again reuses its pair without reinitializing.
	d.Batch(core.SetForegroundColor(core.Rgb(138, 138, 138)))
	if len(w.pairs) != 2 {
		t.Errorf("expected cached pair, got %v", w.pairs)
	}

	d.Batch(core.ResetColor())
	if curses.PairNumber(w.attr) != 0 {
		t.Errorf("expected default pair after reset, got %d", curses.PairNumber(w.attr))
	}
	if d.fg != core.ColorReset || d.bg != core.ColorReset {
		t.Errorf("expected reset colors, got %v/%v", d.fg, d.bg)
	}
}

func TestBatch_Attributes(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	on := []struct {
		attr     core.Attribute
		expected curses.Attr
	}{
		{core.AttrBold, curses.ABold},
		{core.AttrItalic, curses.AItalic},
		{core.AttrUnderlined, curses.AUnderline},
		{core.AttrSlowBlink, curses.ABlink},
		{core.AttrRapidBlink, curses.ABlink},
		{core.AttrCrossed, curses.AStrikeout},
		{core.AttrReversed, curses.AReverse},
		{core.AttrConceal, curses.AInvis},
	}
	for _, tt := range on {
		w.attr = 0
		if err := d.Batch(core.SetAttribute(tt.attr)); err != nil {
			t.Fatalf("SetAttribute(%v) failed: %v", tt.attr, err)
		}
		if w.attr != tt.expected {
			t.Errorf("SetAttribute(%v): expected %#x, got %#x", tt.attr, tt.expected, w.attr)
		}
	}

	w.attr = curses.ABold | curses.AItalic | curses.ColorPair(3)
	d.Batch(core.SetAttribute(core.AttrBoldOff))
	if w.attr&curses.ABold != 0 {
		t.Error("expected bold off")
	}
	d.Batch(core.SetAttribute(core.AttrReset))
	if w.attr != curses.ColorPair(3) {
		t.Errorf("expected reset to keep only the color pair, got %#x", w.attr)
	}

	for _, attr := range []core.Attribute{core.AttrFraktur, core.AttrNormalIntensity, core.AttrBoldItalicOff, core.AttrFramed} {
		err := d.Batch(core.SetAttribute(attr))
		var notSupported *core.AttributeNotSupportedError
		if !errors.As(err, &notSupported) {
			t.Fatalf("SetAttribute(%v): expected AttributeNotSupportedError, got %v", attr, err)
		}
		if notSupported.Name != attr.String() {
			t.Errorf("expected name '%s', got '%s'", attr.String(), notSupported.Name)
		}
	}
}

func TestFlushBatch(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)

	d.Batch(core.MoveCursorTo(0, 0))
	if _, err := d.Write([]byte("hello")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if w.refreshes != 0 {
		t.Fatal("expected nothing committed before flush")
	}
	if err := d.FlushBatch(); err != nil {
		t.Fatalf("FlushBatch failed: %v", err)
	}
	if w.refreshes != 1 || w.text.String() != "hello" {
		t.Errorf("expected one refresh with text, got %d and %q", w.refreshes, w.text.String())
	}

	w.flushErr = errors.New("broken pipe")
	err := d.FlushBatch()
	if !errors.Is(err, core.ErrFlushFailed) {
		t.Errorf("expected ErrFlushFailed, got %v", err)
	}
}

func TestClose(t *testing.T) {
	w := newFakeWindow()
	d := newTestDriver(t, w)
	w.calls = nil

	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := strings.Join(w.calls, " "); got != "endwin delscreen" {
		t.Errorf("expected endwin then delscreen, got '%s'", got)
	}
}

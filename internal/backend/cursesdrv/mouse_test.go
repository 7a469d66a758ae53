package cursesdrv

import (
	"testing"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
)

func mouse(m core.MouseEvent) core.Event { return core.MouseEventOf(m) }

func TestMouse_DoubleClickSpills(t *testing.T) {
	w := newFakeWindow()
	w.click(4, 2, curses.Button1DoubleClicked)
	d := newTestDriver(t, w)

	expected := []core.Event{
		mouse(core.MouseDownAt(core.MouseLeft, 4, 2, core.ModNone)),
		mouse(core.MouseUpAt(core.MouseLeft, 4, 2, core.ModNone)),
		mouse(core.MouseDownAt(core.MouseLeft, 4, 2, core.ModNone)),
		mouse(core.MouseUpAt(core.MouseLeft, 4, 2, core.ModNone)),
	}
	for i, want := range expected {
		if got := readEvent(t, d); got != want {
			t.Errorf("event %d: expected %v, got %v", i, want, got)
		}
	}

	got, err := d.Get(core.PollEvent(0))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Event != nil {
		t.Errorf("expected spillover drained, got %v", *got.Event)
	}
}

func TestMouse_TripleClick(t *testing.T) {
	w := newFakeWindow()
	w.click(0, 0, curses.Button3TripleClicked)
	d := newTestDriver(t, w)

	for i := 0; i < 6; i++ {
		ev := readEvent(t, d)
		if ev.Kind != core.EventMouse || ev.Mouse.Button != core.MouseRight {
			t.Fatalf("event %d: expected right button mouse event, got %v", i, ev)
		}
		wantKind := core.MouseDown
		if i%2 == 1 {
			wantKind = core.MouseUp
		}
		if ev.Mouse.Kind != wantKind {
			t.Errorf("event %d: expected %v, got %v", i, wantKind, ev.Mouse.Kind)
		}
	}
}

func TestMouse_DragUsesLastButton(t *testing.T) {
	w := newFakeWindow()
	w.click(1, 1, curses.ReportMousePosition)
	w.click(1, 1, curses.Button2Pressed)
	w.click(5, 6, curses.ReportMousePosition|curses.ButtonCtrl)
	d := newTestDriver(t, w)

	if got := readEvent(t, d); got != core.UnknownEvent() {
		t.Errorf("expected Unknown for drag without a button, got %v", got)
	}
	if got := readEvent(t, d); got != mouse(core.MouseDownAt(core.MouseMiddle, 1, 1, core.ModNone)) {
		t.Errorf("expected middle button down, got %v", got)
	}
	want := mouse(core.MouseDragAt(core.MouseMiddle, 5, 6, core.ModControl))
	if got := readEvent(t, d); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestMouse_ScrollAndModifiers(t *testing.T) {
	w := newFakeWindow()
	w.click(3, 4, curses.Button4Pressed|curses.ButtonShift)
	w.click(3, 4, curses.Button5Pressed|curses.ButtonAlt|curses.ButtonCtrl)
	w.click(7, 8, curses.Button1Released)
	d := newTestDriver(t, w)

	tests := []core.Event{
		mouse(core.ScrollUpAt(3, 4, core.ModShift)),
		mouse(core.ScrollDownAt(3, 4, core.ModControl|core.ModAlt)),
		mouse(core.MouseUpAt(core.MouseLeft, 7, 8, core.ModNone)),
	}
	for i, want := range tests {
		if got := readEvent(t, d); got != want {
			t.Errorf("event %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestMouse_LowestBitFirst(t *testing.T) {
	w := newFakeWindow()
	w.click(2, 2, curses.Button1Released|curses.Button3Pressed)
	d := newTestDriver(t, w)

	first := readEvent(t, d)
	if first != mouse(core.MouseUpAt(core.MouseLeft, 2, 2, core.ModNone)) {
		t.Errorf("expected left up first, got %v", first)
	}
	second := readEvent(t, d)
	if second != mouse(core.MouseDownAt(core.MouseRight, 2, 2, core.ModNone)) {
		t.Errorf("expected right down second, got %v", second)
	}

	// The last button comes from the returned event, not the spilled one.
	if b, _ := d.cache.button(); b != core.MouseLeft {
		t.Errorf("expected last button Left, got %v", b)
	}
}

func TestMouse_Errors(t *testing.T) {
	w := newFakeWindow()
	w.key(curses.KeyMouse)
	w.click(0, 0, 0)
	d := newTestDriver(t, w)

	if got := readEvent(t, d); got != core.UnknownEvent() {
		t.Errorf("expected Unknown for an empty state, got %v", got)
	}
	if got := readEvent(t, d); got != core.UnknownEvent() {
		t.Errorf("expected Unknown without a queued report, got %v", got)
	}
}

func TestMouse_SpilloverIsBounded(t *testing.T) {
	w := newFakeWindow()
	w.click(0, 0, curses.Button1TripleClicked|curses.Button2TripleClicked|curses.Button3TripleClicked)
	d := newTestDriver(t, w)

	for i := 0; i < 1+maxPending; i++ {
		if ev := readEvent(t, d); ev.Kind != core.EventMouse {
			t.Fatalf("event %d: expected mouse event, got %v", i, ev)
		}
	}

	got, err := d.Get(core.PollEvent(0))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Event != nil {
		t.Errorf("expected events past the cap to be dropped, got %v", *got.Event)
	}
}

func TestInputCache_Push(t *testing.T) {
	var c inputCache
	for i := 0; i < maxPending; i++ {
		if !c.push(core.UnknownEvent()) {
			t.Fatalf("push %d: expected room in the cache", i)
		}
	}
	if c.push(core.UnknownEvent()) {
		t.Error("expected push past the cap to fail")
	}
	if _, ok := c.pop(); !ok {
		t.Fatal("expected a pending event")
	}
	if !c.push(core.UnknownEvent()) {
		t.Error("expected room after a pop")
	}
}

package cursesdrv

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dshills/termctl/internal/curses"
)

type pairInit struct {
	n, fg, bg int16
}

// fakeWindow records driver calls and replays scripted input.
type fakeWindow struct {
	calls []string
	out   bytes.Buffer
	text  bytes.Buffer

	rows, cols int
	y, x       int
	attr       curses.Attr
	cursor     int
	blink      bool

	colors    int
	colorErr  error
	pairs     []pairInit
	mask      curses.MouseMask
	timeout   int
	names     map[int]string
	inputs    []curses.Input
	mouse     []curses.MouseEvent
	refreshes int
	flushErr  error
	resizeTo  [2]int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{rows: 24, cols: 80, colors: 256, cursor: 1, timeout: -1, names: map[int]string{}}
}

func (w *fakeWindow) record(call string) { w.calls = append(w.calls, call) }

func (w *fakeWindow) Move(y, x int) error {
	if y >= w.rows || x >= w.cols {
		return curses.ErrOutOfRange
	}
	w.y, w.x = y, x
	return nil
}

func (w *fakeWindow) AddStr(s string) error {
	w.text.WriteString(s)
	w.x += len(s)
	return nil
}

func (w *fakeWindow) GetMaxYX() (int, int) { return w.rows, w.cols }
func (w *fakeWindow) GetCurYX() (int, int) { return w.y, w.x }

func (w *fakeWindow) Clear()     { w.record("clear") }
func (w *fakeWindow) ClrToBot()  { w.record("clrtobot") }
func (w *fakeWindow) ClrToTop()  { w.record("clrtotop") }
func (w *fakeWindow) ClrToEol()  { w.record("clrtoeol") }
func (w *fakeWindow) ClrLine()   { w.record("clrline") }
func (w *fakeWindow) Scrl(n int) { w.record(fmt.Sprintf("scrl %d", n)) }

func (w *fakeWindow) ResizeTerm(rows, cols int) error {
	w.record("resizeterm")
	if rows == 0 && cols == 0 {
		rows, cols = w.resizeTo[0], w.resizeTo[1]
	}
	w.rows, w.cols = rows, cols
	return nil
}

func (w *fakeWindow) Attron(a curses.Attr) {
	if a&curses.AColor != 0 {
		w.attr &^= curses.AColor
	}
	w.attr |= a
}

func (w *fakeWindow) Attroff(a curses.Attr) {
	if a&curses.AColor != 0 {
		w.attr &^= curses.AColor
	}
	w.attr &^= a
}

func (w *fakeWindow) ColorSet(pair int16) error {
	w.attr = w.attr&^curses.AColor | curses.ColorPair(int(pair))
	return nil
}

func (w *fakeWindow) CursSet(v int) int {
	old := w.cursor
	w.cursor = v
	return old
}

func (w *fakeWindow) SetBlink(on bool) { w.blink = on }

func (w *fakeWindow) StartColor() error {
	if w.colorErr != nil {
		return w.colorErr
	}
	return nil
}

func (w *fakeWindow) UseDefaultColors() error { return w.colorErr }

func (w *fakeWindow) InitPair(n, fg, bg int16) error {
	w.pairs = append(w.pairs, pairInit{n, fg, bg})
	return nil
}

func (w *fakeWindow) Colors() int { return w.colors }

func (w *fakeWindow) Raw() error            { w.record("raw"); return nil }
func (w *fakeWindow) Noraw() error          { w.record("noraw"); return nil }
func (w *fakeWindow) Echo() error           { w.record("echo"); return nil }
func (w *fakeWindow) Noecho() error         { w.record("noecho"); return nil }
func (w *fakeWindow) Nl() error             { w.record("nl"); return nil }
func (w *fakeWindow) Keypad(bool) error     { w.record("keypad"); return nil }
func (w *fakeWindow) EnterAltScreen() error { w.record("altscreen"); return nil }
func (w *fakeWindow) LeaveAltScreen() error { w.record("mainscreen"); return nil }

func (w *fakeWindow) Mousemask(m curses.MouseMask) curses.MouseMask {
	old := w.mask
	w.mask = m
	return old
}

func (w *fakeWindow) Getmouse() (curses.MouseEvent, error) {
	if len(w.mouse) == 0 {
		return curses.MouseEvent{}, curses.ErrNoMouseEvent
	}
	ev := w.mouse[0]
	w.mouse = w.mouse[1:]
	return ev, nil
}

func (w *fakeWindow) Keyname(code int) string { return w.names[code] }
func (w *fakeWindow) Timeout(ms int)          { w.timeout = ms }

func (w *fakeWindow) Getch() (curses.Input, error) {
	if len(w.inputs) == 0 {
		return curses.Input{}, curses.ErrNoInput
	}
	in := w.inputs[0]
	w.inputs = w.inputs[1:]
	return in, nil
}

func (w *fakeWindow) Refresh() error {
	if w.flushErr != nil {
		return w.flushErr
	}
	w.refreshes++
	return nil
}

func (w *fakeWindow) Writer() io.Writer { return &w.out }
func (w *fakeWindow) Endwin() error     { w.record("endwin"); return nil }
func (w *fakeWindow) Delscreen() error  { w.record("delscreen"); return nil }

func (w *fakeWindow) key(code int) {
	w.inputs = append(w.inputs, curses.Input{Code: code, IsKey: true})
}

func (w *fakeWindow) char(r rune) {
	w.inputs = append(w.inputs, curses.Input{Rune: r})
}

func (w *fakeWindow) click(x, y int, state curses.MouseMask) {
	w.mouse = append(w.mouse, curses.MouseEvent{X: x, Y: y, BState: state})
	w.key(curses.KeyMouse)
}

// nullTTY is an 80x24 device that discards output and never has input.
type nullTTY struct{}

func (nullTTY) Write(p []byte) (int, error)           { return len(p), nil }
func (nullTTY) ReadTimeout([]byte, int) (int, error)  { return 0, nil }
func (nullTTY) Size() (int, int, error)               { return 80, 24, nil }
func (nullTTY) Resized() bool                         { return false }
func (nullTTY) SetRaw(bool) error                     { return nil }
func (nullTTY) SetEcho(bool) error                    { return nil }
func (nullTTY) SetNL(bool) error                      { return nil }
func (nullTTY) Restore() error                        { return nil }
func (nullTTY) Close() error                          { return nil }

// scriptTTY is a nullTTY whose reads return the queued chunks in order.
type scriptTTY struct {
	nullTTY
	chunks []string
}

func (s *scriptTTY) ReadTimeout(p []byte, _ int) (int, error) {
	if len(s.chunks) == 0 {
		return 0, nil
	}
	n := copy(p, s.chunks[0])
	s.chunks[0] = s.chunks[0][n:]
	if s.chunks[0] == "" {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

// Package tcellterm is a passthrough driver that delegates terminal
// control to tcell. tcell owns raw mode and the alternate screen for the
// lifetime of the driver, so actions that would undo them are rejected.
package tcellterm

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/logging"
)

// Name identifies the driver.
const Name = "tcell"

// EventQueueSize bounds the events read ahead of Get.
const EventQueueSize = 256

// Options configures the driver.
type Options struct {
	Logger *logging.Logger
}

// Driver implements the backend contract on a tcell.Screen.
type Driver struct {
	screen tcell.Screen
	logger *logging.Logger

	style         tcell.Style
	col, row      int
	cursorVisible bool
	blinking      bool

	mouse mouseTracker

	events  chan core.Event
	resizes chan core.Event
	quit    chan struct{}
	done    chan struct{}

	closeOnce sync.Once
}

// Open creates a driver on the controlling terminal.
func Open(opts Options) (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, core.NewIOError("open terminal", err)
	}
	return New(screen, opts)
}

// New initializes screen and starts reading its events.
func New(screen tcell.Screen, opts Options) (*Driver, error) {
	if err := screen.Init(); err != nil {
		return nil, core.NewIOError("initialize tcell", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	d := &Driver{
		screen:        screen,
		logger:        logger.WithComponent(Name),
		style:         tcell.StyleDefault,
		cursorVisible: true,
		events:        make(chan core.Event, EventQueueSize),
		resizes:       make(chan core.Event, 1),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	go d.readLoop()
	return d, nil
}

func (d *Driver) Name() string { return Name }

// readLoop converts tcell events until the screen is finalized.
func (d *Driver) readLoop() {
	defer close(d.done)

	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}

		if resize, ok := ev.(*tcell.EventResize); ok {
			w, h := resize.Size()
			d.pushResize(core.ResizeEvent(uint16(w), uint16(h)))
			continue
		}

		out, ok := d.convert(ev)
		if !ok {
			continue
		}
		select {
		case d.events <- out:
		case <-d.quit:
			return
		default:
			d.logger.Debug("event queue full, dropping %v", out)
		}
	}
}

// pushResize keeps only the newest geometry.
func (d *Driver) pushResize(ev core.Event) {
	for {
		select {
		case d.resizes <- ev:
			return
		default:
		}
		select {
		case <-d.resizes:
		default:
		}
	}
}

func (d *Driver) Batch(a core.Action) error {
	switch a.Kind {
	case core.ActMoveCursorTo:
		d.col, d.row = int(a.Column), int(a.Row)
	case core.ActHideCursor:
		d.cursorVisible = false
	case core.ActShowCursor:
		d.cursorVisible = true
	case core.ActEnableBlinking:
		d.blinking = true
	case core.ActDisableBlinking:
		d.blinking = false
	case core.ActClearTerminal:
		d.clear(a.Clear)
	case core.ActEnableRawMode, core.ActEnterAlternateScreen:
		// Already in effect since Init.
	case core.ActEnableMouseCapture:
		d.screen.EnableMouse()
	case core.ActDisableMouseCapture:
		d.screen.DisableMouse()
	case core.ActSetForegroundColor:
		d.style = d.style.Foreground(convertColor(a.Color))
	case core.ActSetBackgroundColor:
		d.style = d.style.Background(convertColor(a.Color))
	case core.ActSetAttribute:
		return d.setAttribute(a.Attribute)
	case core.ActResetColor:
		d.style = d.style.Foreground(tcell.ColorDefault).Background(tcell.ColorDefault)
	default:
		// ScrollUp, ScrollDown, SetTerminalSize, DisableRawMode and
		// LeaveAlternateScreen have no tcell equivalent.
		return core.NewActionNotSupported(Name, a)
	}
	return nil
}

func (d *Driver) clear(t core.ClearType) {
	w, h := d.screen.Size()
	switch t {
	case core.ClearAll:
		d.screen.Clear()
	case core.ClearFromCursorDown:
		d.blank(d.col, d.row, w, h)
	case core.ClearFromCursorUp:
		d.blank(0, 0, d.col+1, d.row+1)
	case core.ClearCurrentLine:
		d.blankLine(d.row, 0, w)
	case core.ClearUntilNewLine:
		d.blankLine(d.row, d.col, w)
	}
}

// blank clears from (col,row) to (endCol,endRow) in reading order.
func (d *Driver) blank(col, row, endCol, endRow int) {
	w, _ := d.screen.Size()
	for y := row; y < endRow; y++ {
		from, to := 0, w
		if y == row {
			from = col
		}
		if y == endRow-1 && endCol < w {
			to = endCol
		}
		d.blankLine(y, from, to)
	}
}

func (d *Driver) blankLine(y, from, to int) {
	for x := from; x < to; x++ {
		d.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func (d *Driver) setAttribute(attr core.Attribute) error {
	s := d.style
	switch attr {
	case core.AttrReset:
		fg, bg, _ := s.Decompose()
		s = tcell.StyleDefault.Foreground(fg).Background(bg)
	case core.AttrBold:
		s = s.Bold(true)
	case core.AttrBoldOff:
		s = s.Bold(false)
	case core.AttrItalic:
		s = s.Italic(true)
	case core.AttrItalicOff:
		s = s.Italic(false)
	case core.AttrUnderlined:
		s = s.Underline(true)
	case core.AttrUnderlinedOff:
		s = s.Underline(false)
	case core.AttrSlowBlink, core.AttrRapidBlink:
		s = s.Blink(true)
	case core.AttrBlinkOff:
		s = s.Blink(false)
	case core.AttrCrossed:
		s = s.StrikeThrough(true)
	case core.AttrCrossedOff:
		s = s.StrikeThrough(false)
	case core.AttrReversed:
		s = s.Reverse(true)
	case core.AttrReversedOff:
		s = s.Reverse(false)
	case core.AttrNormalIntensity:
		s = s.Bold(false).Dim(false)
	case core.AttrBoldItalicOff:
		s = s.Bold(false).Italic(false)
	default:
		return core.NewAttributeNotSupported(Name, attr)
	}
	d.style = s
	return nil
}

// FlushBatch positions the cursor and shows the staged cells.
func (d *Driver) FlushBatch() error {
	if d.cursorVisible {
		style := tcell.CursorStyleSteadyBlock
		if d.blinking {
			style = tcell.CursorStyleBlinkingBlock
		}
		d.screen.SetCursorStyle(style)
		d.screen.ShowCursor(d.col, d.row)
	} else {
		d.screen.HideCursor()
	}
	d.screen.Show()
	return nil
}

func (d *Driver) Get(v core.Value) (core.Retrieved, error) {
	switch v.Kind {
	case core.ValTerminalSize:
		w, h := d.screen.Size()
		return core.SizeResult(uint16(w), uint16(h)), nil
	case core.ValCursorPosition:
		return core.PositionResult(uint16(d.col), uint16(d.row)), nil
	case core.ValEvent:
		return d.nextEvent(v)
	default:
		return core.Retrieved{}, fmt.Errorf("unknown query %s", v.Kind)
	}
}

// Write prints p at the cursor with the current style, wrapping at the
// right edge. The cursor ends after the last cell written.
func (d *Driver) Write(p []byte) (int, error) {
	w, h := d.screen.Size()
	state := -1
	rest := string(p)
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)

		switch cluster {
		case "\n", "\r\n":
			d.col, d.row = 0, min(d.row+1, h-1)
			continue
		case "\r":
			d.col = 0
			continue
		}
		if width == 0 {
			continue
		}
		if d.col+width > w {
			d.col, d.row = 0, min(d.row+1, h-1)
		}

		runes := []rune(cluster)
		d.screen.SetContent(d.col, d.row, runes[0], runes[1:], d.style)
		d.col += width
	}
	return len(p), nil
}

// Close finalizes the screen and waits for the reader to stop.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		close(d.quit)
		d.screen.Fini()
		<-d.done
	})
	return nil
}

package cursesdrv

import (
	"math/bits"
	"sync"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
)

// buttonBits covers the press, release and click bits of buttons 1-5.
const buttonBits = 1<<25 - 1

// maxPending is the most events one report can spill: a triple click is
// six events, the first of which is returned directly.
const maxPending = 5

// inputCache holds events decoded ahead of the caller and the last mouse
// button seen, which a bare motion report needs to become a drag.
type inputCache struct {
	mu         sync.Mutex
	pending    []core.Event
	lastButton core.MouseButton
	hasButton  bool
}

// push queues ev. It reports false, dropping ev, when the queue is full.
func (c *inputCache) push(ev core.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) >= maxPending {
		return false
	}
	c.pending = append(c.pending, ev)
	return true
}

// pop returns the oldest spilled event.
func (c *inputCache) pop() (core.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return core.Event{}, false
	}
	ev := c.pending[0]
	c.pending = c.pending[1:]
	if len(c.pending) == 0 {
		c.pending = nil
	}
	return ev, true
}

func (c *inputCache) setButton(b core.MouseButton) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastButton, c.hasButton = b, true
}

func (c *inputCache) button() (core.MouseButton, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastButton, c.hasButton
}

// decodeMouse reads the pending mouse report. One report can expand into
// several events (a double click is Down, Up, Down, Up); the first is
// returned and the rest are queued for later polls.
func (d *Driver) decodeMouse() core.Event {
	mev, err := d.win.Getmouse()
	if err != nil {
		return core.UnknownEvent()
	}

	var mods core.Modifiers
	if mev.BState&curses.ButtonShift != 0 {
		mods |= core.ModShift
	}
	if mev.BState&curses.ButtonCtrl != 0 {
		mods |= core.ModControl
	}
	if mev.BState&curses.ButtonAlt != 0 {
		mods |= core.ModAlt
	}
	state := mev.BState &^ (curses.ButtonShift | curses.ButtonAlt | curses.ButtonCtrl)
	col, row := uint16(mev.X), uint16(mev.Y)

	if state == curses.ReportMousePosition {
		b, ok := d.cache.button()
		if !ok {
			return core.UnknownEvent()
		}
		return core.MouseEventOf(core.MouseDragAt(b, col, row, mods))
	}

	var (
		first core.MouseEvent
		have  bool
	)
	emit := func(m core.MouseEvent) {
		if !have {
			first, have = m, true
			return
		}
		if !d.cache.push(core.MouseEventOf(m)) {
			d.logger.Debug("spillover full, dropped %s", m)
		}
	}

	bare := uint32(state) & buttonBits
	for bare != 0 {
		single := curses.MouseMask(1) << bits.TrailingZeros32(bare)
		bare &^= uint32(single)
		expandMouse(single, col, row, mods, emit)
	}

	if !have {
		return core.UnknownEvent()
	}
	if b, ok := first.ButtonOf(); ok {
		d.cache.setButton(b)
	}
	return core.MouseEventOf(first)
}

// expandMouse turns a single button state bit into mouse events.
func expandMouse(bit curses.MouseMask, col, row uint16, mods core.Modifiers, emit func(core.MouseEvent)) {
	button, kind := classifyBit(bit)
	if button == 0 {
		return
	}
	b := mouseButton(button)

	clicks := 0
	switch kind {
	case bitPressed:
		switch button {
		case 4:
			emit(core.ScrollUpAt(col, row, mods))
		case 5:
			emit(core.ScrollDownAt(col, row, mods))
		default:
			emit(core.MouseDownAt(b, col, row, mods))
		}
	case bitReleased:
		emit(core.MouseUpAt(b, col, row, mods))
	case bitClicked:
		clicks = 1
	case bitDouble:
		clicks = 2
	case bitTriple:
		clicks = 3
	}

	for i := 0; i < clicks; i++ {
		emit(core.MouseDownAt(b, col, row, mods))
		emit(core.MouseUpAt(b, col, row, mods))
	}
}

type bitKind int

const (
	bitReleased bitKind = iota
	bitPressed
	bitClicked
	bitDouble
	bitTriple
)

// classifyBit returns the 1-based button and event kind of a single state
// bit, or button 0 for bits outside the five button groups.
func classifyBit(bit curses.MouseMask) (int, bitKind) {
	n := bits.TrailingZeros32(uint32(bit))
	if n >= 25 {
		return 0, 0
	}
	return n/5 + 1, bitKind(n % 5)
}

func mouseButton(n int) core.MouseButton {
	switch n {
	case 1:
		return core.MouseLeft
	case 2:
		return core.MouseMiddle
	case 3:
		return core.MouseRight
	default:
		return core.MouseUnknown
	}
}

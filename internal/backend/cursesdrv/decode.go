package cursesdrv

import (
	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
)

var plainKeys = map[int]core.KeyKind{
	curses.KeyDown:      core.KeyDown,
	curses.KeyUp:        core.KeyUp,
	curses.KeyLeft:      core.KeyLeft,
	curses.KeyRight:     core.KeyRight,
	curses.KeyHome:      core.KeyHome,
	curses.KeyBackspace: core.KeyBackspace,
	curses.KeyDL:        core.KeyDelete,
	curses.KeyDC:        core.KeyDelete,
	curses.KeyIC:        core.KeyInsert,
	curses.KeyNPage:     core.KeyPageDown,
	curses.KeyPPage:     core.KeyPageUp,
	curses.KeyEnter:     core.KeyEnter,
	curses.KeyEnd:       core.KeyEnd,
}

var shiftKeys = map[int]core.KeyKind{
	curses.KeySF:        core.KeyDown,
	curses.KeySR:        core.KeyUp,
	curses.KeySTab:      core.KeyTab,
	curses.KeySDC:       core.KeyDelete,
	curses.KeySEnd:      core.KeyEnd,
	curses.KeySHome:     core.KeyHome,
	curses.KeySIC:       core.KeyInsert,
	curses.KeySLeft:     core.KeyLeft,
	curses.KeySNext:     core.KeyPageDown,
	curses.KeySPrevious: core.KeyPageUp,
	curses.KeySPrint:    core.KeyEnd,
	curses.KeySRight:    core.KeyRight,
	curses.KeyBTab:      core.KeyBackTab,
}

// decodeChar maps a character read from the terminal to a key event.
func decodeChar(r rune) core.Event {
	switch {
	case r == '\r' || r == '\n':
		return core.KeyPress(core.Code(core.KeyEnter), core.ModNone)
	case r == '\t':
		return core.KeyPress(core.Code(core.KeyTab), core.ModNone)
	case r == 0x7f || r == 0x08:
		return core.KeyPress(core.Code(core.KeyBackspace), core.ModNone)
	case r == 0x1b:
		return core.KeyPress(core.Code(core.KeyEsc), core.ModNone)
	case r >= 0 && r <= 0x1a:
		return core.KeyPress(core.Char(r-1+'a'), core.ModControl)
	case r >= 0x1c && r <= 0x1f:
		return core.KeyPress(core.Char(r-0x1c+'4'), core.ModControl)
	default:
		return core.KeyPress(core.Char(r), core.ModNone)
	}
}

// decodeKey maps a curses key code to an event. Codes are tried against
// the plain, shifted, control and control+alt tables, then the special
// codes, then the capability table; anything left is Unknown.
func (d *Driver) decodeKey(code int) core.Event {
	if kind, ok := plainKeys[code]; ok {
		return core.KeyPress(core.Code(kind), core.ModNone)
	}
	if code >= curses.KeyF0 && code <= curses.KeyF(15) {
		return core.KeyPress(core.F(uint8(code-curses.KeyF0)), core.ModNone)
	}
	if kind, ok := shiftKeys[code]; ok {
		return core.KeyPress(core.Code(kind), core.ModShift)
	}

	switch code {
	case curses.KeyCTab:
		return core.KeyPress(core.Code(core.KeyTab), core.ModControl)
	case curses.KeyCATab:
		return core.KeyPress(core.Code(core.KeyTab), core.ModControl|core.ModAlt)
	case curses.KeyResize:
		return d.decodeResize()
	case curses.KeyMouse:
		return d.decodeMouse()
	}

	if ev, ok := d.caps[code]; ok {
		return ev
	}
	return core.UnknownEvent()
}

func (d *Driver) decodeResize() core.Event {
	if err := d.win.ResizeTerm(0, 0); err != nil {
		d.logger.Warn("resize: %v", err)
	}
	rows, cols := d.win.GetMaxYX()
	return core.ResizeEvent(uint16(cols), uint16(rows))
}

func (d *Driver) decode(in curses.Input) core.Event {
	if in.IsKey {
		return d.decodeKey(in.Code)
	}
	return decodeChar(in.Rune)
}

package cursesdrv

import (
	"io"

	"github.com/dshills/termctl/internal/curses"
)

// Window is the part of a curses screen the driver uses. *curses.Screen
// satisfies it; tests substitute a fake.
type Window interface {
	Move(y, x int) error
	AddStr(s string) error
	GetMaxYX() (rows, cols int)
	GetCurYX() (y, x int)

	Clear()
	ClrToBot()
	ClrToTop()
	ClrToEol()
	ClrLine()
	Scrl(n int)
	ResizeTerm(rows, cols int) error

	Attron(a curses.Attr)
	Attroff(a curses.Attr)
	ColorSet(pair int16) error
	CursSet(v int) int
	SetBlink(on bool)

	StartColor() error
	UseDefaultColors() error
	InitPair(n, fg, bg int16) error
	Colors() int

	Raw() error
	Noraw() error
	Echo() error
	Noecho() error
	Nl() error
	Keypad(on bool) error
	EnterAltScreen() error
	LeaveAltScreen() error

	Mousemask(mask curses.MouseMask) curses.MouseMask
	Getmouse() (curses.MouseEvent, error)
	Keyname(code int) string
	Timeout(ms int)
	Getch() (curses.Input, error)

	Refresh() error
	Writer() io.Writer
	Endwin() error
	Delscreen() error
}

var _ Window = (*curses.Screen)(nil)

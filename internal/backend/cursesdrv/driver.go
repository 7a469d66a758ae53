// Package cursesdrv is the terminal driver built on the curses screen
// library. It quantizes requested colors onto the terminal palette,
// caches color pairs, and decodes curses input into normalized events.
package cursesdrv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/curses"
	"github.com/dshills/termctl/internal/logging"
)

// Name identifies the driver.
const Name = "curses"

// DefaultEscDelay is the lone-ESC wait the driver configures, much shorter
// than the curses default so Esc feels immediate.
const DefaultEscDelay = 25 * time.Millisecond

// Special Options.TTYPath values. StdioPath uses stdin/stdout;
// StderrPath reads stdin and draws on stderr.
const (
	StdioPath  = "-"
	StderrPath = "/dev/stderr"
)

// Terminal openers, replaced in tests.
var (
	openStdTTY    = curses.StdTTY
	openStderrTTY = curses.StderrTTY
	openDeviceTTY = curses.OpenTTY
)

// Private-mode sequences for xterm button-event mouse tracking.
const (
	mouseCaptureOn  = "\x1b[?1002h"
	mouseCaptureOff = "\x1b[?1002l"
)

// textAttrs is every attribute bit except the color pair.
const textAttrs = curses.AStandout | curses.AUnderline | curses.AReverse |
	curses.ABlink | curses.ADim | curses.ABold | curses.AInvis |
	curses.AStrikeout | curses.AItalic

// Options configures Open.
type Options struct {
	// TTYPath is the terminal device. Empty means /dev/tty; StdioPath
	// and StderrPath select the standard streams.
	TTYPath string
	// Term overrides $TERM. When both are empty the driver uses
	// stdin/stdout and assumes an xterm-compatible terminal.
	Term string
	// EscDelay overrides DefaultEscDelay.
	EscDelay time.Duration
	// Colors forces the palette size; zero detects it.
	Colors int
	// PairPolicy selects how color pairs are recycled.
	PairPolicy PairPolicy
	// Logger receives driver diagnostics.
	Logger *logging.Logger
}

// Driver implements the backend contract on a curses Window.
// It is not safe for concurrent use.
type Driver struct {
	win    Window
	out    io.Writer
	logger *logging.Logger

	colors int
	pairs  *pairCache
	caps   capTable
	cache  inputCache

	fg, bg core.Color
}

// Open initializes curses on the controlling terminal.
func Open(opts Options) (*Driver, error) {
	term := opts.Term
	if term == "" {
		term = os.Getenv("TERM")
	}

	tty, err := openTTY(opts.TTYPath, term == "")
	if term == "" {
		term = "xterm"
	}
	if err != nil {
		return nil, core.NewIOError("open terminal", err)
	}

	escDelay := opts.EscDelay
	if escDelay <= 0 {
		escDelay = DefaultEscDelay
	}
	scr, err := curses.Newterm(term, tty, curses.Options{
		EscDelay:  escDelay,
		Colors:    opts.Colors,
		ColorTerm: os.Getenv("COLORTERM"),
	})
	if err != nil {
		_ = tty.Close()
		return nil, core.NewIOError("initialize curses", err)
	}

	d, err := New(scr, opts)
	if err != nil {
		_ = scr.Endwin()
		_ = scr.Delscreen()
		return nil, err
	}
	return d, nil
}

// openTTY picks the terminal streams for path. Without a terminal type
// the process's standard streams are used instead of a device.
func openTTY(path string, noTerm bool) (curses.TTY, error) {
	switch {
	case path == StderrPath:
		return openStderrTTY()
	case path == StdioPath || noTerm:
		return openStdTTY()
	case path == "":
		return openDeviceTTY("/dev/tty")
	default:
		return openDeviceTTY(path)
	}
}

// New wraps an initialized window: keypad translation, colors with
// terminal defaults, full mouse reporting and the capability table.
func New(win Window, opts Options) (*Driver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	d := &Driver{
		win:    win,
		out:    win.Writer(),
		logger: logger.WithComponent(Name),
		pairs:  newPairCache(opts.PairPolicy),
		fg:     core.ColorReset,
		bg:     core.ColorReset,
	}

	if err := win.Keypad(true); err != nil {
		return nil, core.NewIOError("enable keypad", err)
	}

	if err := win.StartColor(); err != nil {
		d.logger.Debug("colors unavailable: %v", err)
	} else {
		d.colors = win.Colors()
		if err := win.UseDefaultColors(); err != nil {
			d.logger.Debug("default colors unavailable: %v", err)
		} else if err := win.InitPair(0, -1, -1); err != nil {
			d.logger.Debug("init default pair: %v", err)
		}
	}

	win.Mousemask(curses.AllMouseEvents | curses.ReportMousePosition)
	d.caps = buildCapTable(win)

	d.logger.Debug("initialized: colors=%d capabilities=%d policy=%s", d.colors, len(d.caps), opts.PairPolicy)
	return d, nil
}

func (d *Driver) Name() string { return Name }

// Batch stages a render action or applies a mode action.
func (d *Driver) Batch(a core.Action) error {
	switch a.Kind {
	case core.ActMoveCursorTo:
		if err := d.win.Move(int(a.Row), int(a.Column)); err != nil {
			return core.NewIOError("move cursor", err)
		}
	case core.ActHideCursor:
		d.win.CursSet(0)
	case core.ActShowCursor:
		d.win.CursSet(1)
	case core.ActEnableBlinking:
		d.win.SetBlink(true)
	case core.ActDisableBlinking:
		d.win.SetBlink(false)
	case core.ActClearTerminal:
		d.clear(a.Clear)
	case core.ActSetTerminalSize:
		if err := d.win.ResizeTerm(int(a.Row), int(a.Column)); err != nil {
			return core.NewIOError("resize terminal", err)
		}
	case core.ActScrollUp:
		d.win.Scrl(int(a.Count))
	case core.ActScrollDown:
		d.win.Scrl(-int(a.Count))
	case core.ActEnableRawMode:
		return d.modes("enable raw mode", d.win.Noecho, d.win.Raw, d.win.Nl)
	case core.ActDisableRawMode:
		return d.modes("disable raw mode", d.win.Echo, d.win.Noraw, d.win.Nl)
	case core.ActEnterAlternateScreen:
		return d.modes("enter alternate screen", d.win.EnterAltScreen)
	case core.ActLeaveAlternateScreen:
		return d.modes("leave alternate screen", d.win.LeaveAltScreen)
	case core.ActEnableMouseCapture:
		return d.writeRaw("enable mouse capture", mouseCaptureOn)
	case core.ActDisableMouseCapture:
		return d.writeRaw("disable mouse capture", mouseCaptureOff)
	case core.ActSetForegroundColor:
		d.fg = a.Color
		return d.colorSet(d.storePair(Quantize(a.Color, d.colors)))
	case core.ActSetBackgroundColor:
		d.bg = a.Color
		return d.colorSet(d.storePair(Quantize(a.Color, d.colors)))
	case core.ActSetAttribute:
		return d.setAttribute(a.Attribute)
	case core.ActResetColor:
		d.fg, d.bg = core.ColorReset, core.ColorReset
		return d.colorSet(0)
	default:
		return core.NewActionNotSupported(Name, a)
	}
	return nil
}

func (d *Driver) clear(t core.ClearType) {
	switch t {
	case core.ClearAll:
		d.win.Clear()
	case core.ClearFromCursorDown:
		d.win.ClrToBot()
	case core.ClearFromCursorUp:
		d.win.ClrToTop()
	case core.ClearCurrentLine:
		d.win.ClrLine()
	case core.ClearUntilNewLine:
		d.win.ClrToEol()
	}
}

func (d *Driver) modes(op string, steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return core.NewIOError(op, err)
		}
	}
	return nil
}

func (d *Driver) writeRaw(op, seq string) error {
	if _, err := io.WriteString(d.out, seq); err != nil {
		return core.NewIOError(op, err)
	}
	return nil
}

// storePair returns the pair for the color that just changed, pairing it
// with the current value of the other channel when the pair is new.
func (d *Driver) storePair(key int16) int16 {
	idx, fresh := d.pairs.get(key)
	if !fresh {
		return idx
	}
	fg := Quantize(d.fg, d.colors)
	bg := Quantize(d.bg, d.colors)
	if err := d.win.InitPair(idx, fg, bg); err != nil {
		d.logger.Debug("init pair %d (%d, %d): %v", idx, fg, bg, err)
	}
	return idx
}

func (d *Driver) colorSet(pair int16) error {
	if err := d.win.ColorSet(pair); err != nil {
		return core.NewIOError("set color pair", err)
	}
	return nil
}

func (d *Driver) setAttribute(attr core.Attribute) error {
	switch attr {
	case core.AttrReset:
		d.win.Attroff(textAttrs)
	case core.AttrBold:
		d.win.Attron(curses.ABold)
	case core.AttrBoldOff:
		d.win.Attroff(curses.ABold)
	case core.AttrItalic:
		d.win.Attron(curses.AItalic)
	case core.AttrItalicOff:
		d.win.Attroff(curses.AItalic)
	case core.AttrUnderlined:
		d.win.Attron(curses.AUnderline)
	case core.AttrUnderlinedOff:
		d.win.Attroff(curses.AUnderline)
	case core.AttrSlowBlink, core.AttrRapidBlink:
		d.win.Attron(curses.ABlink)
	case core.AttrBlinkOff:
		d.win.Attroff(curses.ABlink)
	case core.AttrCrossed:
		d.win.Attron(curses.AStrikeout)
	case core.AttrCrossedOff:
		d.win.Attroff(curses.AStrikeout)
	case core.AttrReversed:
		d.win.Attron(curses.AReverse)
	case core.AttrReversedOff:
		d.win.Attroff(curses.AReverse)
	case core.AttrConceal:
		d.win.Attron(curses.AInvis)
	case core.AttrConcealOff:
		d.win.Attroff(curses.AInvis)
	default:
		return core.NewAttributeNotSupported(Name, attr)
	}
	return nil
}

// FlushBatch commits staged output with a single refresh.
func (d *Driver) FlushBatch() error {
	if err := d.win.Refresh(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrFlushFailed, err)
	}
	return nil
}

// Get answers a query. Events spilled by an earlier mouse report are
// returned before the terminal is read again.
func (d *Driver) Get(v core.Value) (core.Retrieved, error) {
	switch v.Kind {
	case core.ValTerminalSize:
		rows, cols := d.win.GetMaxYX()
		return core.SizeResult(uint16(cols), uint16(rows)), nil
	case core.ValCursorPosition:
		y, x := d.win.GetCurYX()
		return core.PositionResult(uint16(x), uint16(y)), nil
	case core.ValEvent:
		ev, err := d.readEvent(v.TimeoutMillis())
		if err != nil {
			return core.Retrieved{}, err
		}
		return core.EventResult(ev), nil
	default:
		return core.Retrieved{}, fmt.Errorf("unknown query %s", v.Kind)
	}
}

func (d *Driver) readEvent(ms int) (*core.Event, error) {
	if ev, ok := d.cache.pop(); ok {
		return &ev, nil
	}

	d.win.Timeout(ms)
	in, err := d.win.Getch()
	if errors.Is(err, curses.ErrNoInput) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewIOError("read input", err)
	}

	ev := d.decode(in)
	return &ev, nil
}

// Write prints p at the cursor with the current style.
func (d *Driver) Write(p []byte) (int, error) {
	if err := d.win.AddStr(string(p)); err != nil {
		return 0, core.NewIOError("write", err)
	}
	return len(p), nil
}

// Close ends curses and releases the terminal device.
func (d *Driver) Close() error {
	var errs []error
	if err := d.win.Endwin(); err != nil {
		errs = append(errs, fmt.Errorf("endwin: %w", err))
	}
	if err := d.win.Delscreen(); err != nil {
		errs = append(errs, fmt.Errorf("delscreen: %w", err))
	}
	return errors.Join(errs...)
}

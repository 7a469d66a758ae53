// Package curses is a small pure-Go curses library. It keeps the ncurses
// numbering for key codes, color pairs and mouse button states, stages
// drawing in a back buffer and commits it with a diffing Refresh.
package curses

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
)

// Default settings.
const (
	DefaultEscDelay = 1000 * time.Millisecond
	ColorPairs      = 256
)

// Errors returned by screen operations.
var (
	ErrOutOfRange = errors.New("position outside the screen")
	ErrNoInput    = errors.New("no input before timeout")
	ErrBadPair    = errors.New("color pair out of range")
	ErrBadColor   = errors.New("color out of range")
	ErrNoColor    = errors.New("colors not started")
	ErrEnded      = errors.New("screen ended")
)

// Options tune a Screen at creation time.
type Options struct {
	// EscDelay is how long a lone ESC waits for the rest of an escape
	// sequence. Zero uses DefaultEscDelay.
	EscDelay time.Duration

	// Colors forces the palette size. Zero detects it from the terminal
	// type and COLORTERM.
	Colors int

	// ColorTerm is the COLORTERM value used for detection.
	ColorTerm string
}

// Input is one unit returned by Getch: either a character or a key code.
type Input struct {
	Rune  rune
	Code  int
	IsKey bool
}

func (in Input) String() string {
	if in.IsKey {
		return fmt.Sprintf("key %#o", in.Code)
	}
	return fmt.Sprintf("char %q", in.Rune)
}

type colorPair struct {
	fg, bg int16
}

// Screen is a terminal screen. It is safe for use by one reader calling
// Getch while another goroutine stages output.
type Screen struct {
	mu   sync.Mutex
	inMu sync.Mutex

	tty  TTY
	out  *bufio.Writer
	term string

	rows, cols  int
	back, front []cell
	cy, cx      int
	attr        Attr

	clearPending bool

	cursorVis        int
	cursorVisApplied int
	blink            bool
	blinkApplied     int

	colorOn       bool
	defaultColors bool
	ncolors       int
	pairs         [ColorPairs]colorPair
	lastStyle     Attr
	styleValid    bool

	keypad    bool
	altScreen bool
	ended     bool

	timeoutMs int
	escDelay  time.Duration
	inbuf     []byte

	mouseMask  MouseMask
	mouseQueue []MouseEvent
	mouseHeld  int

	ext *extendedKeys
}

// Newterm creates a Screen for the terminal type term on tty.
func Newterm(term string, tty TTY, opts Options) (*Screen, error) {
	if tty == nil {
		return nil, errors.New("curses: nil tty")
	}

	cols, rows, err := tty.Size()
	if err != nil {
		return nil, fmt.Errorf("curses: reading terminal size: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}

	s := &Screen{
		tty:              tty,
		out:              bufio.NewWriterSize(tty, 64*1024),
		term:             term,
		cursorVis:        1,
		cursorVisApplied: -1,
		blinkApplied:     -1,
		ncolors:          opts.Colors,
		timeoutMs:        -1,
		escDelay:         opts.EscDelay,
		ext:              newExtendedKeys(),
	}
	if s.escDelay <= 0 {
		s.escDelay = DefaultEscDelay
	}
	if s.ncolors <= 0 {
		s.ncolors = detectColors(term, opts.ColorTerm)
	}
	s.pairs[0] = colorPair{fg: 7, bg: 0}
	s.resize(rows, cols)
	s.clearPending = true

	return s, nil
}

func detectColors(term, colorterm string) int {
	switch {
	case colorterm == "truecolor" || colorterm == "24bit":
		return 256
	case strings.Contains(term, "256color"),
		strings.Contains(term, "truecolor"),
		strings.Contains(term, "direct"):
		return 256
	case term == "" || term == "dumb":
		return 0
	default:
		return 8
	}
}

// Term returns the terminal type the screen was created for.
func (s *Screen) Term() string {
	return s.term
}

// resize reallocates both buffers, keeping what still fits. Caller holds
// s.mu or owns s exclusively.
func (s *Screen) resize(rows, cols int) {
	back := make([]cell, rows*cols)
	for y := 0; y < rows && y < s.rows; y++ {
		for x := 0; x < cols && x < s.cols; x++ {
			back[y*cols+x] = s.back[y*s.cols+x]
		}
	}
	s.back = back
	s.front = make([]cell, rows*cols)
	s.rows, s.cols = rows, cols
	s.cy = clamp(s.cy, 0, rows-1)
	s.cx = clamp(s.cx, 0, cols-1)
	s.clearPending = true
}

// ResizeTerm changes the screen geometry. With rows and cols both zero it
// takes the geometry from the terminal.
func (s *Screen) ResizeTerm(rows, cols int) error {
	if rows == 0 && cols == 0 {
		c, r, err := s.tty.Size()
		if err != nil {
			return err
		}
		rows, cols = r, c
	}
	if rows <= 0 || cols <= 0 {
		return ErrOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resize(rows, cols)
	return nil
}

// GetMaxYX returns the screen height and width.
func (s *Screen) GetMaxYX() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.cols
}

// GetCurYX returns the cursor row and column.
func (s *Screen) GetCurYX() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cy, s.cx
}

// Move places the cursor.
func (s *Screen) Move(y, x int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		return ErrOutOfRange
	}
	s.cy, s.cx = y, x
	return nil
}

// AddStr writes str at the cursor using the current attributes, wrapping
// at the right edge. Writing stops at the bottom-right corner.
func (s *Screen) AddStr(str string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := -1
	for len(str) > 0 {
		var cluster string
		var width int
		cluster, str, width, state = uniseg.FirstGraphemeClusterInString(str, state)
		if !s.addCluster(cluster, width) {
			return ErrOutOfRange
		}
	}
	return nil
}

// addCluster stores one grapheme cluster and advances the cursor. It
// returns false once the screen is full.
func (s *Screen) addCluster(cluster string, width int) bool {
	switch cluster {
	case "\n", "\r\n":
		s.clearRange(s.cy*s.cols+s.cx, (s.cy+1)*s.cols)
		s.cx = 0
		if s.cy+1 < s.rows {
			s.cy++
		}
		return true
	case "\r":
		s.cx = 0
		return true
	case "\t":
		next := (s.cx/8 + 1) * 8
		for s.cx < next && s.cx < s.cols {
			before := s.cx
			s.put(" ", 1)
			if s.cx <= before {
				break
			}
		}
		return true
	}

	if r := cluster[0]; len(cluster) == 1 && (r < 0x20 || r == 0x7f) {
		for _, c := range s.Keyname(int(r)) {
			if !s.put(string(c), 1) {
				return false
			}
		}
		return true
	}

	if width < 1 {
		width = 1
	}
	return s.put(cluster, width)
}

func (s *Screen) put(text string, width int) bool {
	if s.cy >= s.rows {
		return false
	}
	if width > s.cols {
		width = s.cols
	}
	if s.cx+width > s.cols {
		if !s.wrap() {
			return false
		}
	}

	idx := s.cy*s.cols + s.cx
	s.back[idx] = cell{text: text, attr: s.attr}
	for i := 1; i < width; i++ {
		s.back[idx+i] = cell{attr: s.attr, cont: true}
	}
	s.cx += width
	if s.cx >= s.cols {
		if s.cy+1 >= s.rows {
			s.cx = s.cols - 1
			return true
		}
		s.cx = 0
		s.cy++
	}
	return true
}

func (s *Screen) wrap() bool {
	if s.cy+1 >= s.rows {
		s.cx = s.cols - 1
		return false
	}
	s.cx = 0
	s.cy++
	return true
}

func (s *Screen) clearRange(from, to int) {
	for i := from; i < to && i < len(s.back); i++ {
		s.back[i] = cell{}
	}
}

// Clear blanks the screen, homes the cursor and repaints everything on the
// next Refresh.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearRange(0, len(s.back))
	s.cy, s.cx = 0, 0
	s.clearPending = true
}

// ClrToBot blanks from the cursor to the end of the screen.
func (s *Screen) ClrToBot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearRange(s.cy*s.cols+s.cx, len(s.back))
}

// ClrToTop blanks from the start of the screen through the cursor.
func (s *Screen) ClrToTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearRange(0, s.cy*s.cols+s.cx+1)
}

// ClrToEol blanks from the cursor to the end of its line.
func (s *Screen) ClrToEol() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearRange(s.cy*s.cols+s.cx, (s.cy+1)*s.cols)
}

// ClrLine blanks the cursor's line.
func (s *Screen) ClrLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearRange(s.cy*s.cols, (s.cy+1)*s.cols)
}

// Scrl scrolls the contents up by n lines, or down when n is negative.
// Exposed lines are blank.
func (s *Screen) Scrl(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n == 0 {
		return
	}
	shift := n
	if shift < 0 {
		shift = -shift
	}
	if shift >= s.rows {
		s.clearRange(0, len(s.back))
		return
	}

	span := shift * s.cols
	if n > 0 {
		copy(s.back, s.back[span:])
		s.clearRange(len(s.back)-span, len(s.back))
	} else {
		copy(s.back[span:], s.back[:len(s.back)-span])
		s.clearRange(0, span)
	}
}

// Attron turns on attributes. A color pair in a replaces the current pair.
func (s *Screen) Attron(a Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a&AColor != 0 {
		s.attr &^= AColor
	}
	s.attr |= a
}

// Attroff turns off attributes. Any color pair bits in a reset the pair.
func (s *Screen) Attroff(a Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a&AColor != 0 {
		s.attr &^= AColor
	}
	s.attr &^= a &^ AColor
}

// ColorSet makes pair the current color pair, replacing whatever pair is
// active. Pair 0 is the terminal default.
func (s *Screen) ColorSet(pair int16) error {
	if pair < 0 || int(pair) >= ColorPairs {
		return ErrBadPair
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attr = s.attr&^AColor | ColorPair(int(pair))
	return nil
}

// Attrset replaces the current attributes.
func (s *Screen) Attrset(a Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attr = a
}

// AttrGet returns the current attributes, including the color pair.
func (s *Screen) AttrGet() Attr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attr
}

// CursSet sets cursor visibility (0 invisible, 1 normal, 2 very visible)
// from the next Refresh and returns the previous setting.
func (s *Screen) CursSet(v int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.cursorVis
	s.cursorVis = clamp(v, 0, 2)
	return old
}

// SetBlink sets cursor blinking from the next Refresh.
func (s *Screen) SetBlink(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blink = on
}

// Raw puts the terminal in raw mode.
func (s *Screen) Raw() error { return s.tty.SetRaw(true) }

// Noraw leaves raw mode.
func (s *Screen) Noraw() error { return s.tty.SetRaw(false) }

// Echo enables echo of typed characters.
func (s *Screen) Echo() error { return s.tty.SetEcho(true) }

// Noecho disables echo of typed characters.
func (s *Screen) Noecho() error { return s.tty.SetEcho(false) }

// Nl enables newline translation.
func (s *Screen) Nl() error { return s.tty.SetNL(true) }

// Nonl disables newline translation.
func (s *Screen) Nonl() error { return s.tty.SetNL(false) }

// Keypad enables decoding of escape sequences into key codes and puts the
// terminal keypad in application mode.
func (s *Screen) Keypad(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keypad = on
	if on {
		return s.writeRaw(seqKeypadXmit)
	}
	return s.writeRaw(seqKeypadLocal)
}

// EnterAltScreen switches to the alternate screen buffer. The next Refresh
// repaints everything.
func (s *Screen) EnterAltScreen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.altScreen {
		return nil
	}
	if err := s.writeRaw(seqAltScreenEnter); err != nil {
		return err
	}
	s.altScreen = true
	s.clearPending = true
	return nil
}

// LeaveAltScreen returns to the normal screen buffer.
func (s *Screen) LeaveAltScreen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.altScreen {
		return nil
	}
	if err := s.writeRaw(seqAltScreenExit); err != nil {
		return err
	}
	s.altScreen = false
	s.clearPending = true
	return nil
}

// Timeout sets how long Getch waits: negative blocks, zero polls.
func (s *Screen) Timeout(ms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeoutMs = ms
}

// Writer returns a writer that sends bytes to the terminal immediately,
// bypassing the screen buffers.
func (s *Screen) Writer() io.Writer {
	return rawWriter{s}
}

type rawWriter struct{ s *Screen }

func (w rawWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	if err := w.s.out.Flush(); err != nil {
		return 0, err
	}
	return w.s.tty.Write(p)
}

// writeRaw writes seq straight to the terminal. Caller holds s.mu.
func (s *Screen) writeRaw(seq string) error {
	if err := s.out.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(s.tty, seq)
	return err
}

// Endwin restores the terminal for normal use: attributes reset, cursor
// shown, keypad local and the original terminal modes. The screen may be
// used again afterwards.
func (s *Screen) Endwin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.out.WriteString(seqSGR0)
	s.out.WriteString(seqCursorShow)
	if s.keypad {
		s.out.WriteString(seqKeypadLocal)
	}
	if s.altScreen {
		s.out.WriteString(seqAltScreenExit)
		s.altScreen = false
	}
	writeCursorPos(s.out, 0, s.rows-1)
	s.out.WriteString("\r\n")

	err := s.out.Flush()
	if rerr := s.tty.Restore(); err == nil {
		err = rerr
	}
	s.ended = true
	s.cursorVisApplied = -1
	s.blinkApplied = -1
	s.styleValid = false
	s.clearPending = true
	return err
}

// IsEndwin reports whether Endwin was called.
func (s *Screen) IsEndwin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Delscreen releases the terminal device.
func (s *Screen) Delscreen() error {
	return s.tty.Close()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package curses

import (
	"bufio"
)

const (
	seqSGR0           = "\x1b[0m"
	seqClearScreen    = "\x1b[2J"
	seqCursorShow     = "\x1b[?25h"
	seqCursorHide     = "\x1b[?25l"
	seqBlinkOn        = "\x1b[?12h"
	seqBlinkOff       = "\x1b[?12l"
	seqAltScreenEnter = "\x1b[?1049h"
	seqAltScreenExit  = "\x1b[?1049l"
	seqKeypadXmit     = "\x1b[?1h\x1b="
	seqKeypadLocal    = "\x1b[?1l\x1b>"
)

// Refresh sends everything staged since the last Refresh to the terminal
// in a single write: changed cells, cursor visibility, blinking and the
// cursor position.
func (s *Screen) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.out
	s.ended = false

	if s.clearPending {
		w.WriteString(seqSGR0)
		w.WriteString(seqClearScreen)
		for i := range s.front {
			s.front[i] = cell{}
		}
		s.styleValid = false
		s.clearPending = false
	}

	s.flushCells(w)

	if s.cursorVis != s.cursorVisApplied {
		if s.cursorVis == 0 {
			w.WriteString(seqCursorHide)
		} else {
			w.WriteString(seqCursorShow)
		}
		s.cursorVisApplied = s.cursorVis
	}

	blink := 0
	if s.blink {
		blink = 1
	}
	if blink != s.blinkApplied {
		if s.blink {
			w.WriteString(seqBlinkOn)
		} else {
			w.WriteString(seqBlinkOff)
		}
		s.blinkApplied = blink
	}

	writeCursorPos(w, s.cx, s.cy)
	return w.Flush()
}

// flushCells writes the cells that differ between the back and front
// buffers. Caller holds s.mu.
func (s *Screen) flushCells(w *bufio.Writer) {
	curX, curY := -1, -1

	for y := 0; y < s.rows; y++ {
		row := y * s.cols
		for x := 0; x < s.cols; x++ {
			idx := row + x
			c := s.back[idx]
			if c == s.front[idx] {
				continue
			}
			if c.cont {
				s.front[idx] = c
				continue
			}

			if curX != x || curY != y {
				writeCursorPos(w, x, y)
				curX, curY = x, y
			}
			s.writeStyle(w, c.attr)

			if c.text == "" {
				w.WriteByte(' ')
			} else {
				w.WriteString(c.text)
			}
			s.front[idx] = c

			width := 1
			for x+width < s.cols && s.back[row+x+width].cont {
				width++
			}
			curX += width
		}
	}

	if s.styleValid {
		w.WriteString(seqSGR0)
		s.styleValid = false
	}
}

// writeStyle emits one combined SGR sequence when the style differs from
// the last one written.
func (s *Screen) writeStyle(w *bufio.Writer, a Attr) {
	if s.styleValid && a == s.lastStyle {
		return
	}

	w.WriteString("\x1b[0")
	for _, m := range sgrAttrs {
		if a&m.attr != 0 {
			w.WriteByte(';')
			writeInt(w, m.code)
		}
	}

	if s.colorOn {
		p := s.pairs[PairNumber(a)]
		writeColor(w, p.fg, 30, 90, 38)
		writeColor(w, p.bg, 40, 100, 48)
	}
	w.WriteByte('m')

	s.lastStyle = a
	s.styleValid = true
}

var sgrAttrs = []struct {
	attr Attr
	code int
}{
	{ABold, 1},
	{ADim, 2},
	{AItalic, 3},
	{AUnderline, 4},
	{ABlink, 5},
	{AReverse | AStandout, 7},
	{AInvis, 8},
	{AStrikeout, 9},
}

// writeColor appends a color parameter: the 8 basic colors and their
// bright variants use the short codes, the rest the 256-color form.
func writeColor(w *bufio.Writer, c int16, base, bright, extended int) {
	switch {
	case c < 0:
		return
	case c < 8:
		w.WriteByte(';')
		writeInt(w, base+int(c))
	case c < 16:
		w.WriteByte(';')
		writeInt(w, bright+int(c)-8)
	default:
		w.WriteByte(';')
		writeInt(w, extended)
		w.WriteString(";5;")
		writeInt(w, int(c))
	}
}

func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos moves the cursor to zero-based column x, row y.
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.WriteString("\x1b[")
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

package curses

import (
	"time"
	"unicode/utf8"
)

type parseResult int

const (
	parseIncomplete parseResult = iota
	parseEmit
	parseSkip
)

// Getch returns the next character or key code. It waits as configured by
// Timeout and returns ErrNoInput when the wait expires. A pending window
// size change is reported as KeyResize.
func (s *Screen) Getch() (Input, error) {
	s.inMu.Lock()
	defer s.inMu.Unlock()

	s.mu.Lock()
	ms := s.timeoutMs
	escDelay := int(s.escDelay / time.Millisecond)
	s.mu.Unlock()

	var deadline time.Time
	if ms >= 0 {
		deadline = time.Now().Add(time.Duration(ms) * time.Millisecond)
	}

	// got is the byte count of the last read; -1 until the first one.
	got := -1
	for {
		if s.tty.Resized() {
			return Input{IsKey: true, Code: KeyResize}, nil
		}

		for len(s.inbuf) > 0 {
			in, n, res := s.parse(s.inbuf)
			if res == parseIncomplete {
				more, err := s.fill(escDelay)
				if err != nil {
					return Input{}, err
				}
				if more > 0 {
					continue
				}
				// The rest of the sequence never came: deliver the
				// first byte on its own.
				in, n = s.parseByte(s.inbuf)
				res = parseEmit
			}
			s.inbuf = s.inbuf[n:]
			if res == parseEmit {
				return in, nil
			}
		}

		wait := -1
		if ms >= 0 {
			// Expire only after a read came back empty, so input queued
			// behind a skipped report is still seen by a zero wait.
			left := time.Until(deadline)
			if left <= 0 && got == 0 {
				return Input{}, ErrNoInput
			}
			wait = int(left / time.Millisecond)
			if wait < 0 {
				wait = 0
			}
		}

		n, err := s.fill(wait)
		if err != nil {
			return Input{}, err
		}
		got = n
	}
}

// GetWch is Getch under its wide-character name.
func (s *Screen) GetWch() (Input, error) {
	return s.Getch()
}

// fill reads whatever input arrives within ms milliseconds.
func (s *Screen) fill(ms int) (int, error) {
	var buf [256]byte
	n, err := s.tty.ReadTimeout(buf[:], ms)
	if n > 0 {
		s.inbuf = append(s.inbuf, buf[:n]...)
	}
	return n, err
}

// parse decodes the first input unit in data and reports how many bytes it
// used. Mouse reports filtered by the mask are consumed with parseSkip.
func (s *Screen) parse(data []byte) (Input, int, parseResult) {
	s.mu.Lock()
	keypad := s.keypad
	s.mu.Unlock()

	if data[0] != 0x1b || !keypad {
		return s.parseChar(data)
	}
	if len(data) < 2 {
		return Input{}, 0, parseIncomplete
	}

	switch data[1] {
	case '[':
		return s.parseCSI(data)
	case 'O':
		return parseSS3(data)
	}
	// ESC followed by anything else is a lone ESC; the next byte is read
	// on the following call.
	return Input{Rune: 0x1b}, 1, parseEmit
}

func (s *Screen) parseChar(data []byte) (Input, int, parseResult) {
	if data[0] < utf8.RuneSelf {
		return Input{Rune: rune(data[0])}, 1, parseEmit
	}
	if !utf8.FullRune(data) {
		return Input{}, 0, parseIncomplete
	}
	r, n := utf8.DecodeRune(data)
	return Input{Rune: r}, n, parseEmit
}

// parseByte delivers data[0] alone, used when a sequence stays incomplete.
func (s *Screen) parseByte(data []byte) (Input, int) {
	if data[0] < utf8.RuneSelf {
		return Input{Rune: rune(data[0])}, 1
	}
	return Input{Rune: utf8.RuneError}, 1
}

func keyInput(code int) Input {
	return Input{IsKey: true, Code: code}
}

var unknownKey = keyInput(KeyUnknown)

func (s *Screen) parseCSI(data []byte) (Input, int, parseResult) {
	if len(data) < 3 {
		return Input{}, 0, parseIncomplete
	}

	switch data[2] {
	case 'M':
		return s.parseX10Mouse(data)
	case '<':
		return s.parseSGRMouse(data)
	}

	const maxLen = 16
	end := 2
	for ; end < len(data) && end < maxLen; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// Not a control sequence after all.
			return unknownKey, end, parseEmit
		}
	}
	if end >= maxLen {
		return unknownKey, end, parseEmit
	}
	if end >= len(data) {
		return Input{}, 0, parseIncomplete
	}

	code, ok := s.csiKey(string(data[2:end]), data[end])
	if !ok {
		return unknownKey, end + 1, parseEmit
	}
	return keyInput(code), end + 1, parseEmit
}

var csiFinal = map[byte]int{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF(1),
	'Q': KeyF(2),
	'R': KeyF(3),
	'S': KeyF(4),
}

var csiTilde = map[int]int{
	1:  KeyHome,
	2:  KeyIC,
	3:  KeyDC,
	4:  KeyEnd,
	5:  KeyPPage,
	6:  KeyNPage,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF(1),
	12: KeyF(2),
	13: KeyF(3),
	14: KeyF(4),
	15: KeyF(5),
	17: KeyF(6),
	18: KeyF(7),
	19: KeyF(8),
	20: KeyF(9),
	21: KeyF(10),
	23: KeyF(11),
	24: KeyF(12),
}

// fkeyOffset maps an xterm modifier parameter to the distance between a
// function key and its modified variant (shift+F1 is F13).
var fkeyOffset = map[int]int{
	1: 0,
	2: 12,
	5: 24,
	6: 36,
	3: 48,
	4: 60,
}

const maxFKey = 63

func (s *Screen) csiKey(params string, final byte) (int, bool) {
	if final == 'Z' && params == "" {
		return KeyBTab, true
	}

	num, mod, ok := splitParams(params)
	if !ok {
		return 0, false
	}

	var key int
	switch final {
	case '~':
		if key, ok = csiTilde[num]; !ok {
			return 0, false
		}
	default:
		if key, ok = csiFinal[final]; !ok {
			return 0, false
		}
		if num > 1 {
			return 0, false
		}
	}

	if key >= KeyF(1) && key <= KeyF(12) {
		off, ok := fkeyOffset[mod]
		if !ok || key-KeyF0+off > maxFKey {
			return 0, false
		}
		return key + off, true
	}
	return s.ext.lookup(key, mod)
}

// splitParams parses "n" or "n;m". Missing values default to 1.
func splitParams(params string) (num, mod int, ok bool) {
	num, mod = 1, 1
	field, val, seen := 0, 0, false
	for i := 0; i <= len(params); i++ {
		if i == len(params) || params[i] == ';' {
			if seen {
				if field == 0 {
					num = val
				} else {
					mod = val
				}
			}
			field++
			val, seen = 0, false
			if field > 2 {
				return 0, 0, false
			}
			continue
		}
		b := params[i]
		if b < '0' || b > '9' {
			return 0, 0, false
		}
		val = val*10 + int(b-'0')
		seen = true
		if val > 9999 {
			return 0, 0, false
		}
	}
	return num, mod, true
}

var ss3Keys = map[byte]int{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'M': KeyEnter,
	'P': KeyF(1),
	'Q': KeyF(2),
	'R': KeyF(3),
	'S': KeyF(4),
}

func parseSS3(data []byte) (Input, int, parseResult) {
	if len(data) < 3 {
		return Input{}, 0, parseIncomplete
	}
	if code, ok := ss3Keys[data[2]]; ok {
		return keyInput(code), 3, parseEmit
	}
	return unknownKey, 3, parseEmit
}

// parseX10Mouse decodes ESC [ M cb cx cy, each byte offset by 32.
func (s *Screen) parseX10Mouse(data []byte) (Input, int, parseResult) {
	if len(data) < 6 {
		return Input{}, 0, parseIncomplete
	}
	cb := int(data[3]) - 32
	x := int(data[4]) - 33
	y := int(data[5]) - 33
	return s.mouseInput(cb, x, y, false, 6)
}

// parseSGRMouse decodes ESC [ < b ; x ; y M (press) or m (release).
func (s *Screen) parseSGRMouse(data []byte) (Input, int, parseResult) {
	const maxLen = 32
	end := 3
	for ; end < len(data) && end < maxLen; end++ {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
	}
	if end >= maxLen {
		return unknownKey, end, parseEmit
	}
	if end >= len(data) {
		return Input{}, 0, parseIncomplete
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return unknownKey, end + 1, parseEmit
	}
	return s.mouseInput(btn, x-1, y-1, data[end] == 'm', end+1)
}

func (s *Screen) mouseInput(cb, x, y int, release bool, n int) (Input, int, parseResult) {
	s.mu.Lock()
	queued := s.mouseReport(cb, x, y, release)
	s.mu.Unlock()

	if !queued {
		return Input{}, n, parseSkip
	}
	return keyInput(KeyMouse), n, parseEmit
}

// parseSGRParams extracts btn, x, y from "btn;x;y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	var vals [3]int
	field := 0
	for _, b := range data {
		switch {
		case b == ';':
			field++
			if field > 2 {
				return 0, 0, 0, false
			}
		case b >= '0' && b <= '9':
			vals[field] = vals[field]*10 + int(b-'0')
			if vals[field] > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if field != 2 {
		return 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], true
}

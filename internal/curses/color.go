package curses

// Attr holds video attributes and a color pair, laid out as in ncurses:
// the pair number lives in bits 8-15.
type Attr uint32

// Video attributes.
const (
	ANormal    Attr = 0
	AColor     Attr = 0xff << 8
	AStandout  Attr = 1 << 16
	AUnderline Attr = 1 << 17
	AReverse   Attr = 1 << 18
	ABlink     Attr = 1 << 19
	ADim       Attr = 1 << 20
	ABold      Attr = 1 << 21
	AInvis     Attr = 1 << 23
	AStrikeout Attr = 1 << 26
	AItalic    Attr = 1 << 31

	attrInvalid Attr = 1 << 30
)

// ColorPair returns the attribute bits selecting pair n.
func ColorPair(n int) Attr {
	return Attr(n<<8) & AColor
}

// PairNumber extracts the pair number from a.
func PairNumber(a Attr) int {
	return int((a & AColor) >> 8)
}

// Basic colors.
const (
	ColorBlack int16 = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

type cell struct {
	text string // empty is a blank
	attr Attr
	cont bool // right half of a wide cluster
}

// StartColor enables color output.
func (s *Screen) StartColor() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ncolors == 0 {
		return ErrNoColor
	}
	s.colorOn = true
	return nil
}

// UseDefaultColors lets -1 stand for the terminal's own foreground or
// background, and makes pair 0 use both.
func (s *Screen) UseDefaultColors() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.colorOn {
		return ErrNoColor
	}
	s.defaultColors = true
	s.pairs[0] = colorPair{fg: -1, bg: -1}
	s.invalidatePair(0)
	return nil
}

// HasColors reports whether the terminal supports color.
func (s *Screen) HasColors() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ncolors > 0
}

// Colors returns the palette size.
func (s *Screen) Colors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ncolors
}

// InitPair defines pair n. Cells already drawn with the pair are repainted
// on the next Refresh.
func (s *Screen) InitPair(n, fg, bg int16) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.colorOn {
		return ErrNoColor
	}
	if n < 0 || int(n) >= ColorPairs {
		return ErrBadPair
	}
	if !s.validColor(fg) || !s.validColor(bg) {
		return ErrBadColor
	}

	p := colorPair{fg: fg, bg: bg}
	if s.pairs[n] == p {
		return nil
	}
	s.pairs[n] = p
	s.invalidatePair(int(n))
	return nil
}

// PairContent returns the colors of pair n.
func (s *Screen) PairContent(n int16) (fg, bg int16, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 || int(n) >= ColorPairs {
		return 0, 0, ErrBadPair
	}
	p := s.pairs[n]
	return p.fg, p.bg, nil
}

func (s *Screen) validColor(c int16) bool {
	if c == -1 {
		return s.defaultColors
	}
	return c >= 0 && int(c) < s.ncolors
}

// invalidatePair forces cells using pair n to be redrawn. Caller holds s.mu.
func (s *Screen) invalidatePair(n int) {
	for i := range s.front {
		if PairNumber(s.front[i].attr) == n {
			s.front[i].attr |= attrInvalid
		}
	}
	if PairNumber(s.lastStyle) == n {
		s.styleValid = false
	}
}

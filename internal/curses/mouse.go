package curses

import "errors"

// MouseMask is an ncurses-compatible button state bitmask. Each of the
// five buttons owns five bits (released, pressed, clicked, double, triple);
// a sixth group carries the modifier and motion flags.
type MouseMask uint32

func buttonMask(button int, m MouseMask) MouseMask {
	return m << ((button - 1) * 5)
}

const (
	maskReleased MouseMask = 0o01
	maskPressed  MouseMask = 0o02
	maskClicked  MouseMask = 0o04
	maskDouble   MouseMask = 0o10
	maskTriple   MouseMask = 0o20
)

// Button state bits.
var (
	Button1Released      = buttonMask(1, maskReleased)
	Button1Pressed       = buttonMask(1, maskPressed)
	Button1Clicked       = buttonMask(1, maskClicked)
	Button1DoubleClicked = buttonMask(1, maskDouble)
	Button1TripleClicked = buttonMask(1, maskTriple)

	Button2Released      = buttonMask(2, maskReleased)
	Button2Pressed       = buttonMask(2, maskPressed)
	Button2Clicked       = buttonMask(2, maskClicked)
	Button2DoubleClicked = buttonMask(2, maskDouble)
	Button2TripleClicked = buttonMask(2, maskTriple)

	Button3Released      = buttonMask(3, maskReleased)
	Button3Pressed       = buttonMask(3, maskPressed)
	Button3Clicked       = buttonMask(3, maskClicked)
	Button3DoubleClicked = buttonMask(3, maskDouble)
	Button3TripleClicked = buttonMask(3, maskTriple)

	Button4Released      = buttonMask(4, maskReleased)
	Button4Pressed       = buttonMask(4, maskPressed)
	Button4Clicked       = buttonMask(4, maskClicked)
	Button4DoubleClicked = buttonMask(4, maskDouble)
	Button4TripleClicked = buttonMask(4, maskTriple)

	Button5Released      = buttonMask(5, maskReleased)
	Button5Pressed       = buttonMask(5, maskPressed)
	Button5Clicked       = buttonMask(5, maskClicked)
	Button5DoubleClicked = buttonMask(5, maskDouble)
	Button5TripleClicked = buttonMask(5, maskTriple)

	ButtonCtrl          = buttonMask(6, 0o01)
	ButtonShift         = buttonMask(6, 0o02)
	ButtonAlt           = buttonMask(6, 0o04)
	ReportMousePosition = buttonMask(6, 0o10)

	AllMouseEvents = ReportMousePosition - 1
)

// ErrNoMouseEvent is returned by Getmouse when no report is queued.
var ErrNoMouseEvent = errors.New("no mouse event")

// MouseEvent is one decoded mouse report in zero-based cell coordinates.
type MouseEvent struct {
	X, Y   int
	BState MouseMask
}

// Mousemask sets which mouse reports are delivered and returns the
// previous mask. A zero mask disables KEY_MOUSE delivery.
func (s *Screen) Mousemask(mask MouseMask) MouseMask {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.mouseMask
	s.mouseMask = mask
	return old
}

// Getmouse dequeues the report that produced the last KEY_MOUSE.
func (s *Screen) Getmouse() (MouseEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.mouseQueue) == 0 {
		return MouseEvent{}, ErrNoMouseEvent
	}
	ev := s.mouseQueue[0]
	s.mouseQueue = s.mouseQueue[1:]
	return ev, nil
}

// mouseReport converts an xterm button byte into a button state and
// queues it. It returns false when the report is filtered by the mask or
// carries nothing ncurses would deliver (a release with no button down).
// Caller holds s.mu.
func (s *Screen) mouseReport(cb, x, y int, release bool) bool {
	var state MouseMask
	if cb&4 != 0 {
		state |= ButtonShift
	}
	if cb&8 != 0 {
		state |= ButtonAlt
	}
	if cb&16 != 0 {
		state |= ButtonCtrl
	}

	switch {
	case cb&64 != 0:
		// Wheel reports arrive as presses of buttons 4 and 5.
		if cb&3 == 0 {
			state |= Button4Pressed
		} else {
			state |= Button5Pressed
		}
	case cb&32 != 0:
		state |= ReportMousePosition
	case cb&3 == 3 || release:
		if s.mouseHeld == 0 {
			return false
		}
		state |= buttonMask(s.mouseHeld, maskReleased)
		s.mouseHeld = 0
	default:
		// xterm numbers left, middle, right as 0, 1, 2.
		s.mouseHeld = cb&3 + 1
		state |= buttonMask(s.mouseHeld, maskPressed)
	}

	if state&^(ButtonCtrl|ButtonShift|ButtonAlt)&s.mouseMask == 0 {
		return false
	}

	s.mouseQueue = append(s.mouseQueue, MouseEvent{X: x, Y: y, BState: state})
	return true
}

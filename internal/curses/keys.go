package curses

import (
	"fmt"
	"strconv"
)

// Key codes, numbered as in ncurses so code tables written against the C
// library carry over unchanged.
const (
	KeyCodeYes   = 0o400
	KeyBreak     = 0o401
	KeyDown      = 0o402
	KeyUp        = 0o403
	KeyLeft      = 0o404
	KeyRight     = 0o405
	KeyHome      = 0o406
	KeyBackspace = 0o407
	KeyF0        = 0o410
	KeyDL        = 0o510
	KeyIL        = 0o511
	KeyDC        = 0o512
	KeyIC        = 0o513
	KeyEIC       = 0o514
	KeyClear     = 0o515
	KeyEOS       = 0o516
	KeyEOL       = 0o517
	KeySF        = 0o520
	KeySR        = 0o521
	KeyNPage     = 0o522
	KeyPPage     = 0o523
	KeySTab      = 0o524
	KeyCTab      = 0o525
	KeyCATab     = 0o526
	KeyEnter     = 0o527
	KeyPrint     = 0o532
	KeyBTab      = 0o541
	KeyBeg       = 0o542
	KeyEnd       = 0o550
	KeySDC       = 0o577
	KeySEnd      = 0o602
	KeySHome     = 0o607
	KeySIC       = 0o610
	KeySLeft     = 0o611
	KeySNext     = 0o614
	KeySPrevious = 0o616
	KeySPrint    = 0o617
	KeySRight    = 0o622
	KeyMouse     = 0o631
	KeyResize    = 0o632
	KeyMax       = 0o777

	// KeyUnknown is returned for a complete escape sequence that maps to
	// no key.
	KeyUnknown = KeyMax
)

// KeyF returns the code of function key n.
func KeyF(n int) int {
	return KeyF0 + n
}

var keyNames = map[int]string{
	KeyBreak:     "KEY_BREAK",
	KeyDown:      "KEY_DOWN",
	KeyUp:        "KEY_UP",
	KeyLeft:      "KEY_LEFT",
	KeyRight:     "KEY_RIGHT",
	KeyHome:      "KEY_HOME",
	KeyBackspace: "KEY_BACKSPACE",
	KeyDL:        "KEY_DL",
	KeyIL:        "KEY_IL",
	KeyDC:        "KEY_DC",
	KeyIC:        "KEY_IC",
	KeyEIC:       "KEY_EIC",
	KeyClear:     "KEY_CLEAR",
	KeyEOS:       "KEY_EOS",
	KeyEOL:       "KEY_EOL",
	KeySF:        "KEY_SF",
	KeySR:        "KEY_SR",
	KeyNPage:     "KEY_NPAGE",
	KeyPPage:     "KEY_PPAGE",
	KeySTab:      "KEY_STAB",
	KeyCTab:      "KEY_CTAB",
	KeyCATab:     "KEY_CATAB",
	KeyEnter:     "KEY_ENTER",
	KeyPrint:     "KEY_PRINT",
	KeyBTab:      "KEY_BTAB",
	KeyBeg:       "KEY_BEG",
	KeyEnd:       "KEY_END",
	KeySDC:       "KEY_SDC",
	KeySEnd:      "KEY_SEND",
	KeySHome:     "KEY_SHOME",
	KeySIC:       "KEY_SIC",
	KeySLeft:     "KEY_SLEFT",
	KeySNext:     "KEY_SNEXT",
	KeySPrevious: "KEY_SPREVIOUS",
	KeySPrint:    "KEY_SPRINT",
	KeySRight:    "KEY_SRIGHT",
	KeyMouse:     "KEY_MOUSE",
	KeyResize:    "KEY_RESIZE",
}

// extendedBase lists the terminfo user-capability stems for keys that
// xterm-style terminals report with a modifier parameter, in the order
// their codes are assigned.
var extendedBase = []struct {
	name string
	code int // unmodified key
}{
	{"DC", KeyDC},
	{"DN", KeyDown},
	{"END", KeyEnd},
	{"HOM", KeyHome},
	{"IC", KeyIC},
	{"LFT", KeyLeft},
	{"NXT", KeyNPage},
	{"PRV", KeyPPage},
	{"RIT", KeyRight},
	{"UP", KeyUp},
}

// shifted maps an unmodified key to the code ncurses reports for it with
// Shift held (modifier parameter 2).
var shifted = map[int]int{
	KeyDC:    KeySDC,
	KeyDown:  KeySF,
	KeyEnd:   KeySEnd,
	KeyHome:  KeySHome,
	KeyIC:    KeySIC,
	KeyLeft:  KeySLeft,
	KeyNPage: KeySNext,
	KeyPPage: KeySPrevious,
	KeyRight: KeySRight,
	KeyUp:    KeySR,
}

// Modifier parameters 3 through 8 get extended codes.
const (
	firstExtendedMod = 3
	lastExtendedMod  = 8
	extendedPerKey   = lastExtendedMod - firstExtendedMod + 1
	firstExtended    = KeyMax + 1
)

// extendedKeys holds the dynamically numbered codes for modified keys.
type extendedKeys struct {
	byName map[string]int
	byCode map[int]string
}

func newExtendedKeys() *extendedKeys {
	ek := &extendedKeys{
		byName: make(map[string]int),
		byCode: make(map[int]string),
	}
	code := firstExtended
	for _, base := range extendedBase {
		for mod := firstExtendedMod; mod <= lastExtendedMod; mod++ {
			name := "k" + base.name + strconv.Itoa(mod)
			ek.byName[name] = code
			ek.byCode[code] = name
			code++
		}
	}
	return ek
}

// lookup returns the code for key (an unmodified key code) with the xterm
// modifier parameter mod.
func (ek *extendedKeys) lookup(key, mod int) (int, bool) {
	if mod <= 1 {
		return key, true
	}
	if mod == 2 {
		code, ok := shifted[key]
		return code, ok
	}
	for _, base := range extendedBase {
		if base.code == key {
			code, ok := ek.byName["k"+base.name+strconv.Itoa(mod)]
			return code, ok
		}
	}
	return 0, false
}

// Keyname returns the symbolic name of a key code the way ncurses keyname
// does: "^A" for control characters, "KEY_UP" for standard keys and the
// terminfo capability name ("kUP5") for extended keys. It returns "" for
// codes without a name.
func (s *Screen) Keyname(code int) string {
	switch {
	case code < 0:
		return ""
	case code < 0x20:
		return "^" + string(rune(code+'@'))
	case code == 0x7f:
		return "^?"
	case code < 0x7f:
		return string(rune(code))
	case code < 0x100:
		return fmt.Sprintf("M-%s", s.Keyname(code-0x80))
	}

	if code >= KeyF0 && code <= KeyF(63) {
		return fmt.Sprintf("KEY_F(%d)", code-KeyF0)
	}
	if name, ok := keyNames[code]; ok {
		return name
	}
	if name, ok := s.ext.byCode[code]; ok {
		return name
	}
	return ""
}

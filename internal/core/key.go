package core

import (
	"fmt"
	"strings"
)

// KeyKind identifies a key independent of any character payload.
type KeyKind uint8

const (
	KeyNull KeyKind = iota
	KeyBackspace
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyF    // function key, number in KeyCode.Num
	KeyChar // character key, rune in KeyCode.Char
	KeyEsc
)

var keyKindNames = [...]string{
	KeyNull:      "Null",
	KeyBackspace: "Backspace",
	KeyEnter:     "Enter",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyF:         "F",
	KeyChar:      "Char",
	KeyEsc:       "Esc",
}

// String returns the key kind name.
func (k KeyKind) String() string {
	if int(k) < len(keyKindNames) {
		return keyKindNames[k]
	}
	return "Unknown"
}

// KeyCode is a normalized key. Char is set only for KeyChar and Num only
// for KeyF, so two codes compare equal exactly when they name the same key.
type KeyCode struct {
	Kind KeyKind
	Char rune
	Num  uint8
}

// Code returns the KeyCode for a key kind without payload.
func Code(kind KeyKind) KeyCode {
	return KeyCode{Kind: kind}
}

// Char returns the KeyCode for a character key.
func Char(r rune) KeyCode {
	return KeyCode{Kind: KeyChar, Char: r}
}

// F returns the KeyCode for function key n.
func F(n uint8) KeyCode {
	return KeyCode{Kind: KeyF, Num: n}
}

// String returns a representation like "Char('a')" or "F(5)".
func (c KeyCode) String() string {
	switch c.Kind {
	case KeyChar:
		return fmt.Sprintf("Char(%q)", c.Char)
	case KeyF:
		return fmt.Sprintf("F(%d)", c.Num)
	default:
		return c.Kind.String()
	}
}

// KeyEvent is a key press with the modifiers held at the time.
type KeyEvent struct {
	Code      KeyCode
	Modifiers Modifiers
}

// NewKeyEvent creates a KeyEvent.
func NewKeyEvent(code KeyCode, mods Modifiers) KeyEvent {
	return KeyEvent{Code: code, Modifiers: mods}
}

// String returns a representation like "Ctrl+Char('c')".
func (k KeyEvent) String() string {
	if k.Modifiers.IsEmpty() {
		return k.Code.String()
	}
	var b strings.Builder
	b.WriteString(k.Modifiers.String())
	b.WriteByte('+')
	b.WriteString(k.Code.String())
	return b.String()
}

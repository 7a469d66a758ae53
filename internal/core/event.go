package core

import "fmt"

// EventKind identifies the kind of input event.
type EventKind uint8

const (
	EventUnknown EventKind = iota
	EventKey
	EventMouse
	EventResize
)

// Event is a normalized input event. Only the field matching Kind is set;
// Columns and Rows are filled for resize events when the driver knows the
// new geometry.
type Event struct {
	Kind    EventKind
	Key     KeyEvent
	Mouse   MouseEvent
	Columns uint16
	Rows    uint16
}

// KeyEventOf wraps a key event.
func KeyEventOf(k KeyEvent) Event {
	return Event{Kind: EventKey, Key: k}
}

// KeyPress is shorthand for a key event with the given code and modifiers.
func KeyPress(code KeyCode, mods Modifiers) Event {
	return KeyEventOf(NewKeyEvent(code, mods))
}

// MouseEventOf wraps a mouse event.
func MouseEventOf(m MouseEvent) Event {
	return Event{Kind: EventMouse, Mouse: m}
}

// ResizeEvent reports a new terminal geometry.
func ResizeEvent(columns, rows uint16) Event {
	return Event{Kind: EventResize, Columns: columns, Rows: rows}
}

// UnknownEvent is returned for input that could not be decoded.
func UnknownEvent() Event {
	return Event{Kind: EventUnknown}
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "Key(" + e.Key.String() + ")"
	case EventMouse:
		return "Mouse(" + e.Mouse.String() + ")"
	case EventResize:
		return fmt.Sprintf("Resize(%d, %d)", e.Columns, e.Rows)
	default:
		return "Unknown"
	}
}

package core

import "fmt"

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	// MouseLeft is the primary button.
	MouseLeft MouseButton = iota
	// MouseRight is the secondary button.
	MouseRight
	// MouseMiddle is the wheel button.
	MouseMiddle
	// MouseUnknown means the driver could not tell which button was used.
	MouseUnknown
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseRight:
		return "Right"
	case MouseMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// MouseKind identifies the kind of mouse event.
type MouseKind uint8

const (
	MouseDown MouseKind = iota
	MouseUp
	MouseDrag
	MouseScrollDown
	MouseScrollUp
)

// String returns the mouse kind name.
func (k MouseKind) String() string {
	switch k {
	case MouseDown:
		return "Down"
	case MouseUp:
		return "Up"
	case MouseDrag:
		return "Drag"
	case MouseScrollDown:
		return "ScrollDown"
	case MouseScrollUp:
		return "ScrollUp"
	default:
		return "Unknown"
	}
}

// MouseEvent is a mouse report at a zero-based cell position.
// Button is meaningful only for Down, Up and Drag.
type MouseEvent struct {
	Kind      MouseKind
	Button    MouseButton
	Column    uint16
	Row       uint16
	Modifiers Modifiers
}

// MouseDownAt creates a button press event.
func MouseDownAt(b MouseButton, col, row uint16, mods Modifiers) MouseEvent {
	return MouseEvent{Kind: MouseDown, Button: b, Column: col, Row: row, Modifiers: mods}
}

// MouseUpAt creates a button release event.
func MouseUpAt(b MouseButton, col, row uint16, mods Modifiers) MouseEvent {
	return MouseEvent{Kind: MouseUp, Button: b, Column: col, Row: row, Modifiers: mods}
}

// MouseDragAt creates a drag event.
func MouseDragAt(b MouseButton, col, row uint16, mods Modifiers) MouseEvent {
	return MouseEvent{Kind: MouseDrag, Button: b, Column: col, Row: row, Modifiers: mods}
}

// ScrollUpAt creates a wheel-up event.
func ScrollUpAt(col, row uint16, mods Modifiers) MouseEvent {
	return MouseEvent{Kind: MouseScrollUp, Column: col, Row: row, Modifiers: mods}
}

// ScrollDownAt creates a wheel-down event.
func ScrollDownAt(col, row uint16, mods Modifiers) MouseEvent {
	return MouseEvent{Kind: MouseScrollDown, Column: col, Row: row, Modifiers: mods}
}

// ButtonOf returns the button involved in the event, if any.
func (m MouseEvent) ButtonOf() (MouseButton, bool) {
	switch m.Kind {
	case MouseDown, MouseUp, MouseDrag:
		return m.Button, true
	default:
		return MouseUnknown, false
	}
}

func (m MouseEvent) String() string {
	if _, ok := m.ButtonOf(); ok {
		return fmt.Sprintf("%s(%s, %d, %d, %s)", m.Kind, m.Button, m.Column, m.Row, m.Modifiers)
	}
	return fmt.Sprintf("%s(%d, %d, %s)", m.Kind, m.Column, m.Row, m.Modifiers)
}

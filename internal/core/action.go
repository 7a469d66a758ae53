package core

import "fmt"

// ClearType selects the region cleared by a ClearTerminal action.
type ClearType uint8

const (
	ClearAll ClearType = iota
	ClearFromCursorDown
	ClearFromCursorUp
	ClearCurrentLine
	ClearUntilNewLine
)

func (c ClearType) String() string {
	switch c {
	case ClearAll:
		return "All"
	case ClearFromCursorDown:
		return "FromCursorDown"
	case ClearFromCursorUp:
		return "FromCursorUp"
	case ClearCurrentLine:
		return "CurrentLine"
	case ClearUntilNewLine:
		return "UntilNewLine"
	default:
		return "Unknown"
	}
}

// ActionKind identifies a terminal operation.
type ActionKind uint8

const (
	ActMoveCursorTo ActionKind = iota
	ActHideCursor
	ActShowCursor
	ActEnableBlinking
	ActDisableBlinking
	ActClearTerminal
	ActSetTerminalSize
	ActScrollUp
	ActScrollDown
	ActEnableRawMode
	ActDisableRawMode
	ActEnterAlternateScreen
	ActLeaveAlternateScreen
	ActEnableMouseCapture
	ActDisableMouseCapture
	ActSetForegroundColor
	ActSetBackgroundColor
	ActSetAttribute
	ActResetColor
)

var actionKindNames = [...]string{
	ActMoveCursorTo:         "MoveCursorTo",
	ActHideCursor:           "HideCursor",
	ActShowCursor:           "ShowCursor",
	ActEnableBlinking:       "EnableBlinking",
	ActDisableBlinking:      "DisableBlinking",
	ActClearTerminal:        "ClearTerminal",
	ActSetTerminalSize:      "SetTerminalSize",
	ActScrollUp:             "ScrollUp",
	ActScrollDown:           "ScrollDown",
	ActEnableRawMode:        "EnableRawMode",
	ActDisableRawMode:       "DisableRawMode",
	ActEnterAlternateScreen: "EnterAlternateScreen",
	ActLeaveAlternateScreen: "LeaveAlternateScreen",
	ActEnableMouseCapture:   "EnableMouseCapture",
	ActDisableMouseCapture:  "DisableMouseCapture",
	ActSetForegroundColor:   "SetForegroundColor",
	ActSetBackgroundColor:   "SetBackgroundColor",
	ActSetAttribute:         "SetAttribute",
	ActResetColor:           "ResetColor",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return "Unknown"
}

// IsMode reports whether actions of this kind reconfigure terminal-wide
// mode. Mode actions take effect as soon as they are batched.
func (k ActionKind) IsMode() bool {
	switch k {
	case ActEnableRawMode, ActDisableRawMode,
		ActEnterAlternateScreen, ActLeaveAlternateScreen,
		ActEnableMouseCapture, ActDisableMouseCapture:
		return true
	}
	return false
}

// Action is an immutable terminal operation together with its operands.
// Only the operand fields used by Kind are set, so actions are comparable
// with ==.
type Action struct {
	Kind      ActionKind
	Column    uint16 // MoveCursorTo, SetTerminalSize
	Row       uint16 // MoveCursorTo, SetTerminalSize
	Count     uint16 // ScrollUp, ScrollDown
	Clear     ClearType
	Color     Color
	Attribute Attribute
}

// Action constructors.

func MoveCursorTo(column, row uint16) Action {
	return Action{Kind: ActMoveCursorTo, Column: column, Row: row}
}

func HideCursor() Action      { return Action{Kind: ActHideCursor} }
func ShowCursor() Action      { return Action{Kind: ActShowCursor} }
func EnableBlinking() Action  { return Action{Kind: ActEnableBlinking} }
func DisableBlinking() Action { return Action{Kind: ActDisableBlinking} }

func ClearTerminal(t ClearType) Action {
	return Action{Kind: ActClearTerminal, Clear: t}
}

func SetTerminalSize(columns, rows uint16) Action {
	return Action{Kind: ActSetTerminalSize, Column: columns, Row: rows}
}

func ScrollUp(n uint16) Action   { return Action{Kind: ActScrollUp, Count: n} }
func ScrollDown(n uint16) Action { return Action{Kind: ActScrollDown, Count: n} }

func EnableRawMode() Action        { return Action{Kind: ActEnableRawMode} }
func DisableRawMode() Action       { return Action{Kind: ActDisableRawMode} }
func EnterAlternateScreen() Action { return Action{Kind: ActEnterAlternateScreen} }
func LeaveAlternateScreen() Action { return Action{Kind: ActLeaveAlternateScreen} }
func EnableMouseCapture() Action   { return Action{Kind: ActEnableMouseCapture} }
func DisableMouseCapture() Action  { return Action{Kind: ActDisableMouseCapture} }

func SetForegroundColor(c Color) Action {
	return Action{Kind: ActSetForegroundColor, Color: c}
}

func SetBackgroundColor(c Color) Action {
	return Action{Kind: ActSetBackgroundColor, Color: c}
}

func SetAttribute(a Attribute) Action {
	return Action{Kind: ActSetAttribute, Attribute: a}
}

func ResetColor() Action { return Action{Kind: ActResetColor} }

// Inverse returns the action that undoes a mode action.
func (a Action) Inverse() (Action, bool) {
	switch a.Kind {
	case ActEnableRawMode:
		return DisableRawMode(), true
	case ActDisableRawMode:
		return EnableRawMode(), true
	case ActEnterAlternateScreen:
		return LeaveAlternateScreen(), true
	case ActLeaveAlternateScreen:
		return EnterAlternateScreen(), true
	case ActEnableMouseCapture:
		return DisableMouseCapture(), true
	case ActDisableMouseCapture:
		return EnableMouseCapture(), true
	case ActShowCursor:
		return HideCursor(), true
	case ActHideCursor:
		return ShowCursor(), true
	}
	return Action{}, false
}

// String returns the variant with its operands, e.g. "MoveCursorTo(3, 4)".
func (a Action) String() string {
	switch a.Kind {
	case ActMoveCursorTo, ActSetTerminalSize:
		return fmt.Sprintf("%s(%d, %d)", a.Kind, a.Column, a.Row)
	case ActScrollUp, ActScrollDown:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Count)
	case ActClearTerminal:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Clear)
	case ActSetForegroundColor, ActSetBackgroundColor:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Color)
	case ActSetAttribute:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Attribute)
	default:
		return a.Kind.String()
	}
}

package core

import (
	"fmt"
	"time"
)

// ValueKind identifies a terminal query.
type ValueKind uint8

const (
	ValTerminalSize ValueKind = iota
	ValCursorPosition
	ValEvent
)

func (k ValueKind) String() string {
	switch k {
	case ValTerminalSize:
		return "TerminalSize"
	case ValCursorPosition:
		return "CursorPosition"
	case ValEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// Value is a query request. For event queries Timeout bounds the wait
// when Bounded is set; otherwise the query blocks until input arrives.
type Value struct {
	Kind    ValueKind
	Timeout time.Duration
	Bounded bool
}

// TerminalSize queries the terminal geometry in (columns, rows).
func TerminalSize() Value {
	return Value{Kind: ValTerminalSize}
}

// CursorPosition queries the zero-based cursor position in (column, row).
func CursorPosition() Value {
	return Value{Kind: ValCursorPosition}
}

// PollEvent queries the next input event, waiting at most d.
func PollEvent(d time.Duration) Value {
	return Value{Kind: ValEvent, Timeout: d, Bounded: true}
}

// ReadEvent queries the next input event, blocking until one arrives.
func ReadEvent() Value {
	return Value{Kind: ValEvent}
}

// TimeoutMillis converts the event wait into the curses convention:
// -1 blocks, 0 polls, n>0 waits n milliseconds.
func (v Value) TimeoutMillis() int {
	if !v.Bounded {
		return -1
	}
	if v.Timeout <= 0 {
		return 0
	}
	ms := int(v.Timeout / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	return ms
}

// Retrieved is the response to a Value query. Event is nil when an
// event query timed out.
type Retrieved struct {
	Kind    ValueKind
	Columns uint16
	Rows    uint16
	Column  uint16
	Row     uint16
	Event   *Event
}

// SizeResult builds a TerminalSize response.
func SizeResult(columns, rows uint16) Retrieved {
	return Retrieved{Kind: ValTerminalSize, Columns: columns, Rows: rows}
}

// PositionResult builds a CursorPosition response.
func PositionResult(column, row uint16) Retrieved {
	return Retrieved{Kind: ValCursorPosition, Column: column, Row: row}
}

// EventResult builds an Event response. A nil event means timeout.
func EventResult(ev *Event) Retrieved {
	return Retrieved{Kind: ValEvent, Event: ev}
}

func (r Retrieved) String() string {
	switch r.Kind {
	case ValTerminalSize:
		return fmt.Sprintf("TerminalSize(%d, %d)", r.Columns, r.Rows)
	case ValCursorPosition:
		return fmt.Sprintf("CursorPosition(%d, %d)", r.Column, r.Row)
	default:
		if r.Event == nil {
			return "Event(None)"
		}
		return "Event(" + r.Event.String() + ")"
	}
}

package backend

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dshills/termctl/internal/core"
)

// Recorder is an in-memory Backend for tests. It keeps staged and
// flushed actions apart so callers can observe exactly what a flush
// committed, and applies mode actions immediately like a real driver.
type Recorder struct {
	mu sync.Mutex

	cols, rows uint16
	col, row   uint16

	staged      []core.Action
	flushed     []core.Action
	modes       []core.Action
	stagedText  strings.Builder
	flushedText strings.Builder
	flushes     int

	rawMode      bool
	altScreen    bool
	mouseCapture bool

	unsupported map[core.ActionKind]bool
	flushErr    error

	events chan core.Event
	done   chan struct{}
	closed bool
}

// NewRecorder creates a recorder reporting a cols x rows terminal.
func NewRecorder(cols, rows uint16) *Recorder {
	return &Recorder{
		cols:        cols,
		rows:        rows,
		unsupported: make(map[core.ActionKind]bool),
		events:      make(chan core.Event, 100),
		done:        make(chan struct{}),
	}
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Batch(a core.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return core.ErrClosed
	}
	if r.unsupported[a.Kind] {
		return core.NewActionNotSupported(r.Name(), a)
	}

	if a.Kind.IsMode() {
		r.applyMode(a)
		r.modes = append(r.modes, a)
		return nil
	}

	switch a.Kind {
	case core.ActMoveCursorTo:
		r.col, r.row = a.Column, a.Row
	case core.ActSetTerminalSize:
		r.cols, r.rows = a.Column, a.Row
	}
	r.staged = append(r.staged, a)
	return nil
}

func (r *Recorder) applyMode(a core.Action) {
	switch a.Kind {
	case core.ActEnableRawMode:
		r.rawMode = true
	case core.ActDisableRawMode:
		r.rawMode = false
	case core.ActEnterAlternateScreen:
		r.altScreen = true
	case core.ActLeaveAlternateScreen:
		r.altScreen = false
	case core.ActEnableMouseCapture:
		r.mouseCapture = true
	case core.ActDisableMouseCapture:
		r.mouseCapture = false
	}
}

func (r *Recorder) FlushBatch() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return core.ErrClosed
	}
	if r.flushErr != nil {
		return fmt.Errorf("%w: %v", core.ErrFlushFailed, r.flushErr)
	}

	r.flushed = append(r.flushed, r.staged...)
	r.staged = r.staged[:0]
	r.flushedText.WriteString(r.stagedText.String())
	r.stagedText.Reset()
	r.flushes++
	return nil
}

func (r *Recorder) Get(v core.Value) (core.Retrieved, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return core.Retrieved{}, core.ErrClosed
	}
	switch v.Kind {
	case core.ValTerminalSize:
		defer r.mu.Unlock()
		return core.SizeResult(r.cols, r.rows), nil
	case core.ValCursorPosition:
		defer r.mu.Unlock()
		return core.PositionResult(r.col, r.row), nil
	}
	r.mu.Unlock()

	var timeout <-chan time.Time
	if v.Bounded {
		timer := time.NewTimer(v.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case ev := <-r.events:
		return core.EventResult(&ev), nil
	case <-timeout:
		return core.EventResult(nil), nil
	case <-r.done:
		return core.Retrieved{}, core.ErrClosed
	}
}

func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, core.ErrClosed
	}
	r.stagedText.Write(p)
	return len(p), nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	close(r.done)
	return nil
}

// Push queues an input event for Get.
func (r *Recorder) Push(ev core.Event) {
	select {
	case r.events <- ev:
	default:
	}
}

// SetUnsupported makes Batch reject the given action kinds.
func (r *Recorder) SetUnsupported(kinds ...core.ActionKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		r.unsupported[k] = true
	}
}

// FailFlush makes FlushBatch fail with err until cleared with nil.
func (r *Recorder) FailFlush(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushErr = err
}

// Staged returns the actions waiting for a flush.
func (r *Recorder) Staged() []core.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Action(nil), r.staged...)
}

// Flushed returns every committed render action, oldest first.
func (r *Recorder) Flushed() []core.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Action(nil), r.flushed...)
}

// Modes returns every mode action applied, oldest first.
func (r *Recorder) Modes() []core.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Action(nil), r.modes...)
}

// Text returns committed text output.
func (r *Recorder) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushedText.String()
}

// Flushes returns the number of successful flushes.
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flushes
}

// RawMode reports whether raw mode is on.
func (r *Recorder) RawMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rawMode
}

// AlternateScreen reports whether the alternate screen is active.
func (r *Recorder) AlternateScreen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.altScreen
}

// MouseCapture reports whether mouse capture is on.
func (r *Recorder) MouseCapture() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mouseCapture
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

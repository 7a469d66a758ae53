// Package backend defines the contract terminal drivers implement and
// selects a driver at composition time.
package backend

import (
	"io"

	"github.com/dshills/termctl/internal/core"
)

// Backend is a terminal driver. A Backend is not safe for concurrent use;
// Terminal serializes access to it.
type Backend interface {
	// Name identifies the driver in errors and logs.
	Name() string

	// Batch stages an action. Render actions (cursor, color, attributes,
	// clearing, scrolling) become visible on FlushBatch. Mode actions
	// (raw mode, alternate screen, mouse capture) take effect before
	// Batch returns.
	Batch(a core.Action) error

	// FlushBatch commits all staged render state to the terminal in one
	// write.
	FlushBatch() error

	// Get answers a query. An event query that times out returns a
	// Retrieved with a nil Event.
	Get(v core.Value) (core.Retrieved, error)

	// Write prints text at the cursor with the current style. Like other
	// render actions it becomes visible on FlushBatch.
	io.Writer

	// Close releases the driver. Restoring terminal modes is the caller's
	// job; Close only tears down the driver's own resources.
	Close() error
}

// Act stages a and flushes immediately.
func Act(b Backend, a core.Action) error {
	if err := b.Batch(a); err != nil {
		return err
	}
	return b.FlushBatch()
}

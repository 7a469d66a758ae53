package curses

import "io"

// TTY is the terminal device a Screen drives.
type TTY interface {
	io.Writer

	// ReadTimeout reads available input into p, waiting at most ms
	// milliseconds (-1 waits indefinitely). It returns 0, nil when the
	// wait expires or a resize is pending.
	ReadTimeout(p []byte, ms int) (int, error)

	// Size returns the device geometry in columns and rows.
	Size() (cols, rows int, err error)

	// Resized reports, and clears, a pending window size change.
	Resized() bool

	// SetRaw toggles unbuffered input without signal generation.
	SetRaw(on bool) error

	// SetEcho toggles echo of typed characters.
	SetEcho(on bool) error

	// SetNL toggles carriage-return/newline translation.
	SetNL(on bool) error

	// Restore returns the device to the state it had when opened.
	Restore() error

	// Close releases the device. Devices borrowed from the process
	// (stdin/stdout) are restored but not closed.
	Close() error
}

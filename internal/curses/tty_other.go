//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package curses

import (
	"errors"
	"runtime"
)

var errUnsupportedPlatform = errors.New("terminal devices are not supported on " + runtime.GOOS)

// OpenTTY is not available on this platform.
func OpenTTY(path string) (TTY, error) {
	return nil, errUnsupportedPlatform
}

// StdTTY is not available on this platform.
func StdTTY() (TTY, error) {
	return nil, errUnsupportedPlatform
}

// StderrTTY is not available on this platform.
func StderrTTY() (TTY, error) {
	return nil, errUnsupportedPlatform
}

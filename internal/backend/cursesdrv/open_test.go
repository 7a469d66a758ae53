package cursesdrv

import (
	"testing"

	"github.com/dshills/termctl/internal/curses"
)

func TestOpenTTY_Selection(t *testing.T) {
	var opened []string
	origStd, origStderr, origDevice := openStdTTY, openStderrTTY, openDeviceTTY
	t.Cleanup(func() {
		openStdTTY, openStderrTTY, openDeviceTTY = origStd, origStderr, origDevice
	})
	openStdTTY = func() (curses.TTY, error) {
		opened = append(opened, "stdio")
		return &nullTTY{}, nil
	}
	openStderrTTY = func() (curses.TTY, error) {
		opened = append(opened, "stderr")
		return &nullTTY{}, nil
	}
	openDeviceTTY = func(path string) (curses.TTY, error) {
		opened = append(opened, path)
		return &nullTTY{}, nil
	}

	tests := []struct {
		path     string
		noTerm   bool
		expected string
	}{
		{"", false, "/dev/tty"},
		{"/dev/pts/3", false, "/dev/pts/3"},
		{StdioPath, false, "stdio"},
		{StderrPath, false, "stderr"},
		{StderrPath, true, "stderr"},
		{"/dev/pts/3", true, "stdio"},
	}

	for _, tt := range tests {
		opened = nil
		if _, err := openTTY(tt.path, tt.noTerm); err != nil {
			t.Fatalf("openTTY(%q, %v) failed: %v", tt.path, tt.noTerm, err)
		}
		if len(opened) != 1 || opened[0] != tt.expected {
			t.Errorf("openTTY(%q, %v): expected %s, got %v", tt.path, tt.noTerm, tt.expected, opened)
		}
	}
}

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package curses

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollSlice bounds each poll so pending resizes are noticed while a read
// blocks.
const pollSlice = 50 * time.Millisecond

type unixTTY struct {
	in, out *os.File
	inFd    int
	outFd   int
	owned   bool

	saved   *term.State
	resized atomic.Bool

	sigCh    chan os.Signal
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// OpenTTY opens the terminal device at path for both input and output.
func OpenTTY(path string) (TTY, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	t, err := newUnixTTY(f, f, true)
	if err != nil {
		f.Close()
		return nil, err
	}
	return t, nil
}

// StdTTY uses the process's standard input and output.
func StdTTY() (TTY, error) {
	return newUnixTTY(os.Stdin, os.Stdout, false)
}

// StderrTTY reads the process's standard input and writes to standard
// error, leaving standard output free for the program's own data.
func StderrTTY() (TTY, error) {
	return newUnixTTY(os.Stdin, os.Stderr, false)
}

func newUnixTTY(in, out *os.File, owned bool) (*unixTTY, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, fmt.Errorf("%s is not a terminal", in.Name())
	}

	saved, err := term.GetState(inFd)
	if err != nil {
		return nil, fmt.Errorf("reading terminal state: %w", err)
	}

	t := &unixTTY{
		in:     in,
		out:    out,
		inFd:   inFd,
		outFd:  int(out.Fd()),
		owned:  owned,
		saved:  saved,
		sigCh:  make(chan os.Signal, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go t.watchResize()

	return t, nil
}

func (t *unixTTY) watchResize() {
	defer close(t.doneCh)
	for {
		select {
		case <-t.stopCh:
			return
		case <-t.sigCh:
			t.resized.Store(true)
		}
	}
}

func (t *unixTTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *unixTTY) ReadTimeout(p []byte, ms int) (int, error) {
	var deadline time.Time
	if ms >= 0 {
		deadline = time.Now().Add(time.Duration(ms) * time.Millisecond)
	}

	for {
		if t.resized.Load() {
			return 0, nil
		}

		wait := pollSlice
		if ms >= 0 {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return 0, nil
			}
			if remaining < wait {
				wait = remaining
			}
		}

		fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(wait/time.Millisecond))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 0 {
			if ms == 0 {
				return 0, nil
			}
			continue
		}

		rn, err := unix.Read(t.inFd, p)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		return rn, nil
	}
}

func (t *unixTTY) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return term.GetSize(t.inFd)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (t *unixTTY) Resized() bool {
	return t.resized.Swap(false)
}

func (t *unixTTY) SetRaw(on bool) error {
	return t.modify(func(tio *unix.Termios) {
		if on {
			tio.Iflag &^= unix.IXON | unix.BRKINT | unix.ISTRIP
			tio.Lflag &^= unix.ICANON | unix.ISIG | unix.IEXTEN
			tio.Cc[unix.VMIN] = 1
			tio.Cc[unix.VTIME] = 0
		} else {
			tio.Iflag |= unix.IXON | unix.BRKINT
			tio.Lflag |= unix.ICANON | unix.ISIG | unix.IEXTEN
		}
	})
}

func (t *unixTTY) SetEcho(on bool) error {
	return t.modify(func(tio *unix.Termios) {
		if on {
			tio.Lflag |= unix.ECHO
		} else {
			tio.Lflag &^= unix.ECHO
		}
	})
}

func (t *unixTTY) SetNL(on bool) error {
	return t.modify(func(tio *unix.Termios) {
		if on {
			tio.Iflag |= unix.ICRNL
			tio.Oflag |= unix.ONLCR
		} else {
			tio.Iflag &^= unix.ICRNL
			tio.Oflag &^= unix.ONLCR
		}
	})
}

func (t *unixTTY) modify(fn func(*unix.Termios)) error {
	tio, err := unix.IoctlGetTermios(t.inFd, ioctlGetTermios)
	if err != nil {
		return err
	}
	fn(tio)
	return unix.IoctlSetTermios(t.inFd, ioctlSetTermios, tio)
}

func (t *unixTTY) Restore() error {
	return term.Restore(t.inFd, t.saved)
}

func (t *unixTTY) Close() error {
	t.stopOnce.Do(func() {
		signal.Stop(t.sigCh)
		close(t.stopCh)
		<-t.doneCh
	})

	err := t.Restore()
	if t.owned {
		if cerr := t.in.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

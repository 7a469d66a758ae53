// Package terminal provides Terminal, the single point of mutable access
// to a terminal driver.
//
// A Terminal admits one holder at a time. LockMut is a try-lock: a second
// caller fails immediately with core.ErrLockContention rather than
// waiting. The convenience methods Act, Batch, FlushBatch, Get and Write
// take and release the lock themselves; use a Lock to group several
// operations.
//
//	t, err := terminal.Stdout()
//	if err != nil {
//	    return err
//	}
//	defer t.Close()
//
//	lock, err := t.LockMut()
//	if err != nil {
//	    return err
//	}
//	defer lock.Unlock()
//
//	lock.Batch(core.MoveCursorTo(0, 0))
//	lock.Batch(core.SetForegroundColor(core.ColorRed))
//	fmt.Fprint(lock, "hello")
//	lock.FlushBatch()
package terminal

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/termctl/internal/backend"
	"github.com/dshills/termctl/internal/backend/cursesdrv"
	"github.com/dshills/termctl/internal/config"
	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/logging"
)

// Terminal owns a backend and serializes access to it.
type Terminal struct {
	id      string
	backend backend.Backend
	logger  *logging.Logger

	mu     sync.Mutex
	closed atomic.Bool

	// Modes entered through this terminal, undone on Close. Guarded by mu.
	rawMode      bool
	altScreen    bool
	mouseCapture bool
}

// New wraps an open backend. A nil logger uses logging.Default.
func New(b backend.Backend, logger *logging.Logger) *Terminal {
	if logger == nil {
		logger = logging.Default()
	}
	id := uuid.New().String()
	return &Terminal{
		id:      id,
		backend: b,
		logger: logger.WithFields(map[string]any{
			"component": "terminal",
			"terminal":  id,
		}),
	}
}

// Stdout opens the default driver on the process's standard streams.
func Stdout() (*Terminal, error) {
	return openPath(cursesdrv.StdioPath)
}

// Stderr opens the default driver drawing on standard error. Input is
// still read from standard input.
func Stderr() (*Terminal, error) {
	return openPath(cursesdrv.StderrPath)
}

func openPath(path string) (*Terminal, error) {
	b, err := backend.Open(backend.Options{Name: backend.Curses, TTYPath: path})
	if err != nil {
		return nil, err
	}
	return New(b, nil), nil
}

// Open creates a terminal from configuration: it opens the configured
// backend, then applies the startup modes and colors.
func Open(cfg *config.Config, logger *logging.Logger) (*Terminal, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}

	b, err := backend.Open(backend.Options{
		Name:       cfg.Backend,
		TTYPath:    cfg.Terminal.TTY,
		EscDelay:   cfg.EscDelayDuration(),
		Colors:     cfg.Colors.Depth,
		PairPolicy: cfg.Colors.PairPolicy,
		Logger:     logger.WithComponent(cfg.Backend),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	t := New(b, logger)
	if err := t.applyStartup(cfg); err != nil {
		_ = t.Close()
		return nil, err
	}
	t.logger.Info("opened %s backend", b.Name())
	return t, nil
}

func (t *Terminal) applyStartup(cfg *config.Config) error {
	lock, err := t.LockMut()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	var actions []core.Action
	if cfg.Terminal.RawMode {
		actions = append(actions, core.EnableRawMode())
	}
	if cfg.Terminal.AlternateScreen {
		actions = append(actions, core.EnterAlternateScreen())
	}
	if cfg.Terminal.MouseCapture {
		actions = append(actions, core.EnableMouseCapture())
	}
	if fg, ok := cfg.ForegroundColor(); ok {
		actions = append(actions, core.SetForegroundColor(fg))
	}
	if bg, ok := cfg.BackgroundColor(); ok {
		actions = append(actions, core.SetBackgroundColor(bg))
	}
	if len(actions) == 0 {
		return nil
	}

	for _, a := range actions {
		if err := lock.Batch(a); err != nil {
			return fmt.Errorf("startup %s: %w", a, err)
		}
	}
	return lock.FlushBatch()
}

// ID returns the terminal's unique identifier.
func (t *Terminal) ID() string {
	return t.id
}

// Backend returns the driver name.
func (t *Terminal) Backend() string {
	return t.backend.Name()
}

// LockMut takes exclusive access without waiting. It fails with
// core.ErrLockContention if another Lock is live, or core.ErrClosed after
// Close.
func (t *Terminal) LockMut() (*Lock, error) {
	if t.closed.Load() {
		return nil, core.ErrClosed
	}
	if !t.mu.TryLock() {
		return nil, core.ErrLockContention
	}
	if t.closed.Load() {
		t.mu.Unlock()
		return nil, core.ErrClosed
	}
	return &Lock{t: t}, nil
}

// withLock runs fn under a temporary lock.
func (t *Terminal) withLock(fn func(l *Lock) error) error {
	l, err := t.LockMut()
	if err != nil {
		return err
	}
	defer l.Unlock()
	return fn(l)
}

// Act stages a and flushes immediately.
func (t *Terminal) Act(a core.Action) error {
	return t.withLock(func(l *Lock) error { return l.Act(a) })
}

// Batch stages a. Mode actions take effect at once; render actions
// become visible on FlushBatch.
func (t *Terminal) Batch(a core.Action) error {
	return t.withLock(func(l *Lock) error { return l.Batch(a) })
}

// FlushBatch commits staged render state.
func (t *Terminal) FlushBatch() error {
	return t.withLock(func(l *Lock) error { return l.FlushBatch() })
}

// Get answers a query.
func (t *Terminal) Get(v core.Value) (core.Retrieved, error) {
	var r core.Retrieved
	err := t.withLock(func(l *Lock) error {
		var err error
		r, err = l.Get(v)
		return err
	})
	return r, err
}

// Write stages text at the cursor. It becomes visible on FlushBatch.
func (t *Terminal) Write(p []byte) (int, error) {
	var n int
	err := t.withLock(func(l *Lock) error {
		var err error
		n, err = l.Write(p)
		return err
	})
	return n, err
}

// Close restores every mode this terminal entered, in the order mouse
// capture, alternate screen, raw mode, then closes the backend. Restore
// failures are logged and do not stop the teardown. Close fails with
// core.ErrLockContention while a Lock is live.
func (t *Terminal) Close() error {
	if !t.mu.TryLock() {
		if t.closed.Load() {
			return nil
		}
		return core.ErrLockContention
	}
	defer t.mu.Unlock()

	if t.closed.Swap(true) {
		return nil
	}

	restore := []struct {
		active *bool
		action core.Action
	}{
		{&t.mouseCapture, core.DisableMouseCapture()},
		{&t.altScreen, core.LeaveAlternateScreen()},
		{&t.rawMode, core.DisableRawMode()},
	}
	for _, r := range restore {
		if !*r.active {
			continue
		}
		*r.active = false
		if err := t.backend.Batch(r.action); err != nil {
			if core.IsNotSupported(err) {
				t.logger.Debug("teardown %s: %v", r.action, err)
			} else {
				t.logger.Warn("teardown %s: %v", r.action, err)
			}
		}
	}
	if err := t.backend.FlushBatch(); err != nil {
		t.logger.Warn("teardown flush: %v", err)
	}

	if err := t.backend.Close(); err != nil {
		return fmt.Errorf("close %s backend: %w", t.backend.Name(), err)
	}
	t.logger.Debug("closed")
	return nil
}

// trackMode records a successfully applied mode action. Caller holds mu.
func (t *Terminal) trackMode(a core.Action) {
	switch a.Kind {
	case core.ActEnableRawMode:
		t.rawMode = true
	case core.ActDisableRawMode:
		t.rawMode = false
	case core.ActEnterAlternateScreen:
		t.altScreen = true
	case core.ActLeaveAlternateScreen:
		t.altScreen = false
	case core.ActEnableMouseCapture:
		t.mouseCapture = true
	case core.ActDisableMouseCapture:
		t.mouseCapture = false
	}
}

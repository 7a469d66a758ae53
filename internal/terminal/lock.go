package terminal

import (
	"errors"
	"fmt"

	"github.com/dshills/termctl/internal/core"
)

// ErrLockReleased is returned by a Lock used after Unlock.
var ErrLockReleased = errors.New("terminal lock already released")

// Lock is exclusive access to a Terminal, obtained from LockMut. Release
// it with Unlock, usually deferred right after LockMut succeeds. A Lock
// must not be shared between goroutines.
type Lock struct {
	t        *Terminal
	released bool
}

// Unlock releases access. Calling it more than once is a no-op.
func (l *Lock) Unlock() {
	if l.released {
		return
	}
	l.released = true
	l.t.mu.Unlock()
}

func (l *Lock) check() error {
	if l.released {
		return ErrLockReleased
	}
	return nil
}

// Act stages a and flushes immediately.
func (l *Lock) Act(a core.Action) error {
	if err := l.Batch(a); err != nil {
		return err
	}
	return l.FlushBatch()
}

// Batch stages a.
func (l *Lock) Batch(a core.Action) error {
	if err := l.check(); err != nil {
		return err
	}
	if err := l.t.backend.Batch(a); err != nil {
		return err
	}
	if a.Kind.IsMode() {
		l.t.trackMode(a)
		l.t.logger.Debug("mode %s", a)
	}
	return nil
}

// FlushBatch commits staged render state.
func (l *Lock) FlushBatch() error {
	if err := l.check(); err != nil {
		return err
	}
	return l.t.backend.FlushBatch()
}

// Get answers a query. An event query that times out returns a nil Event.
func (l *Lock) Get(v core.Value) (core.Retrieved, error) {
	if err := l.check(); err != nil {
		return core.Retrieved{}, err
	}
	return l.t.backend.Get(v)
}

// Write stages text at the cursor.
func (l *Lock) Write(p []byte) (int, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	return l.t.backend.Write(p)
}

// EnterMode applies a mode action and returns a guard that undoes it.
// It accepts raw mode, alternate screen, mouse capture and cursor
// visibility actions.
func (l *Lock) EnterMode(a core.Action) (*ModeGuard, error) {
	inverse, ok := a.Inverse()
	if !ok {
		return nil, fmt.Errorf("%s has no inverse", a)
	}
	if err := l.Act(a); err != nil {
		return nil, err
	}
	return &ModeGuard{lock: l, entered: a, inverse: inverse}, nil
}

// ModeGuard undoes a mode entered with Lock.EnterMode.
type ModeGuard struct {
	lock     *Lock
	entered  core.Action
	inverse  core.Action
	restored bool
}

// Entered returns the action the guard undoes.
func (g *ModeGuard) Entered() core.Action {
	return g.entered
}

// Restore applies the inverse action. Only the first call has an effect.
// It runs under the original Lock while that is held and takes a fresh
// lock otherwise.
func (g *ModeGuard) Restore() error {
	if g.restored {
		return nil
	}
	g.restored = true

	if !g.lock.released {
		return g.lock.Act(g.inverse)
	}
	return g.lock.t.withLock(func(l *Lock) error {
		return l.Act(g.inverse)
	})
}

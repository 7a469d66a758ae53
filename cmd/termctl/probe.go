package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dshills/termctl/internal/core"
	"github.com/dshills/termctl/internal/logging"
	"github.com/dshills/termctl/internal/terminal"
)

const pollInterval = 250 * time.Millisecond

// probe draws a header and echoes input events, one per line, scrolling
// back to the top when the screen fills.
type probe struct {
	term   *terminal.Terminal
	logger *logging.Logger

	cols, rows uint16
	line       uint16
}

func newProbe(t *terminal.Terminal, logger *logging.Logger) *probe {
	return &probe{term: t, logger: logger}
}

func (p *probe) run(signals <-chan os.Signal) error {
	if err := p.refreshSize(); err != nil {
		return err
	}
	if err := p.header(); err != nil {
		return err
	}

	for {
		select {
		case sig := <-signals:
			p.logger.Info("received %s", sig)
			return nil
		default:
		}

		got, err := p.term.Get(core.PollEvent(pollInterval))
		if err != nil {
			return fmt.Errorf("poll: %w", err)
		}
		if got.Event == nil {
			continue
		}
		if quit(*got.Event) {
			return nil
		}
		if err := p.show(*got.Event); err != nil {
			return err
		}
	}
}

func (p *probe) refreshSize() error {
	got, err := p.term.Get(core.TerminalSize())
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	p.cols, p.rows = got.Columns, got.Rows
	return nil
}

func (p *probe) header() error {
	lock, err := p.term.LockMut()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	steps := []core.Action{
		core.ClearTerminal(core.ClearAll),
		core.MoveCursorTo(0, 0),
		core.SetAttribute(core.AttrBold),
	}
	for _, a := range steps {
		if err := lock.Batch(a); err != nil && !core.IsNotSupported(err) {
			return err
		}
	}
	fmt.Fprintf(lock, "termctl %s  %dx%d  (q to quit)", p.term.Backend(), p.cols, p.rows)
	if err := lock.Batch(core.SetAttribute(core.AttrReset)); err != nil && !core.IsNotSupported(err) {
		return err
	}
	p.line = 2
	return lock.FlushBatch()
}

func (p *probe) show(ev core.Event) error {
	if ev.Kind == core.EventResize {
		if err := p.refreshSize(); err != nil {
			return err
		}
		return p.header()
	}
	if p.rows > 0 && p.line >= p.rows {
		if err := p.header(); err != nil {
			return err
		}
	}

	lock, err := p.term.LockMut()
	if err != nil {
		return err
	}
	defer lock.Unlock()

	if err := lock.Batch(core.MoveCursorTo(0, p.line)); err != nil {
		return err
	}
	if err := lock.Batch(core.ClearTerminal(core.ClearUntilNewLine)); err != nil && !core.IsNotSupported(err) {
		return err
	}
	if err := lock.Batch(core.SetForegroundColor(eventColor(ev))); err != nil {
		return err
	}
	fmt.Fprint(lock, ev.String())
	if err := lock.Batch(core.ResetColor()); err != nil {
		return err
	}
	p.line++
	p.logger.Debug("event %s", ev)

	err = lock.FlushBatch()
	if errors.Is(err, core.ErrFlushFailed) {
		p.logger.Warn("%v", err)
		return nil
	}
	return err
}

func eventColor(ev core.Event) core.Color {
	switch ev.Kind {
	case core.EventKey:
		return core.ColorGreen
	case core.EventMouse:
		return core.ColorCyan
	default:
		return core.ColorRed
	}
}

// quit reports whether ev ends the probe: q, or Ctrl-C in raw mode.
func quit(ev core.Event) bool {
	if ev.Kind != core.EventKey {
		return false
	}
	k := ev.Key
	if k.Code == core.Char('q') && k.Modifiers.IsEmpty() {
		return true
	}
	return k.Code == core.Char('c') && k.Modifiers.Contains(core.ModControl)
}

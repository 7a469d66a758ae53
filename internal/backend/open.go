package backend

import (
	"fmt"
	"time"

	"github.com/dshills/termctl/internal/backend/cursesdrv"
	"github.com/dshills/termctl/internal/backend/tcellterm"
	"github.com/dshills/termctl/internal/logging"
)

// Driver names accepted by Open.
const (
	Curses = cursesdrv.Name
	Tcell  = tcellterm.Name
)

// Options selects and configures a driver.
type Options struct {
	// Name is Curses or Tcell. Empty selects Curses.
	Name string

	// TTYPath, Term, EscDelay, Colors and PairPolicy apply to the curses
	// driver only.
	TTYPath    string
	Term       string
	EscDelay   time.Duration
	Colors     int
	PairPolicy string

	Logger *logging.Logger
}

// Names lists the available drivers.
func Names() []string {
	return []string{Curses, Tcell}
}

// Open creates the driver named in opts.
func Open(opts Options) (Backend, error) {
	switch opts.Name {
	case "", Curses:
		policy, err := cursesdrv.ParsePairPolicy(opts.PairPolicy)
		if err != nil {
			return nil, err
		}
		return cursesdrv.Open(cursesdrv.Options{
			TTYPath:    opts.TTYPath,
			Term:       opts.Term,
			EscDelay:   opts.EscDelay,
			Colors:     opts.Colors,
			PairPolicy: policy,
			Logger:     opts.Logger,
		})
	case Tcell:
		return tcellterm.Open(tcellterm.Options{Logger: opts.Logger})
	default:
		return nil, fmt.Errorf("unknown backend %q (available: %v)", opts.Name, Names())
	}
}

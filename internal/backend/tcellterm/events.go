package tcellterm

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/termctl/internal/core"
)

// nextEvent waits for an event, preferring a pending resize.
func (d *Driver) nextEvent(v core.Value) (core.Retrieved, error) {
	select {
	case ev := <-d.resizes:
		return core.EventResult(&ev), nil
	default:
	}

	var timeout <-chan time.Time
	if v.Bounded {
		timer := time.NewTimer(v.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case ev := <-d.resizes:
		return core.EventResult(&ev), nil
	case ev := <-d.events:
		return core.EventResult(&ev), nil
	case <-timeout:
		return core.EventResult(nil), nil
	case <-d.done:
		return core.Retrieved{}, core.ErrClosed
	}
}

func (d *Driver) convert(ev tcell.Event) (core.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKey(e), true
	case *tcell.EventMouse:
		x, y := e.Position()
		return d.mouse.convert(e.Buttons(), uint16(x), uint16(y), convertMod(e.Modifiers()))
	default:
		return core.Event{}, false
	}
}

var namedKeys = map[tcell.Key]core.KeyKind{
	tcell.KeyUp:      core.KeyUp,
	tcell.KeyDown:    core.KeyDown,
	tcell.KeyLeft:    core.KeyLeft,
	tcell.KeyRight:   core.KeyRight,
	tcell.KeyHome:    core.KeyHome,
	tcell.KeyEnd:     core.KeyEnd,
	tcell.KeyPgUp:    core.KeyPageUp,
	tcell.KeyPgDn:    core.KeyPageDown,
	tcell.KeyInsert:  core.KeyInsert,
	tcell.KeyDelete:  core.KeyDelete,
	tcell.KeyBacktab: core.KeyBackTab,
}

// convertKey maps a tcell key. Control keys that alias Enter, Tab,
// Backspace and Escape are matched as those keys first.
func convertKey(e *tcell.EventKey) core.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		return core.KeyPress(core.Char(e.Rune()), mods)
	case k == tcell.KeyEnter:
		return core.KeyPress(core.Code(core.KeyEnter), mods)
	case k == tcell.KeyTab:
		return core.KeyPress(core.Code(core.KeyTab), mods)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return core.KeyPress(core.Code(core.KeyBackspace), mods)
	case k == tcell.KeyEscape:
		return core.KeyPress(core.Code(core.KeyEsc), mods)
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		return core.KeyPress(core.F(uint8(k-tcell.KeyF1+1)), mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return core.KeyPress(core.Char(rune('a'+k-tcell.KeyCtrlA)), mods|core.ModControl)
	}

	if kind, ok := namedKeys[k]; ok {
		return core.KeyPress(core.Code(kind), mods)
	}
	return core.UnknownEvent()
}

func convertMod(m tcell.ModMask) core.Modifiers {
	var mods core.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= core.ModControl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods |= core.ModAlt
	}
	return mods
}

// mouseTracker turns tcell's button state reports into transitions.
// Only the reader goroutine touches it.
type mouseTracker struct {
	held    core.MouseButton
	holding bool
}

func (t *mouseTracker) convert(b tcell.ButtonMask, col, row uint16, mods core.Modifiers) (core.Event, bool) {
	switch {
	case b&tcell.WheelUp != 0:
		return core.MouseEventOf(core.ScrollUpAt(col, row, mods)), true
	case b&tcell.WheelDown != 0:
		return core.MouseEventOf(core.ScrollDownAt(col, row, mods)), true
	}

	button, pressed := primaryButton(b)
	switch {
	case pressed && t.holding && button == t.held:
		return core.MouseEventOf(core.MouseDragAt(button, col, row, mods)), true
	case pressed:
		t.held, t.holding = button, true
		return core.MouseEventOf(core.MouseDownAt(button, col, row, mods)), true
	case t.holding:
		t.holding = false
		return core.MouseEventOf(core.MouseUpAt(t.held, col, row, mods)), true
	default:
		// Motion with nothing held.
		return core.Event{}, false
	}
}

func primaryButton(b tcell.ButtonMask) (core.MouseButton, bool) {
	switch {
	case b&tcell.Button1 != 0:
		return core.MouseLeft, true
	case b&tcell.Button2 != 0:
		return core.MouseRight, true
	case b&tcell.Button3 != 0:
		return core.MouseMiddle, true
	case b&(tcell.Button4|tcell.Button5|tcell.Button6|tcell.Button7|tcell.Button8) != 0:
		return core.MouseUnknown, true
	default:
		return core.MouseUnknown, false
	}
}

// paletteIndex is the standard palette slot of each named color.
var paletteIndex = map[core.ColorKind]int{
	core.ColorKindBlack:       0,
	core.ColorKindDarkRed:     1,
	core.ColorKindDarkGreen:   2,
	core.ColorKindDarkYellow:  3,
	core.ColorKindDarkBlue:    4,
	core.ColorKindDarkMagenta: 5,
	core.ColorKindDarkCyan:    6,
	core.ColorKindGrey:        7,
	core.ColorKindDarkGrey:    8,
	core.ColorKindRed:         9,
	core.ColorKindGreen:       10,
	core.ColorKindYellow:      11,
	core.ColorKindBlue:        12,
	core.ColorKindMagenta:     13,
	core.ColorKindCyan:        14,
	core.ColorKindWhite:       15,
}

// convertColor maps a color to tcell, which downsamples RGB itself on
// terminals with smaller palettes.
func convertColor(c core.Color) tcell.Color {
	switch c.Kind {
	case core.ColorKindReset:
		return tcell.ColorDefault
	case core.ColorKindRgb:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	case core.ColorKindAnsi:
		return tcell.PaletteColor(int(c.Index))
	}
	if n, ok := paletteIndex[c.Kind]; ok {
		return tcell.PaletteColor(n)
	}
	return tcell.ColorDefault
}

package cursesdrv

import "github.com/dshills/termctl/internal/core"

// Range of key codes probed for terminfo-style modified key names.
const (
	capProbeStart = 512
	capProbeEnd   = 1024
)

var capBaseKeys = map[string]core.KeyKind{
	"DC":  core.KeyDelete,
	"DN":  core.KeyDown,
	"END": core.KeyEnd,
	"HOM": core.KeyHome,
	"IC":  core.KeyInsert,
	"LFT": core.KeyLeft,
	"NXT": core.KeyPageDown,
	"PRV": core.KeyPageUp,
	"RIT": core.KeyRight,
	"UP":  core.KeyUp,
}

var capModifiers = map[byte]core.Modifiers{
	'3': core.ModAlt,
	'4': core.ModAlt | core.ModShift,
	'5': core.ModControl,
	'6': core.ModControl,
	'7': core.ModControl | core.ModAlt,
}

// capTable maps key codes the terminal reports only as distinct symbolic
// names (kUP5 for Ctrl+Up) to key events.
type capTable map[int]core.Event

func buildCapTable(win Window) capTable {
	t := make(capTable)
	for code := capProbeStart; code < capProbeEnd; code++ {
		if ev, ok := parseCapName(win.Keyname(code)); ok {
			t[code] = ev
		}
	}
	return t
}

// parseCapName splits a name such as "kLFT3" into its base key and
// modifier digit.
func parseCapName(name string) (core.Event, bool) {
	if len(name) < 3 || name[0] != 'k' {
		return core.Event{}, false
	}
	kind, ok := capBaseKeys[name[1:len(name)-1]]
	if !ok {
		return core.Event{}, false
	}
	mods, ok := capModifiers[name[len(name)-1]]
	if !ok {
		return core.Event{}, false
	}
	return core.KeyPress(core.Code(kind), mods), true
}

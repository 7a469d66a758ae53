// Package core defines the terminal action and query vocabulary shared by
// every backend driver.
//
// The types in this package are plain values. Backends translate them into
// native calls, and the terminal package routes them through its exclusive
// lock. Nothing here performs I/O.
package core

import "strings"

// Modifiers is a set of keyboard modifier keys.
// The empty set is a valid value meaning "no modifier held".
type Modifiers uint8

const (
	// ModNone is the empty modifier set.
	ModNone Modifiers = 0

	// ModShift indicates the Shift key.
	ModShift Modifiers = 1 << (iota - 1)

	// ModControl indicates the Control key.
	ModControl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
)

// Contains reports whether every modifier in mod is present in m.
func (m Modifiers) Contains(mod Modifiers) bool {
	return m&mod == mod
}

// Union returns the set holding the modifiers of both m and mod.
func (m Modifiers) Union(mod Modifiers) Modifiers {
	return m | mod
}

// Without returns m with the modifiers in mod removed.
func (m Modifiers) Without(mod Modifiers) Modifiers {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifiers) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifiers) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Contains(ModControl) {
		parts = append(parts, "Ctrl")
	}
	if m.Contains(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Contains(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

var modifierNames = map[string]Modifiers{
	"ctrl":    ModControl,
	"control": ModControl,
	"c":       ModControl,
	"alt":     ModAlt,
	"a":       ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
}

// ParseModifiers parses a modifier string like "Ctrl+Alt" or "C-S".
// Unrecognized names are ignored.
func ParseModifiers(s string) Modifiers {
	s = strings.ToLower(s)

	var parts []string
	switch {
	case strings.Contains(s, "+"):
		parts = strings.Split(s, "+")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		parts = []string{s}
	}

	var result Modifiers
	for _, part := range parts {
		if mod, ok := modifierNames[strings.TrimSpace(part)]; ok {
			result = result.Union(mod)
		}
	}
	return result
}

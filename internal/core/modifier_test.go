package core

import "testing"

func TestModifiers_Set(t *testing.T) {
	m := ModControl.Union(ModAlt)

	if !m.Contains(ModControl) || !m.Contains(ModAlt) {
		t.Errorf("expected Ctrl and Alt in %s", m)
	}
	if m.Contains(ModShift) {
		t.Error("did not expect Shift")
	}
	if !m.Contains(ModControl.Union(ModAlt)) {
		t.Error("expected set to contain its own union")
	}
	if m.Contains(ModControl.Union(ModShift)) {
		t.Error("Contains must require every modifier")
	}
	if got := m.Without(ModAlt); got != ModControl {
		t.Errorf("expected Ctrl after Without(Alt), got %s", got)
	}
	if !ModNone.IsEmpty() || m.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestModifiers_String(t *testing.T) {
	tests := []struct {
		mods     Modifiers
		expected string
	}{
		{ModNone, ""},
		{ModShift, "Shift"},
		{ModControl.Union(ModAlt), "Ctrl+Alt"},
		{ModControl.Union(ModAlt).Union(ModShift), "Ctrl+Alt+Shift"},
	}

	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.expected {
			t.Errorf("Modifiers(%d).String() = '%s', expected '%s'", tt.mods, got, tt.expected)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		in       string
		expected Modifiers
	}{
		{"ctrl", ModControl},
		{"Ctrl+Alt", ModControl.Union(ModAlt)},
		{"C-S", ModControl.Union(ModShift)},
		{"shift + option", ModShift.Union(ModAlt)},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ParseModifiers(tt.in); got != tt.expected {
			t.Errorf("ParseModifiers(%q) = %s, expected %s", tt.in, got, tt.expected)
		}
	}
}

package core

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind identifies a color variant.
type ColorKind uint8

const (
	ColorKindReset ColorKind = iota
	ColorKindBlack
	ColorKindDarkGrey
	ColorKindRed
	ColorKindDarkRed
	ColorKindGreen
	ColorKindDarkGreen
	ColorKindYellow
	ColorKindDarkYellow
	ColorKindBlue
	ColorKindDarkBlue
	ColorKindMagenta
	ColorKindDarkMagenta
	ColorKindCyan
	ColorKindDarkCyan
	ColorKindWhite
	ColorKindGrey
	ColorKindRgb
	ColorKindAnsi
)

var colorKindNames = [...]string{
	ColorKindReset:       "Reset",
	ColorKindBlack:       "Black",
	ColorKindDarkGrey:    "DarkGrey",
	ColorKindRed:         "Red",
	ColorKindDarkRed:     "DarkRed",
	ColorKindGreen:       "Green",
	ColorKindDarkGreen:   "DarkGreen",
	ColorKindYellow:      "Yellow",
	ColorKindDarkYellow:  "DarkYellow",
	ColorKindBlue:        "Blue",
	ColorKindDarkBlue:    "DarkBlue",
	ColorKindMagenta:     "Magenta",
	ColorKindDarkMagenta: "DarkMagenta",
	ColorKindCyan:        "Cyan",
	ColorKindDarkCyan:    "DarkCyan",
	ColorKindWhite:       "White",
	ColorKindGrey:        "Grey",
	ColorKindRgb:         "Rgb",
	ColorKindAnsi:        "AnsiValue",
}

func (k ColorKind) String() string {
	if int(k) < len(colorKindNames) {
		return colorKindNames[k]
	}
	return "Unknown"
}

// Color is a requested terminal color: a named color, an RGB triple, or an
// index into the 256-color ANSI palette. R, G, B are used only by
// ColorKindRgb and Index only by ColorKindAnsi.
type Color struct {
	Kind    ColorKind
	R, G, B uint8
	Index   uint8
}

// Named colors.
var (
	ColorReset       = Color{Kind: ColorKindReset}
	ColorBlack       = Color{Kind: ColorKindBlack}
	ColorDarkGrey    = Color{Kind: ColorKindDarkGrey}
	ColorRed         = Color{Kind: ColorKindRed}
	ColorDarkRed     = Color{Kind: ColorKindDarkRed}
	ColorGreen       = Color{Kind: ColorKindGreen}
	ColorDarkGreen   = Color{Kind: ColorKindDarkGreen}
	ColorYellow      = Color{Kind: ColorKindYellow}
	ColorDarkYellow  = Color{Kind: ColorKindDarkYellow}
	ColorBlue        = Color{Kind: ColorKindBlue}
	ColorDarkBlue    = Color{Kind: ColorKindDarkBlue}
	ColorMagenta     = Color{Kind: ColorKindMagenta}
	ColorDarkMagenta = Color{Kind: ColorKindDarkMagenta}
	ColorCyan        = Color{Kind: ColorKindCyan}
	ColorDarkCyan    = Color{Kind: ColorKindDarkCyan}
	ColorWhite       = Color{Kind: ColorKindWhite}
	ColorGrey        = Color{Kind: ColorKindGrey}
)

// Rgb creates a true color.
func Rgb(r, g, b uint8) Color {
	return Color{Kind: ColorKindRgb, R: r, G: g, B: b}
}

// AnsiValue creates an indexed palette color.
func AnsiValue(index uint8) Color {
	return Color{Kind: ColorKindAnsi, Index: index}
}

// ansiNamed is the standard order of the first 16 palette entries.
var ansiNamed = [16]Color{
	ColorBlack, ColorDarkRed, ColorDarkGreen, ColorDarkYellow,
	ColorDarkBlue, ColorDarkMagenta, ColorDarkCyan, ColorGrey,
	ColorDarkGrey, ColorRed, ColorGreen, ColorYellow,
	ColorBlue, ColorMagenta, ColorCyan, ColorWhite,
}

// Expand resolves an AnsiValue into the named or RGB color it denotes in
// the standard 256-color palette. Other colors are returned unchanged.
//
// Indices 0-15 are the named colors, 16-231 the 6x6x6 cube with
// channel = coord*51, and 232-255 the gray ramp 8+10*(i-232).
func (c Color) Expand() Color {
	if c.Kind != ColorKindAnsi {
		return c
	}

	i := int(c.Index)
	switch {
	case i < 16:
		return ansiNamed[i]
	case i < 232:
		i -= 16
		return Rgb(uint8(i/36*51), uint8(i/6%6*51), uint8(i%6*51))
	default:
		v := uint8(8 + 10*(i-232))
		return Rgb(v, v, v)
	}
}

// String returns a representation like "Rgb(1, 2, 3)" or "DarkRed".
func (c Color) String() string {
	switch c.Kind {
	case ColorKindRgb:
		return fmt.Sprintf("Rgb(%d, %d, %d)", c.R, c.G, c.B)
	case ColorKindAnsi:
		return fmt.Sprintf("AnsiValue(%d)", c.Index)
	default:
		return c.Kind.String()
	}
}

// ParseColor parses a color from configuration text. Accepted forms are a
// color name ("dark_red", "DarkRed", "reset"), "ansi:N" with N in 0-255,
// and hex "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return Rgb(r, g, b), nil
	}

	lower := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lower, "ansi:"); ok {
		n, err := strconv.ParseUint(rest, 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid ansi color %q: %w", s, err)
		}
		return AnsiValue(uint8(n)), nil
	}

	name := strings.NewReplacer("_", "", "-", "", " ", "").Replace(lower)
	if name == "darkgray" {
		name = "darkgrey"
	} else if name == "gray" {
		name = "grey"
	}
	for kind, kn := range colorKindNames {
		if ColorKind(kind) >= ColorKindRgb {
			break
		}
		if strings.ToLower(kn) == name {
			return Color{Kind: ColorKind(kind)}, nil
		}
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

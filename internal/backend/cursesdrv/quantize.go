package cursesdrv

import "github.com/dshills/termctl/internal/core"

// Quantize maps a requested color onto a palette of paletteSize entries.
// It returns -1 for the terminal default color and for any color the
// palette cannot express. AnsiValue colors are first expanded to the named
// or RGB color they denote.
func Quantize(c core.Color, paletteSize int) int16 {
	if paletteSize < 8 {
		return -1
	}
	c = c.Expand()

	switch c.Kind {
	case core.ColorKindBlack:
		return 0
	case core.ColorKindDarkRed:
		return 1
	case core.ColorKindDarkGreen:
		return 2
	case core.ColorKindDarkYellow:
		return 3
	case core.ColorKindDarkBlue:
		return 4
	case core.ColorKindDarkMagenta:
		return 5
	case core.ColorKindDarkCyan:
		return 6
	case core.ColorKindGrey:
		return 7
	case core.ColorKindDarkGrey:
		return int16(8 % paletteSize)
	case core.ColorKindRed:
		return int16(9 % paletteSize)
	case core.ColorKindGreen:
		return int16(10 % paletteSize)
	case core.ColorKindYellow:
		return int16(11 % paletteSize)
	case core.ColorKindBlue:
		return int16(12 % paletteSize)
	case core.ColorKindMagenta:
		return int16(13 % paletteSize)
	case core.ColorKindCyan:
		return int16(14 % paletteSize)
	case core.ColorKindWhite:
		return int16(15 % paletteSize)
	case core.ColorKindRgb:
		if paletteSize >= 256 {
			return quantize256(c.R, c.G, c.B)
		}
		return quantize8(c.R, c.G, c.B)
	default:
		return -1
	}
}

// quantize256 picks a gray ramp slot for neutral colors and a 6x6x6 cube
// slot otherwise. Pure black and near-white fall through to the cube.
func quantize256(r, g, b uint8) int16 {
	if r == g && g == b && r != 0 && r < 250 {
		n := (int(r) - 8) / 10
		if n < 0 {
			n = 0
		}
		return int16(232 + n)
	}
	return int16(16 + 36*cube(r) + 6*cube(g) + cube(b))
}

func cube(v uint8) int {
	return 6 * int(v) / 256
}

// quantize8 thresholds each channel at its midpoint.
func quantize8(r, g, b uint8) int16 {
	bit := func(v uint8) int16 {
		if v > 127 {
			return 1
		}
		return 0
	}
	return bit(r) + 2*bit(g) + 4*bit(b)
}

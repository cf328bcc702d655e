package nes

import "image/color"

// PaletteMode selects the master palette used by the renderer.
type PaletteMode int

const (
	PaletteNTSC PaletteMode = iota
	PalettePAL
)

// The 64-entry NTSC master palette.
// Reference: https://emulation.gametechwiki.com/index.php/Famicom_color_palette
var paletteNTSC = [64]color.RGBA{
	{0x75, 0x75, 0x75, 255}, {0x27, 0x1B, 0x8F, 255}, {0x00, 0x00, 0xAB, 255}, {0x47, 0x00, 0x9F, 255},
	{0x8F, 0x00, 0x77, 255}, {0xAB, 0x00, 0x13, 255}, {0xA7, 0x00, 0x00, 255}, {0x7F, 0x0B, 0x00, 255},
	{0x43, 0x2F, 0x00, 255}, {0x00, 0x47, 0x00, 255}, {0x00, 0x51, 0x00, 255}, {0x00, 0x3F, 0x17, 255},
	{0x1B, 0x3F, 0x5F, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xBC, 0xBC, 0xBC, 255}, {0x00, 0x73, 0xEF, 255}, {0x23, 0x3B, 0xEF, 255}, {0x83, 0x00, 0xF3, 255},
	{0xBF, 0x00, 0xBF, 255}, {0xE7, 0x00, 0x5B, 255}, {0xDB, 0x2B, 0x00, 255}, {0xCB, 0x4F, 0x0F, 255},
	{0x8B, 0x73, 0x00, 255}, {0x00, 0x9F, 0x0F, 255}, {0x00, 0xAB, 0x00, 255}, {0x00, 0x93, 0x3B, 255},
	{0x00, 0x83, 0x8B, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x3F, 0xBF, 0xFF, 255}, {0x5F, 0x97, 0xFF, 255}, {0xA7, 0x8B, 0xFD, 255},
	{0xF7, 0x7B, 0xFF, 255}, {0xFF, 0x77, 0xB7, 255}, {0xFF, 0x77, 0x63, 255}, {0xFF, 0x9B, 0x3B, 255},
	{0xF3, 0xBF, 0x3F, 255}, {0x83, 0xD3, 0x13, 255}, {0x4F, 0xDF, 0x4B, 255}, {0x58, 0xF8, 0x98, 255},
	{0x00, 0xEB, 0xDB, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xA7, 0xE7, 0xFF, 255}, {0xC7, 0xD7, 0xFF, 255}, {0xD7, 0xCB, 0xFF, 255},
	{0xFF, 0xC7, 0xFF, 255}, {0xFF, 0xC7, 0xDB, 255}, {0xFF, 0xBF, 0xB3, 255}, {0xFF, 0xDB, 0xAB, 255},
	{0xFF, 0xE7, 0xA3, 255}, {0xE3, 0xFF, 0xA3, 255}, {0xAB, 0xF3, 0xBF, 255}, {0xB3, 0xFF, 0xCF, 255},
	{0x9F, 0xFF, 0xF3, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255}, {0x00, 0x00, 0x00, 255},
}

// palettePAL is the NTSC table with a fixed per-channel attenuation, a
// rough approximation of PAL output levels.
var palettePAL = scalePalette(paletteNTSC, 0.95, 0.95, 0.98)

func scalePalette(src [64]color.RGBA, r, g, b float64) [64]color.RGBA {
	var out [64]color.RGBA
	for i, c := range src {
		out[i] = color.RGBA{
			R: byte(float64(c.R) * r),
			G: byte(float64(c.G) * g),
			B: byte(float64(c.B) * b),
			A: c.A,
		}
	}
	return out
}

// masterPalette returns the 64-entry table for a palette mode.
func masterPalette(mode PaletteMode) [64]color.RGBA {
	if mode == PalettePAL {
		return palettePAL
	}
	return paletteNTSC
}

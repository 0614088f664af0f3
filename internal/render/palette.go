package render

import (
	"image/color"

	"github.com/kamstrup/intmap"

	"magearena/internal/mathutil"
)

// Reference colors.
var (
	ColorSky     = color.RGBA{50, 50, 100, 255}
	ColorFloor   = color.RGBA{30, 30, 30, 255}
	ColorGray    = color.RGBA{100, 100, 100, 255}
	ColorBrown   = color.RGBA{150, 75, 0, 255}
	ColorBlue    = color.RGBA{0, 100, 150, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorMapDark = color.RGBA{20, 20, 20, 255}
	ColorRadius  = color.RGBA{100, 100, 255, 255}
)

// RGB converts a config triple into an opaque color. Channels are clamped
// to [0, 255].
func RGB(v [3]int) color.RGBA {
	return color.RGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: 255}
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// Palette maps wall codes to colors with an explicit fallback for codes it
// does not know.
type Palette struct {
	colors   *intmap.Map[int, color.RGBA]
	fallback color.RGBA
}

// NewPalette builds a palette from config-style code -> rgb entries.
func NewPalette(walls map[int][3]int, fallback color.RGBA) *Palette {
	p := &Palette{
		colors:   intmap.New[int, color.RGBA](len(walls)),
		fallback: fallback,
	}
	for code, rgb := range walls {
		p.colors.Put(code, RGB(rgb))
	}
	return p
}

// DefaultWallPalette is the view palette: 1 gray, 2 brown, 3 blue, anything
// else gray.
func DefaultWallPalette() *Palette {
	return referencePalette(ColorGray)
}

// DefaultMinimapPalette uses the same wall colors but draws unknown codes
// white so they stand out on the map.
func DefaultMinimapPalette() *Palette {
	return referencePalette(ColorWhite)
}

func referencePalette(fallback color.RGBA) *Palette {
	p := &Palette{colors: intmap.New[int, color.RGBA](3), fallback: fallback}
	p.colors.Put(1, ColorGray)
	p.colors.Put(2, ColorBrown)
	p.colors.Put(3, ColorBlue)
	return p
}

// Color returns the color for code, or the fallback.
func (p *Palette) Color(code int) color.RGBA {
	if c, ok := p.colors.Get(code); ok {
		return c
	}
	return p.fallback
}

// Fallback returns the color used for unknown codes.
func (p *Palette) Fallback() color.RGBA {
	return p.fallback
}

// Len returns the number of known codes.
func (p *Palette) Len() int {
	return p.colors.Len()
}

// Shade scales each channel by factor clamped to [0, 1], truncating toward
// zero. Alpha is kept.
func Shade(c color.RGBA, factor float64) color.RGBA {
	factor = mathutil.Clamp(factor, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// imageCanvas draws render.Canvas calls onto an ebiten image with the
// vector package. Rects are not antialiased so wall strips stay crisp.
type imageCanvas struct {
	dst *ebiten.Image
}

func (c imageCanvas) FillRect(x, y, w, h float32, clr color.RGBA) {
	vector.DrawFilledRect(c.dst, x, y, w, h, clr, false)
}

func (c imageCanvas) StrokeRect(x, y, w, h, width float32, clr color.RGBA) {
	vector.StrokeRect(c.dst, x, y, w, h, width, clr, false)
}

func (c imageCanvas) FillCircle(cx, cy, r float32, clr color.RGBA) {
	vector.DrawFilledCircle(c.dst, cx, cy, r, clr, true)
}

func (c imageCanvas) StrokeCircle(cx, cy, r, width float32, clr color.RGBA) {
	vector.StrokeCircle(c.dst, cx, cy, r, width, clr, true)
}

func (c imageCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.RGBA) {
	vector.StrokeLine(c.dst, x0, y0, x1, y1, width, clr, true)
}

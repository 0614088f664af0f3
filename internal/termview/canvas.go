package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// cellCanvas rasterizes render.Canvas calls onto terminal cells, one cell
// per pixel. Fills paint the cell background.
type cellCanvas struct {
	screen tcell.Screen
	w, h   int
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c cellCanvas) set(x, y int, clr color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(rgb(clr)))
}

func (c cellCanvas) FillRect(x, y, w, h float32, clr color.RGBA) {
	x0, x1 := int(math.Floor(float64(x))), int(math.Ceil(float64(x+w)))
	y0, y1 := int(math.Floor(float64(y))), int(math.Ceil(float64(y+h)))
	for row := max(y0, 0); row < min(y1, c.h); row++ {
		for col := max(x0, 0); col < min(x1, c.w); col++ {
			c.set(col, row, clr)
		}
	}
}

func (c cellCanvas) StrokeRect(x, y, w, h, width float32, clr color.RGBA) {
	c.StrokeLine(x, y, x+w, y, width, clr)
	c.StrokeLine(x, y+h, x+w, y+h, width, clr)
	c.StrokeLine(x, y, x, y+h, width, clr)
	c.StrokeLine(x+w, y, x+w, y+h, width, clr)
}

func (c cellCanvas) FillCircle(cx, cy, r float32, clr color.RGBA) {
	ri := int(math.Ceil(float64(r)))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float32(dx*dx+dy*dy) <= r*r {
				c.set(int(cx)+dx, int(cy)+dy, clr)
			}
		}
	}
}

func (c cellCanvas) StrokeCircle(cx, cy, r, width float32, clr color.RGBA) {
	steps := max(8, int(2*math.Pi*float64(r)))
	for i := 0; i < steps; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(steps))
		c.set(int(math.Round(float64(cx)+cos*float64(r))), int(math.Round(float64(cy)+sin*float64(r))), clr)
	}
}

// StrokeLine samples the segment once per cell; width is ignored.
func (c cellCanvas) StrokeLine(x0, y0, x1, y1, width float32, clr color.RGBA) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		c.set(int(x0), int(y0), clr)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(math.Round(float64(x0)+dx*t)), int(math.Round(float64(y0)+dy*t)), clr)
	}
}

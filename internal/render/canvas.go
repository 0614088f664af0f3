// Package render turns ray fans and player state into screen-space draw
// calls. It knows nothing about the window library: frontends supply a
// Canvas.
package render

import "image/color"

// Canvas is the drawing surface the projector and minimap draw on.
// Coordinates are in pixels with the origin at the top left.
type Canvas interface {
	FillRect(x, y, w, h float32, c color.RGBA)
	StrokeRect(x, y, w, h, width float32, c color.RGBA)
	FillCircle(cx, cy, r float32, c color.RGBA)
	StrokeCircle(cx, cy, r, width float32, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float32, c color.RGBA)
}

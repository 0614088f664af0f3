package render

import (
	"image/color"
	"math"

	"magearena/internal/raycast"
)

// Billboard is a world point projected into screen space.
type Billboard struct {
	ScreenX int     // horizontal center
	Depth   float64 // perpendicular distance from the camera plane
	Size    float64 // height and width in pixels
	Top     float64
}

// Left and Right bound the billboard horizontally.
func (b Billboard) Left() float64  { return float64(b.ScreenX) - b.Size/2 }
func (b Billboard) Right() float64 { return float64(b.ScreenX) + b.Size/2 }

// ProjectPoint transforms (wx, wy) into camera space for a camera at
// (cx, cy) facing heading. depth is the perpendicular distance, so sizes
// do not drift for points off the view axis. ok is false for points behind
// the camera.
func (p *Projector) ProjectPoint(cx, cy, heading, wx, wy float64) (screenX int, depth float64, ok bool) {
	dx := wx - cx
	dy := wy - cy

	dirY, dirX := math.Sincos(heading)
	planeScale := math.Tan(p.view.FOV / 2)
	planeX := -dirY * planeScale
	planeY := dirX * planeScale

	det := planeX*dirY - dirX*planeY
	if math.Abs(det) < 1e-9 {
		return 0, 0, false
	}
	invDet := 1.0 / det
	transformX := invDet * (dirY*dx - dirX*dy)
	transformY := invDet * (-planeY*dx + planeX*dy)
	if transformY <= 0 {
		return 0, 0, false
	}

	screenX = int(float64(p.view.Width) / 2 * (1 + transformX/transformY))
	return screenX, transformY, true
}

// ProjectSprite projects an entity of the given world diameter standing on
// the floor. The billboard's bottom sits on the floor line at its depth, the
// same line wall strips end on.
func (p *Projector) ProjectSprite(cx, cy, heading, wx, wy, diameter float64) (Billboard, bool) {
	screenX, depth, ok := p.ProjectPoint(cx, cy, heading, wx, wy)
	if !ok || depth > p.view.MaxDepth {
		return Billboard{}, false
	}

	h := float64(p.view.Height)
	size := math.Min(diameter*h/depth, h)
	if float64(screenX)+size/2 < 0 || float64(screenX)-size/2 > float64(p.view.Width) {
		return Billboard{}, false
	}

	floorY := h/2 + p.view.TileSize*h/(2*depth)
	return Billboard{ScreenX: screenX, Depth: depth, Size: size, Top: floorY - size}, true
}

// Occluded reports whether a wall in the column under screen x is closer
// than depth.
func (p *Projector) Occluded(x float64, depth float64, rays []raycast.Ray) bool {
	if x < 0 {
		return true
	}
	i := int(x / p.ColumnWidth())
	if i >= len(rays) {
		return true
	}
	r := rays[i]
	return r.Hit() && r.Distance < depth
}

// DrawSprite draws b as column slices, skipping slices hidden behind walls.
// frac in [0, 1] draws a health bar above the billboard; pass a negative
// value to skip it.
func (p *Projector) DrawSprite(c Canvas, b Billboard, rays []raycast.Ray, fill color.RGBA, frac float64) {
	step := p.ColumnWidth()
	left := math.Max(b.Left(), 0)
	right := math.Min(b.Right(), float64(p.view.Width))

	visible := false
	for x := left; x < right; x += step {
		w := math.Min(step, right-x)
		if p.Occluded(x, b.Depth, rays) {
			continue
		}
		visible = true
		c.FillRect(float32(x), float32(b.Top), float32(w)+1, float32(b.Size), Shade(fill, p.Brightness(b.Depth)))
	}

	if !visible || frac < 0 {
		return
	}
	barH := float32(math.Max(2, b.Size/16))
	barY := float32(b.Top) - barH - 2
	barW := float32(b.Size)
	c.FillRect(float32(b.Left()), barY, barW, barH, ColorBlack)
	c.FillRect(float32(b.Left()), barY, barW*float32(math.Max(0, math.Min(1, frac))), barH, ColorGreen)
}

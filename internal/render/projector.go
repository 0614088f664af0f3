package render

import (
	"image/color"
	"math"

	"magearena/internal/config"
	"magearena/internal/raycast"
)

// View holds the screen and field-of-view constants the projector works in.
// NumRays and FOV must be the values the caster was built with.
type View struct {
	Width, Height int
	TileSize      float64
	MaxDepth      float64
	FOV           float64
	NumRays       int
	MinBrightness float64
	Sky, Floor    color.RGBA
}

// DefaultMinBrightness is the darkest a wall gets at max depth.
const DefaultMinBrightness = 0.3

// ViewFromConfig reads the display, raycast and color sections of cfg.
func ViewFromConfig(cfg *config.Config) View {
	v := View{
		Width:         cfg.GetScreenWidth(),
		Height:        cfg.GetScreenHeight(),
		TileSize:      cfg.GetTileSize(),
		MaxDepth:      cfg.Raycast.MaxDepth,
		FOV:           cfg.FOV(),
		NumRays:       cfg.Raycast.NumRays,
		MinBrightness: cfg.Colors.BrightnessMin,
		Sky:           RGB(cfg.Colors.Sky),
		Floor:         RGB(cfg.Colors.Floor),
	}
	if v.MinBrightness <= 0 || v.MinBrightness > 1 {
		v.MinBrightness = DefaultMinBrightness
	}
	return v
}

// Column is one projected wall strip.
type Column struct {
	Index    int
	X, Width float64
	Top      float64
	Bottom   float64
	Distance float64
	WallType int
	Color    color.RGBA
}

// Height returns the visible strip height in pixels.
func (c Column) Height() float64 { return c.Bottom - c.Top }

// Projector maps ray i to screen column i. It is stateless apart from its
// constants and safe to share.
type Projector struct {
	view  View
	walls *Palette
}

// NewProjector creates a projector. A nil palette uses DefaultWallPalette.
func NewProjector(view View, walls *Palette) *Projector {
	if walls == nil {
		walls = DefaultWallPalette()
	}
	return &Projector{view: view, walls: walls}
}

func (p *Projector) View() View { return p.view }

// ColumnWidth is screen width / ray count. It is fractional when the width
// does not divide evenly; every strip is drawn one pixel wider to cover the
// seams.
func (p *Projector) ColumnWidth() float64 {
	return float64(p.view.Width) / float64(p.view.NumRays)
}

// Horizon returns the row where sky ends and floor begins.
func (p *Projector) Horizon() int {
	return p.view.Height / 2
}

// Brightness returns max(min, 1 - d/maxDepth).
func (p *Projector) Brightness(distance float64) float64 {
	return math.Max(p.view.MinBrightness, 1-distance/p.view.MaxDepth)
}

// Project converts ray i to a wall strip. ok is false for rays that hit
// nothing; those columns show sky and floor only.
func (p *Projector) Project(i int, ray raycast.Ray) (col Column, ok bool) {
	if ray.WallType == 0 {
		return Column{}, false
	}

	d := ray.Distance
	if d == 0 {
		d = 1
	}

	h := float64(p.view.Height)
	wallHeight := p.view.TileSize * h / d
	top := math.Floor((h - wallHeight) / 2)
	bottom := top + wallHeight
	if top < 0 {
		top = 0
	}
	if bottom > h {
		bottom = h
	}

	width := p.ColumnWidth()
	return Column{
		Index:    i,
		X:        float64(i) * width,
		Width:    width + 1,
		Top:      top,
		Bottom:   bottom,
		Distance: d,
		WallType: ray.WallType,
		Color:    Shade(p.walls.Color(ray.WallType), p.Brightness(d)),
	}, true
}

// Columns projects every ray, appending the wall strips to dst.
func (p *Projector) Columns(rays []raycast.Ray, dst []Column) []Column {
	dst = dst[:0]
	for i, r := range rays {
		if col, ok := p.Project(i, r); ok {
			dst = append(dst, col)
		}
	}
	return dst
}

// DrawBackground fills the sky over the top half and the floor over the
// bottom half.
func (p *Projector) DrawBackground(c Canvas) {
	w := float32(p.view.Width)
	horizon := float32(p.Horizon())
	c.FillRect(0, 0, w, horizon, p.view.Sky)
	c.FillRect(0, horizon, w, float32(p.view.Height)-horizon, p.view.Floor)
}

// Draw renders a full view: background first, then one strip per wall hit.
func (p *Projector) Draw(c Canvas, rays []raycast.Ray) {
	p.DrawBackground(c)
	for i, r := range rays {
		col, ok := p.Project(i, r)
		if !ok {
			continue
		}
		c.FillRect(float32(col.X), float32(col.Top), float32(col.Width), float32(col.Height()), col.Color)
	}
}

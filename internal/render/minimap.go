package render

import (
	"image/color"
	"math"

	"magearena/internal/config"
)

// Minimap drawing constants.
const (
	PlayerDotRadius = 4
	HeadingLength   = 15
	HeadingWidth    = 2
	BorderWidth     = 2
	RadiusStroke    = 1
	EnemyDotRadius  = 2
)

// MapView is the part of the grid the minimap reads.
type MapView interface {
	Width() int
	Height() int
	CellAt(col, row int) int
	TileSize() float64
}

// Pose is the player state the minimap shows.
type Pose struct {
	X, Y   float64
	Angle  float64
	Radius float64 // collision radius in world units
}

// MinimapStyle places and scales the minimap.
type MinimapStyle struct {
	Scale int // pixels per cell
	X, Y  int // screen position of the top-left corner
	Alpha uint8
	Empty color.RGBA
}

// DefaultMinimapStyle is scale 5 at (10, 10) with alpha 200.
func DefaultMinimapStyle() MinimapStyle {
	return MinimapStyle{Scale: 5, X: 10, Y: 10, Alpha: 200, Empty: ColorMapDark}
}

// MinimapStyleFromConfig reads the minimap section; non-positive values keep
// the defaults.
func MinimapStyleFromConfig(cfg *config.Config) MinimapStyle {
	s := DefaultMinimapStyle()
	if cfg.Minimap.Scale > 0 {
		s.Scale = cfg.Minimap.Scale
	}
	s.X, s.Y = cfg.Minimap.X, cfg.Minimap.Y
	if cfg.Minimap.Alpha > 0 {
		s.Alpha = channel(cfg.Minimap.Alpha)
	}
	s.Empty = RGB(cfg.Colors.MinimapEmpty)
	return s
}

// MinimapLayout is the pixel geometry of one minimap frame, relative to the
// minimap's own top-left corner.
type MinimapLayout struct {
	Width, Height    int
	PlayerX, PlayerY int
	RadiusPx         int
	HeadX, HeadY     int
}

// Minimap draws a top-down view of the grid into its own buffer.
type Minimap struct {
	cells   MapView
	palette *Palette
	style   MinimapStyle
}

// NewMinimap creates a minimap. A nil palette uses DefaultMinimapPalette.
func NewMinimap(cells MapView, palette *Palette, style MinimapStyle) *Minimap {
	if palette == nil {
		palette = DefaultMinimapPalette()
	}
	if style.Scale <= 0 {
		style.Scale = DefaultMinimapStyle().Scale
	}
	return &Minimap{cells: cells, palette: palette, style: style}
}

func (m *Minimap) Style() MinimapStyle { return m.style }

// Size returns the buffer size in pixels.
func (m *Minimap) Size() (w, h int) {
	return m.cells.Width() * m.style.Scale, m.cells.Height() * m.style.Scale
}

// Alpha returns the compositing opacity in [0, 1].
func (m *Minimap) Alpha() float32 {
	return float32(m.style.Alpha) / 255
}

// Layout computes the player marker geometry. The marker snaps to the corner
// of the player's tile; the collision circle is the radius scaled from world
// units, truncated.
func (m *Minimap) Layout(pose Pose) MinimapLayout {
	tile := m.cells.TileSize()
	scale := float64(m.style.Scale)
	w, h := m.Size()

	px := int(math.Floor(pose.X/tile) * scale)
	py := int(math.Floor(pose.Y/tile) * scale)
	return MinimapLayout{
		Width:    w,
		Height:   h,
		PlayerX:  px,
		PlayerY:  py,
		RadiusPx: int(pose.Radius / tile * scale),
		HeadX:    px + int(math.Cos(pose.Angle)*HeadingLength),
		HeadY:    py + int(math.Sin(pose.Angle)*HeadingLength),
	}
}

// ToMinimap converts a world point to minimap pixels without snapping.
func (m *Minimap) ToMinimap(x, y float64) (float32, float32) {
	k := float64(m.style.Scale) / m.cells.TileSize()
	return float32(x * k), float32(y * k)
}

// Draw renders cells, enemies and the player marker onto c at the origin.
// enemies holds world positions as x, y pairs.
func (m *Minimap) Draw(c Canvas, pose Pose, enemies [][2]float64) {
	s := float32(m.style.Scale)
	for row := 0; row < m.cells.Height(); row++ {
		for col := 0; col < m.cells.Width(); col++ {
			fill := m.style.Empty
			if code := m.cells.CellAt(col, row); code > 0 {
				fill = m.palette.Color(code)
			}
			c.FillRect(float32(col)*s, float32(row)*s, s, s, fill)
		}
	}

	for _, e := range enemies {
		ex, ey := m.ToMinimap(e[0], e[1])
		c.FillCircle(ex, ey, EnemyDotRadius, ColorRed)
	}

	l := m.Layout(pose)
	px, py := float32(l.PlayerX), float32(l.PlayerY)
	c.StrokeCircle(px, py, float32(l.RadiusPx), RadiusStroke, ColorRadius)
	c.FillCircle(px, py, PlayerDotRadius, ColorYellow)
	c.StrokeLine(px, py, float32(l.HeadX), float32(l.HeadY), HeadingWidth, ColorRed)

	// The stroke is centered on the path, so inset by half the width to keep
	// the border inside the buffer.
	half := float32(BorderWidth) / 2
	c.StrokeRect(half, half, float32(l.Width)-BorderWidth, float32(l.Height)-BorderWidth, BorderWidth, ColorWhite)
}

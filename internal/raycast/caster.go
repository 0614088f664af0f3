// Package raycast casts a fan of rays from the player's pose against a grid
// of cell codes.
package raycast

import (
	"math"

	"magearena/internal/config"
	"magearena/internal/mathutil"
)

// CellMap is the read-only view of the arena the caster needs.
type CellMap interface {
	CellAt(col, row int) int
	InBounds(col, row int) bool
	TileSize() float64
}

// FanRunner runs castFunc for every ray index and returns once all of them
// are done. *rendering.ParallelRenderer implements it.
type FanRunner interface {
	RenderRaycast(numRays int, castFunc func(rayIndex int))
}

// Params are the field-of-view constants. The projector reads the same value
// so ray i always maps to screen column i.
type Params struct {
	FOV      float64 // radians
	NumRays  int
	MaxDepth float64
}

// ParamsFromConfig derives Params from the raycast section of cfg.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		FOV:      cfg.FOV(),
		NumRays:  cfg.Raycast.NumRays,
		MaxDepth: cfg.Raycast.MaxDepth,
	}
}

func (p Params) HalfFOV() float64 { return p.FOV / 2 }

// DeltaAngle is the angle between adjacent rays.
func (p Params) DeltaAngle() float64 { return p.FOV / float64(p.NumRays) }

// Ray is the result for one screen column.
type Ray struct {
	Distance float64 // perpendicular distance after fisheye correction
	WallType int     // cell code hit, 0 when nothing was hit
	HitX     float64
	HitY     float64
	Angle    float64 // absolute ray angle in radians
}

// Hit reports whether the ray struck a wall.
func (r Ray) Hit() bool { return r.WallType != 0 }

// Caster casts rays against a CellMap with a fixed one-unit march.
type Caster struct {
	cells  CellMap
	params Params
	fan    FanRunner
}

// NewCaster creates a serial caster.
func NewCaster(cells CellMap, params Params) *Caster {
	return &Caster{cells: cells, params: params}
}

// WithFan returns a copy of c that spreads rays over fan. A nil fan casts
// serially.
func (c *Caster) WithFan(fan FanRunner) *Caster {
	cp := *c
	cp.fan = fan
	return &cp
}

func (c *Caster) Params() Params { return c.params }

// RayAngle returns the angle of ray i for a given heading. Angles are
// computed from the index rather than accumulated so the spacing stays
// exact across the fan.
func (c *Caster) RayAngle(heading float64, i int) float64 {
	return heading - c.params.HalfFOV() + float64(i)*c.params.DeltaAngle()
}

// CastRays returns one ray per column, left to right, sweeping from
// heading-FOV/2 in steps of FOV/NumRays.
func (c *Caster) CastRays(px, py, heading float64) []Ray {
	rays := make([]Ray, c.params.NumRays)
	c.CastRaysInto(rays, px, py, heading)
	return rays
}

// CastRaysInto fills rays, which must have length NumRays. It allocates
// nothing, so a frame loop can reuse one buffer.
func (c *Caster) CastRaysInto(rays []Ray, px, py, heading float64) {
	cast := func(i int) {
		angle := c.RayAngle(heading, i)
		dist, wall, hx, hy := c.CastSingleRay(px, py, angle)
		rays[i] = Ray{
			Distance: dist * math.Cos(heading-angle),
			WallType: wall,
			HitX:     hx,
			HitY:     hy,
			Angle:    angle,
		}
	}

	if c.fan != nil {
		c.fan.RenderRaycast(len(rays), cast)
		return
	}
	for i := range rays {
		cast(i)
	}
}

// CastSingleRay marches from (ox, oy) along angle one world unit at a time.
//
// It stops when the marched point leaves the map, returning (MaxDepth, 0) and
// the first point outside; when it lands in a nonzero cell, returning the
// distance, the cell code and the point; or when MaxDepth is reached,
// returning (MaxDepth, 0) and origin + dir*MaxDepth. The distance is radial,
// not fisheye corrected.
func (c *Caster) CastSingleRay(ox, oy, angle float64) (distance float64, wallType int, hitX, hitY float64) {
	dx := math.Cos(angle)
	dy := math.Sin(angle)
	tile := c.cells.TileSize()
	maxDepth := c.params.MaxDepth

	for distance < maxDepth {
		distance++

		x := ox + dx*distance
		y := oy + dy*distance
		col := mathutil.FloorDiv(x, tile)
		row := mathutil.FloorDiv(y, tile)

		if !c.cells.InBounds(col, row) {
			return maxDepth, 0, x, y
		}
		if code := c.cells.CellAt(col, row); code > 0 {
			return distance, code, x, y
		}
	}

	return maxDepth, 0, ox + dx*maxDepth, oy + dy*maxDepth
}

// WallAt returns the code of the cell under (x, y); outside the map it
// reports the cell map's out-of-bounds code.
func (c *Caster) WallAt(x, y float64) int {
	tile := c.cells.TileSize()
	return c.cells.CellAt(mathutil.FloorDiv(x, tile), mathutil.FloorDiv(y, tile))
}

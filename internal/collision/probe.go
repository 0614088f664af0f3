package collision

import (
	"magearena/internal/mathutil"
)

// TileChecker answers solidity queries for grid cells. *world.Grid
// implements it.
type TileChecker interface {
	IsSolid(col, row int) bool
	TileSize() float64
}

// lineOfSightSteps is the number of samples CheckLineOfSight takes.
const lineOfSightSteps = 50

// Probe answers "blocked?" for points and circles against a grid. A Probe
// without a map never reports a collision, so an entity can still move
// before an arena is attached.
type Probe struct {
	tiles TileChecker
}

// NewProbe creates a probe over tiles. tiles may be nil.
func NewProbe(tiles TileChecker) *Probe {
	return &Probe{tiles: tiles}
}

// Attach replaces the map (used when switching arenas)
func (p *Probe) Attach(tiles TileChecker) {
	p.tiles = tiles
}

// Attached reports whether a map is set
func (p *Probe) Attached() bool {
	return p != nil && p.tiles != nil
}

// IsBlocked converts (x, y) to grid indices and reports whether that cell is
// solid. Cells outside the map are solid.
func (p *Probe) IsBlocked(x, y float64) bool {
	if !p.Attached() {
		return false
	}
	size := p.tiles.TileSize()
	return p.tiles.IsSolid(mathutil.FloorDiv(x, size), mathutil.FloorDiv(y, size))
}

// IsBlockedCircle samples eight points of a circle of the given radius
// around (x, y) and reports whether any of them is blocked. Walls thinner
// than the gap between samples can slip through.
func (p *Probe) IsBlockedCircle(x, y, radius float64) bool {
	if !p.Attached() {
		return false
	}
	for _, pt := range NewCircle(x, y, radius).SamplePoints() {
		if p.IsBlocked(pt.X, pt.Y) {
			return true
		}
	}
	return false
}

// MoveResult reports what a Slide committed.
type MoveResult struct {
	X, Y     float64
	BlockedX bool
	BlockedY bool
}

// Slide moves a circle by (dx, dy) one axis at a time: X is tested and
// committed first, then Y is tested from the updated X. Moving diagonally
// into a wall therefore keeps the free component.
func (p *Probe) Slide(x, y, dx, dy, radius float64) MoveResult {
	res := MoveResult{X: x, Y: y}

	if nx := x + dx; !p.IsBlockedCircle(nx, y, radius) {
		res.X = nx
	} else {
		res.BlockedX = true
	}

	if ny := y + dy; !p.IsBlockedCircle(res.X, ny, radius) {
		res.Y = ny
	} else {
		res.BlockedY = true
	}

	return res
}

// CheckLineOfSight checks if there's a clear line of sight between two points
func (p *Probe) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	if !p.Attached() {
		return true
	}

	dx := (x2 - x1) / lineOfSightSteps
	dy := (y2 - y1) / lineOfSightSteps
	for i := 0; i <= lineOfSightSteps; i++ {
		if p.IsBlocked(x1+dx*float64(i), y1+dy*float64(i)) {
			return false
		}
	}
	return true
}

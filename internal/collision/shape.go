package collision

import (
	"math"
)

// DiagonalFactor scales the radius for the four diagonal samples. It is the
// 45° projection (√2/2) rounded to one decimal, so diagonal samples sit
// slightly inside the true circle.
const DiagonalFactor = 0.7

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Circle is the collision shape of the player and of enemies
type Circle struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y coordinate
	Radius float64
}

// NewCircle creates a circle centered at the given position
func NewCircle(x, y, radius float64) Circle {
	return Circle{X: x, Y: y, Radius: radius}
}

// SamplePoints returns the eight probe points: right, left, down, up, then
// the four diagonals.
func (c Circle) SamplePoints() [8]Point {
	r := c.Radius
	d := r * DiagonalFactor
	return [8]Point{
		{X: c.X + r, Y: c.Y},
		{X: c.X - r, Y: c.Y},
		{X: c.X, Y: c.Y + r},
		{X: c.X, Y: c.Y - r},
		{X: c.X + d, Y: c.Y + d},
		{X: c.X - d, Y: c.Y + d},
		{X: c.X + d, Y: c.Y - d},
		{X: c.X - d, Y: c.Y - d},
	}
}

// Contains reports whether point lies inside or on the circle
func (c Circle) Contains(p Point) bool {
	dx := p.X - c.X
	dy := p.Y - c.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Intersects reports whether two circles overlap
func (c Circle) Intersects(other Circle) bool {
	r := c.Radius + other.Radius
	dx := other.X - c.X
	dy := other.Y - c.Y
	return dx*dx+dy*dy < r*r
}

// DistanceTo returns the center-to-center distance
func (c Circle) DistanceTo(other Circle) float64 {
	return math.Hypot(other.X-c.X, other.Y-c.Y)
}

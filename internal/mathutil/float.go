package mathutil

import "math"

const TwoPi = 2 * math.Pi

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp interpolates linearly from a to b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func DegToRad(d float64) float64 {
	return d * (math.Pi / 180.0)
}

func RadToDeg(r float64) float64 {
	return r * (180.0 / math.Pi)
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative value can round back up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// FloorDiv converts a world coordinate to a grid index. It floors, so
// negative coordinates map to negative cells instead of truncating to 0.
func FloorDiv(v, size float64) int {
	return int(math.Floor(v / size))
}

// AngleDiff returns a-b wrapped into [-π, π].
func AngleDiff(a, b float64) float64 {
	return math.Remainder(a-b, TwoPi)
}

package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntHelpers(t *testing.T) {
	assert.Equal(t, 2, IntMin(2, 5))
	assert.Equal(t, 5, IntMax(2, 5))
	assert.Equal(t, 0, IntClamp(-3, 0, 10))
	assert.Equal(t, 10, IntClamp(42, 0, 10))
	assert.Equal(t, 7, IntClamp(7, 0, 10))
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.25, Clamp(0.25, -1, 1))

	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 15.0, Lerp(0, 10, 1.5))
}

func TestAngleConversions(t *testing.T) {
	assert.InDelta(t, math.Pi, DegToRad(180), 1e-12)
	assert.InDelta(t, 90.0, RadToDeg(math.Pi/2), 1e-12)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{TwoPi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "NormalizeAngle(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, TwoPi)
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, FloorDiv(0, 64))
	assert.Equal(t, 0, FloorDiv(63.9, 64))
	assert.Equal(t, 1, FloorDiv(64, 64))
	assert.Equal(t, -1, FloorDiv(-0.5, 64))
}

func TestAngleDiff(t *testing.T) {
	assert.InDelta(t, 0.2, AngleDiff(0.1, TwoPi-0.1), 1e-9)
	assert.InDelta(t, -0.2, AngleDiff(TwoPi-0.1, 0.1), 1e-9)
	assert.InDelta(t, math.Pi/2, AngleDiff(math.Pi, math.Pi/2), 1e-9)
	assert.LessOrEqual(t, math.Abs(AngleDiff(3*math.Pi, 0)), math.Pi+1e-9)
}

package raycast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magearena/internal/threading/rendering"
	"magearena/internal/world"
)

func referenceParams() Params {
	return Params{FOV: math.Pi / 3, NumRays: 120, MaxDepth: 800}
}

func referenceCaster(t *testing.T) *Caster {
	t.Helper()
	grid, err := world.ReferenceArena(64)
	require.NoError(t, err)
	return NewCaster(grid, referenceParams())
}

func openGrid(t *testing.T, cols, rows int) *world.Grid {
	t.Helper()
	cells := make([][]int, rows)
	for i := range cells {
		cells[i] = make([]int, cols)
	}
	return world.MustNewGrid(cells, 64)
}

func TestCastRays_FanGeometry(t *testing.T) {
	c := referenceCaster(t)
	heading := 1.0
	rays := c.CastRays(96, 96, heading)
	require.Len(t, rays, 120)

	delta := math.Pi / 3 / 120
	assert.InDelta(t, heading-math.Pi/6, rays[0].Angle, 1e-12)
	assert.InDelta(t, heading+math.Pi/6-delta, rays[len(rays)-1].Angle, 1e-12)
	for i := 1; i < len(rays); i++ {
		assert.InDelta(t, delta, rays[i].Angle-rays[i-1].Angle, 1e-12, "spacing at ray %d", i)
	}
	assert.InDelta(t, delta, c.Params().DeltaAngle(), 1e-15)
}

func TestCastSingleRay_HitsFarBorderAlongOpenRow(t *testing.T) {
	c := referenceCaster(t)

	dist, wall, hx, hy := c.CastSingleRay(96, 96, 0)
	assert.Equal(t, 1, wall)
	assert.Equal(t, 480.0, dist)
	assert.Equal(t, 576.0, hx)
	assert.Equal(t, 96.0, hy)
}

func TestCastSingleRay_ReportsWallCode(t *testing.T) {
	c := referenceCaster(t)

	// Diagonal from tile (1,1) runs straight into the pillar at (2,2).
	dist, wall, hx, hy := c.CastSingleRay(96, 96, math.Pi/4)
	assert.Equal(t, 2, wall)
	assert.Greater(t, dist, 0.0)
	assert.LessOrEqual(t, dist, 800.0)
	assert.Equal(t, wall, c.WallAt(hx, hy))
}

func TestCastRays_CentralBlockCloserThanBorder(t *testing.T) {
	c := referenceCaster(t)
	x, y := 96.0, 288.0 // center of tile (1,4)

	blockDist, blockWall, _, _ := c.CastSingleRay(x, y, 0)
	borderDist, borderWall, _, _ := c.CastSingleRay(x, y, math.Pi/2)

	assert.Equal(t, 3, blockWall)
	assert.Equal(t, 160.0, blockDist)
	assert.Equal(t, 1, borderWall)
	assert.Equal(t, 288.0, borderDist)
	assert.Less(t, blockDist, borderDist)

	rays := c.CastRays(x, y, 0)
	center := rays[60]
	assert.Equal(t, 3, center.WallType)
	assert.InDelta(t, 160.0, center.Distance, 1e-9)
}

func TestCastRays_AlignedRayIsUncorrected(t *testing.T) {
	c := referenceCaster(t)
	rays := c.CastRays(96, 288, 0)

	center := rays[60]
	raw, _, _, _ := c.CastSingleRay(96, 288, center.Angle)
	assert.Equal(t, raw, center.Distance)

	edge := rays[0]
	rawEdge, _, _, _ := c.CastSingleRay(96, 288, edge.Angle)
	assert.InDelta(t, rawEdge*math.Cos(math.Pi/6), edge.Distance, 1e-9)
}

func TestCastSingleRay_LeavesMap(t *testing.T) {
	c := NewCaster(openGrid(t, 3, 3), referenceParams())

	dist, wall, hx, hy := c.CastSingleRay(96, 96, 0)
	assert.Equal(t, 800.0, dist)
	assert.Equal(t, 0, wall)
	// The boundary-crossing point, not a max-depth point.
	assert.Equal(t, 192.0, hx)
	assert.Equal(t, 96.0, hy)
}

func TestCastSingleRay_MaxDepthExhausted(t *testing.T) {
	params := referenceParams()
	params.MaxDepth = 100
	c := NewCaster(openGrid(t, 20, 20), params)

	dist, wall, hx, hy := c.CastSingleRay(640, 640, math.Pi)
	assert.Equal(t, 100.0, dist)
	assert.Equal(t, 0, wall)
	assert.InDelta(t, 540.0, hx, 1e-9)
	assert.InDelta(t, 640.0, hy, 1e-9)
}

func TestCastRays_NeverExceedMaxDepth(t *testing.T) {
	c := referenceCaster(t)
	for _, heading := range []float64{0, 0.7, 2, math.Pi, 4.5, 6.2} {
		for _, r := range c.CastRays(300, 160, heading) {
			assert.LessOrEqual(t, r.Distance, 800.0)
			assert.Greater(t, r.Distance, 0.0)
			if r.Hit() {
				assert.Equal(t, r.WallType, c.WallAt(r.HitX, r.HitY))
			}
		}
	}
}

func TestCastRays_ParallelFanMatchesSerial(t *testing.T) {
	c := referenceCaster(t)
	pr := rendering.NewParallelRenderer(4)
	defer pr.Stop()

	parallel := c.WithFan(pr)
	for _, heading := range []float64{0, 1.3, 3.9} {
		assert.Equal(t, c.CastRays(200, 420, heading), parallel.CastRays(200, 420, heading))
	}
}

func TestCastRaysInto_ReusesBuffer(t *testing.T) {
	c := referenceCaster(t)
	buf := make([]Ray, 120)
	c.CastRaysInto(buf, 96, 96, 0)
	assert.Equal(t, 1, buf[60].WallType)
}

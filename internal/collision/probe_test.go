package collision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockTileChecker implements TileChecker for testing
type mockTileChecker struct {
	width, height int
	tileSize      float64
	solid         map[[2]int]bool
}

func newMockTileChecker(width, height int) *mockTileChecker {
	return &mockTileChecker{
		width:    width,
		height:   height,
		tileSize: 64,
		solid:    make(map[[2]int]bool),
	}
}

func (m *mockTileChecker) IsSolid(col, row int) bool {
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		return true
	}
	return m.solid[[2]int{col, row}]
}

func (m *mockTileChecker) TileSize() float64 { return m.tileSize }

func (m *mockTileChecker) setSolid(col, row int) {
	m.solid[[2]int{col, row}] = true
}

func TestIsBlocked_ConvertsWorldToCell(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	checker.setSolid(3, 2)
	probe := NewProbe(checker)

	if !probe.IsBlocked(3*64+1, 2*64+1) {
		t.Errorf("Expected point inside cell (3, 2) to be blocked")
	}
	if probe.IsBlocked(3*64-0.5, 2*64+1) {
		t.Errorf("Expected point just left of cell (3, 2) to be free")
	}
	if !probe.IsBlocked(-0.5, 100) {
		t.Errorf("Expected negative coordinates to be out of bounds and blocked")
	}
	if !probe.IsBlocked(640, 100) {
		t.Errorf("Expected x == map width to be out of bounds and blocked")
	}
}

func TestIsBlockedCircle_SamplesEightPoints(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	probe := NewProbe(checker)

	// Center of tile (1,1) with radius 20 stays inside the tile.
	if probe.IsBlockedCircle(96, 96, 20) {
		t.Errorf("Expected circle inside an open tile to be free")
	}

	checker.setSolid(2, 1)
	// The right sample reaches x=128+10 which is inside (2,1).
	if !probe.IsBlockedCircle(118, 96, 20) {
		t.Errorf("Expected right sample to hit solid neighbor")
	}

	// A diagonal-only neighbor: samples at ±14 on the diagonals.
	diag := newMockTileChecker(10, 10)
	diag.setSolid(2, 2)
	p2 := NewProbe(diag)
	assert.True(t, p2.IsBlockedCircle(120, 120, 20), "diagonal sample (134,134) lies in (2,2)")
	assert.False(t, p2.IsBlockedCircle(110, 110, 20), "diagonal sample (124,124) is still in (1,1)")
}

func TestIsBlockedCircle_DiagonalFactor(t *testing.T) {
	pts := NewCircle(0, 0, 10).SamplePoints()
	assert.Len(t, pts, 8)
	assert.Equal(t, Point{X: 10, Y: 0}, pts[0])
	assert.Equal(t, Point{X: 0, Y: -10}, pts[3])
	assert.InDelta(t, 7.0, pts[4].X, 1e-12)
	assert.InDelta(t, -7.0, pts[7].Y, 1e-12)
	assert.InDelta(t, math.Sqrt2/2, DiagonalFactor, 0.01)
}

func TestProbeWithoutMapFailsOpen(t *testing.T) {
	probe := NewProbe(nil)
	assert.False(t, probe.Attached())
	assert.False(t, probe.IsBlocked(-1000, -1000))
	assert.False(t, probe.IsBlockedCircle(-1000, -1000, 20))
	assert.True(t, probe.CheckLineOfSight(0, 0, 1000, 1000))

	res := probe.Slide(0, 0, 5, -5, 20)
	assert.Equal(t, 5.0, res.X)
	assert.Equal(t, -5.0, res.Y)

	var nilProbe *Probe
	assert.False(t, nilProbe.IsBlocked(0, 0))

	probe.Attach(newMockTileChecker(1, 1))
	assert.True(t, probe.Attached())
	assert.True(t, probe.IsBlocked(-1, 0))
}

func TestSlide_AlongWall(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	// Only the X neighbor of tile (1,1) is solid.
	checker.setSolid(2, 1)
	probe := NewProbe(checker)

	res := probe.Slide(100, 96, 10, 5, 20)
	assert.True(t, res.BlockedX, "X motion into (2,1) must be rejected")
	assert.False(t, res.BlockedY, "Y motion must still apply")
	assert.Equal(t, 100.0, res.X)
	assert.Equal(t, 101.0, res.Y)
}

func TestSlide_YTestedFromCommittedX(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	checker.setSolid(1, 2)
	probe := NewProbe(checker)

	// Start at (96, 96). Moving Y by +30 alone would put the bottom sample
	// at 146, inside (1,2). Moving X first by +64 takes the circle to column 2
	// where the downward move is clear.
	res := probe.Slide(96, 96, 64, 30, 20)
	assert.False(t, res.BlockedX)
	assert.False(t, res.BlockedY)
	assert.Equal(t, 160.0, res.X)
	assert.Equal(t, 126.0, res.Y)
}

func TestCheckLineOfSight(t *testing.T) {
	checker := newMockTileChecker(10, 10)
	probe := NewProbe(checker)

	if !probe.CheckLineOfSight(96, 96, 544, 96) {
		t.Errorf("Expected clear line of sight across an empty row")
	}

	checker.setSolid(4, 1)
	if probe.CheckLineOfSight(96, 96, 544, 96) {
		t.Errorf("Expected solid tile (4,1) to block line of sight")
	}
	if !probe.CheckLineOfSight(96, 160, 544, 160) {
		t.Errorf("Expected row 2 to remain clear")
	}
	if probe.CheckLineOfSight(96, 96, -10, 96) {
		t.Errorf("Expected leaving the map to block line of sight")
	}
}

func TestCircleHelpers(t *testing.T) {
	a := NewCircle(0, 0, 5)
	b := NewCircle(8, 0, 5)
	c := NewCircle(20, 0, 5)

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
	assert.Equal(t, 8.0, a.DistanceTo(b))
	assert.True(t, a.Contains(Point{X: 3, Y: 4}))
	assert.False(t, a.Contains(Point{X: 4, Y: 4}))
}

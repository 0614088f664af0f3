package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magearena/internal/collision"
	"magearena/internal/config"
	"magearena/internal/world"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(DefaultPlayerX, DefaultPlayerY, 0, DefaultHealth)

	assert.Equal(t, 300.0, p.X)
	assert.Equal(t, 300.0, p.Y)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 100, p.MaxHealth)
	assert.Equal(t, 2.0, p.MoveSpeed)
	assert.Equal(t, 0.05, p.RotSpeed)
	assert.Equal(t, 20.0, p.CollisionRadius)
	assert.Equal(t, 0.0, p.Pitch)
}

func TestNewPlayerFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	p := NewPlayerFromConfig(cfg.Player, cfg.GetTileSize())
	assert.Equal(t, cfg.Player.StartX, p.X)
	assert.Equal(t, cfg.Player.MaxHealth, p.MaxHealth)
	assert.Equal(t, 64.0, p.TileSize)
}

func TestMoveWithoutMapIsUnblocked(t *testing.T) {
	p := NewPlayer(0, 0, 0, 100)

	res := p.Move(1, 0, 0.5)
	assert.InDelta(t, 100.0, p.X, 1e-9, "speed 2 * dt 0.5 * 100")
	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.False(t, res.BlockedX)
	assert.False(t, p.CheckCollision(-500, -500))
	assert.False(t, p.CheckCollisionCircle(-500, -500))
}

func TestMoveRotatesInputByHeading(t *testing.T) {
	p := NewPlayer(0, 0, math.Pi/2, 100)

	// Facing +Y, forward moves along +Y.
	p.Move(1, 0, 0.1)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 20.0, p.Y, 1e-9)

	// Strafing right while facing +Y moves along -X.
	p.Move(0, 1, 0.1)
	assert.InDelta(t, -20.0, p.X, 1e-9)
	assert.InDelta(t, 20.0, p.Y, 1e-9)

	p.MoveAt(-1, 0, 0.1, 1)
	assert.InDelta(t, 10.0, p.Y, 1e-9)
}

func TestMoveSlidesAlongWall(t *testing.T) {
	grid := world.MustNewGrid([][]int{
		{0, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 0},
	}, 64)

	p := NewPlayer(105, 96, math.Pi/4, 100)
	p.SetMap(collision.NewProbe(grid))

	res := p.Move(1, 0, 0.05)
	assert.True(t, res.BlockedX, "the X neighbor is solid")
	assert.False(t, res.BlockedY, "Y motion still applies")
	assert.Equal(t, 105.0, p.X)
	assert.InDelta(t, 96+math.Sqrt2/2*10, p.Y, 1e-9)
}

func TestMoveStopsAtArenaBorder(t *testing.T) {
	grid, err := world.ReferenceArena(64)
	require.NoError(t, err)

	p := NewPlayer(96, 96, math.Pi, 100)
	p.SetMap(collision.NewProbe(grid))

	for i := 0; i < 100; i++ {
		p.Move(1, 0, 1.0/60)
	}
	assert.GreaterOrEqual(t, p.X-p.CollisionRadius, 64.0, "circle never enters the border")
	assert.False(t, p.CheckCollisionCircle(p.X, p.Y))
}

func TestRotateNormalizesHeading(t *testing.T) {
	p := NewPlayer(0, 0, 0, 100)

	p.Rotate(-1)
	assert.InDelta(t, 2*math.Pi-5, p.Angle, 1e-9)

	for i := 0; i < 1000; i++ {
		p.Rotate(1)
		if p.Angle < 0 || p.Angle >= 2*math.Pi {
			t.Fatalf("Heading %v escaped [0, 2π) after %d rotations", p.Angle, i+1)
		}
	}

	p.Rotate(0.002) // one mouse pixel at the default sensitivity
	assert.GreaterOrEqual(t, p.Angle, 0.0)
}

func TestLookUpDownClamps(t *testing.T) {
	p := NewPlayer(0, 0, 0, 100)

	p.LookUpDown(0.002)
	assert.InDelta(t, 0.1, p.Pitch, 1e-12)

	p.LookUpDown(1)
	assert.Equal(t, MaxPitch, p.Pitch)

	p.LookUpDown(-10)
	assert.Equal(t, -MaxPitch, p.Pitch)
}

func TestHealthClamp(t *testing.T) {
	p := NewPlayer(0, 0, 0, 100)

	p.TakeDamage(30)
	assert.Equal(t, 70, p.Health)
	assert.True(t, p.IsAlive())

	p.Heal(500)
	assert.Equal(t, 100, p.Health)

	p.TakeDamage(150)
	assert.Equal(t, 0, p.Health)
	assert.False(t, p.IsAlive())

	p.Reset(96, 96, -math.Pi/2)
	assert.Equal(t, 100, p.Health)
	assert.InDelta(t, 3*math.Pi/2, p.Angle, 1e-12)
}

func TestAccessors(t *testing.T) {
	p := NewPlayer(130, 70, 0, 100)

	x, y := p.Position()
	assert.Equal(t, 130.0, x)
	assert.Equal(t, 70.0, y)

	dx, dy := p.Direction()
	assert.InDelta(t, 1.0, dx, 1e-12)
	assert.InDelta(t, 0.0, dy, 1e-12)

	col, row := p.MapPosition()
	assert.Equal(t, 2, col)
	assert.Equal(t, 1, row)
}

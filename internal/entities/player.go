package entities

import (
	"math"

	"magearena/internal/collision"
	"magearena/internal/config"
	"magearena/internal/mathutil"
)

// Scale constants that turn unit input deltas into world motion.
const (
	MoveScale  = 100.0
	RotScale   = 100.0
	PitchScale = 50.0
	MaxPitch   = math.Pi / 3
)

// Defaults used when a player is built without a config.
const (
	DefaultPlayerX         = 300.0
	DefaultPlayerY         = 300.0
	DefaultHealth          = 100
	DefaultMoveSpeed       = 2.0
	DefaultRotSpeed        = 0.05
	DefaultCollisionRadius = 20.0
	DefaultTileSize        = 64.0
)

// Player owns the pose and health. Only the frame loop mutates it; the
// caster and projector read it.
type Player struct {
	X, Y  float64
	Angle float64 // heading in [0, 2π)
	Pitch float64 // display only, in [-MaxPitch, MaxPitch]

	Health    int
	MaxHealth int

	MoveSpeed       float64
	RotSpeed        float64
	CollisionRadius float64
	TileSize        float64

	probe *collision.Probe
}

// NewPlayer creates a player with the reference speeds and no map attached.
func NewPlayer(x, y, angle float64, health int) *Player {
	return &Player{
		X:               x,
		Y:               y,
		Angle:           mathutil.NormalizeAngle(angle),
		Health:          health,
		MaxHealth:       health,
		MoveSpeed:       DefaultMoveSpeed,
		RotSpeed:        DefaultRotSpeed,
		CollisionRadius: DefaultCollisionRadius,
		TileSize:        DefaultTileSize,
	}
}

// NewPlayerFromConfig builds a player from the player section of the config.
func NewPlayerFromConfig(pc config.PlayerConfig, tileSize float64) *Player {
	p := NewPlayer(pc.StartX, pc.StartY, pc.StartAngle, pc.MaxHealth)
	p.MoveSpeed = pc.Speed
	p.RotSpeed = pc.RotSpeed
	p.CollisionRadius = pc.CollisionRadius
	p.TileSize = tileSize
	return p
}

// SetMap attaches the collision probe. A nil probe, or a probe without a map,
// never blocks movement.
func (p *Player) SetMap(probe *collision.Probe) {
	p.probe = probe
}

// CheckCollision reports whether the point (x, y) is inside a wall.
func (p *Player) CheckCollision(x, y float64) bool {
	return p.probe.IsBlocked(x, y)
}

// CheckCollisionCircle reports whether the player's circle at (x, y) touches
// a wall.
func (p *Player) CheckCollisionCircle(x, y float64) bool {
	return p.probe.IsBlockedCircle(x, y, p.CollisionRadius)
}

// Move moves the player at its own speed. forward and strafe are -1, 0 or 1
// (1 is forward and right).
func (p *Player) Move(forward, strafe, dt float64) collision.MoveResult {
	return p.MoveAt(forward, strafe, dt, p.MoveSpeed)
}

// MoveAt rotates (forward, strafe) into world space by the heading and
// applies it with axis-separated sliding.
func (p *Player) MoveAt(forward, strafe, dt, speed float64) collision.MoveResult {
	sin, cos := math.Sincos(p.Angle)
	dx := (cos*forward - sin*strafe) * speed * dt * MoveScale
	dy := (sin*forward + cos*strafe) * speed * dt * MoveScale

	res := p.probe.Slide(p.X, p.Y, dx, dy, p.CollisionRadius)
	p.X, p.Y = res.X, res.Y
	return res
}

// Rotate turns by delta*RotSpeed*RotScale and wraps into [0, 2π). Rotation
// is never blocked.
func (p *Player) Rotate(delta float64) {
	p.Angle = mathutil.NormalizeAngle(p.Angle + delta*p.RotSpeed*RotScale)
}

// LookUpDown changes the pitch by delta*PitchScale, clamped to ±π/3.
func (p *Player) LookUpDown(delta float64) {
	p.Pitch = mathutil.Clamp(p.Pitch+delta*PitchScale, -MaxPitch, MaxPitch)
}

// TakeDamage subtracts damage, flooring health at 0.
func (p *Player) TakeDamage(damage int) {
	p.Health = max(0, p.Health-damage)
}

// Heal adds amount, capping health at MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health = min(p.MaxHealth, p.Health+amount)
}

func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// Position returns the world position
func (p *Player) Position() (float64, float64) {
	return p.X, p.Y
}

// Heading returns the view angle in radians
func (p *Player) Heading() float64 {
	return p.Angle
}

// Direction returns the unit heading vector
func (p *Player) Direction() (float64, float64) {
	return math.Cos(p.Angle), math.Sin(p.Angle)
}

// MapPosition returns the tile the player stands in.
func (p *Player) MapPosition() (col, row int) {
	return mathutil.FloorDiv(p.X, p.TileSize), mathutil.FloorDiv(p.Y, p.TileSize)
}

// Reset puts the player back at a spawn point with full health.
func (p *Player) Reset(x, y, angle float64) {
	p.X, p.Y = x, y
	p.Angle = mathutil.NormalizeAngle(angle)
	p.Pitch = 0
	p.Health = p.MaxHealth
}

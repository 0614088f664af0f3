package entities

import (
	"math"
	"math/rand/v2"

	"magearena/internal/collision"
	"magearena/internal/config"
)

// EnemyKind is the closed set of enemy types.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
	EnemyTank
	EnemyBoss
	numEnemyKinds
)

var enemyKindNames = [numEnemyKinds]string{
	EnemyBasic: "basic",
	EnemyFast:  "fast",
	EnemyTank:  "tank",
	EnemyBoss:  "boss",
}

func (k EnemyKind) String() string {
	if k < 0 || k >= numEnemyKinds {
		return enemyKindNames[EnemyBasic]
	}
	return enemyKindNames[k]
}

// ParseEnemyKind maps a kind name to its kind. Unknown names fall back to
// EnemyBasic.
func ParseEnemyKind(name string) EnemyKind {
	for k, n := range enemyKindNames {
		if n == name {
			return EnemyKind(k)
		}
	}
	return EnemyBasic
}

// EnemyStats are the per-kind base values.
type EnemyStats struct {
	Health int
	Damage int
	Speed  float64
}

// EnemyTable holds stats for every kind, indexed by EnemyKind.
type EnemyTable [numEnemyKinds]EnemyStats

// DefaultEnemyTable returns the reference stats.
func DefaultEnemyTable() EnemyTable {
	return EnemyTable{
		EnemyBasic: {Health: 50, Damage: 10, Speed: 2},
		EnemyFast:  {Health: 30, Damage: 5, Speed: 4},
		EnemyTank:  {Health: 100, Damage: 15, Speed: 1},
		EnemyBoss:  {Health: 200, Damage: 25, Speed: 1.5},
	}
}

// EnemyTableFromConfig overlays configured kinds on the defaults. Names
// that are not a known kind are ignored.
func EnemyTableFromConfig(cfg config.EnemiesConfig) EnemyTable {
	table := DefaultEnemyTable()
	for name, ec := range cfg.Kinds {
		for k, n := range enemyKindNames {
			if n == name {
				table[k] = EnemyStats{Health: ec.Health, Damage: ec.Damage, Speed: ec.Speed}
			}
		}
	}
	return table
}

// Stats returns the stats for kind, using EnemyBasic for out-of-range kinds.
func (t EnemyTable) Stats(kind EnemyKind) EnemyStats {
	if kind < 0 || kind >= numEnemyKinds {
		return t[EnemyBasic]
	}
	return t[kind]
}

// AIState is the enemy behaviour state.
type AIState int

const (
	AIIdle AIState = iota
	AIChasing
	AIAttacking
)

func (s AIState) String() string {
	switch s {
	case AIChasing:
		return "chasing"
	case AIAttacking:
		return "attacking"
	default:
		return "idle"
	}
}

// Behavior holds the ranges and timers shared by all enemies.
type Behavior struct {
	DetectionRange float64
	AttackRange    float64
	AttackCooldown float64 // seconds
	Radius         float64
}

// Speed multipliers for the two moving states.
const (
	chaseScale       = 60.0
	idleWanderChance = 0.01
)

// DefaultBehavior returns the reference ranges.
func DefaultBehavior() Behavior {
	return Behavior{
		DetectionRange: 500,
		AttackRange:    100,
		AttackCooldown: 2.0,
		Radius:         16,
	}
}

// BehaviorFromConfig reads the enemy ranges; zero values keep defaults.
func BehaviorFromConfig(cfg config.EnemiesConfig) Behavior {
	b := DefaultBehavior()
	if cfg.DetectionRange > 0 {
		b.DetectionRange = cfg.DetectionRange
	}
	if cfg.AttackRange > 0 {
		b.AttackRange = cfg.AttackRange
	}
	if cfg.AttackCooldown > 0 {
		b.AttackCooldown = cfg.AttackCooldown
	}
	if cfg.Radius > 0 {
		b.Radius = cfg.Radius
	}
	return b
}

// Target is what an enemy chases and attacks.
type Target interface {
	Position() (float64, float64)
	TakeDamage(damage int)
}

// Enemy is a single opponent in the arena.
type Enemy struct {
	ID        int
	X, Y      float64
	Kind      EnemyKind
	Health    int
	MaxHealth int
	Damage    int
	Speed     float64
	State     AIState

	alive          bool
	attackCooldown float64
	behavior       Behavior
	probe          *collision.Probe
	rng            *rand.Rand
}

// NewEnemy creates a living enemy of kind at (x, y).
func NewEnemy(id int, x, y float64, kind EnemyKind, stats EnemyStats, behavior Behavior) *Enemy {
	return &Enemy{
		ID:        id,
		X:         x,
		Y:         y,
		Kind:      kind,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		Damage:    stats.Damage,
		Speed:     stats.Speed,
		State:     AIIdle,
		alive:     true,
		behavior:  behavior,
	}
}

func (e *Enemy) IsAlive() bool { return e.alive }

func (e *Enemy) Position() (float64, float64) { return e.X, e.Y }

// Radius is the enemy's collision and hit radius.
func (e *Enemy) Radius() float64 { return e.behavior.Radius }

// AttackCooldown returns the seconds left before the next attack.
func (e *Enemy) AttackCooldown() float64 { return e.attackCooldown }

// Update advances the AI by dt seconds. It returns true when the enemy hit
// the target this update.
func (e *Enemy) Update(dt float64, target Target) bool {
	if !e.alive {
		return false
	}

	tx, ty := target.Position()
	dx := tx - e.X
	dy := ty - e.Y
	distance := math.Hypot(dx, dy)

	if e.attackCooldown > 0 {
		e.attackCooldown -= dt
	}

	switch {
	case distance > e.behavior.DetectionRange:
		e.State = AIIdle
		e.wander(dt)
	case distance > e.behavior.AttackRange:
		e.State = AIChasing
		e.chase(dx, dy, distance, dt)
	default:
		e.State = AIAttacking
		return e.attack(target)
	}
	return false
}

func (e *Enemy) wander(dt float64) {
	if e.rng == nil || e.rng.Float64() >= idleWanderChance {
		return
	}
	jx := (e.rng.Float64()*2 - 1) * e.Speed * dt
	jy := (e.rng.Float64()*2 - 1) * e.Speed * dt
	e.move(jx, jy)
}

func (e *Enemy) chase(dx, dy, distance, dt float64) {
	if distance > 0 {
		dx /= distance
		dy /= distance
	}
	e.move(dx*e.Speed*dt*chaseScale, dy*e.Speed*dt*chaseScale)
}

func (e *Enemy) move(dx, dy float64) {
	res := e.probe.Slide(e.X, e.Y, dx, dy, e.behavior.Radius)
	e.X, e.Y = res.X, res.Y
}

func (e *Enemy) attack(target Target) bool {
	if e.attackCooldown > 0 {
		return false
	}
	target.TakeDamage(e.Damage)
	e.attackCooldown = e.behavior.AttackCooldown
	return true
}

// DamageMultiplier returns how strongly spell affects kind: fire burns tanks
// and lightning catches fast enemies at 1.5x.
func DamageMultiplier(spell SpellKind, kind EnemyKind) float64 {
	switch {
	case spell == SpellFireball && kind == EnemyTank:
		return 1.5
	case spell == SpellLightning && kind == EnemyFast:
		return 1.5
	default:
		return 1.0
	}
}

// TakeDamage applies damage scaled by the spell's multiplier and returns the
// damage actually dealt. The enemy dies at zero health.
func (e *Enemy) TakeDamage(damage int, spell SpellKind) int {
	if !e.alive {
		return 0
	}
	actual := int(float64(damage) * DamageMultiplier(spell, e.Kind))
	e.Health -= actual
	if e.Health <= 0 {
		e.die()
	}
	return actual
}

func (e *Enemy) die() {
	e.alive = false
	e.Health = 0
}

// HealthFraction returns health/max in [0, 1].
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

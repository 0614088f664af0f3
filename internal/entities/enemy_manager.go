package entities

import (
	"math/rand/v2"

	"github.com/kamstrup/intmap"

	"magearena/internal/collision"
)

// Attack records one enemy hitting the target during UpdateAll.
type Attack struct {
	EnemyID int
	Kind    EnemyKind
	Damage  int
}

// EnemyManager owns every enemy in the arena. Iteration follows insertion
// order so updates are deterministic.
type EnemyManager struct {
	table    EnemyTable
	behavior Behavior
	probe    *collision.Probe
	rng      *rand.Rand

	byID   *intmap.Map[int, *Enemy]
	order  []*Enemy
	nextID int
}

// NewEnemyManager creates an empty manager. probe and rng may be nil; a nil
// rng disables idle wandering.
func NewEnemyManager(table EnemyTable, behavior Behavior, probe *collision.Probe, rng *rand.Rand) *EnemyManager {
	return &EnemyManager{
		table:    table,
		behavior: behavior,
		probe:    probe,
		rng:      rng,
		byID:     intmap.New[int, *Enemy](16),
		nextID:   1,
	}
}

// Add spawns an enemy of kind at (x, y)
func (m *EnemyManager) Add(x, y float64, kind EnemyKind) *Enemy {
	e := NewEnemy(m.nextID, x, y, kind, m.table.Stats(kind), m.behavior)
	e.probe = m.probe
	e.rng = m.rng
	m.nextID++

	m.byID.Put(e.ID, e)
	m.order = append(m.order, e)
	return e
}

// AddNamed spawns an enemy by kind name; unknown names spawn a basic enemy.
func (m *EnemyManager) AddNamed(x, y float64, kind string) *Enemy {
	return m.Add(x, y, ParseEnemyKind(kind))
}

// Get returns the enemy with id, alive or dead, until it is removed
func (m *EnemyManager) Get(id int) (*Enemy, bool) {
	return m.byID.Get(id)
}

// UpdateAll advances every living enemy and returns the attacks that landed.
func (m *EnemyManager) UpdateAll(dt float64, target Target) []Attack {
	var attacks []Attack
	for _, e := range m.order {
		if !e.IsAlive() {
			continue
		}
		if e.Update(dt, target) {
			attacks = append(attacks, Attack{EnemyID: e.ID, Kind: e.Kind, Damage: e.Damage})
		}
	}
	return attacks
}

// RemoveDead drops dead enemies and returns how many were removed.
func (m *EnemyManager) RemoveDead() int {
	kept := m.order[:0]
	removed := 0
	for _, e := range m.order {
		if e.IsAlive() {
			kept = append(kept, e)
			continue
		}
		m.byID.Del(e.ID)
		removed++
	}
	for i := len(kept); i < len(m.order); i++ {
		m.order[i] = nil
	}
	m.order = kept
	return removed
}

// Alive returns the living enemies in insertion order.
func (m *EnemyManager) Alive() []*Enemy {
	alive := make([]*Enemy, 0, len(m.order))
	for _, e := range m.order {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	return alive
}

// Count returns the number of living enemies.
func (m *EnemyManager) Count() int {
	n := 0
	for _, e := range m.order {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// Clear removes every enemy.
func (m *EnemyManager) Clear() {
	m.byID.Clear()
	clear(m.order)
	m.order = m.order[:0]
}

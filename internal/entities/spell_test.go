package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"magearena/internal/config"
)

func TestSpellKindNames(t *testing.T) {
	assert.Equal(t, SpellFireball, ParseSpellKind("fireball"))
	assert.Equal(t, SpellLightning, ParseSpellKind("lightning"))
	assert.Equal(t, SpellNone, ParseSpellKind("none"))
	assert.Equal(t, SpellNone, ParseSpellKind("ice"))
	assert.Equal(t, "lightning", SpellLightning.String())
	assert.Equal(t, "none", SpellKind(9).String())
}

func TestNewSpellDefaults(t *testing.T) {
	s := NewSpell(SpellFireball)
	assert.Equal(t, 10, s.Damage)
	assert.Equal(t, 5.0, s.Speed)
	assert.Equal(t, "fireball", s.Name())
}

func TestSpellBook(t *testing.T) {
	book := NewSpellBook(config.SpellsConfig{
		Fireball: config.SpellConfig{Damage: 30},
	})
	assert.Equal(t, 30, book.Spell(SpellFireball).Damage)
	assert.Equal(t, 5.0, book.Spell(SpellFireball).Speed)
	assert.Equal(t, 10, book.Spell(SpellLightning).Damage, "zero config keeps the default")
	assert.Equal(t, SpellNone, book.Spell(SpellKind(-3)).Kind)
}

func TestSpellOnHit(t *testing.T) {
	tank := NewEnemy(1, 0, 0, EnemyTank, DefaultEnemyTable().Stats(EnemyTank), DefaultBehavior())
	s := Spell{Kind: SpellFireball, Damage: 20}

	assert.Equal(t, 30, s.OnHit(tank))
	assert.Equal(t, 70, tank.Health)
	assert.Equal(t, 0, s.OnHit(nil))
}

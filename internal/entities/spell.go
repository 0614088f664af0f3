package entities

import "magearena/internal/config"

// SpellKind identifies a spell. The set is closed.
type SpellKind int

const (
	SpellNone SpellKind = iota
	SpellFireball
	SpellLightning
)

var spellNames = [...]string{
	SpellNone:      "none",
	SpellFireball:  "fireball",
	SpellLightning: "lightning",
}

func (k SpellKind) String() string {
	if k < 0 || int(k) >= len(spellNames) {
		return spellNames[SpellNone]
	}
	return spellNames[k]
}

// ParseSpellKind maps a spell id to its kind; unknown ids give SpellNone.
func ParseSpellKind(name string) SpellKind {
	for k, n := range spellNames {
		if n == name && SpellKind(k) != SpellNone {
			return SpellKind(k)
		}
	}
	return SpellNone
}

const (
	DefaultSpellDamage = 10
	DefaultSpellSpeed  = 5.0
)

// Damageable is anything a spell can hit.
type Damageable interface {
	TakeDamage(damage int, spell SpellKind) int
}

// Spell is a cast spell with its damage.
type Spell struct {
	Kind   SpellKind
	Damage int
	Speed  float64
}

// NewSpell returns a spell with the default damage and speed.
func NewSpell(kind SpellKind) Spell {
	return Spell{Kind: kind, Damage: DefaultSpellDamage, Speed: DefaultSpellSpeed}
}

func (s Spell) Name() string { return s.Kind.String() }

// OnHit applies the spell to target and returns the damage dealt.
func (s Spell) OnHit(target Damageable) int {
	if target == nil {
		return 0
	}
	return target.TakeDamage(s.Damage, s.Kind)
}

// SpellBook resolves spell kinds to configured spells.
type SpellBook struct {
	spells [len(spellNames)]Spell
}

// NewSpellBook builds the book from config; zero values keep the defaults.
func NewSpellBook(cfg config.SpellsConfig) SpellBook {
	var b SpellBook
	for k := range b.spells {
		b.spells[k] = NewSpell(SpellKind(k))
	}
	b.apply(SpellFireball, cfg.Fireball)
	b.apply(SpellLightning, cfg.Lightning)
	return b
}

func (b *SpellBook) apply(kind SpellKind, sc config.SpellConfig) {
	if sc.Damage > 0 {
		b.spells[kind].Damage = sc.Damage
	}
	if sc.Speed > 0 {
		b.spells[kind].Speed = sc.Speed
	}
}

// Spell returns the configured spell for kind.
func (b SpellBook) Spell(kind SpellKind) Spell {
	if kind < 0 || int(kind) >= len(b.spells) {
		return NewSpell(SpellNone)
	}
	return b.spells[kind]
}

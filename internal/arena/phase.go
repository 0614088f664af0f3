package arena

import (
	"magearena/internal/config"
	"magearena/internal/entities"
)

// Phase is one stage of a run: a kill target, an optional required spell and
// the enemies spawned when it starts.
type Phase struct {
	Name      string
	Objective string
	Required  entities.SpellKind // SpellNone accepts any spell
	Targets   int
	Spawns    []config.SpawnConfig
}

// Accepts reports whether spell counts in this phase.
func (p Phase) Accepts(spell entities.SpellKind) bool {
	return p.Required == entities.SpellNone || p.Required == spell
}

// PhasesFromConfig converts the configured phases.
func PhasesFromConfig(cfg []config.PhaseConfig) []Phase {
	phases := make([]Phase, 0, len(cfg))
	for _, pc := range cfg {
		phases = append(phases, Phase{
			Name:      pc.Name,
			Objective: pc.Objective,
			Required:  entities.ParseSpellKind(pc.RequiredSpell),
			Targets:   pc.Targets,
			Spawns:    pc.Spawns,
		})
	}
	return phases
}

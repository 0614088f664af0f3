package voice

import (
	"strings"

	"magearena/internal/config"
	"magearena/internal/entities"
)

// Keyword maps a spoken phrase to a spell.
type Keyword struct {
	Phrase string
	Spell  entities.SpellKind
}

// DefaultKeywords is the Spanish phrase list. Order matters: "bola de fuego"
// must be tried before "fuego".
func DefaultKeywords() []Keyword {
	return []Keyword{
		{Phrase: "bola de fuego", Spell: entities.SpellFireball},
		{Phrase: "fuego", Spell: entities.SpellFireball},
		{Phrase: "rayo", Spell: entities.SpellLightning},
		{Phrase: "trueno", Spell: entities.SpellLightning},
		{Phrase: "relámpago", Spell: entities.SpellLightning},
	}
}

// KeywordsFromConfig converts the configured list, skipping entries with an
// empty phrase or an unknown spell. An empty result falls back to
// DefaultKeywords.
func KeywordsFromConfig(cfg []config.KeywordConfig) []Keyword {
	kws := make([]Keyword, 0, len(cfg))
	for _, kc := range cfg {
		spell := entities.ParseSpellKind(kc.Spell)
		phrase := strings.ToLower(strings.TrimSpace(kc.Phrase))
		if phrase == "" || spell == entities.SpellNone {
			continue
		}
		kws = append(kws, Keyword{Phrase: phrase, Spell: spell})
	}
	if len(kws) == 0 {
		return DefaultKeywords()
	}
	return kws
}

// Matcher finds the first keyword contained in an utterance.
type Matcher struct {
	keywords []Keyword
}

func NewMatcher(keywords []Keyword) *Matcher {
	return &Matcher{keywords: keywords}
}

// Match lowercases text and returns the spell of the first keyword it
// contains.
func (m *Matcher) Match(text string) (entities.SpellKind, bool) {
	text = strings.ToLower(text)
	for _, kw := range m.keywords {
		if strings.Contains(text, kw.Phrase) {
			return kw.Spell, true
		}
	}
	return entities.SpellNone, false
}

// Phrases lists the accepted phrases in match order.
func (m *Matcher) Phrases() []string {
	out := make([]string, len(m.keywords))
	for i, kw := range m.keywords {
		out[i] = kw.Phrase
	}
	return out
}

// TextToSpell matches text against DefaultKeywords. Unrecognized text gives
// SpellNone.
func TextToSpell(text string) entities.SpellKind {
	s, _ := defaultMatcher.Match(text)
	return s
}

var defaultMatcher = NewMatcher(DefaultKeywords())

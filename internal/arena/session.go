// Package arena runs one game session: player, enemies, phases and the
// menu/pause state machine, independent of any frontend.
package arena

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"magearena/internal/audio"
	"magearena/internal/collision"
	"magearena/internal/config"
	"magearena/internal/entities"
	"magearena/internal/mathutil"
	"magearena/internal/raycast"
	"magearena/internal/state"
	"magearena/internal/voice"
	"magearena/internal/world"
)

// Run outcomes, as stored in the run history.
const (
	OutcomeVictory = "victory"
	OutcomeDefeat  = "defeat"
	OutcomeAbandon = "abandoned"
)

const messageDuration = 2.0 // seconds

var (
	ErrNoPhases  = errors.New("arena: no phases configured")
	ErrBadSpawn  = errors.New("arena: spawn point is not an open cell")
	ErrNilGrid   = errors.New("arena: nil grid")
	ErrNilConfig = errors.New("arena: nil config")
)

// Summary describes a finished run.
type Summary struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Outcome    string
	Phase      int // 1-based phase reached
	Kills      int
	SpellsCast int
	Health     int
}

// Duration is the wall-clock length of the run.
func (s Summary) Duration() time.Duration { return s.EndedAt.Sub(s.StartedAt) }

// Spawn is the player's starting pose.
type Spawn struct {
	X, Y  float64
	Angle float64
}

// SpawnFromMap returns the map's own spawn cell, or nil when it has none.
func SpawnFromMap(md *world.MapData) *Spawn {
	if md == nil || md.Grid == nil || !md.HasStart {
		return nil
	}
	x, y := md.Grid.TileCenter(md.StartCol, md.StartRow)
	return &Spawn{X: x, Y: y, Angle: md.StartAngle}
}

// CheckEnemySpawns reports the first phase spawn that is not an open cell of
// grid. An enemy outside the open cells can never be seen or hit.
func CheckEnemySpawns(grid *world.Grid, phases []Phase) error {
	for _, ph := range phases {
		for _, sp := range ph.Spawns {
			if !grid.InBounds(sp.Col, sp.Row) || grid.IsSolid(sp.Col, sp.Row) {
				return fmt.Errorf("%w: phase %q: %s enemy at (%d, %d) is not an open cell",
					ErrBadSpawn, ph.Name, sp.Kind, sp.Col, sp.Row)
			}
		}
	}
	return nil
}

// Options are the optional collaborators of a Session.
type Options struct {
	Logger *log.Logger
	// Voice carries spells heard by the voice listener.
	Voice *voice.Queue
	// Rand drives enemy wandering; nil disables it.
	Rand *rand.Rand
	// Fan spreads ray casting over workers; nil casts serially.
	Fan      raycast.FanRunner
	Now      func() time.Time
	OnRunEnd func(Summary)
	// Spawn overrides the configured start pose.
	Spawn *Spawn
	// Sounds receives spell and hit effects; nil plays nothing.
	Sounds audio.Player
}

// Session is the simulation behind every frontend. It is driven by Update
// from a single goroutine.
type Session struct {
	cfg     *config.Config
	grid    *world.Grid
	probe   *collision.Probe
	caster  *raycast.Caster
	player  *entities.Player
	enemies *entities.EnemyManager
	states  *state.Manager
	book    entities.SpellBook
	phases  []Phase
	spawn   Spawn

	voice    *voice.Queue
	sounds   audio.Player
	now      func() time.Time
	onRunEnd func(Summary)
	logger   *log.Logger

	phase       int
	phaseKills  int
	phaseTarget int
	kills       int
	spellsCast  int
	startedAt   time.Time
	elapsed     float64
	message     string
	messageLeft float64
	lastRun     *Summary
	quit        bool

	pending []entities.SpellKind
	rays    []raycast.Ray
}

// New builds a session on grid. The session starts in the menu.
func New(cfg *config.Config, grid *world.Grid, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	phases := PhasesFromConfig(cfg.Phases)
	if len(phases) == 0 {
		return nil, ErrNoPhases
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	spawn := Spawn{X: cfg.Player.StartX, Y: cfg.Player.StartY, Angle: cfg.Player.StartAngle}
	if opts.Spawn != nil {
		spawn = *opts.Spawn
	}

	probe := collision.NewProbe(grid)
	if probe.IsBlockedCircle(spawn.X, spawn.Y, cfg.Player.CollisionRadius) {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrBadSpawn, spawn.X, spawn.Y)
	}
	if err := CheckEnemySpawns(grid, phases); err != nil {
		return nil, err
	}

	player := entities.NewPlayerFromConfig(cfg.Player, grid.TileSize())
	player.Reset(spawn.X, spawn.Y, spawn.Angle)
	player.SetMap(probe)

	s := &Session{
		cfg:    cfg,
		grid:   grid,
		probe:  probe,
		caster: raycast.NewCaster(grid, raycast.ParamsFromConfig(cfg)).WithFan(opts.Fan),
		player: player,
		enemies: entities.NewEnemyManager(
			entities.EnemyTableFromConfig(cfg.Enemies),
			entities.BehaviorFromConfig(cfg.Enemies),
			probe,
			opts.Rand,
		),
		states:   state.NewManager(),
		book:     entities.NewSpellBook(cfg.Spells),
		phases:   phases,
		spawn:    spawn,
		voice:    opts.Voice,
		sounds:   opts.Sounds,
		now:      now,
		onRunEnd: opts.OnRunEnd,
		logger:   logger,
		rays:     make([]raycast.Ray, cfg.Raycast.NumRays),
	}
	s.states.OnChange(func(from, to state.GameState) {
		s.logger.Debug("state changed", "from", from, "to", to)
	})
	return s, nil
}

// Update advances the session by dt seconds with one frame of input.
func (s *Session) Update(dt float64, in Input) error {
	switch s.states.Current() {
	case state.Menu:
		switch {
		case in.Escape:
			s.quit = true
		case in.Enter:
			s.startRun()
			return s.states.Change(state.Playing)
		case in.Settings:
			return s.states.Change(state.Settings)
		}
	case state.Settings:
		if in.Escape || in.Enter {
			return s.states.Change(state.Menu)
		}
	case state.Playing:
		if in.Escape {
			return s.states.Change(state.Paused)
		}
		return s.updatePlaying(dt, in)
	case state.Paused:
		switch {
		case in.Escape || in.Resume:
			return s.states.Change(state.Playing)
		case in.ToMenu:
			s.endRun(OutcomeAbandon)
			return s.states.Change(state.Menu)
		}
	case state.GameOver, state.Victory:
		if in.Enter {
			return s.states.Change(state.Menu)
		}
	}
	return nil
}

func (s *Session) updatePlaying(dt float64, in Input) error {
	s.elapsed += dt

	s.pending = s.pending[:0]
	if s.voice != nil {
		s.pending = s.voice.Drain(s.pending)
	}
	s.pending = append(s.pending, in.Casts...)
	for _, spell := range s.pending {
		s.cast(spell)
	}

	p := s.player
	if in.Forward != 0 || in.Strafe != 0 {
		p.Move(in.Forward, in.Strafe, dt)
	}
	if in.Turn != 0 {
		p.Rotate(in.Turn * dt * TurnRate)
	}
	if sens := s.cfg.Player.MouseSensitivity; sens > 0 {
		if in.MouseDX != 0 {
			p.Rotate(in.MouseDX * sens)
		}
		if in.MouseDY != 0 {
			p.LookUpDown(-in.MouseDY * sens)
		}
	}

	for _, a := range s.enemies.UpdateAll(dt, p) {
		s.logger.Debug("player hit", "enemy", a.EnemyID, "kind", a.Kind, "damage", a.Damage, "health", p.Health)
	}
	removed := s.enemies.RemoveDead()
	s.phaseKills += removed
	s.kills += removed

	if s.messageLeft > 0 {
		s.messageLeft -= dt
		if s.messageLeft <= 0 {
			s.message = ""
		}
	}

	if !p.IsAlive() {
		s.endRun(OutcomeDefeat)
		return s.states.Change(state.GameOver)
	}
	if s.phaseKills >= s.phaseTarget {
		if s.phase+1 >= len(s.phases) {
			s.endRun(OutcomeVictory)
			return s.states.Change(state.Victory)
		}
		s.startPhase(s.phase + 1)
	}
	return nil
}

func (s *Session) startRun() {
	s.player.Reset(s.spawn.X, s.spawn.Y, s.spawn.Angle)
	s.kills = 0
	s.spellsCast = 0
	s.elapsed = 0
	s.startedAt = s.now()
	s.startPhase(0)
	s.logger.Info("run started", "phases", len(s.phases))
}

func (s *Session) startPhase(i int) {
	s.phase = i
	s.phaseKills = 0
	s.enemies.Clear()

	ph := s.phases[i]
	for _, sp := range ph.Spawns {
		x, y := s.grid.TileCenter(sp.Col, sp.Row)
		s.enemies.AddNamed(x, y, sp.Kind)
	}
	s.phaseTarget = min(ph.Targets, len(ph.Spawns))
	s.showMessage(fmt.Sprintf("Fase %d: %s", i+1, ph.Name))
	s.logger.Info("phase started", "phase", i+1, "name", ph.Name, "targets", s.phaseTarget)
}

func (s *Session) endRun(outcome string) {
	sum := Summary{
		StartedAt:  s.startedAt,
		EndedAt:    s.now(),
		Outcome:    outcome,
		Phase:      s.phase + 1,
		Kills:      s.kills,
		SpellsCast: s.spellsCast,
		Health:     s.player.Health,
	}
	s.lastRun = &sum
	s.logger.Info("run ended", "outcome", outcome, "phase", sum.Phase, "kills", sum.Kills, "spells", sum.SpellsCast)
	if s.onRunEnd != nil {
		s.onRunEnd(sum)
	}
}

// cast fires spell at the nearest visible enemy. Dead enemies are counted
// by the next RemoveDead.
func (s *Session) cast(kind entities.SpellKind) {
	if kind == entities.SpellNone {
		return
	}
	s.spellsCast++

	ph := s.phases[s.phase]
	if !ph.Accepts(kind) {
		s.play(audio.EffectFizzle)
		s.showMessage(SpellLabel(kind) + " no funciona aquí")
		return
	}
	s.play(spellEffect(kind))

	target := s.findTarget()
	if target == nil {
		s.showMessage("Sin objetivo a la vista")
		return
	}

	dealt := s.book.Spell(kind).OnHit(target)
	s.logger.Debug("spell hit", "spell", kind, "enemy", target.ID, "damage", dealt, "health", target.Health)
	if !target.IsAlive() {
		s.play(audio.EffectDeath)
		s.showMessage("¡Enemigo derrotado!")
		return
	}
	s.play(audio.EffectHit)
	s.showMessage(fmt.Sprintf("%s: %d de daño", SpellLabel(kind), dealt))
}

func spellEffect(kind entities.SpellKind) audio.Effect {
	if kind == entities.SpellLightning {
		return audio.EffectLightning
	}
	return audio.EffectFireball
}

func (s *Session) play(e audio.Effect) {
	if s.sounds != nil {
		s.sounds.Play(e)
	}
}

// findTarget returns the nearest living enemy inside the field of view and
// max depth with a clear line of sight.
func (s *Session) findTarget() *entities.Enemy {
	p := s.player
	params := s.caster.Params()

	var best *entities.Enemy
	bestDist := math.Inf(1)
	for _, e := range s.enemies.Alive() {
		dx, dy := e.X-p.X, e.Y-p.Y
		dist := math.Hypot(dx, dy)
		if dist > params.MaxDepth || dist >= bestDist {
			continue
		}
		if math.Abs(mathutil.AngleDiff(math.Atan2(dy, dx), p.Angle)) > params.HalfFOV() {
			continue
		}
		if !s.probe.CheckLineOfSight(p.X, p.Y, e.X, e.Y) {
			continue
		}
		best, bestDist = e, dist
	}
	return best
}

func (s *Session) showMessage(msg string) {
	s.message = msg
	s.messageLeft = messageDuration
}

// SpellLabel is the on-screen name of a spell.
func SpellLabel(kind entities.SpellKind) string {
	switch kind {
	case entities.SpellFireball:
		return "Bola de fuego"
	case entities.SpellLightning:
		return "Rayo"
	default:
		return "Nada"
	}
}

// Rays casts the current view into the session's buffer. The slice is
// reused by the next call.
func (s *Session) Rays() []raycast.Ray {
	s.caster.CastRaysInto(s.rays, s.player.X, s.player.Y, s.player.Angle)
	return s.rays
}

func (s *Session) State() state.GameState { return s.states.Current() }

func (s *Session) States() *state.Manager { return s.states }

func (s *Session) Player() *entities.Player { return s.player }

func (s *Session) Grid() *world.Grid { return s.grid }

func (s *Session) Probe() *collision.Probe { return s.probe }

func (s *Session) Caster() *raycast.Caster { return s.caster }

func (s *Session) Config() *config.Config { return s.cfg }

func (s *Session) EnemyManager() *entities.EnemyManager { return s.enemies }

// Enemies returns the living enemies.
func (s *Session) Enemies() []*entities.Enemy { return s.enemies.Alive() }

// Phase returns the current phase and its 0-based index.
func (s *Session) Phase() (Phase, int) { return s.phases[s.phase], s.phase }

func (s *Session) NumPhases() int { return len(s.phases) }

// PhaseProgress returns kills and the kill target of the current phase.
func (s *Session) PhaseProgress() (kills, target int) { return s.phaseKills, s.phaseTarget }

// Message returns the transient status line, if one is showing.
func (s *Session) Message() (string, bool) { return s.message, s.message != "" }

func (s *Session) Kills() int { return s.kills }

func (s *Session) SpellsCast() int { return s.spellsCast }

// Elapsed is the play time of the current run in seconds, pauses excluded.
func (s *Session) Elapsed() float64 { return s.elapsed }

// LastRun returns the summary of the most recently finished run.
func (s *Session) LastRun() (Summary, bool) {
	if s.lastRun == nil {
		return Summary{}, false
	}
	return *s.lastRun, true
}

// QuitRequested reports whether the player asked to leave from the menu.
func (s *Session) QuitRequested() bool { return s.quit }

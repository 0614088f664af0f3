// Package termview renders an arena session in a terminal with tcell: one
// ray per character column, walls drawn with a shade ramp.
package termview

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"magearena/internal/arena"
	"magearena/internal/entities"
	"magearena/internal/raycast"
	"magearena/internal/render"
	"magearena/internal/state"
)

const (
	hudRows    = 2
	holdWindow = 150 * time.Millisecond
	eventQueue = 100
)

// DefaultRamp lists wall glyphs from near to far.
const DefaultRamp = "█▓▒░"

type action int

const (
	actForward action = iota
	actBack
	actLeft
	actRight
	actTurnLeft
	actTurnRight
	numActions
)

// Options configure a Terminal.
type Options struct {
	Logger *log.Logger
	Ramp   string
	Frame  time.Duration
	Now    func() time.Time
}

// Terminal drives a session from tcell events and draws it each frame.
type Terminal struct {
	screen  tcell.Screen
	session *arena.Session
	logger  *log.Logger
	ramp    []rune
	frame   time.Duration
	now     func() time.Time

	caster    *raycast.Caster
	projector *render.Projector
	walls     *render.Palette
	rays      []raycast.Ray
	cols      []render.Column
	width     int
	height    int

	// Terminals report key repeats, not key state, so a movement key counts
	// as held for holdWindow after its last event.
	held    [numActions]time.Time
	pending arena.Input
	quit    bool
}

// New wraps an initialized screen.
func New(screen tcell.Screen, session *arena.Session, opts Options) *Terminal {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ramp := opts.Ramp
	if ramp == "" {
		ramp = DefaultRamp
	}
	frame := opts.Frame
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cfg := session.Config()
	t := &Terminal{
		screen:  screen,
		session: session,
		logger:  logger.WithPrefix("term"),
		ramp:    []rune(ramp),
		frame:   frame,
		now:     now,
		walls:   render.NewPalette(cfg.Colors.Walls, render.RGB(cfg.Colors.WallDefault)),
	}
	t.resize()
	return t
}

// resize rebuilds the caster and projector for the current screen size.
func (t *Terminal) resize() {
	w, h := t.screen.Size()
	t.width, t.height = max(w, 1), max(h, hudRows+1)

	params := t.session.Caster().Params()
	params.NumRays = t.width
	t.caster = raycast.NewCaster(t.session.Grid(), params)

	view := render.ViewFromConfig(t.session.Config())
	view.Width = t.width
	view.Height = t.height - hudRows
	view.NumRays = t.width
	t.projector = render.NewProjector(view, t.walls)

	t.rays = make([]raycast.Ray, t.width)
}

// HandleEvent records one tcell event for the next Step.
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev)
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	now := t.now()
	switch ev.Key() {
	case tcell.KeyCtrlC:
		t.quit = true
	case tcell.KeyEscape:
		t.pending.Escape = true
	case tcell.KeyEnter:
		t.pending.Enter = true
	case tcell.KeyTab:
		t.pending.Settings = true
	case tcell.KeyUp:
		t.held[actForward] = now
	case tcell.KeyDown:
		t.held[actBack] = now
	case tcell.KeyLeft:
		t.held[actTurnLeft] = now
	case tcell.KeyRight:
		t.held[actTurnRight] = now
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			t.held[actForward] = now
		case 's':
			t.held[actBack] = now
		case 'a':
			t.held[actLeft] = now
		case 'd':
			t.held[actRight] = now
		case '1':
			t.pending.Casts = append(t.pending.Casts, entities.SpellFireball)
		case '2':
			t.pending.Casts = append(t.pending.Casts, entities.SpellLightning)
		case 'r':
			t.pending.Resume = true
		case 'm':
			t.pending.ToMenu = true
		case 'q':
			t.quit = true
		}
	}
}

// input returns the accumulated input for a frame at now and clears the
// one-shot actions.
func (t *Terminal) input(now time.Time) arena.Input {
	in := t.pending
	t.pending = arena.Input{}

	in.Forward = t.axis(now, actForward, actBack)
	in.Strafe = t.axis(now, actRight, actLeft)
	in.Turn = t.axis(now, actTurnRight, actTurnLeft)
	return in
}

func (t *Terminal) isHeld(now time.Time, a action) bool {
	last := t.held[a]
	return !last.IsZero() && now.Sub(last) <= holdWindow
}

func (t *Terminal) axis(now time.Time, pos, neg action) float64 {
	p, n := t.isHeld(now, pos), t.isHeld(now, neg)
	switch {
	case p && !n:
		return 1
	case n && !p:
		return -1
	default:
		return 0
	}
}

// Step advances the session by dt seconds and redraws.
func (t *Terminal) Step(dt float64) error {
	if err := t.session.Update(dt, t.input(t.now())); err != nil {
		return err
	}
	t.Draw()
	return nil
}

// Done reports whether the player asked to leave.
func (t *Terminal) Done() bool {
	return t.quit || t.session.QuitRequested()
}

// Run polls events and steps the session once per frame until the player
// quits or ctx is cancelled. The caller owns the screen and calls Fini.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventQueue)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.frame)
	defer ticker.Stop()

	t.Draw()
	last := t.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			t.HandleEvent(ev)
		case <-ticker.C:
			now := t.now()
			dt := now.Sub(last).Seconds()
			last = now
			if err := t.Step(dt); err != nil {
				t.logger.Warn("update", "err", err)
			}
			if t.Done() {
				return nil
			}
		}
	}
}

// Draw renders the current state and shows it.
func (t *Terminal) Draw() {
	t.screen.Clear()

	switch st := t.session.State(); st {
	case state.Menu:
		t.drawCentered("MAGE ARENA 3D", "ENTER comenzar · TAB ajustes · ESC salir", menuSummary(t.session))
	case state.Settings:
		cfg := t.session.Config()
		t.drawCentered("AJUSTES",
			fmt.Sprintf("FOV %.0f° · rayos %d · profundidad %.0f", cfg.Raycast.FOVDegrees, t.width, cfg.Raycast.MaxDepth),
			"ESC volver")
	default:
		t.drawWorld()
		t.drawMinimap()
		t.drawHUD()
		switch st {
		case state.Paused:
			t.drawCentered("PAUSA", "R reanudar · M menú")
		case state.GameOver:
			t.drawCentered("GAME OVER", runSummary(t.session), "ENTER menú")
		case state.Victory:
			t.drawCentered("¡VICTORIA!", runSummary(t.session), "ENTER menú")
		}
	}

	t.screen.Show()
}

func (t *Terminal) drawWorld() {
	p := t.session.Player()
	t.caster.CastRaysInto(t.rays, p.X, p.Y, p.Angle)

	canvas := cellCanvas{screen: t.screen, w: t.width, h: t.height - hudRows}
	t.projector.DrawBackground(canvas)

	maxDepth := t.projector.View().MaxDepth
	t.cols = t.projector.Columns(t.rays, t.cols)
	for _, col := range t.cols {
		glyph := t.glyph(col.Distance, maxDepth)
		style := tcell.StyleDefault.Foreground(rgb(col.Color))
		bottom := int(math.Ceil(col.Bottom))
		for row := int(col.Top); row < bottom && row < canvas.h; row++ {
			t.screen.SetContent(col.Index, row, glyph, nil, style)
		}
	}

	for _, e := range t.session.Enemies() {
		b, ok := t.projector.ProjectSprite(p.X, p.Y, p.Angle, e.X, e.Y, 2*e.Radius())
		if !ok {
			continue
		}
		t.projector.DrawSprite(canvas, b, t.rays, enemyColor(e.Kind), -1)
	}
}

// glyph picks the ramp entry for a distance, nearest first.
func (t *Terminal) glyph(distance, maxDepth float64) rune {
	i := int(distance / maxDepth * float64(len(t.ramp)))
	return t.ramp[min(max(i, 0), len(t.ramp)-1)]
}

func (t *Terminal) drawMinimap() {
	grid := t.session.Grid()
	p := t.session.Player()
	wall := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
	empty := tcell.StyleDefault.Background(tcell.ColorBlack)

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if grid.CellAt(col, row) > 0 {
				t.screen.SetContent(col, row, '#', nil, wall)
			} else {
				t.screen.SetContent(col, row, ' ', nil, empty)
			}
		}
	}
	for _, e := range t.session.Enemies() {
		col, row := grid.ToCell(e.X, e.Y)
		t.screen.SetContent(col, row, 'e', nil, empty.Foreground(rgb(enemyColor(e.Kind))))
	}
	col, row := p.MapPosition()
	t.screen.SetContent(col, row, headingGlyph(p.Angle), nil, empty.Foreground(tcell.ColorYellow))
}

// headingGlyph is an arrow for the nearest of eight directions.
func headingGlyph(angle float64) rune {
	arrows := []rune("→↘↓↙←↖↑↗")
	i := int(math.Round(angle/(math.Pi/4))) % len(arrows)
	if i < 0 {
		i += len(arrows)
	}
	return arrows[i]
}

func (t *Terminal) drawHUD() {
	s := t.session
	p := s.Player()
	ph, idx := s.Phase()
	kills, target := s.PhaseProgress()

	status := fmt.Sprintf("Salud %d/%d │ Fase %d/%d %s │ Enemigos %d/%d │ Hechizos %d",
		p.Health, p.MaxHealth, idx+1, s.NumPhases(), ph.Name, kills, target, s.SpellsCast())
	t.drawString(0, t.height-2, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if msg, ok := s.Message(); ok {
		t.drawString(0, t.height-1, msg, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	} else {
		t.drawString(0, t.height-1, "wasd mover · ←→ girar · 1 fuego · 2 rayo · esc pausa", tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}

func (t *Terminal) drawCentered(lines ...string) {
	top := (t.height - len(lines)) / 2
	for i, line := range lines {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if i == 0 {
			style = style.Bold(true).Foreground(tcell.ColorYellow)
		}
		x := (t.width - len([]rune(line))) / 2
		t.drawString(max(x, 0), top+i, line, style)
	}
}

func (t *Terminal) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= t.width {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func runSummary(s *arena.Session) string {
	sum, ok := s.LastRun()
	if !ok {
		return ""
	}
	return fmt.Sprintf("fase %d · %d enemigos · %d hechizos · %s",
		sum.Phase, sum.Kills, sum.SpellsCast, sum.Duration().Round(time.Second))
}

func menuSummary(s *arena.Session) string {
	if _, ok := s.LastRun(); !ok {
		return ""
	}
	return "última partida: " + runSummary(s)
}

func enemyColor(kind entities.EnemyKind) color.RGBA {
	switch kind {
	case entities.EnemyFast:
		return color.RGBA{230, 200, 40, 255}
	case entities.EnemyTank:
		return color.RGBA{120, 80, 40, 255}
	case entities.EnemyBoss:
		return color.RGBA{150, 40, 200, 255}
	default:
		return color.RGBA{200, 40, 40, 255}
	}
}

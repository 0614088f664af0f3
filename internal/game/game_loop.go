package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"magearena/internal/state"
	"magearena/internal/threading/monitoring"
)

// alertEvery is how many frames pass between performance alert checks.
const alertEvery = 300

// GameLoop manages the main game update and render cycle
type GameLoop struct {
	game         *Game
	inputHandler *InputHandler
	ui           *UISystem
	renderer     *Renderer

	frames int
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *Game) (*GameLoop, error) {
	ui, err := NewUISystem(game)
	if err != nil {
		return nil, err
	}
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(),
		ui:           ui,
		renderer:     NewRenderer(game),
	}, nil
}

// Update handles all game logic updates for one frame
func (gl *GameLoop) Update() error {
	monitor := gl.game.threading.PerformanceMonitor
	frameTimer := monitor.StartFrame()
	defer frameTimer.EndFrame()

	if gl.inputHandler.ToggleOverlay() {
		gl.ui.ToggleOverlay()
	}

	s := gl.game.session
	in := gl.inputHandler.Read()
	dt := 1.0 / float64(ebiten.TPS())

	var err error
	monitor.ProfiledFunction(monitoring.StageUpdate, func() {
		err = s.Update(dt, in)
	})
	if err != nil {
		gl.game.logger.Warn("update", "err", err)
	}
	if s.State() == state.Playing {
		monitor.RecordEnemiesUpdated(len(s.Enemies()))
	}
	if s.QuitRequested() {
		return ebiten.Termination
	}

	gl.syncCursor(s.State() == state.Playing)
	gl.checkAlerts()
	return nil
}

// syncCursor captures the mouse while playing and releases it otherwise.
func (gl *GameLoop) syncCursor(playing bool) {
	if playing == gl.inputHandler.captured {
		return
	}
	gl.inputHandler.SetCaptured(playing)
	if playing {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (gl *GameLoop) checkAlerts() {
	gl.frames++
	if gl.frames%alertEvery != 0 {
		return
	}
	for _, a := range gl.game.threading.PerformanceMonitor.CheckPerformanceAlerts() {
		gl.game.logger.Warn(a.Message, "type", a.Type, "value", a.Value, "threshold", a.Threshold)
	}
}

// Draw handles all rendering for one frame
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	switch gl.game.session.State() {
	case state.Playing, state.Paused, state.GameOver, state.Victory:
		gl.renderer.RenderFirstPersonView(screen)
	default:
		screen.Fill(UIColorPanel)
	}
	gl.ui.Draw(screen)
}

// Layout returns the screen dimensions
func (gl *GameLoop) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	cfg := gl.game.session.Config()
	return cfg.GetScreenWidth(), cfg.GetScreenHeight()
}

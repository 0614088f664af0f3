// Package game is the ebiten frontend: it feeds keyboard and mouse input to
// an arena session and draws the first-person view, minimap and HUD.
package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"magearena/internal/arena"
	"magearena/internal/threading"
)

// Game implements ebiten.Game on top of an arena session.
type Game struct {
	session   *arena.Session
	threading *threading.ThreadingComponents
	logger    *log.Logger
	loop      *GameLoop
}

// NewGame wires the frontend to session. threading supplies the performance
// monitor and is shut down by Close.
func NewGame(session *arena.Session, tc *threading.ThreadingComponents, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if tc == nil {
		tc = threading.NewThreadingComponents(1)
	}
	g := &Game{
		session:   session,
		threading: tc,
		logger:    logger.WithPrefix("game"),
	}

	loop, err := NewGameLoop(g)
	if err != nil {
		return nil, err
	}
	g.loop = loop
	return g, nil
}

// Session returns the simulation the game drives.
func (g *Game) Session() *arena.Session { return g.session }

func (g *Game) Update() error { return g.loop.Update() }

func (g *Game) Draw(screen *ebiten.Image) { g.loop.Draw(screen) }

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.loop.Layout(outsideWidth, outsideHeight)
}

// Close releases the worker pool.
func (g *Game) Close() {
	g.threading.Shutdown()
}

// Run opens the window and blocks until the player quits.
func Run(g *Game) error {
	cfg := g.session.Config()
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Display.FPS > 0 {
		ebiten.SetTPS(cfg.Display.FPS)
	}

	defer g.Close()
	return ebiten.RunGame(g)
}

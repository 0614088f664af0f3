package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"magearena/internal/arena"
	"magearena/internal/entities"
	"magearena/internal/game/keytracker"
)

// Key bindings.
var (
	keysForward  = []ebiten.Key{ebiten.KeyW}
	keysBack     = []ebiten.Key{ebiten.KeyS}
	keysLeft     = []ebiten.Key{ebiten.KeyA}
	keysRight    = []ebiten.Key{ebiten.KeyD}
	keysTurnL    = []ebiten.Key{ebiten.KeyArrowLeft}
	keysTurnR    = []ebiten.Key{ebiten.KeyArrowRight}
	keysFireball = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyNumpad1}
	keysLight    = []ebiten.Key{ebiten.KeyDigit2, ebiten.KeyNumpad2}
	keysEnter    = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}
)

// InputHandler reads the keyboard and mouse into an arena.Input.
type InputHandler struct {
	keys   *keytracker.Tracker
	cursor func() (int, int)

	lastX, lastY int
	haveCursor   bool
	captured     bool
}

// NewInputHandler creates a handler over the live ebiten input.
func NewInputHandler() *InputHandler {
	return newInputHandler(ebiten.IsKeyPressed, ebiten.CursorPosition)
}

func newInputHandler(pressed keytracker.PressedFunc, cursor func() (int, int)) *InputHandler {
	return &InputHandler{keys: keytracker.New(pressed), cursor: cursor}
}

// SetCaptured switches mouse look on or off. The first frame after a switch
// reports no mouse motion.
func (ih *InputHandler) SetCaptured(captured bool) {
	ih.captured = captured
	ih.haveCursor = false
}

// Read polls every binding once and returns this frame's input.
func (ih *InputHandler) Read() arena.Input {
	var in arena.Input

	in.Forward = axis(ih.keys.IsPressed(keysForward...), ih.keys.IsPressed(keysBack...))
	in.Strafe = axis(ih.keys.IsPressed(keysRight...), ih.keys.IsPressed(keysLeft...))
	in.Turn = axis(ih.keys.IsPressed(keysTurnR...), ih.keys.IsPressed(keysTurnL...))

	if ih.keys.AnyJustPressed(keysFireball...) {
		in.Casts = append(in.Casts, entities.SpellFireball)
	}
	if ih.keys.AnyJustPressed(keysLight...) {
		in.Casts = append(in.Casts, entities.SpellLightning)
	}

	in.Enter = ih.keys.AnyJustPressed(keysEnter...)
	in.Escape = ih.keys.IsKeyJustPressed(ebiten.KeyEscape)
	in.Resume = ih.keys.IsKeyJustPressed(ebiten.KeyR)
	in.ToMenu = ih.keys.IsKeyJustPressed(ebiten.KeyM)
	in.Settings = ih.keys.IsKeyJustPressed(ebiten.KeyTab)

	ih.readMouse(&in)
	return in
}

func (ih *InputHandler) readMouse(in *arena.Input) {
	if !ih.captured {
		return
	}
	x, y := ih.cursor()
	if ih.haveCursor {
		in.MouseDX = float64(x - ih.lastX)
		in.MouseDY = float64(y - ih.lastY)
	}
	ih.lastX, ih.lastY = x, y
	ih.haveCursor = true
}

// ToggleOverlay reports a fresh press of the performance overlay key.
func (ih *InputHandler) ToggleOverlay() bool {
	return ih.keys.IsKeyJustPressed(ebiten.KeyF3)
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

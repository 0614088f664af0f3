package game

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"magearena/internal/arena"
	"magearena/internal/config"
	"magearena/internal/mathutil"
	"magearena/internal/state"
	"magearena/internal/threading/monitoring"
)

// UI colors
var (
	UIColorText     = color.RGBA{255, 255, 255, 255}
	UIColorDim      = color.RGBA{180, 180, 180, 255}
	UIColorTitle    = color.RGBA{255, 200, 60, 255}
	UIColorDanger   = color.RGBA{230, 60, 60, 255}
	UIColorVictory  = color.RGBA{80, 220, 120, 255}
	UIColorPanel    = color.RGBA{0, 0, 0, 150}
	UIColorPauseDim = color.RGBA{0, 0, 0, 128}
)

const (
	hudFontSize   = 16
	titleFontSize = 48
	hudLineHeight = 20
	hudMargin     = 10
)

const controlsHint = "WASD mover · ←/→ girar · 1 bola de fuego · 2 rayo · ESC pausa"

// UISystem draws the HUD and every non-playing screen.
type UISystem struct {
	game        *Game
	face        *text.GoTextFace
	titleFace   *text.GoTextFace
	showOverlay bool
}

// NewUISystem loads the embedded Go Regular face.
func NewUISystem(game *Game) (*UISystem, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load ui font: %w", err)
	}
	return &UISystem{
		game:      game,
		face:      &text.GoTextFace{Source: src, Size: hudFontSize},
		titleFace: &text.GoTextFace{Source: src, Size: titleFontSize},
	}, nil
}

// ToggleOverlay shows or hides the performance overlay.
func (ui *UISystem) ToggleOverlay() {
	ui.showOverlay = !ui.showOverlay
}

// Draw draws the UI for the current state on top of whatever the renderer
// already drew.
func (ui *UISystem) Draw(screen *ebiten.Image) {
	s := ui.game.session
	switch s.State() {
	case state.Menu:
		ui.drawMenu(screen)
	case state.Settings:
		ui.drawCentered(screen, "AJUSTES", settingsLines(s.Config()), UIColorTitle, nil)
	case state.Playing:
		ui.drawHUD(screen)
	case state.Paused:
		ui.drawHUD(screen)
		ui.drawCentered(screen, "PAUSA", []string{"R - Reanudar", "M - Menú principal"}, UIColorText, UIColorPauseDim)
	case state.GameOver:
		sum, _ := s.LastRun()
		ui.drawCentered(screen, "GAME OVER", append(summaryLines(sum), "", "ENTER - Menú"), UIColorDanger, UIColorPanel)
	case state.Victory:
		sum, _ := s.LastRun()
		ui.drawCentered(screen, "¡VICTORIA!", append(summaryLines(sum), "", "ENTER - Menú"), UIColorVictory, UIColorPanel)
	}

	if ui.showOverlay {
		ui.drawOverlay(screen)
	}
}

func (ui *UISystem) drawHUD(screen *ebiten.Image) {
	s := ui.game.session
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	lines := hudLines(s)
	top := h - hudMargin - len(lines)*hudLineHeight
	vector.DrawFilledRect(screen, 0, float32(top-hudMargin/2), float32(w), float32(h-top+hudMargin/2), UIColorPanel, false)
	for i, line := range lines {
		ui.drawText(screen, line, ui.face, hudMargin, float64(top+i*hudLineHeight), UIColorText, text.AlignStart)
	}

	if msg, ok := s.Message(); ok {
		ui.drawText(screen, msg, ui.face, float64(w)/2, float64(h)/4, UIColorTitle, text.AlignCenter)
	}
	ui.drawText(screen, controlsHint, ui.face, float64(w-hudMargin), float64(h-hudMargin-hudLineHeight), UIColorDim, text.AlignEnd)
}

func (ui *UISystem) drawMenu(screen *ebiten.Image) {
	screen.Fill(color.Black)
	lines := []string{"ENTER - Comenzar", "TAB - Ajustes", "ESC - Salir"}
	if sum, ok := ui.game.session.LastRun(); ok {
		lines = append(lines, "", "Última partida:")
		lines = append(lines, summaryLines(sum)...)
	}
	ui.drawCentered(screen, "MAGE ARENA 3D", lines, UIColorTitle, nil)
}

// drawCentered draws a title with lines under it in the middle of the
// screen, over an optional full-screen tint.
func (ui *UISystem) drawCentered(screen *ebiten.Image, title string, lines []string, titleColor color.Color, tint color.Color) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if tint != nil {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), tint, false)
	}

	cx := float64(w) / 2
	y := float64(h)/3 - titleFontSize
	ui.drawText(screen, title, ui.titleFace, cx, y, titleColor, text.AlignCenter)
	y += titleFontSize * 1.5
	for _, line := range lines {
		ui.drawText(screen, line, ui.face, cx, y, UIColorText, text.AlignCenter)
		y += hudLineHeight
	}
}

func (ui *UISystem) drawOverlay(screen *ebiten.Image) {
	m := ui.game.threading.GetPerformanceMetrics()
	w := screen.Bounds().Dx()
	for i, line := range overlayLines(m, ebiten.ActualFPS(), ebiten.ActualTPS()) {
		ui.drawText(screen, line, ui.face, float64(w-hudMargin), float64(hudMargin+i*hudLineHeight), UIColorText, text.AlignEnd)
	}
}

func (ui *UISystem) drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(dst, s, face, op)
}

// hudLines is the status panel for a run in progress.
func hudLines(s *arena.Session) []string {
	p := s.Player()
	col, row := p.MapPosition()
	ph, idx := s.Phase()
	kills, target := s.PhaseProgress()

	return []string{
		fmt.Sprintf("Salud: %d/%d", p.Health, p.MaxHealth),
		fmt.Sprintf("Pos: (%.0f, %.0f)  Tile: (%d, %d)  Ángulo: %.0f°", p.X, p.Y, col, row, mathutil.RadToDeg(p.Angle)),
		fmt.Sprintf("Fase %d/%d: %s - %s", idx+1, s.NumPhases(), ph.Name, ph.Objective),
		fmt.Sprintf("Enemigos: %d/%d  Hechizos: %d", kills, target, s.SpellsCast()),
	}
}

// summaryLines describes a finished run.
func summaryLines(sum arena.Summary) []string {
	return []string{
		fmt.Sprintf("Fase alcanzada: %d", sum.Phase),
		fmt.Sprintf("Enemigos derrotados: %d", sum.Kills),
		fmt.Sprintf("Hechizos lanzados: %d", sum.SpellsCast),
		fmt.Sprintf("Duración: %s", sum.Duration().Round(time.Second)),
	}
}

func settingsLines(cfg *config.Config) []string {
	voice := "desactivada"
	if cfg.Voice.Enabled {
		voice = fmt.Sprintf("activada (%s)", cfg.Voice.Language)
	}
	return []string{
		fmt.Sprintf("Resolución: %dx%d", cfg.Display.ScreenWidth, cfg.Display.ScreenHeight),
		fmt.Sprintf("Campo de visión: %.0f°  Rayos: %d", cfg.Raycast.FOVDegrees, cfg.Raycast.NumRays),
		fmt.Sprintf("Distancia máxima: %.0f", cfg.Raycast.MaxDepth),
		fmt.Sprintf("Sensibilidad del ratón: %g", cfg.Player.MouseSensitivity),
		"Voz: " + voice,
		"",
		"ESC - Volver",
	}
}

func overlayLines(m monitoring.Metrics, fps, tps float64) []string {
	return []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f", fps, tps),
		fmt.Sprintf("frame %s  avg %s", m.FrameTime, m.AvgFrameTime),
		fmt.Sprintf("rayos %s  proyección %s", m.RaycastTime, m.ProjectTime),
		fmt.Sprintf("update %s  mem %d MB", m.UpdateTime, m.MemoryUsageMB),
	}
}

package game

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"magearena/internal/entities"
	"magearena/internal/raycast"
	"magearena/internal/render"
	"magearena/internal/threading/monitoring"
)

var enemyColors = [...]color.RGBA{
	entities.EnemyBasic: {200, 40, 40, 255},
	entities.EnemyFast:  {230, 200, 40, 255},
	entities.EnemyTank:  {120, 80, 40, 255},
	entities.EnemyBoss:  {150, 40, 200, 255},
}

func enemyColor(kind entities.EnemyKind) color.RGBA {
	if kind < 0 || int(kind) >= len(enemyColors) {
		return enemyColors[entities.EnemyBasic]
	}
	return enemyColors[kind]
}

// Renderer draws the first-person view, enemy billboards and the minimap.
type Renderer struct {
	game      *Game
	projector *render.Projector
	minimap   *render.Minimap

	minimapImg *ebiten.Image
	sprites    []sprite
	enemyPos   [][2]float64
}

type sprite struct {
	billboard render.Billboard
	enemy     *entities.Enemy
}

// NewRenderer builds the projector and minimap from the game's config.
func NewRenderer(game *Game) *Renderer {
	cfg := game.session.Config()
	walls := render.NewPalette(cfg.Colors.Walls, render.RGB(cfg.Colors.WallDefault))
	mapColors := render.NewPalette(cfg.Colors.Walls, render.RGB(cfg.Colors.MinimapUnknown))

	r := &Renderer{
		game:      game,
		projector: render.NewProjector(render.ViewFromConfig(cfg), walls),
	}
	if cfg.Minimap.Enabled {
		r.minimap = render.NewMinimap(game.session.Grid(), mapColors, render.MinimapStyleFromConfig(cfg))
		w, h := r.minimap.Size()
		r.minimapImg = ebiten.NewImage(w, h)
	}
	return r
}

// RenderFirstPersonView draws walls, sprites and the minimap for the
// current player pose.
func (r *Renderer) RenderFirstPersonView(screen *ebiten.Image) {
	monitor := r.game.threading.PerformanceMonitor
	canvas := imageCanvas{dst: screen}

	timer := monitor.StartRaycast(r.projector.View().NumRays)
	rays := r.game.session.Rays()
	timer.EndRaycast()

	monitor.ProfiledFunction(monitoring.StageProject, func() {
		r.projector.Draw(canvas, rays)
		r.drawEnemies(canvas, rays)
	})

	r.drawMinimap(screen)
}

// drawEnemies draws living enemies far to near so closer ones overlap.
func (r *Renderer) drawEnemies(c render.Canvas, rays []raycast.Ray) {
	p := r.game.session.Player()

	r.sprites = r.sprites[:0]
	for _, e := range r.game.session.Enemies() {
		b, ok := r.projector.ProjectSprite(p.X, p.Y, p.Angle, e.X, e.Y, 2*e.Radius())
		if !ok {
			continue
		}
		r.sprites = append(r.sprites, sprite{billboard: b, enemy: e})
	}
	slices.SortFunc(r.sprites, func(a, b sprite) int {
		return cmp.Compare(b.billboard.Depth, a.billboard.Depth)
	})

	for _, s := range r.sprites {
		r.projector.DrawSprite(c, s.billboard, rays, enemyColor(s.enemy.Kind), s.enemy.HealthFraction())
	}
}

func (r *Renderer) drawMinimap(screen *ebiten.Image) {
	if r.minimap == nil {
		return
	}
	p := r.game.session.Player()

	r.enemyPos = r.enemyPos[:0]
	for _, e := range r.game.session.Enemies() {
		r.enemyPos = append(r.enemyPos, [2]float64{e.X, e.Y})
	}

	r.minimapImg.Clear()
	r.minimap.Draw(imageCanvas{dst: r.minimapImg}, render.Pose{
		X:      p.X,
		Y:      p.Y,
		Angle:  p.Angle,
		Radius: p.CollisionRadius,
	}, r.enemyPos)

	style := r.minimap.Style()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(style.X), float64(style.Y))
	op.ColorScale.ScaleAlpha(r.minimap.Alpha())
	screen.DrawImage(r.minimapImg, op)
}

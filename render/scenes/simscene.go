package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
)

var ballPalette = []color.RGBA{
	{230, 80, 60, 255},
	{60, 160, 230, 255},
	{240, 200, 40, 255},
	{80, 200, 120, 255},
	{200, 100, 220, 255},
}

// SimScene drives the engine forward in real time and draws its
// container and balls. It never mutates engine state directly: every
// Update it asks the engine to advance by a fixed 1/60 s step, and
// every Draw reads back a Snapshot.
type SimScene struct {
	loaded bool
	deps   *Deps
}

func NewSimScene(deps *Deps) *SimScene {
	return &SimScene{
		loaded: false,
		deps:   deps,
	}
}

func (s *SimScene) Draw(screen *ebiten.Image) {
	width := float32(s.deps.Config.Render.Window.Width)
	height := float32(s.deps.Config.Render.Window.Height)

	snap := s.deps.Engine.Snapshot()
	cx, cy, scale := s.projection(width, height, snap.ContainerRadius)

	vector.StrokeCircle(screen, cx, cy, float32(snap.ContainerRadius)*scale, 2, color.RGBA{200, 200, 200, 255}, false)

	for i, b := range snap.Balls {
		col := ballPalette[i%len(ballPalette)]
		x := cx + float32(b.Pos.X)*scale
		y := cy - float32(b.Pos.Y)*scale
		r := float32(b.Radius) * scale
		vector.DrawFilledCircle(screen, x, y, r, col, false)
	}

	ebitenutil.DebugPrintAt(screen, "Live Simulation", 40, 40)
	ebitenutil.DebugPrintAt(screen, navHint, 40, 60)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t = %.3f   collisions = %d", snap.GlobalTime, s.deps.Stats.Collisions), 40, 80)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()), 10, 10)
}

// projection maps the engine's container-centered world coordinates
// onto a circle inscribed in the window, leaving a small margin.
func (s *SimScene) projection(width, height float32, containerRadius float64) (cx, cy, scale float32) {
	cx, cy = width/2, height/2
	minDim := width
	if height < minDim {
		minDim = height
	}
	scale = (minDim * 0.45) / float32(containerRadius)
	return cx, cy, scale
}

func (s *SimScene) FirstLoad() {
	s.loaded = true
}

func (s *SimScene) IsLoaded() bool {
	return s.loaded
}

func (s *SimScene) OnEnter() {
	if s.deps.Stats.StartTime == 0 {
		s.deps.Stats.StartTime = s.deps.Engine.GlobalTime()
	}
	log.WithField("ball_count", s.deps.Engine.BallCount()).Info("entered live simulation scene")
}

func (s *SimScene) OnExit() {}

func (s *SimScene) Update() SceneId {
	if next, ok := globalNav(); ok {
		return next
	}

	const dt = 1.0 / 60.0
	processed, err := s.deps.Engine.AdvanceBy(dt)
	if err != nil {
		log.WithError(err).Error("simulation scene: advancing engine failed")
		return SimSceneId
	}
	s.deps.Stats.Collisions += processed

	return SimSceneId
}

var _ Scene = (*SimScene)(nil)

// Package render hosts the Ebiten front end: a small scene state
// machine driving the live simulation view, the collision histogram,
// the remote telemetry viewer, and the end-of-run summary.
package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"eightball/common"
	"eightball/engine"
	"eightball/render/scenes"
	"eightball/services"
)

// Game implements ebiten.Game, dispatching Update/Draw to whichever
// scene is currently active and handling the transitions scenes
// report back from Update.
type Game struct {
	deps *scenes.Deps

	current   scenes.SceneId
	instances map[scenes.SceneId]scenes.Scene

	quit bool
}

// NewGame wires together the engine, optional telemetry broadcaster,
// and every scene, ready to run.
func NewGame(config *common.Config, eng *engine.Engine, telemetry *services.Telemetry) *Game {
	deps := &scenes.Deps{
		Config:    config,
		Engine:    eng,
		Telemetry: telemetry,
		Stats:     &scenes.RunStats{},
	}

	g := &Game{
		deps:    deps,
		current: scenes.SimSceneId,
		instances: map[scenes.SceneId]scenes.Scene{
			scenes.SimSceneId:          scenes.NewSimScene(deps),
			scenes.HistogramSceneId:    scenes.NewHistogramScene(deps),
			scenes.RemoteViewerSceneId: scenes.NewRemoteViewerScene(deps),
			scenes.SummarySceneId:      scenes.NewSummaryScene(deps),
		},
	}

	start := g.instances[scenes.SimSceneId]
	start.FirstLoad()
	start.OnEnter()
	return g
}

// RunGame hands the game over to Ebiten's run loop.
func RunGame(game *Game) error {
	return ebiten.RunGame(game)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	scene, ok := g.instances[g.current]
	if !ok {
		log.WithField("scene_id", g.current).Error("no scene registered for current scene id, returning to the simulation")
		g.current = scenes.SimSceneId
		return nil
	}

	next := scene.Update()
	if next == scenes.ExitSceneId {
		g.quit = true
		return ebiten.Termination
	}
	if next != g.current {
		scene.OnExit()
		nextScene, ok := g.instances[next]
		if !ok {
			log.WithField("scene_id", next).Error("scene requested unknown transition, ignoring")
			return nil
		}
		if !nextScene.IsLoaded() {
			nextScene.FirstLoad()
		}
		nextScene.OnEnter()
		g.current = next
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if scene, ok := g.instances[g.current]; ok {
		scene.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.deps.Config.Render.Window.Width
	h := g.deps.Config.Render.Window.Height
	if w == 0 || h == 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}

var _ ebiten.Game = (*Game)(nil)

package scenes

import "github.com/hajimehoshi/ebiten/v2"

type SceneId uint

const (
	SimSceneId SceneId = iota
	HistogramSceneId
	RemoteViewerSceneId
	SummarySceneId
	ExitSceneId
)

type Scene interface {
	Update() SceneId
	Draw(screen *ebiten.Image)
	FirstLoad()
	OnEnter()
	OnExit()
	IsLoaded() bool
}

package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// globalNav checks for the scene-switching hotkeys available from
// every scene: number keys jump straight to a scene, Escape quits.
// Scenes that accept their own text input (RemoteViewerScene while
// editing the address field) must skip this check while that input
// is active, so typed digits aren't swallowed as navigation.
func globalNav() (SceneId, bool) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ExitSceneId, true
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		return SimSceneId, true
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		return HistogramSceneId, true
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		return RemoteViewerSceneId, true
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		return SummarySceneId, true
	}
	return 0, false
}

const navHint = "1: Simulation  2: Histogram  3: Remote Viewer  4: Summary  Esc: Quit"

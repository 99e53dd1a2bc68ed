package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type SummaryScene struct {
	loaded bool
	deps   *Deps
}

func NewSummaryScene(deps *Deps) *SummaryScene {
	return &SummaryScene{
		loaded: false,
		deps:   deps,
	}
}

func (s *SummaryScene) GetName() string {
	return "Run Summary"
}

func (s *SummaryScene) Update() SceneId {
	if next, ok := globalNav(); ok {
		return next
	}
	return SummarySceneId
}

func (s *SummaryScene) Draw(screen *ebiten.Image) {
	snap := s.deps.Engine.Snapshot()
	elapsed := snap.GlobalTime - s.deps.Stats.StartTime

	ebitenutil.DebugPrintAt(screen, "Run Summary", 100, 80)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("balls: %d", len(snap.Balls)), 100, 110)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("container radius: %.3f", snap.ContainerRadius), 100, 130)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("collisions processed: %d", s.deps.Stats.Collisions), 100, 150)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("simulated time covered: %.3f", elapsed), 100, 170)
	ebitenutil.DebugPrintAt(screen, navHint, 100, 200)
}

func (s *SummaryScene) FirstLoad() {
	s.loaded = true
}

func (s *SummaryScene) OnEnter() {}

func (s *SummaryScene) OnExit() {}

func (s *SummaryScene) IsLoaded() bool {
	return s.loaded
}

var _ Scene = (*SummaryScene)(nil)

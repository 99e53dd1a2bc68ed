package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	log "github.com/sirupsen/logrus"

	"eightball/engine"
)

const (
	histogramSampleCount = 4000
	histogramBins        = 40
	histogramTMax        = 2.0
)

// HistogramScene samples the shared engine's inter-collision gaps via
// CollisionTimes and draws the result as a bar chart. Sampling advances
// the engine it's given, the same way SimScene does — there is only
// ever one simulation clock per run.
type HistogramScene struct {
	loaded  bool
	deps    *Deps
	sampled bool
	hist    engine.Histogram
	err     error
}

func NewHistogramScene(deps *Deps) *HistogramScene {
	return &HistogramScene{
		loaded: false,
		deps:   deps,
	}
}

func (s *HistogramScene) Draw(screen *ebiten.Image) {
	width := float64(s.deps.Config.Render.Window.Width)
	height := float64(s.deps.Config.Render.Window.Height)

	ebitenutil.DebugPrintAt(screen, "Collision Histogram", 40, 40)
	ebitenutil.DebugPrintAt(screen, navHint, 40, 60)

	if s.err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("sampling failed: %v", s.err), 40, 100)
		return
	}
	if !s.sampled || len(s.hist.Counts) == 0 {
		ebitenutil.DebugPrintAt(screen, "sampling...", 40, 100)
		return
	}

	plotLeft := width * 0.1
	plotRight := width * 0.9
	plotTop := height * 0.2
	plotBottom := height * 0.85
	plotW := plotRight - plotLeft
	plotH := plotBottom - plotTop

	var maxCount uint64
	for _, c := range s.hist.Counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	barSlot := plotW / float64(len(s.hist.Counts))
	barW := barSlot * 0.8
	for i, c := range s.hist.Counts {
		barH := plotH * float64(c) / float64(maxCount)
		x := plotLeft + float64(i)*barSlot + (barSlot-barW)/2
		y := plotBottom - barH
		ebitenutil.DrawRect(screen, x, y, barW, barH, color.RGBA{80, 170, 230, 255})
	}

	ebitenutil.DrawLine(screen, plotLeft, plotBottom, plotRight, plotBottom, color.White)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("0 .. %.2f s gap, %d bins, %d samples", histogramTMax, histogramBins, histogramSampleCount), int(plotLeft), int(plotBottom)+16)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("bin width=%.4f  peak count=%d", s.hist.Width, maxCount), int(plotLeft), int(plotBottom)+32)
}

func (s *HistogramScene) FirstLoad() {
	s.loaded = true
}

func (s *HistogramScene) IsLoaded() bool {
	return s.loaded
}

func (s *HistogramScene) OnEnter() {
	if s.sampled {
		return
	}
	log.WithFields(log.Fields{
		"samples": histogramSampleCount,
		"bins":    histogramBins,
	}).Info("sampling collision gap histogram")
	hist, err := s.deps.Engine.CollisionTimes(histogramSampleCount, 0, histogramTMax, histogramBins)
	s.hist, s.err, s.sampled = hist, err, true
	if err != nil {
		log.WithError(err).Error("collision histogram sampling failed")
	}
}

func (s *HistogramScene) OnExit() {}

func (s *HistogramScene) Update() SceneId {
	if next, ok := globalNav(); ok {
		return next
	}
	return HistogramSceneId
}

var _ Scene = (*HistogramScene)(nil)

package scenes

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"eightball/services"
)

// RemoteViewerScene connects to a running telemetry endpoint and draws
// whatever frames arrive over the channel: an address is typed in, a
// dial is kicked off, and results are drained non-blockingly from a
// channel each Update so the render loop never stalls waiting on the
// network.
type RemoteViewerScene struct {
	loaded bool
	deps   *Deps

	addrInput       string
	cursorVisible   bool
	lastCursorBlink time.Time
	inputActive     bool

	connecting bool
	connectErr error
	frames     <-chan services.Frame
	latest     services.Frame
	haveFrame  bool
	framesSeen int
}

func NewRemoteViewerScene(deps *Deps) *RemoteViewerScene {
	addr := "127.0.0.1:8765"
	if deps != nil && deps.Config != nil && deps.Config.Telemetry.Addr != "" {
		addr = deps.Config.Telemetry.Addr
	}
	return &RemoteViewerScene{
		loaded:          false,
		deps:            deps,
		addrInput:       addr,
		cursorVisible:   true,
		lastCursorBlink: time.Now(),
	}
}

func (s *RemoteViewerScene) GetName() string {
	return "Remote Viewer"
}

func (s *RemoteViewerScene) connect(addr string) {
	log.WithField("addr", addr).Info("dialing remote telemetry endpoint")
	frames, err := services.Dial(addr)
	if err != nil {
		log.WithError(err).Error("failed to dial telemetry endpoint")
		s.connectErr = err
		s.connecting = false
		return
	}
	s.frames = frames
	s.connectErr = nil
	s.connecting = true
}

func (s *RemoteViewerScene) pollFrame() {
	if s.frames == nil {
		return
	}
	select {
	case frame, ok := <-s.frames:
		if !ok {
			log.Warn("telemetry connection closed")
			s.frames = nil
			s.connecting = false
			return
		}
		s.latest = frame
		s.haveFrame = true
		s.framesSeen++
	default:
	}
}

func (s *RemoteViewerScene) Update() SceneId {
	s.pollFrame()

	if s.inputActive {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.inputActive = false
			return RemoteViewerSceneId
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			s.inputActive = false
			addr := strings.TrimSpace(s.addrInput)
			if addr != "" {
				s.connect(addr)
			}
			return RemoteViewerSceneId
		}
		for _, char := range ebiten.AppendInputChars(nil) {
			if char >= 32 && char <= 126 {
				s.addrInput += string(char)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(s.addrInput) > 0 {
			s.addrInput = s.addrInput[:len(s.addrInput)-1]
		}
		if time.Since(s.lastCursorBlink) > 500*time.Millisecond {
			s.cursorVisible = !s.cursorVisible
			s.lastCursorBlink = time.Now()
		}
		return RemoteViewerSceneId
	}

	if next, ok := globalNav(); ok {
		return next
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.inputActive = true
	}

	return RemoteViewerSceneId
}

func (s *RemoteViewerScene) Draw(screen *ebiten.Image) {
	width := float32(s.deps.Config.Render.Window.Width)
	height := float32(s.deps.Config.Render.Window.Height)

	vector.DrawFilledRect(screen, 0, 0, width, height, color.RGBA{12, 14, 28, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Remote Viewer", 20, 20)
	if !s.inputActive {
		ebitenutil.DebugPrintAt(screen, navHint, 20, 40)
	}

	if s.haveFrame {
		s.drawFrame(screen, width, height)
	} else if s.connecting {
		ebitenutil.DebugPrintAt(screen, "connected, waiting for first frame...", 40, 100)
	} else if s.connectErr != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("connect failed: %v", s.connectErr), 40, 100)
	} else {
		ebitenutil.DebugPrintAt(screen, "not connected", 40, 100)
	}

	s.drawAddressInput(screen, int(width), int(height))
}

func (s *RemoteViewerScene) drawFrame(screen *ebiten.Image, width, height float32) {
	cx, cy := width/2, height/2
	scale := (minf32(width, height) * 0.45) / float32(s.latest.ContainerRadius)

	vector.StrokeCircle(screen, cx, cy, float32(s.latest.ContainerRadius)*scale, 2, color.RGBA{200, 200, 200, 255}, false)
	for i, b := range s.latest.Balls {
		col := ballPalette[i%len(ballPalette)]
		x := cx + float32(b.Pos.X)*scale
		y := cy - float32(b.Pos.Y)*scale
		vector.DrawFilledCircle(screen, x, y, float32(b.Radius)*scale, col, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t = %.3f   frames received = %d", s.latest.GlobalTime, s.framesSeen), 40, 60)
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func (s *RemoteViewerScene) drawAddressInput(screen *ebiten.Image, screenWidth, screenHeight int) {
	boxHeight := 40
	boxY := screenHeight - boxHeight - 20
	boxWidth := screenWidth - 40
	boxX := 20

	bg := color.RGBA{40, 40, 50, 200}
	if s.inputActive {
		bg = color.RGBA{50, 50, 70, 220}
	}
	vector.DrawFilledRect(screen, float32(boxX), float32(boxY), float32(boxWidth), float32(boxHeight), bg, false)

	border := color.RGBA{80, 80, 100, 255}
	if s.inputActive {
		border = color.RGBA{100, 150, 200, 255}
	}
	vector.StrokeRect(screen, float32(boxX), float32(boxY), float32(boxWidth), float32(boxHeight), 2, border, false)

	display := s.addrInput
	if s.inputActive && s.cursorVisible {
		display += "|"
	}
	ebitenutil.DebugPrintAt(screen, display, boxX+10, boxY+12)

	var status string
	switch {
	case s.inputActive:
		status = "Type host:port, Enter to connect, Esc to cancel"
	default:
		status = "Press Enter to edit the telemetry address and connect"
	}
	ebitenutil.DebugPrintAt(screen, status, 20, boxY-24)
}

func (s *RemoteViewerScene) FirstLoad() {
	s.loaded = true
}

func (s *RemoteViewerScene) IsLoaded() bool {
	return s.loaded
}

func (s *RemoteViewerScene) OnEnter() {
	s.inputActive = false
	s.cursorVisible = true
	s.lastCursorBlink = time.Now()
}

func (s *RemoteViewerScene) OnExit() {}

var _ Scene = (*RemoteViewerScene)(nil)

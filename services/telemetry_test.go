package services

import (
	"testing"
	"time"

	"eightball/engine"
)

func TestTelemetryBroadcastsSnapshotsToDialedClient(t *testing.T) {
	e := engine.New(1)
	if err := e.AddBall(engine.Vec2{X: 0, Y: 0}, engine.Vec2{X: 1, Y: 0}, 0.1, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize(); err != nil {
		t.Fatal(err)
	}

	addr := "127.0.0.1:18181"
	tel := NewTelemetry(addr, 10*time.Millisecond, e.Snapshot)
	if err := tel.Start(); err != nil {
		t.Fatal(err)
	}
	defer tel.Stop()

	if !tel.IsRunning() {
		t.Fatal("expected telemetry to report running after Start")
	}

	time.Sleep(50 * time.Millisecond) // Start has bound the listener already; this only lets a few ticks pass

	frames, err := Dial(addr)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case frame, ok := <-frames:
		if !ok {
			t.Fatal("frame channel closed before any frame arrived")
		}
		if len(frame.Balls) != 1 {
			t.Errorf("got %d balls in frame, want 1", len(frame.Balls))
		}
		if frame.ContainerRadius != 1 {
			t.Errorf("container radius = %v, want 1", frame.ContainerRadius)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a telemetry frame")
	}
}

func TestTelemetryStartTwiceErrors(t *testing.T) {
	e := engine.New(1)
	tel := NewTelemetry("127.0.0.1:18182", time.Second, e.Snapshot)
	if err := tel.Start(); err != nil {
		t.Fatal(err)
	}
	defer tel.Stop()
	if err := tel.Start(); err == nil {
		t.Error("expected an error starting an already-running telemetry service")
	}
}

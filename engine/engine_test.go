package engine

import (
	"math"
	"math/rand"
	"testing"
)

func TestEngineNotInitializedErrors(t *testing.T) {
	e := New(1)
	if _, err := e.StepToNextCollision(); err != ErrNotInitialized {
		t.Errorf("StepToNextCollision err = %v, want ErrNotInitialized", err)
	}
	if _, err := e.AdvanceBy(0.1); err != ErrNotInitialized {
		t.Errorf("AdvanceBy err = %v, want ErrNotInitialized", err)
	}
	if _, err := e.CollisionTimes(1, 0, 1, 10); err != ErrNotInitialized {
		t.Errorf("CollisionTimes err = %v, want ErrNotInitialized", err)
	}
}

func TestInitializeRejectsOverlap(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{}, 0.2, 1))
	must(t, e.AddBall(Vec2{0.1, 0}, Vec2{}, 0.2, 1))
	if err := e.Initialize(); err == nil {
		t.Error("expected InvalidConfigurationError for overlapping balls")
	}
}

func TestInitializeRejectsOutsideContainer(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0.95, 0}, Vec2{}, 0.2, 1))
	if err := e.Initialize(); err == nil {
		t.Error("expected InvalidConfigurationError for a ball outside the container")
	}
}

func TestTwoBallHeadOnScenario(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{-0.5, 0}, Vec2{1, 0}, 0.05, 1))
	must(t, e.AddBall(Vec2{0.5, 0}, Vec2{-1, 0}, 0.05, 1))
	must(t, e.Initialize())

	col, err := e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(col.TimeAfter, 0.45, eps) {
		t.Errorf("first collision at t=%v, want 0.45", col.TimeAfter)
	}
	snap := e.Snapshot()
	if !almostEqual(snap.Balls[0].Vel.X, -1, eps) || !almostEqual(snap.Balls[1].Vel.X, 1, eps) {
		t.Errorf("velocities after head-on collision = %v / %v, want swapped", snap.Balls[0].Vel, snap.Balls[1].Vel)
	}

	col, err = e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	// The balls meet at x=±0.05 and then need 0.9 more to reach |x| = R-r = 0.95.
	if !almostEqual(col.TimeAfter, 1.35, eps) {
		t.Errorf("second collision at t=%v, want 1.35", col.TimeAfter)
	}
}

func TestSingleBallContainment(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{1, 0}, 0.1, 1))
	must(t, e.Initialize())

	col, err := e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(col.TimeAfter, 0.9, eps) {
		t.Errorf("t=%v, want 0.9", col.TimeAfter)
	}

	col, err = e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(col.TimeAfter, 2.7, eps) {
		t.Errorf("t=%v, want 2.7", col.TimeAfter)
	}
}

func TestOrthogonalMissOnlyContainerEvents(t *testing.T) {
	e := New(2)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{1, 0}, 0.05, 1))
	must(t, e.AddBall(Vec2{0.5, 0.5}, Vec2{0, 1}, 0.05, 1))
	must(t, e.Initialize())

	for i := 0; i < 4; i++ {
		col, err := e.StepToNextCollision()
		if err != nil {
			t.Fatal(err)
		}
		if col.J != e.BallCount() {
			t.Errorf("collision %d involved J=%d, want the container sentinel %d", i, col.J, e.BallCount())
		}
	}
}

func TestStaleEventRejection(t *testing.T) {
	// A strikes B first; B's pre-scheduled event with C (computed at
	// Initialize time, before A changes B's velocity) must be rejected
	// when popped and replaced by a fresh B-C prediction.
	e := New(10)
	must(t, e.AddBall(Vec2{-1, 0}, Vec2{1, 0}, 0.05, 1))  // A
	must(t, e.AddBall(Vec2{0, 0}, Vec2{0, 0}, 0.05, 1))   // B, stationary
	must(t, e.AddBall(Vec2{3, 0}, Vec2{-1, 0}, 0.05, 1))  // C, approaching B from farther away
	must(t, e.Initialize())

	col, err := e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	if col.I != 0 || col.J != 1 {
		t.Fatalf("expected A-B collision first, got (%d,%d) at t=%v", col.I, col.J, col.TimeAfter)
	}

	col, err = e.StepToNextCollision()
	if err != nil {
		t.Fatal(err)
	}
	if !(col.I == 1 && col.J == 2) {
		t.Errorf("expected the next collision to be the freshly computed B-C pair, got (%d,%d)", col.I, col.J)
	}
}

func TestFreeFlightIsLinear(t *testing.T) {
	e1 := New(100)
	must(t, e1.AddBall(Vec2{0, 0}, Vec2{1, 0.5}, 0.05, 1))
	must(t, e1.Initialize())
	mustAdvance(t, e1, 1.0)
	mustAdvance(t, e1, 2.0)

	e2 := New(100)
	must(t, e2.AddBall(Vec2{0, 0}, Vec2{1, 0.5}, 0.05, 1))
	must(t, e2.Initialize())
	mustAdvance(t, e2, 3.0)

	s1, s2 := e1.Snapshot(), e2.Snapshot()
	if !almostEqual(s1.Balls[0].Pos.X, s2.Balls[0].Pos.X, 1e-9) || !almostEqual(s1.Balls[0].Pos.Y, s2.Balls[0].Pos.Y, 1e-9) {
		t.Errorf("advancing by 1 then 2 != advancing by 3: %v vs %v", s1.Balls[0].Pos, s2.Balls[0].Pos)
	}
}

func TestAdvanceByProcessesAllEventsWithinStep(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{1, 0}, 0.1, 1))
	must(t, e.Initialize())

	// One bounce at t=0.9, a second at t=2.7: advancing by 3 must catch both.
	n := mustAdvance(t, e, 3.0)
	if n != 2 {
		t.Errorf("AdvanceBy processed %d collisions, want 2", n)
	}
	if !almostEqual(e.GlobalTime(), 3.0, eps) {
		t.Errorf("global time = %v, want 3.0", e.GlobalTime())
	}
	snap := e.Snapshot()
	// After two reflections the ball is moving in +x again, the same way
	// it started: the sign flips twice.
	if !almostEqual(snap.Balls[0].Vel.X, 1, eps) {
		t.Errorf("vx = %v, want 1 after two reflections", snap.Balls[0].Vel.X)
	}
}

func TestGlobalTimeMonotonic(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{1, 0}, 0.1, 1))
	must(t, e.Initialize())
	last := e.GlobalTime()
	for i := 0; i < 5; i++ {
		if _, err := e.StepToNextCollision(); err != nil {
			t.Fatal(err)
		}
		if e.GlobalTime() < last {
			t.Fatalf("global time went backwards: %v < %v", e.GlobalTime(), last)
		}
		last = e.GlobalTime()
	}
}

func TestEnergyPreservedUnderRandomCollisions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := New(1)
	const n = 12
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / n
		r := 0.3 * float64(i%3+1) / 3
		pos := Vec2{r * math.Cos(angle), r * math.Sin(angle)}
		vel := Vec2{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		must(t, e.AddBall(pos, vel, 0.02, 1))
	}
	must(t, e.Initialize())

	energy := func() float64 {
		s := e.Snapshot()
		var total float64
		for _, b := range s.Balls {
			total += 0.5 * b.Mass * b.Vel.Dot(b.Vel)
		}
		return total
	}

	initial := energy()
	for i := 0; i < 1000; i++ {
		if _, err := e.StepToNextCollision(); err != nil {
			t.Fatal(err)
		}
	}
	final := energy()
	if !almostEqual(final, initial, 1e-6*initial) {
		t.Errorf("kinetic energy drifted: initial=%v final=%v", initial, final)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func mustAdvance(t *testing.T, e *Engine, delta float64) int {
	t.Helper()
	n, err := e.AdvanceBy(delta)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

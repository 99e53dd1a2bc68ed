package engine

import "testing"

func TestCollisionTimesHistogramSpikeAtKnownPeriod(t *testing.T) {
	e := New(1)
	must(t, e.AddBall(Vec2{0, 0}, Vec2{1, 0}, 0.1, 1))
	must(t, e.Initialize())

	h, err := e.CollisionTimes(1000, 0, 5, 50)
	if err != nil {
		t.Fatal(err)
	}

	period := 2 * (1 - 0.1) / 1.0 // 2(R-r)/|v|
	var maxCount uint64
	var maxCenter float64
	for i, c := range h.Counts {
		if c > maxCount {
			maxCount = c
			maxCenter = h.Centers[i]
		}
	}
	if !almostEqual(maxCenter, period, h.Width) {
		t.Errorf("histogram spike at %v, want near period %v (bin width %v)", maxCenter, period, h.Width)
	}
	if maxCount < 900 {
		t.Errorf("expected almost all gaps to land in the spike bin, got %d/1000", maxCount)
	}
}

func TestCollisionTimesRejectsBeforeInitialize(t *testing.T) {
	e := New(1)
	if _, err := e.CollisionTimes(10, 0, 1, 10); err != ErrNotInitialized {
		t.Errorf("err = %v, want ErrNotInitialized", err)
	}
}

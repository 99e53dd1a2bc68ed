package engine

// Histogram reports, for a run of collisions, the distribution of
// inter-collision time gaps across equal-width bins spanning
// [tMin, tMax].
type Histogram struct {
	Centers []float64
	Counts  []uint64
	Width   float64
}

// CollisionTimes advances the simulation through count collisions,
// recording the inter-collision gap before each, and accumulates them
// into a Histogram of bins equal-width bins over [tMin, tMax]. Gaps
// that fall outside [tMin, tMax] are discarded. It returns
// ErrNotInitialized if Initialize has not yet run.
func (e *Engine) CollisionTimes(count int, tMin, tMax float64, bins int) (Histogram, error) {
	if !e.initialized {
		return Histogram{}, ErrNotInitialized
	}

	width := (tMax - tMin) / float64(bins)
	h := Histogram{
		Centers: make([]float64, bins),
		Counts:  make([]uint64, bins),
		Width:   width,
	}
	for b := 0; b < bins; b++ {
		h.Centers[b] = tMin + width*(float64(b)+0.5)
	}

	prev := e.globalTime
	for k := 0; k < count; k++ {
		col, err := e.StepToNextCollision()
		if err != nil {
			return Histogram{}, err
		}
		if !e.hasNext && col.TimeAfter == col.TimeBefore {
			break // queue exhausted, no further collisions possible
		}
		gap := col.TimeAfter - prev
		prev = col.TimeAfter

		if gap >= tMin && gap <= tMax {
			idx := int((gap - tMin) / width)
			if idx >= bins {
				idx = bins - 1
			}
			h.Counts[idx]++
		}
	}
	return h, nil
}

package engine

// fingerprint captures the velocities of an event's participants at the
// moment the event was generated. A ball-container event's container
// side is implicitly the zero velocity and is not stored.
type fingerprint struct {
	vi Vec2
	vj Vec2
}

// event is a predicted future collision between body i and body j
// (j == n, the live ball count, denotes the container) at absolute
// time t, tagged with the fingerprint needed to detect staleness.
type event struct {
	t  float64
	i  int
	j  int
	fp fingerprint
}

// isContainerEvent reports whether this event is a ball-container
// collision rather than a ball-ball collision, given the current
// live ball count n.
func (e event) isContainerEvent(n int) bool {
	return e.j == n
}

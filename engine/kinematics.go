package engine

import "math"

// timeToBallCollision returns the smallest positive time at which balls
// a and b (radii ra, rb) next touch, assuming both move in free flight
// from their current positions at their current velocities. ok is false
// if no future collision exists: parallel/identical velocities, already
// receding, or the predicted contact is tangent/imaginary/in the past.
func timeToBallCollision(a, b ball) (t float64, ok bool) {
	dp := b.pos.Sub(a.pos)
	dv := b.vel.Sub(a.vel)

	av := dv.Dot(dv)
	if av == 0 {
		return 0, false
	}
	bv := dv.Dot(dp)
	if bv >= 0 {
		return 0, false
	}
	rsum := a.radius + b.radius
	cv := dp.Dot(dp) - rsum*rsum

	disc := bv*bv - av*cv
	if disc <= 0 {
		return 0, false
	}

	t = (-bv - math.Sqrt(disc)) / av
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// timeToContainerCollision returns the smallest positive time at which
// ball b next touches the inside of the container boundary from the
// outward side (the larger root of the quadratic). ok is false if the
// ball has zero velocity or the predicted contact is not strictly in
// the future.
func timeToContainerCollision(b ball, c container) (t float64, ok bool) {
	av := b.vel.Dot(b.vel)
	if av == 0 {
		return 0, false
	}
	bv := b.vel.Dot(b.pos)
	rc := c.radius - b.radius
	cv := b.pos.Dot(b.pos) - rc*rc

	disc := bv*bv - av*cv
	if disc < 0 {
		return 0, false
	}

	t = (-bv + math.Sqrt(disc)) / av
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// resolveBallBall performs the elastic impulse between a and b in place,
// updating their velocities. For equal masses this is the normal-swap
// form; for general masses it is the standard 1D elastic formula applied
// along the contact normal, leaving tangential components untouched.
func resolveBallBall(a, b *ball) {
	delta := b.pos.Sub(a.pos)
	dist := delta.Len()
	if dist == 0 {
		return
	}
	n := delta.Scale(1 / dist)

	if a.mass == b.mass {
		dv := b.vel.Sub(a.vel)
		vn := dv.Dot(n)
		a.vel = a.vel.Add(n.Scale(vn))
		b.vel = b.vel.Sub(n.Scale(vn))
		return
	}

	// General-mass elastic collision along the normal: decompose each
	// velocity into normal/tangential parts, apply the 1D elastic
	// formula to the normal components, and recombine.
	van := a.vel.Dot(n)
	vbn := b.vel.Dot(n)
	aTan := a.vel.Sub(n.Scale(van))
	bTan := b.vel.Sub(n.Scale(vbn))

	ma, mb := a.mass, b.mass
	vanAfter := (van*(ma-mb) + 2*mb*vbn) / (ma + mb)
	vbnAfter := (vbn*(mb-ma) + 2*ma*van) / (ma + mb)

	a.vel = aTan.Add(n.Scale(vanAfter))
	b.vel = bTan.Add(n.Scale(vbnAfter))
}

// resolveBallContainer reflects b's velocity about the outward normal
// at its current position, in place.
func resolveBallContainer(b *ball) {
	dist := b.pos.Len()
	if dist == 0 {
		return
	}
	n := b.pos.Scale(1 / dist)
	vn := b.vel.Dot(n)
	b.vel = b.vel.Sub(n.Scale(2 * vn))
}

// Package engine implements the event-driven hard-disk collision
// simulation: ball/container data model, closed-form kinematics, a
// stale-tolerant event queue, and the scheduler that advances the
// system from one collision to the next. It has no knowledge of
// rendering, networking, or persistence — those concerns are layered
// on top by other packages that step the engine through its public
// methods and observe it only through Snapshot, GlobalTime,
// ContainerRadius, and BallCount.
package engine

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Collision describes a resolved collision: the global time just
// before and just after it was processed, and the indices of the two
// bodies involved (j == the ball count at resolution time denotes the
// container).
type Collision struct {
	TimeBefore float64
	TimeAfter  float64
	I, J       int
}

// Engine owns the body array and the event queue exclusively, and
// drives the simulation forward in time.
type Engine struct {
	balls       []ball
	container   container
	queue       *eventQueue
	globalTime  float64
	initialized bool
	nextEvent   event
	hasNext     bool
}

// New creates an engine with a circular container of the given radius,
// centered on the origin. Balls are added with AddBall and the event
// queue is built once by Initialize.
func New(containerRadius float64) *Engine {
	return &Engine{
		container: container{radius: containerRadius},
	}
}

// AddBall registers a ball with the engine. Balls may only be added
// before Initialize is called; mass defaults to 1 if zero is passed.
func (e *Engine) AddBall(pos, vel Vec2, radius, mass float64) error {
	if e.initialized {
		return fmt.Errorf("engine: AddBall called after Initialize")
	}
	if mass == 0 {
		mass = 1
	}
	if radius <= 0 {
		return &InvalidConfigurationError{Reason: fmt.Sprintf("ball radius must be positive, got %v", radius)}
	}
	if mass < 0 {
		return &InvalidConfigurationError{Reason: fmt.Sprintf("ball mass must be positive, got %v", mass)}
	}
	e.balls = append(e.balls, ball{pos: pos, vel: vel, radius: radius, mass: mass})
	return nil
}

// Initialize validates the initial placement (no overlaps, all inside
// the container) and builds the event queue by considering every
// ball-ball pair and every ball-container pair. It must be called
// exactly once, after all balls have been added and before any
// stepping or measurement.
func (e *Engine) Initialize() error {
	n := len(e.balls)
	for i := 0; i < n; i++ {
		if !e.container.contains(e.balls[i].pos, e.balls[i].radius) {
			return &InvalidConfigurationError{Reason: fmt.Sprintf("ball %d lies outside the container", i)}
		}
		for j := i + 1; j < n; j++ {
			d := e.balls[j].pos.Sub(e.balls[i].pos).Len()
			if d < e.balls[i].radius+e.balls[j].radius {
				return &InvalidConfigurationError{Reason: fmt.Sprintf("balls %d and %d overlap", i, j)}
			}
		}
	}

	e.queue = newEventQueue()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if ev, ok := e.ballBallEvent(i, j); ok {
				e.queue.push(ev)
			}
		}
		if ev, ok := e.ballContainerEvent(i); ok {
			e.queue.push(ev)
		}
	}

	e.initialized = true
	e.nextEvent, e.hasNext = e.popValid()

	log.WithFields(log.Fields{
		"balls":           n,
		"container_radius": e.container.radius,
		"has_next_event":  e.hasNext,
	}).Info("engine initialized")
	return nil
}

// ballBallEvent computes the current ball-ball candidate event for
// balls i and j (i < j), if one exists.
func (e *Engine) ballBallEvent(i, j int) (event, bool) {
	t, ok := timeToBallCollision(e.balls[i], e.balls[j])
	if !ok {
		return event{}, false
	}
	return event{
		t:  e.globalTime + t,
		i:  i,
		j:  j,
		fp: fingerprint{vi: e.balls[i].vel, vj: e.balls[j].vel},
	}, true
}

// ballContainerEvent computes the current ball-container candidate
// event for ball i, if one exists. The container is addressed by the
// sentinel index equal to the live ball count.
func (e *Engine) ballContainerEvent(i int) (event, bool) {
	t, ok := timeToContainerCollision(e.balls[i], e.container)
	if !ok {
		return event{}, false
	}
	n := len(e.balls)
	return event{
		t:  e.globalTime + t,
		i:  i,
		j:  n,
		fp: fingerprint{vi: e.balls[i].vel},
	}, true
}

// popValid pops events until one whose fingerprint matches the current
// state of its participants is found (or the queue is exhausted).
func (e *Engine) popValid() (event, bool) {
	n := len(e.balls)
	for {
		ev, ok := e.queue.popOne()
		if !ok {
			return event{}, false
		}
		if e.fingerprintMatches(ev, n) {
			return ev, true
		}
	}
}

func (e *Engine) fingerprintMatches(ev event, n int) bool {
	if ev.isContainerEvent(n) {
		return ev.fp.vi == e.balls[ev.i].vel
	}
	return ev.fp.vi == e.balls[ev.i].vel && ev.fp.vj == e.balls[ev.j].vel
}

// rescheduleBall recomputes and pushes every candidate event involving
// ball i: against every other ball, and against the container.
func (e *Engine) rescheduleBall(i int) {
	n := len(e.balls)
	for k := 0; k < n; k++ {
		if k == i {
			continue
		}
		lo, hi := i, k
		if lo > hi {
			lo, hi = hi, lo
		}
		if ev, ok := e.ballBallEvent(lo, hi); ok {
			e.queue.push(ev)
		}
	}
	if ev, ok := e.ballContainerEvent(i); ok {
		e.queue.push(ev)
	}
}

// stepAll advances every ball in free flight by dt. dt must be
// non-negative; a negative delta is a scheduling bug and is fatal.
func (e *Engine) stepAll(dt float64) {
	if dt < 0 {
		panic(NumericalRegression{GlobalTime: e.globalTime, EventTime: e.globalTime + dt})
	}
	for i := range e.balls {
		e.balls[i].stepFreeFlight(dt)
	}
}

// resolve performs the impulse for the given event's participants and
// reschedules every event the impulse could have invalidated.
func (e *Engine) resolve(ev event) (i, j int) {
	n := len(e.balls)
	if ev.isContainerEvent(n) {
		resolveBallContainer(&e.balls[ev.i])
		e.rescheduleBall(ev.i)
		return ev.i, ev.j
	}
	resolveBallBall(&e.balls[ev.i], &e.balls[ev.j])
	e.rescheduleBall(ev.i)
	e.rescheduleBall(ev.j)
	return ev.i, ev.j
}

// StepToNextCollision advances the simulation to its next predicted
// collision, performs the impulse, and rebuilds the event queue for
// the bodies it touched. It returns ErrNotInitialized if Initialize
// has not yet run.
func (e *Engine) StepToNextCollision() (Collision, error) {
	if !e.initialized {
		return Collision{}, ErrNotInitialized
	}
	if !e.hasNext {
		return Collision{TimeBefore: e.globalTime, TimeAfter: e.globalTime}, nil
	}

	ev := e.nextEvent
	delta := ev.t - e.globalTime
	if delta < 0 {
		panic(NumericalRegression{GlobalTime: e.globalTime, EventTime: ev.t})
	}

	before := e.globalTime
	e.stepAll(delta)
	e.globalTime = ev.t
	i, j := e.resolve(ev)

	e.nextEvent, e.hasNext = e.popValid()

	log.WithFields(log.Fields{
		"time": e.globalTime,
		"i":    i,
		"j":    j,
	}).Debug("resolved collision")

	return Collision{TimeBefore: before, TimeAfter: e.globalTime, I: i, J: j}, nil
}

// AdvanceBy advances the simulation by a fixed wall-clock step delta,
// processing every pending collision that falls strictly within
// [GlobalTime, GlobalTime+delta] in time order, then free-flighting
// through any remainder of the step. No collision within the step is
// ever skipped. It returns the number of collisions it processed, so
// callers (e.g. a render loop) can accumulate statistics without
// reaching into engine internals.
func (e *Engine) AdvanceBy(delta float64) (int, error) {
	if !e.initialized {
		return 0, ErrNotInitialized
	}
	if delta < 0 {
		panic(NumericalRegression{GlobalTime: e.globalTime, EventTime: e.globalTime + delta})
	}

	target := e.globalTime + delta
	processed := 0
	for e.hasNext && e.nextEvent.t <= target {
		if _, err := e.StepToNextCollision(); err != nil {
			return processed, err
		}
		processed++
	}

	remaining := target - e.globalTime
	if remaining > 0 {
		e.stepAll(remaining)
		e.globalTime = target
	}
	return processed, nil
}

// GlobalTime returns the engine's current monotonic simulation clock.
func (e *Engine) GlobalTime() float64 { return e.globalTime }

// ContainerRadius returns the fixed container radius.
func (e *Engine) ContainerRadius() float64 { return e.container.radius }

// BallCount returns the number of balls registered with the engine.
func (e *Engine) BallCount() int { return len(e.balls) }

// Copyright © 2024 Galvanized Logic Inc.

// Package physics is a real-time simulation of 2D rigid-body physics.
// Physics applies gravity, contact impulses, and constraint impulses to
// a population of bodies, advancing their pose and velocities once per
// call to World.Tick.
package physics

import (
	"log/slog"

	"github.com/dankelley2/sharpPhysics-sub001/physics/config"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// worldBound is the half-extent of the square bodies may roam before being
// evicted on the out-of-bounds pass.
const worldBound = 2000

// defaultIterations is N_iter, the number of sequential-impulse solver
// passes performed per tick.
const defaultIterations = 8

// defaultSleepThreshold is the kinetic energy below which a body begins
// accumulating quiescent time toward sleep.
const defaultSleepThreshold = 0.01

// defaultSleepDelay is T_sleep, the continuous quiescent time (seconds)
// required before a body is put to sleep.
const defaultSleepDelay = 0.5

// ContactEvent describes a contact-point transition fired during Tick.
type ContactEvent struct {
	A, B   BodyHandle
	Point  v2.Vector
	Normal v2.Vector
}

// World owns every body and constraint in a simulation, plus the global
// tunables (gravity, time scale, iteration count, sleep threshold). It is
// the sole entry point surrounding collaborators (rendering, input,
// gameplay) use to create, query, and advance the simulation.
type World struct {
	bodies      map[BodyHandle]*body
	order       []BodyHandle // stable iteration order for deterministic-enough stepping
	constraints map[ConstraintHandle]*constraint

	Gravity      v2.Vector
	GravityScale float32
	TimeScale    float32
	Iterations   int
	SleepEnergy  float32
	SleepDelay   float32
	Paused       bool

	PositionalSlop  float32
	BaumgarteFactor float32
	WorldBound      float32

	removalBodies      []BodyHandle
	removalConstraints []ConstraintHandle
	creationQueue      []func()

	OnContactAdded     func(ContactEvent)
	OnContactRemoved   func(a, b BodyHandle)
	OnConstraintBroken func(ConstraintHandle)
}

// NewWorld constructs a world with the given gravity vector, gravity
// scale, and time scale. iterationCount and sleepThreshold fall back to
// sensible defaults when zero.
func NewWorld(gravity v2.Vector, gravityScale, timeScale float32, iterationCount int, sleepThreshold float32) *World {
	if iterationCount <= 0 {
		iterationCount = defaultIterations
	}
	if sleepThreshold <= 0 {
		sleepThreshold = defaultSleepThreshold
	}
	if timeScale == 0 {
		timeScale = 1
	}
	return &World{
		bodies:          map[BodyHandle]*body{},
		constraints:     map[ConstraintHandle]*constraint{},
		Gravity:         gravity,
		GravityScale:    gravityScale,
		TimeScale:       timeScale,
		Iterations:      iterationCount,
		SleepEnergy:     sleepThreshold,
		SleepDelay:      defaultSleepDelay,
		PositionalSlop:  positionalSlop,
		BaumgarteFactor: baumgarteFactor,
		WorldBound:      worldBound,
	}
}

// NewWorldFromTuning constructs a world from a loaded config.Tuning,
// carrying through gravity, iteration count, sleep parameters, and the
// solver's positional-correction constants.
func NewWorldFromTuning(t config.Tuning) *World {
	w := NewWorld(t.Gravity.ToVector(), t.GravityScale, t.TimeScale, t.IterationCount, t.SleepThreshold)
	if t.SleepDelay > 0 {
		w.SleepDelay = t.SleepDelay
	}
	if t.PositionalSlop > 0 {
		w.PositionalSlop = t.PositionalSlop
	}
	if t.BaumgarteFactor > 0 {
		w.BaumgarteFactor = t.BaumgarteFactor
	}
	if t.WorldBound > 0 {
		w.WorldBound = t.WorldBound
	}
	return w
}

// SetGravity replaces the world's gravity vector.
func (w *World) SetGravity(g v2.Vector) { w.Gravity = g }

// SetTimeScale replaces the world's time scale, applied to every Tick's dt.
func (w *World) SetTimeScale(scale float32) { w.TimeScale = scale }

// Pause sets or clears the paused flag; Tick still services the removal
// queue while paused but does not integrate or solve.
func (w *World) Pause(paused bool) { w.Paused = paused }

func (w *World) lookupBody(h BodyHandle) (*body, error) {
	b, ok := w.bodies[h]
	if !ok || b.removed {
		return nil, newError(StaleHandle, "body handle %s does not refer to a live body", h)
	}
	return b, nil
}

func (w *World) lookupConstraint(h ConstraintHandle) (*constraint, error) {
	c, ok := w.constraints[h]
	if !ok {
		return nil, newError(StaleHandle, "constraint handle %s does not refer to a live constraint", h)
	}
	return c, nil
}

func (w *World) insertBody(b *body) BodyHandle {
	w.bodies[b.handle] = b
	w.order = append(w.order, b.handle)
	return b.handle
}

// CreateCircle creates and inserts a circular body.
func (w *World) CreateCircle(center v2.Vector, radius, restitution float32, locked bool, mass float32) (BodyHandle, error) {
	shape, err := NewCircle(radius)
	if err != nil {
		return BodyHandle{}, err
	}
	b, err := newBody(shape, center, 0, restitution, locked, mass, true)
	if err != nil {
		return BodyHandle{}, err
	}
	return w.insertBody(b), nil
}

// CreateBox creates and inserts an axis-aligned-at-construction box body
// centered on (min+max)/2, sized by their extents.
func (w *World) CreateBox(min, max v2.Vector, restitution float32, locked bool, mass float32) (BodyHandle, error) {
	width, height := max.X-min.X, max.Y-min.Y
	shape, err := NewBox(width, height)
	if err != nil {
		return BodyHandle{}, err
	}
	center := min.Added(max).Scaled(0.5)
	b, err := newBody(shape, center, 0, restitution, locked, mass, true)
	if err != nil {
		return BodyHandle{}, err
	}
	return w.insertBody(b), nil
}

// CreatePolygon creates and inserts a convex polygon body from local-space
// vertices.
func (w *World) CreatePolygon(center v2.Vector, localVertices []v2.Vector, restitution float32, locked bool, mass float32, canRotate bool) (BodyHandle, error) {
	shape, err := NewPolygon(localVertices)
	if err != nil {
		return BodyHandle{}, err
	}
	b, err := newBody(shape, center, 0, restitution, locked, mass, canRotate)
	if err != nil {
		return BodyHandle{}, err
	}
	return w.insertBody(b), nil
}

// CreateCompound creates and inserts a compound body from child records.
func (w *World) CreateCompound(center v2.Vector, children []CompoundChild, restitution float32, locked bool) (BodyHandle, error) {
	shape, err := NewCompound(children)
	if err != nil {
		return BodyHandle{}, err
	}
	b, err := newBody(shape, center, 0, restitution, locked, 0, true)
	if err != nil {
		return BodyHandle{}, err
	}
	return w.insertBody(b), nil
}

// Destroy enqueues a body (and any constraints attached to it) for removal
// at the start of the next Tick.
func (w *World) Destroy(h BodyHandle) error {
	if _, err := w.lookupBody(h); err != nil {
		return err
	}
	w.removalBodies = append(w.removalBodies, h)
	return nil
}

// SetVelocity overwrites a body's linear and angular velocity and wakes it.
func (w *World) SetVelocity(h BodyHandle, linear v2.Vector, angular float32) error {
	b, err := w.lookupBody(h)
	if err != nil {
		return err
	}
	b.linearVelocity = linear
	b.angularVelocity = angular
	b.wake()
	return nil
}

// ApplyImpulse applies an impulse at a world contact point and wakes the body.
func (w *World) ApplyImpulse(h BodyHandle, impulse, contactPoint v2.Vector) error {
	b, err := w.lookupBody(h)
	if err != nil {
		return err
	}
	b.applyImpulse(impulse, contactPoint)
	return nil
}

// Wake forces a body out of sleep.
func (w *World) Wake(h BodyHandle) error {
	b, err := w.lookupBody(h)
	if err != nil {
		return err
	}
	b.wake()
	return nil
}

// Lock and Unlock toggle a body's locked flag, recomputing its effective
// mass/inertia so the invariant (locked => zero effective inv-mass/inertia)
// holds immediately.
func (w *World) Lock(h BodyHandle) error {
	b, err := w.lookupBody(h)
	if err != nil {
		return err
	}
	b.locked = true
	b.linearVelocity = v2.Vector{}
	b.angularVelocity = 0
	return nil
}

func (w *World) Unlock(h BodyHandle) error {
	b, err := w.lookupBody(h)
	if err != nil {
		return err
	}
	b.locked = false
	b.setMaterial(b.mass)
	b.wake()
	return nil
}

// AddWeld creates and registers a Weld constraint between two bodies.
func (w *World) AddWeld(a, b BodyHandle, anchorA, anchorB v2.Vector, canBreak bool) (ConstraintHandle, error) {
	ba, err := w.lookupBody(a)
	if err != nil {
		return ConstraintHandle{}, err
	}
	bb, err := w.lookupBody(b)
	if err != nil {
		return ConstraintHandle{}, err
	}
	relAngle := bb.angle - ba.angle
	c := newWeld(a, b, anchorA, anchorB, relAngle, canBreak)
	w.registerConstraint(c, ba, bb)
	return c.handle, nil
}

// AddAxis creates and registers an Axis (revolute) constraint.
func (w *World) AddAxis(a, b BodyHandle, anchorA, anchorB v2.Vector) (ConstraintHandle, error) {
	ba, err := w.lookupBody(a)
	if err != nil {
		return ConstraintHandle{}, err
	}
	bb, err := w.lookupBody(b)
	if err != nil {
		return ConstraintHandle{}, err
	}
	c := newAxis(a, b, anchorA, anchorB)
	w.registerConstraint(c, ba, bb)
	return c.handle, nil
}

// AddSpring creates and registers a Spring constraint.
func (w *World) AddSpring(a, b BodyHandle, anchorA, anchorB v2.Vector, params SpringParams, canBreak bool) (ConstraintHandle, error) {
	if err := validateSpringParams(params); err != nil {
		return ConstraintHandle{}, err
	}
	ba, err := w.lookupBody(a)
	if err != nil {
		return ConstraintHandle{}, err
	}
	bb, err := w.lookupBody(b)
	if err != nil {
		return ConstraintHandle{}, err
	}
	worldA := worldAnchor(ba, anchorA)
	worldB := worldAnchor(bb, anchorB)
	delta := worldB.Subbed(worldA)
	initialAxis := v2.Vector{X: 1}
	if dist := delta.Len(); dist > v2.Epsilon {
		initialAxis = delta.Scaled(1 / dist)
	}
	relAngle := bb.angle - ba.angle
	c := newSpring(a, b, anchorA, anchorB, params, initialAxis, relAngle, canBreak)
	w.registerConstraint(c, ba, bb)
	return c.handle, nil
}

func (w *World) registerConstraint(c *constraint, a, b *body) {
	w.constraints[c.handle] = c
	a.connect(b.handle)
	b.connect(a.handle)
	a.canSleep = false
	b.canSleep = false
}

// RemoveConstraint enqueues a constraint for removal at the start of the
// next Tick.
func (w *World) RemoveConstraint(h ConstraintHandle) error {
	if _, err := w.lookupConstraint(h); err != nil {
		return err
	}
	w.removalConstraints = append(w.removalConstraints, h)
	return nil
}

// BodyAtPoint returns the first body (in creation order) whose shape
// contains the given world point, if any.
func (w *World) BodyAtPoint(p v2.Vector) (BodyHandle, bool) {
	for _, h := range w.order {
		b, ok := w.bodies[h]
		if !ok || b.removed {
			continue
		}
		if b.shape.Contains(p, b.center, b.angle) {
			return h, true
		}
	}
	return BodyHandle{}, false
}

// Bodies returns every live body handle, in creation order.
func (w *World) Bodies() []BodyHandle {
	out := make([]BodyHandle, 0, len(w.order))
	for _, h := range w.order {
		if b, ok := w.bodies[h]; ok && !b.removed {
			out = append(out, h)
		}
	}
	return out
}

// BodyState is a read-only snapshot of a body's queryable fields.
type BodyState struct {
	Center   v2.Vector
	Angle    float32
	Linear   v2.Vector
	Angular  float32
	AABB     v2.AABB
	Sleeping bool
	Contacts map[BodyHandle]ContactInfo
}

// State returns a snapshot of a body's queryable state.
func (w *World) State(h BodyHandle) (BodyState, error) {
	b, err := w.lookupBody(h)
	if err != nil {
		return BodyState{}, err
	}
	contacts := make(map[BodyHandle]ContactInfo, len(b.contacts))
	for k, v := range b.contacts {
		contacts[k] = v
	}
	return BodyState{
		Center:   b.center,
		Angle:    b.angle,
		Linear:   b.linearVelocity,
		Angular:  b.angularVelocity,
		AABB:     b.aabb,
		Sleeping: b.sleeping,
		Contacts: contacts,
	}, nil
}

// Tick advances the simulation by dtSeconds, scaled by TimeScale, unless
// paused. It performs, in order: removal-queue service, gravity
// integration, broad phase, narrow phase, solver iterations, positional
// correction, pose integration, AABB recompute, sleep evaluation, and
// out-of-bounds eviction.
func (w *World) Tick(dtSeconds float32) {
	w.serviceRemovalQueue()
	w.serviceCreationQueue()

	if w.Paused || dtSeconds <= 0 {
		return
	}
	dt := dtSeconds * w.TimeScale
	if dt <= 0 {
		return
	}

	live := w.liveBodies()

	w.clearStaleContacts(live)

	for _, b := range live {
		b.applyGravity(w.Gravity, w.GravityScale, dt)
	}

	pairs := broadPhase(live)
	manifolds := make([]Manifold, 0, len(pairs))
	for _, pair := range pairs {
		a, b := w.bodies[pair.a], w.bodies[pair.b]
		m, hit := narrowPhase(a, b)
		if hit {
			manifolds = append(manifolds, m)
		}
		w.updateContactSets(a, b, hit, m)
	}

	for i := 0; i < w.Iterations; i++ {
		for _, m := range manifolds {
			resolveContact(w.bodies[m.A], w.bodies[m.B], m)
		}
		w.solveConstraints(dt)
	}

	for _, m := range manifolds {
		positionalCorrection(w.bodies[m.A], w.bodies[m.B], m, w.PositionalSlop, w.BaumgarteFactor)
	}

	for _, b := range live {
		b.integratePose(dt)
		b.recomputeAABB(0)
	}

	w.evaluateSleep(live, dt)
	w.evictOutOfBounds(live)

	slog.Debug("tick", "bodies", len(live), "pairs", len(pairs), "manifolds", len(manifolds))
}

func (w *World) liveBodies() []*body {
	out := make([]*body, 0, len(w.order))
	for _, h := range w.order {
		if b, ok := w.bodies[h]; ok && !b.removed {
			out = append(out, b)
		}
	}
	return out
}

// clearStaleContacts drops contact records for any pair whose AABBs no
// longer overlap (or whose partner has been removed). broadPhase only ever
// emits pairs that currently overlap, so a pair that touched and then
// separated far enough to leave the broad phase is never handed to
// updateContactSets again; without this sweep the stale ContactInfo, and
// the OnContactRemoved transition it should fire, would never clear.
func (w *World) clearStaleContacts(live []*body) {
	for _, a := range live {
		for other := range a.contacts {
			b, ok := w.bodies[other]
			if !ok || b.removed {
				a.clearContact(other)
				continue
			}
			if a.aabb.Overlaps(b.aabb) {
				continue
			}
			// Fire once per pair: let the lexicographically smaller handle
			// own the transition.
			if a.handle.String() > other.String() {
				continue
			}
			if a.clearContact(other) && w.OnContactRemoved != nil {
				w.OnContactRemoved(a.handle, other)
			}
			b.clearContact(a.handle)
		}
	}
}

// updateContactSets applies the added/removed contact events per body pair
// and fires the synchronous OnContactAdded/OnContactRemoved callbacks on
// transitions, per the ordering guarantee that added fires before removed
// within a step.
func (w *World) updateContactSets(a, b *body, hit bool, m Manifold) {
	if hit {
		info := ContactInfo{Point: m.ContactPoint, Normal: m.Normal}
		if a.setContact(b.handle, info) && w.OnContactAdded != nil {
			w.OnContactAdded(ContactEvent{A: a.handle, B: b.handle, Point: m.ContactPoint, Normal: m.Normal})
		}
		b.setContact(a.handle, ContactInfo{Point: m.ContactPoint, Normal: m.Normal.Scaled(-1)})
		return
	}
	if a.clearContact(b.handle) && w.OnContactRemoved != nil {
		w.OnContactRemoved(a.handle, b.handle)
	}
	b.clearContact(a.handle)
}

func (w *World) solveConstraints(dt float32) {
	for h, c := range w.constraints {
		if c.broken {
			continue
		}
		a, okA := w.bodies[c.a]
		b, okB := w.bodies[c.b]
		if !okA || !okB || a.removed || b.removed {
			continue
		}
		a.wake()
		b.wake()
		if c.solve(a, b, dt) && w.OnConstraintBroken != nil {
			w.OnConstraintBroken(h)
		}
	}
}

// evaluateSleep groups live, unlocked bodies into islands connected by
// current contacts and constraint connections, then evaluates each island
// as a unit: every member must be quiescent for SleepDelay before any of
// them sleeps, and they all sleep together in the same tick. Gating one
// body's timer on a contact partner's already-committed sleeping flag (the
// naive per-body approach) can never succeed for two bodies resting only
// against each other, since neither can be marked asleep before the other.
func (w *World) evaluateSleep(live []*body, dt float32) {
	for _, island := range w.buildIslands(live) {
		w.evaluateIslandSleep(island, dt)
	}
}

// buildIslands partitions live, unlocked bodies into connected components
// joined by contacts and constraint connections. Locked bodies are static
// anchors: they are never island members and never merge two islands, so
// several dynamic bodies resting only on a common locked floor remain
// separate single-body islands.
func (w *World) buildIslands(live []*body) [][]*body {
	visited := map[BodyHandle]bool{}
	var islands [][]*body
	for _, start := range live {
		if start.locked || start.removed || visited[start.handle] {
			continue
		}
		visited[start.handle] = true
		island := []*body{start}
		queue := []*body{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for h := range cur.contacts {
				w.expandIsland(h, visited, &island, &queue)
			}
			for h := range cur.connections {
				w.expandIsland(h, visited, &island, &queue)
			}
		}
		islands = append(islands, island)
	}
	return islands
}

func (w *World) expandIsland(h BodyHandle, visited map[BodyHandle]bool, island *[]*body, queue *[]*body) {
	nb, ok := w.bodies[h]
	if !ok || nb.removed || nb.locked || visited[h] {
		return
	}
	visited[h] = true
	*island = append(*island, nb)
	*queue = append(*queue, nb)
}

// evaluateIslandSleep puts every member of island to sleep in the same
// tick, but only once every member has held kinetic energy below
// SleepEnergy (and allowed sleep at all) for at least SleepDelay seconds
// continuously; any member failing either test resets the whole island's
// accumulated quiescent time.
func (w *World) evaluateIslandSleep(island []*body, dt float32) {
	for _, b := range island {
		if !b.canSleep || b.kineticEnergy() >= w.SleepEnergy {
			b.sleepTime = 0
		} else {
			b.sleepTime += dt
		}
	}
	for _, b := range island {
		if !b.canSleep || b.sleepTime < w.SleepDelay {
			return
		}
	}
	for _, b := range island {
		b.sleeping = true
		b.linearVelocity = v2.Vector{}
		b.angularVelocity = 0
	}
}

func (w *World) evictOutOfBounds(live []*body) {
	for _, b := range live {
		if v2.Abs(b.center.X) > w.WorldBound || v2.Abs(b.center.Y) > w.WorldBound {
			w.removalBodies = append(w.removalBodies, b.handle)
		}
	}
}

func (w *World) serviceRemovalQueue() {
	for _, h := range w.removalConstraints {
		c, ok := w.constraints[h]
		if !ok {
			continue
		}
		if a, ok := w.bodies[c.a]; ok {
			a.disconnect(c.b)
		}
		if b, ok := w.bodies[c.b]; ok {
			b.disconnect(c.a)
		}
		delete(w.constraints, h)
	}
	w.removalConstraints = nil

	removedThisPass := map[BodyHandle]struct{}{}
	for _, h := range w.removalBodies {
		b, ok := w.bodies[h]
		if !ok || b.removed {
			continue
		}
		b.removed = true
		for ch := range w.constraints {
			c := w.constraints[ch]
			if c.a == h || c.b == h {
				w.removalConstraints = append(w.removalConstraints, ch)
			}
		}
		delete(w.bodies, h)
		removedThisPass[h] = struct{}{}
	}
	w.removalBodies = nil

	if len(removedThisPass) > 0 {
		keep := w.order[:0]
		for _, h := range w.order {
			if _, gone := removedThisPass[h]; !gone {
				keep = append(keep, h)
			}
		}
		w.order = keep
	}

	// A body's removal can enqueue constraint removals discovered above;
	// drain those too so no dangling constraint survives past this pass.
	if len(w.removalConstraints) > 0 {
		w.serviceRemovalQueue()
	}
}

func (w *World) serviceCreationQueue() {
	pending := w.creationQueue
	w.creationQueue = nil
	for _, fn := range pending {
		fn()
	}
}

// Defer schedules fn to run at the start of the next Tick, after the
// removal queue is serviced and before stepping. Event handlers invoked during Tick must use this instead
// of calling world mutators directly, per the reentrancy rule: creation
// and destruction from inside a callback defers to the next step boundary.
func (w *World) Defer(fn func()) {
	w.creationQueue = append(w.creationQueue, fn)
}

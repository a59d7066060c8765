// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// ContactInfo is the per-pair summary a body keeps in its contact set: the
// most recent contact point and collision normal against the other body.
type ContactInfo struct {
	Point  v2.Vector
	Normal v2.Vector
}

// body is the simulator's principal entity: a shape paired with a pose,
// velocities, material, and lifecycle state. Bodies are owned by a World
// and referenced externally only through a BodyHandle; nothing outside
// this package holds a *body directly, avoiding the owning-reference
// cycles between bodies, constraints, and contact maps that a naive
// back-pointer design would create.
type body struct {
	handle BodyHandle
	shape  Shape

	center v2.Vector
	angle  float32

	linearVelocity  v2.Vector
	angularVelocity float32

	restitution float32
	friction    float32

	mass       float32
	invMass    float32
	inertia    float32
	invInertia float32

	locked    bool
	canRotate bool
	canSleep  bool
	sleeping  bool
	sleepTime float32

	aabb v2.AABB

	contacts    map[BodyHandle]ContactInfo
	connections map[BodyHandle]struct{}

	removed bool
}

func newBody(shape Shape, center v2.Vector, angle, restitution float32, locked bool, mass float32, canRotate bool) (*body, error) {
	if restitution < 0 || restitution > 1 {
		return nil, newError(ParameterOutOfRange, "restitution must be within [0,1], got %f", restitution)
	}
	if mass < 0 {
		return nil, newError(InvalidMass, "mass must be non-negative, got %f", mass)
	}
	if mass == 0 {
		mass = shape.Area()
	}

	b := &body{
		handle:      newBodyHandle(),
		shape:       shape,
		center:      center,
		angle:       angle,
		restitution: restitution,
		friction:    0.3,
		locked:      locked,
		canRotate:   canRotate,
		canSleep:    true,
		contacts:    map[BodyHandle]ContactInfo{},
		connections: map[BodyHandle]struct{}{},
	}
	b.setMaterial(mass)
	b.recomputeAABB(0)
	return b, nil
}

// setMaterial computes inv_mass and inertia from the shape and the given
// mass, honoring the locked and can_rotate invariants.
func (b *body) setMaterial(mass float32) {
	b.mass = mass
	b.inertia = b.shape.MomentOfInertia(mass)
	b.invMass = 0
	b.invInertia = 0
	if !b.locked {
		if mass > v2.Epsilon {
			b.invMass = 1 / mass
		}
		if b.canRotate && b.inertia > v2.Epsilon {
			b.invInertia = 1 / b.inertia
		}
	}
}

// invMassEff and invInertiaEff are the values the solver must use: locked
// forces both to zero, and a non-rotating body forces inertia to zero,
// exactly per the Body invariants.
func (b *body) invMassEff() float32 {
	if b.locked {
		return 0
	}
	return b.invMass
}

func (b *body) invInertiaEff() float32 {
	if b.locked || !b.canRotate {
		return 0
	}
	return b.invInertia
}

// applyGravity adds gravity*scale*dt to the linear velocity of an awake,
// unlocked body.
func (b *body) applyGravity(gravity v2.Vector, gravityScale, dt float32) {
	if b.locked || b.sleeping {
		return
	}
	b.linearVelocity.X += gravity.X * gravityScale * dt
	b.linearVelocity.Y += gravity.Y * gravityScale * dt
}

// integratePose advances center and angle by the current velocities,
// clamps near-zero velocities to exactly zero to kill jitter, and applies
// a small angular damping factor every step.
func (b *body) integratePose(dt float32) {
	if b.locked || b.sleeping {
		return
	}
	b.center.X += b.linearVelocity.X * dt
	b.center.Y += b.linearVelocity.Y * dt
	b.angle += b.angularVelocity * dt

	if v2.Abs(b.linearVelocity.X)+v2.Abs(b.linearVelocity.Y) < 0.01 {
		b.linearVelocity = v2.Vector{}
	}
	if v2.Abs(b.angularVelocity) < 0.001 {
		b.angularVelocity = 0
	}
	b.angularVelocity *= 0.999
}

// recomputeAABB refreshes the cached AABB with the given broad-phase
// margin, called after any move, rotate, or step.
func (b *body) recomputeAABB(margin float32) {
	b.aabb = b.shape.AABB(b.center, b.angle).Expanded(margin)
}

// velocityAtPoint returns the linear velocity of the material point of the
// body currently coincident with worldPoint: v + perp(r)*omega.
func (b *body) velocityAtPoint(worldPoint v2.Vector) v2.Vector {
	r := worldPoint.Subbed(b.center)
	perp := r.Perp()
	return v2.Vector{
		X: b.linearVelocity.X + perp.X*b.angularVelocity,
		Y: b.linearVelocity.Y + perp.Y*b.angularVelocity,
	}
}

// applyImpulse applies a linear+angular impulse at a world contact point,
// immediately, outside the normal solver loop (used by the external
// apply_impulse operation; contact and constraint resolution use
// applyPairImpulse instead).
func (b *body) applyImpulse(impulse, contactPoint v2.Vector) {
	if b.locked {
		return
	}
	invM, invI := b.invMassEff(), b.invInertiaEff()
	b.linearVelocity.X += impulse.X * invM
	b.linearVelocity.Y += impulse.Y * invM
	r := contactPoint.Subbed(b.center)
	b.angularVelocity += invI * v2.Cross(&r, &impulse)
	b.wake()
}

// wake clears sleep state; any caller-issued mutation or solver impulse
// calls this to satisfy the "wakes on mutation" state machine rule.
func (b *body) wake() {
	b.sleeping = false
	b.sleepTime = 0
}

// kineticEnergy returns linear + angular kinetic energy, used by the sleep
// evaluation step.
func (b *body) kineticEnergy() float32 {
	linear := 0.5 * b.mass * b.linearVelocity.LenSqr()
	angular := 0.5 * b.inertia * b.angularVelocity * b.angularVelocity
	return linear + angular
}

func (b *body) setContact(other BodyHandle, info ContactInfo) (added bool) {
	_, existed := b.contacts[other]
	b.contacts[other] = info
	return !existed
}

func (b *body) clearContact(other BodyHandle) (removed bool) {
	_, existed := b.contacts[other]
	delete(b.contacts, other)
	return existed
}

func (b *body) isConnectedTo(other BodyHandle) bool {
	_, ok := b.connections[other]
	return ok
}

func (b *body) connect(other BodyHandle) {
	b.connections[other] = struct{}{}
}

func (b *body) disconnect(other BodyHandle) {
	delete(b.connections, other)
}

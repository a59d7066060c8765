// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.
//
// solver is a scaled-down, 2D version of the Bullet physics
// btSequentialImpulseConstraintSolver: sequential impulses over contacts
// (normal + friction), with Baumgarte positional correction as a separate
// pass rather than split-impulse pseudo-velocities.

package physics

import (
	"math"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// positionalSlop is the penetration allowed to remain uncorrected, to
// avoid jitter from chasing the last fraction of a millimeter.
const positionalSlop = 0.01

// baumgarteFactor is the fraction of positional error fed back during the
// correction pass.
const baumgarteFactor = 0.2

// resolveContact applies the normal and friction impulses for one
// manifold between bodies a and b, in solver-iteration order. It applies
// nothing if the pair is suppressed by a constraint connection or is
// separating (no impulse needed).
func resolveContact(a, b *body, m Manifold) {
	if a.isConnectedTo(b.handle) {
		return
	}

	ra := m.ContactPoint.Subbed(a.center)
	rb := m.ContactPoint.Subbed(b.center)

	va := a.velocityAtPoint(m.ContactPoint)
	vb := b.velocityAtPoint(m.ContactPoint)
	vrel := vb.Subbed(va)

	n := m.Normal
	vrelDotN := vrel.Dot(&n)
	if vrelDotN >= 0 {
		return // separating
	}

	invMassA, invMassB := a.invMassEff(), b.invMassEff()
	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()

	raCrossN := v2.Cross(&ra, &n)
	rbCrossN := v2.Cross(&rb, &n)
	k := invMassA + invMassB + raCrossN*raCrossN*invInertiaA + rbCrossN*rbCrossN*invInertiaB
	if k <= v2.Epsilon {
		return
	}

	restitution := minFloat32(a.restitution, b.restitution)
	j := -(1 + restitution) * vrelDotN / k

	impulse := n.Scaled(j)
	applyPairImpulse(a, b, impulse, ra, rb)

	// Friction: recompute relative velocity after the normal impulse so
	// the tangent impulse sees the corrected state.
	va = a.velocityAtPoint(m.ContactPoint)
	vb = b.velocityAtPoint(m.ContactPoint)
	vrel = vb.Subbed(va)
	newVrelDotN := vrel.Dot(&n)

	tangentVel := v2.Vector{X: vrel.X - newVrelDotN*n.X, Y: vrel.Y - newVrelDotN*n.Y}
	tLen := tangentVel.Len()
	if tLen < v2.Epsilon {
		return
	}
	t := tangentVel.Scaled(1 / tLen)

	raCrossT := v2.Cross(&ra, &t)
	rbCrossT := v2.Cross(&rb, &t)
	kt := invMassA + invMassB + raCrossT*raCrossT*invInertiaA + rbCrossT*rbCrossT*invInertiaB
	if kt <= v2.Epsilon {
		return
	}

	vrelDotT := vrel.Dot(&t)
	jt := -vrelDotT / kt

	mu := float32(math.Sqrt(float64(a.friction * b.friction)))
	maxFriction := mu * v2.Abs(j)
	jt = v2.Clamp(jt, -maxFriction, maxFriction)

	frictionImpulse := t.Scaled(jt)
	applyPairImpulse(a, b, frictionImpulse, ra, rb)
}

// applyPairImpulse applies +impulse to b and -impulse to a at their
// respective contact offsets, bypassing body.applyImpulse's wake call
// (the caller already owns that for the step).
func applyPairImpulse(a, b *body, impulse, ra, rb v2.Vector) {
	invMassA, invMassB := a.invMassEff(), b.invMassEff()
	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()

	a.linearVelocity.X -= impulse.X * invMassA
	a.linearVelocity.Y -= impulse.Y * invMassA
	a.angularVelocity -= invInertiaA * v2.Cross(&ra, &impulse)

	b.linearVelocity.X += impulse.X * invMassB
	b.linearVelocity.Y += impulse.Y * invMassB
	b.angularVelocity += invInertiaB * v2.Cross(&rb, &impulse)
}

// positionalCorrection performs the Baumgarte positional correction pass
// for one manifold: bodies are translated apart in proportion to their
// inverse mass so a locked body never moves. slop and baumgarte let the
// world override the package defaults via its Tuning.
func positionalCorrection(a, b *body, m Manifold, slop, baumgarte float32) {
	if a.isConnectedTo(b.handle) {
		return
	}
	invMassA, invMassB := a.invMassEff(), b.invMassEff()
	totalInvMass := invMassA + invMassB
	if totalInvMass <= v2.Epsilon {
		return
	}
	depth := m.Penetration - slop
	if depth <= 0 {
		return
	}
	corrMag := depth / totalInvMass * baumgarte
	corr := m.Normal.Scaled(corrMag)

	if !a.locked {
		a.center.X -= corr.X * invMassA
		a.center.Y -= corr.Y * invMassA
	}
	if !b.locked {
		b.center.X += corr.X * invMassB
		b.center.Y += corr.Y * invMassB
	}
}

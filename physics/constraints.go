// Copyright © 2024 Galvanized Logic Inc.

package physics

import (
	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// ConstraintKind enumerates the constraint variants.
type ConstraintKind int

const (
	WeldConstraint ConstraintKind = iota
	AxisConstraint
	SpringConstraint
)

// SpringParams holds the tunable parameters of a Spring constraint.
type SpringParams struct {
	RestLength   float32
	MinLength    float32 // 0 = unbounded
	MaxLength    float32 // 0 = unbounded
	Frequency    float32 // Hz
	DampingRatio float32 // [0,1]

	UseAngular          bool
	AngularFrequency    float32
	AngularDampingRatio float32
}

// constraint is the internal representation of a Weld, Axis, or Spring
// link between two bodies. Like body, it is never exposed directly;
// callers hold a ConstraintHandle and operate through the World.
type constraint struct {
	handle ConstraintHandle
	kind   ConstraintKind

	a, b             BodyHandle
	anchorA, anchorB v2.Vector

	canBreak bool
	broken   bool

	// Weld
	initialRelAngle float32

	// Spring
	spring              SpringParams
	initialAxis         v2.Vector
	initialRelAngleSpr  float32
}

func newWeld(a, b BodyHandle, anchorA, anchorB v2.Vector, relAngle float32, canBreak bool) *constraint {
	return &constraint{
		handle:          newConstraintHandle(),
		kind:            WeldConstraint,
		a:               a,
		b:               b,
		anchorA:         anchorA,
		anchorB:         anchorB,
		canBreak:        canBreak,
		initialRelAngle: relAngle,
	}
}

func newAxis(a, b BodyHandle, anchorA, anchorB v2.Vector) *constraint {
	return &constraint{
		handle:  newConstraintHandle(),
		kind:    AxisConstraint,
		a:       a,
		b:       b,
		anchorA: anchorA,
		anchorB: anchorB,
	}
}

func newSpring(a, b BodyHandle, anchorA, anchorB v2.Vector, params SpringParams, initialAxis v2.Vector, initialRelAngle float32, canBreak bool) *constraint {
	return &constraint{
		handle:             newConstraintHandle(),
		kind:               SpringConstraint,
		a:                  a,
		b:                  b,
		anchorA:            anchorA,
		anchorB:            anchorB,
		canBreak:           canBreak,
		spring:             params,
		initialAxis:        initialAxis,
		initialRelAngleSpr: initialRelAngle,
	}
}

func worldAnchor(bd *body, localAnchor v2.Vector) v2.Vector {
	rotated := v2.Vector{}
	rotated.Rotate(&localAnchor, bd.angle)
	return rotated.Added(bd.center)
}

// solve applies one solver iteration of this constraint. It returns true
// if this call is the iteration on which the constraint transitioned from
// intact to broken, so the world can fire on_constraint_broken exactly
// once.
func (c *constraint) solve(a, b *body, dt float32) (justBroke bool) {
	if c.broken {
		return false
	}
	switch c.kind {
	case WeldConstraint:
		return c.solveWeld(a, b, dt)
	case AxisConstraint:
		c.solveAxis(a, b, dt)
		return false
	case SpringConstraint:
		return c.solveSpring(a, b, dt)
	}
	return false
}

const (
	weldBetaPos = 0.23
	weldVMax    = 400
	weldBetaAng = 0.20

	axisBetaPos   = 0.05
	axisVMax      = 300
	axisLinearSlop = 0.03

	weldBreakPosSqr = 30
	weldBreakAng    = 0.5
	springBreakPos  = 80
)

func (c *constraint) solveWeld(a, b *body, dt float32) (justBroke bool) {
	worldA := worldAnchor(a, c.anchorA)
	worldB := worldAnchor(b, c.anchorB)
	ep := worldB.Subbed(worldA)
	eTheta := v2.Nang((b.angle - a.angle) - c.initialRelAngle)

	if c.canBreak && (ep.LenSqr() > weldBreakPosSqr || v2.Abs(eTheta) > weldBreakAng) {
		c.broken = true
		return true
	}

	rA := worldA.Subbed(a.center)
	rB := worldB.Subbed(b.center)
	solveLinearAxis(a, b, rA, rB, v2.Vector{X: 1}, ep.X, weldBetaPos, weldVMax, dt)
	solveLinearAxis(a, b, rA, rB, v2.Vector{X: 0, Y: 1}, ep.Y, weldBetaPos, weldVMax, dt)

	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()
	kAng := invInertiaA + invInertiaB
	if kAng > v2.Epsilon {
		bias := v2.ClampAbs(weldBetaAng*eTheta/dt, weldVMax)
		deltaOmega := b.angularVelocity - a.angularVelocity
		impulse := -(deltaOmega + bias) / kAng
		a.angularVelocity -= impulse * invInertiaA
		b.angularVelocity += impulse * invInertiaB
	}
	return false
}

func (c *constraint) solveAxis(a, b *body, dt float32) {
	worldA := worldAnchor(a, c.anchorA)
	worldB := worldAnchor(b, c.anchorB)
	ep := worldB.Subbed(worldA)

	beta := axisBetaPos
	if ep.Len() < axisLinearSlop {
		beta = 0
	}

	rA := worldA.Subbed(a.center)
	rB := worldB.Subbed(b.center)
	solveLinearAxis(a, b, rA, rB, v2.Vector{X: 1}, ep.X, beta, axisVMax, dt)
	solveLinearAxis(a, b, rA, rB, v2.Vector{X: 0, Y: 1}, ep.Y, beta, axisVMax, dt)
}

// solveLinearAxis resolves the velocity-and-position error along one world
// axis between the two constraint anchors, shared by Weld and Axis.
func solveLinearAxis(a, b *body, rA, rB, axis v2.Vector, posError, beta, vmax, dt float32) {
	invMassA, invMassB := a.invMassEff(), b.invMassEff()
	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()

	raCross := v2.Cross(&rA, &axis)
	rbCross := v2.Cross(&rB, &axis)
	k := invMassA + invMassB + raCross*raCross*invInertiaA + rbCross*rbCross*invInertiaB
	if k <= v2.Epsilon {
		return
	}

	worldA := a.center.Added(rA)
	worldB := b.center.Added(rB)
	vAtA := a.velocityAtPoint(worldA)
	vAtB := b.velocityAtPoint(worldB)
	velErr := vAtB.Subbed(vAtA).Dot(&axis)

	bias := float32(0)
	if beta != 0 {
		bias = v2.ClampAbs(beta*posError/dt, vmax)
	}

	j := -(velErr + bias) / k
	impulse := axis.Scaled(j)
	applyPairImpulse(a, b, impulse, rA, rB)
}

func (c *constraint) solveSpring(a, b *body, dt float32) (justBroke bool) {
	worldA := worldAnchor(a, c.anchorA)
	worldB := worldAnchor(b, c.anchorB)
	delta := worldB.Subbed(worldA)
	dist := delta.Len()

	axis := c.initialAxis
	if dist > v2.Epsilon {
		axis = delta.Scaled(1 / dist)
	}

	target := c.spring.RestLength
	if c.spring.MinLength > 0 || c.spring.MaxLength > 0 {
		lo, hi := c.spring.MinLength, c.spring.MaxLength
		if hi == 0 {
			hi = target
			if target < lo {
				hi = lo
			}
		}
		if lo == 0 {
			lo = 0
		}
		target = v2.Clamp(c.spring.RestLength, lo, hi)
	}
	ep := dist - target

	if c.canBreak && v2.Abs(ep) > springBreakPos {
		c.broken = true
		return true
	}

	rA := worldA.Subbed(a.center)
	rB := worldB.Subbed(b.center)

	invMassA, invMassB := a.invMassEff(), b.invMassEff()
	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()
	raCross := v2.Cross(&rA, &axis)
	rbCross := v2.Cross(&rB, &axis)
	k := invMassA + invMassB + raCross*raCross*invInertiaA + rbCross*rbCross*invInertiaB
	if k > v2.Epsilon {
		kEff := 1 / k
		omega := 2 * v2.PI * c.spring.Frequency
		springK := kEff * omega * omega
		damping := 2 * kEff * c.spring.DampingRatio * omega
		d := damping + dt*springK
		if d > v2.Epsilon {
			gamma := 1 / (dt * d)
			beta := dt * springK / d

			vAtA := a.velocityAtPoint(worldA)
			vAtB := b.velocityAtPoint(worldB)
			vRel := vAtB.Subbed(vAtA).Dot(&axis)

			j := -(vRel + beta/dt*ep) / (k + gamma)
			impulse := axis.Scaled(j)
			applyPairImpulse(a, b, impulse, rA, rB)
		}
	}

	if c.spring.UseAngular {
		c.solveSpringAngular(a, b, dt)
	}
	return false
}

func (c *constraint) solveSpringAngular(a, b *body, dt float32) {
	invInertiaA, invInertiaB := a.invInertiaEff(), b.invInertiaEff()
	kAng := invInertiaA + invInertiaB
	if kAng <= v2.Epsilon {
		return
	}
	kEffAng := 1 / kAng
	omega := 2 * v2.PI * c.spring.AngularFrequency
	springK := kEffAng * omega * omega
	damping := 2 * kEffAng * c.spring.AngularDampingRatio * omega
	d := damping + dt*springK
	if d <= v2.Epsilon {
		return
	}
	gamma := 1 / (dt * d)
	beta := dt * springK / d

	eTheta := v2.Nang((b.angle - a.angle) - c.initialRelAngleSpr)
	deltaOmega := b.angularVelocity - a.angularVelocity
	j := -(deltaOmega + beta/dt*eTheta) / (kAng + gamma)
	a.angularVelocity -= j * invInertiaA
	b.angularVelocity += j * invInertiaB
}

func validateSpringParams(p SpringParams) error {
	if p.DampingRatio < 0 || p.DampingRatio > 1 {
		return newError(ParameterOutOfRange, "spring damping_ratio must be within [0,1], got %f", p.DampingRatio)
	}
	if p.Frequency <= 0 {
		return newError(ParameterOutOfRange, "spring frequency must be positive, got %f", p.Frequency)
	}
	if p.UseAngular {
		if p.AngularDampingRatio < 0 || p.AngularDampingRatio > 1 {
			return newError(ParameterOutOfRange, "spring angular_damping_ratio must be within [0,1], got %f", p.AngularDampingRatio)
		}
		if p.AngularFrequency <= 0 {
			return newError(ParameterOutOfRange, "angular spring requires a positive angular_frequency, got %f", p.AngularFrequency)
		}
	}
	return nil
}

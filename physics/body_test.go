// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBodyDefaultsMassToShapeArea(t *testing.T) {
	circle, err := NewCircle(2)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{}, 0, 0.5, false, 0, true)
	require.NoError(t, err)
	assert.InDelta(t, circle.Area(), b.mass, 1e-4)
}

func TestLockedBodyHasZeroEffectiveInverseMass(t *testing.T) {
	box, err := NewBox(2, 2)
	require.NoError(t, err)
	b, err := newBody(box, v2.Vector{}, 0, 0, true, 10, true)
	require.NoError(t, err)
	assert.Zero(t, b.invMassEff())
	assert.Zero(t, b.invInertiaEff())
}

func TestCanRotateFalseZeroesEffectiveInertia(t *testing.T) {
	box, err := NewBox(2, 2)
	require.NoError(t, err)
	b, err := newBody(box, v2.Vector{}, 0, 0, false, 10, false)
	require.NoError(t, err)
	assert.Zero(t, b.invInertiaEff())
	assert.NotZero(t, b.invMassEff())
}

func TestApplyImpulseAtCenterOnlyChangesLinearVelocity(t *testing.T) {
	circle, err := NewCircle(1)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{}, 0, 0, false, 1, true)
	require.NoError(t, err)
	b.applyImpulse(v2.Vector{X: 2, Y: 0}, b.center)
	assert.InDelta(t, 2*b.invMassEff(), b.linearVelocity.X, 1e-4)
	assert.Zero(t, b.angularVelocity)
}

func TestApplyImpulseWakesASleepingBody(t *testing.T) {
	circle, err := NewCircle(1)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{}, 0, 0, false, 1, true)
	require.NoError(t, err)
	b.sleeping = true
	b.applyImpulse(v2.Vector{X: 1, Y: 0}, b.center)
	assert.False(t, b.sleeping)
}

func TestIntegratePoseClampsTinyVelocitiesToZero(t *testing.T) {
	circle, err := NewCircle(1)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{}, 0, 0, false, 1, true)
	require.NoError(t, err)
	b.linearVelocity = v2.Vector{X: 0.001, Y: 0.001}
	b.angularVelocity = 0.0001
	b.integratePose(1.0 / 60)
	assert.Equal(t, v2.Vector{}, b.linearVelocity)
	assert.Zero(t, b.angularVelocity)
}

func TestVelocityAtPointIncludesAngularTerm(t *testing.T) {
	circle, err := NewCircle(1)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{}, 0, 0, false, 1, true)
	require.NoError(t, err)
	b.angularVelocity = 1
	point := v2.Vector{X: 1, Y: 0}
	v := b.velocityAtPoint(point)
	assert.InDelta(t, 0, v.X, 1e-4)
	assert.InDelta(t, 1, v.Y, 1e-4)
}

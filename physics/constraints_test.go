// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"testing"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCircles(t *testing.T, sepX float32) (*body, *body) {
	t.Helper()
	circle, err := NewCircle(1)
	require.NoError(t, err)
	a, err := newBody(circle, v2.Vector{}, 0, 0, false, 1, true)
	require.NoError(t, err)
	b, err := newBody(circle, v2.Vector{X: sepX}, 0, 0, false, 1, true)
	require.NoError(t, err)
	return a, b
}

func TestWeldPullsDriftingAnchorsBackTogether(t *testing.T) {
	a, b := twoCircles(t, 0)
	c := newWeld(a.handle, b.handle, v2.Vector{}, v2.Vector{}, 0, false)
	b.center.X = 0.5 // simulate one step of drift

	for i := 0; i < 20; i++ {
		c.solve(a, b, 1.0/60)
		a.center.X += a.linearVelocity.X / 60
		b.center.X += b.linearVelocity.X / 60
	}
	assert.Less(t, v2.Abs(b.center.X-a.center.X)+v2.Abs(b.linearVelocity.X), float32(0.5))
}

func TestWeldBreaksWhenPositionErrorExceedsThreshold(t *testing.T) {
	a, b := twoCircles(t, 0)
	c := newWeld(a.handle, b.handle, v2.Vector{}, v2.Vector{}, 0, true)
	b.center.X = 10 // |ep|^2 = 100 > 30

	broke := c.solve(a, b, 1.0/60)
	assert.True(t, broke)
	assert.True(t, c.broken)
}

func TestWeldDoesNotBreakWhenCanBreakIsFalse(t *testing.T) {
	a, b := twoCircles(t, 0)
	c := newWeld(a.handle, b.handle, v2.Vector{}, v2.Vector{}, 0, false)
	b.center.X = 10

	c.solve(a, b, 1.0/60)
	assert.False(t, c.broken)
}

func TestAxisConstraintLeavesSmallErrorUncorrectedBelowSlop(t *testing.T) {
	a, b := twoCircles(t, 0)
	c := newAxis(a.handle, b.handle, v2.Vector{}, v2.Vector{})
	b.center.X = 0.01 // below the 0.03 linear slop

	before := b.center.X
	c.solve(a, b, 1.0/60)
	assert.Equal(t, before, b.center.X) // solve never moves positions directly
	assert.Zero(t, b.linearVelocity.X)  // no positional bias below slop, so no corrective velocity
}

func TestSpringPullsBodiesTowardRestLength(t *testing.T) {
	a, b := twoCircles(t, 150)
	c := newSpring(a.handle, b.handle, v2.Vector{}, v2.Vector{},
		SpringParams{RestLength: 100, Frequency: 2, DampingRatio: 0.7},
		v2.Vector{X: 1}, 0, false)

	for i := 0; i < 120; i++ {
		c.solve(a, b, 1.0/60)
		a.center.X += a.linearVelocity.X / 60
		b.center.X += b.linearVelocity.X / 60
	}
	dist := b.center.X - a.center.X
	assert.InDelta(t, 100, dist, 20)
}

func TestSpringBreaksWhenStretchedPastThreshold(t *testing.T) {
	a, b := twoCircles(t, 300) // ep = 200 > 80
	c := newSpring(a.handle, b.handle, v2.Vector{}, v2.Vector{},
		SpringParams{RestLength: 100, Frequency: 2, DampingRatio: 0.7}, v2.Vector{X: 1}, 0, true)

	broke := c.solve(a, b, 1.0/60)
	assert.True(t, broke)
}

func TestValidateSpringParamsRejectsDampingRatioOutOfRange(t *testing.T) {
	err := validateSpringParams(SpringParams{Frequency: 1, DampingRatio: 1.5})
	require.Error(t, err)
	var physErr *Error
	require.ErrorAs(t, err, &physErr)
	assert.Equal(t, ParameterOutOfRange, physErr.Kind)
}

func TestValidateSpringParamsRejectsNonPositiveFrequency(t *testing.T) {
	err := validateSpringParams(SpringParams{Frequency: 0, DampingRatio: 0.5})
	require.Error(t, err)
}

func TestValidateSpringParamsRequiresAngularFrequencyWhenAngularEnabled(t *testing.T) {
	err := validateSpringParams(SpringParams{Frequency: 1, DampingRatio: 0.5, UseAngular: true, AngularDampingRatio: 0.5})
	require.Error(t, err)
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"
	"testing"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndDestroyBodyRoundTrip(t *testing.T) {
	w := NewWorld(v2.Vector{}, 1, 1, 0, 0)
	h, err := w.CreateCircle(v2.Vector{}, 1, 0.5, false, 0)
	require.NoError(t, err)
	assert.Len(t, w.Bodies(), 1)

	require.NoError(t, w.Destroy(h))
	w.Tick(1.0 / 60)
	assert.Len(t, w.Bodies(), 0)

	_, err = w.State(h)
	var physErr *Error
	require.ErrorAs(t, err, &physErr)
	assert.Equal(t, StaleHandle, physErr.Kind)
}

func TestGravityOnlyIntegrationMatchesKinematicEquation(t *testing.T) {
	w := NewWorld(v2.Vector{Y: -10}, 1, 1, 0, 0)
	h, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)

	const dt = float32(1.0 / 60)
	const steps = 30
	for i := 0; i < steps; i++ {
		w.Tick(dt)
	}

	state, err := w.State(h)
	require.NoError(t, err)
	assert.InDelta(t, -10*steps*dt, state.Linear.Y, 1e-3)
}

func TestOutOfBoundsBodyIsEvicted(t *testing.T) {
	w := NewWorld(v2.Vector{}, 1, 1, 0, 0)
	h, err := w.CreateCircle(v2.Vector{X: 3000}, 1, 0, false, 1)
	require.NoError(t, err)
	w.Tick(1.0 / 60) // eviction enqueues the body for removal
	w.Tick(1.0 / 60) // the next Tick services the removal queue
	assert.Len(t, w.Bodies(), 0)
	_, err = w.State(h)
	assert.Error(t, err)
}

func TestBodyAtPointFindsContainingBody(t *testing.T) {
	w := NewWorld(v2.Vector{}, 1, 1, 0, 0)
	_, err := w.CreateCircle(v2.Vector{X: 10}, 1, 0, false, 1)
	require.NoError(t, err)
	h2, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)

	found, ok := w.BodyAtPoint(v2.Vector{X: 0.5})
	assert.True(t, ok)
	assert.Equal(t, h2, found)

	_, ok = w.BodyAtPoint(v2.Vector{X: 50})
	assert.False(t, ok)
}

func TestContactAddedEventFiresOnFirstTouch(t *testing.T) {
	w := NewWorld(v2.Vector{}, 1, 1, 0, 0)
	_, err := w.CreateCircle(v2.Vector{}, 1, 0, true, 1)
	require.NoError(t, err)
	_, err = w.CreateCircle(v2.Vector{X: 1.9}, 1, 0, false, 1)
	require.NoError(t, err)

	added := 0
	w.OnContactAdded = func(ContactEvent) { added++ }
	w.Tick(1.0 / 60)
	assert.Equal(t, 1, added)

	added = 0
	w.Tick(1.0 / 60)
	assert.Equal(t, 0, added) // still touching: no repeat added event
}

func TestWeldConstraintScenario(t *testing.T) {
	// Two free-floating unit-mass circles, anchors at centers, zero initial
	// separation: after one step with gravity (0,-9.8) both remain
	// coincident to tolerance 1e-3.
	w := NewWorld(v2.Vector{Y: -9.8}, 1, 1, 0, 0)
	a, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)
	b, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)
	_, err = w.AddWeld(a, b, v2.Vector{}, v2.Vector{}, false)
	require.NoError(t, err)

	w.Tick(1.0 / 60)

	sa, err := w.State(a)
	require.NoError(t, err)
	sb, err := w.State(b)
	require.NoError(t, err)
	assert.InDelta(t, 0, sb.Center.X-sa.Center.X, 1e-3)
	assert.InDelta(t, 0, sb.Center.Y-sa.Center.Y, 1e-3)
}

func TestAxisConstraintPendulumRadiusStaysStable(t *testing.T) {
	// A locked anchor and a free unit-mass circle linked by an axis
	// constraint: over 100 steps at dt=1/60, the circle's radius from the
	// anchor stays within 1% of its initial value.
	w := NewWorld(v2.Vector{Y: -9.8}, 1, 1, 0, 0)
	anchor, err := w.CreateCircle(v2.Vector{}, 1, 0, true, 1)
	require.NoError(t, err)
	bob, err := w.CreateCircle(v2.Vector{X: 5}, 1, 0, false, 1)
	require.NoError(t, err)
	_, err = w.AddAxis(anchor, bob, v2.Vector{}, v2.Vector{X: -5})
	require.NoError(t, err)

	const initialRadius = 5.0
	for i := 0; i < 100; i++ {
		w.Tick(1.0 / 60)
		s, err := w.State(bob)
		require.NoError(t, err)
		radius := float32(math.Hypot(float64(s.Center.X), float64(s.Center.Y)))
		assert.InDelta(t, initialRadius, radius, initialRadius*0.01)
	}
}

func TestSpringConstraintDecaysAndCrossesRestLength(t *testing.T) {
	// rest_length=100, frequency=2Hz, damping_ratio=0.7, two equal masses
	// released from 150 apart with zero velocity: length crosses
	// rest_length within the first half-period and amplitude decays.
	w := NewWorld(v2.Vector{}, 0, 1, 0, 0)
	a, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)
	b, err := w.CreateCircle(v2.Vector{X: 150}, 1, 0, false, 1)
	require.NoError(t, err)
	_, err = w.AddSpring(a, b, v2.Vector{}, v2.Vector{}, SpringParams{
		RestLength:   100,
		Frequency:    2,
		DampingRatio: 0.7,
	}, false)
	require.NoError(t, err)

	const dt = float32(1.0 / 60)
	// Half period of a 2Hz oscillator is 0.25s = 15 steps; give it margin.
	crossed := false
	maxAmplitude := float32(0)
	for i := 0; i < 30; i++ {
		w.Tick(dt)
		sa, _ := w.State(a)
		sb, _ := w.State(b)
		length := sb.Center.X - sa.Center.X
		if length <= 100 {
			crossed = true
		}
		amp := v2.Abs(length - 100)
		if amp > maxAmplitude {
			maxAmplitude = amp
		}
	}
	assert.True(t, crossed)
	assert.Less(t, maxAmplitude, float32(50))
}

func TestRestingBodyOnLockedFloorEventuallySleeps(t *testing.T) {
	// A circle resting on a locked floor, under gravity, must settle and go
	// to sleep: a locked body never has its own sleeping flag set (it is
	// skipped entirely by sleep evaluation), so gating the circle's sleep
	// timer on the floor's sleeping flag would deadlock it awake forever.
	w := NewWorld(v2.Vector{Y: -9.8}, 1, 1, 0, 0)
	_, err := w.CreateBox(v2.Vector{X: -50, Y: -1}, v2.Vector{X: 50, Y: 0}, 0, true, 0)
	require.NoError(t, err)
	h, err := w.CreateCircle(v2.Vector{Y: 0.5}, 0.5, 0, false, 1)
	require.NoError(t, err)

	const dt = float32(1.0 / 60)
	asleep := false
	for i := 0; i < 180; i++ {
		w.Tick(dt)
		s, err := w.State(h)
		require.NoError(t, err)
		if s.Sleeping {
			asleep = true
			break
		}
	}
	assert.True(t, asleep)
}

func TestMutuallyRestingBodiesEventuallySleepTogether(t *testing.T) {
	// Two bodies touching only each other, quiescent from the first tick,
	// must both sleep once the island has been quiescent for SleepDelay:
	// each body's sleep timer reading the other's already-committed
	// sleeping flag can never succeed, since neither can go first.
	w := NewWorld(v2.Vector{}, 0, 1, 0, 0)
	a, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)
	b, err := w.CreateCircle(v2.Vector{X: 2}, 1, 0, false, 1)
	require.NoError(t, err)

	const dt = float32(1.0 / 60)
	asleep := false
	for i := 0; i < 60; i++ {
		w.Tick(dt)
		sa, err := w.State(a)
		require.NoError(t, err)
		sb, err := w.State(b)
		require.NoError(t, err)
		if sa.Sleeping && sb.Sleeping {
			asleep = true
			break
		}
	}
	assert.True(t, asleep)
}

func TestLockUnlockRestoresEffectiveInverseMass(t *testing.T) {
	w := NewWorld(v2.Vector{}, 1, 1, 0, 0)
	h, err := w.CreateCircle(v2.Vector{}, 1, 0, false, 1)
	require.NoError(t, err)
	require.NoError(t, w.Lock(h))
	require.NoError(t, w.Unlock(h))

	b := w.bodies[h]
	assert.Greater(t, b.invMassEff(), float32(0))
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverridesOnlyGivenFields(t *testing.T) {
	yamlDoc := []byte(`
iteration_count: 4
sleep_threshold: 0.05
`)
	tuning, err := Parse(yamlDoc)
	require.NoError(t, err)
	assert.Equal(t, 4, tuning.IterationCount)
	assert.InDelta(t, 0.05, tuning.SleepThreshold, 1e-6)
	// Unspecified fields keep the built-in default.
	assert.InDelta(t, 0.2, tuning.BaumgarteFactor, 1e-6)
	assert.InDelta(t, -9.8, tuning.Gravity.Y, 1e-6)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("iteration_count: [unterminated"))
	assert.Error(t, err)
}

func TestToVectorConvertsComponents(t *testing.T) {
	v := Vector2{X: 1.5, Y: -2.5}
	out := v.ToVector()
	assert.Equal(t, float32(1.5), out.X)
	assert.Equal(t, float32(-2.5), out.Y)
}

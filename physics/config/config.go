// Copyright © 2024 Galvanized Logic Inc.

// Package config loads the world's global tunables from YAML so the
// Baumgarte factors, slop, sleep threshold, and world bounds a
// simulation runs with can be versioned and swapped without a rebuild.
package config

import (
	"fmt"
	"os"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
	"gopkg.in/yaml.v3"
)

// Tuning holds the process-wide-by-convention, but world-scoped-by-policy,
// constants that drive a simulation: gravity, iteration count, sleep
// threshold, and the solver's positional-correction constants.
type Tuning struct {
	Gravity      Vector2 `yaml:"gravity"`
	GravityScale float32 `yaml:"gravity_scale"`
	TimeScale    float32 `yaml:"time_scale"`

	IterationCount int     `yaml:"iteration_count"`
	SleepThreshold float32 `yaml:"sleep_threshold"`
	SleepDelay     float32 `yaml:"sleep_delay_seconds"`

	PositionalSlop  float32 `yaml:"positional_slop"`
	BaumgarteFactor float32 `yaml:"baumgarte_factor"`

	WorldBound float32 `yaml:"world_bound"`
}

// Vector2 mirrors v2.Vector with yaml tags; config files are plain data
// and should not import the simulation's hot-path vector type directly.
type Vector2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// ToVector converts the YAML-friendly Vector2 into a v2.Vector.
func (v Vector2) ToVector() v2.Vector { return v2.Vector{X: v.X, Y: v.Y} }

// Default returns the tuning matching the built-in solver defaults.
func Default() Tuning {
	return Tuning{
		Gravity:         Vector2{X: 0, Y: -9.8},
		GravityScale:    1,
		TimeScale:       1,
		IterationCount:  8,
		SleepThreshold:  0.01,
		SleepDelay:      0.5,
		PositionalSlop:  0.01,
		BaumgarteFactor: 0.2,
		WorldBound:      2000,
	}
}

// Load reads and parses a Tuning from a YAML file at path; any field the
// file does not set keeps its built-in default.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals raw YAML bytes into a Tuning, defaulting fields the
// document does not set. A field set explicitly to zero stays zero.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: parse: %w", err)
	}
	return t, nil
}

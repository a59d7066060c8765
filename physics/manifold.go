// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"

// Manifold is the step-local result of the narrow phase for one candidate
// pair: which bodies touch, the direction to separate them, how deep they
// overlap, and where the contact is. A Manifold holds no ownership and
// does not outlive the step that produced it.
type Manifold struct {
	A, B         BodyHandle
	Normal       v2.Vector // unit, points from A to B
	Penetration  float32   // >= 0
	ContactPoint v2.Vector // world space
}

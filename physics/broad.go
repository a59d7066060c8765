// Copyright © 2024 Galvanized Logic Inc.

package physics

import "log/slog"

// collisionPair is a candidate ordered pair of body handles that the broad
// phase considers worth a narrow-phase test.
type collisionPair struct {
	a, b BodyHandle
}

// broadPhase enumerates candidate ordered pairs (A,B), A != B, from the
// given bodies: both must be awake, not already linked by a constraint via
// the connection set, and their cached AABBs must overlap. This is the
// simplest acceptable O(n^2) sweep; a uniform grid or sort-and-sweep would
// be a drop-in replacement as long as the output pair set is unchanged.
func broadPhase(bodies []*body) []collisionPair {
	var pairs []collisionPair
	n := len(bodies)
	for i := 0; i < n; i++ {
		a := bodies[i]
		if a.sleeping || a.removed {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := bodies[j]
			if b.sleeping || b.removed {
				continue
			}
			if a.isConnectedTo(b.handle) {
				continue
			}
			if !a.aabb.Overlaps(b.aabb) {
				continue
			}
			pairs = append(pairs, collisionPair{a: a.handle, b: b.handle})
		}
	}
	slog.Debug("broadPhase", "candidates", len(pairs), "bodies", n)
	return pairs
}

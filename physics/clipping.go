// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"

// sutherlandHodgman clips the subject polygon against the convex clip
// polygon, returning the intersection polygon. Each clip edge splits the
// current subject vertex loop into inside/outside halves using the signed
// edge function (e.end-e.start) x (v-e.start); vertices on the inside (or
// exactly on the edge) survive, and an intersection point is emitted at
// every inside/outside crossing. The clip polygon is assumed convex and
// wound counter-clockwise, matching every Shape's vertex convention.
func sutherlandHodgman(subject, clip []v2.Vector) []v2.Vector {
	output := append([]v2.Vector(nil), subject...)
	n := len(clip)
	for i := 0; i < n && len(output) > 0; i++ {
		edgeStart := clip[i]
		edgeEnd := clip[(i+1)%n]
		input := output
		output = nil
		if len(input) == 0 {
			break
		}
		prev := input[len(input)-1]
		prevInside := isInsideEdge(edgeStart, edgeEnd, prev)
		for _, curr := range input {
			currInside := isInsideEdge(edgeStart, edgeEnd, curr)
			if currInside {
				if !prevInside {
					output = append(output, edgeIntersection(edgeStart, edgeEnd, prev, curr))
				}
				output = append(output, curr)
			} else if prevInside {
				output = append(output, edgeIntersection(edgeStart, edgeEnd, prev, curr))
			}
			prev, prevInside = curr, currInside
		}
	}
	return output
}

// isInsideEdge reports whether point lies on the inside (left, for a CCW
// loop) of the directed edge start->end, within the classification
// tolerance used to treat near-edge vertices as on the edge.
func isInsideEdge(start, end, point v2.Vector) bool {
	edge := end.Subbed(start)
	toPoint := point.Subbed(start)
	return v2.Cross(&edge, &toPoint) >= -1e-4
}

// edgeIntersection returns the point where segment a->b crosses the
// infinite line through edgeStart->edgeEnd.
func edgeIntersection(edgeStart, edgeEnd, a, b v2.Vector) v2.Vector {
	edge := edgeEnd.Subbed(edgeStart)
	ab := b.Subbed(a)
	denom := v2.Cross(&edge, &ab)
	if v2.Abs(denom) < 1e-9 {
		return a
	}
	startToA := a.Subbed(edgeStart)
	t := v2.Cross(&edge, &startToA) / -denom
	return v2.Vector{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
}

// polygonCentroid returns the area-weighted centroid of a (non-empty,
// non-degenerate) polygon loop. Degenerate input (fewer than 3 vertices,
// or zero signed area) is handled by the caller's fallback, not here.
func polygonCentroid(poly []v2.Vector) (v2.Vector, bool) {
	n := len(poly)
	if n < 3 {
		return v2.Vector{}, false
	}
	var cx, cy, area float32
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		cr := v2.Cross(&a, &b)
		cx += (a.X + b.X) * cr
		cy += (a.Y + b.Y) * cr
		area += cr
	}
	if v2.Abs(area) < 1e-6 {
		return v2.Vector{}, false
	}
	area *= 0.5
	cx /= 6 * area
	cy /= 6 * area
	return v2.Vector{X: cx, Y: cy}, true
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// shapeInstance is one concrete convex piece positioned in world space: a
// body's own shape for a simple body, or one child of a Compound. Narrow
// phase always operates on instances so compound bodies fall out of the
// same dispatch as simple ones.
type shapeInstance struct {
	shape  Shape
	center v2.Vector
	angle  float32
}

func instancesOf(b *body) []shapeInstance {
	if c, ok := b.shape.(*Compound); ok {
		out := make([]shapeInstance, 0, len(c.Children))
		for _, ch := range c.Children {
			rotatedOffset := v2.Vector{}
			rotatedOffset.Rotate(&ch.Offset, b.angle)
			childCenter := rotatedOffset.Added(b.center)
			out = append(out, shapeInstance{shape: ch.Shape, center: childCenter, angle: b.angle + ch.Angle})
		}
		return out
	}
	return []shapeInstance{{shape: b.shape, center: b.center, angle: b.angle}}
}

// narrowPhase builds the manifold for a candidate pair, if any. A compound
// body explodes into its children; the child pair with the deepest
// penetration determines the manifold reported for the whole body pair.
func narrowPhase(a, b *body) (Manifold, bool) {
	var best Manifold
	found := false
	for _, ia := range instancesOf(a) {
		for _, ib := range instancesOf(b) {
			normal, penetration, contact, hit := collideInstancePair(ia, ib)
			if !hit {
				continue
			}
			if !found || penetration > best.Penetration {
				best = Manifold{A: a.handle, B: b.handle, Normal: normal, Penetration: penetration, ContactPoint: contact}
				found = true
			}
		}
	}
	return best, found
}

// collideInstancePair dispatches by shape kind. The returned normal always
// points from ia towards ib, regardless of which operand ends up playing
// the "polygon" role in the underlying algorithm.
func collideInstancePair(ia, ib shapeInstance) (normal v2.Vector, penetration float32, contact v2.Vector, hit bool) {
	ca, aIsCircle := ia.shape.(*Circle)
	cb, bIsCircle := ib.shape.(*Circle)

	switch {
	case aIsCircle && bIsCircle:
		return collideCircleCircle(ia.center, ca.Radius, ib.center, cb.Radius)

	case aIsCircle && !bIsCircle:
		vertsB := ib.shape.TransformedVertices(ib.center, ib.angle)
		n, pen, c, h := collidePolygonCircle(vertsB, ia.center, ca.Radius)
		if !h {
			return normal, 0, contact, false
		}
		return n.Scaled(-1), pen, c, true

	case !aIsCircle && bIsCircle:
		vertsA := ia.shape.TransformedVertices(ia.center, ia.angle)
		return collidePolygonCircle(vertsA, ib.center, cb.Radius)

	default:
		vertsA := ia.shape.TransformedVertices(ia.center, ia.angle)
		vertsB := ib.shape.TransformedVertices(ib.center, ib.angle)
		return collidePolygonPolygon(vertsA, ia.center, vertsB, ib.center)
	}
}

// collideCircleCircle implements the circle/circle narrow-phase test.
func collideCircleCircle(centerA v2.Vector, radiusA float32, centerB v2.Vector, radiusB float32) (normal v2.Vector, penetration float32, contact v2.Vector, hit bool) {
	d := centerB.Subbed(centerA)
	r := radiusA + radiusB
	distSqr := d.LenSqr()
	if distSqr > r*r {
		return normal, 0, contact, false
	}
	dist := float32(math.Sqrt(float64(distSqr)))
	if dist > v2.Epsilon {
		normal = d.Scaled(1 / dist)
	} else {
		normal = v2.Vector{X: 1, Y: 0}
	}
	penetration = r - dist
	contact = centerA.Added(normal.Scaled(radiusA))
	return normal, penetration, contact, true
}

// collidePolygonCircle implements the polygon/circle narrow-phase test.
// verts is the polygon's transformed (world space, CCW) vertex loop; the
// normal returned points from the polygon towards the circle.
func collidePolygonCircle(verts []v2.Vector, circleCenter v2.Vector, radius float32) (normal v2.Vector, penetration float32, contact v2.Vector, hit bool) {
	n := len(verts)
	maxSignedDist := float32(-math.MaxFloat32)
	maxEdge := 0
	for i := 0; i < n; i++ {
		a, b := verts[i], verts[(i+1)%n]
		outward := outwardEdgeNormal(a, b)
		rel := circleCenter.Subbed(a)
		d := outward.Dot(&rel)
		if d > maxSignedDist {
			maxSignedDist = d
			maxEdge = i
		}
	}

	a, b := verts[maxEdge], verts[(maxEdge+1)%n]
	edge := b.Subbed(a)
	t := float32(0)
	if lenSqr := edge.LenSqr(); lenSqr > v2.Epsilon {
		rel := circleCenter.Subbed(a)
		t = v2.Clamp(rel.Dot(&edge)/lenSqr, 0, 1)
	}
	closest := a.Added(edge.Scaled(t))
	outward := outwardEdgeNormal(a, b)

	if maxSignedDist < 0 {
		// Circle center lies inside the polygon: flip the normal outward
		// through the closest edge and treat the full edge distance as
		// additional penetration.
		return outward, radius - maxSignedDist, closest, true
	}

	diff := circleCenter.Subbed(closest)
	dist := diff.Len()
	if dist > radius {
		return normal, 0, contact, false
	}
	if dist > v2.Epsilon {
		normal = diff.Scaled(1 / dist)
	} else {
		normal = outward
	}
	return normal, radius - dist, closest, true
}

func outwardEdgeNormal(a, b v2.Vector) v2.Vector {
	edge := b.Subbed(a)
	n := v2.Vector{X: edge.Y, Y: -edge.X}
	n.Unit()
	return n
}

// collidePolygonPolygon implements the SAT narrow-phase test for convex
// polygons (including axis-aligned and oriented boxes, which are just
// four-vertex polygons here). The contact region is the Sutherland-Hodgman
// clip of vertsA against vertsB; its area-weighted centroid is the
// reported contact point, falling back to the body midpoint when the
// clip degenerates.
func collidePolygonPolygon(vertsA []v2.Vector, centerA v2.Vector, vertsB []v2.Vector, centerB v2.Vector) (normal v2.Vector, penetration float32, contact v2.Vector, hit bool) {
	axis, overlap, separated := minimumOverlapAxis(vertsA, vertsB)
	if separated {
		return normal, 0, contact, false
	}

	d := centerB.Subbed(centerA)
	if axis.Dot(&d) < 0 {
		axis = axis.Scaled(-1)
	}

	clipped := sutherlandHodgman(vertsA, vertsB)
	centroid, ok := polygonCentroid(clipped)
	if !ok {
		centroid = centerA.Added(centerB).Scaled(0.5)
	}
	return axis, overlap, centroid, true
}

// minimumOverlapAxis runs the Separating Axis Theorem over every edge
// normal of both polygons, returning the axis of least overlap. Axes are
// tested in vertsA-then-vertsB, first-vertex-first order, so a tie keeps
// the earlier axis per the spec's tie-break rule.
func minimumOverlapAxis(vertsA, vertsB []v2.Vector) (axis v2.Vector, overlap float32, separated bool) {
	best := float32(math.MaxFloat32)
	var bestAxis v2.Vector

	test := func(verts []v2.Vector) bool {
		n := len(verts)
		for i := 0; i < n; i++ {
			a, b := verts[i], verts[(i+1)%n]
			candidate := outwardEdgeNormal(a, b)
			minA, maxA := projectOntoAxis(vertsA, candidate)
			minB, maxB := projectOntoAxis(vertsB, candidate)
			o := minFloat32(maxA, maxB) - maxFloat32(minA, minB)
			if o <= 0 {
				return true // separating axis found
			}
			if o < best {
				best = o
				bestAxis = candidate
			}
		}
		return false
	}
	if test(vertsA) || test(vertsB) {
		return axis, 0, true
	}
	return bestAxis, best, false
}

func projectOntoAxis(verts []v2.Vector, axis v2.Vector) (min, max float32) {
	min = axis.Dot(&verts[0])
	max = min
	for _, v := range verts[1:] {
		p := axis.Dot(&v)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

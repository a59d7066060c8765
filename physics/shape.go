// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"

	v2 "github.com/dankelley2/sharpPhysics-sub001/math/v2"
)

// Shape is a physics collision primitive. A Shape is always defined in
// local space centered at the origin; combine it with a body's center and
// angle to position it in world space.
type Shape interface {
	Kind() ShapeKind // Kind returns the shape variant.
	Area() float32    // Area is used for mass = density*area when mass defaults.

	// AABB returns the axis aligned bounding box for this shape when
	// positioned at center and rotated by angle.
	AABB(center v2.Vector, angle float32) v2.AABB

	// MomentOfInertia returns the shape's moment of inertia about its own
	// centroid for the given mass.
	MomentOfInertia(mass float32) float32

	// Contains returns true if worldPoint lies within the shape when
	// positioned at center and rotated by angle.
	Contains(worldPoint, center v2.Vector, angle float32) bool

	// TransformedVertices returns the shape's vertices in world space.
	// Circles return an empty slice; a circle has no vertex loop.
	TransformedVertices(center v2.Vector, angle float32) []v2.Vector

	// Width and Height are diagnostic bounds: the shape's local-space
	// extent along x and y before rotation.
	Width() float32
	Height() float32
}

// ShapeKind enumerates the shape variants dispatched by the narrow phase
// and inertia computations. Kept as a small tagged union rather than using
// reflection so dispatch stays a plain type switch in the hot path.
type ShapeKind int

const (
	CircleShape ShapeKind = iota
	BoxShape
	PolygonShape
	CompoundShape
)

func (k ShapeKind) String() string {
	switch k {
	case CircleShape:
		return "Circle"
	case BoxShape:
		return "Box"
	case PolygonShape:
		return "ConvexPolygon"
	case CompoundShape:
		return "Compound"
	default:
		return "UnknownShape"
	}
}

// Shape interface
// ============================================================================
// circle shape

// Circle is a collision primitive defined by a radius around the origin.
type Circle struct {
	Radius float32
}

// NewCircle creates a Circle shape. Radius must be strictly positive.
func NewCircle(radius float32) (Shape, error) {
	if radius <= 0 {
		return nil, newError(InvalidShape, "circle radius must be positive, got %f", radius)
	}
	return &Circle{Radius: radius}, nil
}

func (c *Circle) Kind() ShapeKind { return CircleShape }
func (c *Circle) Area() float32   { return v2.PI * c.Radius * c.Radius }
func (c *Circle) Width() float32  { return c.Radius * 2 }
func (c *Circle) Height() float32 { return c.Radius * 2 }

// AABB is rotation-invariant for a circle.
func (c *Circle) AABB(center v2.Vector, angle float32) v2.AABB {
	return v2.NewAABB(
		v2.Vector{X: center.X - c.Radius, Y: center.Y - c.Radius},
		v2.Vector{X: center.X + c.Radius, Y: center.Y + c.Radius},
	)
}

func (c *Circle) MomentOfInertia(mass float32) float32 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Contains(worldPoint, center v2.Vector, angle float32) bool {
	d := worldPoint.Subbed(center)
	return d.LenSqr() <= c.Radius*c.Radius
}

func (c *Circle) TransformedVertices(center v2.Vector, angle float32) []v2.Vector { return nil }

// circle shape
// ============================================================================
// box shape

// Box is an oriented rectangle centered at the origin, stored as
// half-extents along the local x and y axes.
type Box struct {
	HalfWidth  float32
	HalfHeight float32
}

// NewBox creates a Box shape from a full width and height, both of which
// must be strictly positive.
func NewBox(width, height float32) (Shape, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(InvalidShape, "box width/height must be positive, got %fx%f", width, height)
	}
	return &Box{HalfWidth: width / 2, HalfHeight: height / 2}, nil
}

func (b *Box) Kind() ShapeKind { return BoxShape }
func (b *Box) Area() float32   { return b.HalfWidth * 2 * b.HalfHeight * 2 }
func (b *Box) Width() float32  { return b.HalfWidth * 2 }
func (b *Box) Height() float32 { return b.HalfHeight * 2 }

// AABB under rotation theta is (|cos theta|*w + |sin theta|*h) x
// (|sin theta|*w + |cos theta|*h) centered on center.
func (b *Box) AABB(center v2.Vector, angle float32) v2.AABB {
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	s, c = v2.Abs(s), v2.Abs(c)
	w, h := b.HalfWidth*2, b.HalfHeight*2
	ex := (c*w + s*h) / 2
	ey := (s*w + c*h) / 2
	return v2.NewAABB(
		v2.Vector{X: center.X - ex, Y: center.Y - ey},
		v2.Vector{X: center.X + ex, Y: center.Y + ey},
	)
}

func (b *Box) MomentOfInertia(mass float32) float32 {
	w, h := b.HalfWidth*2, b.HalfHeight*2
	return mass * (w*w + h*h) / 12
}

func (b *Box) Contains(worldPoint, center v2.Vector, angle float32) bool {
	local := v2.Vector{}
	rel := worldPoint.Subbed(center)
	local.Rotate(&rel, -angle)
	return v2.Abs(local.X) <= b.HalfWidth && v2.Abs(local.Y) <= b.HalfHeight
}

func (b *Box) TransformedVertices(center v2.Vector, angle float32) []v2.Vector {
	local := []v2.Vector{
		{X: -b.HalfWidth, Y: -b.HalfHeight},
		{X: b.HalfWidth, Y: -b.HalfHeight},
		{X: b.HalfWidth, Y: b.HalfHeight},
		{X: -b.HalfWidth, Y: b.HalfHeight},
	}
	return transformLoop(local, center, angle)
}

// box shape
// ============================================================================
// convex polygon shape

// ConvexPolygon is an arbitrary convex shape defined by an ordered,
// counter-clockwise loop of local-space vertices.
type ConvexPolygon struct {
	Vertices []v2.Vector
}

// NewPolygon creates a ConvexPolygon from local-space vertices. The loop
// must have at least three vertices and describe a convex region; input
// is canonicalized to counter-clockwise winding.
func NewPolygon(vertices []v2.Vector) (Shape, error) {
	if len(vertices) < 3 {
		return nil, newError(InvalidShape, "polygon needs at least 3 vertices, got %d", len(vertices))
	}
	verts := append([]v2.Vector(nil), vertices...)
	if signedArea(verts) < 0 {
		reverse(verts)
	}
	if !isConvex(verts) {
		return nil, newError(InvalidShape, "polygon vertices do not describe a convex loop")
	}
	return &ConvexPolygon{Vertices: verts}, nil
}

func (p *ConvexPolygon) Kind() ShapeKind { return PolygonShape }

func (p *ConvexPolygon) Area() float32 {
	a := signedArea(p.Vertices)
	if a < 0 {
		a = -a
	}
	return a
}

func (p *ConvexPolygon) Width() float32  { return p.localBounds().w }
func (p *ConvexPolygon) Height() float32 { return p.localBounds().h }

type localExtent struct{ w, h float32 }

func (p *ConvexPolygon) localBounds() localExtent {
	minX, minY := p.Vertices[0].X, p.Vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range p.Vertices[1:] {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}
	return localExtent{w: maxX - minX, h: maxY - minY}
}

func (p *ConvexPolygon) AABB(center v2.Vector, angle float32) v2.AABB {
	verts := p.TransformedVertices(center, angle)
	box := v2.NewAABB(verts[0], verts[0])
	for _, v := range verts[1:] {
		box = box.Union(v2.NewAABB(v, v))
	}
	return box
}

// MomentOfInertia uses the standard area-weighted formula for a polygon's
// moment of inertia about its own centroid, computed on local vertices
// (the result is independent of rotation and translation).
func (p *ConvexPolygon) MomentOfInertia(mass float32) float32 {
	var numer, denom float32
	verts := p.Vertices
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		cr := v2.Abs(v2.Cross(&a, &b))
		numer += cr * (a.Dot(&a) + a.Dot(&b) + b.Dot(&b))
		denom += cr
	}
	if denom < v2.Epsilon {
		return 0
	}
	return mass / 6 * (numer / denom)
}

func (p *ConvexPolygon) Contains(worldPoint, center v2.Vector, angle float32) bool {
	local := v2.Vector{}
	rel := worldPoint.Subbed(center)
	local.Rotate(&rel, -angle)
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		edge := b.Subbed(a)
		toPoint := local.Subbed(a)
		if v2.Cross(&edge, &toPoint) < 0 {
			return false
		}
	}
	return true
}

func (p *ConvexPolygon) TransformedVertices(center v2.Vector, angle float32) []v2.Vector {
	return transformLoop(p.Vertices, center, angle)
}

func transformLoop(local []v2.Vector, center v2.Vector, angle float32) []v2.Vector {
	out := make([]v2.Vector, len(local))
	for i, lv := range local {
		rotated := v2.Vector{}
		rotated.Rotate(&lv, angle)
		out[i] = rotated.Added(center)
	}
	return out
}

func signedArea(verts []v2.Vector) float32 {
	var sum float32
	n := len(verts)
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		sum += v2.Cross(&a, &b)
	}
	return sum / 2
}

func reverse(verts []v2.Vector) {
	for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
		verts[i], verts[j] = verts[j], verts[i]
	}
}

// isConvex checks that consecutive edges all turn the same way (a CCW loop
// turns left at every vertex, within a small tolerance for collinear runs).
func isConvex(verts []v2.Vector) bool {
	n := len(verts)
	sawPositive, sawNegative := false, false
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		c := verts[(i+2)%n]
		e1 := b.Subbed(a)
		e2 := c.Subbed(b)
		cr := v2.Cross(&e1, &e2)
		if cr > 1e-4 {
			sawPositive = true
		} else if cr < -1e-4 {
			sawNegative = true
		}
	}
	return !(sawPositive && sawNegative)
}

// convex polygon shape
// ============================================================================
// compound shape

// CompoundChild is one member of a Compound: a shape with its own offset,
// angle, and mass relative to the compound's origin.
type CompoundChild struct {
	Shape  Shape
	Offset v2.Vector
	Angle  float32
	Mass   float32
}

// Compound is a fixed aggregate of convex child shapes used to represent a
// concave silhouette. It must not contain another Compound as a child.
type Compound struct {
	Children []CompoundChild
}

// NewCompound creates a Compound from child records. Compound nesting is
// rejected: every child must itself be a non-Compound shape.
func NewCompound(children []CompoundChild) (Shape, error) {
	if len(children) == 0 {
		return nil, newError(InvalidShape, "compound needs at least one child")
	}
	for _, ch := range children {
		if ch.Shape == nil {
			return nil, newError(InvalidShape, "compound child shape is nil")
		}
		if ch.Shape.Kind() == CompoundShape {
			return nil, newError(InvalidShape, "compound shapes must not be nested")
		}
		if ch.Mass < 0 {
			return nil, newError(InvalidMass, "compound child mass must be non-negative, got %f", ch.Mass)
		}
	}
	return &Compound{Children: append([]CompoundChild(nil), children...)}, nil
}

func (c *Compound) Kind() ShapeKind { return CompoundShape }

func (c *Compound) Area() float32 {
	var total float32
	for _, ch := range c.Children {
		total += ch.Shape.Area()
	}
	return total
}

func (c *Compound) Width() float32  { return c.localBounds().w }
func (c *Compound) Height() float32 { return c.localBounds().h }

func (c *Compound) localBounds() localExtent {
	box := c.childAABB(c.Children[0], v2.Vector{}, 0)
	for _, ch := range c.Children[1:] {
		box = box.Union(c.childAABB(ch, v2.Vector{}, 0))
	}
	return localExtent{w: box.Max.X - box.Min.X, h: box.Max.Y - box.Min.Y}
}

func (c *Compound) childAABB(ch CompoundChild, center v2.Vector, angle float32) v2.AABB {
	rotatedOffset := v2.Vector{}
	rotatedOffset.Rotate(&ch.Offset, angle)
	childCenter := rotatedOffset.Added(center)
	return ch.Shape.AABB(childCenter, angle+ch.Angle)
}

// AABB is the union of every child's AABB with the compound positioned at
// center and rotated by angle.
func (c *Compound) AABB(center v2.Vector, angle float32) v2.AABB {
	box := c.childAABB(c.Children[0], center, angle)
	for _, ch := range c.Children[1:] {
		box = box.Union(c.childAABB(ch, center, angle))
	}
	return box
}

// MomentOfInertia sums each child's own inertia plus m*d^2 about the
// compound's origin (parallel-axis theorem). The mass argument is ignored
// in favor of the sum of child masses, since each child carries its own.
func (c *Compound) MomentOfInertia(mass float32) float32 {
	var total float32
	for _, ch := range c.Children {
		childInertia := ch.Shape.MomentOfInertia(ch.Mass)
		d2 := ch.Offset.LenSqr()
		total += childInertia + ch.Mass*d2
	}
	return total
}

// Contains returns true if any child contains the point.
func (c *Compound) Contains(worldPoint, center v2.Vector, angle float32) bool {
	for _, ch := range c.Children {
		rotatedOffset := v2.Vector{}
		rotatedOffset.Rotate(&ch.Offset, angle)
		childCenter := rotatedOffset.Added(center)
		if ch.Shape.Contains(worldPoint, childCenter, angle+ch.Angle) {
			return true
		}
	}
	return false
}

// TransformedVertices concatenates each child's transformed vertices in
// child-declaration order.
func (c *Compound) TransformedVertices(center v2.Vector, angle float32) []v2.Vector {
	var out []v2.Vector
	for _, ch := range c.Children {
		rotatedOffset := v2.Vector{}
		rotatedOffset.Rotate(&ch.Offset, angle)
		childCenter := rotatedOffset.Added(center)
		out = append(out, ch.Shape.TransformedVertices(childCenter, angle+ch.Angle)...)
	}
	return out
}

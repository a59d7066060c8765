package v2

// AABB is an axis-aligned bounding box in world coordinates. The invariant
// Min.X<=Max.X && Min.Y<=Max.Y is enforced on construction: a caller that
// submits swapped corners gets back a canonicalized box rather than an
// error, since an inverted box carries no useful distinction from a
// degenerate one.
type AABB struct {
	Min Vector
	Max Vector
}

// NewAABB builds a canonicalized AABB from two corners in any order.
func NewAABB(a, b Vector) AABB {
	box := AABB{}
	box.Min.X, box.Max.X = minmax(a.X, b.X)
	box.Min.Y, box.Max.Y = minmax(a.Y, b.Y)
	return box
}

func minmax(a, b float32) (lo, hi float32) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Overlaps returns true if box a and box b intersect, including touching
// edges.
func (a AABB) Overlaps(b AABB) bool {
	if a.Max.X < b.Min.X || a.Min.X > b.Max.X {
		return false
	}
	if a.Max.Y < b.Min.Y || a.Min.Y > b.Max.Y {
		return false
	}
	return true
}

// Contains returns true if point p lies within the box, inclusive of edges.
func (a AABB) Contains(p Vector) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Y >= a.Min.Y && p.Y <= a.Max.Y
}

// Union returns the smallest AABB enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	out := AABB{}
	out.Min.X, _ = minmax(a.Min.X, b.Min.X)
	out.Min.Y, _ = minmax(a.Min.Y, b.Min.Y)
	_, out.Max.X = minmax(a.Max.X, b.Max.X)
	_, out.Max.Y = minmax(a.Max.Y, b.Max.Y)
	return out
}

// Expanded returns a copy of a grown by margin on every side.
func (a AABB) Expanded(margin float32) AABB {
	return AABB{
		Min: Vector{a.Min.X - margin, a.Min.Y - margin},
		Max: Vector{a.Max.X + margin, a.Max.Y + margin},
	}
}

// Center returns the midpoint of the box.
func (a AABB) Center() Vector {
	return Vector{(a.Min.X + a.Max.X) * 0.5, (a.Min.Y + a.Max.Y) * 0.5}
}

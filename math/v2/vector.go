// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package v2

import "math"

// Vector is a 2 element vector. It is used for points, directions,
// velocities, and impulses throughout the physics core.
type Vector struct {
	X float32 // increments as X moves to the right.
	Y float32 // increments as Y moves up.
}

// NewVector creates a new, all zero, 2D vector.
func NewVector() *Vector { return &Vector{} }

// NewVectorS creates a new 2D vector using the given scalars.
func NewVectorS(x, y float32) *Vector { return &Vector{x, y} }

// Eq (==) returns true if v and a have identical elements.
func (v *Vector) Eq(a *Vector) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) almost-equals returns true if v and a are equal up to Epsilon.
func (v *Vector) Aeq(a *Vector) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=) almost-equals-zero returns true if the squared length of v is
// below Epsilon.
func (v *Vector) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the scalar values of the vector.
func (v *Vector) GetS() (x, y float32) { return v.X, v.Y }

// SetS (=) sets the vector elements to the given values. Returns v.
func (v *Vector) SetS(x, y float32) *Vector {
	v.X, v.Y = x, y
	return v
}

// Set (=, copy) sets v to have the same values as a. Returns v.
func (v *Vector) Set(a *Vector) *Vector {
	v.X, v.Y = a.X, a.Y
	return v
}

// Swap exchanges the element values of v and a. Returns v.
func (v *Vector) Swap(a *Vector) *Vector {
	v.X, a.X = a.X, v.X
	v.Y, a.Y = a.Y, v.Y
	return v
}

// Min updates v to be the componentwise minimum of a and b. Returns v.
func (v *Vector) Min(a, b *Vector) *Vector {
	v.X, v.Y = float32(math.Min(float64(a.X), float64(b.X))), float32(math.Min(float64(a.Y), float64(b.Y)))
	return v
}

// Max updates v to be the componentwise maximum of a and b. Returns v.
func (v *Vector) Max(a, b *Vector) *Vector {
	v.X, v.Y = float32(math.Max(float64(a.X), float64(b.X))), float32(math.Max(float64(a.Y), float64(b.Y)))
	return v
}

// Abs updates v to have the absolute value of its own elements. Returns v.
func (v *Vector) Abs() *Vector {
	v.X, v.Y = Abs(v.X), Abs(v.Y)
	return v
}

// Neg sets v to be the negation of a. Returns v.
func (v *Vector) Neg(a *Vector) *Vector {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Add (+) sets v to a+b. Vector v may be used as one or both parameters.
// Returns v.
func (v *Vector) Add(a, b *Vector) *Vector {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (-) sets v to a-b. Vector v may be used as one or both parameters.
// Returns v.
func (v *Vector) Sub(a, b *Vector) *Vector {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Mult (*) sets v to the elementwise product of a and b. Returns v.
func (v *Vector) Mult(a, b *Vector) *Vector {
	v.X, v.Y = a.X*b.X, a.Y*b.Y
	return v
}

// Scale (*=) sets v to a scaled by s. Returns v.
func (v *Vector) Scale(a *Vector, s float32) *Vector {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// Div (/=) divides each element of v by s. v is unchanged if s is zero.
// Returns v.
func (v *Vector) Div(s float32) *Vector {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y = v.X*inv, v.Y*inv
	}
	return v
}

// Dot returns the dot product of v and a.
func (v *Vector) Dot(a *Vector) float32 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D scalar cross product a.x*b.y - a.y*b.x, the z
// component of the 3D cross product of two vectors lying in the xy-plane.
func Cross(a, b *Vector) float32 { return a.X*b.Y - a.Y*b.X }

// CrossVS returns the vector s·perpendicular(a) = (-s·a.y, s·a.x), i.e. the
// cross product s×a of a scalar angular velocity s with a linear offset a.
func CrossVS(a *Vector, s float32) *Vector { return &Vector{-s * a.Y, s * a.X} }

// CrossSV returns the vector (s·a.y, -s·a.x), i.e. a×s, the negation of
// CrossVS.
func CrossSV(s float32, a *Vector) *Vector { return &Vector{s * a.Y, -s * a.X} }

// Perp returns the perpendicular of v: (-v.y, v.x).
func (v *Vector) Perp() Vector { return Vector{-v.Y, v.X} }

// Len returns the length of v.
func (v *Vector) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// LenSqr returns the squared length of v.
func (v *Vector) LenSqr() float32 { return v.Dot(v) }

// Dist returns the distance between points v and a.
func (v *Vector) Dist(a *Vector) float32 { return float32(math.Sqrt(float64(v.DistSqr(a)))) }

// DistSqr returns the squared distance between points v and a.
func (v *Vector) DistSqr(a *Vector) float32 {
	dx, dy := a.X-v.X, a.Y-v.Y
	return dx*dx + dy*dy
}

// Unit updates v so its length is 1. v is unchanged if its length is zero.
// Returns v.
func (v *Vector) Unit() *Vector {
	length := v.Len()
	if length > Epsilon {
		return v.Div(length)
	}
	return v
}

// Lerp updates v to be the linear interpolation between a and b by the
// given ratio. Returns v.
func (v *Vector) Lerp(a, b *Vector, ratio float32) *Vector {
	v.X = Lerp(a.X, b.X, ratio)
	v.Y = Lerp(a.Y, b.Y, ratio)
	return v
}

// Rotate updates v to be vector a rotated by angle radians about the
// origin, counter-clockwise for positive angle. Returns v.
func (v *Vector) Rotate(a *Vector, angle float32) *Vector {
	s, c := math.Sincos(float64(angle))
	sf, cf := float32(s), float32(c)
	v.X, v.Y = a.X*cf-a.Y*sf, a.X*sf+a.Y*cf
	return v
}

// RotatedVector returns a new vector equal to v rotated by angle radians.
// Convenience wrapper around Rotate for call sites that prefer value
// semantics over the mutate-and-return-self style.
func RotatedVector(v Vector, angle float32) Vector {
	out := Vector{}
	out.Rotate(&v, angle)
	return out
}

// Added returns a new vector equal to v+a without mutating either operand.
func (v Vector) Added(a Vector) Vector { return Vector{v.X + a.X, v.Y + a.Y} }

// Subbed returns a new vector equal to v-a without mutating either operand.
func (v Vector) Subbed(a Vector) Vector { return Vector{v.X - a.X, v.Y - a.Y} }

// Scaled returns a new vector equal to v scaled by s without mutating v.
func (v Vector) Scaled(s float32) Vector { return Vector{v.X * s, v.Y * s} }

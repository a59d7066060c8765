package v2

import "testing"

func TestNewAABBCanonicalizesInvertedCorners(t *testing.T) {
	box := NewAABB(Vector{5, 5}, Vector{-5, -5})
	if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y {
		t.Errorf("NewAABB did not canonicalize: %+v", box)
	}
}

func TestOverlapsTouchingEdges(t *testing.T) {
	a := NewAABB(Vector{0, 0}, Vector{1, 1})
	b := NewAABB(Vector{1, 0}, Vector{2, 1})
	if !a.Overlaps(b) {
		t.Errorf("touching boxes should overlap")
	}
}

func TestOverlapsDisjoint(t *testing.T) {
	a := NewAABB(Vector{0, 0}, Vector{1, 1})
	b := NewAABB(Vector{2, 2}, Vector{3, 3})
	if a.Overlaps(b) {
		t.Errorf("disjoint boxes should not overlap")
	}
}

func TestContains(t *testing.T) {
	box := NewAABB(Vector{-1, -1}, Vector{1, 1})
	if !box.Contains(Vector{0, 0}) {
		t.Errorf("box should contain its center")
	}
	if box.Contains(Vector{2, 0}) {
		t.Errorf("box should not contain a point outside its extent")
	}
}

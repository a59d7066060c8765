// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package v2

import "testing"

func TestVectorAdd(t *testing.T) {
	v := NewVectorS(1, 2)
	a := NewVectorS(3, 4)
	v.Add(v, a)
	if !v.Eq(NewVectorS(4, 6)) {
		t.Errorf("Add got %+v", v)
	}
}

func TestVectorDot(t *testing.T) {
	a := NewVectorS(1, 0)
	b := NewVectorS(0, 1)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot of perpendicular unit vectors got %f want 0", got)
	}
}

func TestCrossScalar(t *testing.T) {
	a := NewVectorS(1, 0)
	b := NewVectorS(0, 1)
	if got := Cross(a, b); got != 1 {
		t.Errorf("Cross((1,0),(0,1)) got %f want 1", got)
	}
}

func TestPerp(t *testing.T) {
	v := NewVectorS(1, 0)
	p := v.Perp()
	if p.X != 0 || p.Y != 1 {
		t.Errorf("Perp(1,0) got %+v want (0,1)", p)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	v := NewVectorS(1, 0)
	out := NewVector()
	out.Rotate(v, HalfPi)
	if !out.Aeq(NewVectorS(0, 1)) {
		t.Errorf("Rotate by pi/2 got %+v want (0,1)", out)
	}
}

func TestUnitOfZeroVectorIsUnchanged(t *testing.T) {
	v := NewVector()
	v.Unit()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Unit of zero vector got %+v want (0,0)", v)
	}
}

func TestLenMatchesMath(t *testing.T) {
	v := NewVectorS(3, 4)
	if got := v.Len(); got != 5 {
		t.Errorf("Len(3,4) got %f want 5", got)
	}
}

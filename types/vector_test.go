package types

import (
	"math"
	"testing"
)

func TestSphericalIsUnitLength(t *testing.T) {
	type spec struct {
		azimuth, polar float32
		exp            Vec3
	}
	specs := []spec{
		spec{0, 0, Vec3{0, 1, 0}},
		spec{0, math.Pi / 2, Vec3{1, 0, 0}},
		spec{math.Pi / 2, math.Pi / 2, Vec3{0, 0, 1}},
	}

	for index, s := range specs {
		got := Spherical(s.azimuth, s.polar)
		if d := got.Sub(s.exp).Len(); d > 1e-5 {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
		if l := got.Len(); math.Abs(float64(l-1)) > 1e-5 {
			t.Fatalf("[spec %d] expected unit vector; got length %f", index, l)
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Fatalf("expected zero vector; got %v", got)
	}
	if got := XYZ(0, 3, 4).Normalize(); math.Abs(float64(got.Len()-1)) > 1e-6 {
		t.Fatalf("expected unit vector; got %v", got)
	}
}

func TestCross(t *testing.T) {
	type spec struct {
		a, b, exp Vec3
	}
	specs := []spec{
		spec{XYZ(1, 0, 0), XYZ(0, 1, 0), XYZ(0, 0, 1)},
		spec{XYZ(0, 0, -1), XYZ(0, 1, 0), XYZ(1, 0, 0)},
		spec{XYZ(2, 0, 0), XYZ(4, 0, 0), Vec3{}},
	}

	for index, s := range specs {
		if got := s.a.Cross(s.b); got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

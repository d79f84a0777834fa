package mathx

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Vec3{}.Normalize()
	if !vecAlmostEqual(v, Vec3{}) {
		t.Errorf("expected zero fallback, got %+v", v)
	}
	if !v.IsValid() {
		t.Error("zero fallback should be finite")
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	v := Vec3{3, -4, 12}.Normalize()
	if !almostEqual(v.Length(), 1) {
		t.Errorf("expected unit length, got %f", v.Length())
	}
}

func TestHorizontal(t *testing.T) {
	v := Vec3{1, 5, -2}.Horizontal()
	if v.Y != 0 || v.X != 1 || v.Z != -2 {
		t.Errorf("unexpected horizontal projection %+v", v)
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, -6}
	if !vecAlmostEqual(a.Lerp(b, 0), a) {
		t.Error("t=0 should return start")
	}
	if !vecAlmostEqual(a.Lerp(b, 1), b) {
		t.Error("t=1 should return end")
	}
	if !vecAlmostEqual(a.Lerp(b, 0.5), Vec3{1, 2, -3}) {
		t.Error("t=0.5 should return midpoint")
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name  string
		q     Quat
		in    Vec3
		want  Vec3
	}{
		{"identity", QuatIdentity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"quarter turn about Y", QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"half turn about Z", QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi), Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		got := tt.q.Rotate(tt.in)
		if !vecAlmostEqual(got, tt.want) {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
		}
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}, 0.7)
	v := Vec3{0.2, -1.5, 3}
	back := q.Conjugate().Rotate(q.Rotate(v))
	if !vecAlmostEqual(back, v) {
		t.Errorf("conjugate should undo rotation, got %+v", back)
	}
}

func TestQuatDegenerateAxis(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{}, 1.0)
	if q != QuatIdentity() {
		t.Errorf("degenerate axis should yield identity, got %+v", q)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		rad, base, want float64
	}{
		{0, 0, 0},
		{2 * math.Pi, 0, 0},
		{-math.Pi / 2, 0, 3 * math.Pi / 2},
		{7 * math.Pi, 0, math.Pi},
		{0, Radians(135), 2 * math.Pi},
		{Radians(270), Radians(135), Radians(270)},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.rad, tt.base)
		if !almostEqual(got, tt.want) {
			t.Errorf("NormalizeAngle(%f, %f): expected %f, got %f", tt.rad, tt.base, tt.want, got)
		}
		if got < tt.base || got >= tt.base+2*math.Pi {
			t.Errorf("result %f outside [%f, %f)", got, tt.base, tt.base+2*math.Pi)
		}
	}
}

func TestDampFactorCap(t *testing.T) {
	if f := DampFactor(5, 0.016); !almostEqual(f, 0.08) {
		t.Errorf("expected 0.08, got %f", f)
	}
	if f := DampFactor(5, 10); f != 1 {
		t.Errorf("oversized delta should cap at 1, got %f", f)
	}
}

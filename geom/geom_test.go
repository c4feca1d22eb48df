package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     mgl64.Vec2
		expected float64
	}{
		{"unit axes", mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}, 1},
		{"reversed unit axes", mgl64.Vec2{0, 1}, mgl64.Vec2{1, 0}, -1},
		{"parallel", mgl64.Vec2{2, 2}, mgl64.Vec2{4, 4}, 0},
		{"general", mgl64.Vec2{3, -2}, mgl64.Vec2{1, 5}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cross(tt.a, tt.b); got != tt.expected {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	a := mgl64.Vec2{1, 1}
	b := mgl64.Vec2{4, 5}

	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := DistanceSquared(a, b); got != 25 {
		t.Errorf("DistanceSquared() = %v, want 25", got)
	}
	if Distance(a, b) != Distance(b, a) {
		t.Error("Distance should be symmetric")
	}
}

func TestNormalize(t *testing.T) {
	n, ok := Normalize(mgl64.Vec2{3, 4})
	if !ok {
		t.Fatal("Normalize of a non-zero vector should succeed")
	}
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}
	if math.Abs(n.X()-0.6) > 1e-12 || math.Abs(n.Y()-0.8) > 1e-12 {
		t.Errorf("Normalize() = %v, want [0.6 0.8]", n)
	}

	n, ok = Normalize(Zero)
	if ok {
		t.Error("Normalize of the zero vector should report failure")
	}
	if n != Zero {
		t.Errorf("Normalize(zero) = %v, want zero vector", n)
	}
}

func TestNegateAndPerpendicular(t *testing.T) {
	v := mgl64.Vec2{2, -3}

	if got := Negate(v); got != (mgl64.Vec2{-2, 3}) {
		t.Errorf("Negate() = %v", got)
	}
	p := Perpendicular(v)
	if p.Dot(v) != 0 {
		t.Errorf("Perpendicular(%v) = %v is not orthogonal", v, p)
	}
	if Cross(v, p) <= 0 {
		t.Error("Perpendicular should rotate counter-clockwise")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name            string
		value, min, max float64
		expected        float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"degenerate range", 7, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.min, tt.max); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 128); got != 1 {
		t.Errorf("ClampInt(0, 1, 128) = %d, want 1", got)
	}
	if got := ClampInt(500, 1, 128); got != 128 {
		t.Errorf("ClampInt(500, 1, 128) = %d, want 128", got)
	}
	if got := ClampInt(20, 1, 128); got != 20 {
		t.Errorf("ClampInt(20, 1, 128) = %d, want 20", got)
	}
}

func TestClampPanicsOnInvertedRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Clamp with min > max should panic")
		}
	}()
	Clamp(1, 2, 1)
}

func TestClampVec(t *testing.T) {
	got := ClampVec(mgl64.Vec2{-5, 5}, mgl64.Vec2{-1, -1}, mgl64.Vec2{1, 1})
	if got != (mgl64.Vec2{-1, 1}) {
		t.Errorf("ClampVec() = %v, want [-1 1]", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{"identical", 1, 1, true},
		{"inside tolerance", 1, 1.0004, true},
		{"at tolerance", 0, Tolerance, false},
		{"outside tolerance", 1, 1.001, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("NearlyEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}

	if !NearlyEqualVec(mgl64.Vec2{1, 2}, mgl64.Vec2{1.0001, 1.9999}) {
		t.Error("NearlyEqualVec should accept points within tolerance")
	}
	if NearlyEqualVec(mgl64.Vec2{1, 2}, mgl64.Vec2{1, 2.01}) {
		t.Error("NearlyEqualVec should reject points outside tolerance on one axis")
	}
}

// Package geom holds the 2D vector helpers that mgl64 does not provide.
//
// Vectors are plain mgl64.Vec2 values; every function here is pure.
package geom

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Tolerance is the absolute distance under which two scalars or points are
// considered equal (half a millimeter in world units).
const Tolerance = 0.0005

var (
	Zero  = mgl64.Vec2{0, 0}
	UnitX = mgl64.Vec2{1, 0}
)

// Negate returns -v
func Negate(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[0], -v[1]}
}

// Cross returns the z component of the 3D cross product of a and b: ax*by - ay*bx
func Cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func Distance(a, b mgl64.Vec2) float64 {
	return a.Sub(b).Len()
}

func DistanceSquared(a, b mgl64.Vec2) float64 {
	return a.Sub(b).LenSqr()
}

// Normalize returns v scaled to unit length.
// ok is false when v has zero length, in which case the zero vector is returned.
func Normalize(v mgl64.Vec2) (n mgl64.Vec2, ok bool) {
	l := v.Len()
	if l == 0 {
		return Zero, false
	}

	return mgl64.Vec2{v[0] / l, v[1] / l}, true
}

// Perpendicular returns v rotated by +90 degrees
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v[1], v[0]}
}

// Clamp bounds value to [min, max]. It panics if min > max.
func Clamp(value, min, max float64) float64 {
	if min > max {
		panic("geom: min is greater than max")
	}

	return mgl64.Clamp(value, min, max)
}

// ClampInt bounds value to [min, max]. It panics if min > max.
func ClampInt(value, min, max int) int {
	if min > max {
		panic("geom: min is greater than max")
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}

	return value
}

// ClampVec bounds each component of v to the box [min, max]
func ClampVec(v, min, max mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		Clamp(v[0], min[0], max[0]),
		Clamp(v[1], min[1], max[1]),
	}
}

// NearlyEqual reports whether |a-b| < Tolerance
func NearlyEqual(a, b float64) bool {
	return mgl64.Abs(a-b) < Tolerance
}

// NearlyEqualVec compares both components with NearlyEqual
func NearlyEqualVec(a, b mgl64.Vec2) bool {
	return NearlyEqual(a[0], b[0]) && NearlyEqual(a[1], b[1])
}

package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a cached rotation + translation in 2D space.
// Sin and Cos are computed once so mapping many vertices stays cheap.
type Transform struct {
	Position mgl64.Vec2
	Sin      float64
	Cos      float64
}

// NewTransform creates a transform rotating by angle (radians) around the origin, then translating by position
func NewTransform(position mgl64.Vec2, angle float64) Transform {
	sin, cos := math.Sincos(angle)

	return Transform{
		Position: position,
		Sin:      sin,
		Cos:      cos,
	}
}

// IdentityTransform returns a transform with no rotation and no translation
func IdentityTransform() Transform {
	return Transform{Cos: 1}
}

// Apply maps a local-space point into world space
func (t Transform) Apply(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		t.Cos*v[0] - t.Sin*v[1] + t.Position[0],
		t.Sin*v[0] + t.Cos*v[1] + t.Position[1],
	}
}

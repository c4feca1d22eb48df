package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShapeTypes(t *testing.T) {
	var circle ShapeInterface = &Circle{Radius: 1}
	var box ShapeInterface = NewBox(1, 2)

	if circle.Type() != ShapeTypeCircle {
		t.Errorf("circle Type() = %v", circle.Type())
	}
	if box.Type() != ShapeTypeBox {
		t.Errorf("box Type() = %v", box.Type())
	}
	if ShapeTypeCircle.String() != "circle" || ShapeTypeBox.String() != "box" {
		t.Error("unexpected ShapeType names")
	}
	if ShapeType(42).String() != "unknown" {
		t.Error("out of range ShapeType should be unknown")
	}
}

func TestShapeComputeMass(t *testing.T) {
	tests := []struct {
		name     string
		shape    ShapeInterface
		density  float64
		wantArea float64
		wantMass float64
	}{
		{"unit circle", &Circle{Radius: 1}, 2, math.Pi, 2 * math.Pi},
		{"circle r=2", &Circle{Radius: 2}, 0.5, 4 * math.Pi, 2 * math.Pi},
		{"box 2x3", NewBox(2, 3), 1.5, 6, 9},
		{"ground box 10x2", NewBox(10, 2), 1, 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.shape.ComputeArea(), tt.wantArea, 1e-12) {
				t.Errorf("ComputeArea() = %v, want %v", tt.shape.ComputeArea(), tt.wantArea)
			}
			if !almostEqual(tt.shape.ComputeMass(tt.density), tt.wantMass, 1e-12) {
				t.Errorf("ComputeMass() = %v, want %v", tt.shape.ComputeMass(tt.density), tt.wantMass)
			}
		})
	}
}

func TestBoxLocalVertices(t *testing.T) {
	box := NewBox(4, 2)

	expected := [4]mgl64.Vec2{{-2, 1}, {2, 1}, {2, -1}, {-2, -1}}
	if box.LocalVertices() != expected {
		t.Errorf("LocalVertices() = %v, want %v", box.LocalVertices(), expected)
	}
	if box.Triangles() != [6]int{0, 1, 2, 0, 2, 3} {
		t.Errorf("Triangles() = %v", box.Triangles())
	}

	// Returned arrays are copies
	vertices := box.LocalVertices()
	vertices[0] = mgl64.Vec2{100, 100}
	if box.LocalVertices()[0] == vertices[0] {
		t.Error("LocalVertices should not expose internal storage")
	}
}

func TestBoxComputeAABBWithRotation(t *testing.T) {
	box := NewBox(2, 2)

	tests := []struct {
		name      string
		transform Transform
		wantMin   mgl64.Vec2
		wantMax   mgl64.Vec2
	}{
		{
			name:      "identity",
			transform: IdentityTransform(),
			wantMin:   mgl64.Vec2{-1, -1},
			wantMax:   mgl64.Vec2{1, 1},
		},
		{
			name:      "translated",
			transform: NewTransform(mgl64.Vec2{3, -2}, 0),
			wantMin:   mgl64.Vec2{2, -3},
			wantMax:   mgl64.Vec2{4, -1},
		},
		{
			name:      "rotated 45 degrees",
			transform: NewTransform(mgl64.Vec2{0, 0}, math.Pi/4),
			wantMin:   mgl64.Vec2{-math.Sqrt2, -math.Sqrt2},
			wantMax:   mgl64.Vec2{math.Sqrt2, math.Sqrt2},
		},
		{
			name:      "rotated 90 degrees",
			transform: NewTransform(mgl64.Vec2{0, 0}, math.Pi/2),
			wantMin:   mgl64.Vec2{-1, -1},
			wantMax:   mgl64.Vec2{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aabb := box.ComputeAABB(tt.transform)
			if !vec2AlmostEqual(aabb.Min, tt.wantMin, 1e-9) {
				t.Errorf("Min = %v, want %v", aabb.Min, tt.wantMin)
			}
			if !vec2AlmostEqual(aabb.Max, tt.wantMax, 1e-9) {
				t.Errorf("Max = %v, want %v", aabb.Max, tt.wantMax)
			}
		})
	}
}

func TestCircleComputeAABB(t *testing.T) {
	circle := &Circle{Radius: 1.5}

	// Rotation must not change a circle's bounds
	for _, angle := range []float64{0, 0.3, math.Pi} {
		aabb := circle.ComputeAABB(NewTransform(mgl64.Vec2{1, 2}, angle))
		if !vec2AlmostEqual(aabb.Min, mgl64.Vec2{-0.5, 0.5}, 1e-12) {
			t.Errorf("angle %v: Min = %v, want [-0.5 0.5]", angle, aabb.Min)
		}
		if !vec2AlmostEqual(aabb.Max, mgl64.Vec2{2.5, 3.5}, 1e-12) {
			t.Errorf("angle %v: Max = %v, want [2.5 3.5]", angle, aabb.Max)
		}
	}
}

// =============================================================================
// Transform Tests
// =============================================================================

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		point     mgl64.Vec2
		expected  mgl64.Vec2
	}{
		{"identity", IdentityTransform(), mgl64.Vec2{1, 2}, mgl64.Vec2{1, 2}},
		{"translation only", NewTransform(mgl64.Vec2{5, -1}, 0), mgl64.Vec2{1, 2}, mgl64.Vec2{6, 1}},
		{"quarter turn", NewTransform(mgl64.Vec2{0, 0}, math.Pi/2), mgl64.Vec2{1, 0}, mgl64.Vec2{0, 1}},
		{"half turn", NewTransform(mgl64.Vec2{0, 0}, math.Pi), mgl64.Vec2{1, 2}, mgl64.Vec2{-1, -2}},
		{"rotate then translate", NewTransform(mgl64.Vec2{10, 10}, math.Pi/2), mgl64.Vec2{1, 0}, mgl64.Vec2{10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.Apply(tt.point)
			if !vec2AlmostEqual(got, tt.expected, 1e-12) {
				t.Errorf("Apply(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

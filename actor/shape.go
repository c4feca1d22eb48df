package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypeBox
)

func (t ShapeType) String() string {
	switch t {
	case ShapeTypeCircle:
		return "circle"
	case ShapeTypeBox:
		return "box"
	default:
		return "unknown"
	}
}

// ShapeInterface is implemented by *Circle and *Box only.
// The unexported method closes the set, so a type switch over both variants is exhaustive.
type ShapeInterface interface {
	Type() ShapeType
	// ComputeArea returns the 2D area of the shape
	ComputeArea() float64
	// ComputeMass returns area * density (a slab of depth 1)
	ComputeMass(density float64) float64

	shape()
}

// Circle represents a circular collision shape centered on the body position
type Circle struct {
	Radius float64
}

func (c *Circle) Type() ShapeType {
	return ShapeTypeCircle
}

func (c *Circle) ComputeArea() float64 {
	return c.Radius * c.Radius * math.Pi
}

func (c *Circle) ComputeMass(density float64) float64 {
	return c.ComputeArea() * density
}

// ComputeAABB calculates the axis-aligned bounding box for the circle.
// Rotation does not affect it, only the position.
func (c *Circle) ComputeAABB(transform Transform) AABB {
	radiusVec := mgl64.Vec2{c.Radius, c.Radius}

	return AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (c *Circle) shape() {}

// boxTriangles splits the box quad into two triangles for fill rendering
var boxTriangles = [6]int{0, 1, 2, 0, 2, 3}

// Box represents an oriented rectangle collision shape, centered on the body position
type Box struct {
	Width  float64
	Height float64

	vertices [4]mgl64.Vec2
}

// NewBox creates a box and its local-space corners:
// top-left, top-right, bottom-right, bottom-left
func NewBox(width, height float64) *Box {
	left := -width / 2
	right := left + width
	bottom := -height / 2
	top := bottom + height

	return &Box{
		Width:  width,
		Height: height,
		vertices: [4]mgl64.Vec2{
			{left, top},
			{right, top},
			{right, bottom},
			{left, bottom},
		},
	}
}

func (b *Box) Type() ShapeType {
	return ShapeTypeBox
}

func (b *Box) ComputeArea() float64 {
	return b.Width * b.Height
}

func (b *Box) ComputeMass(density float64) float64 {
	return b.ComputeArea() * density
}

// LocalVertices returns a copy of the corners in local space
func (b *Box) LocalVertices() [4]mgl64.Vec2 {
	return b.vertices
}

// Triangles returns the vertex indices of the two fill triangles
func (b *Box) Triangles() [6]int {
	return boxTriangles
}

// TransformVertices writes the world-space corners into dst, which must hold 4 points
func (b *Box) TransformVertices(transform Transform, dst []mgl64.Vec2) {
	for i, v := range b.vertices {
		dst[i] = transform.Apply(v)
	}
}

// ComputeAABB calculates the axis-aligned bounding box of the rotated box
func (b *Box) ComputeAABB(transform Transform) AABB {
	var corners [4]mgl64.Vec2
	b.TransformVertices(transform, corners[:])

	return AABBFromPoints(corners[:])
}

func (b *Box) shape() {}

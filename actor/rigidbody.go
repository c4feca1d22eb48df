package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Limits enforced by the body factories, in world units (1 unit = 1 meter, depth 1)
const (
	MinBodySize = 0.01 * 0.01
	MaxBodySize = 64.0 * 64.0

	MinDensity = 0.5  // g/cm³
	MaxDensity = 21.4 // osmium
)

var (
	ErrAreaTooSmall    = errors.New("body area is too small")
	ErrAreaTooLarge    = errors.New("body area is too large")
	ErrDensityTooSmall = errors.New("body density is too small")
	ErrDensityTooLarge = errors.New("body density is too large")
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have an inverse mass of 0
	// They are not affected by forces, gravity or impulses (e.g., ground, walls)
	BodyTypeStatic
)

// Material holds the physical parameters fixed when a body is created
type Material struct {
	density     float64
	mass        float64
	inverseMass float64
	restitution float64 // 0= no rebound, 1= perfect restitution
	area        float64
}

func (material Material) GetDensity() float64 {
	return material.density
}

func (material Material) GetMass() float64 {
	return material.mass
}

// GetInverseMass is 1/mass for dynamic bodies and exactly 0 for static bodies
func (material Material) GetInverseMass() float64 {
	return material.inverseMass
}

func (material Material) GetRestitution() float64 {
	return material.restitution
}

func (material Material) GetArea() float64 {
	return material.area
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	// Id is free for the caller, the engine never reads it
	Id any

	position mgl64.Vec2
	rotation float64 // radians

	Velocity        mgl64.Vec2 // Linear velocity (m/s)
	AngularVelocity float64    // rad/s

	accumulatedForce mgl64.Vec2

	material Material
	bodyType BodyType
	shape    ShapeInterface

	// world-space cache, only valid while transformDirty is false
	transformedVertices []mgl64.Vec2
	aabb                AABB
	transformDirty      bool
}

// NewCircleBody validates the parameters and creates a circle body.
// restitution is clamped to [0, 1].
func NewCircleBody(radius float64, position mgl64.Vec2, density float64, bodyType BodyType, restitution float64) (*RigidBody, error) {
	circle := &Circle{Radius: radius}
	area := circle.ComputeArea()

	if !(radius > 0) || !(area >= MinBodySize) {
		return nil, fmt.Errorf("%w: circle radius %v gives area %v, min area is %v", ErrAreaTooSmall, radius, area, MinBodySize)
	}
	if area > MaxBodySize {
		return nil, fmt.Errorf("%w: circle radius %v gives area %v, max area is %v", ErrAreaTooLarge, radius, area, MaxBodySize)
	}
	if err := validateDensity(density); err != nil {
		return nil, err
	}

	return newRigidBody(position, circle, bodyType, density, restitution), nil
}

// NewBoxBody validates the parameters and creates a box body.
// restitution is clamped to [0, 1].
func NewBoxBody(width, height float64, position mgl64.Vec2, density float64, bodyType BodyType, restitution float64) (*RigidBody, error) {
	box := NewBox(width, height)
	area := box.ComputeArea()

	if !(width > 0) || !(height > 0) || !(area >= MinBodySize) {
		return nil, fmt.Errorf("%w: box %vx%v has area %v, min area is %v", ErrAreaTooSmall, width, height, area, MinBodySize)
	}
	if area > MaxBodySize {
		return nil, fmt.Errorf("%w: box %vx%v has area %v, max area is %v", ErrAreaTooLarge, width, height, area, MaxBodySize)
	}
	if err := validateDensity(density); err != nil {
		return nil, err
	}

	return newRigidBody(position, box, bodyType, density, restitution), nil
}

func validateDensity(density float64) error {
	if !(density >= MinDensity) {
		return fmt.Errorf("%w: density %v, min density is %v", ErrDensityTooSmall, density, MinDensity)
	}
	if density > MaxDensity {
		return fmt.Errorf("%w: density %v, max density is %v", ErrDensityTooLarge, density, MaxDensity)
	}

	return nil
}

func newRigidBody(position mgl64.Vec2, shape ShapeInterface, bodyType BodyType, density float64, restitution float64) *RigidBody {
	rb := &RigidBody{
		position: position,
		shape:    shape,
		bodyType: bodyType,
		material: Material{
			density:     density,
			mass:        shape.ComputeMass(density),
			restitution: mgl64.Clamp(restitution, 0, 1),
			area:        shape.ComputeArea(),
		},
		transformDirty: true,
	}

	if bodyType != BodyTypeStatic {
		rb.material.inverseMass = 1.0 / rb.material.mass
	}
	if shape.Type() == ShapeTypeBox {
		rb.transformedVertices = make([]mgl64.Vec2, 4)
	}

	return rb
}

func (rb *RigidBody) Position() mgl64.Vec2 {
	return rb.position
}

// Rotation in radians
func (rb *RigidBody) Rotation() float64 {
	return rb.rotation
}

func (rb *RigidBody) Material() Material {
	return rb.material
}

func (rb *RigidBody) BodyType() BodyType {
	return rb.bodyType
}

func (rb *RigidBody) IsStatic() bool {
	return rb.bodyType == BodyTypeStatic
}

func (rb *RigidBody) Shape() ShapeInterface {
	return rb.shape
}

// Move translates the body by amount
func (rb *RigidBody) Move(amount mgl64.Vec2) {
	rb.position = rb.position.Add(amount)
	rb.transformDirty = true
}

// MoveTo places the body at position
func (rb *RigidBody) MoveTo(position mgl64.Vec2) {
	rb.position = position
	rb.transformDirty = true
}

// Rotate adds amount radians to the rotation
func (rb *RigidBody) Rotate(amount float64) {
	rb.rotation += amount
	rb.transformDirty = true
}

// AddForce in N (kg⋅m/s²), applied on every sub-step until ClearForces
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.bodyType != BodyTypeStatic {
		rb.accumulatedForce = rb.accumulatedForce.Add(force)
	}
}

func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec2{0, 0}
}

// Step integrates one sub-step of length dt/iterations: velocity first, then position and rotation.
// Static bodies never move.
func (rb *RigidBody) Step(dt float64, gravity mgl64.Vec2, iterations int) {
	if rb.bodyType == BodyTypeStatic {
		return
	}

	h := dt / float64(max(1, iterations))

	acceleration := rb.accumulatedForce.Mul(rb.material.inverseMass).Add(gravity)
	rb.Velocity = rb.Velocity.Add(acceleration.Mul(h))

	rb.position = rb.position.Add(rb.Velocity.Mul(h))
	rb.rotation += rb.AngularVelocity * h

	rb.transformDirty = true
}

// Transform returns the current rotation + translation
func (rb *RigidBody) Transform() Transform {
	return NewTransform(rb.position, rb.rotation)
}

// GetTransformedVertices returns the world-space corners of a box body, nil for a circle.
// The slice is owned by the body and only rewritten when the body moved or rotated since the last read.
func (rb *RigidBody) GetTransformedVertices() []mgl64.Vec2 {
	rb.refresh()
	return rb.transformedVertices
}

// GetAABB returns the world-space bounding box, recomputed only when the body moved or rotated
func (rb *RigidBody) GetAABB() AABB {
	rb.refresh()
	return rb.aabb
}

func (rb *RigidBody) refresh() {
	if !rb.transformDirty {
		return
	}

	transform := rb.Transform()
	switch shape := rb.shape.(type) {
	case *Box:
		shape.TransformVertices(transform, rb.transformedVertices)
		rb.aabb = AABBFromPoints(rb.transformedVertices)
	case *Circle:
		rb.aabb = shape.ComputeAABB(transform)
	default:
		panic(fmt.Sprintf("actor: unknown shape %T", rb.shape))
	}

	rb.transformDirty = false
}

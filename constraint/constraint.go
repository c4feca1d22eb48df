package constraint

import (
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ComputeRestitution returns the restitution of a contact between two materials.
// The least bouncy material wins.
func ComputeRestitution(matA, matB actor.Material) float64 {
	return math.Min(matA.GetRestitution(), matB.GetRestitution())
}

// Separate pushes two overlapping bodies apart along normal (pointing from A to B) by depth.
// A static body never moves: the dynamic one takes the whole correction, otherwise each body moves half of it.
func Separate(bodyA, bodyB *actor.RigidBody, normal mgl64.Vec2, depth float64) {
	correction := normal.Mul(depth)

	switch {
	case bodyA.IsStatic() && bodyB.IsStatic():
		return
	case bodyA.IsStatic():
		bodyB.Move(correction)
	case bodyB.IsStatic():
		bodyA.Move(correction.Mul(-1))
	default:
		half := correction.Mul(0.5)
		bodyA.Move(half.Mul(-1))
		bodyB.Move(half)
	}
}

// ResolveCollision applies a linear impulse along normal so the bodies stop approaching each other.
// Pairs already moving apart are left untouched.
func ResolveCollision(bodyA, bodyB *actor.RigidBody, normal mgl64.Vec2) {
	invMassA := bodyA.Material().GetInverseMass()
	invMassB := bodyB.Material().GetInverseMass()
	if invMassA+invMassB == 0 {
		return
	}

	relativeVelocity := bodyB.Velocity.Sub(bodyA.Velocity)
	normalVelocity := relativeVelocity.Dot(normal)
	if normalVelocity > 0 {
		return
	}

	e := ComputeRestitution(bodyA.Material(), bodyB.Material())
	j := -(1 + e) * normalVelocity / (invMassA + invMassB)

	impulse := normal.Mul(j)
	bodyA.Velocity = bodyA.Velocity.Sub(impulse.Mul(invMassA))
	bodyB.Velocity = bodyB.Velocity.Add(impulse.Mul(invMassB))
}

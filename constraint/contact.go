package constraint

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/sat"
	"github.com/go-gl/mathgl/mgl64"
)

// Manifold describes one colliding pair for one sub-iteration.
// Normal is a unit vector pointing from BodyA toward BodyB.
type Manifold struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	Normal mgl64.Vec2
	Depth  float64

	Contact1     mgl64.Vec2
	Contact2     mgl64.Vec2
	ContactCount int
}

func NewManifold(bodyA, bodyB *actor.RigidBody, collision sat.Collision, contacts contact.Contacts) Manifold {
	return Manifold{
		BodyA:        bodyA,
		BodyB:        bodyB,
		Normal:       collision.Normal,
		Depth:        collision.Depth,
		Contact1:     contacts.Points[0],
		Contact2:     contacts.Points[1],
		ContactCount: contacts.Count,
	}
}

// Contacts returns the meaningful contact points
func (m Manifold) Contacts() []mgl64.Vec2 {
	switch m.ContactCount {
	case 0:
		return nil
	case 1:
		return []mgl64.Vec2{m.Contact1}
	default:
		return []mgl64.Vec2{m.Contact1, m.Contact2}
	}
}

// SolveVelocity resolves the impulse of the manifold's pair
func (m Manifold) SolveVelocity() {
	ResolveCollision(m.BodyA, m.BodyB, m.Normal)
}

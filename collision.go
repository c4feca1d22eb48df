package feather2d

import (
	"fmt"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/contact"
	"github.com/akmonengine/feather2d/sat"
)

// CanCollide is the broad phase test of a single pair: two static bodies never collide,
// and AABBs must strictly overlap (touching edges do not count).
func CanCollide(bodyA, bodyB *actor.RigidBody) bool {
	if bodyA.IsStatic() && bodyB.IsStatic() {
		return false
	}

	return bodyA.GetAABB().Overlaps(bodyB.GetAABB())
}

// BroadPhase returns the pairs (i < j, in body order) that pass CanCollide.
// A nil spatialGrid falls back to the O(n²) scan; both produce the same list.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.RigidBody, workersCount int) []Pair {
	if spatialGrid == nil {
		pairs := make([]Pair, 0, len(bodies))
		for i := 0; i < len(bodies)-1; i++ {
			for j := i + 1; j < len(bodies); j++ {
				if CanCollide(bodies[i], bodies[j]) {
					pairs = append(pairs, Pair{BodyA: bodies[i], BodyB: bodies[j]})
				}
			}
		}
		return pairs
	}

	spatialGrid.Clear()
	for i, body := range bodies {
		spatialGrid.Insert(i, body)
	}

	return spatialGrid.FindPairsParallel(bodies, workersCount)
}

// NarrowPhase tests the pairs in order. Each colliding pair is pushed apart before the next
// pair is tested, so a pair whose AABBs stopped overlapping in the meantime is skipped.
func NarrowPhase(pairs []Pair, manifolds []constraint.Manifold) []constraint.Manifold {
	for _, pair := range pairs {
		if !CanCollide(pair.BodyA, pair.BodyB) {
			continue
		}
		if manifold, ok := collidePair(pair.BodyA, pair.BodyB); ok {
			manifolds = append(manifolds, manifold)
		}
	}

	return manifolds
}

// collidePair runs the narrow phase on a pair that passed the broad phase,
// separates the bodies on a hit and builds the manifold from their new positions.
func collidePair(bodyA, bodyB *actor.RigidBody) (constraint.Manifold, bool) {
	collision, ok := Collide(bodyA, bodyB)
	if !ok {
		return constraint.Manifold{}, false
	}

	constraint.Separate(bodyA, bodyB, collision.Normal, collision.Depth)
	contacts := contact.Find(bodyA, bodyB)

	return constraint.NewManifold(bodyA, bodyB, collision, contacts), true
}

// Collide tests two bodies with the separating axis test matching their shapes.
// The returned normal always points from bodyA toward bodyB.
func Collide(bodyA, bodyB *actor.RigidBody) (sat.Collision, bool) {
	switch shapeA := bodyA.Shape().(type) {
	case *actor.Box:
		switch shapeB := bodyB.Shape().(type) {
		case *actor.Box:
			return sat.IntersectPolygons(
				bodyA.Position(), bodyA.GetTransformedVertices(),
				bodyB.Position(), bodyB.GetTransformedVertices(),
			)
		case *actor.Circle:
			collision, ok := sat.IntersectCirclePolygon(bodyB.Position(), shapeB.Radius, bodyA.Position(), bodyA.GetTransformedVertices())
			if !ok {
				return sat.Collision{}, false
			}
			collision.Normal = collision.Normal.Mul(-1)
			return collision, true
		}
	case *actor.Circle:
		switch shapeB := bodyB.Shape().(type) {
		case *actor.Box:
			return sat.IntersectCirclePolygon(bodyA.Position(), shapeA.Radius, bodyB.Position(), bodyB.GetTransformedVertices())
		case *actor.Circle:
			return sat.IntersectCircles(bodyA.Position(), shapeA.Radius, bodyB.Position(), shapeB.Radius)
		}
	}

	panic(fmt.Sprintf("feather2d: unsupported shape pair %T / %T", bodyA.Shape(), bodyB.Shape()))
}

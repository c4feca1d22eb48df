// Package contact finds where two colliding bodies touch.
//
// Contact points are the closest points between one shape's boundary and the other
// shape's vertices (or circle center). Polygon pairs produce two points when two
// features are at the same distance, which happens for face to face contacts.
package contact

import (
	"fmt"
	"math"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Contacts holds 0, 1 or 2 contact points; only Points[:Count] are meaningful
type Contacts struct {
	Points [2]mgl64.Vec2
	Count  int
}

// Slice returns the meaningful points
func (c Contacts) Slice() []mgl64.Vec2 {
	return c.Points[:c.Count]
}

// PointSegmentDistance returns the closest point to p on segment [a, b] and its squared distance.
// A zero-length segment resolves to a.
func PointSegmentDistance(p, a, b mgl64.Vec2) (distanceSquared float64, closestPoint mgl64.Vec2) {
	ab := b.Sub(a)
	ap := p.Sub(a)

	abLengthSquared := ab.LenSqr()
	if abLengthSquared == 0 {
		return geom.DistanceSquared(p, a), a
	}

	d := ap.Dot(ab) / abLengthSquared
	switch {
	case d <= 0:
		closestPoint = a
	case d >= 1:
		closestPoint = b
	default:
		closestPoint = a.Add(ab.Mul(d))
	}

	return geom.DistanceSquared(p, closestPoint), closestPoint
}

// Find returns the contact points of two bodies already known to be colliding
func Find(bodyA, bodyB *actor.RigidBody) Contacts {
	switch shapeA := bodyA.Shape().(type) {
	case *actor.Box:
		switch bodyB.Shape().(type) {
		case *actor.Box:
			return FindPolygonsContactPoints(bodyA.GetTransformedVertices(), bodyB.GetTransformedVertices())
		case *actor.Circle:
			point := FindCirclePolygonContactPoint(bodyB.Position(), bodyA.GetTransformedVertices())
			return Contacts{Points: [2]mgl64.Vec2{point}, Count: 1}
		}
	case *actor.Circle:
		switch bodyB.Shape().(type) {
		case *actor.Box:
			point := FindCirclePolygonContactPoint(bodyA.Position(), bodyB.GetTransformedVertices())
			return Contacts{Points: [2]mgl64.Vec2{point}, Count: 1}
		case *actor.Circle:
			point := FindCirclesContactPoint(bodyA.Position(), shapeA.Radius, bodyB.Position())
			return Contacts{Points: [2]mgl64.Vec2{point}, Count: 1}
		}
	}

	panic(fmt.Sprintf("contact: unsupported shape pair %T / %T", bodyA.Shape(), bodyB.Shape()))
}

// FindPolygonsContactPoints scans every vertex of each polygon against every edge of the other.
// The closest pair wins; a second point is kept when another candidate lies at the same
// distance (within geom.Tolerance) but elsewhere.
func FindPolygonsContactPoints(verticesA, verticesB []mgl64.Vec2) Contacts {
	var contacts Contacts
	minDistanceSquared := math.MaxFloat64

	scan := func(points, edges []mgl64.Vec2) {
		for _, p := range points {
			for j := range edges {
				va := edges[j]
				vb := edges[(j+1)%len(edges)]

				distanceSquared, contactPoint := PointSegmentDistance(p, va, vb)

				if geom.NearlyEqual(distanceSquared, minDistanceSquared) {
					if !geom.NearlyEqualVec(contactPoint, contacts.Points[0]) {
						contacts.Points[1] = contactPoint
						contacts.Count = 2
					}
				} else if distanceSquared < minDistanceSquared {
					minDistanceSquared = distanceSquared
					contacts.Points[0] = contactPoint
					contacts.Count = 1
				}
			}
		}
	}

	scan(verticesA, verticesB)
	scan(verticesB, verticesA)

	return contacts
}

// FindCirclePolygonContactPoint returns the point of the polygon boundary nearest to the circle center
func FindCirclePolygonContactPoint(circleCenter mgl64.Vec2, vertices []mgl64.Vec2) mgl64.Vec2 {
	var cp mgl64.Vec2
	minDistanceSquared := math.MaxFloat64

	for i := range vertices {
		va := vertices[i]
		vb := vertices[(i+1)%len(vertices)]

		distanceSquared, contact := PointSegmentDistance(circleCenter, va, vb)
		if distanceSquared < minDistanceSquared {
			minDistanceSquared = distanceSquared
			cp = contact
		}
	}

	return cp
}

// FindCirclesContactPoint returns the point of circle A's boundary facing circle B.
// Coincident centers use the +X direction.
func FindCirclesContactPoint(centerA mgl64.Vec2, radiusA float64, centerB mgl64.Vec2) mgl64.Vec2 {
	direction, ok := geom.Normalize(centerB.Sub(centerA))
	if !ok {
		direction = geom.UnitX
	}

	return centerA.Add(direction.Mul(radiusA))
}

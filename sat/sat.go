// Package sat implements narrow-phase collision detection with the Separating Axis Theorem.
//
// Two convex shapes are disjoint iff some axis exists onto which their projections do not
// overlap. For polygons only the edge normals need testing; a circle adds the axis from its
// center to the nearest polygon vertex. When no separating axis is found, the axis with the
// smallest overlap gives the minimum translation needed to separate the shapes.
//
// All functions are pure and work on world-space data. Candidate axes are scanned in edge
// index order (A's edges, then B's) and a later axis only replaces the stored one when its
// overlap is strictly smaller, so results are reproducible for identical inputs.
package sat

import (
	"math"

	"github.com/akmonengine/feather2d/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Collision is the minimum translation found for an overlapping pair.
// Normal is unit length and points from shape A toward shape B, Depth is >= 0.
type Collision struct {
	Normal mgl64.Vec2
	Depth  float64
}

// axisSearch tracks the axis of minimum overlap while scanning candidates
type axisSearch struct {
	normal mgl64.Vec2
	depth  float64
	tested bool
}

func newAxisSearch() axisSearch {
	return axisSearch{depth: math.MaxFloat64}
}

// offer records the overlap of two projections on axis.
// It returns false when the projections are disjoint, meaning axis separates the shapes.
func (s *axisSearch) offer(axis mgl64.Vec2, minA, maxA, minB, maxB float64) bool {
	if minA >= maxB || minB >= maxA {
		return false
	}

	s.tested = true
	axisDepth := math.Min(maxB-minA, maxA-minB)
	if axisDepth < s.depth {
		s.depth = axisDepth
		s.normal = axis
	}

	return true
}

// orient flips the normal so that it points along direction
func (s *axisSearch) orient(direction mgl64.Vec2) Collision {
	normal := s.normal
	if direction.Dot(normal) < 0 {
		normal = geom.Negate(normal)
	}

	return Collision{Normal: normal, Depth: s.depth}
}

// edgeNormal returns the unit normal of the edge starting at vertex i.
// ok is false for a zero-length edge.
func edgeNormal(vertices []mgl64.Vec2, i int) (mgl64.Vec2, bool) {
	va := vertices[i]
	vb := vertices[(i+1)%len(vertices)]

	return geom.Normalize(geom.Perpendicular(vb.Sub(va)))
}

// ProjectVertices returns the interval covered by the vertices projected onto axis
func ProjectVertices(vertices []mgl64.Vec2, axis mgl64.Vec2) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64

	for _, v := range vertices {
		projection := v.Dot(axis)

		if projection < min {
			min = projection
		}
		if projection > max {
			max = projection
		}
	}

	return min, max
}

// ProjectCircle returns the interval covered by the circle projected onto a unit axis
func ProjectCircle(center mgl64.Vec2, radius float64, axis mgl64.Vec2) (min, max float64) {
	directionAndRadius := axis.Mul(radius)

	min = center.Add(directionAndRadius).Dot(axis)
	max = center.Sub(directionAndRadius).Dot(axis)

	if min > max {
		min, max = max, min
	}

	return min, max
}

// FindClosestVertex returns the index of the vertex nearest to point, -1 for an empty polygon
func FindClosestVertex(point mgl64.Vec2, vertices []mgl64.Vec2) int {
	result := -1
	minDistance := math.MaxFloat64

	for i, v := range vertices {
		distance := geom.DistanceSquared(v, point)
		if distance < minDistance {
			minDistance = distance
			result = i
		}
	}

	return result
}

// IntersectCircles tests two circles.
// Coincident centers collide along +X with a depth equal to the sum of the radii.
func IntersectCircles(centerA mgl64.Vec2, radiusA float64, centerB mgl64.Vec2, radiusB float64) (Collision, bool) {
	distance := geom.Distance(centerA, centerB)
	radii := radiusA + radiusB

	if distance >= radii {
		return Collision{}, false
	}

	normal, ok := geom.Normalize(centerB.Sub(centerA))
	if !ok {
		normal = geom.UnitX
	}

	return Collision{Normal: normal, Depth: radii - distance}, true
}

// IntersectPolygons tests two convex polygons against every edge normal of both.
// The normal is oriented from centerA toward centerB.
func IntersectPolygons(centerA mgl64.Vec2, verticesA []mgl64.Vec2, centerB mgl64.Vec2, verticesB []mgl64.Vec2) (Collision, bool) {
	search := newAxisSearch()

	for _, polygon := range [2][]mgl64.Vec2{verticesA, verticesB} {
		for i := range polygon {
			axis, ok := edgeNormal(polygon, i)
			if !ok {
				continue
			}

			minA, maxA := ProjectVertices(verticesA, axis)
			minB, maxB := ProjectVertices(verticesB, axis)

			if !search.offer(axis, minA, maxA, minB, maxB) {
				return Collision{}, false
			}
		}
	}

	if !search.tested {
		return Collision{}, false
	}

	return search.orient(centerB.Sub(centerA)), true
}

// IntersectCirclePolygon tests a circle (shape A) against a convex polygon (shape B).
// The normal is oriented from the circle center toward polygonCenter; callers passing the
// polygon as their first body must negate it.
func IntersectCirclePolygon(circleCenter mgl64.Vec2, radius float64, polygonCenter mgl64.Vec2, vertices []mgl64.Vec2) (Collision, bool) {
	search := newAxisSearch()

	for i := range vertices {
		axis, ok := edgeNormal(vertices, i)
		if !ok {
			continue
		}

		minA, maxA := ProjectVertices(vertices, axis)
		minB, maxB := ProjectCircle(circleCenter, radius, axis)

		if !search.offer(axis, minA, maxA, minB, maxB) {
			return Collision{}, false
		}
	}

	if cpIndex := FindClosestVertex(circleCenter, vertices); cpIndex >= 0 {
		// a circle centered exactly on the vertex has no direction to test
		if axis, ok := geom.Normalize(vertices[cpIndex].Sub(circleCenter)); ok {
			minA, maxA := ProjectVertices(vertices, axis)
			minB, maxB := ProjectCircle(circleCenter, radius, axis)

			if !search.offer(axis, minA, maxA, minB, maxB) {
				return Collision{}, false
			}
		}
	}

	if !search.tested {
		return Collision{}, false
	}

	return search.orient(polygonCenter.Sub(circleCenter)), true
}

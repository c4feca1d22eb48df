package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/geom"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Sub-iteration bounds applied by World.Step
const (
	MinIterations = 1
	MaxIterations = 128
)

// DefaultGravity is the gravity of a world made by NewWorld
var DefaultGravity = mgl64.Vec2{0, -9.81}

type World struct {
	// Gravity acceleration (m/s², or N/kg)
	Gravity mgl64.Vec2
	// SpatialGrid replaces the brute-force broad phase when set
	SpatialGrid *SpatialGrid
	// Workers parallelizes integration and grid pair finding
	Workers int

	Events Events

	// Bodies in insertion order, which is also the pair order
	bodies []*actor.RigidBody

	manifolds     []constraint.Manifold
	contactPoints []mgl64.Vec2
}

// NewWorld creates an empty world with DefaultGravity
func NewWorld() *World {
	return &World{
		Gravity: DefaultGravity,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	if body == nil {
		return
	}
	w.bodies = append(w.bodies, body)
}

// RemoveBody removes a rigid body from the world, reporting whether it was found
func (w *World) RemoveBody(body *actor.RigidBody) bool {
	k := -1
	for i, b := range w.bodies {
		if b == body {
			k = i
			break
		}
	}

	if k == -1 {
		return false
	}

	w.bodies = append(w.bodies[:k], w.bodies[k+1:]...)
	w.Events.forget(body)

	return true
}

// GetBody returns the body at index, or false when index is out of range
func (w *World) GetBody(index int) (*actor.RigidBody, bool) {
	if index < 0 || index >= len(w.bodies) {
		return nil, false
	}

	return w.bodies[index], true
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Bodies returns the world's bodies; the slice must not be modified
func (w *World) Bodies() []*actor.RigidBody {
	return w.bodies
}

// ContactPoints returns the contact points found during the last Step, without duplicates.
// The slice is reused by the next Step.
func (w *World) ContactPoints() []mgl64.Vec2 {
	return w.contactPoints
}

// Manifolds returns the manifolds of the last sub-iteration of the last Step.
// The slice is reused by the next Step.
func (w *World) Manifolds() []constraint.Manifold {
	return w.manifolds
}

// Step advances the world by dt, split into iterations sub-steps (clamped to [MinIterations, MaxIterations]).
// Each sub-step integrates every body, detects and separates colliding pairs, then resolves their impulses.
func (w *World) Step(dt float64, iterations int) {
	iterations = geom.ClampInt(iterations, MinIterations, MaxIterations)
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	w.contactPoints = w.contactPoints[:0]

	for range iterations {
		w.integrate(dt, iterations)

		w.manifolds = w.detectCollisions(w.manifolds[:0])
		w.Events.recordCollisions(w.manifolds)

		w.solveVelocity()
	}

	for _, body := range w.bodies {
		body.ClearForces()
	}

	w.Events.flush()
}

func (w *World) integrate(dt float64, iterations int) {
	if w.Workers == 1 {
		for _, body := range w.bodies {
			body.Step(dt, w.Gravity, iterations)
		}
		return
	}

	task(w.Workers, w.bodies, func(body *actor.RigidBody) {
		body.Step(dt, w.Gravity, iterations)
	})
}

// detectCollisions runs the broad and narrow phases.
// Without a grid each pair is pruned with the positions left by the previous pair's separation.
func (w *World) detectCollisions(manifolds []constraint.Manifold) []constraint.Manifold {
	if w.SpatialGrid != nil {
		return NarrowPhase(BroadPhase(w.SpatialGrid, w.bodies, w.Workers), manifolds)
	}

	for i := 0; i < len(w.bodies)-1; i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			bodyA, bodyB := w.bodies[i], w.bodies[j]
			if !CanCollide(bodyA, bodyB) {
				continue
			}
			if manifold, ok := collidePair(bodyA, bodyB); ok {
				manifolds = append(manifolds, manifold)
			}
		}
	}

	return manifolds
}

func (w *World) solveVelocity() {
	for _, manifold := range w.manifolds {
		manifold.SolveVelocity()

		for _, point := range manifold.Contacts() {
			w.addContactPoint(point)
		}
	}
}

func (w *World) addContactPoint(point mgl64.Vec2) {
	for _, existing := range w.contactPoints {
		if geom.NearlyEqualVec(existing, point) {
			return
		}
	}
	w.contactPoints = append(w.contactPoints, point)
}

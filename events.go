package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

// pairKey identifies a colliding pair. Manifolds always list the earlier body first,
// and removals keep the relative order of bodies, so a pair always maps to the same key.
type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// pairSet is a set of pairs that remembers insertion order
type pairSet struct {
	order []pairKey
	index map[pairKey]struct{}
}

func (s *pairSet) add(pair pairKey) {
	if s.index == nil {
		s.index = make(map[pairKey]struct{})
	}
	if _, ok := s.index[pair]; ok {
		return
	}
	s.index[pair] = struct{}{}
	s.order = append(s.order, pair)
}

func (s *pairSet) contains(pair pairKey) bool {
	_, ok := s.index[pair]
	return ok
}

func (s *pairSet) remove(body *actor.RigidBody) {
	n := 0
	for _, pair := range s.order {
		if pair.bodyA == body || pair.bodyB == body {
			delete(s.index, pair)
			continue
		}
		s.order[n] = pair
		n++
	}
	s.order = s.order[:n]
}

func (s *pairSet) reset() {
	s.order = s.order[:0]
	clear(s.index)
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is sent on the first step two bodies touch
type CollisionEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is sent on every following step the bodies still touch
type CollisionStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is sent on the first step the bodies no longer touch
type CollisionExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches collision events once per World.Step.
// Events are delivered in pair order: Enter and Stay by first contact within the step, then Exit.
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	previousActivePairs pairSet
	currentActivePairs  pairSet
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions is called during sub-iterations to mark the pairs in contact
func (e *Events) recordCollisions(manifolds []constraint.Manifold) {
	for _, m := range manifolds {
		e.currentActivePairs.add(pairKey{bodyA: m.BodyA, bodyB: m.BodyB})
	}
}

// forget drops every pair involving body, without emitting Exit events
func (e *Events) forget(body *actor.RigidBody) {
	e.previousActivePairs.remove(body)
	e.currentActivePairs.remove(body)
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for _, pair := range e.currentActivePairs.order {
		if e.previousActivePairs.contains(pair) {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for _, pair := range e.previousActivePairs.order {
		if !e.currentActivePairs.contains(pair) {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.currentActivePairs.reset()
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}

package ecs

import (
	"reflect"
	"sort"
	"sync/atomic"
)

// Entity is a unique identifier for a game object.
type Entity uint64

// System is logic that runs once per simulation step.
type System interface {
	Update(dt float64)
}

// Component is a marker interface for data attached to entities.
type Component interface{}

// World manages entities and their components. It is not safe for
// concurrent use; the server serializes access with its own mutex.
type World struct {
	nextEntityID uint64
	// components maps ComponentType -> Entity -> Component
	components map[reflect.Type]map[Entity]Component
	alive      map[Entity]struct{}
	systems    []System
}

func NewWorld() *World {
	return &World{
		components: make(map[reflect.Type]map[Entity]Component),
		alive:      make(map[Entity]struct{}),
	}
}

// NewEntity creates a new entity with a unique ID.
func (w *World) NewEntity() Entity {
	e := Entity(atomic.AddUint64(&w.nextEntityID, 1))
	w.alive[e] = struct{}{}
	return e
}

// Alive reports whether e was created and not removed.
func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// RemoveEntity removes the entity and all of its components.
func (w *World) RemoveEntity(e Entity) {
	delete(w.alive, e)
	for _, store := range w.components {
		delete(store, e)
	}
}

// AddComponent attaches (or replaces) a component on an entity.
func (w *World) AddComponent(e Entity, c Component) {
	cType := reflect.TypeOf(c)
	store, ok := w.components[cType]
	if !ok {
		store = make(map[Entity]Component)
		w.components[cType] = store
	}
	store[e] = c
}

// RemoveComponent removes the component with the dynamic type of c.
func (w *World) RemoveComponent(e Entity, c Component) {
	if store, ok := w.components[reflect.TypeOf(c)]; ok {
		delete(store, e)
	}
}

// GetComponent returns a copy of the T component of e.
// Write changes back with AddComponent.
func GetComponent[T Component](w *World, e Entity) (*T, bool) {
	var zero T
	store, ok := w.components[reflect.TypeOf(zero)]
	if !ok {
		return nil, false
	}
	val, ok := store[e]
	if !ok {
		return nil, false
	}
	castVal := val.(T)
	return &castVal, true
}

// Update mutates the T component of e in place through fn.
// It reports false when e has no such component.
func Update[T Component](w *World, e Entity, fn func(*T)) bool {
	c, ok := GetComponent[T](w, e)
	if !ok {
		return false
	}
	fn(c)
	w.AddComponent(e, *c)
	return true
}

// AddSystem adds a system to the world.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Update runs all systems in the order they were added.
func (w *World) Update(dt float64) {
	for _, system := range w.systems {
		system.Update(dt)
	}
}

// Query returns the entities carrying a T component, lowest ID first.
func Query[T Component](w *World) []Entity {
	var zero T
	store := w.components[reflect.TypeOf(zero)]
	entities := make([]Entity, 0, len(store))
	for e := range store {
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })
	return entities
}

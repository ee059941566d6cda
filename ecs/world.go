package ecs

import "github.com/milk9111/fpscontroller/ecs/component"

type componentStore interface {
	Has(e Entity) bool
	Remove(e Entity) bool
	Len() int
	Entities() []Entity
}

// World owns entities, their component stores and the system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]componentStore
	scheduler *Scheduler
	events    *EventBus

	dt   float64
	tick uint64
}

// NewWorld creates an empty world publishing notifications on bus.
// A nil bus falls back to DefaultBus.
func NewWorld(bus *EventBus) *World {
	if bus == nil {
		bus = DefaultBus
	}
	return &World{
		stores:    make(map[component.ComponentID]componentStore),
		scheduler: NewScheduler(),
		events:    bus,
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops every component of e and marks it dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Systems names the systems in update order.
func (w *World) Systems() []string {
	if w == nil {
		return nil
	}
	return w.scheduler.Names()
}

// Update runs all systems once with the given tick delta in seconds.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.tick++
	w.scheduler.Update(w)
}

// Delta returns the delta time of the tick being run.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick returns how many updates have started.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the notification bus systems publish on.
func (w *World) Events() *EventBus {
	if w == nil {
		return nil
	}
	return w.events
}

package ecs

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventType identifies a notification topic.
type EventType uint8

const (
	EventDamageApplied EventType = iota + 1
	EventHealed
	EventStaminaChanged
	EventDied
	EventTakeDamage
	EventFootstep
)

func (t EventType) String() string {
	switch t {
	case EventDamageApplied:
		return "damage_applied"
	case EventHealed:
		return "healed"
	case EventStaminaChanged:
		return "stamina_changed"
	case EventDied:
		return "died"
	case EventTakeDamage:
		return "take_damage"
	case EventFootstep:
		return "footstep"
	}
	return "unknown"
}

// Event is a notification payload. Data holds one of the payload structs below.
type Event struct {
	Type EventType
	Data any
}

// VitalsChanged carries the new health or stamina value of a character.
type VitalsChanged struct {
	Character uuid.UUID
	Value     float64
}

// Died is published once when a character's health first reaches zero.
type Died struct {
	Character uuid.UUID
}

// DamageRequest asks characters to take damage. A nil Target addresses
// every enabled character.
type DamageRequest struct {
	Target uuid.UUID
	Amount float64
}

// Footstep asks the audio side to play a step for the classified surface.
type Footstep struct {
	Character uuid.UUID
	Surface   string
	Position  mgl64.Vec3
}

// Handler receives published events.
type Handler func(evt Event)

// Subscription identifies one registered handler.
type Subscription struct {
	id  uint64
	typ EventType
}

func (s Subscription) Valid() bool {
	return s.id != 0
}

type subscriber struct {
	id      uint64
	handler Handler
}

// EventBus fans events out to subscribers synchronously, in subscription order.
type EventBus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[EventType][]subscriber
}

// DefaultBus is the process-wide registry controllers publish to when none is given.
var DefaultBus = NewEventBus()

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[EventType][]subscriber)}
}

// Subscribe registers h for events of type t.
func (b *EventBus) Subscribe(t EventType, h Handler) Subscription {
	if b == nil || h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.subs[t] = append(b.subs[t], subscriber{id: b.nextID, handler: h})
	return Subscription{id: b.nextID, typ: t}
}

// Unsubscribe removes a handler. It reports whether the subscription was live.
func (b *EventBus) Unsubscribe(s Subscription) bool {
	if b == nil || !s.Valid() {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[s.typ]
	for i, sub := range list {
		if sub.id != s.id {
			continue
		}
		next := make([]subscriber, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		b.subs[s.typ] = next
		return true
	}
	return false
}

// Publish delivers evt to the handlers registered when Publish was called.
// Handlers may publish, subscribe or unsubscribe re-entrantly.
func (b *EventBus) Publish(evt Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	list := b.subs[evt.Type]
	b.mu.Unlock()
	for _, sub := range list {
		sub.handler(evt)
	}
}

// Count returns how many handlers listen to t.
func (b *EventBus) Count(t EventType) int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[t])
}

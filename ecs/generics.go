package ecs

import "github.com/milk9111/fpscontroller/ecs/component"

func store[T any](w *World, h component.ComponentHandle[T], create bool) *SparseSet[T] {
	if w == nil || !h.Valid() {
		return nil
	}
	if s, ok := w.stores[h.ID()]; ok {
		typed, _ := s.(*SparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	s := &SparseSet[T]{}
	w.stores[h.ID()] = s
	return s
}

// Add attaches or replaces a component value on e.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value *T) error {
	if !h.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	store(w, h, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return store(w, h, false).Remove(e)
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return store(w, h, false).Has(e)
}

// Get returns the stored pointer so systems mutate component state in place.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	v := store(w, h, false).Get(e)
	return v, v != nil
}

// ForEach visits every entity holding h, in dense order.
func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	s := store(w, h, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range append([]Entity(nil), s.Entities()...) {
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

// ForEach2 visits every entity holding both a and b.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa := store(w, ha, false)
	sb := store(w, hb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range intersect(sa, sb) {
		fn(e, sa.Get(e), sb.Get(e))
	}
}

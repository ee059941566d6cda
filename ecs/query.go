package ecs

import "github.com/milk9111/fpscontroller/ecs/component"

// intersect returns entities present in both stores, iterating the smaller one.
func intersect(a, b componentStore) []Entity {
	if a == nil || b == nil {
		return nil
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]Entity, 0, a.Len())
	for _, e := range a.Entities() {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// Query returns entities holding every listed component.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	first, ok := w.stores[ids[0]]
	if !ok {
		return nil
	}
	out := append([]Entity(nil), first.Entities()...)
	for _, id := range ids[1:] {
		s, ok := w.stores[id]
		if !ok {
			return nil
		}
		kept := out[:0]
		for _, e := range out {
			if s.Has(e) {
				kept = append(kept, e)
			}
		}
		out = kept
	}
	return out
}

package ecs

// entityStore tracks slot generations and recycles freed slots.
// Slot 0 is reserved so the zero Entity is never alive.
type entityStore struct {
	gen  []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	if len(s.gen) == 0 {
		s.gen = append(s.gen, 0)
	}
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return makeEntity(id, s.gen[id])
	}
	id := entityID(len(s.gen))
	s.gen = append(s.gen, 0)
	return makeEntity(id, 0)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.gen[id]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gen) {
		return false
	}
	return s.gen[id] == e.generation()
}

func (s *entityStore) alive() []Entity {
	out := make([]Entity, 0, len(s.gen))
	freed := make(map[entityID]struct{}, len(s.free))
	for _, id := range s.free {
		freed[id] = struct{}{}
	}
	for i := 1; i < len(s.gen); i++ {
		if _, ok := freed[entityID(i)]; ok {
			continue
		}
		out = append(out, makeEntity(entityID(i), s.gen[i]))
	}
	return out
}

package ecs

import "strconv"

// Entity is a generational handle. The low 32 bits are the id, the high 32
// bits the generation; a handle goes stale when its entity is destroyed and
// the id is reused.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e.id() != 0
}

// entityStore tracks generations and free ids. Index 0 is never issued so
// the zero Entity is always invalid.
type entityStore struct {
	gens []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if len(s.gens) == 0 {
			s.gens = append(s.gens, 0)
		}
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens) - 1)
	}
	return makeEntity(id, s.gens[id])
}

func (s *entityStore) alive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(s.gens) {
		return false
	}
	return s.gens[id] == e.generation()
}

func (s *entityStore) release(e Entity) {
	if !s.alive(e) {
		return
	}
	id := e.id()
	s.gens[id]++
	s.free = append(s.free, id)
}

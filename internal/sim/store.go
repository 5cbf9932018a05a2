package sim

import "slices"

// Store owns the craft and every entity population.
// Populations keep insertion order; indices handed out by All or by the
// collision pass are valid only until the next mutation.
type Store struct {
	player Craft
	pops   [numPopulations][]Entity
}

// NewStore creates a store around the craft singleton.
func NewStore(player Craft) *Store {
	return &Store{player: player}
}

// Player returns the craft. The craft lives for the whole run.
func (s *Store) Player() *Craft {
	return &s.player
}

// All returns the population in insertion order.
// The slice is owned by the store and must not be retained across mutations.
func (s *Store) All(p Population) []Entity {
	return s.pops[p]
}

// Len returns the population size.
func (s *Store) Len(p Population) int {
	return len(s.pops[p])
}

// Insert appends e to the population.
func (s *Store) Insert(p Population, e Entity) {
	s.pops[p] = append(s.pops[p], e)
}

// RemoveAt removes the entity at index i, keeping the order of the rest.
func (s *Store) RemoveAt(p Population, i int) {
	s.pops[p] = slices.Delete(s.pops[p], i, i+1)
}

// RemoveBatch removes every listed index in one pass.
// Indices are de-duplicated and removed from the highest down, so earlier
// removals never shift an index still waiting to be removed.
func (s *Store) RemoveBatch(p Population, idx []int) int {
	if len(idx) == 0 {
		return 0
	}
	order := slices.Clone(idx)
	slices.Sort(order)
	order = slices.Compact(order)

	for i := len(order) - 1; i >= 0; i-- {
		s.RemoveAt(p, order[i])
	}
	return len(order)
}

// Cull runs step over every entity of the population, stores the updated
// entities that stay in play and returns the ones that left.
func (s *Store) Cull(p Population, step func(Entity) (Entity, bool)) []Entity {
	var removed []Entity
	list := s.pops[p]
	kept := list[:0]
	for _, e := range list {
		next, ok := step(e)
		if !ok {
			removed = append(removed, next)
			continue
		}
		kept = append(kept, next)
	}
	s.pops[p] = kept
	return removed
}

// Clear empties a population.
func (s *Store) Clear(p Population) {
	s.pops[p] = s.pops[p][:0]
}

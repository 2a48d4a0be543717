package layer

import "slices"

// Set is an unordered collection of layer ids.
type Set map[ID]struct{}

// NewSet returns a set holding ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s Set) Add(id ID) { s[id] = struct{}{} }

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Equal reports whether s and other hold the same ids.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

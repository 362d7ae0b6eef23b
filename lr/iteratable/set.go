package iteratable

// Set is an insertion-ordered set of comparable values.
// Create one with NewSet.
type Set struct {
	items  []interface{}
	member map[interface{}]int // value -> position in items
	cursor int                 // iteration cursor, -1 if not iterating
}

// NewSet creates an empty set. The argument is a capacity hint.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  make([]interface{}, 0, capacity),
		member: make(map[interface{}]int, capacity),
		cursor: -1,
	}
}

// Add inserts an element, if not already present. Returns true if the element has been new.
func (s *Set) Add(x interface{}) bool {
	if _, ok := s.member[x]; ok {
		return false
	}
	s.member[x] = len(s.items)
	s.items = append(s.items, x)
	return true
}

// Contains checks for set membership.
func (s *Set) Contains(x interface{}) bool {
	if s == nil {
		return false
	}
	_, ok := s.member[x]
	return ok
}

// Size returns the number of elements.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true for a set without elements.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the elements in order of insertion.
// The returned slice must not be modified.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	return s.items
}

// First returns the element inserted first, or nil.
func (s *Set) First() interface{} {
	if s.Empty() {
		return nil
	}
	return s.items[0]
}

// Copy returns a shallow copy of s.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	for _, x := range s.Values() {
		c.Add(x)
	}
	return c
}

// Union adds all elements of other to s. Returns s.
func (s *Set) Union(other *Set) *Set {
	for _, x := range other.Values() {
		s.Add(x)
	}
	return s
}

// Difference removes all elements of other from s. Returns s.
func (s *Set) Difference(other *Set) *Set {
	return s.Subset(func(x interface{}) bool {
		return !other.Contains(x)
	})
}

// Subset keeps only those elements for which predicate is true. Returns s.
//
// Removing elements will reset any iteration in progress.
func (s *Set) Subset(predicate func(interface{}) bool) *Set {
	items := s.items[:0]
	s.member = make(map[interface{}]int, len(s.items))
	for _, x := range s.items {
		if predicate(x) {
			s.member[x] = len(items)
			items = append(items, x)
		}
	}
	for i := len(items); i < len(s.items); i++ {
		s.items[i] = nil // let go of references
	}
	s.items = items
	s.cursor = -1
	return s
}

// Equals is true if s and other contain the same elements, regardless of order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, x := range s.Values() {
		if !other.Contains(x) {
			return false
		}
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts an iteration over the set. Use as
//
//     S.IterateOnce()
//     for S.Next() {
//         x := S.Item()
//         …
//     }
//
// Elements added during iteration will be visited as well.
func (s *Set) IterateOnce() {
	s.cursor = -1
}

// Next moves the iteration cursor. Returns false if there are no more elements.
func (s *Set) Next() bool {
	if s.cursor+1 >= len(s.items) {
		return false
	}
	s.cursor++
	return true
}

// Item returns the element at the iteration cursor.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	return s.items[s.cursor]
}

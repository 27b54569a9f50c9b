package utils

// OrderedSet tracks keys in first-seen order. It is not safe for concurrent
// use; every pipeline in this module runs sequentially.
type OrderedSet struct {
	seen map[string]struct{}
	keys []string
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *OrderedSet) Add(key string) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// Size returns the number of unique keys tracked.
func (s *OrderedSet) Size() int {
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *OrderedSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

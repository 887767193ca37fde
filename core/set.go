package core

// Set is a generic unordered collection of unique values.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// ToSet converts a slice into a Set.
func ToSet[T comparable](items []T) Set[T] {
	return NewSet(items...)
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

func (s Set[T]) Contains(item T) bool {
	_, ok := s[item]
	return ok
}

func (s Set[T]) IsEmpty() bool {
	return len(s) == 0
}

func (s Set[T]) ToArray() []T {
	r := make([]T, 0, len(s))
	for item := range s {
		r = append(r, item)
	}
	return r
}

package reactor

// Set is a tracked set that remembers insertion order.
type Set[T comparable] struct {
	node
	members map[T]struct{}
	order   []T
}

func NewSet[T comparable](rs *ReactiveSystem, members ...T) *Set[T] {
	s := &Set[T]{
		node:    newNode(rs),
		members: make(map[T]struct{}, len(members)),
	}
	for _, m := range members {
		if _, ok := s.members[m]; ok {
			continue
		}
		s.members[m] = struct{}{}
		s.order = append(s.order, m)
	}
	return s
}

func (s *Set[T]) Has(v T) bool {
	s.track(v)
	_, ok := s.members[v]
	return ok
}

func (s *Set[T]) Len() int {
	s.track(iterateKey)
	return len(s.order)
}

func (s *Set[T]) Values() []T {
	s.track(iterateKey)
	out := make([]T, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Set[T]) Range(fn func(v T) bool) {
	for _, v := range s.Values() {
		if !fn(v) {
			return
		}
	}
}

// Add inserts v and reports whether it was new.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.members[v]; ok {
		return false
	}
	s.members[v] = struct{}{}
	s.order = append(s.order, v)
	s.trigger(v, iterateKey)
	return true
}

func (s *Set[T]) Delete(v T) bool {
	if _, ok := s.members[v]; !ok {
		return false
	}
	delete(s.members, v)
	for i, m := range s.order {
		if m == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.trigger(v, iterateKey)
	return true
}

func (s *Set[T]) Clear() {
	if len(s.members) == 0 {
		return
	}
	s.members = map[T]struct{}{}
	s.order = nil
	s.triggerAll()
}

func (s *Set[T]) ShallowCopy() any {
	return NewSet(s.rs, s.order...)
}

func (s *Set[T]) traverse(t *traversal) {
	s.Range(func(v T) bool {
		t.visit(any(v))
		return true
	})
}

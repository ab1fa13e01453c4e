package reactor

import "github.com/delaneyj/reactref/pkg/shallow"

// Snapshot is an immutable, shallow-copied view of tracked state that is
// re-materialised on the flush after the state changes. Callers must not
// mutate the values it hands out.
type Snapshot[T any] struct {
	w         *watcher[T]
	value     T
	emits     int
	lastID    uint64
	listeners map[uint64]func(T)
	order     []uint64
}

func (s *Snapshot[T]) isSignalAware() {}

// Project snapshots the value of a single cell.
func Project[T any](c *Cell[T]) *Snapshot[T] {
	return ProjectFunc(c.rs, c.Get)
}

// ProjectFunc snapshots the result of expr, which may read any number of
// tracked values. A new copy is made only when the result changed by
// reference or anything reachable from it was mutated.
func ProjectFunc[T any](rs *ReactiveSystem, expr func() T) *Snapshot[T] {
	s := &Snapshot[T]{
		listeners: map[uint64]func(T){},
	}
	s.w = newWatcher(rs, KindSnapshot, expr, s.emit, watchConfig{deep: true}, nil)
	s.value = shallow.Copy(s.w.value)

	rs.adopt(s.Stop)
	return s
}

func (s *Snapshot[T]) emit(v, _ T) {
	s.value = shallow.Copy(v)
	s.emits++
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			fn(s.value)
		}
	}
}

// Value returns the latest snapshot. When T is a tracked composite the copy
// is a new tracked value detached from the source: mutating it never reaches
// the source, and writes to the source never notify readers of the copy.
// Subscribe to be told about new snapshots.
func (s *Snapshot[T]) Value() T {
	return s.value
}

// Emits returns how many times a new snapshot was materialised after the
// initial one.
func (s *Snapshot[T]) Emits() int {
	return s.emits
}

// Subscribe registers fn to be called with every new snapshot.
func (s *Snapshot[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.lastID++
	id := s.lastID
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.listeners, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				return
			}
		}
	}
}

// Stop cancels any pending re-materialisation and stops tracking. The last
// snapshot stays readable.
func (s *Snapshot[T]) Stop() {
	s.w.sub.dispose()
}

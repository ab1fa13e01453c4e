package reactor

import "github.com/delaneyj/reactref/pkg/shallow"

// DeriveLens derives a cell from parent through selector. See BindLens.
func DeriveLens[T, K any](parent *Cell[T], selector func(*Cell[T]) K) *Cell[K] {
	child, _ := BindLens(parent, selector)
	return child
}

// BindLens derives a cell from parent through selector and returns it with
// the function that stops keeping it in sync.
//
// The selection is computed eagerly; a panicking selector panics here.
//
// When both the parent's value and the selection are primitive and of the
// same type, the parent cell itself is returned and the two can never diverge.
//
// Otherwise the child holds the selection and is overwritten whenever
// anything reachable through selector changes. A composite selection is the
// same tracked value the parent holds, so mutating it through the child is
// visible from the parent immediately. A primitive selection is a copy: writes
// to the child do not reach the parent.
//
// The sync is stopped when the scope running at creation deactivates.
func BindLens[T, K any](parent *Cell[T], selector func(*Cell[T]) K) (*Cell[K], StopFunc) {
	rs := parent.rs

	var selected K
	rs.Untrack(func() {
		selected = selector(parent)
	})

	if shallow.IsPrimitive(any(parent.Peek())) && shallow.IsPrimitive(any(selected)) {
		if alias, ok := any(parent).(*Cell[K]); ok {
			return alias, func() {}
		}
	}

	child := NewCell(rs, selected)
	w := newWatcher(
		rs,
		KindLens,
		func() K { return selector(parent) },
		func(v, _ K) { child.Set(v) },
		watchConfig{deep: true, sync: true},
		&child.node,
	)

	stop := StopFunc(w.sub.dispose)
	rs.adopt(stop)
	return child, stop
}

package reactor

import (
	"github.com/delaneyj/reactref/pkg/shallow"
)

// List is a tracked ordered sequence.
type List[T any] struct {
	node
	items []T
}

func NewList[T any](rs *ReactiveSystem, items ...T) *List[T] {
	l := &List[T]{
		node:  newNode(rs),
		items: make([]T, len(items)),
	}
	for i, item := range items {
		l.items[i] = wrapAs(rs, item)
	}
	return l
}

// At returns the item at i. Like a slice index it panics when out of range.
func (l *List[T]) At(i int) T {
	l.track(i)
	return l.items[i]
}

func (l *List[T]) Len() int {
	l.track(lengthKey)
	return len(l.items)
}

// Values returns a copy of the items.
func (l *List[T]) Values() []T {
	l.track(iterateKey)
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Range(fn func(i int, v T) bool) {
	for i, v := range l.Values() {
		if !fn(i, v) {
			return
		}
	}
}

func (l *List[T]) Set(i int, v T) {
	v = wrapAs(l.rs, v)
	if shallow.Same(any(l.items[i]), any(v)) {
		return
	}
	l.items[i] = v
	l.trigger(i, iterateKey)
}

func (l *List[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	start := len(l.items)
	keys := []any{lengthKey, iterateKey}
	for i, v := range vs {
		l.items = append(l.items, wrapAs(l.rs, v))
		keys = append(keys, start+i)
	}
	l.trigger(keys...)
}

// RemoveAt deletes the item at i, shifting the rest left.
func (l *List[T]) RemoveAt(i int) T {
	removed := l.items[i]
	oldLen := len(l.items)
	l.items = append(l.items[:i], l.items[i+1:]...)

	keys := []any{lengthKey, iterateKey}
	for j := i; j < oldLen; j++ {
		keys = append(keys, j)
	}
	l.trigger(keys...)
	return removed
}

func (l *List[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.items = l.items[:0]
	l.triggerAll()
}

func (l *List[T]) ShallowCopy() any {
	cp := &List[T]{
		node:  newNode(l.rs),
		items: make([]T, len(l.items)),
	}
	copy(cp.items, l.items)
	return cp
}

func (l *List[T]) traverse(t *traversal) {
	l.track(lengthKey)
	l.Range(func(_ int, v T) bool {
		t.visit(any(v))
		return true
	})
}

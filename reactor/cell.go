package reactor

import "github.com/delaneyj/reactref/pkg/shallow"

// Cell is a single mutable slot whose reads and writes are tracked.
type Cell[T any] struct {
	node
	value T
}

func NewCell[T any](rs *ReactiveSystem, initial T) *Cell[T] {
	return &Cell[T]{
		node:  newNode(rs),
		value: initial,
	}
}

// Get returns the current value and records a dependency on it.
func (c *Cell[T]) Get() T {
	c.track(valueKey)
	return c.value
}

// Peek returns the current value without recording a dependency.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Set replaces the value. Writing the same value again notifies nobody.
func (c *Cell[T]) Set(v T) {
	if shallow.Same(any(c.value), any(v)) {
		return
	}
	c.value = v
	c.trigger(valueKey)
}

func (c *Cell[T]) Update(fn func(old T) T) {
	c.Set(fn(c.value))
}

func (c *Cell[T]) traverse(t *traversal) {
	t.visit(c.Get())
}

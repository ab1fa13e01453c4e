package reactor

import (
	"github.com/delaneyj/reactref/pkg/shallow"
)

// Map is a tracked map that remembers insertion order.
type Map[K comparable, V any] struct {
	node
	entries map[K]V
	order   []K
}

func NewMap[K comparable, V any](rs *ReactiveSystem) *Map[K, V] {
	return &Map[K, V]{
		node:    newNode(rs),
		entries: map[K]V{},
	}
}

// NewMapFrom copies entries into a new Map. Their initial order is unspecified.
func NewMapFrom[K comparable, V any](rs *ReactiveSystem, entries map[K]V) *Map[K, V] {
	m := NewMap[K, V](rs)
	for k, v := range entries {
		m.entries[k] = wrapAs(rs, v)
		m.order = append(m.order, k)
	}
	return m
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	m.track(k)
	v, ok := m.entries[k]
	return v, ok
}

func (m *Map[K, V]) Has(k K) bool {
	m.track(k)
	_, ok := m.entries[k]
	return ok
}

func (m *Map[K, V]) Len() int {
	m.track(iterateKey)
	return len(m.order)
}

func (m *Map[K, V]) Keys() []K {
	m.track(iterateKey)
	keys := make([]K, len(m.order))
	copy(keys, m.order)
	return keys
}

func (m *Map[K, V]) Range(fn func(k K, v V) bool) {
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		if !fn(k, v) {
			return
		}
	}
}

func (m *Map[K, V]) Set(k K, v V) {
	v = wrapAs(m.rs, v)
	old, ok := m.entries[k]
	if ok && shallow.Same(any(old), any(v)) {
		return
	}
	if !ok {
		m.order = append(m.order, k)
	}
	m.entries[k] = v
	m.trigger(k, iterateKey)
}

func (m *Map[K, V]) Delete(k K) bool {
	if _, ok := m.entries[k]; !ok {
		return false
	}
	delete(m.entries, k)
	for i, key := range m.order {
		if key == k {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.trigger(k, iterateKey)
	return true
}

func (m *Map[K, V]) Clear() {
	if len(m.entries) == 0 {
		return
	}
	m.entries = map[K]V{}
	m.order = nil
	m.triggerAll()
}

func (m *Map[K, V]) ShallowCopy() any {
	cp := NewMap[K, V](m.rs)
	cp.order = make([]K, len(m.order))
	copy(cp.order, m.order)
	for k, v := range m.entries {
		cp.entries[k] = v
	}
	return cp
}

func (m *Map[K, V]) traverse(t *traversal) {
	m.Range(func(_ K, v V) bool {
		t.visit(any(v))
		return true
	})
}

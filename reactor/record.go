package reactor

import (
	"sort"

	"github.com/delaneyj/reactref/pkg/shallow"
)

// Record is a tracked string-keyed record, the counterpart of a plain object.
// Field order is insertion order.
type Record struct {
	node
	fields map[string]any
	order  []string
}

// NewRecord copies fields into a new record, wrapping nested composites.
// Initial fields are ordered by name.
func NewRecord(rs *ReactiveSystem, fields map[string]any) *Record {
	r := &Record{
		node:   newNode(rs),
		fields: make(map[string]any, len(fields)),
		order:  make([]string, 0, len(fields)),
	}
	for name := range fields {
		r.order = append(r.order, name)
	}
	sort.Strings(r.order)
	for _, name := range r.order {
		r.fields[name] = Wrap(rs, fields[name])
	}
	return r
}

func (r *Record) Get(name string) any {
	r.track(name)
	return r.fields[name]
}

func (r *Record) Has(name string) bool {
	r.track(name)
	_, ok := r.fields[name]
	return ok
}

// Field is a typed Get. It returns the zero value when the field is missing
// or holds another type.
func Field[T any](r *Record, name string) T {
	v, _ := r.Get(name).(T)
	return v
}

func (r *Record) Set(name string, v any) {
	v = Wrap(r.rs, v)
	old, ok := r.fields[name]
	if !ok {
		r.fields[name] = v
		r.order = append(r.order, name)
		r.trigger(name, iterateKey)
		return
	}
	if shallow.Same(old, v) {
		return
	}
	r.fields[name] = v
	r.trigger(name, iterateKey)
}

func (r *Record) Delete(name string) bool {
	if _, ok := r.fields[name]; !ok {
		return false
	}
	delete(r.fields, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.trigger(name, iterateKey)
	return true
}

func (r *Record) Keys() []string {
	r.track(iterateKey)
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *Record) Len() int {
	r.track(iterateKey)
	return len(r.order)
}

// Range calls fn for each field in order until fn returns false.
func (r *Record) Range(fn func(name string, v any) bool) {
	for _, name := range r.Keys() {
		if !fn(name, r.Get(name)) {
			return
		}
	}
}

func (r *Record) ShallowCopy() any {
	cp := &Record{
		node:   newNode(r.rs),
		fields: make(map[string]any, len(r.fields)),
		order:  make([]string, len(r.order)),
	}
	copy(cp.order, r.order)
	for name, v := range r.fields {
		cp.fields[name] = v
	}
	return cp
}

func (r *Record) traverse(t *traversal) {
	r.Range(func(_ string, v any) bool {
		t.visit(v)
		return true
	})
}

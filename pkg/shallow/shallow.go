// Package shallow holds the two value utilities the reactive runtime leans on:
// classifying a value as primitive and copying a composite one level deep.
package shallow

import (
	"reflect"
)

// Copier is implemented by composite values that know how to copy themselves
// one level deep, such as the tracked collections in package reactor.
type Copier interface {
	ShallowCopy() any
}

// IsPrimitive reports whether v is a non-composite value.
//
// Bools, numbers, strings and funcs are primitive, and so is an untyped nil.
// Pointers (including typed nil pointers), maps, slices, arrays, structs and
// channels are not.
func IsPrimitive(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(Copier); ok {
		return false
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Array,
		reflect.Struct, reflect.Chan, reflect.Interface:
		return false
	default:
		return true
	}
}

// Copy returns a one level copy of v. Primitives are returned as is. Nested
// composite values keep their identity in the copy.
func Copy[T any](v T) T {
	x := any(v)
	if x == nil {
		return v
	}
	if c, ok := x.(Copier); ok {
		if t, ok := c.ShallowCopy().(T); ok {
			return t
		}
		return v
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface().(T)

	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface().(T)

	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(rv.Elem())
		return out.Interface().(T)

	default:
		// structs, arrays and time.Time are already copied by assignment
		return v
	}
}

// Same reports whether a and b are the same value: equal for comparable
// values, identical backing storage for slices and maps. Funcs are never the
// same.
func Same(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	if ta.Comparable() {
		// interface fields holding uncomparable values still panic
		defer func() {
			if recover() != nil {
				same = false
			}
		}()
		return a == b
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

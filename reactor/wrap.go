package reactor

import "time"

// Wrap converts plain Go composites into tracked ones: map[string]any becomes
// a *Record, []any a *List[any] and time.Time a *Date, recursively. Tracked
// values and everything else are returned unchanged.
func Wrap(rs *ReactiveSystem, v any) any {
	switch x := v.(type) {
	case tracked:
		return v
	case map[string]any:
		return NewRecord(rs, x)
	case []any:
		return NewList(rs, x...)
	case time.Time:
		return NewDate(rs, x)
	default:
		return v
	}
}

func wrapAs[T any](rs *ReactiveSystem, v T) T {
	if w, ok := Wrap(rs, any(v)).(T); ok {
		return w
	}
	return v
}

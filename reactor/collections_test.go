package reactor_test

import (
	"testing"
	"time"

	"github.com/delaneyj/reactref/reactor"
	"github.com/stretchr/testify/assert"
)

func TestRecord(t *testing.T) {
	rs, q := newSystem(t)
	rec := reactor.NewRecord(rs, map[string]any{"b": 2, "a": 1})
	assert.Equal(t, []string{"a", "b"}, rec.Keys())

	keyRuns, aRuns := 0, 0
	reactor.Effect(rs, func() error {
		rec.Keys()
		keyRuns++
		return nil
	})
	reactor.Effect(rs, func() error {
		rec.Get("a")
		aRuns++
		return nil
	})

	rec.Set("b", 3)
	flush(t, q)
	assert.Equal(t, 2, keyRuns)
	assert.Equal(t, 1, aRuns)

	rec.Set("c", 4)
	flush(t, q)
	assert.Equal(t, []string{"a", "b", "c"}, rec.Keys())
	assert.Equal(t, 3, keyRuns)

	assert.True(t, rec.Delete("a"))
	assert.False(t, rec.Delete("a"))
	flush(t, q)
	assert.Equal(t, 2, aRuns)
	assert.False(t, rec.Has("a"))
	assert.Equal(t, 2, rec.Len())

	rec.Set("b", 3)
	assert.Equal(t, 0, q.Pending(), "same value is not a change")
}

func TestRecordWrapsNestedValues(t *testing.T) {
	rs, _ := newSystem(t)
	when := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	rec := reactor.NewRecord(rs, map[string]any{
		"nested": map[string]any{"x": 1},
		"list":   []any{map[string]any{"done": false}},
		"when":   when,
		"plain":  []int{1, 2},
	})

	nested := reactor.Field[*reactor.Record](rec, "nested")
	assert.Equal(t, 1, reactor.Field[int](nested, "x"))

	list := reactor.Field[*reactor.List[any]](rec, "list")
	todo, ok := list.At(0).(*reactor.Record)
	assert.True(t, ok)
	assert.Equal(t, false, reactor.Field[bool](todo, "done"))

	assert.True(t, when.Equal(reactor.Field[*reactor.Date](rec, "when").Time()))
	assert.Equal(t, []int{1, 2}, reactor.Field[[]int](rec, "plain"))
	assert.Equal(t, 0, reactor.Field[int](rec, "missing"))
}

func TestListKeys(t *testing.T) {
	rs, q := newSystem(t)
	list := reactor.NewList(rs, "a", "b", "c")
	firstRuns, lenRuns := 0, 0
	reactor.Effect(rs, func() error {
		list.At(0)
		firstRuns++
		return nil
	})
	reactor.Effect(rs, func() error {
		list.Len()
		lenRuns++
		return nil
	})

	list.Set(2, "z")
	flush(t, q)
	assert.Equal(t, 1, firstRuns)
	assert.Equal(t, 1, lenRuns)

	assert.Equal(t, "a", list.RemoveAt(0))
	flush(t, q)
	assert.Equal(t, 2, firstRuns)
	assert.Equal(t, 2, lenRuns)
	assert.Equal(t, []string{"b", "z"}, list.Values())

	list.Clear()
	flush(t, q)
	assert.Equal(t, 3, lenRuns)
	assert.Equal(t, 0, list.Len())
}

func TestMapAndSet(t *testing.T) {
	rs, q := newSystem(t)
	m := reactor.NewMapFrom(rs, map[string]int{"a": 1})
	s := reactor.NewSet(rs, "x", "x", "y")
	assert.Equal(t, 2, s.Len())

	hasB, sizeRuns := 0, 0
	reactor.Effect(rs, func() error {
		m.Has("b")
		hasB++
		return nil
	})
	reactor.Effect(rs, func() error {
		s.Len()
		sizeRuns++
		return nil
	})

	m.Set("a", 2)
	flush(t, q)
	assert.Equal(t, 1, hasB)

	m.Set("b", 1)
	flush(t, q)
	assert.Equal(t, 2, hasB)
	assert.Equal(t, []string{"a", "b"}, m.Keys())

	m.Delete("b")
	m.Clear()
	flush(t, q)
	assert.Equal(t, 3, hasB)
	assert.Equal(t, 0, m.Len())

	assert.False(t, s.Add("x"))
	assert.True(t, s.Delete("y"))
	s.Clear()
	flush(t, q)
	assert.Equal(t, 2, sizeRuns)
	assert.Empty(t, s.Values())
}

func TestWrap(t *testing.T) {
	rs, _ := newSystem(t)
	rec := reactor.NewRecord(rs, nil)

	assert.Same(t, rec, reactor.Wrap(rs, rec))
	assert.IsType(t, &reactor.Record{}, reactor.Wrap(rs, map[string]any{}))
	assert.IsType(t, &reactor.List[any]{}, reactor.Wrap(rs, []any{}))
	assert.IsType(t, &reactor.Date{}, reactor.Wrap(rs, time.Now()))
	assert.Equal(t, 5, reactor.Wrap(rs, 5))
}

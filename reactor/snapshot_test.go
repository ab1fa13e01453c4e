package reactor_test

import (
	"testing"

	"github.com/delaneyj/reactref/reactor"
	"github.com/stretchr/testify/assert"
)

func TestProjectPrimitive(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, 0)
	snap := reactor.Project(ref)
	assert.Equal(t, 0, snap.Value())

	var rendered []int
	snap.Subscribe(func(v int) {
		rendered = append(rendered, v)
	})

	ref.Set(1)
	ref.Set(2)
	assert.Equal(t, 0, snap.Value(), "snapshot waits for the flush")
	flush(t, q)
	assert.Equal(t, 2, snap.Value())
	assert.Equal(t, []int{2}, rendered)
}

func TestProjectSet(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, reactor.NewSet(rs, 1, 2, 3))
	snap := reactor.Project(ref)
	before := snap.Value()
	assert.NotSame(t, ref.Peek(), before)
	assert.Equal(t, 3, before.Len())

	ref.Peek().Add(4)
	flush(t, q)

	after := snap.Value()
	assert.Equal(t, 4, after.Len())
	assert.NotSame(t, before, after)
	assert.Equal(t, 3, before.Len(), "earlier snapshots are untouched")
}

func TestProjectRecordIsShallow(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{
		"title": "a",
		"tags":  []any{"x"},
	}))
	snap := reactor.Project(ref)
	first := snap.Value()

	ref.Peek().Set("title", "b")
	flush(t, q)
	second := snap.Value()

	assert.NotSame(t, first, second)
	assert.Equal(t, "a", reactor.Field[string](first, "title"))
	assert.Equal(t, "b", reactor.Field[string](second, "title"))
	assert.Same(t,
		reactor.Field[*reactor.List[any]](first, "tags"),
		reactor.Field[*reactor.List[any]](second, "tags"),
		"nested values are shared between snapshots",
	)
}

func TestProjectNestedMutationEmits(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{
		"tags": []any{"x"},
	}))
	snap := reactor.Project(ref)

	reactor.Field[*reactor.List[any]](ref.Peek(), "tags").Append("y")
	flush(t, q)
	assert.Equal(t, 1, snap.Emits())
}

func TestProjectMutatingSnapshotDoesNotFeedBack(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, reactor.NewList(rs, 1, 2))
	snap := reactor.Project(ref)

	snap.Value().Append(3)
	flush(t, q)
	assert.Equal(t, 2, ref.Peek().Len())
	assert.Equal(t, 0, snap.Emits())
}

func TestProjectFuncComposesCells(t *testing.T) {
	rs, q := newSystem(t)
	a := reactor.NewCell(rs, 1)
	b := reactor.NewCell(rs, 2)
	snap := reactor.ProjectFunc(rs, func() []int {
		return []int{a.Get(), b.Get()}
	})
	assert.Equal(t, []int{1, 2}, snap.Value())

	a.Set(10)
	b.Set(20)
	flush(t, q)
	assert.Equal(t, []int{10, 20}, snap.Value())
	assert.Equal(t, 1, snap.Emits())
}

func TestProjectFuncSkipsEqualResults(t *testing.T) {
	rs, q := newSystem(t)
	a := reactor.NewCell(rs, 1)
	b := reactor.NewCell(rs, 2)
	snap := reactor.ProjectFunc(rs, func() int {
		return a.Get() + b.Get()
	})

	a.Set(2)
	b.Set(1)
	flush(t, q)
	assert.Equal(t, 3, snap.Value())
	assert.Equal(t, 0, snap.Emits())
}

func TestProjectStop(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, 0)
	snap := reactor.Project(ref)

	ref.Set(1)
	snap.Stop()
	assert.Equal(t, 0, q.Pending())
	flush(t, q)
	assert.Equal(t, 0, snap.Value())
}

func TestProjectUnsubscribe(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, 0)
	snap := reactor.Project(ref)
	calls := 0
	unsubscribe := snap.Subscribe(func(int) { calls++ })

	ref.Set(1)
	flush(t, q)
	unsubscribe()
	ref.Set(2)
	flush(t, q)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, snap.Value())
}

func TestProjectValueIsDetached(t *testing.T) {
	rs, q := newSystem(t)
	ref := reactor.NewCell(rs, reactor.NewSet(rs, "a"))
	snap := reactor.Project(ref)
	copied := snap.Value()

	reads := 0
	reactor.Effect(rs, func() error {
		copied.Len()
		reads++
		return nil
	})

	ref.Peek().Add("b")
	flush(t, q)
	assert.Equal(t, 1, reads, "readers of an old snapshot are not notified")
	assert.Equal(t, 1, copied.Len())
	assert.Equal(t, 2, snap.Value().Len())

	copied.Add("c")
	flush(t, q)
	assert.Equal(t, 2, reads)
	assert.False(t, ref.Peek().Has("c"))
}

package reactor_test

import (
	"testing"

	"github.com/delaneyj/reactref/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLifecycle(t *testing.T) {
	rs, _ := newSystem(t)
	s := reactor.NewScope(rs)

	assert.ErrorIs(t, s.Run(func() {}), reactor.ErrScopeInactive)
	require.NoError(t, s.Activate())
	assert.ErrorIs(t, s.Activate(), reactor.ErrScopeActivated)
	assert.True(t, s.Active())

	require.NoError(t, s.Deactivate())
	assert.ErrorIs(t, s.Deactivate(), reactor.ErrScopeDisposed)
	assert.ErrorIs(t, s.Activate(), reactor.ErrScopeActivated)
	assert.False(t, s.Active())
}

func TestScopeTearsDownEverything(t *testing.T) {
	rs, q := newSystem(t)
	parent := reactor.NewCell(rs, reactor.NewRecord(rs, map[string]any{"value": 0}))
	s := reactor.NewScope(rs)
	require.NoError(t, s.Activate())

	effectCalls := 0
	var lens *reactor.Cell[int]
	var snap *reactor.Snapshot[*reactor.Record]
	require.NoError(t, s.Run(func() {
		reactor.Effect(rs, func() error {
			reactor.Field[int](parent.Get(), "value")
			effectCalls++
			return nil
		})
		lens = reactor.DeriveLens(parent, func(ref *reactor.Cell[*reactor.Record]) int {
			return reactor.Field[int](ref.Get(), "value")
		})
		snap = reactor.Project(parent)
	}))

	parent.Peek().Set("value", 1)
	assert.Equal(t, 1, lens.Peek())
	assert.Equal(t, 2, q.Pending())

	require.NoError(t, s.Deactivate())
	assert.Equal(t, 0, q.Pending())

	parent.Peek().Set("value", 100)
	flush(t, q)
	assert.Equal(t, 1, effectCalls)
	assert.Equal(t, 1, lens.Peek(), "lens keeps its last value")
	assert.Equal(t, 0, reactor.Field[int](snap.Value(), "value"))
}

func TestScopeCleanupOrderAndNesting(t *testing.T) {
	rs, _ := newSystem(t)
	var order []string

	outer := reactor.NewScope(rs)
	require.NoError(t, outer.Activate())
	require.NoError(t, outer.Run(func() {
		outer.OnCleanup(func() { order = append(order, "first") })
		inner := reactor.NewScope(rs)
		require.NoError(t, inner.Activate())
		inner.OnCleanup(func() { order = append(order, "inner") })
		outer.OnCleanup(func() { order = append(order, "last") })
	}))

	require.NoError(t, outer.Deactivate())
	assert.Equal(t, []string{"last", "inner", "first"}, order)

	ran := false
	outer.OnCleanup(func() { ran = true })
	assert.True(t, ran)
}

func TestEffectScope(t *testing.T) {
	rs, q := newSystem(t)
	count := reactor.NewCell(rs, 1)
	var seen []int

	stopScope := reactor.EffectScope(rs, func() error {
		reactor.Effect(rs, func() error {
			seen = append(seen, count.Get())
			return nil
		})
		count.Set(2)
		return nil
	})
	flush(t, q)
	assert.Equal(t, []int{1, 2}, seen)

	stopScope()
	count.Set(3)
	flush(t, q)
	assert.Equal(t, []int{1, 2}, seen)
}

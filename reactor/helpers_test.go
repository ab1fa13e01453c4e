package reactor_test

import (
	"testing"
	"time"

	"github.com/delaneyj/reactref/pkg/schedule"
	"github.com/delaneyj/reactref/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T) (*reactor.ReactiveSystem, *schedule.ManualQueue) {
	t.Helper()
	q := schedule.NewManualQueue()
	rs := reactor.CreateReactiveSystem(func(from reactor.SignalAware, err error) {
		assert.FailNow(t, err.Error())
	}, reactor.WithScheduler(q))
	return rs, q
}

func flush(t *testing.T, q *schedule.ManualQueue) {
	t.Helper()
	_, err := q.Flush()
	require.NoError(t, err)
}

var time0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const timeHour = time.Hour

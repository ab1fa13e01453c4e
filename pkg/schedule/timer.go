package schedule

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type timerToken struct {
	timer     *time.Timer
	cancelled atomic.Bool
	fired     atomic.Bool
}

func (t *timerToken) Cancel() bool {
	if t.cancelled.Swap(true) {
		return false
	}
	t.timer.Stop()
	return !t.fired.Load()
}

// TimerQueue schedules each task on its own timer and executes all tasks on
// the goroutine running Run. Code that touches reactive state must run on that
// goroutine too, through Do.
type TimerQueue struct {
	delay  time.Duration
	logger zerolog.Logger

	tasks   chan func()
	done    chan struct{}
	stop    sync.Once
	running atomic.Bool
}

type TimerOption func(*TimerQueue)

// WithDelay sets the timer delay. The default of zero still defers the task
// to a later turn of the loop.
func WithDelay(d time.Duration) TimerOption {
	return func(q *TimerQueue) {
		q.delay = d
	}
}

func WithLogger(logger zerolog.Logger) TimerOption {
	return func(q *TimerQueue) {
		q.logger = logger
	}
}

func NewTimerQueue(opts ...TimerOption) *TimerQueue {
	q := &TimerQueue{
		logger: zerolog.Nop(),
		tasks:  make(chan func(), 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *TimerQueue) Schedule(task func()) Token {
	t := &timerToken{}
	t.timer = time.AfterFunc(q.delay, func() {
		q.post(func() {
			if t.cancelled.Load() {
				return
			}
			t.fired.Store(true)
			task()
		})
	})
	return t
}

func (q *TimerQueue) post(fn func()) bool {
	select {
	case q.tasks <- fn:
		return true
	case <-q.done:
		return false
	}
}

// Run executes tasks until ctx is cancelled. Only one Run may be active.
func (q *TimerQueue) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return nil
	}
	defer q.stop.Do(func() { close(q.done) })

	q.logger.Debug().Dur("delay", q.delay).Msg("timer queue started")
	for {
		select {
		case <-ctx.Done():
			q.logger.Debug().Msg("timer queue stopped")
			return ctx.Err()
		case task := <-q.tasks:
			task()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return. Timers armed
// by fn fire no earlier than the loop's next turn.
func (q *TimerQueue) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case q.tasks <- wrapped:
	case <-q.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-q.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

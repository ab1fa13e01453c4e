package reactor

import (
	"github.com/delaneyj/reactref/pkg/schedule"
	"github.com/rs/zerolog"
)

type OnErrorFunc func(from SignalAware, err error)

// Stats receives scheduling events. Implementations must be cheap; they are
// called on every trigger.
type Stats interface {
	Scheduled(kind Kind)
	Coalesced(kind Kind)
	Flushed(kind Kind)
	Cancelled(kind Kind)
}

type noopStats struct{}

func (noopStats) Scheduled(Kind) {}
func (noopStats) Coalesced(Kind) {}
func (noopStats) Flushed(Kind)   {}
func (noopStats) Cancelled(Kind) {}

// ReactiveSystem is one independent runtime. It is single threaded: every
// read, write and flush of the cells it owns must happen on one goroutine,
// e.g. the loop of a schedule.TimerQueue.
type ReactiveSystem struct {
	lastID      uint64
	batchDepth  int
	activeSub   *subscriber
	activeScope *Scope
	batched     []*subscriber
	pauseStack  []*subscriber

	onError   OnErrorFunc
	scheduler schedule.Scheduler
	logger    zerolog.Logger
	stats     Stats
}

type Option func(*ReactiveSystem)

// WithScheduler sets where deferred flushes run. The default is a
// schedule.ManualQueue, which only flushes when drained.
func WithScheduler(s schedule.Scheduler) Option {
	return func(rs *ReactiveSystem) {
		rs.scheduler = s
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

func WithStats(stats Stats) Option {
	return func(rs *ReactiveSystem) {
		rs.stats = stats
	}
}

func CreateReactiveSystem(onError OnErrorFunc, opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		onError:   onError,
		scheduler: schedule.NewManualQueue(),
		logger:    zerolog.Nop(),
		stats:     noopStats{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *ReactiveSystem) Scheduler() schedule.Scheduler {
	return rs.scheduler
}

func (rs *ReactiveSystem) nextID() uint64 {
	rs.lastID++
	return rs.lastID
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.processBatchedNotifications()
	}
}

// Batch holds back synchronous watchers until fn returns, then notifies each
// of them once.
func (rs *ReactiveSystem) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untrack runs fn without recording any of its reads.
func (rs *ReactiveSystem) Untrack(fn func()) {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	fn()
}

func (rs *ReactiveSystem) track(n *node, key any) {
	if rs.activeSub == nil {
		return
	}
	rs.activeSub.track(n, key)
}

func (rs *ReactiveSystem) queueBatched(s *subscriber) {
	if s.flags&fBatched != 0 {
		return
	}
	s.flags |= fBatched
	rs.batched = append(rs.batched, s)
}

func (rs *ReactiveSystem) processBatchedNotifications() {
	var queued []*subscriber
	next := 0
	defer func() {
		// a notification panicked; the rest stay queued for the next drain
		if next < len(queued) {
			rs.batched = append(queued[next:], rs.batched...)
		}
	}()

	for len(rs.batched) > 0 {
		queued, next = rs.batched, 0
		rs.batched = nil
		for next < len(queued) {
			s := queued[next]
			next++
			s.flags &^= fBatched
			s.notify()
		}
	}
}

// adopt ties a teardown to the scope currently running, if any.
func (rs *ReactiveSystem) adopt(stop StopFunc) {
	if rs.activeScope != nil {
		rs.activeScope.OnCleanup(stop)
	}
}

func (rs *ReactiveSystem) reportError(from SignalAware, err error) {
	if rs.onError != nil {
		rs.onError(from, err)
		return
	}
	rs.logger.Error().Err(err).Msg("unhandled reactive error")
}

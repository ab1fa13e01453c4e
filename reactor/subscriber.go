package reactor

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

func (rs *ReactiveSystem) newSubscriber(kind Kind, ref SignalAware) *subscriber {
	return &subscriber{
		rs:   rs,
		id:   rs.nextID(),
		kind: kind,
		ref:  ref,
		deps: mapset.NewThreadUnsafeSet[edge](),
	}
}

func (s *subscriber) track(n *node, key any) {
	if s.collecting == nil {
		return
	}
	if s.forbid == n {
		s.rs.reportError(s.ref, fmt.Errorf("%w: node %d", ErrLensCycle, n.id))
		return
	}
	e := edge{dep: n, key: key}
	if s.collecting.Add(e) {
		n.subscribe(key, s)
	}
}

// run executes fn as the active subscriber. Dependencies are collected into a
// fresh set; edges from the previous run that were not read again are dropped
// once fn returns.
func (s *subscriber) run(fn func()) {
	rs := s.rs
	prevSub := rs.activeSub
	rs.activeSub = s
	s.flags |= fRunning
	s.collecting = mapset.NewThreadUnsafeSet[edge]()

	defer func() {
		rs.activeSub = prevSub
		s.flags &^= fRunning
		next := s.collecting
		s.collecting = nil

		if s.flags&fDisposed != 0 {
			// stopped from inside its own run
			for _, e := range next.ToSlice() {
				e.dep.unsubscribe(e.key, s)
			}
			return
		}
		for _, e := range s.deps.Difference(next).ToSlice() {
			e.dep.unsubscribe(e.key, s)
		}
		s.deps = next
	}()

	fn()
}

// notify is called synchronously by a write to one of the dependencies.
// A subscriber never re-triggers itself while it is running.
func (s *subscriber) notify() {
	if s.flags&(fDisposed|fRunning) != 0 {
		return
	}
	if s.flags&fSync != 0 {
		if s.rs.batchDepth > 0 {
			s.rs.queueBatched(s)
			return
		}
		s.job()
		return
	}
	s.schedule()
}

// schedule arms a deferred flush unless one is already pending, in which case
// the trigger is absorbed by it.
func (s *subscriber) schedule() {
	rs := s.rs
	if s.pending != nil {
		rs.stats.Coalesced(s.kind)
		rs.logger.Debug().
			Str("kind", string(s.kind)).
			Uint64("sub", s.id).
			Uint64("generation", s.generation).
			Msg("flush coalesced")
		return
	}

	s.generation++
	gen := s.generation
	s.pending = rs.scheduler.Schedule(func() {
		s.flush(gen)
	})
	rs.stats.Scheduled(s.kind)
	rs.logger.Debug().
		Str("kind", string(s.kind)).
		Uint64("sub", s.id).
		Uint64("generation", gen).
		Msg("flush scheduled")
}

func (s *subscriber) flush(gen uint64) {
	if s.flags&fDisposed != 0 || gen != s.generation {
		return
	}
	s.pending = nil
	s.rs.stats.Flushed(s.kind)
	s.job()
}

func (s *subscriber) dispose() {
	if s.flags&fDisposed != 0 {
		return
	}
	s.flags |= fDisposed

	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
		s.rs.stats.Cancelled(s.kind)
		s.rs.logger.Debug().
			Str("kind", string(s.kind)).
			Uint64("sub", s.id).
			Uint64("generation", s.generation).
			Msg("pending flush cancelled")
	}

	for _, e := range s.deps.ToSlice() {
		e.dep.unsubscribe(e.key, s)
	}
	s.deps.Clear()
}

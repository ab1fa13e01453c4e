package reactor

// EffectRunner is a computation re-run by the scheduler whenever something it
// read changes.
type EffectRunner struct {
	sub *subscriber
	fn  ErrFn
}

func (e *EffectRunner) isSignalAware() {}

// Effect runs fn once right away to capture its dependencies, then again
// after each burst of writes to them. Any number of writes made before the
// flush fires result in a single re-run that sees the final state.
//
// Writes fn makes to its own dependencies while running do not re-trigger it.
// Errors returned by fn are reported to the system's OnErrorFunc.
func Effect(rs *ReactiveSystem, fn ErrFn) StopFunc {
	e := &EffectRunner{fn: fn}
	e.sub = rs.newSubscriber(KindEffect, e)
	e.sub.job = e.run

	stop := StopFunc(e.sub.dispose)
	rs.adopt(stop)
	e.run()
	return stop
}

func (e *EffectRunner) run() {
	var err error
	e.sub.run(func() {
		err = e.fn()
	})
	if err != nil {
		e.sub.rs.reportError(e, err)
	}
}

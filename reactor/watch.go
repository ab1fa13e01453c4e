package reactor

import "github.com/delaneyj/reactref/pkg/shallow"

type watchConfig struct {
	deep      bool
	sync      bool
	immediate bool
}

type WatchOption func(*watchConfig)

// WatchDeep reads the whole graph reachable from the source's result, so a
// nested mutation counts as a change.
func WatchDeep() WatchOption {
	return func(c *watchConfig) {
		c.deep = true
	}
}

// WatchSync runs the callback inside the write that caused the change, or at
// the end of the enclosing Batch, instead of on the next flush.
func WatchSync() WatchOption {
	return func(c *watchConfig) {
		c.sync = true
	}
}

// WatchImmediate calls the callback once with the initial value.
func WatchImmediate() WatchOption {
	return func(c *watchConfig) {
		c.immediate = true
	}
}

type watcher[T any] struct {
	sub    *subscriber
	source func() T
	cb     func(newValue, oldValue T)

	value       T
	fingerprint uint64
}

func (w *watcher[T]) isSignalAware() {}

// Watch calls cb with the new and previous result of source whenever a
// dependency of source changes and the result is different.
func Watch[T any](rs *ReactiveSystem, source func() T, cb func(newValue, oldValue T), opts ...WatchOption) StopFunc {
	cfg := watchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	w := newWatcher(rs, KindWatch, source, cb, cfg, nil)
	stop := StopFunc(w.sub.dispose)
	rs.adopt(stop)
	return stop
}

func newWatcher[T any](
	rs *ReactiveSystem,
	kind Kind,
	source func() T,
	cb func(newValue, oldValue T),
	cfg watchConfig,
	forbid *node,
) *watcher[T] {
	w := &watcher[T]{
		source: source,
		cb:     cb,
	}
	w.sub = rs.newSubscriber(kind, w)
	w.sub.forbid = forbid
	w.sub.job = w.job
	if cfg.deep {
		w.sub.flags |= fDeep
	}
	if cfg.sync {
		w.sub.flags |= fSync
	}

	w.value, w.fingerprint = w.evaluate()
	if cfg.immediate {
		var zero T
		rs.Untrack(func() {
			w.cb(w.value, zero)
		})
	}
	return w
}

func (w *watcher[T]) evaluate() (v T, fingerprint uint64) {
	w.sub.run(func() {
		v = w.source()
		if w.sub.flags&fDeep != 0 {
			fingerprint = traverse(any(v))
		}
	})
	return v, fingerprint
}

func (w *watcher[T]) job() {
	v, fingerprint := w.evaluate()
	if shallow.Same(any(v), any(w.value)) && fingerprint == w.fingerprint {
		return
	}
	old := w.value
	w.value, w.fingerprint = v, fingerprint
	w.sub.rs.Untrack(func() {
		w.cb(v, old)
	})
}

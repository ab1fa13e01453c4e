package reactor

type scopeState uint8

const (
	scopeIdle scopeState = iota
	scopeActive
	scopeDisposed
)

// Scope is the lifetime of a host component instance. Effects, lenses and
// snapshots created while the scope runs are torn down when it deactivates.
// The host activates and deactivates it exactly once each.
type Scope struct {
	rs       *ReactiveSystem
	id       uint64
	state    scopeState
	cleanups []func()
}

func (s *Scope) isSignalAware() {}

// NewScope creates a scope. A scope created inside a running scope is
// deactivated with it.
func NewScope(rs *ReactiveSystem) *Scope {
	s := &Scope{
		rs: rs,
		id: rs.nextID(),
	}
	if parent := rs.activeScope; parent != nil {
		parent.OnCleanup(func() {
			_ = s.Deactivate()
		})
	}
	return s
}

func (s *Scope) Activate() error {
	if s.state != scopeIdle {
		return ErrScopeActivated
	}
	s.state = scopeActive
	s.rs.logger.Debug().Uint64("scope", s.id).Msg("scope activated")
	return nil
}

func (s *Scope) Active() bool {
	return s.state == scopeActive
}

// Run makes s the current scope while fn runs.
func (s *Scope) Run(fn func()) error {
	if s.state != scopeActive {
		return ErrScopeInactive
	}
	prev := s.rs.activeScope
	s.rs.activeScope = s
	defer func() {
		s.rs.activeScope = prev
	}()
	fn()
	return nil
}

// OnCleanup registers fn to run on deactivation. On a deactivated scope fn
// runs right away.
func (s *Scope) OnCleanup(fn func()) {
	if s.state == scopeDisposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Deactivate runs the registered teardowns, newest first.
func (s *Scope) Deactivate() error {
	if s.state == scopeDisposed {
		return ErrScopeDisposed
	}
	s.state = scopeDisposed

	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	s.rs.logger.Debug().
		Uint64("scope", s.id).
		Int("cleanups", len(cleanups)).
		Msg("scope deactivated")
	return nil
}

// EffectScope activates a scope, runs scopedFn in it and returns the
// function that deactivates it.
func EffectScope(rs *ReactiveSystem, scopedFn ErrFn) (stopScope StopFunc) {
	s := NewScope(rs)
	_ = s.Activate()
	_ = s.Run(func() {
		if err := scopedFn(); err != nil {
			rs.reportError(s, err)
		}
	})
	return func() {
		_ = s.Deactivate()
	}
}

package reactor

import "errors"

var (
	ErrLensCycle      = errors.New("reactor: selector read the lens it derives")
	ErrScopeActivated = errors.New("reactor: scope already activated")
	ErrScopeInactive  = errors.New("reactor: scope not active")
	ErrScopeDisposed  = errors.New("reactor: scope already deactivated")
)

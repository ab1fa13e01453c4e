// Package schedule provides the run-later-with-cancellation primitive used to
// defer reactive flushes past the end of the current execution frame.
//
// Two implementations are provided. ManualQueue holds tasks until the caller
// drains it, which makes tests deterministic. TimerQueue arms a real timer per
// task and runs every task on a single event loop goroutine, so reactive code
// never executes concurrently.
package schedule

import "errors"

var (
	// ErrFlushLimit is returned when draining a queue keeps producing new tasks.
	ErrFlushLimit = errors.New("schedule: flush did not settle")
	// ErrStopped is returned when work is submitted to a loop that is not running.
	ErrStopped = errors.New("schedule: queue stopped")
)

// Scheduler runs a task at some later turn.
type Scheduler interface {
	Schedule(task func()) Token
}

// Token is the handle of a single scheduled task.
type Token interface {
	// Cancel prevents the task from running. It reports whether the task was
	// still pending.
	Cancel() bool
}

package schedule

import "fmt"

const defaultFlushRounds = 1000

type manualToken struct {
	task      func()
	cancelled bool
	done      bool
}

func (t *manualToken) Cancel() bool {
	if t.cancelled || t.done {
		return false
	}
	t.cancelled = true
	return true
}

// ManualQueue is a Scheduler whose tasks only run when the owner drains it.
// It is not safe for concurrent use.
type ManualQueue struct {
	queue []*manualToken
}

func NewManualQueue() *ManualQueue {
	return &ManualQueue{}
}

func (q *ManualQueue) Schedule(task func()) Token {
	t := &manualToken{task: task}
	q.queue = append(q.queue, t)
	return t
}

// Pending returns the number of queued tasks that have not been cancelled.
func (q *ManualQueue) Pending() int {
	n := 0
	for _, t := range q.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// RunPending runs the tasks queued at the time of the call. Tasks scheduled
// while they run stay queued. It returns the number of tasks executed.
func (q *ManualQueue) RunPending() int {
	batch := q.queue
	q.queue = nil

	ran := 0
	for _, t := range batch {
		if t.cancelled {
			continue
		}
		t.done = true
		t.task()
		ran++
	}
	return ran
}

// Flush runs tasks until the queue is empty.
func (q *ManualQueue) Flush() (int, error) {
	total := 0
	for round := 0; len(q.queue) > 0; round++ {
		if round == defaultFlushRounds {
			return total, fmt.Errorf("%w after %d rounds", ErrFlushLimit, round)
		}
		total += q.RunPending()
	}
	return total, nil
}

// Package sched provides the task scheduler that drives timed puzzle
// transitions.
//
// Tasks never run on their own goroutine: a Clock only runs due tasks
// while its owner calls Advance or RunUntilIdle, so every callback shares
// the caller's goroutine.
package sched

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback.
type Task interface {
	// Cancel stops the task if it has not run yet. It returns true if the
	// call prevented the task from running.
	Cancel() bool
	// Done reports whether the task has run.
	Done() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

type taskState int

const (
	taskPending taskState = iota
	taskDone
	taskCancelled
)

type task struct {
	clock *Clock
	due   time.Duration
	seq   uint64
	fn    func()
	state taskState
	index int
}

func (t *task) Cancel() bool {
	if t.state != taskPending {
		return false
	}
	t.state = taskCancelled
	heap.Remove(&t.clock.queue, t.index)
	return true
}

func (t *task) Done() bool {
	return t.state == taskDone
}

// taskQueue orders tasks by due time, then by scheduling order.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Clock is a virtual frame clock. Time only moves when the owner advances
// it, which makes timed transitions deterministic.
type Clock struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of tasks waiting to run.
func (c *Clock) Pending() int {
	return len(c.queue)
}

// After schedules fn to run once the clock has advanced by d.
// A non-positive delay runs on the next Advance.
func (c *Clock) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &task{clock: c, due: c.now + d, seq: c.seq, fn: fn}
	heap.Push(&c.queue, t)
	return t
}

// Advance moves the clock forward by d and runs every task that falls
// due, including tasks scheduled by those tasks. It returns the number
// of tasks run.
func (c *Clock) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	target := c.now + d
	ran := 0
	for len(c.queue) > 0 && c.queue[0].due <= target {
		c.run(heap.Pop(&c.queue).(*task))
		ran++
	}
	c.now = target
	return ran
}

// RunUntilIdle jumps from task to task until nothing is pending.
func (c *Clock) RunUntilIdle() int {
	ran := 0
	for len(c.queue) > 0 {
		c.run(heap.Pop(&c.queue).(*task))
		ran++
	}
	return ran
}

func (c *Clock) run(t *task) {
	if t.due > c.now {
		c.now = t.due
	}
	t.state = taskDone
	t.fn()
}

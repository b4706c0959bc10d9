package sim

import (
	"container/heap"
	"fmt"
)

// Tick is simulated time, interpreted as milliseconds. It is monotonically
// non-decreasing and has no relation to wall-clock time.
type Tick int64

// EventID identifies a scheduled event. IDs come from a strictly
// increasing counter assigned at scheduling time, so they double as the
// deterministic FIFO tie-break among events that share a tick.
type EventID uint64

type scheduledEvent struct {
	time Tick
	id   EventID
	fn   func()
}

// eventQueue orders events by (time, id).
// See canonical Golang example here: https://pkg.go.dev/container/heap
type eventQueue []*scheduledEvent

func (eq eventQueue) Len() int { return len(eq) }

func (eq eventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].id < eq[j].id
}

func (eq eventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *eventQueue) Push(x any) {
	*eq = append(*eq, x.(*scheduledEvent))
}

func (eq *eventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Scheduler owns simulated time and the time-ordered queue of pending
// events. It is the single driver of all activity: node processes and the
// medium run only as continuations fired from Run, one at a time, never
// preempted mid-step.
type Scheduler struct {
	clock  Tick
	nextID EventID
	queue  eventQueue
}

// NewScheduler creates a scheduler with the clock at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(eventQueue, 0)}
}

// Now returns the current simulated time.
func (s *Scheduler) Now() Tick { return s.clock }

// Pending reports the number of events still queued.
func (s *Scheduler) Pending() int { return s.queue.Len() }

// ScheduleAfter enqueues fn to run delay ticks from now and returns its
// event id. A zero delay is valid: the event runs in the current tick,
// strictly after every event already queued for this tick. That ordering
// is what lets the medium defer resolution until all same-tick sends are
// buffered, without an explicit phase barrier. A negative delay is a
// caller bug and fails with ErrInvalidDelay.
func (s *Scheduler) ScheduleAfter(delay Tick, fn func()) (EventID, error) {
	if delay < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}
	ev := &scheduledEvent{time: s.clock + delay, id: s.nextID, fn: fn}
	s.nextID++
	heap.Push(&s.queue, ev)
	return ev.id, nil
}

// mustAfter is ScheduleAfter for kernel paths whose delays are validated
// configuration values and can never be negative.
func (s *Scheduler) mustAfter(delay Tick, fn func()) {
	if _, err := s.ScheduleAfter(delay, fn); err != nil {
		panic(err)
	}
}

// Run drains the event queue in (time, id) order, advancing the clock to
// each event's tick before firing it. The run ends when no events remain;
// exhausting the queue is the experiment's termination condition.
func (s *Scheduler) Run() {
	for s.queue.Len() > 0 {
		ev := heap.Pop(&s.queue).(*scheduledEvent)
		s.clock = ev.time
		ev.fn()
	}
}

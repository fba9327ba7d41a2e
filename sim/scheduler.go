package sim

import (
	"container/heap"
	"sync"
)

// EventScheduler is the time-ordered set of pending events shared by every
// worker. It does not own a lock: all methods must be called while holding the
// sync.Locker passed to NewEventScheduler, which is the simulator's single
// shared-state mutex. Waiters sleep on a condition variable bound to that lock
// and are woken on every Schedule, Broadcast and Stop.
type EventScheduler struct {
	cond    *sync.Cond
	events  EventHeap
	nextSeq uint64
	stopped bool
}

// NewEventScheduler creates an empty scheduler whose waiters use l.
func NewEventScheduler(l sync.Locker) *EventScheduler {
	return &EventScheduler{
		cond:   sync.NewCond(l),
		events: make(EventHeap, 0),
	}
}

// Schedule inserts ev in O(log n) and wakes all waiters.
func (s *EventScheduler) Schedule(ev Event) {
	ev.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.events, ev)
	s.cond.Broadcast()
}

// Len returns the number of pending events.
func (s *EventScheduler) Len() int {
	return s.events.Len()
}

// Peek returns the earliest pending event without removing it.
func (s *EventScheduler) Peek() (Event, bool) {
	if s.events.Len() == 0 {
		return Event{}, false
	}
	return s.events[0], true
}

// PopMin removes and returns the earliest pending event.
// Panics if the scheduler is empty; callers wait with Await first.
func (s *EventScheduler) PopMin() Event {
	if s.events.Len() == 0 {
		panic("EventScheduler.PopMin: no pending events")
	}
	return heap.Pop(&s.events).(Event)
}

// Await blocks until ready reports true or Stop has been called, re-checking
// both after every wake-up. It returns false if the scheduler was stopped.
func (s *EventScheduler) Await(ready func() bool) bool {
	for !s.stopped && !ready() {
		s.cond.Wait()
	}
	return !s.stopped
}

// Broadcast wakes every waiter so it re-evaluates its predicate.
func (s *EventScheduler) Broadcast() {
	s.cond.Broadcast()
}

// Stop raises the stop signal and wakes every waiter. Idempotent.
func (s *EventScheduler) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	s.cond.Broadcast()
}

// Stopped reports whether Stop has been called.
func (s *EventScheduler) Stopped() bool {
	return s.stopped
}

// Package sim provides the discrete-event engine for M/c/c queue simulation.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go and event_queue.go: arrival/departure events and their ordering
//   - scheduler.go: the shared, blocking, time-ordered event scheduler
//   - simulator.go: the worker pool, arrival/departure handlers, and warm-up cutover
//   - metrics.go: time-weighted statistics and final results
//
// # Concurrency
//
// A Simulator runs one worker goroutine per server plus the caller's goroutine
// as coordinator. All shared state (scheduler, clock, servers, ledger,
// statistics, stop flag) is guarded by a single mutex with one condition
// variable. A worker dequeues only while no other handler is in flight, so
// events are processed strictly in dequeue order and seeded runs are
// reproducible bit for bit.
//
// # Sub-packages
//   - sim/analytic: closed-form M/M/c (Erlang-C) predictions
//   - sim/trace: opt-in per-event trace records
//   - sim/plot: PNG rendering of traced queue lengths
package sim

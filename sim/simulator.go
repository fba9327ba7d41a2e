// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mmc-sim/sim/trace"
)

// QueueSimulator is the capability shared by queue models: run until a number
// of post-warm-up customers has been served, then report results.
type QueueSimulator interface {
	Run(ctx context.Context, targetServed int) error
	Results() (Results, error)
}

var _ QueueSimulator = (*Simulator)(nil)

// WarmUpState records whether the transient period has ended.
// Complete flips from false to true exactly once.
type WarmUpState struct {
	Threshold float64
	Complete  bool
	At        float64 // simulated time the transition fired
}

// Simulator is an M/c/c discrete-event simulation. One worker goroutine per
// server drains a shared EventScheduler; every piece of shared state below mu
// is read and written only while holding mu.
type Simulator struct {
	cfg Config
	err error // non-nil: construction failed, simulator is inert
	key SimulationKey
	log *logrus.Entry

	mu        sync.Mutex
	scheduler *EventScheduler
	clock     SimulationClock
	servers   *ServerPool
	ledger    *CustomerLedger
	stats     StatisticsCollector
	warmUp    WarmUpState
	arrivals  *ExponentialGenerator
	service   *ExponentialGenerator
	trace     *trace.SimulationTrace

	inFlight bool   // a handler is executing with mu released
	events   uint64 // events dequeued
	target   int
	started  bool
	limitHit bool
}

// NewSimulator validates cfg and seeds the first arrival.
//
// On invalid configuration it returns an inert simulator together with an
// error wrapping ErrConfiguration: Run on it is a no-op and Results always
// fails, so callers holding only the QueueSimulator still see the failure.
func NewSimulator(cfg Config) (*Simulator, error) {
	log := logrus.WithField("run", cfg.RunID)
	if err := cfg.Validate(); err != nil {
		log.Errorf("Rejecting simulation configuration: %v", err)
		return &Simulator{cfg: cfg, err: err, log: log}, err
	}

	key := RandomSimulationKey()
	if cfg.Seed != nil {
		key = NewSimulationKey(*cfg.Seed)
	}
	rng := NewPartitionedRNG(key)

	s := &Simulator{
		cfg:      cfg,
		key:      key,
		log:      log.WithField("seed", int64(key)),
		servers:  NewServerPool(cfg.Servers),
		ledger:   &CustomerLedger{},
		warmUp:   WarmUpState{Threshold: cfg.WarmUp},
		arrivals: NewExponentialGenerator(cfg.ArrivalRate, rng.ForSubsystem(SubsystemArrivals)),
		service:  NewExponentialGenerator(cfg.ServiceRate, rng.ForSubsystem(SubsystemService)),
	}
	s.scheduler = NewEventScheduler(&s.mu)
	if cfg.Trace.Enabled() {
		s.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: cfg.Trace})
	}

	s.scheduler.Schedule(Event{Time: s.arrivals.Next(), Kind: Arrival})
	return s, nil
}

// Run starts one worker per server and blocks until targetServed customers
// have departed after warm-up, ctx is cancelled, or MaxEvents is reached.
// Every worker has exited when Run returns.
func (s *Simulator) Run(ctx context.Context, targetServed int) error {
	if s.err != nil {
		return s.err
	}
	if targetServed < 1 {
		return fmt.Errorf("target served customers must be at least 1, got %d: %w", targetServed, ErrConfiguration)
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyRun
	}
	s.started = true
	s.target = targetServed
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.stop()
		return err
	}

	s.log.Infof("Starting M/M/%d simulation: lambda=%v mu=%v warm-up=%v target=%d",
		s.cfg.Servers, s.cfg.ArrivalRate, s.cfg.ServiceRate, s.cfg.WarmUp, targetServed)

	var wg sync.WaitGroup
	for id := range s.cfg.Servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(id)
		}()
	}
	cancelWatch := context.AfterFunc(ctx, s.stop)
	defer cancelWatch()

	// Coordinator: wait for the target, then release every worker.
	s.mu.Lock()
	s.scheduler.Await(func() bool { return s.stats.Served >= s.target })
	s.scheduler.Stop()
	s.mu.Unlock()

	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Infof("[t=%.4f] Simulation ended after %d events, %d customers served post warm-up",
		s.clock.Now, s.events, s.stats.Served)

	switch {
	case s.stats.Served >= s.target:
		return nil
	case s.limitHit:
		return fmt.Errorf("stopped after %d events with %d/%d customers served: %w",
			s.events, s.stats.Served, s.target, ErrEventLimit)
	default:
		return ctx.Err()
	}
}

// stop raises the stop signal. Safe to call any number of times.
func (s *Simulator) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduler.Stop()
}

// worker repeatedly waits for an event, dequeues it, runs its handler with the
// lock released, then checks the termination and warm-up conditions.
func (s *Simulator) worker(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if !s.scheduler.Await(s.canDequeue) {
			s.log.Debugf("worker %d stopping", id)
			return
		}
		ev := s.dequeue()
		s.inFlight = true
		s.mu.Unlock()

		s.dispatch(ev)

		s.mu.Lock()
		s.inFlight = false
		s.afterEvent()
		s.scheduler.Broadcast()
	}
}

// canDequeue is the worker wait predicate. Holding off while a handler is in
// flight keeps processing order equal to dequeue order.
func (s *Simulator) canDequeue() bool {
	return s.scheduler.Len() > 0 && !s.inFlight
}

// dequeue integrates statistics up to the next event, pops it and advances
// the clock as one step. Caller holds mu.
func (s *Simulator) dequeue() Event {
	next, _ := s.scheduler.Peek()
	elapsed := s.clock.Advance(next.Time)
	if s.warmUp.Complete {
		s.stats.Integrate(elapsed, s.ledger.Len(), s.ledger.Waiting(), s.servers.Busy())
	}
	ev := s.scheduler.PopMin()
	s.events++

	if s.trace != nil {
		s.trace.RecordEvent(trace.EventRecord{
			Time:     ev.Time,
			Kind:     ev.Kind.String(),
			Busy:     s.servers.Busy(),
			InSystem: s.ledger.Len(),
			Waiting:  s.ledger.Waiting(),
		})
	}
	s.log.Tracef("[t=%.4f] Executing %s (busy=%d, in-system=%d)", ev.Time, ev.Kind, s.servers.Busy(), s.ledger.Len())
	return ev
}

func (s *Simulator) dispatch(ev Event) {
	switch ev.Kind {
	case Arrival:
		s.handleArrival()
	case Departure:
		s.handleDeparture(ev)
	default:
		panic(fmt.Sprintf("Simulator.dispatch: unknown event %v", ev))
	}
}

// handleArrival records the customer, schedules the next arrival, and starts
// service if a server is idle.
func (s *Simulator) handleArrival() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now
	s.ledger.Record(now)
	s.scheduler.Schedule(Event{Time: now + s.arrivals.Next(), Kind: Arrival})
	if s.servers.HasIdle() {
		s.beginService(now)
	}
}

// handleDeparture frees the server, accounts for the departing customer, and
// admits the next waiting customer.
func (s *Simulator) handleDeparture(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now
	s.servers.Release()
	s.ledger.Discharge(ev.Customer)
	s.stats.RecordDeparture(ev.Customer, now, s.warmUp.Complete)
	if s.servers.HasIdle() && s.ledger.Waiting() > 0 {
		s.beginService(now)
	}
}

// beginService admits the oldest waiting customer and schedules its
// departure. Caller holds mu.
func (s *Simulator) beginService(now float64) {
	rec, ok := s.ledger.Admit(now)
	if !ok {
		return
	}
	s.servers.Acquire()
	s.scheduler.Schedule(Event{
		Time:     now + s.service.Next(),
		Kind:     Departure,
		Customer: rec,
	})
}

// afterEvent checks the served target, the warm-up threshold and the event
// budget. Caller holds mu.
func (s *Simulator) afterEvent() {
	if s.stats.Served >= s.target {
		s.scheduler.Stop()
	}

	if !s.warmUp.Complete && s.clock.Now >= s.warmUp.Threshold {
		s.stats.Reset()
		s.warmUp.Complete = true
		s.warmUp.At = s.clock.Now
		if s.trace != nil {
			s.trace.RecordWarmUp(s.stats.Snapshot(s.clock.Now))
		}
		s.log.Infof("[t=%.4f] Warm-up complete after %d events; statistics reset", s.clock.Now, s.events)
	}

	if s.cfg.MaxEvents > 0 && s.events >= s.cfg.MaxEvents && !s.scheduler.Stopped() {
		s.limitHit = true
		s.scheduler.Stop()
	}
}

// Results returns the post-warm-up statistics. It fails with the
// construction error for an inert simulator and with ErrNotReady when
// warm-up has not completed or nothing has been measured since.
func (s *Simulator) Results() (Results, error) {
	if s.err != nil {
		return Results{}, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.warmUp.Complete {
		return Results{}, fmt.Errorf("warm-up threshold %v not reached (clock at %v): %w",
			s.warmUp.Threshold, s.clock.Now, ErrNotReady)
	}
	elapsed := s.clock.Now - s.warmUp.At
	if elapsed <= 0 || s.stats.Served == 0 {
		return Results{}, fmt.Errorf("no customers served since warm-up at %v: %w", s.warmUp.At, ErrNotReady)
	}

	r := s.stats.Finalize(elapsed, s.servers.Capacity())
	r.WarmUpTime = s.warmUp.At
	r.Events = s.events
	return r, nil
}

// Err returns the construction error, if any.
func (s *Simulator) Err() error { return s.err }

// Key returns the simulation key the random streams were derived from.
func (s *Simulator) Key() SimulationKey { return s.key }

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Trace returns the event trace, or nil when tracing is disabled.
// Read it only after Run has returned.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/inference-sim/mmc-sim/sim/trace"
)

var (
	// ErrConfiguration marks a simulator built from invalid parameters.
	// Such a simulator is inert: Run is a no-op and Results always fails.
	ErrConfiguration = errors.New("invalid simulation configuration")

	// ErrNotReady is returned by Results when warm-up has not completed or no
	// customer has been served since.
	ErrNotReady = errors.New("simulation not ready")

	// ErrAlreadyRun is returned by a second call to Run. A Simulator models a
	// single run.
	ErrAlreadyRun = errors.New("simulation already run")

	// ErrEventLimit is returned by Run when MaxEvents stopped the run before
	// the served-customer target was reached.
	ErrEventLimit = errors.New("event limit reached")
)

// Config holds the construction parameters of an M/c/c simulation.
type Config struct {
	ArrivalRate float64 // λ, customers per unit time
	ServiceRate float64 // μ, customers per unit time per server
	Servers     int     // c
	WarmUp      float64 // simulated time after which statistics are kept

	// Seed fixes both random streams. Nil draws a fresh key per simulator.
	Seed *int64
	// MaxEvents stops a run after this many events. 0 means unlimited.
	MaxEvents uint64
	// Trace selects per-event trace recording.
	Trace trace.TraceLevel
	// RunID tags log lines. Optional.
	RunID string
}

// NewConfig returns a Config with the four model parameters set.
func NewConfig(arrivalRate, serviceRate float64, servers int, warmUp float64) Config {
	return Config{
		ArrivalRate: arrivalRate,
		ServiceRate: serviceRate,
		Servers:     servers,
		WarmUp:      warmUp,
	}
}

// WithSeed returns a copy of c with a fixed seed.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// OfferedLoad returns λ/(μc), the long-run utilization of a stable system.
func (c Config) OfferedLoad() float64 {
	return c.ArrivalRate / (c.ServiceRate * float64(c.Servers))
}

// Validate checks the model parameters. Every failure wraps ErrConfiguration.
func (c Config) Validate() error {
	if !(c.ArrivalRate > 0) || math.IsInf(c.ArrivalRate, 0) {
		return fmt.Errorf("arrival rate must be a positive finite number, got %v: %w", c.ArrivalRate, ErrConfiguration)
	}
	if !(c.ServiceRate > 0) || math.IsInf(c.ServiceRate, 0) {
		return fmt.Errorf("service rate must be a positive finite number, got %v: %w", c.ServiceRate, ErrConfiguration)
	}
	if c.Servers < 1 {
		return fmt.Errorf("server count must be at least 1, got %d: %w", c.Servers, ErrConfiguration)
	}
	if c.ArrivalRate >= c.ServiceRate*float64(c.Servers) {
		return fmt.Errorf("unstable load: arrival rate %v >= service rate %v × %d servers: %w",
			c.ArrivalRate, c.ServiceRate, c.Servers, ErrConfiguration)
	}
	if !(c.WarmUp > 0) || math.IsInf(c.WarmUp, 0) {
		return fmt.Errorf("warm-up threshold must be a positive finite number, got %v: %w", c.WarmUp, ErrConfiguration)
	}
	if !trace.IsValidTraceLevel(string(c.Trace)) {
		return fmt.Errorf("unknown trace level %q: %w", c.Trace, ErrConfiguration)
	}
	return nil
}

package sim

import "fmt"

// SimulationClock holds the simulated time of the event being processed and
// of the one before it. It is advanced only at dequeue, under the shared lock.
type SimulationClock struct {
	Now  float64
	Last float64
}

// Advance moves the clock to t and returns the simulated time elapsed since
// the previous event. Panics if t is earlier than the current time.
func (c *SimulationClock) Advance(t float64) float64 {
	if t < c.Now {
		panic(fmt.Sprintf("SimulationClock.Advance: time moved backwards from %v to %v", c.Now, t))
	}
	elapsed := t - c.Now
	c.Last = c.Now
	c.Now = t
	return elapsed
}

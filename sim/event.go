package sim

import "fmt"

// EventKind distinguishes the two state transitions of an M/c/c queue.
type EventKind int

const (
	// Arrival is a customer entering the system.
	Arrival EventKind = iota
	// Departure is a customer finishing service and leaving the system.
	Departure
)

// String returns the lower-case kind name used in logs and traces.
func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "arrival"
	case Departure:
		return "departure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// kindPriority orders kinds that share a timestamp: departures first, so a
// freed server is visible to a simultaneous arrival.
var kindPriority = map[EventKind]int{
	Departure: 0,
	Arrival:   1,
}

// Event is a scheduled state transition at simulated time Time.
type Event struct {
	Time float64
	Kind EventKind
	// Customer is the record of the customer leaving. Set on departures only.
	Customer CustomerRecord

	seq uint64 // insertion order, assigned by the scheduler
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%.6f", e.Kind, e.Time)
}

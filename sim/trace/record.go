// Package trace provides per-event trace recording for queue simulations.
// It stores plain data types and does not import sim.
package trace

// EventRecord captures the system state observed when one event was dequeued,
// before its handler ran.
type EventRecord struct {
	Time     float64
	Kind     string
	Busy     int // busy servers
	InSystem int // customers waiting or in service
	Waiting  int // customers not yet admitted to a server
}

// WarmUpRecord captures the statistics accumulators immediately after the
// warm-up reset fired.
type WarmUpRecord struct {
	Time                  float64
	QueueLengthIntegral   float64
	WaitingLengthIntegral float64
	BusyTimeIntegral      float64
	ResponseTimeSum       float64
	WaitTimeSum           float64
	Served                int
}

// IsZero reports whether every accumulator in the record is exactly zero.
func (r WarmUpRecord) IsZero() bool {
	return r.QueueLengthIntegral == 0 &&
		r.WaitingLengthIntegral == 0 &&
		r.BusyTimeIntegral == 0 &&
		r.ResponseTimeSum == 0 &&
		r.WaitTimeSum == 0 &&
		r.Served == 0
}

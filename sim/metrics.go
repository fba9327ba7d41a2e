// Tracks time-weighted queue statistics and derives the final results.

package sim

import "github.com/inference-sim/mmc-sim/sim/trace"

// StatisticsCollector integrates piecewise-constant system state over
// simulated time. All fields are post-warm-up only: Reset zeroes them at the
// warm-up instant and they grow monotonically afterwards.
type StatisticsCollector struct {
	QueueLengthIntegral   float64 // ∫ customers in system dt
	WaitingLengthIntegral float64 // ∫ customers waiting for a server dt
	BusyTimeIntegral      float64 // ∫ busy servers dt
	ResponseTimeSum       float64 // Σ (departure - arrival)
	WaitTimeSum           float64 // Σ (service start - arrival)
	Served                int     // departures counted after warm-up
}

// Integrate adds elapsed time during which the system held inSystem
// customers, waiting of them queued, with busy servers occupied.
func (sc *StatisticsCollector) Integrate(elapsed float64, inSystem, waiting, busy int) {
	sc.QueueLengthIntegral += float64(inSystem) * elapsed
	sc.WaitingLengthIntegral += float64(waiting) * elapsed
	sc.BusyTimeIntegral += float64(busy) * elapsed
}

// RecordDeparture adds the response and wait time of a customer leaving at
// now. The served counter only moves when counted is true.
func (sc *StatisticsCollector) RecordDeparture(rec CustomerRecord, now float64, counted bool) {
	sc.ResponseTimeSum += now - rec.ArrivalTime
	sc.WaitTimeSum += rec.ServiceStart - rec.ArrivalTime
	if counted {
		sc.Served++
	}
}

// Reset zeroes every accumulator.
func (sc *StatisticsCollector) Reset() {
	*sc = StatisticsCollector{}
}

// Snapshot captures the accumulators as a trace record stamped with t.
func (sc *StatisticsCollector) Snapshot(t float64) trace.WarmUpRecord {
	return trace.WarmUpRecord{
		Time:                  t,
		QueueLengthIntegral:   sc.QueueLengthIntegral,
		WaitingLengthIntegral: sc.WaitingLengthIntegral,
		BusyTimeIntegral:      sc.BusyTimeIntegral,
		ResponseTimeSum:       sc.ResponseTimeSum,
		WaitTimeSum:           sc.WaitTimeSum,
		Served:                sc.Served,
	}
}

// Finalize derives averages over elapsed post-warm-up time for a pool of
// capacity servers. Callers guarantee elapsed > 0 and Served > 0.
func (sc *StatisticsCollector) Finalize(elapsed float64, capacity int) Results {
	return Results{
		AvgQueueLength:   sc.QueueLengthIntegral / elapsed,
		Utilization:      sc.BusyTimeIntegral / (elapsed * float64(capacity)),
		AvgResponseTime:  sc.ResponseTimeSum / float64(sc.Served),
		AvgWaitingLength: sc.WaitingLengthIntegral / elapsed,
		AvgWaitTime:      sc.WaitTimeSum / float64(sc.Served),
		Served:           sc.Served,
		ElapsedTime:      elapsed,
	}
}

// Results is the final statistics tuple of one run.
type Results struct {
	// AvgQueueLength is the time-average number of customers in the system.
	AvgQueueLength float64 `json:"avg_queue_length"`
	// Utilization is the busy-server time over elapsed time × servers, in [0, 1].
	Utilization float64 `json:"utilization"`
	// AvgResponseTime is the mean arrival-to-departure time.
	AvgResponseTime float64 `json:"avg_response_time"`

	AvgWaitingLength float64 `json:"avg_waiting_length"`
	AvgWaitTime      float64 `json:"avg_wait_time"`
	Served           int     `json:"served"`
	ElapsedTime      float64 `json:"elapsed_time"`
	WarmUpTime       float64 `json:"warm_up_time"`
	Events           uint64  `json:"events"`
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsCollector_Integrate_PiecewiseConstant(t *testing.T) {
	var sc StatisticsCollector

	// 2 in system (1 waiting, 1 busy) for 1.5, then 3 in system (1 waiting, 2 busy) for 0.5
	sc.Integrate(1.5, 2, 1, 1)
	sc.Integrate(0.5, 3, 1, 2)

	assert.InDelta(t, 4.5, sc.QueueLengthIntegral, 1e-12)
	assert.InDelta(t, 2.0, sc.WaitingLengthIntegral, 1e-12)
	assert.InDelta(t, 2.5, sc.BusyTimeIntegral, 1e-12)
}

func TestStatisticsCollector_RecordDeparture_CountsOnlyWhenAsked(t *testing.T) {
	var sc StatisticsCollector
	rec := CustomerRecord{ArrivalTime: 1, ServiceStart: 3}

	sc.RecordDeparture(rec, 4, false)
	assert.Equal(t, 0, sc.Served)
	assert.InDelta(t, 3.0, sc.ResponseTimeSum, 1e-12)
	assert.InDelta(t, 2.0, sc.WaitTimeSum, 1e-12)

	sc.RecordDeparture(rec, 5, true)
	assert.Equal(t, 1, sc.Served)
	assert.InDelta(t, 7.0, sc.ResponseTimeSum, 1e-12)
}

func TestStatisticsCollector_Reset_ZeroesEverything(t *testing.T) {
	sc := StatisticsCollector{
		QueueLengthIntegral:   1,
		WaitingLengthIntegral: 2,
		BusyTimeIntegral:      3,
		ResponseTimeSum:       4,
		WaitTimeSum:           5,
		Served:                6,
	}

	sc.Reset()

	assert.Equal(t, StatisticsCollector{}, sc)
	assert.True(t, sc.Snapshot(10).IsZero())
	assert.Equal(t, 10.0, sc.Snapshot(10).Time)
}

func TestStatisticsCollector_Finalize(t *testing.T) {
	sc := StatisticsCollector{
		QueueLengthIntegral:   50,
		WaitingLengthIntegral: 10,
		BusyTimeIntegral:      80,
		ResponseTimeSum:       30,
		WaitTimeSum:           6,
		Served:                20,
	}

	r := sc.Finalize(100, 2)

	assert.InDelta(t, 0.5, r.AvgQueueLength, 1e-12)
	assert.InDelta(t, 0.4, r.Utilization, 1e-12)
	assert.InDelta(t, 1.5, r.AvgResponseTime, 1e-12)
	assert.InDelta(t, 0.1, r.AvgWaitingLength, 1e-12)
	assert.InDelta(t, 0.3, r.AvgWaitTime, 1e-12)
	assert.Equal(t, 20, r.Served)
	assert.Equal(t, 100.0, r.ElapsedTime)
}

package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mmc-sim/sim/trace"
)

func sampleTrace() *trace.SimulationTrace {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	for i, n := range []int{0, 1, 2, 1, 3, 2, 0} {
		st.RecordEvent(trace.EventRecord{Time: float64(i + 1), Kind: "arrival", InSystem: n})
	}
	return st
}

func TestRunningAveragePoints_CumulativeMean(t *testing.T) {
	// GIVEN in-system samples 0,1,2,1,3,2,0
	pts := RunningAveragePoints(sampleTrace())

	// THEN each point is the mean of the samples so far
	require.Len(t, pts, 7)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 0.0, pts[0].Y)
	assert.InDelta(t, 0.5, pts[1].Y, 1e-12)
	assert.InDelta(t, 1.0, pts[2].Y, 1e-12)
	assert.InDelta(t, 9.0/7.0, pts[6].Y, 1e-12)
}

func TestRunningAveragePoints_NilTrace(t *testing.T) {
	assert.Nil(t, RunningAveragePoints(nil))
}

func TestQueueLengthHistogram_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")

	require.NoError(t, QueueLengthHistogram(sampleTrace(), path, 4))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunningAverage_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avg.png")

	require.NoError(t, RunningAverage(sampleTrace(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestQueueLengthHistogram_EmptyTrace_Errors(t *testing.T) {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	err := QueueLengthHistogram(st, filepath.Join(t.TempDir(), "x.png"), 10)
	assert.Error(t, err)
}

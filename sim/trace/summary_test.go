package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN a nil trace
	// WHEN summarized
	summary := Summarize(nil)

	// THEN counts are zero and ordering trivially holds
	if summary.TotalEvents != 0 || summary.Arrivals != 0 || summary.Departures != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if !summary.NonDecreasing {
		t.Error("expected NonDecreasing for nil trace")
	}
	if summary.WarmedUp {
		t.Error("expected WarmedUp false for nil trace")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with arrivals, departures and a warm-up marker
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Time: 0.5, Kind: "arrival", Busy: 0, InSystem: 0})
	st.RecordEvent(EventRecord{Time: 0.9, Kind: "arrival", Busy: 1, InSystem: 1})
	st.RecordEvent(EventRecord{Time: 1.2, Kind: "departure", Busy: 2, InSystem: 3, Waiting: 1})
	st.RecordWarmUp(WarmUpRecord{Time: 1.2})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and maxima match
	if summary.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", summary.TotalEvents)
	}
	if summary.Arrivals != 2 || summary.Departures != 1 {
		t.Errorf("Arrivals/Departures = %d/%d, want 2/1", summary.Arrivals, summary.Departures)
	}
	if summary.MaxBusy != 2 {
		t.Errorf("MaxBusy = %d, want 2", summary.MaxBusy)
	}
	if summary.MaxInSystem != 3 {
		t.Errorf("MaxInSystem = %d, want 3", summary.MaxInSystem)
	}
	if !summary.NonDecreasing {
		t.Error("expected NonDecreasing for ordered trace")
	}
	if !summary.WarmedUp || summary.WarmUpTime != 1.2 {
		t.Errorf("WarmedUp/WarmUpTime = %v/%v, want true/1.2", summary.WarmedUp, summary.WarmUpTime)
	}
}

func TestSummarize_OutOfOrderTimes_Detected(t *testing.T) {
	// GIVEN a trace whose second event is earlier than the first
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Time: 2.0, Kind: "arrival"})
	st.RecordEvent(EventRecord{Time: 1.0, Kind: "departure"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN the ordering violation is reported
	if summary.NonDecreasing {
		t.Error("expected NonDecreasing false for out-of-order trace")
	}
}

package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents int
	Arrivals    int
	Departures  int
	MaxBusy     int
	MaxInSystem int
	// NonDecreasing is true when every dequeue time is >= the one before it.
	NonDecreasing bool
	WarmedUp      bool
	WarmUpTime    float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields, NonDecreasing true).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{NonDecreasing: true}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for i, ev := range st.Events {
		switch ev.Kind {
		case "arrival":
			summary.Arrivals++
		case "departure":
			summary.Departures++
		}
		summary.MaxBusy = max(summary.MaxBusy, ev.Busy)
		summary.MaxInSystem = max(summary.MaxInSystem, ev.InSystem)
		if i > 0 && ev.Time < st.Events[i-1].Time {
			summary.NonDecreasing = false
		}
	}

	if st.WarmUp != nil {
		summary.WarmedUp = true
		summary.WarmUpTime = st.WarmUp.Time
	}
	return summary
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/inference-sim/mmc-sim/sim"
	"github.com/inference-sim/mmc-sim/sim/analytic"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Faint)
)

// Prediction holds the closed-form M/M/c values printed next to simulated ones.
type Prediction struct {
	AvgQueueLength   float64 `json:"avg_queue_length"`
	Utilization      float64 `json:"utilization"`
	AvgResponseTime  float64 `json:"avg_response_time"`
	AvgWaitingLength float64 `json:"avg_waiting_length"`
	AvgWaitTime      float64 `json:"avg_wait_time"`
	WaitProbability  float64 `json:"wait_probability"`
}

// Model echoes the parameters a report was produced from.
type Model struct {
	ArrivalRate float64 `json:"arrival_rate"`
	ServiceRate float64 `json:"service_rate"`
	Servers     int     `json:"servers"`
	WarmUp      float64 `json:"warm_up"`
	Customers   int     `json:"customers"`
	Seed        int64   `json:"seed"`
}

// Report is the output of one simulation run.
type Report struct {
	RunID    string      `json:"run_id"`
	Scenario string      `json:"scenario"`
	Model    Model       `json:"model"`
	Results  sim.Results `json:"results"`
	Analytic *Prediction `json:"analytic,omitempty"`
}

// ReplicationReport is the output of a replicate command.
type ReplicationReport struct {
	RunID    string                 `json:"run_id"`
	Model    Model                  `json:"model"`
	Summary  sim.ReplicationSummary `json:"summary"`
	Runs     []sim.Results          `json:"runs"`
	Analytic *Prediction            `json:"analytic,omitempty"`
}

func newModel(cfg sim.Config, customers int) Model {
	m := Model{
		ArrivalRate: cfg.ArrivalRate,
		ServiceRate: cfg.ServiceRate,
		Servers:     cfg.Servers,
		WarmUp:      cfg.WarmUp,
		Customers:   customers,
	}
	if cfg.Seed != nil {
		m.Seed = *cfg.Seed
	}
	return m
}

// predict returns the analytic values for cfg, or nil when the model has no
// steady state.
func predict(cfg sim.Config) *Prediction {
	m := analytic.NewMMC(cfg.ArrivalRate, cfg.ServiceRate, cfg.Servers)
	if !m.IsValid() {
		return nil
	}
	return &Prediction{
		AvgQueueLength:   m.AvgInSystem(),
		Utilization:      m.Utilization(),
		AvgResponseTime:  m.AvgResponseTime(),
		AvgWaitingLength: m.AvgWaitingLength(),
		AvgWaitTime:      m.AvgWaitTime(),
		WaitProbability:  m.WaitProbability(),
	}
}

func newReport(name string, cfg sim.Config, customers int, res sim.Results) *Report {
	return &Report{
		RunID:    cfg.RunID,
		Scenario: name,
		Model:    newModel(cfg, customers),
		Results:  res,
		Analytic: predict(cfg),
	}
}

func newReplicationReport(cfg sim.Config, customers int, runs []sim.Results, summary sim.ReplicationSummary) *ReplicationReport {
	return &ReplicationReport{
		RunID:    cfg.RunID,
		Model:    newModel(cfg, customers),
		Summary:  summary,
		Runs:     runs,
		Analytic: predict(cfg),
	}
}

func writeReport(w io.Writer, format string, rep *Report) error {
	if format == formatJSON {
		return writeJSON(w, rep)
	}

	headingColor.Fprintf(w, "=== Simulation Results: %s ===\n", rep.Scenario)
	writeModel(w, rep.RunID, rep.Model)

	r := rep.Results
	var p Prediction
	if rep.Analytic != nil {
		p = *rep.Analytic
	}
	fmt.Fprintf(w, "%-22s %12s %12s\n", "metric", "simulated", "analytic")
	writeRow(w, "avg queue length", r.AvgQueueLength, p.AvgQueueLength, rep.Analytic != nil)
	writeRow(w, "utilization", r.Utilization, p.Utilization, rep.Analytic != nil)
	writeRow(w, "avg response time", r.AvgResponseTime, p.AvgResponseTime, rep.Analytic != nil)
	writeRow(w, "avg waiting length", r.AvgWaitingLength, p.AvgWaitingLength, rep.Analytic != nil)
	writeRow(w, "avg wait time", r.AvgWaitTime, p.AvgWaitTime, rep.Analytic != nil)
	fmt.Fprintf(w, "served %d customers over %.4f time units after warm-up at t=%.4f (%d events)\n\n",
		r.Served, r.ElapsedTime, r.WarmUpTime, r.Events)
	return nil
}

func writeReplicationReport(w io.Writer, format string, rep *ReplicationReport) error {
	if format == formatJSON {
		return writeJSON(w, rep)
	}

	headingColor.Fprintf(w, "=== Replication Summary: %d runs ===\n", rep.Summary.Replications)
	writeModel(w, rep.RunID, rep.Model)

	var p Prediction
	if rep.Analytic != nil {
		p = *rep.Analytic
	}
	s := rep.Summary
	fmt.Fprintf(w, "%-22s %12s %12s %12s %12s\n", "metric", "mean", "std dev", "95% ci ±", "analytic")
	writeSummaryRow(w, "avg queue length", s.AvgQueueLength, p.AvgQueueLength)
	writeSummaryRow(w, "utilization", s.Utilization, p.Utilization)
	writeSummaryRow(w, "avg response time", s.AvgResponseTime, p.AvgResponseTime)
	writeSummaryRow(w, "avg waiting length", s.AvgWaitingLength, p.AvgWaitingLength)
	writeSummaryRow(w, "avg wait time", s.AvgWaitTime, p.AvgWaitTime)
	fmt.Fprintln(w)
	return nil
}

func writeModel(w io.Writer, runID string, m Model) {
	labelColor.Fprintf(w, "run %s\n", runID)
	fmt.Fprintf(w, "M/M/%d: lambda=%v mu=%v warm-up=%v customers=%d seed=%d\n",
		m.Servers, m.ArrivalRate, m.ServiceRate, m.WarmUp, m.Customers, m.Seed)
}

func writeRow(w io.Writer, name string, simulated, predicted float64, hasPrediction bool) {
	if !hasPrediction {
		fmt.Fprintf(w, "%-22s %12.4f %12s\n", name, simulated, "-")
		return
	}
	fmt.Fprintf(w, "%-22s %12.4f %12.4f\n", name, simulated, predicted)
}

func writeSummaryRow(w io.Writer, name string, m sim.MetricSummary, predicted float64) {
	fmt.Fprintf(w, "%-22s %12.4f %12.4f %12.4f %12.4f\n", name, m.Mean, m.StdDev, m.HalfWidth95, predicted)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

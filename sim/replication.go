package sim

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MetricSummary describes one metric across independent replications.
type MetricSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	// HalfWidth95 is the half-width of the Student-t 95% confidence interval.
	HalfWidth95 float64 `json:"half_width_95"`
}

// ReplicationSummary aggregates Results from independent replications.
type ReplicationSummary struct {
	Replications     int           `json:"replications"`
	AvgQueueLength   MetricSummary `json:"avg_queue_length"`
	Utilization      MetricSummary `json:"utilization"`
	AvgResponseTime  MetricSummary `json:"avg_response_time"`
	AvgWaitingLength MetricSummary `json:"avg_waiting_length"`
	AvgWaitTime      MetricSummary `json:"avg_wait_time"`
}

// RunReplications runs n independent simulations of cfg, at most parallel at
// a time, each until targetServed post-warm-up departures. Replication i uses
// the key derived from the base seed and SubsystemReplication(i), so a fixed
// cfg.Seed makes the whole set reproducible regardless of parallelism.
func RunReplications(ctx context.Context, cfg Config, targetServed, n, parallel int) ([]Results, ReplicationSummary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, ReplicationSummary{}, err
	}
	if n < 1 {
		return nil, ReplicationSummary{}, fmt.Errorf("replications must be at least 1, got %d: %w", n, ErrConfiguration)
	}

	base := RandomSimulationKey()
	if cfg.Seed != nil {
		base = NewSimulationKey(*cfg.Seed)
	}

	results := make([]Results, n)
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i := range n {
		rc := cfg.WithSeed(int64(base.Derive(SubsystemReplication(i))))
		if cfg.RunID != "" {
			rc.RunID = fmt.Sprintf("%s/%d", cfg.RunID, i)
		}
		g.Go(func() error {
			s, err := NewSimulator(rc)
			if err != nil {
				return err
			}
			if err := s.Run(gctx, targetServed); err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			r, err := s.Results()
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ReplicationSummary{}, err
	}
	return results, Summarize(results), nil
}

// Summarize computes per-metric mean, standard deviation and 95% confidence
// half-width. With fewer than two results the spread fields are zero.
func Summarize(results []Results) ReplicationSummary {
	pick := func(f func(Results) float64) MetricSummary {
		xs := make([]float64, len(results))
		for i, r := range results {
			xs[i] = f(r)
		}
		return summarizeMetric(xs)
	}
	return ReplicationSummary{
		Replications:     len(results),
		AvgQueueLength:   pick(func(r Results) float64 { return r.AvgQueueLength }),
		Utilization:      pick(func(r Results) float64 { return r.Utilization }),
		AvgResponseTime:  pick(func(r Results) float64 { return r.AvgResponseTime }),
		AvgWaitingLength: pick(func(r Results) float64 { return r.AvgWaitingLength }),
		AvgWaitTime:      pick(func(r Results) float64 { return r.AvgWaitTime }),
	}
}

func summarizeMetric(xs []float64) MetricSummary {
	switch len(xs) {
	case 0:
		return MetricSummary{}
	case 1:
		return MetricSummary{Mean: xs[0]}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	n := float64(len(xs))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}.Quantile(0.975)
	return MetricSummary{
		Mean:        mean,
		StdDev:      std,
		HalfWidth95: t * std / math.Sqrt(n),
	}
}

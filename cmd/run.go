package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mmc-sim/sim"
	"github.com/inference-sim/mmc-sim/sim/plot"
	"github.com/inference-sim/mmc-sim/sim/trace"
)

var (
	customers    int    // Post-warm-up departures to simulate
	traceEvents  bool   // Record one trace entry per processed event
	plotDir      string // Directory for queue length figures; implies tracing
	scenarioPath string // YAML file with named scenarios
	maxEvents    uint64 // Event budget; 0 means unlimited
)

// histogramBins is the bin count of the queue length histogram.
const histogramBins = 30

// runCmd executes one simulation from positional arguments, or every
// scenario in a --scenario file.
var runCmd = &cobra.Command{
	Use:   "run [<lambda> <mu> <servers> <warmup>]",
	Short: "Run an M/M/c simulation",
	Args: func(cmd *cobra.Command, args []string) error {
		if scenarioPath != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(4)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := reportFormat()
		if err != nil {
			return err
		}

		var scenarios []sim.Scenario
		if scenarioPath != "" {
			sf, err := sim.LoadScenarioFile(scenarioPath)
			if err != nil {
				return err
			}
			scenarios = sf.Scenarios
		} else {
			cfg, err := parseModelArgs(args)
			if err != nil {
				return err
			}
			scenarios = []sim.Scenario{{
				Name:        "cli",
				ArrivalRate: cfg.ArrivalRate,
				ServiceRate: cfg.ServiceRate,
				Servers:     cfg.Servers,
				WarmUp:      cfg.WarmUp,
				Customers:   customers,
				MaxEvents:   maxEvents,
			}}
		}

		override := seedOverride()
		for _, sc := range scenarios {
			rep, err := runScenario(cmd, sc, override)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}
			if err := writeReport(cmd.OutOrStdout(), format, rep); err != nil {
				return err
			}
		}
		logrus.Info("Simulation complete.")
		return nil
	},
}

// runScenario builds and runs one simulator and collects its report,
// writing figures when --plot is set.
func runScenario(cmd *cobra.Command, sc sim.Scenario, override *int64) (*Report, error) {
	cfg := withSeed(sc.Config(), override)
	cfg.RunID = uuid.NewString()
	if traceEvents || plotDir != "" {
		cfg.Trace = trace.TraceLevelEvents
	}

	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Run(cmd.Context(), sc.Customers); err != nil {
		return nil, err
	}
	res, err := s.Results()
	if err != nil {
		return nil, err
	}

	if st := s.Trace(); st != nil {
		summary := trace.Summarize(st)
		logrus.Infof("Trace: %d events (%d arrivals, %d departures), max busy %d, max in system %d",
			summary.TotalEvents, summary.Arrivals, summary.Departures, summary.MaxBusy, summary.MaxInSystem)
		if plotDir != "" {
			if err := writeFigures(st, plotDir, sc.Name); err != nil {
				return nil, err
			}
		}
	}
	return newReport(sc.Name, cfg, sc.Customers, res), nil
}

func writeFigures(st *trace.SimulationTrace, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}
	hist := filepath.Join(dir, name+"-queue-length-histogram.png")
	if err := plot.QueueLengthHistogram(st, hist, histogramBins); err != nil {
		return err
	}
	avg := filepath.Join(dir, name+"-running-average.png")
	if err := plot.RunningAverage(st, avg); err != nil {
		return err
	}
	logrus.Infof("Wrote %s and %s", hist, avg)
	return nil
}

func init() {
	runCmd.Flags().IntVar(&customers, "customers", sim.DefaultCustomers, "Number of customers to serve after warm-up")
	runCmd.Flags().BoolVar(&traceEvents, "trace", false, "Record a per-event trace and log its summary")
	runCmd.Flags().StringVar(&plotDir, "plot", "", "Write queue length figures (PNG) to this directory")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Run every scenario in this YAML file instead of positional arguments")
	runCmd.Flags().Uint64Var(&maxEvents, "max-events", 0, "Stop after this many events (0 = unlimited)")
}

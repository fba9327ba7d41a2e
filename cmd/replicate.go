package cmd

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/mmc-sim/sim"
)

var (
	replications int // Independent runs
	parallel     int // Concurrent runs; 0 = unlimited
)

// replicateCmd runs independent seeded replications and reports confidence
// intervals per metric.
var replicateCmd = &cobra.Command{
	Use:   "replicate <lambda> <mu> <servers> <warmup>",
	Short: "Run independent replications and summarize them",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := reportFormat()
		if err != nil {
			return err
		}
		cfg, err := parseModelArgs(args)
		if err != nil {
			return err
		}
		cfg = withSeed(cfg, seedOverride())
		cfg.RunID = uuid.NewString()

		logrus.Infof("Running %d replications (parallel=%d) of M/M/%d", replications, parallel, cfg.Servers)
		results, summary, err := sim.RunReplications(cmd.Context(), cfg, customers, replications, parallel)
		if err != nil {
			return err
		}
		return writeReplicationReport(cmd.OutOrStdout(), format, newReplicationReport(cfg, customers, results, summary))
	},
}

func init() {
	replicateCmd.Flags().IntVar(&replications, "replications", 10, "Number of independent replications")
	replicateCmd.Flags().IntVar(&parallel, "parallel", 0, "Maximum concurrent replications (0 = unlimited)")
	replicateCmd.Flags().IntVar(&customers, "customers", sim.DefaultCustomers, "Number of customers to serve after warm-up, per replication")
}

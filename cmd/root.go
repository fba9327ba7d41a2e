package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string // Optional config file path
	logLevel  string // Log verbosity level
	seed      int64  // Seed for the random streams; random when unset
	outFormat string // Report format: text or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:          "mmc-sim",
	Short:        "Discrete-event simulator for M/M/c queues",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfig(); err != nil {
			return err
		}
		return setupLogging()
	},
}

// Execute runs the CLI root command. SIGINT cancels a running simulation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up persistent flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mmcsim.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for the arrival and service streams (random when unset)")
	rootCmd.PersistentFlags().StringVar(&outFormat, "format", "text", "Output format (text, json)")

	bindFlags()

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replicateCmd)
}

// bindFlags exposes the persistent flags to viper so the config file and
// environment can supply them.
func bindFlags() {
	for _, name := range []string{"log", "seed", "format"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// readConfig layers the optional config file and MMCSIM_* environment
// variables under the command-line flags.
func readConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".mmcsim")
	}

	viper.SetEnvPrefix("mmcsim")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log"), err)
	}
	logrus.SetLevel(level)
	return nil
}

// seedOverride returns the seed from --seed, MMCSIM_SEED or the config file,
// or nil when none of them set it.
func seedOverride() *int64 {
	if !viper.IsSet("seed") {
		return nil
	}
	s := viper.GetInt64("seed")
	return &s
}

func reportFormat() (string, error) {
	f := viper.GetString("format")
	switch f {
	case formatText, formatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want %s or %s)", f, formatText, formatJSON)
}

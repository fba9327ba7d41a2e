package cmd

import (
	"fmt"
	"strconv"

	"github.com/inference-sim/mmc-sim/sim"
)

// parseModelArgs reads the positional <lambda> <mu> <servers> <warmup>
// arguments into a Config. Range checks are left to Config.Validate.
func parseModelArgs(args []string) (sim.Config, error) {
	if len(args) != 4 {
		return sim.Config{}, fmt.Errorf("expected <lambda> <mu> <servers> <warmup>, got %d arguments", len(args))
	}
	lambda, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("arrival rate %q: %w", args[0], err)
	}
	mu, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("service rate %q: %w", args[1], err)
	}
	servers, err := strconv.Atoi(args[2])
	if err != nil {
		return sim.Config{}, fmt.Errorf("server count %q: %w", args[2], err)
	}
	warmUp, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("warm-up threshold %q: %w", args[3], err)
	}
	return sim.NewConfig(lambda, mu, servers, warmUp), nil
}

// withSeed applies the CLI seed when one was given, keeps a seed already in
// cfg otherwise, and as a last resort draws a random one so the report can
// name the seed that reproduces the run.
func withSeed(cfg sim.Config, override *int64) sim.Config {
	switch {
	case override != nil:
		return cfg.WithSeed(*override)
	case cfg.Seed != nil:
		return cfg
	default:
		return cfg.WithSeed(int64(sim.RandomSimulationKey()))
	}
}

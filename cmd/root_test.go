package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/mmc-sim/sim"
)

// execute runs the root command with args after restoring every flag to its
// default, and returns what the command wrote.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, runCmd, replicateCmd} {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func decodeReports(t *testing.T, out string) []Report {
	t.Helper()
	var reports []Report
	dec := json.NewDecoder(bytes.NewBufferString(out))
	for dec.More() {
		var r Report
		require.NoError(t, dec.Decode(&r))
		reports = append(reports, r)
	}
	return reports
}

func TestRun_JSON(t *testing.T) {
	// WHEN a seeded M/M/1 run is requested as JSON
	out, err := execute(t, "run", "1", "2", "1", "10", "--customers", "300", "--seed", "5", "--format", "json")
	require.NoError(t, err)

	// THEN one report names the seed, a run id and the prediction
	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, "cli", r.Scenario)
	assert.Equal(t, int64(5), r.Model.Seed)
	assert.Equal(t, 300, r.Results.Served)
	_, err = uuid.Parse(r.RunID)
	assert.NoError(t, err, "run id must be a UUID")
	require.NotNil(t, r.Analytic)
	assert.InDelta(t, 0.5, r.Analytic.Utilization, 1e-12)
}

func TestRun_SameSeedSameResults(t *testing.T) {
	args := []string{"run", "2.7", "1", "3", "20", "--customers", "500", "--seed", "11", "--format", "json"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	a, b := decodeReports(t, first), decodeReports(t, second)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Results, b[0].Results)
	assert.NotEqual(t, a[0].RunID, b[0].RunID)
}

func TestRun_Text(t *testing.T) {
	out, err := execute(t, "run", "0.5", "1", "4", "50", "--customers", "200", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulation Results: cli")
	assert.Contains(t, out, "analytic")
	assert.Contains(t, out, "served 200 customers")
}

func TestRun_ScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - {name: first, arrival_rate: 1, service_rate: 2, servers: 1, warm_up: 10, customers: 100, seed: 1}
  - {name: second, arrival_rate: 1, service_rate: 1, servers: 2, warm_up: 10, customers: 150}
`), 0o644))

	out, err := execute(t, "run", "--scenario", path, "--format", "json")
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 2)
	assert.Equal(t, "first", reports[0].Scenario)
	assert.Equal(t, int64(1), reports[0].Model.Seed)
	assert.Equal(t, 100, reports[0].Results.Served)
	assert.Equal(t, "second", reports[1].Scenario)
	assert.Equal(t, 150, reports[1].Results.Served)
}

func TestRun_ScenarioRejectsPositionalArgs(t *testing.T) {
	_, err := execute(t, "run", "1", "2", "1", "10", "--scenario", "../examples/scenarios.yaml")
	assert.Error(t, err)
}

func TestRun_PlotWritesFigures(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "1", "2", "1", "10", "--customers", "200", "--seed", "3", "--plot", dir)
	require.NoError(t, err)

	for _, name := range []string{"cli-queue-length-histogram.png", "cli-running-average.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing args", []string{"run", "1", "2", "1"}},
		{"unparsable arg", []string{"run", "x", "2", "1", "10"}},
		{"bad format", []string{"run", "1", "2", "1", "10", "--format", "xml"}},
		{"bad log level", []string{"run", "1", "2", "1", "10", "--log", "loud"}},
		{"zero customers", []string{"run", "1", "2", "1", "10", "--customers", "0"}},
		{"missing scenario file", []string{"run", "--scenario", "does-not-exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRun_UnstableModel_ConfigurationError(t *testing.T) {
	_, err := execute(t, "run", "3", "1", "2", "10", "--seed", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrConfiguration), "got %v", err)
}

func TestRun_EventLimit(t *testing.T) {
	_, err := execute(t, "run", "1", "2", "1", "1e9", "--seed", "1", "--max-events", "100")
	assert.ErrorIs(t, err, sim.ErrEventLimit)
}

func TestReplicate_JSON(t *testing.T) {
	out, err := execute(t, "replicate", "1", "2", "1", "10",
		"--replications", "3", "--parallel", "2", "--customers", "200", "--seed", "9", "--format", "json")
	require.NoError(t, err)

	var rep ReplicationReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Runs, 3)
	assert.Equal(t, 3, rep.Summary.Replications)
	assert.Equal(t, int64(9), rep.Model.Seed)
	for _, r := range rep.Runs {
		assert.Equal(t, 200, r.Served)
	}
}

func TestReplicate_Text(t *testing.T) {
	out, err := execute(t, "replicate", "1", "2", "1", "10", "--replications", "2", "--customers", "100", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Replication Summary: 2 runs")
}

func TestFormat_FromEnvironment(t *testing.T) {
	t.Setenv("MMCSIM_FORMAT", "json")

	out, err := execute(t, "run", "1", "2", "1", "10", "--customers", "50", "--seed", "2")
	require.NoError(t, err)
	assert.Len(t, decodeReports(t, out), 1)
}

func TestSeed_FromConfigFile(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		bindFlags()
	})
	path := filepath.Join(t.TempDir(), "mmcsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 77\nformat: json\n"), 0o644))

	out, err := execute(t, "run", "1", "2", "1", "10", "--customers", "50", "--config", path)
	require.NoError(t, err)

	reports := decodeReports(t, out)
	require.Len(t, reports, 1)
	assert.Equal(t, int64(77), reports[0].Model.Seed)
}

func TestConfigFile_MissingExplicitPathFails(t *testing.T) {
	t.Cleanup(func() {
		viper.Reset()
		bindFlags()
	})
	_, err := execute(t, "run", "1", "2", "1", "10", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/syncbench/internal/sieve/plan"
	"github.com/kolkov/syncbench/internal/sieve/results"
)

// quietLogger keeps test output readable.
func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// smallPlan is a matrix tiny enough to execute inside a unit test.
func smallPlan(output string) plan.Plan {
	return plan.Plan{
		Strategies:  []string{"mutex", "atomic"},
		Workers:     []int{1, 2},
		Trials:      2,
		SieveLimit:  10_000,
		ScanLimit:   100,
		Granularity: 64,
		Verify:      true,
		Output:      output,
	}
}

// TestSubcommandsRegistered tests that the root command exposes the
// three suite subcommands.
func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"run": false, "init": false, "report": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, seen := range want {
		assert.True(t, seen, "subcommand %q not registered", name)
	}
}

// TestWriteDefaultPlan tests the init helper end to end: the written
// file must load back as the canonical matrix.
func TestWriteDefaultPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")

	require.NoError(t, writeDefaultPlan(quietLogger(), path, false))

	loaded, err := plan.Load(path)
	require.NoError(t, err)
	assert.Equal(t, plan.Default(), loaded)
}

// TestWriteDefaultPlanRefusesOverwrite tests that an existing plan is
// preserved unless --force is given.
func TestWriteDefaultPlanRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategies: [mutex]\n"), 0o644))

	err := writeDefaultPlan(quietLogger(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// The stale content must survive the refusal.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "strategies: [mutex]\n", string(raw))

	require.NoError(t, writeDefaultPlan(quietLogger(), path, true))
	_, err = plan.Load(path)
	assert.NoError(t, err)
}

// TestRunSuite tests the run helper against a tiny plan: every trial
// must land in the CSV, honoring the --output override.
func TestRunSuite(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.yaml")
	override := filepath.Join(dir, "override.csv")

	p := smallPlan(filepath.Join(dir, "ignored.csv"))
	require.NoError(t, p.Save(planPath))

	require.NoError(t, runSuite(context.Background(), quietLogger(), planPath, override))

	trials, err := results.ReadAll(override)
	require.NoError(t, err)
	assert.Len(t, trials, p.Cells()*p.Trials)
	assert.NoFileExists(t, p.Output, "override must redirect the CSV")
}

// TestRunSuiteCancellation tests that a pre-canceled context is
// reported as a clean interrupt, not an error.
func TestRunSuiteCancellation(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.yaml")
	output := filepath.Join(dir, "results.csv")

	require.NoError(t, smallPlan(output).Save(planPath))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, runSuite(ctx, quietLogger(), planPath, ""))
}

// TestRunSuiteMissingPlan tests the error path for an absent plan file.
func TestRunSuiteMissingPlan(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-plan.yaml")
	err := runSuite(context.Background(), quietLogger(), missing, "")
	assert.Error(t, err)
}

// TestWriteSummary tests the report helper: collected trials must come
// back as a Markdown table.
func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.yaml")
	output := filepath.Join(dir, "results.csv")
	summary := filepath.Join(dir, "summary.md")

	require.NoError(t, smallPlan(output).Save(planPath))
	require.NoError(t, runSuite(context.Background(), quietLogger(), planPath, ""))

	require.NoError(t, writeSummary(quietLogger(), output, summary))

	raw, err := os.ReadFile(summary)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "# "), "summary must start with a heading")
	assert.Contains(t, text, "mutex")
	assert.Contains(t, text, "atomic")
}

// TestWriteSummaryMissingCSV tests the error path for an absent results
// file.
func TestWriteSummaryMissingCSV(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-results.csv")
	err := writeSummary(quietLogger(), missing, filepath.Join(t.TempDir(), "summary.md"))
	assert.Error(t, err)
}

// Package plan declares the suite's experiment matrix as a YAML
// document.
//
// A plan describes which strategies to run, at which worker counts, how
// many trials per cell, and under which sieve parameters. The default
// plan reproduces the canonical experiment matrix: all four strategies
// at 1, 2, 4 and 8 workers, three trials each.
package plan

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/syncbench/internal/sieve/experiment"
)

// Validation errors, testable with errors.Is.
var (
	ErrNoStrategies = errors.New("plan: no strategies listed")
	ErrNoWorkers    = errors.New("plan: no worker counts listed")
	ErrWorkerCount  = errors.New("plan: worker counts must be positive")
	ErrTrials       = errors.New("plan: trials per cell must be positive")
	ErrNoOutput     = errors.New("plan: output path must not be empty")
)

// Plan is the declarative experiment matrix the suite executes.
type Plan struct {
	// Strategies lists the synchronization strategies to measure, by
	// name, in execution order.
	Strategies []string `yaml:"strategies"`

	// Workers lists the worker counts to measure each strategy at.
	Workers []int `yaml:"workers"`

	// Trials is the number of repeated runs per (strategy, workers)
	// cell.
	Trials int `yaml:"trials"`

	// SieveLimit, ScanLimit and Granularity override the canonical
	// sieve parameters.
	SieveLimit  int64 `yaml:"sieve_limit"`
	ScanLimit   int64 `yaml:"scan_limit"`
	Granularity int64 `yaml:"lock_granularity"`

	// Verify compares every trial's flags against a sequential
	// reference sieve and records the lost-flag count per trial. Costs
	// one extra sequential sieve per suite run plus a comparison per
	// trial.
	Verify bool `yaml:"verify"`

	// Output is the CSV file trials are appended to.
	Output string `yaml:"output"`
}

// Default returns the canonical experiment matrix.
func Default() Plan {
	strategies := experiment.Strategies()
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return Plan{
		Strategies:  names,
		Workers:     []int{1, 2, 4, 8},
		Trials:      3,
		SieveLimit:  experiment.DefaultSieveLimit,
		ScanLimit:   experiment.DefaultScanLimit,
		Granularity: experiment.DefaultGranularity,
		Verify:      true,
		Output:      "all_results.csv",
	}
}

// Params assembles the plan's sieve parameters.
func (p Plan) Params() experiment.Params {
	return experiment.Params{
		SieveLimit:  p.SieveLimit,
		ScanLimit:   p.ScanLimit,
		Granularity: p.Granularity,
	}
}

// Cells returns the total number of (strategy, workers) combinations.
func (p Plan) Cells() int {
	return len(p.Strategies) * len(p.Workers)
}

// Validate checks the matrix and the embedded sieve parameters.
func (p Plan) Validate() error {
	if len(p.Strategies) == 0 {
		return ErrNoStrategies
	}
	for _, name := range p.Strategies {
		if _, err := experiment.ParseStrategy(name); err != nil {
			return err
		}
	}
	if len(p.Workers) == 0 {
		return ErrNoWorkers
	}
	for _, w := range p.Workers {
		if w <= 0 {
			return fmt.Errorf("%w: got %d", ErrWorkerCount, w)
		}
	}
	if p.Trials <= 0 {
		return fmt.Errorf("%w: got %d", ErrTrials, p.Trials)
	}
	if err := p.Params().Validate(); err != nil {
		return err
	}
	if p.Output == "" {
		return ErrNoOutput
	}
	return nil
}

// Load reads and validates a plan file.
func Load(path string) (Plan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("reading plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Plan{}, fmt.Errorf("parsing plan %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Save writes the plan as YAML, overwriting path.
func (p Plan) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing plan: %w", err)
	}
	return nil
}

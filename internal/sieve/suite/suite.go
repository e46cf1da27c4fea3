// Package suite executes an experiment plan trial by trial and streams
// the finished rows into the results file.
package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/syncbench/internal/sieve/experiment"
	"github.com/kolkov/syncbench/internal/sieve/plan"
	"github.com/kolkov/syncbench/internal/sieve/results"
)

// Runner executes the full matrix of a validated plan.
//
// Trials run strictly one at a time: a trial must own the machine while
// its clock runs, since the measurement is the point. Only the CSV sink
// runs alongside, fed through a channel so a slow disk never sits
// inside a trial's timed span.
type Runner struct {
	plan plan.Plan
	log  *logrus.Logger
}

// New validates the plan and builds a Runner. A nil logger falls back
// to the logrus standard logger.
func New(p plan.Plan, log *logrus.Logger) (*Runner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{plan: p, log: log}, nil
}

// Run executes every (strategy, workers) cell of the plan and appends
// one CSV row per trial.
//
// Cancelling ctx stops the suite between trials; the trial in flight
// always finishes, because a sieve run has no abort path. Rows already
// produced are flushed before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	info := results.CaptureSystemInfo()
	r.log.WithFields(logrus.Fields{
		"os":              info.OS,
		"arch":            info.Arch,
		"cpus":            info.CPUs,
		"gomaxprocs":      info.MaxProcs,
		"go":              info.GoVersion,
		"cells":           r.plan.Cells(),
		"trials_per_cell": r.plan.Trials,
	}).Info("suite starting")

	params := r.plan.Params()

	var reference []uint64
	if r.plan.Verify {
		start := time.Now()
		ref, err := experiment.Reference(params)
		if err != nil {
			return fmt.Errorf("building reference sieve: %w", err)
		}
		reference = ref
		r.log.WithFields(logrus.Fields{
			"primes":  experiment.CountPrimes(ref, params.SieveLimit),
			"elapsed": time.Since(start).Round(time.Millisecond).String(),
		}).Info("reference sieve ready")
	}

	sink, err := results.NewWriter(r.plan.Output)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	trials := make(chan results.Trial)

	g.Go(func() error {
		defer close(trials)
		return r.produce(ctx, info.OS, reference, trials)
	})

	written := 0
	g.Go(func() error {
		for t := range trials {
			if err := sink.Write(t); err != nil {
				return err
			}
			written++
		}
		return nil
	})

	err = g.Wait()
	if cerr := sink.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		r.log.WithError(err).WithField("written", written).Warn("suite aborted")
		return err
	}
	r.log.WithFields(logrus.Fields{
		"written": written,
		"output":  r.plan.Output,
	}).Info("suite finished")
	return nil
}

// produce walks the matrix in plan order. Cancellation is checked at
// trial boundaries only; a running trial is never interrupted.
func (r *Runner) produce(ctx context.Context, osName string, reference []uint64, out chan<- results.Trial) error {
	params := r.plan.Params()
	for _, name := range r.plan.Strategies {
		strategy, err := experiment.ParseStrategy(name)
		if err != nil {
			return err
		}
		for _, workers := range r.plan.Workers {
			for idx := 1; idx <= r.plan.Trials; idx++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				t, err := r.runTrial(params, strategy, workers, idx, osName, reference)
				if err != nil {
					return err
				}

				select {
				case out <- t:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return nil
}

// runTrial executes one timed run and assembles its CSV row.
func (r *Runner) runTrial(params experiment.Params, strategy experiment.Strategy, workers, idx int, osName string, reference []uint64) (results.Trial, error) {
	er, err := experiment.NewRunner(params, strategy, workers)
	if err != nil {
		return results.Trial{}, fmt.Errorf("configuring %s at %d workers: %w", strategy, workers, err)
	}
	res, err := er.Run()
	if err != nil {
		return results.Trial{}, fmt.Errorf("running %s at %d workers: %w", strategy, workers, err)
	}

	lost := results.LostUnknown
	if reference != nil {
		v, err := experiment.Verify(res.Flags, reference)
		if err != nil {
			return results.Trial{}, fmt.Errorf("verifying %s at %d workers: %w", strategy, workers, err)
		}
		lost = v.Lost
		if v.Extra > 0 {
			// The worker only marks true composites, so extra flags
			// mean a store corrupted neighboring bits in a word.
			r.log.WithFields(logrus.Fields{
				"strategy": string(strategy),
				"workers":  workers,
				"extra":    v.Extra,
			}).Warn("flags set that the reference never set")
		}
	}

	entry := r.log.WithFields(logrus.Fields{
		"strategy": string(strategy),
		"workers":  workers,
		"trial":    idx,
		"seconds":  res.Elapsed.Seconds(),
		"primes":   res.Primes,
	})
	if lost != results.LostUnknown {
		entry = entry.WithField("lost_flags", lost)
	}
	entry.Info("trial complete")

	return results.Trial{
		Strategy: string(strategy),
		Workers:  workers,
		OS:       osName,
		Seconds:  res.Elapsed.Seconds(),
		Index:    idx,
		Primes:   res.Primes,
		Lost:     lost,
	}, nil
}

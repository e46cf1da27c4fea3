package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kolkov/syncbench/internal/sieve/plan"
	"github.com/kolkov/syncbench/internal/sieve/suite"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the experiment plan",
	Long: `Run executes every trial the plan describes and appends one CSV row
per trial to the plan's output file. Existing rows are kept, so repeated
runs accumulate samples for the same matrix.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSuite(ctx, newLogger(), viper.GetString("plan"), viper.GetString("output"))
	},
}

// runSuite loads the plan at planPath and executes the full matrix.
// A non-empty outputOverride redirects the results CSV. Cancellation
// via ctx stops between trials, never mid-trial, and is not an error:
// whatever was collected has already been flushed.
func runSuite(ctx context.Context, log *logrus.Logger, planPath, outputOverride string) error {
	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}
	if outputOverride != "" {
		p.Output = outputOverride
	}

	runner, err := suite.New(p, log)
	if err != nil {
		return err
	}

	if err := runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("interrupted; partial results were flushed")
			return nil
		}
		return err
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kolkov/syncbench/internal/sieve/results"
)

// defaultResultsFile mirrors the default plan's output so that
// `syncbench-suite run` followed by `syncbench-suite report` works
// without flags.
const defaultResultsFile = "all_results.csv"

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize collected results as Markdown",
	Long: `Report reads the accumulated results CSV and renders a Markdown
summary: mean execution time per strategy and worker count (split by
operating system), the fastest strategy at each worker count, and a
data-loss appendix when any unsafe trial dropped flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("report")
		return writeSummary(newLogger(), viper.GetString("output"), out)
	},
}

func init() {
	reportCmd.Flags().String("report", "summary_report.md", `summary file ("-" for stdout)`)
}

// writeSummary renders the CSV at csvPath into a Markdown summary at
// outPath. An empty csvPath falls back to the default plan's output;
// outPath "-" writes to stdout.
func writeSummary(log *logrus.Logger, csvPath, outPath string) error {
	if csvPath == "" {
		csvPath = defaultResultsFile
	}

	trials, err := results.ReadAll(csvPath)
	if err != nil {
		return err
	}

	if outPath == "-" {
		return results.WriteReport(os.Stdout, trials)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	if err := results.WriteReport(f, trials); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"trials":  len(trials),
		"summary": outPath,
	}).Info("summary written")
	return nil
}

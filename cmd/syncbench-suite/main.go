// Package main implements syncbench-suite, the experiment matrix
// runner.
//
// Where the syncbench binary times a single run, the suite executes a
// whole plan: every (strategy, workers) cell, several trials each,
// appended to a CSV results file and summarized as Markdown. The plan
// is a YAML document; `syncbench-suite init` writes the canonical one.
//
// Usage:
//
//	syncbench-suite init               # write the default plan
//	syncbench-suite run                # execute the plan, collect CSV
//	syncbench-suite report             # render CSV into Markdown
//
// Settings resolve in the usual order: command-line flag, then
// SYNCBENCH_* environment variable, then the optional --config file,
// then the built-in default.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "syncbench-suite",
	Short:   "Collect sieve synchronization measurements in bulk",
	Version: version,
	Long: `syncbench-suite runs the sieve synchronization experiment as a matrix:
every synchronization strategy at every configured worker count, several
trials per cell. Each trial appends one row to a CSV results file, with
optional verification against a sequential reference sieve; the report
command turns accumulated rows into a Markdown summary.

A trial owns the machine while its clock runs, so trials execute
strictly one at a time. Interrupting a run (Ctrl-C) finishes the trial
in flight, flushes the rows collected so far and exits cleanly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initSettings()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional settings file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("plan", "plan.yaml", "experiment plan file")
	rootCmd.PersistentFlags().String("output", "", "results CSV (run: overrides the plan's output; report: file to summarize)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("plan", rootCmd.PersistentFlags().Lookup("plan"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	viper.SetEnvPrefix("SYNCBENCH")
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd, initCmd, reportCmd)
}

// initSettings loads the optional settings file into viper. Flags and
// SYNCBENCH_* environment variables take precedence over its keys.
func initSettings() error {
	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading settings %s: %w", cfgFile, err)
	}
	return nil
}

// newLogger builds the suite logger at the configured level.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		log.Warnf("unknown log level %q, using info", viper.GetString("log_level"))
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kolkov/syncbench/internal/sieve/plan"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default experiment plan",
	Long: `Init writes the canonical plan to the --plan path: all four strategies
at 1, 2, 4 and 8 workers, three trials per cell, verification on. Edit
the file to shrink the matrix or to change the sieve parameters.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return writeDefaultPlan(newLogger(), viper.GetString("plan"), force)
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing plan file")
}

// writeDefaultPlan writes the canonical matrix to path, refusing to
// clobber an existing file unless force is set.
func writeDefaultPlan(log *logrus.Logger, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("plan %s already exists (use --force to overwrite)", path)
		}
	}

	p := plan.Default()
	if err := p.Save(path); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"plan":   path,
		"cells":  p.Cells(),
		"trials": p.Trials,
	}).Info("default plan written")
	return nil
}

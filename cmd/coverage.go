package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// coverageCmd represents the coverage command.
var coverageCmd = newCoverageCmd()

func newCoverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Regenerate coverage reports from existing test artifacts",
		Long: `Coverage drives only the coverage toolchain, skipping test execution.
It expects the counters and snapshots a previous run left in the build
output tree. The exit code is the number of failed coverage stages.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := configAdapter.Load(m.Path(configFlag))
			if err != nil {
				return err
			}

			failureCount = aggregator.Generate(cfg)

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}

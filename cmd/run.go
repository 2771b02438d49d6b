package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hosttest/internal/model"
)

var runBuildOutputFlag string
var runWorkspaceFlag string
var runArchFlags []string
var runToolchainFlag string
var runCoverageFlag bool

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the discovered host-based unit tests",
		Long: `Run discovers the test binaries for each target architecture, executes
them, tallies failures from their XML result documents, and generates
coverage reports when the toolchain supports it.

Flags override the corresponding build environment variables; an
unset flag leaves the environment value in place.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(func(cfg *m.Config) {
				flags := cmd.Flags()

				if flags.Changed("build-output") {
					cfg.BuildOutput = m.Path(runBuildOutputFlag)
				}

				if flags.Changed("workspace") {
					cfg.Workspace = m.Path(runWorkspaceFlag)
				}

				if flags.Changed("arch") {
					cfg.Arches = runArchFlags
				}

				if flags.Changed("toolchain") {
					cfg.Toolchain = m.Toolchain(runToolchainFlag)
				}

				if flags.Changed("coverage") {
					cfg.Coverage = runCoverageFlag
				}
			})
		},
	}
	cmd.Flags().StringVarP(&runBuildOutputFlag, "build-output", "o", "", "package build output root")
	cmd.Flags().StringVarP(&runWorkspaceFlag, "workspace", "w", "", "workspace root")
	cmd.Flags().StringSliceVarP(&runArchFlags, "arch", "a", nil, "target architectures to test (can be repeated)")
	cmd.Flags().StringVarP(&runToolchainFlag, "toolchain", "t", "", "toolchain tag that selects the coverage variant")
	cmd.Flags().BoolVar(&runCoverageFlag, "coverage", true, "generate coverage reports after testing")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// Package cmd provides the root command and CLI setup for hosttest.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/hosttest/internal/adapter"
	"github.com/mouse-blink/hosttest/internal/controller"
	"github.com/mouse-blink/hosttest/internal/domain"
	m "github.com/mouse-blink/hosttest/internal/model"
)

var configAdapter adapter.ConfigAdapter
var fsAdapter adapter.BuildFSAdapter
var commandRunner adapter.CommandRunner
var discovery domain.Discovery
var engine domain.Engine
var aggregator domain.Aggregator
var pipelineDriver domain.Pipeline
var ui controller.UI

func init() {
	rewireFn = rewire
	rewire(controller.IsTTY(os.Stdout))
}

// rewire rebuilds the whole dependency graph for the given UI mode. It runs
// again from PersistentPreRun when --plain forces the simple UI, so every
// component that holds a UI reference picks up the replacement.
func rewire(useTTY bool) {
	ui = controller.NewUI(rootCmd, useTTY)
	configAdapter = adapter.NewEnvConfigAdapter()
	fsAdapter = adapter.NewLocalBuildFSAdapter()
	commandRunner = adapter.NewLocalCommandRunner()
	discovery = domain.NewDiscovery(fsAdapter, m.HostOS())
	engine = domain.NewEngine(commandRunner, fsAdapter, domain.NewResultParser(fsAdapter), ui)
	aggregator = domain.NewAggregator(commandRunner, fsAdapter)
	pipelineDriver = domain.NewPipeline(fsAdapter, discovery, engine, aggregator, ui)
}

var configFlag string
var verboseFlag bool
var plainFlag bool

// failureCount is the total the last pipeline run produced. Execute returns
// it as the process exit code so CI gates on it directly.
var failureCount int

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

// rewireFn is assigned in init so the PersistentPreRun closure does not
// reference rewire directly, which would create an initialization cycle
// through rootCmd.
var rewireFn func(bool)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosttest",
		Short: "Host-based unit test runner",
		Long: `Hosttest discovers compiled host-based unit test binaries in a build
output tree, runs them with cmocka and googletest configured to write
XML result documents, tallies the failures, and drives the coverage
toolchain (lcov for GCC builds, OpenCppCoverage for MSVC builds).

Configuration comes from the build environment (CI_BUILD_TYPE,
BUILD_OUTPUT_BASE, WORKSPACE, TARGET_ARCH, TOOL_CHAIN_TAG,
CODE_COVERAGE), optionally seeded from a YAML file. The process exit
code is the total number of test and coverage failures.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verboseFlag)

			if plainFlag {
				rewireFn(false)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPipeline(nil)
		},
	}
	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "YAML file with build description defaults")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "force plain text output even on a terminal")

	return cmd
}

// Execute runs the root command. It returns the total failure count of the
// last pipeline run, or 1 when the command itself failed.
func Execute() int {
	err := rootCmd.Execute()
	if err != nil {
		return 1
	}

	return failureCount
}

// runPipeline loads configuration, applies the optional override, and drives
// one full pipeline run inside a UI session.
func runPipeline(override func(*m.Config)) error {
	cfg, err := configAdapter.Load(m.Path(configFlag))
	if err != nil {
		return err
	}

	if override != nil {
		override(&cfg)
	}

	if err := ui.Start(); err != nil {
		return err
	}
	defer ui.Close()

	failures, err := pipelineDriver.Run(cfg)
	if err != nil {
		return err
	}

	failureCount = failures

	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

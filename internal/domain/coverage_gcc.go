package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

var lcovVersionPattern = regexp.MustCompile(`version (\d+)\.(\d+)`)

// lcovPipeline implements the GCC-family coverage variant on top of lcov and
// lcov_cobertura. Stages run sequentially and fail fast; each stage's output
// tracefile is the next stage's input.
type lcovPipeline struct {
	runner         adapter.CommandRunner
	fs             adapter.BuildFSAdapter
	buildOutput    m.Path
	workspaceBuild m.Path

	// extraFlags carries --ignore-errors mismatch once the lcov version
	// probe has established that the installed tool needs it.
	extraFlags []string
}

func newLcovPipeline(runner adapter.CommandRunner, fs adapter.BuildFSAdapter, cfg m.Config) *lcovPipeline {
	return &lcovPipeline{
		runner:         runner,
		fs:             fs,
		buildOutput:    cfg.BuildOutput,
		workspaceBuild: cfg.WorkspaceBuild(),
	}
}

// traceAggregate owns one lcov tracefile path and the operations that write
// it. Branch coverage is enabled on every invocation.
type traceAggregate struct {
	pipeline *lcovPipeline
	path     m.Path
}

func (p *lcovPipeline) aggregate(path m.Path) traceAggregate {
	return traceAggregate{pipeline: p, path: path}
}

// Capture records coverage counters from a build-output tree into the
// tracefile. The initial capture is the zero-coverage baseline and excludes
// external/system sources.
func (t traceAggregate) Capture(dir m.Path, initial bool) error {
	var args []string

	if initial {
		args = append(args, "--no-external", "--capture", "--initial", "--directory", string(dir))
	} else {
		args = append(args, "--capture", "--directory", string(dir)+"/")
	}

	args = append(args, "--output-file", string(t.path), "--rc", "lcov_branch_coverage=1")
	args = append(args, t.pipeline.extraFlags...)

	return t.pipeline.run("lcov", args)
}

// Merge combines the given tracefiles into this aggregate.
func (t traceAggregate) Merge(inputs ...m.Path) error {
	var args []string

	for _, input := range inputs {
		args = append(args, "--add-tracefile", string(input))
	}

	args = append(args, "--output-file", string(t.path), "--rc", "lcov_branch_coverage=1")
	args = append(args, t.pipeline.extraFlags...)

	return t.pipeline.run("lcov", args)
}

// PackageReport captures, merges, and converts coverage for the package
// build-output tree.
func (p *lcovPipeline) PackageReport() error {
	major, err := p.lcovMajorVersion()
	if err != nil {
		return fmt.Errorf("failed to determine lcov version: %w", err)
	}

	slog.Info("using lcov", "major_version", major)

	// lcov v2+ requires mismatch tolerance to work against gcov output.
	if major >= 2 {
		p.extraFlags = []string{"--ignore-errors", "mismatch"}
	}

	baseline := p.aggregate(m.CoverageBaseline(p.buildOutput))
	if err := baseline.Capture(p.buildOutput, true); err != nil {
		return fmt.Errorf("failed to build initial coverage data: %w", err)
	}

	test := p.aggregate(m.CoverageTest(p.buildOutput))
	if err := test.Capture(p.buildOutput, false); err != nil {
		return fmt.Errorf("failed to build coverage data for tested files: %w", err)
	}

	total := p.aggregate(m.CoverageTotal(p.buildOutput))
	if err := total.Merge(baseline.path, test.path); err != nil {
		return fmt.Errorf("failed to aggregate coverage data: %w", err)
	}

	if err := p.export(total.path, m.CompareReport(p.buildOutput), false); err != nil {
		return fmt.Errorf("failed to generate coverage XML: %w", err)
	}

	if err := p.export(total.path, m.CoverageReport(p.buildOutput), true); err != nil {
		return fmt.Errorf("failed to generate filtered coverage XML: %w", err)
	}

	return nil
}

// WorkspaceReport merges every package's total-coverage.info under the
// workspace build root and regenerates the workspace-level report.
func (p *lcovPipeline) WorkspaceReport() error {
	traces, err := p.fs.GlobRecursive(p.workspaceBuild, "total-coverage.info")
	if err != nil {
		return fmt.Errorf("failed to glob package tracefiles: %w", err)
	}

	all := p.aggregate(m.CoverageAll(p.workspaceBuild))
	if err := all.Merge(traces...); err != nil {
		return fmt.Errorf("failed to generate all coverage file: %w", err)
	}

	// A stale workspace report would otherwise merge into the new one.
	report := m.CoverageReport(p.workspaceBuild)
	if p.fs.Exists(report) {
		if err := p.fs.Remove(report); err != nil {
			return fmt.Errorf("failed to remove stale workspace report: %w", err)
		}
	}

	if err := p.export(all.path, report, true); err != nil {
		return fmt.Errorf("failed to generate workspace coverage XML: %w", err)
	}

	return nil
}

// export converts a tracefile to Cobertura XML, optionally filtering
// generated/test/mock/debug-only sources.
func (p *lcovPipeline) export(trace, report m.Path, filtered bool) error {
	args := []string{string(trace)}

	if filtered {
		args = append(args, "--excludes", coverageExcludePattern)
	}

	args = append(args, "-o", string(report))

	return p.run("lcov_cobertura", args)
}

func (p *lcovPipeline) lcovMajorVersion() (int, error) {
	result, err := p.runner.Run(adapter.Command{Name: "lcov", Args: []string{"--version"}})
	if err != nil {
		return 0, err
	}

	if result.ExitCode != 0 {
		return 0, fmt.Errorf("lcov --version exited with code %d", result.ExitCode)
	}

	match := lcovVersionPattern.FindStringSubmatch(result.Output)
	if match == nil {
		return 0, fmt.Errorf("no version number in lcov output %q", result.Output)
	}

	return strconv.Atoi(match[1])
}

func (p *lcovPipeline) run(name string, args []string) error {
	result, err := p.runner.Run(adapter.Command{Name: name, Args: args})
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("%s exited with code %d", name, result.ExitCode)
	}

	return nil
}

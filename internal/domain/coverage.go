package domain

import (
	"log/slog"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// coverageExcludePattern filters generated, test, mock, and debug-only
// sources out of the authoritative Cobertura reports.
const coverageExcludePattern = "^.*UnitTest|^.*MU|^.*Mock|^.*DEBUG"

// coveragePipeline is one toolchain-specific coverage variant. Both variants
// first produce the package-scope report, then the workspace-scope report
// merged from every package in the same workspace build.
type coveragePipeline interface {
	PackageReport() error
	WorkspaceReport() error
}

// Aggregator drives the external coverage toolchain after test execution.
type Aggregator interface {
	// Generate returns the number of counted coverage failures: 0 on
	// success or when the toolchain has no coverage support, 1 when any
	// stage fails. Stage failures abort the remaining stages but never
	// crash the host process.
	Generate(cfg m.Config) int
}

type aggregator struct {
	runner adapter.CommandRunner
	fs     adapter.BuildFSAdapter
}

// NewAggregator constructs an Aggregator over the provided command runner and
// filesystem adapter.
func NewAggregator(runner adapter.CommandRunner, fs adapter.BuildFSAdapter) Aggregator {
	return &aggregator{
		runner: runner,
		fs:     fs,
	}
}

// Generate dispatches on the toolchain tag to exactly one pipeline variant.
// Unrecognized tags are skipped with a diagnostic, not counted as failures.
func (a *aggregator) Generate(cfg m.Config) int {
	var pipeline coveragePipeline

	switch {
	case cfg.Toolchain.IsGCC():
		pipeline = newLcovPipeline(a.runner, a.fs, cfg)
	case cfg.Toolchain.IsMSVC():
		pipeline = newOpenCppCoveragePipeline(a.runner, a.fs, cfg)
	default:
		slog.Info("skipping code coverage: only GCC and MSVC toolchains are supported", "toolchain", cfg.Toolchain)
		return 0
	}

	slog.Info("generating unit test code coverage", "toolchain", cfg.Toolchain)

	if err := pipeline.PackageReport(); err != nil {
		slog.Error("coverage: package report failed", "error", err)
		return 1
	}

	if err := pipeline.WorkspaceReport(); err != nil {
		slog.Error("coverage: workspace report failed", "error", err)
		return 1
	}

	return 0
}

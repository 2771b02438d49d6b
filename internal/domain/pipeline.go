package domain

import (
	"fmt"
	"log/slog"

	"github.com/mouse-blink/hosttest/internal/adapter"
	"github.com/mouse-blink/hosttest/internal/controller"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// noTestsMessage explains the likely causes of an empty discovery result.
const noTestsMessage = "no unit tests discovered; test coverage will not be generated. " +
	"Prevent this by (1) adding host-based unit tests to this package, " +
	"(2) ensuring tests have the word \"Test\" in their name, " +
	"(3) disabling the host unit test build for this package"

// Pipeline sequences discovery, execution, and coverage per target
// architecture. Architectures, binaries, and coverage stages all run strictly
// one at a time: the coverage aggregates are shared files that later stages
// read back, so overlap would corrupt them.
type Pipeline interface {
	// Run returns the total failure count across all architectures. The
	// error is reserved for the fatal taxonomy (unsupported OS, malformed
	// result XML); counted failures never surface as errors.
	Run(cfg m.Config) (int, error)
}

type pipeline struct {
	fs         adapter.BuildFSAdapter
	discovery  Discovery
	engine     Engine
	aggregator Aggregator
	ui         controller.UI
}

// NewPipeline constructs the top-level pipeline driver.
func NewPipeline(fs adapter.BuildFSAdapter, discovery Discovery, engine Engine, aggregator Aggregator, ui controller.UI) Pipeline {
	return &pipeline{
		fs:         fs,
		discovery:  discovery,
		engine:     engine,
		aggregator: aggregator,
		ui:         ui,
	}
}

func (p *pipeline) Run(cfg m.Config) (int, error) {
	if cfg.BuildType != m.BuildTypeHostUnitTest {
		return 0, nil
	}

	slog.Info("running host based unit tests")

	failureCount := 0
	summary := m.RunSummary{}

	for _, arch := range cfg.Arches {
		slog.Info("testing architecture", "arch", arch)
		p.ui.ArchStarted(arch)

		dir := cfg.ArchDir(arch)

		if err := p.clearStaleResults(dir); err != nil {
			return 0, err
		}

		tests, err := p.discovery.Discover(dir, arch)
		if err != nil {
			return 0, err
		}

		if len(tests) == 0 {
			slog.Warn(noTestsMessage, "arch", arch)
			continue
		}

		p.ui.TestsPlanned(len(tests))

		outcomes, failures, err := p.engine.RunAll(tests, arch)
		if err != nil {
			return 0, err
		}

		failureCount += failures
		summary.Outcomes = append(summary.Outcomes, outcomes...)

		if cfg.Coverage {
			coverageFailures := p.aggregator.Generate(cfg)
			failureCount += coverageFailures
			summary.CoverageFailures += coverageFailures
		}
	}

	if err := p.ui.DisplaySummary(summary); err != nil {
		return failureCount, err
	}

	return failureCount, nil
}

// clearStaleResults deletes result documents a previous run left behind so
// they cannot be double-counted.
func (p *pipeline) clearStaleResults(dir m.Path) error {
	stale, err := p.fs.Glob(m.StaleResultGlob(dir))
	if err != nil {
		return fmt.Errorf("failed to glob stale result documents in %s: %w", dir, err)
	}

	for _, document := range stale {
		if err := p.fs.Remove(document); err != nil {
			return fmt.Errorf("failed to remove stale result document %s: %w", document, err)
		}
	}

	return nil
}

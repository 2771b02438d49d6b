package domain

import (
	"fmt"
	"os"
	"strings"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

const openCppCoverage = "OpenCppCoverage"

// openCppCoveragePipeline implements the MSVC-family coverage variant. Tests
// are re-run under OpenCppCoverage, producing per-test binary snapshots that
// are folded one at a time into a running aggregate, first per package and
// then across the whole workspace build tree.
type openCppCoveragePipeline struct {
	runner         adapter.CommandRunner
	fs             adapter.BuildFSAdapter
	buildOutput    m.Path
	sourceRoot     string
	workspaceBuild m.Path
}

func newOpenCppCoveragePipeline(runner adapter.CommandRunner, fs adapter.BuildFSAdapter, cfg m.Config) *openCppCoveragePipeline {
	sourceRoot := string(cfg.Workspace)
	if !strings.HasSuffix(sourceRoot, string(os.PathSeparator)) {
		sourceRoot += string(os.PathSeparator)
	}

	return &openCppCoveragePipeline{
		runner:         runner,
		fs:             fs,
		buildOutput:    cfg.BuildOutput,
		sourceRoot:     sourceRoot,
		workspaceBuild: cfg.WorkspaceBuild(),
	}
}

// snapshotAggregate owns one running binary aggregate file. Folding a
// snapshot merges it with the existing aggregate (when one is on disk) and
// overwrites the aggregate in place, accumulating one test at a time.
type snapshotAggregate struct {
	pipeline *openCppCoveragePipeline
	path     m.Path
}

func (p *openCppCoveragePipeline) aggregate(path m.Path) snapshotAggregate {
	return snapshotAggregate{pipeline: p, path: path}
}

// Fold merges one per-test snapshot into the aggregate.
func (a snapshotAggregate) Fold(snapshot m.Path) error {
	args := []string{
		"--export_type", "binary:" + string(a.path),
		"--working_dir=" + string(a.pipeline.workspaceBuild),
		"--input_coverage=" + string(snapshot),
	}

	if a.pipeline.fs.Exists(a.path) {
		args = append(args, "--input_coverage="+string(a.path))
	}

	return a.pipeline.run(args)
}

// Export converts the aggregate to a Cobertura report.
func (a snapshotAggregate) Export(report m.Path) error {
	return a.pipeline.run([]string{
		"--export_type", "cobertura:" + string(report),
		"--working_dir=" + string(a.pipeline.workspaceBuild),
		"--input_coverage=" + string(a.path),
	})
}

// PackageReport re-discovers the package's test binaries, runs each under the
// coverage tool, and exports the package-level report.
func (p *openCppCoveragePipeline) PackageReport() error {
	tests, err := p.fs.GlobRecursive(p.buildOutput, "*Test*.exe")
	if err != nil {
		return fmt.Errorf("failed to glob test binaries: %w", err)
	}

	aggregate := p.aggregate(m.SnapshotAggregate(p.buildOutput))

	for _, test := range tests {
		snapshot := m.TestSnapshot(test)

		err := p.run([]string{
			"--source", p.sourceRoot,
			"--export_type", "binary:" + string(snapshot),
			"--", string(test),
		})
		if err != nil {
			return fmt.Errorf("failed to collect coverage data for %s: %w", test, err)
		}

		if err := aggregate.Fold(snapshot); err != nil {
			return fmt.Errorf("failed to merge coverage data for %s: %w", test, err)
		}
	}

	if err := aggregate.Export(m.CoverageReport(p.buildOutput)); err != nil {
		return fmt.Errorf("failed to generate package coverage XML: %w", err)
	}

	return nil
}

// WorkspaceReport folds every per-test snapshot under the workspace build
// tree into a workspace aggregate and exports the workspace-level report.
func (p *openCppCoveragePipeline) WorkspaceReport() error {
	snapshots, err := p.fs.GlobRecursive(p.workspaceBuild, "*Test*.exe.cov")
	if err != nil {
		return fmt.Errorf("failed to glob coverage snapshots: %w", err)
	}

	aggregate := p.aggregate(m.SnapshotAggregate(p.workspaceBuild))

	for _, snapshot := range snapshots {
		if err := aggregate.Fold(snapshot); err != nil {
			return fmt.Errorf("failed to merge workspace coverage data: %w", err)
		}
	}

	if err := aggregate.Export(m.CoverageReport(p.workspaceBuild)); err != nil {
		return fmt.Errorf("failed to generate workspace coverage XML: %w", err)
	}

	return nil
}

func (p *openCppCoveragePipeline) run(args []string) error {
	result, err := p.runner.Run(adapter.Command{Name: openCppCoverage, Args: args})
	if err != nil {
		return err
	}

	if result.ExitCode != 0 {
		return fmt.Errorf("%s exited with code %d", openCppCoverage, result.ExitCode)
	}

	return nil
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/hosttest/internal/adapter"
	adapterMocks "github.com/mouse-blink/hosttest/internal/adapter/mocks"
	m "github.com/mouse-blink/hosttest/internal/model"
)

func gccConfig() m.Config {
	return m.Config{
		BuildType:   m.BuildTypeHostUnitTest,
		BuildOutput: "/out",
		Workspace:   "/ws",
		Toolchain:   "GCC5",
		Coverage:    true,
	}
}

func lcovCmd(args ...string) adapter.Command {
	return adapter.Command{Name: "lcov", Args: args}
}

func coberturaCmd(args ...string) adapter.Command {
	return adapter.Command{Name: "lcov_cobertura", Args: args}
}

func expectOK(runner *adapterMocks.MockCommandRunner, cmd adapter.Command) {
	runner.On("Run", cmd).Return(adapter.CommandResult{ExitCode: 0}, nil).Once()
}

func TestAggregator_Gcc_FullPipeline(t *testing.T) {
	runner := adapterMocks.NewMockCommandRunner(t)
	fs := adapterMocks.NewMockBuildFSAdapter(t)

	runner.On("Run", lcovCmd("--version")).
		Return(adapter.CommandResult{ExitCode: 0, Output: "lcov: LCOV version 1.14"}, nil).Once()

	expectOK(runner, lcovCmd(
		"--no-external", "--capture", "--initial", "--directory", "/out",
		"--output-file", "/out/cov-base.info", "--rc", "lcov_branch_coverage=1"))
	expectOK(runner, lcovCmd(
		"--capture", "--directory", "/out/",
		"--output-file", "/out/coverage-test.info", "--rc", "lcov_branch_coverage=1"))
	expectOK(runner, lcovCmd(
		"--add-tracefile", "/out/cov-base.info", "--add-tracefile", "/out/coverage-test.info",
		"--output-file", "/out/total-coverage.info", "--rc", "lcov_branch_coverage=1"))
	expectOK(runner, coberturaCmd("/out/total-coverage.info", "-o", "/out/compare.xml"))
	expectOK(runner, coberturaCmd(
		"/out/total-coverage.info", "--excludes", coverageExcludePattern, "-o", "/out/coverage.xml"))

	fs.On("GlobRecursive", m.Path("/ws/Build"), "total-coverage.info").
		Return([]m.Path{"/ws/Build/Pkg/total-coverage.info", "/out/total-coverage.info"}, nil).Once()
	expectOK(runner, lcovCmd(
		"--add-tracefile", "/ws/Build/Pkg/total-coverage.info",
		"--add-tracefile", "/out/total-coverage.info",
		"--output-file", "/ws/Build/all-coverage.info", "--rc", "lcov_branch_coverage=1"))

	fs.On("Exists", m.Path("/ws/Build/coverage.xml")).Return(true).Once()
	fs.On("Remove", m.Path("/ws/Build/coverage.xml")).Return(nil).Once()
	expectOK(runner, coberturaCmd(
		"/ws/Build/all-coverage.info", "--excludes", coverageExcludePattern, "-o", "/ws/Build/coverage.xml"))

	failures := NewAggregator(runner, fs).Generate(gccConfig())
	assert.Equal(t, 0, failures)
}

func TestAggregator_Gcc_VersionTwoAddsMismatchTolerance(t *testing.T) {
	runner := adapterMocks.NewMockCommandRunner(t)
	fs := adapterMocks.NewMockBuildFSAdapter(t)

	runner.On("Run", lcovCmd("--version")).
		Return(adapter.CommandResult{ExitCode: 0, Output: "lcov: LCOV version 2.0-1"}, nil).Once()

	// The baseline capture must now carry the mismatch tolerance; failing it
	// here also proves no later stage runs.
	runner.On("Run", lcovCmd(
		"--no-external", "--capture", "--initial", "--directory", "/out",
		"--output-file", "/out/cov-base.info", "--rc", "lcov_branch_coverage=1",
		"--ignore-errors", "mismatch")).
		Return(adapter.CommandResult{ExitCode: 1}, nil).Once()

	failures := NewAggregator(runner, fs).Generate(gccConfig())
	assert.Equal(t, 1, failures)
}

func TestAggregator_Gcc_VersionProbeFailure(t *testing.T) {
	t.Run("non-zero exit counts one coverage failure", func(t *testing.T) {
		runner := adapterMocks.NewMockCommandRunner(t)
		fs := adapterMocks.NewMockBuildFSAdapter(t)

		runner.On("Run", lcovCmd("--version")).
			Return(adapter.CommandResult{ExitCode: 127}, nil).Once()

		failures := NewAggregator(runner, fs).Generate(gccConfig())
		assert.Equal(t, 1, failures)
	})

	t.Run("unparseable version output counts one coverage failure", func(t *testing.T) {
		runner := adapterMocks.NewMockCommandRunner(t)
		fs := adapterMocks.NewMockBuildFSAdapter(t)

		runner.On("Run", lcovCmd("--version")).
			Return(adapter.CommandResult{ExitCode: 0, Output: "gibberish"}, nil).Once()

		failures := NewAggregator(runner, fs).Generate(gccConfig())
		assert.Equal(t, 1, failures)
	})
}

func TestAggregator_Gcc_FailFastMidPipeline(t *testing.T) {
	runner := adapterMocks.NewMockCommandRunner(t)
	fs := adapterMocks.NewMockBuildFSAdapter(t)

	runner.On("Run", lcovCmd("--version")).
		Return(adapter.CommandResult{ExitCode: 0, Output: "lcov: LCOV version 1.16"}, nil).Once()
	expectOK(runner, lcovCmd(
		"--no-external", "--capture", "--initial", "--directory", "/out",
		"--output-file", "/out/cov-base.info", "--rc", "lcov_branch_coverage=1"))

	// The test capture fails; the mock rejects any further invocation.
	runner.On("Run", lcovCmd(
		"--capture", "--directory", "/out/",
		"--output-file", "/out/coverage-test.info", "--rc", "lcov_branch_coverage=1")).
		Return(adapter.CommandResult{ExitCode: 1}, nil).Once()

	failures := NewAggregator(runner, fs).Generate(gccConfig())
	assert.Equal(t, 1, failures)
}

func TestLcovMajorVersion_Parsing(t *testing.T) {
	for _, tc := range []struct {
		output string
		major  int
	}{
		{"lcov: LCOV version 1.14", 1},
		{"lcov: LCOV version 2.0-1", 2},
		{"lcov: LCOV version 2.3.1", 2},
	} {
		runner := adapterMocks.NewMockCommandRunner(t)
		runner.On("Run", lcovCmd("--version")).
			Return(adapter.CommandResult{ExitCode: 0, Output: tc.output}, nil).Once()

		pipeline := newLcovPipeline(runner, adapterMocks.NewMockBuildFSAdapter(t), gccConfig())

		major, err := pipeline.lcovMajorVersion()
		require.NoError(t, err)
		assert.Equal(t, tc.major, major)
	}
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunOutcome_FailureCount(t *testing.T) {
	t.Run("clean exit with no failures counts zero", func(t *testing.T) {
		assert.Equal(t, 0, RunOutcome{ExitCode: 0}.FailureCount())
	})

	t.Run("non-zero exit counts exactly one", func(t *testing.T) {
		outcome := RunOutcome{
			ExitCode: 2,
			Failures: []CaseFailure{{Case: "TestBar"}, {Case: "TestBaz"}},
		}
		assert.Equal(t, 1, outcome.FailureCount())
	})

	t.Run("clean exit counts one per parsed failure", func(t *testing.T) {
		outcome := RunOutcome{
			Failures: []CaseFailure{{Case: "TestBar"}, {Case: "TestBaz"}},
		}
		assert.Equal(t, 2, outcome.FailureCount())
	})
}

func TestRunSummary_TotalFailures(t *testing.T) {
	summary := RunSummary{
		Outcomes: []RunOutcome{
			{ExitCode: 1},
			{Failures: []CaseFailure{{Case: "TestA"}, {Case: "TestB"}}},
			{},
		},
		CoverageFailures: 1,
	}

	assert.Equal(t, 4, summary.TotalFailures())
}

func TestToolchainFamilies(t *testing.T) {
	assert.True(t, Toolchain("GCC5").IsGCC())
	assert.True(t, Toolchain("GCC").IsGCC())
	assert.False(t, Toolchain("GCC5").IsMSVC())
	assert.True(t, Toolchain("VS2022").IsMSVC())
	assert.False(t, Toolchain("VS2022").IsGCC())
	assert.False(t, Toolchain("CLANGPDB").IsGCC())
	assert.False(t, Toolchain("CLANGPDB").IsMSVC())
}

func TestConfigPaths(t *testing.T) {
	cfg := Config{
		BuildOutput: Path("/ws/Build/PkgPkg/NOOPT_GCC5"),
		Workspace:   Path("/ws"),
	}

	assert.Equal(t, Path("/ws/Build/PkgPkg/NOOPT_GCC5/X64"), cfg.ArchDir("X64"))
	assert.Equal(t, Path("/ws/Build"), cfg.WorkspaceBuild())
}

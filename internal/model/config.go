package model

import (
	"path/filepath"
	"strings"
)

// BuildTypeHostUnitTest is the build-type marker that gates the pipeline.
// Any other build type makes the whole run a no-op.
const BuildTypeHostUnitTest = "host_unit_test"

// Toolchain identifies the compiler/linker suite the build used. It selects
// which coverage pipeline variant applies.
type Toolchain string

// IsGCC reports whether the tag names a GCC-family toolchain (lcov coverage).
func (t Toolchain) IsGCC() bool {
	return strings.HasPrefix(string(t), "GCC")
}

// IsMSVC reports whether the tag names an MSVC-family toolchain
// (OpenCppCoverage coverage).
func (t Toolchain) IsMSVC() bool {
	return strings.HasPrefix(string(t), "VS")
}

// Config carries the build-environment inputs the pipeline runs against. All
// artifact paths the pipeline produces derive from these values plus the
// architecture and test binary path, so runs for different architectures
// never collide.
type Config struct {
	BuildType   string
	BuildOutput Path // package build-output root
	Workspace   Path // workspace root
	Arches      []string
	Toolchain   Toolchain
	Coverage    bool
}

// ArchDir returns the build-output directory for one architecture.
func (c Config) ArchDir(arch string) Path {
	return Path(filepath.Join(string(c.BuildOutput), arch))
}

// WorkspaceBuild returns the workspace-level build root under which all
// packages place their build output.
func (c Config) WorkspaceBuild() Path {
	return Path(filepath.Join(string(c.Workspace), "Build"))
}

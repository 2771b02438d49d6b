package model

import "path/filepath"

// Artifact naming is a fixed contract with downstream CI consumers: result
// documents are <binary>.<FRAMEWORK>.<arch>.result.xml next to the binary,
// coverage aggregates and reports use well-known names under the package and
// workspace build roots.

// CmockaResultPath is the value for CMOCKA_XML_FILE. The %g segment is a
// cmocka placeholder substituted with the test group name, which keeps
// multiple groups in one binary from clobbering each other.
func CmockaResultPath(test Path, arch string) string {
	return string(test) + ".CMOCKA.%g." + arch + ".result.xml"
}

// GTestResultPath is the literal result path handed to googletest via
// GTEST_OUTPUT.
func GTestResultPath(test Path, arch string) string {
	return string(test) + ".GTEST." + arch + ".result.xml"
}

// ResultGlob matches every result document a binary may have written for one
// architecture, whichever framework wrote it.
func ResultGlob(test Path, arch string) string {
	return string(test) + ".*." + arch + ".result.xml"
}

// StaleResultGlob matches result documents left over from a previous run in
// an architecture's build-output directory.
func StaleResultGlob(dir Path) string {
	return filepath.Join(string(dir), "*.result.xml")
}

// CoverageBaseline is the zero-coverage lcov snapshot for a package.
func CoverageBaseline(buildOutput Path) Path {
	return Path(filepath.Join(string(buildOutput), "cov-base.info"))
}

// CoverageTest is the post-execution lcov snapshot for a package.
func CoverageTest(buildOutput Path) Path {
	return Path(filepath.Join(string(buildOutput), "coverage-test.info"))
}

// CoverageTotal is the merged package-level lcov aggregate.
func CoverageTotal(buildOutput Path) Path {
	return Path(filepath.Join(string(buildOutput), "total-coverage.info"))
}

// CoverageAll is the workspace-level lcov aggregate merged from every
// package's total-coverage.info.
func CoverageAll(workspaceBuild Path) Path {
	return Path(filepath.Join(string(workspaceBuild), "all-coverage.info"))
}

// CompareReport is the unfiltered Cobertura conversion of a package
// aggregate, kept for diagnostics.
func CompareReport(buildOutput Path) Path {
	return Path(filepath.Join(string(buildOutput), "compare.xml"))
}

// CoverageReport is the authoritative Cobertura report for a package or, when
// rooted at the workspace build directory, for the whole workspace.
func CoverageReport(dir Path) Path {
	return Path(filepath.Join(string(dir), "coverage.xml"))
}

// SnapshotAggregate is the running OpenCppCoverage binary aggregate for a
// package or workspace build root.
func SnapshotAggregate(dir Path) Path {
	return Path(filepath.Join(string(dir), "coverage.cov"))
}

// TestSnapshot is the per-test OpenCppCoverage binary snapshot.
func TestSnapshot(test Path) Path {
	return test + ".cov"
}

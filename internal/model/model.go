// Package model defines the data types shared across the hosttest pipeline.
package model

import "runtime"

// Path represents a file system path.
type Path string

// OperatingSystem identifies the host OS convention used to locate and run
// compiled test binaries.
type OperatingSystem string

const (
	// OSLinux locates binaries by name substring plus execute permission.
	OSLinux OperatingSystem = "linux"

	// OSWindows locates binaries by the *Test*.exe name pattern.
	OSWindows OperatingSystem = "windows"
)

// HostOS reports the operating system the pipeline is running on.
func HostOS() OperatingSystem {
	return OperatingSystem(runtime.GOOS)
}

// TestBinary is a compiled host-side unit test discovered in a build-output
// directory. Binaries are discovered fresh on every run and never persisted.
type TestBinary struct {
	Path Path
	Arch string
	OS   OperatingSystem
}

// CaseFailure is one failed test case parsed from a result document.
type CaseFailure struct {
	Case    string
	Message string
}

// RunOutcome captures the execution of a single test binary. A non-zero exit
// code is one failure on its own; parsed case failures only exist for
// binaries that exited cleanly and wrote a result document.
type RunOutcome struct {
	Binary   TestBinary
	ExitCode int
	Failures []CaseFailure
}

// FailureCount returns the number of failures this outcome contributes to the
// pipeline total. A crashed binary counts exactly once regardless of any
// result documents it may have left behind.
func (o RunOutcome) FailureCount() int {
	if o.ExitCode != 0 {
		return 1
	}

	return len(o.Failures)
}

// RunSummary aggregates outcomes across all processed architectures for
// display once the pipeline finishes.
type RunSummary struct {
	Outcomes         []RunOutcome
	CoverageFailures int
}

// TotalFailures sums every independent failure source in the summary.
func (s RunSummary) TotalFailures() int {
	total := s.CoverageFailures
	for _, outcome := range s.Outcomes {
		total += outcome.FailureCount()
	}

	return total
}

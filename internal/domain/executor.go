package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mouse-blink/hosttest/internal/adapter"
	"github.com/mouse-blink/hosttest/internal/controller"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// Framework toggles applied to every spawned binary. Exception interception
// is disabled so crashes surface to the sanitizer instead of being swallowed,
// leak detection is out of scope for this pass, and both frameworks are told
// to report in XML.
const (
	envCatchExceptions = "GTEST_CATCH_EXCEPTIONS=0"
	envLeakDetection   = "ASAN_OPTIONS=detect_leaks=0"
	envResultFormat    = "CMOCKA_MESSAGE_OUTPUT=xml"
)

// Engine executes discovered test binaries sequentially and tallies their
// failures.
type Engine interface {
	RunAll(tests []m.TestBinary, arch string) ([]m.RunOutcome, int, error)
}

type engine struct {
	runner adapter.CommandRunner
	fs     adapter.BuildFSAdapter
	parser ResultParser
	ui     controller.UI
}

// NewEngine constructs an Engine over the provided runner, filesystem,
// parser, and UI.
func NewEngine(runner adapter.CommandRunner, fs adapter.BuildFSAdapter, parser ResultParser, ui controller.UI) Engine {
	return &engine{
		runner: runner,
		fs:     fs,
		parser: parser,
		ui:     ui,
	}
}

// RunAll executes each binary in order and returns the outcomes plus the
// architecture's total failure count. Only a malformed result document aborts
// the run; everything else is counted and execution continues.
func (e *engine) RunAll(tests []m.TestBinary, arch string) ([]m.RunOutcome, int, error) {
	outcomes := make([]m.RunOutcome, 0, len(tests))
	failureCount := 0

	for _, test := range tests {
		e.ui.TestStarted(test)

		outcome, err := e.runOne(test, arch)
		if err != nil {
			return nil, 0, err
		}

		failureCount += outcome.FailureCount()
		outcomes = append(outcomes, outcome)
		e.ui.TestCompleted(outcome)
	}

	return outcomes, failureCount, nil
}

func (e *engine) runOne(test m.TestBinary, arch string) (m.RunOutcome, error) {
	name := filepath.Base(string(test.Path))

	result, runErr := e.runner.Run(adapter.Command{
		Name: string(test.Path),
		Dir:  filepath.Dir(string(test.Path)),
		Env: []string{
			envCatchExceptions,
			envLeakDetection,
			envResultFormat,
			"CMOCKA_XML_FILE=" + m.CmockaResultPath(test.Path, arch),
			"GTEST_OUTPUT=xml:" + m.GTestResultPath(test.Path, arch),
		},
	})

	outcome := m.RunOutcome{Binary: test, ExitCode: result.ExitCode}
	if runErr != nil && outcome.ExitCode == 0 {
		outcome.ExitCode = -1
	}

	// A crashed process is assumed not to have written a valid result
	// document, so nothing is parsed for it.
	if runErr != nil || result.ExitCode != 0 {
		slog.Error("unit test execution failed", "test", name, "exit_code", result.ExitCode, "error", runErr)
		return outcome, nil
	}

	slog.Info("unit test completed", "test", name)

	documents, err := e.fs.Glob(m.ResultGlob(test.Path, arch))
	if err != nil {
		return m.RunOutcome{}, fmt.Errorf("failed to glob result documents for %s: %w", name, err)
	}

	for _, document := range documents {
		parsed, err := e.parser.ParseFile(document)
		if err != nil {
			return m.RunOutcome{}, err
		}

		for _, failure := range parsed {
			slog.Warn("unit test case failed", "test", name, "case", failure.Case, "message", failure.Message)
		}

		outcome.Failures = append(outcome.Failures, parsed...)
	}

	return outcome, nil
}

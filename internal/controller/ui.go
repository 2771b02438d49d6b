// Package controller provides output adapters for presenting pipeline
// progress and results.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// UI defines the interface for presenting test execution progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	Close()
	ArchStarted(arch string)
	TestsPlanned(count int)
	TestStarted(test m.TestBinary)
	TestCompleted(outcome m.RunOutcome)
	DisplayBinaries(tests []m.TestBinary) error
	DisplaySummary(summary m.RunSummary) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns true if the output is an interactive terminal.
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

package controller

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// SimpleUI implements UI using plain text output. It is the non-interactive
// variant used when output is piped, as in CI.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {

}

// ArchStarted announces the architecture being processed.
func (s *SimpleUI) ArchStarted(arch string) {
	s.printf("Testing architecture %s\n", arch)
}

// TestsPlanned announces how many binaries will run.
func (s *SimpleUI) TestsPlanned(count int) {
	s.printf("Running %d test binaries\n", count)
}

// TestStarted is a no-op for plain output; completion lines carry the result.
func (s *SimpleUI) TestStarted(_ m.TestBinary) {

}

// TestCompleted prints one line per finished binary.
func (s *SimpleUI) TestCompleted(outcome m.RunOutcome) {
	name := filepath.Base(string(outcome.Binary.Path))

	if outcome.ExitCode != 0 {
		s.printf("  %s: FAILED (exit code %d)\n", name, outcome.ExitCode)
		return
	}

	if len(outcome.Failures) > 0 {
		s.printf("  %s: FAILED (%d case failures)\n", name, len(outcome.Failures))
		return
	}

	s.printf("  %s: ok\n", name)
}

// DisplayBinaries renders the discovered binaries as a table.
func (s *SimpleUI) DisplayBinaries(tests []m.TestBinary) error {
	if len(tests) == 0 {
		s.printf("No test binaries found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Binary", "Arch"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, test := range tests {
		table.Append([]string{string(test.Path), test.Arch})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", len(tests))})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplaySummary renders the per-binary outcomes and the failure total.
func (s *SimpleUI) DisplaySummary(summary m.RunSummary) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Binary", "Arch", "Exit", "Failures"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, outcome := range summary.Outcomes {
		table.Append([]string{
			filepath.Base(string(outcome.Binary.Path)),
			outcome.Binary.Arch,
			fmt.Sprintf("%d", outcome.ExitCode),
			fmt.Sprintf("%d", outcome.FailureCount()),
		})
	}

	footer := fmt.Sprintf("%d", summary.TotalFailures())
	if summary.CoverageFailures > 0 {
		footer = fmt.Sprintf("%d (%d coverage)", summary.TotalFailures(), summary.CoverageFailures)
	}

	table.SetFooter([]string{"Total", "", "", footer})
	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

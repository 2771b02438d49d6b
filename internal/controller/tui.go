package controller

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start() error {
	t.done = make(chan struct{})
	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))

	go func() {
		_, _ = t.program.Run()
		close(t.done)
	}()

	return nil
}

// Close stops the program and waits for the final frame to render.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
	t.program = nil
}

// ArchStarted announces the architecture being processed.
func (t *TUI) ArchStarted(arch string) {
	t.send(archStartedMsg{arch: arch})
}

// TestsPlanned announces how many binaries will run.
func (t *TUI) TestsPlanned(count int) {
	t.send(testsPlannedMsg{count: count})
}

// TestStarted shows the binary currently executing.
func (t *TUI) TestStarted(test m.TestBinary) {
	t.send(testStartedMsg{test: test})
}

// TestCompleted records a finished binary.
func (t *TUI) TestCompleted(outcome m.RunOutcome) {
	t.send(testCompletedMsg{outcome: outcome})
}

// DisplayBinaries prints discovered binaries; used outside a running program.
func (t *TUI) DisplayBinaries(tests []m.TestBinary) error {
	for _, test := range tests {
		_, _ = fmt.Fprintf(t.output, "%s (%s)\n", test.Path, test.Arch)
	}

	_, _ = fmt.Fprintf(t.output, "Found %d test binaries\n", len(tests))

	return nil
}

// DisplaySummary pushes the final totals into the running view.
func (t *TUI) DisplaySummary(summary m.RunSummary) error {
	t.send(summaryMsg{summary: summary})
	return nil
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.program.Send(msg)
}

type archStartedMsg struct{ arch string }

type testsPlannedMsg struct{ count int }

type testStartedMsg struct{ test m.TestBinary }

type testCompletedMsg struct{ outcome m.RunOutcome }

type summaryMsg struct{ summary m.RunSummary }

// maxVisibleResults bounds the scrollback of completed-test lines.
const maxVisibleResults = 10

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// runModel is the Bubble Tea model for test execution progress.
type runModel struct {
	spinner   spinner.Model
	progress  progress.Model
	arch      string
	planned   int
	completed int
	current   string
	results   []string
	summary   *m.RunSummary
}

func newRunModel() runModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return runModel{
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// Init starts the spinner ticking.
func (r runModel) Init() tea.Cmd {
	return r.spinner.Tick
}

// Update handles progress messages from the pipeline and terminal events.
func (r runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}

		return r, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)

		return r, cmd

	case archStartedMsg:
		r.arch = msg.arch
		r.planned = 0
		r.completed = 0

		return r, nil

	case testsPlannedMsg:
		r.planned = msg.count

		return r, nil

	case testStartedMsg:
		r.current = filepath.Base(string(msg.test.Path))

		return r, nil

	case testCompletedMsg:
		r.completed++
		r.current = ""
		r.results = append(r.results, formatOutcome(msg.outcome))

		if len(r.results) > maxVisibleResults {
			r.results = r.results[len(r.results)-maxVisibleResults:]
		}

		return r, nil

	case summaryMsg:
		summary := msg.summary
		r.summary = &summary

		return r, nil
	}

	return r, nil
}

// View renders the current execution state.
func (r runModel) View() string {
	view := titleStyle.Render("Host Unit Tests") + "\n"

	if r.arch != "" {
		view += dimStyle.Render("architecture: "+r.arch) + "\n"
	}

	for _, line := range r.results {
		view += line + "\n"
	}

	if r.current != "" {
		view += r.spinner.View() + " " + r.current + "\n"
	}

	if r.planned > 0 {
		view += r.progress.ViewAs(float64(r.completed)/float64(r.planned)) + "\n"
	}

	if r.summary != nil {
		total := r.summary.TotalFailures()
		if total == 0 {
			view += okStyle.Render("All host unit tests passed") + "\n"
		} else {
			view += failStyle.Render(fmt.Sprintf("%d failures", total)) + "\n"
		}
	}

	return view
}

func formatOutcome(outcome m.RunOutcome) string {
	name := filepath.Base(string(outcome.Binary.Path))

	if outcome.ExitCode != 0 {
		return failStyle.Render("✗") + " " + name + dimStyle.Render(fmt.Sprintf(" exit %d", outcome.ExitCode))
	}

	if len(outcome.Failures) > 0 {
		return failStyle.Render("✗") + " " + name + dimStyle.Render(fmt.Sprintf(" %d case failures", len(outcome.Failures)))
	}

	return okStyle.Render("✓") + " " + name
}

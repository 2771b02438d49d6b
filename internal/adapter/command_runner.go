// Package adapter contains infrastructure adapters for the hosttest CLI.
package adapter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Command describes one external process invocation. Env entries are
// KEY=VALUE pairs appended to the parent environment for this spawn only, so
// framework toggles never leak into the pipeline's own process state.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// CommandResult is the observable outcome of a finished process.
type CommandResult struct {
	ExitCode int
	Output   string
}

// CommandRunner abstracts external process execution. Everything the pipeline
// spawns (test binaries, lcov, lcov_cobertura, OpenCppCoverage) goes through
// this port so the orchestration logic can be tested against a mock instead
// of installed tooling.
type CommandRunner interface {
	Run(cmd Command) (CommandResult, error)
}

// LocalCommandRunner executes commands on the local host via os/exec.
type LocalCommandRunner struct{}

// NewLocalCommandRunner constructs a LocalCommandRunner.
func NewLocalCommandRunner() *LocalCommandRunner {
	return &LocalCommandRunner{}
}

// Run starts the command, blocks until it exits, and captures combined
// stdout/stderr. A process that started but exited non-zero is not an error;
// the exit code is reported in the result. Failing to start the process at
// all returns an error alongside an exit code of -1.
func (r *LocalCommandRunner) Run(cmd Command) (CommandResult, error) {
	proc := exec.Command(cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}

	output, err := proc.CombinedOutput()
	result := CommandResult{Output: string(output)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		result.ExitCode = -1

		return result, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}

	return result, nil
}

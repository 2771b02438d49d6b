// Package mocks contains testify mocks for the adapter ports.
package mocks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// MockCommandRunner is a mock implementation of adapter.CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

// NewMockCommandRunner creates a MockCommandRunner that verifies its
// expectations when the test finishes.
func NewMockCommandRunner(t *testing.T) *MockCommandRunner {
	t.Helper()

	mk := &MockCommandRunner{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Run provides a mock function.
func (mk *MockCommandRunner) Run(cmd adapter.Command) (adapter.CommandResult, error) {
	args := mk.Called(cmd)

	result, _ := args.Get(0).(adapter.CommandResult)

	return result, args.Error(1)
}

// MockBuildFSAdapter is a mock implementation of adapter.BuildFSAdapter.
type MockBuildFSAdapter struct {
	mock.Mock
}

// NewMockBuildFSAdapter creates a MockBuildFSAdapter that verifies its
// expectations when the test finishes.
func NewMockBuildFSAdapter(t *testing.T) *MockBuildFSAdapter {
	t.Helper()

	mk := &MockBuildFSAdapter{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Glob provides a mock function.
func (mk *MockBuildFSAdapter) Glob(pattern string) ([]m.Path, error) {
	args := mk.Called(pattern)

	paths, _ := args.Get(0).([]m.Path)

	return paths, args.Error(1)
}

// GlobRecursive provides a mock function.
func (mk *MockBuildFSAdapter) GlobRecursive(root m.Path, pattern string) ([]m.Path, error) {
	args := mk.Called(root, pattern)

	paths, _ := args.Get(0).([]m.Path)

	return paths, args.Error(1)
}

// FileInfo provides a mock function.
func (mk *MockBuildFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	args := mk.Called(path)

	info, _ := args.Get(0).(os.FileInfo)

	return info, args.Error(1)
}

// ReadFile provides a mock function.
func (mk *MockBuildFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	args := mk.Called(path)

	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

// Remove provides a mock function.
func (mk *MockBuildFSAdapter) Remove(path m.Path) error {
	return mk.Called(path).Error(0)
}

// Exists provides a mock function.
func (mk *MockBuildFSAdapter) Exists(path m.Path) bool {
	return mk.Called(path).Bool(0)
}

// MockConfigAdapter is a mock implementation of adapter.ConfigAdapter.
type MockConfigAdapter struct {
	mock.Mock
}

// NewMockConfigAdapter creates a MockConfigAdapter that verifies its
// expectations when the test finishes.
func NewMockConfigAdapter(t *testing.T) *MockConfigAdapter {
	t.Helper()

	mk := &MockConfigAdapter{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Load provides a mock function.
func (mk *MockConfigAdapter) Load(file m.Path) (m.Config, error) {
	args := mk.Called(file)

	cfg, _ := args.Get(0).(m.Config)

	return cfg, args.Error(1)
}

// Package mocks contains testify mocks for the domain interfaces.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// MockDiscovery is a mock implementation of domain.Discovery.
type MockDiscovery struct {
	mock.Mock
}

// NewMockDiscovery creates a MockDiscovery that verifies its expectations
// when the test finishes.
func NewMockDiscovery(t *testing.T) *MockDiscovery {
	t.Helper()

	mk := &MockDiscovery{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Discover provides a mock function.
func (mk *MockDiscovery) Discover(dir m.Path, arch string) ([]m.TestBinary, error) {
	args := mk.Called(dir, arch)

	tests, _ := args.Get(0).([]m.TestBinary)

	return tests, args.Error(1)
}

// MockEngine is a mock implementation of domain.Engine.
type MockEngine struct {
	mock.Mock
}

// NewMockEngine creates a MockEngine that verifies its expectations when the
// test finishes.
func NewMockEngine(t *testing.T) *MockEngine {
	t.Helper()

	mk := &MockEngine{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// RunAll provides a mock function.
func (mk *MockEngine) RunAll(tests []m.TestBinary, arch string) ([]m.RunOutcome, int, error) {
	args := mk.Called(tests, arch)

	outcomes, _ := args.Get(0).([]m.RunOutcome)

	return outcomes, args.Int(1), args.Error(2)
}

// MockAggregator is a mock implementation of domain.Aggregator.
type MockAggregator struct {
	mock.Mock
}

// NewMockAggregator creates a MockAggregator that verifies its expectations
// when the test finishes.
func NewMockAggregator(t *testing.T) *MockAggregator {
	t.Helper()

	mk := &MockAggregator{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Generate provides a mock function.
func (mk *MockAggregator) Generate(cfg m.Config) int {
	return mk.Called(cfg).Int(0)
}

// MockResultParser is a mock implementation of domain.ResultParser.
type MockResultParser struct {
	mock.Mock
}

// NewMockResultParser creates a MockResultParser that verifies its
// expectations when the test finishes.
func NewMockResultParser(t *testing.T) *MockResultParser {
	t.Helper()

	mk := &MockResultParser{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// ParseFile provides a mock function.
func (mk *MockResultParser) ParseFile(path m.Path) ([]m.CaseFailure, error) {
	args := mk.Called(path)

	failures, _ := args.Get(0).([]m.CaseFailure)

	return failures, args.Error(1)
}

// MockPipeline is a mock implementation of domain.Pipeline.
type MockPipeline struct {
	mock.Mock
}

// NewMockPipeline creates a MockPipeline that verifies its expectations when
// the test finishes.
func NewMockPipeline(t *testing.T) *MockPipeline {
	t.Helper()

	mk := &MockPipeline{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Run provides a mock function.
func (mk *MockPipeline) Run(cfg m.Config) (int, error) {
	args := mk.Called(cfg)

	return args.Int(0), args.Error(1)
}

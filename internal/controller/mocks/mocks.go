// Package mocks contains testify mocks for the controller interfaces.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI that verifies its expectations when the test
// finishes.
func NewMockUI(t *testing.T) *MockUI {
	t.Helper()

	mk := &MockUI{}
	mk.Mock.Test(t)
	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Start provides a mock function.
func (mk *MockUI) Start() error {
	return mk.Called().Error(0)
}

// Close provides a mock function.
func (mk *MockUI) Close() {
	mk.Called()
}

// ArchStarted provides a mock function.
func (mk *MockUI) ArchStarted(arch string) {
	mk.Called(arch)
}

// TestsPlanned provides a mock function.
func (mk *MockUI) TestsPlanned(count int) {
	mk.Called(count)
}

// TestStarted provides a mock function.
func (mk *MockUI) TestStarted(test m.TestBinary) {
	mk.Called(test)
}

// TestCompleted provides a mock function.
func (mk *MockUI) TestCompleted(outcome m.RunOutcome) {
	mk.Called(outcome)
}

// DisplayBinaries provides a mock function.
func (mk *MockUI) DisplayBinaries(tests []m.TestBinary) error {
	return mk.Called(tests).Error(0)
}

// DisplaySummary provides a mock function.
func (mk *MockUI) DisplaySummary(summary m.RunSummary) error {
	return mk.Called(summary).Error(0)
}

package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapterMocks "github.com/mouse-blink/hosttest/internal/adapter/mocks"
	controllerMocks "github.com/mouse-blink/hosttest/internal/controller/mocks"
	domainMocks "github.com/mouse-blink/hosttest/internal/domain/mocks"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// swapWiring replaces the package-level dependency graph with mocks for the
// duration of one test.
func swapWiring(t *testing.T, cfgAdapter *adapterMocks.MockConfigAdapter, driver *domainMocks.MockPipeline, mockUI *controllerMocks.MockUI) {
	t.Helper()

	originalConfigAdapter := configAdapter
	originalDriver := pipelineDriver
	originalUI := ui
	originalFailureCount := failureCount

	configAdapter = cfgAdapter
	pipelineDriver = driver
	ui = mockUI

	t.Cleanup(func() {
		configAdapter = originalConfigAdapter
		pipelineDriver = originalDriver
		ui = originalUI
		failureCount = originalFailureCount
	})
}

func sessionUI(t *testing.T) *controllerMocks.MockUI {
	t.Helper()

	mockUI := controllerMocks.NewMockUI(t)
	mockUI.On("Start").Return(nil).Once()
	mockUI.On("Close").Return().Once()

	return mockUI
}

func TestRootCmd_RunsThePipeline(t *testing.T) {
	cfg := m.Config{BuildType: m.BuildTypeHostUnitTest, Coverage: true}

	cfgAdapter := adapterMocks.NewMockConfigAdapter(t)
	cfgAdapter.On("Load", m.Path("")).Return(cfg, nil).Once()

	driver := domainMocks.NewMockPipeline(t)
	driver.On("Run", cfg).Return(3, nil).Once()

	swapWiring(t, cfgAdapter, driver, sessionUI(t))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 3, failureCount)
}

func TestRootCmd_ConfigFlagReachesTheLoader(t *testing.T) {
	cfgAdapter := adapterMocks.NewMockConfigAdapter(t)
	cfgAdapter.On("Load", m.Path("build.yml")).Return(m.Config{}, nil).Once()

	driver := domainMocks.NewMockPipeline(t)
	driver.On("Run", mock.Anything).Return(0, nil).Once()

	swapWiring(t, cfgAdapter, driver, sessionUI(t))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"--config", "build.yml"})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_PipelineErrorsSurface(t *testing.T) {
	cfgAdapter := adapterMocks.NewMockConfigAdapter(t)
	cfgAdapter.On("Load", m.Path("")).Return(m.Config{}, nil).Once()

	driver := domainMocks.NewMockPipeline(t)
	driver.On("Run", mock.Anything).Return(0, assert.AnError).Once()

	swapWiring(t, cfgAdapter, driver, sessionUI(t))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "hosttest", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("plain"))
}

func TestInit(t *testing.T) {
	// init() must have wired every collaborator.
	assert.NotNil(t, ui)
	assert.NotNil(t, configAdapter)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, commandRunner)
	assert.NotNil(t, discovery)
	assert.NotNil(t, engine)
	assert.NotNil(t, aggregator)
	assert.NotNil(t, pipelineDriver)
}

package adapter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// Build environment variable names. These are an external contract with the
// build system that compiled the test binaries; the pipeline only reads them.
const (
	EnvBuildType   = "CI_BUILD_TYPE"
	EnvBuildOutput = "BUILD_OUTPUT_BASE"
	EnvWorkspace   = "WORKSPACE"
	EnvTargetArch  = "TARGET_ARCH"
	EnvToolchain   = "TOOL_CHAIN_TAG"
	EnvCoverage    = "CODE_COVERAGE"
)

// coverageDisabled is the only CODE_COVERAGE value that turns coverage off;
// an absent or any other value leaves it enabled.
const coverageDisabled = "FALSE"

// ConfigAdapter loads pipeline configuration from the build environment, with
// optional file-backed defaults.
type ConfigAdapter interface {
	Load(file m.Path) (m.Config, error)
}

// EnvConfigAdapter reads configuration from environment variables. The lookup
// function is injectable so tests can supply a synthetic environment.
type EnvConfigAdapter struct {
	lookup func(string) (string, bool)
}

// NewEnvConfigAdapter constructs an EnvConfigAdapter backed by the process
// environment.
func NewEnvConfigAdapter() *EnvConfigAdapter {
	return &EnvConfigAdapter{lookup: os.LookupEnv}
}

// fileConfig is the optional YAML build description. Every field is a default
// that the environment overrides.
type fileConfig struct {
	BuildType   string   `yaml:"build_type"`
	BuildOutput string   `yaml:"build_output"`
	Workspace   string   `yaml:"workspace"`
	Arches      []string `yaml:"arch"`
	Toolchain   string   `yaml:"toolchain"`
	Coverage    *bool    `yaml:"coverage"`
}

// Load builds the pipeline configuration. Precedence is environment over
// file; coverage defaults to enabled and is disabled only by an explicit
// FALSE.
func (a *EnvConfigAdapter) Load(file m.Path) (m.Config, error) {
	cfg := m.Config{Coverage: true}

	if file != "" {
		if err := applyFile(&cfg, file); err != nil {
			return m.Config{}, err
		}
	}

	if v, ok := a.lookup(EnvBuildType); ok {
		cfg.BuildType = v
	}

	if v, ok := a.lookup(EnvBuildOutput); ok {
		cfg.BuildOutput = m.Path(v)
	}

	if v, ok := a.lookup(EnvWorkspace); ok {
		cfg.Workspace = m.Path(v)
	}

	if v, ok := a.lookup(EnvTargetArch); ok {
		cfg.Arches = strings.Fields(v)
	}

	if v, ok := a.lookup(EnvToolchain); ok {
		cfg.Toolchain = m.Toolchain(v)
	}

	if v, ok := a.lookup(EnvCoverage); ok {
		cfg.Coverage = v != coverageDisabled
	}

	return cfg, nil
}

func applyFile(cfg *m.Config, file m.Path) error {
	data, err := os.ReadFile(string(file))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", file, err)
	}

	if fc.BuildType != "" {
		cfg.BuildType = fc.BuildType
	}

	if fc.BuildOutput != "" {
		cfg.BuildOutput = m.Path(fc.BuildOutput)
	}

	if fc.Workspace != "" {
		cfg.Workspace = m.Path(fc.Workspace)
	}

	if len(fc.Arches) > 0 {
		cfg.Arches = fc.Arches
	}

	if fc.Toolchain != "" {
		cfg.Toolchain = m.Toolchain(fc.Toolchain)
	}

	if fc.Coverage != nil {
		cfg.Coverage = *fc.Coverage
	}

	return nil
}

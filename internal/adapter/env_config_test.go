package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/hosttest/internal/model"
)

func envAdapter(env map[string]string) *EnvConfigAdapter {
	return &EnvConfigAdapter{
		lookup: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}

func TestEnvConfigAdapter_Load(t *testing.T) {
	t.Run("reads the build environment", func(t *testing.T) {
		a := envAdapter(map[string]string{
			EnvBuildType:   "host_unit_test",
			EnvBuildOutput: "/ws/Build/Pkg/NOOPT_GCC5",
			EnvWorkspace:   "/ws",
			EnvTargetArch:  "X64 AARCH64",
			EnvToolchain:   "GCC5",
		})

		cfg, err := a.Load("")
		require.NoError(t, err)

		assert.Equal(t, m.BuildTypeHostUnitTest, cfg.BuildType)
		assert.Equal(t, m.Path("/ws/Build/Pkg/NOOPT_GCC5"), cfg.BuildOutput)
		assert.Equal(t, m.Path("/ws"), cfg.Workspace)
		assert.Equal(t, []string{"X64", "AARCH64"}, cfg.Arches)
		assert.Equal(t, m.Toolchain("GCC5"), cfg.Toolchain)
	})

	t.Run("coverage defaults on and only FALSE disables it", func(t *testing.T) {
		cfg, err := envAdapter(nil).Load("")
		require.NoError(t, err)
		assert.True(t, cfg.Coverage)

		cfg, err = envAdapter(map[string]string{EnvCoverage: "TRUE"}).Load("")
		require.NoError(t, err)
		assert.True(t, cfg.Coverage)

		cfg, err = envAdapter(map[string]string{EnvCoverage: "FALSE"}).Load("")
		require.NoError(t, err)
		assert.False(t, cfg.Coverage)
	})

	t.Run("file supplies defaults that the environment overrides", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "build.yaml")
		content := `
build_type: host_unit_test
build_output: /file/out
workspace: /file/ws
arch: [IA32]
toolchain: VS2022
coverage: false
`
		require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

		a := envAdapter(map[string]string{
			EnvBuildOutput: "/env/out",
			EnvTargetArch:  "X64",
		})

		cfg, err := a.Load(m.Path(file))
		require.NoError(t, err)

		assert.Equal(t, m.BuildTypeHostUnitTest, cfg.BuildType)
		assert.Equal(t, m.Path("/env/out"), cfg.BuildOutput)
		assert.Equal(t, m.Path("/file/ws"), cfg.Workspace)
		assert.Equal(t, []string{"X64"}, cfg.Arches)
		assert.Equal(t, m.Toolchain("VS2022"), cfg.Toolchain)
		assert.False(t, cfg.Coverage)
	})

	t.Run("missing config file is an error", func(t *testing.T) {
		_, err := envAdapter(nil).Load(m.Path(filepath.Join(t.TempDir(), "absent.yaml")))
		assert.Error(t, err)
	})

	t.Run("malformed config file is an error", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "build.yaml")
		require.NoError(t, os.WriteFile(file, []byte("arch: [unterminated"), 0o644))

		_, err := envAdapter(nil).Load(m.Path(file))
		assert.Error(t, err)
	})
}

package bench

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/infra/op-bench/flags"
)

// parseConfig runs a cli app with the real flag set and returns the config
// NewConfig builds from args
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var (
		cfg    *Config
		cfgErr error
	)
	app := &cli.App{
		Flags: flags.Flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx, log.NewLogger(log.DiscardHandler()))
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"op-bench"}, args...)))
	return cfg, cfgErr
}

func TestNewConfigDefaults(t *testing.T) {
	workDir := t.TempDir()
	cfg, err := parseConfig(t, "--workdir", workDir)
	require.NoError(t, err)

	assert.Equal(t, "bfsree", cfg.Name)
	assert.Equal(t, workDir, cfg.WorkDir)
	assert.Equal(t, filepath.Join(workDir, ExecutableName("bfsree", runtime.GOOS)), cfg.Executable)
	assert.Empty(t, cfg.BenchDir)
	assert.Empty(t, cfg.CatalogPath)
	assert.False(t, cfg.ForceBuild)
	assert.Equal(t, 300*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"make", "release"}, cfg.BuildCommand)
	assert.False(t, cfg.MetricsEnabled)
	assert.NotNil(t, cfg.Out)
	if runtime.GOOS == "windows" {
		assert.Equal(t, []string{"gcc", "-Wall", "-O3", "-o", "bfsree.exe", "main.c"}, cfg.BuildFallback)
	} else {
		assert.Empty(t, cfg.BuildFallback)
	}
}

func TestNewConfigFlags(t *testing.T) {
	workDir := t.TempDir()
	cfg, err := parseConfig(t,
		"-b",
		"--workdir", workDir,
		"--name", "bf",
		"--executable", filepath.Join(workDir, "bin", "bf"),
		"--bench-dir", filepath.Join(workDir, "progs"),
		"--catalog", filepath.Join(workDir, "catalog.yaml"),
		"--timeout", "45s",
		"--build-cmd", "ninja -C build",
		"--color", "never",
		"--summary-table",
		"--results-file", "results.txt",
		"--metrics-textfile", "bench.prom",
		"--metrics.enabled",
		"--metrics.addr", "127.0.0.1",
		"--metrics.port", "9100",
	)
	require.NoError(t, err)

	assert.True(t, cfg.ForceBuild)
	assert.Equal(t, "bf", cfg.Name)
	assert.Equal(t, filepath.Join(workDir, "bin", "bf"), cfg.Executable)
	assert.Equal(t, filepath.Join(workDir, "progs"), cfg.BenchDir)
	assert.Equal(t, filepath.Join(workDir, "catalog.yaml"), cfg.CatalogPath)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"ninja", "-C", "build"}, cfg.BuildCommand)
	assert.Empty(t, cfg.BuildFallback)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.SummaryTable)
	assert.Equal(t, "results.txt", cfg.ResultsFile)
	assert.Equal(t, "bench.prom", cfg.MetricsTextfile)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
}

func TestNewConfigEnvVars(t *testing.T) {
	t.Setenv("OP_BENCH_BUILD", "true")
	t.Setenv("OP_BENCH_TIMEOUT", "2m")
	t.Setenv("OP_BENCH_COLOR", "always")

	cfg, err := parseConfig(t, "--workdir", t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.ForceBuild)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.True(t, cfg.Color)
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantError string
	}{
		{"empty name", []string{"--name", ""}, "program name is required"},
		{"zero timeout", []string{"--timeout", "0s"}, "timeout must be positive"},
		{"empty build command", []string{"--build-cmd", "  "}, "build command cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(t, append([]string{"--workdir", t.TempDir()}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestExecutableName(t *testing.T) {
	assert.Equal(t, "bfsree", ExecutableName("bfsree", "linux"))
	assert.Equal(t, "bfsree", ExecutableName("bfsree", "darwin"))
	assert.Equal(t, "bfsree.exe", ExecutableName("bfsree", "windows"))
}

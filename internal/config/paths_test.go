package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	base := filepath.Join("srv", "crew")
	p := NewPaths(base)

	assert.Equal(t, base, p.BaseDir)
	assert.Equal(t, filepath.Join(base, "data", "inputs"), p.InputsDir)
	assert.Equal(t, filepath.Join(base, "data", "reports"), p.ReportsDir)
	assert.Equal(t, filepath.Join(base, "logs"), p.LogsDir)
	assert.Equal(t, filepath.Join(base, "data", "reports", "out.csv"), p.GetReportPath("out.csv"))
	assert.Equal(t, filepath.Join(base, "data", "inputs", "roster.csv"), p.GetInputPath("roster.csv"))
	assert.Equal(t, filepath.Join(base, "logs", "run.log"), p.GetLogPath("run.log"))
}

func TestGetPaths_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(BaseDirEnv, dir)

	p, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, p.BaseDir)
}

func TestPaths_Resolve(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty stays empty", in: "", want: ""},
		{name: "relative joins base", in: "data/inputs/roster.csv", want: filepath.Join(dir, "data", "inputs", "roster.csv")},
		{name: "absolute unchanged", in: filepath.Join(dir, "x.csv"), want: filepath.Join(dir, "x.csv")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.in))
		})
	}
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	require.NoError(t, p.EnsureDirectories())

	for _, d := range []string{p.ReportsDir, p.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.False(t, FileExists(p.InputsDir), "input directories are never created")
}

func TestConfig_GetPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.BaseDir = dir

	p, err := cfg.GetPaths()
	require.NoError(t, err)
	assert.Equal(t, dir, p.BaseDir)
}

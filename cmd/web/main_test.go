package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "server: [port"},
		{name: "invalid port", content: "server:\n  port: 70000\n"},
		{name: "end before start", content: "report:\n  start_date: 2025-09-30\n  end_date: 2025-07-01\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("CREW_BASE_DIR", dir)

			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			err := run(path)
			assert.Error(t, err)
		})
	}
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// BaseDirEnv overrides the directory all relative paths are resolved against
const BaseDirEnv = "CREW_BASE_DIR"

// Paths contains all the application paths.
// Relative input, output and log paths are resolved against BaseDir.
type Paths struct {
	BaseDir    string
	DataDir    string
	InputsDir  string
	ReportsDir string
	LogsDir    string
}

// NewPaths lays out the standard directory structure under baseDir:
//
//	<base>/
//	  ├── data/
//	  │   ├── inputs/    (roster, headcount and standby extracts)
//	  │   └── reports/   (reconciled output)
//	  └── logs/
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		BaseDir:    baseDir,
		DataDir:    dataDir,
		InputsDir:  filepath.Join(dataDir, "inputs"),
		ReportsDir: filepath.Join(dataDir, "reports"),
		LogsDir:    filepath.Join(baseDir, "logs"),
	}
}

// GetPaths returns the paths rooted at CREW_BASE_DIR, or the working directory when unset
func GetPaths() (*Paths, error) {
	base := os.Getenv(BaseDirEnv)
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory %s: %w", base, err)
	}
	return NewPaths(abs), nil
}

// EnsureDirectories creates the output directories if they don't exist.
// Input directories are never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// GetInputPath returns the path for an input extract
func (p *Paths) GetInputPath(filename string) string {
	return filepath.Join(p.InputsDir, filename)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs the resolved directories for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("inputs", p.InputsDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

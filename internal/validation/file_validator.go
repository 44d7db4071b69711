package validation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nishant32400/CrewStandby/internal/config"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/internal/files"
)

// FileValidator checks input extracts and output locations before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("file").WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not readable", err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks that path is a readable, non-empty extract in a
// supported format. Excel lock files ("~$name.xlsx") are rejected.
func (v *FileValidator) ValidateInputFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if _, err := files.DetectFormat(path); err != nil {
		v.logger.Error("Unsupported input format",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return apperrors.NewAppValidationError(err.Error()).WithContext("path", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", path))
	}

	info, err := os.Stat(path)
	if err == nil && info.Size() == 0 {
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is empty", path))
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to create output directory", err).WithContext("directory", dir)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory is not writable", err).WithContext("directory", dir)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputPath checks the report extension and that its directory is writable
func (v *FileValidator) ValidateOutputPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
	default:
		return apperrors.NewAppValidationError("output path must end in .csv or .xlsx: " + path)
	}
	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// TableCheck is the validation outcome of one input table
type TableCheck struct {
	Table  files.Table
	Input  string
	Header files.Header
	Err    error
}

// OK reports whether the table passed every check
func (c TableCheck) OK() bool {
	return c.Err == nil && len(c.Header.Missing) == 0
}

// InputValidator runs the file checks and the header inspection for the
// three configured inputs without aggregating anything
type InputValidator struct {
	files     *FileValidator
	discovery *files.Discovery
	loader    *files.Loader
}

// NewInputValidator creates an input validator
func NewInputValidator(fv *FileValidator, discovery *files.Discovery, loader *files.Loader) *InputValidator {
	return &InputValidator{files: fv, discovery: discovery, loader: loader}
}

// ValidateInputs checks each configured input. It returns one check per
// table, in roster, headcount, standby order, and an error when any failed.
func (v *InputValidator) ValidateInputs(ctx context.Context, inputs config.InputsConfig) ([]TableCheck, error) {
	checks := []TableCheck{
		{Table: files.TableRoster, Input: inputs.Roster},
		{Table: files.TableHeadcount, Input: inputs.Headcount},
		{Table: files.TableStandby, Input: inputs.Standby},
	}

	failed := 0
	for i := range checks {
		if err := ctx.Err(); err != nil {
			return checks, err
		}
		checks[i] = v.check(checks[i])
		if !checks[i].OK() {
			failed++
		}
	}

	if failed > 0 {
		return checks, apperrors.NewAppValidationError(fmt.Sprintf("%d of %d inputs failed validation", failed, len(checks)))
	}
	return checks, nil
}

func (v *InputValidator) check(c TableCheck) TableCheck {
	resolved, err := v.discovery.Resolve(c.Input)
	if err != nil {
		c.Err = err
		return c
	}
	if err := v.files.ValidateInputFile(resolved.Path); err != nil {
		c.Err = err
		return c
	}
	c.Header, c.Err = v.loader.Inspect(resolved.Path, c.Table)
	if c.Err == nil && len(c.Header.Missing) > 0 {
		c.Err = apperrors.NewMissingColumnError(string(c.Table), c.Header.Missing[0])
	}
	return c
}

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery resolves configured input locations to concrete files
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// abs joins relative paths onto the base path
func (d *Discovery) abs(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}

// hasGlobMeta reports whether path contains glob metacharacters
func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// Resolve returns the file a configured input refers to. A plain path must
// exist; a glob pattern resolves to its most recently modified match, so a
// directory of dated extracts always yields the newest one.
func (d *Discovery) Resolve(pattern string) (FileInfo, error) {
	full := d.abs(pattern)

	if !hasGlobMeta(full) {
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			return FileInfo{}, apperrors.NewNotFoundError("input file").WithContext("path", full)
		}
		if err != nil {
			return FileInfo{}, apperrors.NewStorageError("failed to stat input file", err).WithContext("path", full)
		}
		if info.IsDir() {
			return FileInfo{}, apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", full))
		}
		return newFileInfo(full, info), nil
	}

	files, err := d.FindFilesByPattern(pattern)
	if err != nil {
		return FileInfo{}, err
	}
	latest, ok := GetLatestFile(files)
	if !ok {
		return FileInfo{}, apperrors.NewNotFoundError("input file").WithContext("pattern", full)
	}
	return latest, nil
}

// FindFilesByPattern lists regular files matching a glob pattern, oldest first
func (d *Discovery) FindFilesByPattern(pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(d.abs(pattern))
	if err != nil {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("invalid pattern %s: %v", pattern, err))
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, newFileInfo(match, info))
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// GetLatestFile returns the most recently modified file from a list.
// On equal times the later entry wins.
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if !file.ModTime.Before(latest.ModTime) {
			latest = file
		}
	}
	return latest, true
}

func newFileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

package adapter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/hosttest/internal/model"
)

// BuildFSAdapter abstracts the filesystem operations the pipeline performs on
// build-output trees. It hides direct `os` access so discovery and coverage
// logic can be tested without touching the disk.
type BuildFSAdapter interface {
	// Glob returns the paths matching a non-recursive shell pattern, sorted.
	Glob(pattern string) ([]m.Path, error)

	// GlobRecursive returns every regular file under root (at any depth,
	// including root itself) whose base name matches pattern.
	GlobRecursive(root m.Path, pattern string) ([]m.Path, error)

	// FileInfo returns metadata for a path so discovery can check file type
	// and permission bits.
	FileInfo(path m.Path) (os.FileInfo, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// Remove deletes a single file.
	Remove(path m.Path) error

	// Exists reports whether a path is present on disk.
	Exists(path m.Path) bool
}

// LocalBuildFSAdapter is the concrete BuildFSAdapter backed by the local
// filesystem.
type LocalBuildFSAdapter struct{}

// NewLocalBuildFSAdapter constructs a LocalBuildFSAdapter.
func NewLocalBuildFSAdapter() *LocalBuildFSAdapter {
	return &LocalBuildFSAdapter{}
}

// Glob returns the paths matching the pattern in lexical order.
func (a *LocalBuildFSAdapter) Glob(pattern string) ([]m.Path, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	paths := make([]m.Path, 0, len(matches))
	for _, match := range matches {
		paths = append(paths, m.Path(match))
	}

	return paths, nil
}

// GlobRecursive walks root and collects regular files whose base name matches
// pattern. A missing root yields an empty result, matching the behavior of a
// recursive glob over a directory that was never created.
func (a *LocalBuildFSAdapter) GlobRecursive(root m.Path, pattern string) ([]m.Path, error) {
	var paths []m.Path

	err := filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		matched, matchErr := filepath.Match(pattern, entry.Name())
		if matchErr != nil {
			return matchErr
		}

		if matched {
			paths = append(paths, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// FileInfo returns metadata for the path.
func (a *LocalBuildFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadFile loads the file contents.
func (a *LocalBuildFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// Remove deletes the file at path.
func (a *LocalBuildFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// Exists reports whether the path exists.
func (a *LocalBuildFSAdapter) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

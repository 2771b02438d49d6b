// Package domain implements the host unit-test pipeline: binary discovery,
// execution, result parsing, and coverage aggregation.
package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mouse-blink/hosttest/internal/adapter"
	m "github.com/mouse-blink/hosttest/internal/model"
)

// ErrUnsupportedOS is returned when the host operating system has no known
// test binary convention. The pipeline cannot proceed without one.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Discovery locates compiled host test binaries for one architecture.
type Discovery interface {
	Discover(dir m.Path, arch string) ([]m.TestBinary, error)
}

type discovery struct {
	fs     adapter.BuildFSAdapter
	hostOS m.OperatingSystem
}

// NewDiscovery constructs a Discovery for the given host operating system.
func NewDiscovery(fs adapter.BuildFSAdapter, hostOS m.OperatingSystem) Discovery {
	return &discovery{
		fs:     fs,
		hostOS: hostOS,
	}
}

// Discover returns the test binary candidates in dir. An empty result is not
// an error; it means no tests exist for this architecture.
func (d *discovery) Discover(dir m.Path, arch string) ([]m.TestBinary, error) {
	switch d.hostOS {
	case m.OSLinux:
		return d.discoverPosix(dir, arch)
	case m.OSWindows:
		return d.discoverWindows(dir, arch)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, d.hostOS)
	}
}

// discoverPosix globs for *Test* entries and keeps only regular files with at
// least one execute permission bit. Rejections are diagnostics, not failures.
func (d *discovery) discoverPosix(dir m.Path, arch string) ([]m.TestBinary, error) {
	candidates, err := d.fs.Glob(filepath.Join(string(dir), "*Test*"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob test binaries in %s: %w", dir, err)
	}

	var tests []m.TestBinary

	for _, candidate := range candidates {
		info, err := d.fs.FileInfo(candidate)
		if err != nil {
			slog.Debug("skipping unreadable candidate", "path", candidate, "error", err)
			continue
		}

		if !info.Mode().IsRegular() {
			slog.Debug("skipping non-regular file", "path", candidate)
			continue
		}

		if info.Mode().Perm()&0o111 == 0 {
			slog.Debug("skipping non-executable file", "path", candidate)
			continue
		}

		slog.Info("test binary found", "path", candidate)
		tests = append(tests, m.TestBinary{Path: candidate, Arch: arch, OS: d.hostOS})
	}

	return tests, nil
}

// discoverWindows globs for *Test*.exe; the extension implies executability.
func (d *discovery) discoverWindows(dir m.Path, arch string) ([]m.TestBinary, error) {
	candidates, err := d.fs.Glob(filepath.Join(string(dir), "*Test*.exe"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob test binaries in %s: %w", dir, err)
	}

	tests := make([]m.TestBinary, 0, len(candidates))
	for _, candidate := range candidates {
		tests = append(tests, m.TestBinary{Path: candidate, Arch: arch, OS: d.hostOS})
	}

	return tests, nil
}

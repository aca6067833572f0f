// Package adapter contains infrastructure adapters for the zipcull CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "zipcull.dev/pkg/zipcull/internal/model"
)

// ArchiveFS abstracts filesystem-specific operations the domain layer relies
// on when sweeping archives. It intentionally hides direct `os` access so
// the sweep logic can be tested without touching the disk.
type ArchiveFS interface {
	// Walk traverses the provided root path recursively and returns every
	// file whose name ends in one of the extensions, case-insensitively.
	// Traversal order is whatever the directory listing yields.
	Walk(root m.Path, extensions []string) ([]m.Path, error)

	// Remove deletes the file at path.
	Remove(path m.Path) error
}

// LocalArchiveFS is the concrete implementation backed by the local disk.
type LocalArchiveFS struct{}

// NewLocalArchiveFS constructs a LocalArchiveFS instance ready to be wired
// into the sweep.
func NewLocalArchiveFS() *LocalArchiveFS {
	return &LocalArchiveFS{}
}

// Walk collects archive files under root.
func (a *LocalArchiveFS) Walk(root m.Path, extensions []string) ([]m.Path, error) {
	rootStr := string(root)

	// Verify root exists
	if _, err := os.Stat(rootStr); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	var archives []m.Path

	err := filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !hasArchiveExt(path, extensions) {
			return nil
		}

		archives = append(archives, normalizePath(rootStr, path))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return archives, nil
}

// Remove deletes the file at path.
func (a *LocalArchiveFS) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// hasArchiveExt matches the filename suffix case-insensitively.
func hasArchiveExt(path string, extensions []string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range extensions {
		if strings.HasSuffix(name, strings.ToLower(ext)) {
			return true
		}
	}

	return false
}

// normalizePath keeps discovered paths relative to the sweep root. Walking
// "." yields bare names, so the "./" prefix is restored to keep ledger
// entries stable across runs started from the same directory.
func normalizePath(root, path string) m.Path {
	if root == "." && !strings.HasPrefix(path, "./") {
		return m.Path("./" + path)
	}

	return m.Path(path)
}

package adapter

import (
	"fmt"
	"os"
	"strings"

	m "zipcull.dev/pkg/zipcull/internal/model"
)

// Ledger records already-processed archive paths so re-runs skip them.
// Implementations are append-only: entries are never updated or removed.
type Ledger interface {
	// Load reads the full ledger into a membership set. A missing ledger
	// yields an empty set.
	Load() (map[m.Path]struct{}, error)

	// Append writes a single path line. No dedup check is performed.
	Append(path m.Path) error
}

// FileLedger is the plain-text implementation: one path per line, UTF-8,
// no header. Only one process touches it at a time, so there is no locking.
type FileLedger struct {
	path string
}

// NewFileLedger constructs a FileLedger persisting to the given file.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Path returns the backing file location.
func (l *FileLedger) Path() string {
	return l.path
}

// Load reads the ledger file and splits it into a set of path strings.
func (l *FileLedger) Load() (map[m.Path]struct{}, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[m.Path]struct{}{}, nil
		}

		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}

	entries := make(map[m.Path]struct{})

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}

		entries[m.Path(line)] = struct{}{}
	}

	return entries, nil
}

// Append writes one path line to the ledger file, creating it on first use.
func (l *FileLedger) Append(path m.Path) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", l.path, err)
	}

	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s\n", path); err != nil {
		return fmt.Errorf("append ledger %s: %w", l.path, err)
	}

	return nil
}

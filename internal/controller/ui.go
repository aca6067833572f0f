// Package controller provides the interactive and plain terminal frontends
// for the archive sweep.
package controller

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

// UI defines the interface for user interaction during a sweep.
// Implementations can use different frontends (plain text, TUI).
type UI interface {
	// SelectLanguages asks the user which languages to keep. An empty
	// result means nothing was checked and the caller must exit without
	// touching the filesystem.
	SelectLanguages(ctx context.Context, options []m.Language) ([]m.Language, error)
	// DisplaySelection echoes the chosen keep-set.
	DisplaySelection(ctx context.Context, keep m.LanguageSet)
	// DisplaySkipNotice reports a path skipped because it is ledgered.
	DisplaySkipNotice(ctx context.Context, path m.Path)
	// DisplayDecision reports a keep/remove decision with progress and ETA.
	DisplayDecision(ctx context.Context, outcome m.Outcome, processed, remaining int, eta time.Duration)
	// DisplayClassifierFailure reports that every classification attempt
	// for the path failed and it will be treated as not kept.
	DisplayClassifierFailure(ctx context.Context, path m.Path)
	// DisplaySummary prints the end-of-run totals.
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// IsTTY reports whether the file is an interactive terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// titleCase uppercases the first byte for display ("english" -> "English").
func titleCase(label m.Language) string {
	s := string(label)
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}

	return string(s[0]-'a'+'A') + s[1:]
}

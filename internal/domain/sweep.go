// Package domain implements the archive sweep workflow.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zipcull.dev/pkg/zipcull/internal/adapter"
	"zipcull.dev/pkg/zipcull/internal/controller"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

// Classifier answers which language a filename suggests. The answer comes
// back trimmed and lower-cased; an error means every transport attempt
// failed.
type Classifier interface {
	Answer(ctx context.Context, filename string) (m.Language, error)
}

// SweepArgs contains the arguments for one sweep.
type SweepArgs struct {
	Root       m.Path
	Keep       m.LanguageSet
	Extensions []string
}

// Workflow defines the interface for the sweep workflow.
type Workflow interface {
	Sweep(ctx context.Context, args SweepArgs) (m.Summary, error)
}

type sweeper struct {
	fs         adapter.ArchiveFS
	ledger     adapter.Ledger
	classifier Classifier
	ui         controller.UI

	// now is time.Now unless a test injects its own clock.
	now func() time.Time
}

// NewSweeper creates a Workflow instance with the provided dependencies.
func NewSweeper(fs adapter.ArchiveFS, ledger adapter.Ledger, classifier Classifier, ui controller.UI) Workflow {
	return &sweeper{
		fs:         fs,
		ledger:     ledger,
		classifier: classifier,
		ui:         ui,
		now:        time.Now,
	}
}

// Sweep walks the root for archives and processes them strictly in
// traversal order, one blocking classification at a time. Paths already in
// the ledger are skipped without a classifier call and without a second
// ledger line. Every newly processed path gains exactly one ledger entry,
// appended only after the keep/remove decision has been carried out, so a
// failed deletion leaves the path unledgered for the next run.
func (s *sweeper) Sweep(ctx context.Context, args SweepArgs) (m.Summary, error) {
	var summary m.Summary

	archives, err := s.fs.Walk(args.Root, args.Extensions)
	if err != nil {
		return summary, fmt.Errorf("walk %s: %w", args.Root, err)
	}

	ledgered, err := s.ledger.Load()
	if err != nil {
		return summary, fmt.Errorf("load ledger: %w", err)
	}

	slog.Info("sweep started",
		"root", args.Root, "archives", len(archives), "ledgered", len(ledgered), "keep", args.Keep.Names())

	eta := newETATracker()
	total := len(archives)

	for i, path := range archives {
		if _, done := ledgered[path]; done {
			summary.Skipped++
			s.ui.DisplaySkipNotice(ctx, path)
			slog.Debug("already ledgered", "path", path)

			continue
		}

		started := s.now()

		outcome, err := s.process(ctx, path, args.Keep)
		if err != nil {
			return summary, err
		}

		if outcome.Decision == m.Removed {
			summary.Removed++
		} else {
			summary.Kept++
		}

		eta.Observe(s.now().Sub(started))

		remaining := total - i - 1
		s.ui.DisplayDecision(ctx, outcome, summary.Total(), remaining, eta.Estimate(remaining))
	}

	s.ui.DisplaySummary(ctx, summary)
	slog.Info("sweep finished", "kept", summary.Kept, "removed", summary.Removed, "skipped", summary.Skipped)

	return summary, nil
}

// process classifies one archive, acts on the answer and ledgers the path.
func (s *sweeper) process(ctx context.Context, path m.Path, keep m.LanguageSet) (m.Outcome, error) {
	outcome := m.Outcome{Path: path}

	answer, err := s.classifier.Answer(ctx, string(path))
	if err != nil {
		// Exhausted retries classify as "not kept"; the run continues.
		s.ui.DisplayClassifierFailure(ctx, path)
	}

	outcome.Answer = answer

	// The answer is matched verbatim against the keep-set. There is no
	// validation against the three known labels, so any stray response that
	// happens to equal a chosen label counts as a match.
	if err == nil && keep.Contains(answer) {
		outcome.Decision = m.Kept
	} else {
		outcome.Decision = m.Removed

		if err := s.fs.Remove(path); err != nil {
			return outcome, fmt.Errorf("remove %s: %w", path, err)
		}

		slog.Info("archive removed", "path", path, "answer", answer)
	}

	if err := s.ledger.Append(path); err != nil {
		return outcome, fmt.Errorf("ledger %s: %w", path, err)
	}

	return outcome, nil
}

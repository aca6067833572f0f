package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "zipcull.dev/pkg/zipcull/internal/model"
)

type fakeFS struct {
	archives  []m.Path
	walkErr   error
	removed   []m.Path
	removeErr error
}

func (f *fakeFS) Walk(m.Path, []string) ([]m.Path, error) {
	return f.archives, f.walkErr
}

func (f *fakeFS) Remove(path m.Path) error {
	if f.removeErr != nil {
		return f.removeErr
	}

	f.removed = append(f.removed, path)

	return nil
}

type fakeLedger struct {
	entries   map[m.Path]struct{}
	loadErr   error
	appended  []m.Path
	appendErr error
}

func (f *fakeLedger) Load() (map[m.Path]struct{}, error) {
	if f.entries == nil {
		f.entries = map[m.Path]struct{}{}
	}

	return f.entries, f.loadErr
}

func (f *fakeLedger) Append(path m.Path) error {
	if f.appendErr != nil {
		return f.appendErr
	}

	f.appended = append(f.appended, path)

	return nil
}

type fakeClassifier struct {
	answers map[string]m.Language
	failing map[string]bool
	calls   []string
}

func (f *fakeClassifier) Answer(_ context.Context, filename string) (m.Language, error) {
	f.calls = append(f.calls, filename)

	if f.failing[filename] {
		return "", errors.New("all attempts failed")
	}

	return f.answers[filename], nil
}

type fakeUI struct {
	skips     []m.Path
	decisions []m.Outcome
	failures  []m.Path
	etas      []time.Duration
	summaries []m.Summary
}

func (f *fakeUI) SelectLanguages(context.Context, []m.Language) ([]m.Language, error) {
	return nil, nil
}

func (f *fakeUI) DisplaySelection(context.Context, m.LanguageSet) {}

func (f *fakeUI) DisplaySkipNotice(_ context.Context, path m.Path) {
	f.skips = append(f.skips, path)
}

func (f *fakeUI) DisplayDecision(_ context.Context, outcome m.Outcome, _, _ int, eta time.Duration) {
	f.decisions = append(f.decisions, outcome)
	f.etas = append(f.etas, eta)
}

func (f *fakeUI) DisplayClassifierFailure(_ context.Context, path m.Path) {
	f.failures = append(f.failures, path)
}

func (f *fakeUI) DisplaySummary(_ context.Context, summary m.Summary) {
	f.summaries = append(f.summaries, summary)
}

func newTestSweeper(fs *fakeFS, ledger *fakeLedger, classifier *fakeClassifier, ui *fakeUI) Workflow {
	s := NewSweeper(fs, ledger, classifier, ui)

	impl, ok := s.(*sweeper)
	if ok {
		// Deterministic clock: each call advances one second.
		tick := 0
		impl.now = func() time.Time {
			tick++
			return time.Unix(int64(tick), 0)
		}
	}

	return s
}

func TestSweep_KeepsMatchingArchive(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./game_en.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game_en.zip": "english"}}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Root:       ".",
		Keep:       m.NewLanguageSet("english"),
		Extensions: []string{".zip"},
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Kept: 1}, summary)
	assert.Empty(t, fs.removed)
	assert.Equal(t, []m.Path{"./game_en.zip"}, ledger.appended)
	require.Len(t, ui.decisions, 1)
	assert.Equal(t, m.Kept, ui.decisions[0].Decision)
}

func TestSweep_RemovesNonMatchingArchive(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./game_en.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game_en.zip": "japanese"}}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Removed: 1}, summary)
	assert.Equal(t, []m.Path{"./game_en.zip"}, fs.removed)
	// The ledger gains the entry even though the file was removed.
	assert.Equal(t, []m.Path{"./game_en.zip"}, ledger.appended)
}

func TestSweep_SkipsLedgeredWithoutClassifying(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./old.zip", "./new.zip"}}
	ledger := &fakeLedger{entries: map[m.Path]struct{}{"./old.zip": {}}}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./new.zip": "english"}}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Kept: 1, Skipped: 1}, summary)
	assert.Equal(t, []string{"./new.zip"}, classifier.calls)
	// No re-append for the skipped path.
	assert.Equal(t, []m.Path{"./new.zip"}, ledger.appended)
	assert.Equal(t, []m.Path{"./old.zip"}, ui.skips)
}

func TestSweep_ReRunMakesNoCallsForLedgeredPaths(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./a.zip", "./b.zip"}}
	ledger := &fakeLedger{entries: map[m.Path]struct{}{"./a.zip": {}, "./b.zip": {}}}
	classifier := &fakeClassifier{}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Skipped: 2}, summary)
	assert.Empty(t, classifier.calls)
	assert.Empty(t, fs.removed)
	assert.Empty(t, ledger.appended)
}

func TestSweep_ClassifierExhaustionRemovesAndContinues(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./broken.zip", "./game_en.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{
		answers: map[string]m.Language{"./game_en.zip": "english"},
		failing: map[string]bool{"./broken.zip": true},
	}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Kept: 1, Removed: 1}, summary)
	assert.Equal(t, []m.Path{"./broken.zip"}, fs.removed)
	assert.Equal(t, []m.Path{"./broken.zip", "./game_en.zip"}, ledger.appended)
	assert.Equal(t, []m.Path{"./broken.zip"}, ui.failures)
}

func TestSweep_UnexpectedAnswerIsReject(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./game.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game.zip": "korean"}}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english", "japanese"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Removed: 1}, summary)
}

func TestSweep_LooseMatchOnCollidingAnswer(t *testing.T) {
	// The answer is matched verbatim: a keep-set entry outside the three
	// known labels still matches a colliding response.
	fs := &fakeFS{archives: []m.Path{"./game.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game.zip": "korean"}}
	ui := &fakeUI{}

	summary, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("korean"),
	})
	require.NoError(t, err)

	assert.Equal(t, m.Summary{Kept: 1}, summary)
}

func TestSweep_RemoveErrorAbortsBeforeLedgerAppend(t *testing.T) {
	fs := &fakeFS{
		archives:  []m.Path{"./game_jp.zip", "./game_en.zip"},
		removeErr: errors.New("permission denied"),
	}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game_jp.zip": "japanese"}}
	ui := &fakeUI{}

	_, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.Error(t, err)

	// The failing file is not ledgered and the run does not reach the next
	// archive.
	assert.Empty(t, ledger.appended)
	assert.Equal(t, []string{"./game_jp.zip"}, classifier.calls)
}

func TestSweep_LedgerAppendErrorIsFatal(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./game_en.zip"}}
	ledger := &fakeLedger{appendErr: errors.New("disk full")}
	classifier := &fakeClassifier{answers: map[string]m.Language{"./game_en.zip": "english"}}
	ui := &fakeUI{}

	_, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.Error(t, err)
}

func TestSweep_LedgerLoadErrorIsFatal(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./game_en.zip"}}
	ledger := &fakeLedger{loadErr: errors.New("unreadable")}

	_, err := newTestSweeper(fs, ledger, &fakeClassifier{}, &fakeUI{}).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.Error(t, err)
}

func TestSweep_ReportsETA(t *testing.T) {
	fs := &fakeFS{archives: []m.Path{"./a.zip", "./b.zip", "./c.zip"}}
	ledger := &fakeLedger{}
	classifier := &fakeClassifier{answers: map[string]m.Language{
		"./a.zip": "english",
		"./b.zip": "english",
		"./c.zip": "english",
	}}
	ui := &fakeUI{}

	_, err := newTestSweeper(fs, ledger, classifier, ui).Sweep(context.Background(), SweepArgs{
		Keep: m.NewLanguageSet("english"),
	})
	require.NoError(t, err)

	require.Len(t, ui.etas, 3)
	// Each fake-clock observation is 1s, so the mean stays at 1s: two left
	// after the first file, one after the second, none after the last.
	assert.Equal(t, 2*time.Second, ui.etas[0])
	assert.Equal(t, 1*time.Second, ui.etas[1])
	assert.Equal(t, time.Duration(0), ui.etas[2])

	require.Len(t, ui.summaries, 1)
	assert.Equal(t, m.Summary{Kept: 3}, ui.summaries[0])
}

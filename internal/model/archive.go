// Package model defines the data structures for the archive sweep.
package model

// Path represents a file system path.
type Path string

// Language is a lowercase language label as the classifier reports it.
type Language string

// Languages the selector offers. The classifier answer is matched against
// the keep-set verbatim, so labels outside this list can still match if the
// user fed them in through flags.
const (
	English  Language = "english"
	Japanese Language = "japanese"
	Chinese  Language = "chinese"
)

// KnownLanguages lists the selector options in display order.
var KnownLanguages = []Language{English, Japanese, Chinese}

// Decision is the outcome of processing one archive.
type Decision int

const (
	// Kept indicates the classifier answer matched the keep-set.
	Kept Decision = iota
	// Removed indicates the archive was deleted from disk.
	Removed
	// SkippedLedgered indicates the path was already in the ledger.
	SkippedLedgered
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case Kept:
		return "kept"
	case Removed:
		return "removed"
	case SkippedLedgered:
		return "skipped"
	}

	return "unknown"
}

// Outcome records what happened to a single archive.
type Outcome struct {
	Path     Path
	Answer   Language // trimmed, lower-cased classifier answer; empty on failure
	Decision Decision
}

// Summary aggregates the outcomes of one sweep.
type Summary struct {
	Kept    int
	Removed int
	Skipped int
}

// Total returns the number of archives the sweep looked at.
func (s Summary) Total() int {
	return s.Kept + s.Removed + s.Skipped
}

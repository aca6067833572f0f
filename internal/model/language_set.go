package model

import "strings"

// LanguageSet is the set of language labels the user chose to retain.
// It is built once at startup and read-only afterwards.
type LanguageSet map[Language]struct{}

// NewLanguageSet builds a set from labels, trimming and lower-casing each
// one the same way classifier answers are normalized.
func NewLanguageSet(labels ...string) LanguageSet {
	set := make(LanguageSet, len(labels))
	for _, label := range labels {
		normalized := Language(strings.ToLower(strings.TrimSpace(label)))
		if normalized == "" {
			continue
		}

		set[normalized] = struct{}{}
	}

	return set
}

// Contains reports whether the label is a member of the set.
func (s LanguageSet) Contains(label Language) bool {
	_, ok := s[label]
	return ok
}

// Empty reports whether no languages were chosen.
func (s LanguageSet) Empty() bool {
	return len(s) == 0
}

// Names returns the member labels sorted for stable display.
func (s LanguageSet) Names() []string {
	names := make([]string, 0, len(s))
	for label := range s {
		names = append(names, string(label))
	}

	// Simple sort by string comparison
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if names[i] > names[j] {
				names[i], names[j] = names[j], names[i]
			}
		}
	}

	return names
}

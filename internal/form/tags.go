package form

import (
	"sort"

	"finanzas/txform/internal/textutils"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TagSet is a deduplicated, order-preserving list of free-text tags.
// Display keeps insertion order and the user's casing; equivalence is
// case-insensitive on the normalized form ('#' stripped, trimmed).
type TagSet struct {
	entries []string
}

// NewTagSet creates an empty tag set.
func NewTagSet() *TagSet {
	return &TagSet{}
}

// Add appends a tag unless an equivalent one already exists or the
// normalized form is empty. Returns whether the tag was added.
func (s *TagSet) Add(raw string) bool {
	normalized := textutils.NormalizeTag(raw)
	if normalized == "" {
		return false
	}
	for _, existing := range s.entries {
		if textutils.EqualTags(existing, normalized) {
			return false
		}
	}
	s.entries = append(s.entries, normalized)
	return true
}

// RemoveLast removes and returns the most recently added tag
// (Backspace-on-empty-input semantics).
func (s *TagSet) RemoveLast() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return last, true
}

// Contains reports whether an equivalent tag is present.
func (s *TagSet) Contains(raw string) bool {
	for _, existing := range s.entries {
		if textutils.EqualTags(existing, raw) {
			return true
		}
	}
	return false
}

// List returns the tags in insertion order.
func (s *TagSet) List() []string {
	return append([]string{}, s.entries...)
}

// Len returns the number of tags.
func (s *TagSet) Len() int {
	return len(s.entries)
}

// AddTag commits a tag on the form. New tags also join the suggestion
// pool.
func (f *Form) AddTag(raw string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.tags.Add(raw) {
		return false
	}
	normalized := textutils.NormalizeTag(raw)
	for _, known := range f.tagPool {
		if textutils.EqualTags(known, normalized) {
			return true
		}
	}
	f.tagPool = append(f.tagPool, normalized)
	return true
}

// RemoveLastTag removes the most recently added tag.
func (f *Form) RemoveLastTag() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags.RemoveLast()
}

// Tags returns the selected tags in insertion order.
func (f *Form) Tags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tags.List()
}

// SuggestTags returns up to the configured limit of known tags matching
// the partial input, excluding tags already selected. Matching is fuzzy
// and case-insensitive; best matches come first.
func (f *Form) SuggestTags(partial string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	candidates := make([]string, 0, len(f.tagPool))
	for _, tag := range f.tagPool {
		if !f.tags.Contains(tag) {
			candidates = append(candidates, tag)
		}
	}

	partial = textutils.NormalizeTag(partial)
	if partial == "" {
		if len(candidates) > f.suggestionLimit {
			candidates = candidates[:f.suggestionLimit]
		}
		return candidates
	}

	ranks := fuzzy.RankFindNormalizedFold(partial, candidates)
	sort.Sort(ranks)

	suggestions := make([]string, 0, f.suggestionLimit)
	for _, rank := range ranks {
		suggestions = append(suggestions, rank.Target)
		if len(suggestions) == f.suggestionLimit {
			break
		}
	}
	return suggestions
}

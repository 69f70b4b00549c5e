// Package rank holds the two pure transforms applied to raw search
// results: relevance scoring with a deterministic composite ordering,
// and text truncation with explicit continuation markers. Both are
// stateless; callers own their inputs.
package rank

import (
	"sort"
	"strings"
)

// PrecedentialValue is the citation-derived authority tier. It indicates
// citation-based authority, not a guarantee of binding precedent.
type PrecedentialValue string

const (
	// Strong: cited more than strongThreshold times.
	Strong PrecedentialValue = "Strong"
	// Moderate: cited more than moderateThreshold times.
	Moderate PrecedentialValue = "Moderate"
	// Limited: everything else.
	Limited PrecedentialValue = "Limited"
)

// Bucketing thresholds are fixed contract constants, not configuration.
// Callers rely on them.
const (
	strongThreshold   = 10
	moderateThreshold = 2
)

// Precedential buckets a citation count. Exhaustive and non-overlapping:
// c > 10 Strong, 2 < c <= 10 Moderate, c <= 2 Limited.
func Precedential(citationCount int) PrecedentialValue {
	switch {
	case citationCount > strongThreshold:
		return Strong
	case citationCount > moderateThreshold:
		return Moderate
	default:
		return Limited
	}
}

// Score counts how many of the keywords appear, case-insensitively, in
// the given text.
func Score(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			n++
		}
	}
	return n
}

// Less is the composite result ordering: primary key relevance score
// descending, tie-break citation count descending. Used with a stable
// sort this ordering is deterministic, with no random tie-breaking.
func Less(scoreA, citationsA, scoreB, citationsB int) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return citationsA > citationsB
}

// SortCases stably sorts a slice by the composite ordering, given
// accessors for the two keys.
func SortCases(n int, score, citations func(i int) int, swap func(i, j int)) {
	s := &caseSorter{n: n, score: score, citations: citations, swap: swap}
	sort.Stable(s)
}

type caseSorter struct {
	n                int
	score, citations func(i int) int
	swap             func(i, j int)
}

func (s *caseSorter) Len() int      { return s.n }
func (s *caseSorter) Swap(i, j int) { s.swap(i, j) }
func (s *caseSorter) Less(i, j int) bool {
	return Less(s.score(i), s.citations(i), s.score(j), s.citations(j))
}

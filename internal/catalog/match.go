package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// matcher performs case-insensitive substring search. A cases.Caser keeps internal state,
// so each query builds its own matcher.
type matcher struct {
	fold cases.Caser
	term string
}

// newMatcher returns nil for a blank term, meaning "no search filter".
func newMatcher(term string) *matcher {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	fold := cases.Fold()
	return &matcher{fold: fold, term: fold.String(term)}
}

// any reports whether the term occurs in any of the fields.
func (m *matcher) any(fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.term) {
			return true
		}
	}
	return false
}

// intersects reports whether the two sets share an element, ignoring case.
func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// containsFold is a case-insensitive substring test for single-field filters.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

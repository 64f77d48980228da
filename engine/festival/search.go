package festival

import "strings"

// Criteria holds the optional search inputs. Blank values impose no
// constraint.
type Criteria struct {
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
	Genre   string `json:"genre,omitempty"`
	Place   string `json:"place,omitempty"`
}

// IsEmpty reports whether no criterion is set. Callers must not run a search
// for empty criteria: that is "no search performed", not "zero matches".
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.Country) == "" &&
		strings.TrimSpace(c.Genre) == "" &&
		strings.TrimSpace(c.Place) == ""
}

type fieldMatcher struct {
	needle string
	field  func(*Festival) string
}

func (c Criteria) matchers() []fieldMatcher {
	candidates := []fieldMatcher{
		{needle: c.Name, field: func(f *Festival) string { return f.Name }},
		{needle: c.Country, field: func(f *Festival) string { return f.Country }},
		{needle: c.Genre, field: func(f *Festival) string { return f.Genre }},
		{needle: c.Place, field: func(f *Festival) string { return f.Place }},
	}
	out := candidates[:0]
	for _, m := range candidates {
		m.needle = fold(m.needle)
		if m.needle != "" {
			out = append(out, m)
		}
	}
	return out
}

// Search returns the records matching every non-blank criterion, in input
// order. Matching is case-insensitive substring containment on trimmed
// values. Empty criteria match nothing and yield an empty, non-nil slice.
//
// Search never mutates its inputs and is safe for concurrent use.
func Search(records []Festival, c Criteria) []Festival {
	matchers := c.matchers()
	if len(matchers) == 0 {
		return []Festival{}
	}
	out := make([]Festival, 0)
	for i := range records {
		if matchesAll(&records[i], matchers) {
			out = append(out, records[i])
		}
	}
	return out
}

func matchesAll(f *Festival, matchers []fieldMatcher) bool {
	for _, m := range matchers {
		if !strings.Contains(fold(m.field(f)), m.needle) {
			return false
		}
	}
	return true
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

package festival

// DefaultFeaturedCount is how many records the featured view shows.
const DefaultFeaturedCount = 8

// ViewState is what a browsing client should display.
type ViewState int

const (
	// StateFeatured: no search performed yet.
	StateFeatured ViewState = iota
	// StateNoFilters: a search was requested with every criterion blank.
	StateNoFilters
	// StateNoResults: a search ran and nothing matched.
	StateNoResults
	// StateResults: a search ran and found matches.
	StateResults
)

func (s ViewState) String() string {
	switch s {
	case StateFeatured:
		return "featured"
	case StateNoFilters:
		return "no_filters"
	case StateNoResults:
		return "no_results"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// Message is the user-facing headline for the state.
func (s ViewState) Message() string {
	switch s {
	case StateFeatured:
		return "Featured festivals"
	case StateNoFilters:
		return "No filters selected. Choose at least one filter, then search again."
	case StateNoResults:
		return "No festivals match your search."
	case StateResults:
		return "Results"
	default:
		return ""
	}
}

func (s ViewState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View is the resolved browse screen.
type View struct {
	State    ViewState  `json:"state"`
	Criteria Criteria   `json:"criteria"`
	Featured []Festival `json:"featured,omitempty"`
	Results  []Festival `json:"results,omitempty"`
	Count    int        `json:"count"`
}

type viewOptions struct {
	featuredCount int
}

// ViewOption customizes Resolve.
type ViewOption func(*viewOptions)

// WithFeaturedCount sets how many records the featured view shows. Negative
// values are treated as zero.
func WithFeaturedCount(n int) ViewOption {
	return func(o *viewOptions) {
		if n < 0 {
			n = 0
		}
		o.featuredCount = n
	}
}

// Resolve decides what a client shows for the given dataset, criteria and
// whether the user asked to search.
func Resolve(records []Festival, c Criteria, searched bool, opts ...ViewOption) View {
	o := viewOptions{featuredCount: DefaultFeaturedCount}
	for _, opt := range opts {
		opt(&o)
	}
	if !searched {
		return View{State: StateFeatured, Criteria: c, Featured: featured(records, o.featuredCount)}
	}
	if c.IsEmpty() {
		return View{State: StateNoFilters, Criteria: c}
	}
	results := Search(records, c)
	if len(results) == 0 {
		return View{State: StateNoResults, Criteria: c, Results: results}
	}
	return View{State: StateResults, Criteria: c, Results: results, Count: len(results)}
}

func featured(records []Festival, n int) []Festival {
	if n > len(records) {
		n = len(records)
	}
	out := make([]Festival, n)
	copy(out, records[:n])
	return out
}

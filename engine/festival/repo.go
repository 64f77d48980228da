package festival

import (
	"context"
	"strings"
)

// Filter holds the listing parameters accepted by the HTTP API. Blank values
// impose no constraint; present ones are ANDed.
type Filter struct {
	Country string `form:"country" json:"country,omitempty"`
	Genre   string `form:"genre"    json:"genre,omitempty"`
	ArtForm string `form:"art_form" json:"art_form,omitempty"`
	// Search matches the festival name or its city.
	Search string `form:"search" json:"search,omitempty"`
}

// Trimmed returns the filter with surrounding whitespace removed.
func (f Filter) Trimmed() Filter {
	return Filter{
		Country: strings.TrimSpace(f.Country),
		Genre:   strings.TrimSpace(f.Genre),
		ArtForm: strings.TrimSpace(f.ArtForm),
		Search:  strings.TrimSpace(f.Search),
	}
}

func (f Filter) IsEmpty() bool {
	return f.Trimmed() == Filter{}
}

// Row is a persisted festival flattened with the name of its art form.
type Row struct {
	ID        int64   `db:"id"          json:"id"`
	Name      string  `db:"name"        json:"name"`
	Country   *string `db:"country"     json:"country"`
	City      *string `db:"city"        json:"city"`
	Time      *string `db:"time"        json:"time"`
	Website   *string `db:"website"     json:"website"`
	ArtFormID *int64  `db:"art_form_id" json:"art_form_id"`
	ArtForm   *string `db:"art_form"    json:"art_form"`
}

type Repository interface {
	// List returns every festival matching the filter, each at most once.
	List(ctx context.Context, filter Filter) ([]Row, error)
}

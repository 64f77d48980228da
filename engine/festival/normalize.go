package festival

import "strings"

// Normalize turns raw dataset entries into complete festival records.
//
// Entries with no name, country, place or website (after trimming) are
// dropped; a record carrying only a genre or a time is not a festival.
// Textual fields are trimmed and missing ones become "". Time is kept as is.
func Normalize(raw []RawRecord) []Festival {
	out := make([]Festival, 0, len(raw))
	for i := range raw {
		f, ok := normalizeRecord(&raw[i])
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

func normalizeRecord(r *RawRecord) (Festival, bool) {
	f := Festival{
		Country: normalizeText(r.Country),
		Name:    normalizeText(r.Name),
		Place:   normalizeText(r.Place),
		Time:    r.Time,
		Genre:   normalizeText(r.Genre),
		Web:     normalizeText(r.Web),
	}
	if f.Name == "" && f.Country == "" && f.Place == "" && f.Web == "" {
		return Festival{}, false
	}
	return f, true
}

func normalizeText(t Text) string {
	if !t.Present {
		return ""
	}
	return strings.TrimSpace(t.Value)
}

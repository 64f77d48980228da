package festival

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Raw dataset keys. Lookups are case-insensitive.
const (
	KeyCountry    = "COUNTRY"
	KeyName       = "NAME"
	KeyPlace      = "PLACE"
	KeyTime       = "TIME"
	KeyGenre      = "ART/GENRE"
	KeyGenreAlias = "GENRE"
	KeyWeb        = "WEB"
)

// Text is an optional textual field of a raw record. Spreadsheet exports
// produce numbers and booleans where text is expected; those are rendered
// to their textual form.
type Text struct {
	Value   string
	Present bool
}

// TextOf builds a present Text.
func TextOf(v string) Text {
	return Text{Value: v, Present: true}
}

// TimeKind tells which JSON kind a festival time was written as.
type TimeKind int

const (
	TimeAbsent TimeKind = iota
	TimeText
	TimeNumber
)

// Time is passed through normalization untouched: a string stays a string,
// a number stays a number.
type Time struct {
	Kind   TimeKind
	Text   string
	Number float64
}

func TimeFromText(s string) Time {
	return Time{Kind: TimeText, Text: s}
}

func TimeFromNumber(n float64) Time {
	return Time{Kind: TimeNumber, Number: n}
}

// String renders the time for display. Absent times render empty.
func (t Time) String() string {
	switch t.Kind {
	case TimeText:
		return t.Text
	case TimeNumber:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	default:
		return ""
	}
}

func (t Time) IsZero() bool {
	return t.Kind == TimeAbsent
}

func (t Time) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TimeNumber:
		return json.Marshal(t.Number)
	case TimeText:
		return json.Marshal(t.Text)
	default:
		return []byte(`""`), nil
	}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = TimeFromValue(v)
	return nil
}

// TimeFromValue converts a decoded scalar into a Time.
func TimeFromValue(v any) Time {
	switch x := v.(type) {
	case nil:
		return Time{}
	case string:
		return TimeFromText(x)
	case float64:
		return TimeFromNumber(x)
	case float32:
		return TimeFromNumber(float64(x))
	case int:
		return TimeFromNumber(float64(x))
	case int64:
		return TimeFromNumber(float64(x))
	case uint64:
		return TimeFromNumber(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return TimeFromNumber(f)
		}
		return TimeFromText(x.String())
	default:
		if s, ok := scalarText(v); ok {
			return TimeFromText(s)
		}
		return Time{}
	}
}

// RawRecord is one entry of the festival dataset as loaded, before
// normalization. Every field is optional.
type RawRecord struct {
	Country Text
	Name    Text
	Place   Text
	Time    Time
	Genre   Text
	Web     Text
}

// RawRecordFromMap builds a RawRecord from a decoded object, matching keys
// case-insensitively. Nested values (objects, arrays) count as absent. When
// several keys name the same field, the exact upper-case key wins, then the
// lexically smallest one. ART/GENRE takes precedence over GENRE.
func RawRecordFromMap(m map[string]any) RawRecord {
	keys := canonicalKeys(m)
	lookup := func(field string) any {
		key, ok := keys[field]
		if !ok {
			return nil
		}
		return m[key]
	}
	r := RawRecord{
		Country: textFromValue(lookup(KeyCountry)),
		Name:    textFromValue(lookup(KeyName)),
		Place:   textFromValue(lookup(KeyPlace)),
		Time:    TimeFromValue(lookup(KeyTime)),
		Genre:   textFromValue(lookup(KeyGenre)),
		Web:     textFromValue(lookup(KeyWeb)),
	}
	if !r.Genre.Present {
		r.Genre = textFromValue(lookup(KeyGenreAlias))
	}
	return r
}

// canonicalKeys maps each upper-cased, trimmed key to the source key chosen
// for it, independently of map iteration order.
func canonicalKeys(m map[string]any) map[string]string {
	keys := make(map[string]string, len(m))
	for key := range m {
		canon := strings.ToUpper(strings.TrimSpace(key))
		current, ok := keys[canon]
		if !ok || preferKey(key, current, canon) {
			keys[canon] = key
		}
	}
	return keys
}

func preferKey(candidate, current, canon string) bool {
	switch {
	case current == canon:
		return false
	case candidate == canon:
		return true
	default:
		return candidate < current
	}
}

func textFromValue(v any) Text {
	s, ok := scalarText(v)
	if !ok {
		return Text{}
	}
	return TextOf(s)
}

func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case json.Number:
		return x.String(), true
	default:
		return "", false
	}
}

// Festival is a normalized dataset record. Every field except Time is always
// present, possibly empty.
type Festival struct {
	Country string `json:"country"`
	Name    string `json:"name"`
	Place   string `json:"place"`
	Time    Time   `json:"time"`
	Genre   string `json:"genre"`
	Web     string `json:"web"`
}

// DisplayName is the name shown on result cards.
func (f Festival) DisplayName() string {
	if f.Name == "" {
		return "Unnamed festival"
	}
	return f.Name
}

// DisplayCountry is the country shown on result cards.
func (f Festival) DisplayCountry() string {
	if f.Country == "" {
		return "Unknown country"
	}
	return f.Country
}

// WebURL returns the website as an openable URL, or "" when there is none.
func (f Festival) WebURL() string {
	return SafeWebURL(f.Web)
}

// SafeWebURL turns a bare domain into an https URL. Values that already carry
// an http or https scheme are returned trimmed.
func SafeWebURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

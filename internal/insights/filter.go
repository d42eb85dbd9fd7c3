package insights

import (
	"strings"

	"career-insights/internal/domain/posting"
)

// Field names a text column of a posting.
type Field int

const (
	FieldState Field = iota
	FieldCity
	FieldJobTitle
)

func (f Field) String() string {
	switch f {
	case FieldState:
		return "state"
	case FieldCity:
		return "city"
	case FieldJobTitle:
		return "job_title"
	default:
		return "unknown"
	}
}

func (f Field) value(r posting.Record) string {
	switch f {
	case FieldState:
		return r.State
	case FieldCity:
		return r.City
	case FieldJobTitle:
		return r.JobTitle
	default:
		return ""
	}
}

// FilterRecords narrows records by state, then city, then a
// case-insensitive substring of the job title. The title is trimmed
// first, so a blank or whitespace-only title applies no constraint.
// Input order is kept and the identity filter returns records unchanged.
func FilterRecords(records []posting.Record, state, city Selection, titleSubstring string) []posting.Record {
	needle := strings.ToLower(strings.TrimSpace(titleSubstring))
	if state.IsAny() && city.IsAny() && needle == "" {
		return records
	}

	out := make([]posting.Record, 0, len(records))
	for _, r := range records {
		if !state.Matches(r.State) {
			continue
		}
		if !city.Matches(r.City) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(r.JobTitle), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// byJobTitle keeps records whose title equals the selection exactly.
func byJobTitle(records []posting.Record, jobTitle Selection) []posting.Record {
	if jobTitle.IsAny() {
		return records
	}
	out := make([]posting.Record, 0, len(records))
	for _, r := range records {
		if jobTitle.Matches(r.JobTitle) {
			out = append(out, r)
		}
	}
	return out
}

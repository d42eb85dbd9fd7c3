package insights

import (
	"sort"

	"career-insights/internal/domain/posting"
)

// ListDistinctValues returns the sorted distinct non-empty values of
// field with AllLabel prepended.
func ListDistinctValues(records []posting.Record, field Field) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		v := field.value(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)

	out := make([]string, 0, len(values)+1)
	out = append(out, AllLabel)
	return append(out, values...)
}

// CityOptions lists the cities available once state has been chosen.
func CityOptions(records []posting.Record, state Selection) []string {
	return ListDistinctValues(FilterRecords(records, state, Any(), ""), FieldCity)
}

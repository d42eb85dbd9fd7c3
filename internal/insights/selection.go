package insights

import "strings"

// AllLabel is the option-list label meaning "no constraint". It is a
// presentation value only; filters use Selection.
const AllLabel = "All"

// Selection is a filter choice on one dimension: either no constraint
// or a single exact value.
type Selection struct {
	value string
	set   bool
}

// Any returns the selection that matches every value.
func Any() Selection {
	return Selection{}
}

// Only returns the selection that matches exactly v.
func Only(v string) Selection {
	return Selection{value: v, set: true}
}

// ParseSelection maps a raw control value to a Selection. Empty input
// and AllLabel both mean Any.
func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == AllLabel {
		return Any()
	}
	return Only(raw)
}

func (s Selection) IsAny() bool {
	return !s.set
}

func (s Selection) Value() (string, bool) {
	return s.value, s.set
}

func (s Selection) Matches(v string) bool {
	return !s.set || s.value == v
}

func (s Selection) String() string {
	if !s.set {
		return AllLabel
	}
	return s.value
}

package insights

import (
	"sort"

	"career-insights/internal/domain/posting"
)

// DefaultLimit is the number of bars the top-N views show.
const DefaultLimit = 10

// CategoryCount is one bar of a frequency chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryValue is one bar of a mean-salary chart.
type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Groups keep first-seen order until sorted, and every sort below is
// stable, so ties go to the group that appeared first in the input.

type counter struct {
	index map[string]int
	out   []CategoryCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int), out: make([]CategoryCount, 0)}
}

func (c *counter) add(key string) {
	if key == "" {
		return
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.out)
		c.index[key] = i
		c.out = append(c.out, CategoryCount{Category: key})
	}
	c.out[i].Count++
}

func (c *counter) has(key string) bool {
	_, ok := c.index[key]
	return ok
}

type meanGroup struct {
	key string
	sum float64
	n   int
}

type averager struct {
	index  map[string]int
	groups []meanGroup
}

func newAverager() *averager {
	return &averager{index: make(map[string]int)}
}

func (a *averager) add(key string, v float64) {
	if key == "" {
		return
	}
	i, ok := a.index[key]
	if !ok {
		i = len(a.groups)
		a.index[key] = i
		a.groups = append(a.groups, meanGroup{key: key})
	}
	a.groups[i].sum += v
	a.groups[i].n++
}

func (a *averager) means() []CategoryValue {
	out := make([]CategoryValue, 0, len(a.groups))
	for _, g := range a.groups {
		if g.n == 0 {
			continue
		}
		out = append(out, CategoryValue{Category: g.key, Value: g.sum / float64(g.n)})
	}
	return out
}

func topCounts(items []CategoryCount, limit int) []CategoryCount {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Count > items[j].Count })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func topValues(items []CategoryValue, limit int) []CategoryValue {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// TopJobTitlesByCount returns the job titles with the most postings.
// limit <= 0 disables truncation.
func TopJobTitlesByCount(records []posting.Record, limit int) []CategoryCount {
	c := newCounter()
	for _, r := range records {
		c.add(r.JobTitle)
	}
	return topCounts(c.out, limit)
}

// TopJobTitlesBySalary returns the job titles with the highest mean
// salary. Postings without a salary are ignored, so a title whose
// postings all lack one does not appear.
func TopJobTitlesBySalary(records []posting.Record, limit int) []CategoryValue {
	a := newAverager()
	for _, r := range records {
		if !r.HasSalary() {
			continue
		}
		a.add(r.JobTitle, *r.AverageSalary)
	}
	return topValues(a.means(), limit)
}

// TopSkillsByFrequency counts skill occurrences across the postings of
// jobTitle (exact match). A posting listing a skill twice counts twice.
func TopSkillsByFrequency(records []posting.Record, jobTitle Selection, limit int) []CategoryCount {
	c := newCounter()
	for _, r := range byJobTitle(records, jobTitle) {
		for _, s := range r.Skills {
			c.add(s)
		}
	}
	return topCounts(c.out, limit)
}

// MeanSalaryBySkill averages salary over every (posting, skill)
// occurrence of salaried postings. All skills are returned, ordered by
// skill name.
func MeanSalaryBySkill(records []posting.Record) []CategoryValue {
	a := newAverager()
	for _, r := range records {
		if !r.HasSalary() {
			continue
		}
		for _, s := range r.Skills {
			a.add(s, *r.AverageSalary)
		}
	}
	out := a.means()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CountByState counts postings per state in first-seen order. Each state
// in expected that has no postings is appended with a zero count.
func CountByState(records []posting.Record, expected ...string) []CategoryCount {
	c := newCounter()
	for _, r := range records {
		c.add(r.State)
	}
	for _, st := range expected {
		if st == "" || c.has(st) {
			continue
		}
		c.index[st] = len(c.out)
		c.out = append(c.out, CategoryCount{Category: st})
	}
	return c.out
}

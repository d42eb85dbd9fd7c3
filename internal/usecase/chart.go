package usecase

import (
	"career-insights/internal/insights"

	"github.com/ecodeclub/ekit/slice"
)

type ChartKind string

const (
	ChartBar        ChartKind = "bar"
	ChartChoropleth ChartKind = "choropleth"
)

const (
	ViewTopJobTitles     = "top-job-titles"
	ViewSalaryByJobTitle = "salary-by-job-title"
	ViewTopSkills        = "top-skills"
	ViewSalaryBySkill    = "salary-by-skill"
	ViewJobsByState      = "jobs-by-state"
)

// ChartPoint is one bar, or one state on the map.
type ChartPoint struct {
	Category string
	Value    float64
	Label    string
}

// ChartSeries is everything the renderer needs to draw one view.
type ChartSeries struct {
	View          string
	Title         string
	Kind          ChartKind
	Orientation   string
	CategoryAxis  string
	ValueAxis     string
	ColorScale    string
	LocationMode  string
	Scope         string
	CategoryOrder string
	Points        []ChartPoint
}

func countPoints(items []insights.CategoryCount) []ChartPoint {
	return slice.Map(items, func(_ int, it insights.CategoryCount) ChartPoint {
		return ChartPoint{Category: it.Category, Value: float64(it.Count)}
	})
}

func salaryPoints(items []insights.CategoryValue) []ChartPoint {
	return slice.Map(items, func(_ int, it insights.CategoryValue) ChartPoint {
		return ChartPoint{Category: it.Category, Value: it.Value, Label: insights.FormatUSD(it.Value)}
	})
}

// ViewDescriptor describes one dashboard tab.
type ViewDescriptor struct {
	ID      string
	Tab     string
	Header  string
	Filters []string
}

var catalog = []ViewDescriptor{
	{ID: ViewTopJobTitles, Tab: "Top Job Titles", Header: "Top Data Science Job Titles", Filters: []string{"state", "city", "limit"}},
	{ID: ViewSalaryByJobTitle, Tab: "Job Salaries", Header: "Data Science Salary Overview", Filters: []string{"state", "city", "title", "limit"}},
	{ID: ViewTopSkills, Tab: "Top Skills", Header: "Most Demanding Skills", Filters: []string{"job_title", "limit"}},
	{ID: ViewSalaryBySkill, Tab: "Skills Pay", Header: "Skills Salary Overview", Filters: []string{}},
	{ID: ViewJobsByState, Tab: "Map View", Header: "Map View", Filters: []string{"fill_states"}},
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"career-insights/internal/domain/posting"
	"career-insights/internal/insights"

	"go.uber.org/zap"
)

type TopJobTitlesParams struct {
	State insights.Selection
	City  insights.Selection
	Limit int
}

type SalaryByJobTitleParams struct {
	State insights.Selection
	City  insights.Selection
	Title string
	Limit int
}

type TopSkillsParams struct {
	JobTitle insights.Selection
	Limit    int
}

type JobsByStateParams struct {
	FillAllStates bool
}

type DatasetInfo struct {
	Records     int
	Source      string
	Fingerprint string
	LoadedAt    time.Time
}

type DashboardUsecase interface {
	Catalog() []ViewDescriptor
	Dataset() DatasetInfo

	StateOptions(ctx context.Context) ([]string, error)
	CityOptions(ctx context.Context, state insights.Selection) ([]string, error)
	JobTitleOptions(ctx context.Context) ([]string, error)

	TopJobTitles(ctx context.Context, params TopJobTitlesParams) (ChartSeries, error)
	SalaryByJobTitle(ctx context.Context, params SalaryByJobTitleParams) (ChartSeries, error)
	TopSkills(ctx context.Context, params TopSkillsParams) (ChartSeries, error)
	SalaryBySkill(ctx context.Context) (ChartSeries, error)
	JobsByState(ctx context.Context, params JobsByStateParams) (ChartSeries, error)
}

type viewObserver interface {
	ObserveView(view string, d time.Duration, points int)
}

// Dashboard serves every view from one immutable dataset. It holds no
// mutable state and is safe for concurrent use.
type Dashboard struct {
	data     *posting.Dataset
	maxLimit int
	observer viewObserver
	logger   *zap.Logger
}

func NewDashboard(data *posting.Dataset, maxLimit int, observer viewObserver, logger *zap.Logger) *Dashboard {
	if data == nil {
		data = &posting.Dataset{}
	}
	if maxLimit <= 0 {
		maxLimit = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{data: data, maxLimit: maxLimit, observer: observer, logger: logger}
}

func (u *Dashboard) records() []posting.Record {
	return u.data.Records
}

func (u *Dashboard) resolveLimit(limit int) (int, error) {
	if limit == 0 {
		return insights.DefaultLimit, nil
	}
	if limit < 0 || limit > u.maxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, u.maxLimit)
	}
	return limit, nil
}

func (u *Dashboard) observe(view string, start time.Time, s ChartSeries) ChartSeries {
	d := time.Since(start)
	if u.observer != nil {
		u.observer.ObserveView(view, d, len(s.Points))
	}
	u.logger.Debug("[Dashboard] view computed",
		zap.String("view", view),
		zap.Int("points", len(s.Points)),
		zap.Duration("took", d),
	)
	return s
}

func (u *Dashboard) Catalog() []ViewDescriptor {
	out := make([]ViewDescriptor, len(catalog))
	copy(out, catalog)
	return out
}

func (u *Dashboard) Dataset() DatasetInfo {
	return DatasetInfo{
		Records:     u.data.Len(),
		Source:      u.data.Source,
		Fingerprint: u.data.Fingerprint,
		LoadedAt:    u.data.LoadedAt,
	}
}

func (u *Dashboard) StateOptions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return insights.ListDistinctValues(u.records(), insights.FieldState), nil
}

func (u *Dashboard) CityOptions(ctx context.Context, state insights.Selection) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return insights.CityOptions(u.records(), state), nil
}

func (u *Dashboard) JobTitleOptions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return insights.ListDistinctValues(u.records(), insights.FieldJobTitle), nil
}

func (u *Dashboard) TopJobTitles(ctx context.Context, params TopJobTitlesParams) (ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return ChartSeries{}, err
	}
	limit, err := u.resolveLimit(params.Limit)
	if err != nil {
		return ChartSeries{}, err
	}

	start := time.Now()
	filtered := insights.FilterRecords(u.records(), params.State, params.City, "")
	top := insights.TopJobTitlesByCount(filtered, limit)

	return u.observe(ViewTopJobTitles, start, ChartSeries{
		View:          ViewTopJobTitles,
		Title:         fmt.Sprintf("Top %d Job Titles with Most Openings", limit),
		Kind:          ChartBar,
		Orientation:   "h",
		CategoryAxis:  "Job Title",
		ValueAxis:     "Number of Openings",
		ColorScale:    "blues",
		CategoryOrder: "total ascending",
		Points:        countPoints(top),
	}), nil
}

func (u *Dashboard) SalaryByJobTitle(ctx context.Context, params SalaryByJobTitleParams) (ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return ChartSeries{}, err
	}
	limit, err := u.resolveLimit(params.Limit)
	if err != nil {
		return ChartSeries{}, err
	}

	start := time.Now()
	filtered := insights.FilterRecords(u.records(), params.State, params.City, params.Title)
	top := insights.TopJobTitlesBySalary(filtered, limit)

	return u.observe(ViewSalaryByJobTitle, start, ChartSeries{
		View:          ViewSalaryByJobTitle,
		Title:         "Average Salary by Job Title",
		Kind:          ChartBar,
		Orientation:   "h",
		CategoryAxis:  "Job Title",
		ValueAxis:     "Average Salary ($)",
		ColorScale:    "greens",
		CategoryOrder: "total ascending",
		Points:        salaryPoints(top),
	}), nil
}

func (u *Dashboard) TopSkills(ctx context.Context, params TopSkillsParams) (ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return ChartSeries{}, err
	}
	limit, err := u.resolveLimit(params.Limit)
	if err != nil {
		return ChartSeries{}, err
	}

	start := time.Now()
	top := insights.TopSkillsByFrequency(u.records(), params.JobTitle, limit)

	return u.observe(ViewTopSkills, start, ChartSeries{
		View:          ViewTopSkills,
		Title:         "Top Skills for " + params.JobTitle.String(),
		Kind:          ChartBar,
		Orientation:   "h",
		CategoryAxis:  "Skill",
		ValueAxis:     "Frequency",
		ColorScale:    "oranges",
		CategoryOrder: "total ascending",
		Points:        countPoints(top),
	}), nil
}

func (u *Dashboard) SalaryBySkill(ctx context.Context) (ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return ChartSeries{}, err
	}

	start := time.Now()
	means := insights.MeanSalaryBySkill(u.records())

	return u.observe(ViewSalaryBySkill, start, ChartSeries{
		View:          ViewSalaryBySkill,
		Title:         "Average Salary by Skill",
		Kind:          ChartBar,
		Orientation:   "h",
		CategoryAxis:  "Skill",
		ValueAxis:     "Average Salary ($)",
		ColorScale:    "purples",
		CategoryOrder: "total ascending",
		Points:        salaryPoints(means),
	}), nil
}

func (u *Dashboard) JobsByState(ctx context.Context, params JobsByStateParams) (ChartSeries, error) {
	if err := ctx.Err(); err != nil {
		return ChartSeries{}, err
	}

	start := time.Now()
	var expected []string
	if params.FillAllStates {
		expected = insights.USStateCodes
	}
	counts := insights.CountByState(u.records(), expected...)

	return u.observe(ViewJobsByState, start, ChartSeries{
		View:         ViewJobsByState,
		Title:        "Heatmap of Data Science Job Openings in the US",
		Kind:         ChartChoropleth,
		CategoryAxis: "State",
		ValueAxis:    "Number of Jobs",
		ColorScale:   "reds",
		LocationMode: "USA-states",
		Scope:        "usa",
		Points:       countPoints(counts),
	}), nil
}

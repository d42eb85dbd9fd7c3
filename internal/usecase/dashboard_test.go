package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"career-insights/internal/domain/posting"
	"career-insights/internal/insights"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	views map[string]int
}

func (o *recordingObserver) ObserveView(view string, _ time.Duration, points int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.views == nil {
		o.views = map[string]int{}
	}
	o.views[view] = points
}

func newTestDashboard(obs viewObserver) *Dashboard {
	ds := &posting.Dataset{
		Records: []posting.Record{
			{JobTitle: "Data Scientist", State: "CA", City: "SF", AverageSalary: posting.Salary(120000), Skills: []string{"Python", "SQL"}},
			{JobTitle: "Data Scientist", State: "CA", City: "SF", Skills: []string{"Python"}},
			{JobTitle: "Data Analyst", State: "NY", City: "NYC", AverageSalary: posting.Salary(80000), Skills: []string{"SQL"}},
			{JobTitle: "Machine Learning Engineer", State: "CA", City: "LA", AverageSalary: posting.Salary(150000.4), Skills: []string{"Python", "PyTorch"}},
		},
		Source:      "csv",
		Fingerprint: "fp",
		LoadedAt:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	return NewDashboard(ds, 20, obs, nil)
}

func categories(s ChartSeries) []string {
	out := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Category)
	}
	return out
}

func TestDashboard_TopJobTitles(t *testing.T) {
	obs := &recordingObserver{}
	u := newTestDashboard(obs)
	ctx := context.Background()

	s, err := u.TopJobTitles(ctx, TopJobTitlesParams{State: insights.Any(), City: insights.Any()})
	require.NoError(t, err)
	assert.Equal(t, "Top 10 Job Titles with Most Openings", s.Title)
	assert.Equal(t, ChartBar, s.Kind)
	assert.Equal(t, "blues", s.ColorScale)
	assert.Equal(t, []string{"Data Scientist", "Data Analyst", "Machine Learning Engineer"}, categories(s))
	assert.Equal(t, 2.0, s.Points[0].Value)
	assert.Empty(t, s.Points[0].Label)
	assert.Equal(t, 3, obs.views[ViewTopJobTitles])

	s, err = u.TopJobTitles(ctx, TopJobTitlesParams{State: insights.Only("CA"), City: insights.Only("LA"), Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, "Top 5 Job Titles with Most Openings", s.Title)
	assert.Equal(t, []string{"Machine Learning Engineer"}, categories(s))
}

func TestDashboard_LimitValidation(t *testing.T) {
	u := newTestDashboard(nil)
	ctx := context.Background()

	_, err := u.TopJobTitles(ctx, TopJobTitlesParams{Limit: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.SalaryByJobTitle(ctx, SalaryByJobTitleParams{Limit: 21})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = u.TopSkills(ctx, TopSkillsParams{Limit: 20})
	assert.NoError(t, err)
}

func TestDashboard_SalaryByJobTitle(t *testing.T) {
	u := newTestDashboard(nil)

	s, err := u.SalaryByJobTitle(context.Background(), SalaryByJobTitleParams{Title: "data"})
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.Equal(t, "Data Scientist", s.Points[0].Category)
	assert.Equal(t, 120000.0, s.Points[0].Value)
	assert.Equal(t, "$120,000", s.Points[0].Label)
	assert.Equal(t, "$80,000", s.Points[1].Label)
	assert.Equal(t, "Average Salary ($)", s.ValueAxis)
}

func TestDashboard_SalaryByJobTitle_EmptyFilter(t *testing.T) {
	u := newTestDashboard(nil)

	s, err := u.SalaryByJobTitle(context.Background(), SalaryByJobTitleParams{State: insights.Only("TX")})
	require.NoError(t, err)
	assert.NotNil(t, s.Points)
	assert.Empty(t, s.Points)
}

func TestDashboard_TopSkills(t *testing.T) {
	u := newTestDashboard(nil)
	ctx := context.Background()

	s, err := u.TopSkills(ctx, TopSkillsParams{JobTitle: insights.Any()})
	require.NoError(t, err)
	assert.Equal(t, "Top Skills for All", s.Title)
	assert.Equal(t, []string{"Python", "SQL", "PyTorch"}, categories(s))
	assert.Equal(t, 3.0, s.Points[0].Value)

	s, err = u.TopSkills(ctx, TopSkillsParams{JobTitle: insights.Only("Data Scientist")})
	require.NoError(t, err)
	assert.Equal(t, "Top Skills for Data Scientist", s.Title)
	assert.Equal(t, []string{"Python", "SQL"}, categories(s))
}

func TestDashboard_SalaryBySkill(t *testing.T) {
	u := newTestDashboard(nil)

	s, err := u.SalaryBySkill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"PyTorch", "Python", "SQL"}, categories(s))
	assert.Equal(t, "$150,000", s.Points[0].Label)
	assert.InDelta(t, 135000.2, s.Points[1].Value, 1e-6)
	assert.Equal(t, 100000.0, s.Points[2].Value)
}

func TestDashboard_JobsByState(t *testing.T) {
	u := newTestDashboard(nil)
	ctx := context.Background()

	s, err := u.JobsByState(ctx, JobsByStateParams{})
	require.NoError(t, err)
	assert.Equal(t, ChartChoropleth, s.Kind)
	assert.Equal(t, "USA-states", s.LocationMode)
	assert.Equal(t, []string{"CA", "NY"}, categories(s))
	assert.Equal(t, 3.0, s.Points[0].Value)

	s, err = u.JobsByState(ctx, JobsByStateParams{FillAllStates: true})
	require.NoError(t, err)
	assert.Len(t, s.Points, len(insights.USStateCodes))
}

func TestDashboard_Options(t *testing.T) {
	u := newTestDashboard(nil)
	ctx := context.Background()

	states, err := u.StateOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "CA", "NY"}, states)

	cities, err := u.CityOptions(ctx, insights.Only("CA"))
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "LA", "SF"}, cities)

	titles, err := u.JobTitleOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"All", "Data Analyst", "Data Scientist", "Machine Learning Engineer"}, titles)
}

func TestDashboard_CanceledContext(t *testing.T) {
	u := newTestDashboard(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := u.TopSkills(ctx, TopSkillsParams{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = u.StateOptions(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboard_CatalogAndDataset(t *testing.T) {
	u := newTestDashboard(nil)

	cat := u.Catalog()
	require.Len(t, cat, 5)
	assert.Equal(t, ViewTopJobTitles, cat[0].ID)
	cat[0].ID = "mutated"
	assert.Equal(t, ViewTopJobTitles, u.Catalog()[0].ID)

	info := u.Dataset()
	assert.Equal(t, 4, info.Records)
	assert.Equal(t, "csv", info.Source)
}

func TestDashboard_ConcurrentReads(t *testing.T) {
	u := newTestDashboard(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = u.TopSkills(ctx, TopSkillsParams{JobTitle: insights.Any()})
			_, _ = u.SalaryBySkill(ctx)
			_, _ = u.TopJobTitles(ctx, TopJobTitlesParams{State: insights.Only("CA")})
		}()
	}
	wg.Wait()

	s, err := u.TopSkills(ctx, TopSkillsParams{JobTitle: insights.Any()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL", "PyTorch"}, categories(s))
}

package insights

import (
	"sort"
	"testing"

	"career-insights/internal/domain/posting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	assert.True(t, ParseSelection("").IsAny())
	assert.True(t, ParseSelection("  ").IsAny())
	assert.True(t, ParseSelection(AllLabel).IsAny())

	s := ParseSelection(" CA ")
	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, "CA", v)
	assert.Equal(t, "CA", s.String())
	assert.Equal(t, AllLabel, Any().String())
}

func TestFilterRecords_Identity(t *testing.T) {
	records := sampleRecords()
	got := FilterRecords(records, Any(), Any(), "")
	assert.Equal(t, records, got)
}

func TestFilterRecords_Sequential(t *testing.T) {
	records := []posting.Record{
		{JobTitle: "Senior Data Scientist", State: "CA", City: "SF"},
		{JobTitle: "Data Analyst", State: "CA", City: "LA"},
		{JobTitle: "data scientist II", State: "CA", City: "SF"},
		{JobTitle: "Data Scientist", State: "NY", City: "SF"},
	}

	got := FilterRecords(records, Only("CA"), Any(), "")
	require.Len(t, got, 3)

	got = FilterRecords(records, Only("CA"), Only("SF"), "")
	require.Len(t, got, 2)
	assert.Equal(t, "Senior Data Scientist", got[0].JobTitle)
	assert.Equal(t, "data scientist II", got[1].JobTitle)

	got = FilterRecords(records, Any(), Only("SF"), "SCIENTIST")
	require.Len(t, got, 3)

	got = FilterRecords(records, Only("CA"), Any(), "analyst")
	require.Len(t, got, 1)
	assert.Equal(t, "LA", got[0].City)

	got = FilterRecords(records, Only("TX"), Any(), "")
	assert.Empty(t, got)
}

func TestFilterRecords_SubstringIsLiteral(t *testing.T) {
	records := []posting.Record{{JobTitle: "C++ Developer"}, {JobTitle: "Cx Developer"}}
	got := FilterRecords(records, Any(), Any(), "c++")
	require.Len(t, got, 1)
	assert.Equal(t, "C++ Developer", got[0].JobTitle)
}

func TestFilterRecords_BlankTitleIsNoFilter(t *testing.T) {
	records := []posting.Record{{JobTitle: "Data Scientist"}, {JobTitle: "Analyst"}, {JobTitle: ""}}

	for _, title := range []string{"", " ", "   ", "\t"} {
		got := FilterRecords(records, Any(), Any(), title)
		assert.Equal(t, records, got, "%q", title)
	}

	got := FilterRecords(records, Any(), Any(), "  data ")
	require.Len(t, got, 1)
	assert.Equal(t, "Data Scientist", got[0].JobTitle)
}

func TestListDistinctValues(t *testing.T) {
	records := []posting.Record{
		{State: "NY", City: "NYC"},
		{State: "CA", City: "SF"},
		{State: "NY", City: "Albany"},
		{State: "", City: "Nowhere"},
		{State: "CA", City: "LA"},
	}

	got := ListDistinctValues(records, FieldState)
	assert.Equal(t, []string{AllLabel, "CA", "NY"}, got)

	cities := ListDistinctValues(records, FieldCity)
	require.Equal(t, AllLabel, cities[0])
	rest := cities[1:]
	assert.True(t, sort.StringsAreSorted(rest))
	assert.Len(t, rest, 5)

	assert.Equal(t, []string{AllLabel}, ListDistinctValues(nil, FieldJobTitle))
}

func TestCityOptions_FollowsState(t *testing.T) {
	records := []posting.Record{
		{State: "NY", City: "NYC"},
		{State: "CA", City: "SF"},
		{State: "CA", City: "LA"},
		{State: "CA", City: "SF"},
	}

	assert.Equal(t, []string{AllLabel, "LA", "SF"}, CityOptions(records, Only("CA")))
	assert.Equal(t, []string{AllLabel, "LA", "NYC", "SF"}, CityOptions(records, Any()))
	assert.Equal(t, []string{AllLabel}, CityOptions(records, Only("WA")))
}

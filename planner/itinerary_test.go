package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/dataset"
)

func TestBuildItineraryRanksAndTruncates(t *testing.T) {
	places := []dataset.PlaceRecord{
		{Name: "five", City: "Goa", Type: "beach", Rating: 5},
		{Name: "three", City: "Goa", Type: "market", Rating: 3},
		{Name: "four", City: "Goa", Type: "beach", Rating: 4},
		{Name: "two", City: "Goa", Type: "market", Rating: 2},
		{Name: "one", City: "Goa", Type: "beach", Rating: 1},
		{Name: "elsewhere", City: "Delhi", Type: "beach", Rating: 5},
	}

	it, err := BuildItinerary(places, ItineraryQuery{City: "goa", Days: 3})
	require.NoError(t, err)
	require.Len(t, it, 3)

	assert.Equal(t, "Day 1", it[0].Label)
	assert.Equal(t, "Day 3", it[2].Label)
	assert.Equal(t, []PlaceView{{Name: "five", Category: "beach", Rating: 5}}, it[0].Places)
	assert.Equal(t, []PlaceView{{Name: "four", Category: "beach", Rating: 4}}, it[1].Places)
	assert.Equal(t, []PlaceView{{Name: "three", Category: "market", Rating: 3}}, it[2].Places)
}

func TestBuildItineraryStableTies(t *testing.T) {
	places := []dataset.PlaceRecord{
		{Name: "a", City: "Goa", Rating: 4},
		{Name: "b", City: "Goa", Rating: 4.5},
		{Name: "c", City: "Goa", Rating: 4},
	}

	it, err := BuildItinerary(places, ItineraryQuery{City: "Goa", Days: 3})
	require.NoError(t, err)

	names := []string{}
	for _, p := range it.Places() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestBuildItineraryEmptyDays(t *testing.T) {
	places := []dataset.PlaceRecord{{Name: "only", City: "Goa", Type: "beach", Rating: 4}}

	it, err := BuildItinerary(places, ItineraryQuery{City: "Goa", Days: 3})
	require.NoError(t, err)
	require.Len(t, it, 3)
	assert.Len(t, it[0].Places, 1)
	assert.Empty(t, it[1].Places)
	assert.NotNil(t, it[2].Places)
}

func TestBuildItineraryCategoryFilter(t *testing.T) {
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)

	it, err := BuildItinerary(ds.Places, ItineraryQuery{City: "Goa", Category: "market", Days: 5})
	require.NoError(t, err)

	got := it.Places()
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 5)

	byName := map[string]dataset.PlaceRecord{}
	for _, p := range ds.Places {
		byName[p.Name] = p
	}
	for _, p := range got {
		rec := byName[p.Name]
		assert.True(t, sameKey(rec.City, "Goa"))
		assert.Equal(t, "market", rec.Type)
	}
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Rating, got[i].Rating)
	}
}

func TestBuildItineraryRoundRobinMatchesOnePerDay(t *testing.T) {
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)

	primary, err := BuildItinerary(ds.Places, ItineraryQuery{City: "Delhi", Days: 4})
	require.NoError(t, err)
	grouped, err := BuildItinerary(ds.Places, ItineraryQuery{City: "Delhi", Days: 4, Mode: RoundRobin})
	require.NoError(t, err)

	assert.Equal(t, primary, grouped)
}

func TestBuildItineraryInvalid(t *testing.T) {
	_, err := BuildItinerary(nil, ItineraryQuery{City: "Goa", Days: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildItinerary(nil, ItineraryQuery{City: "", Days: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = BuildItinerary(nil, ItineraryQuery{City: "Goa", Days: 2, Mode: "by_rating"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

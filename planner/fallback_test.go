package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/dataset"
)

func TestDestinationAlternatives(t *testing.T) {
	dests, err := DestinationAlternatives(testFlights(), " HYDERABAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Goa"}, dests)
}

func TestDestinationAlternativesNone(t *testing.T) {
	dests, err := DestinationAlternatives(testFlights(), "Goa")
	assert.ErrorIs(t, err, ErrNoAlternatives)
	assert.Nil(t, dests)

	_, err = DestinationAlternatives(testFlights(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDestinationAlternativesSkipInvalidFlights(t *testing.T) {
	flights := []dataset.FlightRecord{
		flight("IndiGo", "Hyderabad", "Delhi", 0, 140, 6500),
		flight("Broken Air", "Hyderabad", "Goa", 4, -90, 3000),
	}

	dests, err := DestinationAlternatives(flights, "Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi"}, dests)

	for _, d := range dests {
		res, err := SearchFlights(flights, FlightQuery{Source: "Hyderabad", Destination: d})
		require.NoError(t, err)
		assert.True(t, res.IsFound(), d)
	}

	_, err = DestinationAlternatives(flights[1:], "Hyderabad")
	assert.ErrorIs(t, err, ErrNoAlternatives)
}

func TestPriceAlternativesIgnoresCeilingAndRating(t *testing.T) {
	prices, err := PriceAlternatives(testHotels(), "delhi", 5, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1200, 3000, 4783, 6900, 7800}, prices)

	prices, err = PriceAlternatives(testHotels(), "Goa", 0, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2500}, prices)
}

func TestPriceAlternativesHonorRating(t *testing.T) {
	prices, err := PriceAlternatives(testHotels(), "Delhi", 5, true)
	require.NoError(t, err)
	assert.Equal(t, []int{6900, 7800}, prices)

	_, err = PriceAlternatives(testHotels(), "Goa", 4, true)
	assert.ErrorIs(t, err, ErrNoAlternatives)
}

func TestPriceAlternativesUnknownCity(t *testing.T) {
	_, err := PriceAlternatives(testHotels(), "Jaipur", 0, false)
	assert.ErrorIs(t, err, ErrNoAlternatives)
}

func TestAlternativesGeneric(t *testing.T) {
	words := []string{"pear", "apple", "plum", "apple", "fig"}
	got, err := Alternatives(words,
		func(s string) bool { return s[0] == 'p' || s[0] == 'a' },
		func(s string) int { return len(s) },
	)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got)
}

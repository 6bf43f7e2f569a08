package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/dataset"
)

func newTestPlanner(t *testing.T, opts Options) *Planner {
	t.Helper()
	ds := &dataset.Dataset{
		Flights: testFlights(),
		Hotels:  testHotels(),
		Places: []dataset.PlaceRecord{
			{Name: "Red Fort", City: "Delhi", Type: "heritage", Rating: 4.5},
			{Name: "Qutub Minar", City: "Delhi", Type: "heritage", Rating: 4.6},
			{Name: "Baga Beach", City: "Goa", Type: "beach", Rating: 4.5},
		},
	}
	p, err := New(ds, opts)
	require.NoError(t, err)
	return p
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	assert.Error(t, err)

	_, err = New(&dataset.Dataset{}, Options{MaxDays: 0})
	assert.Error(t, err)

	_, err = New(&dataset.Dataset{}, Options{MaxDays: 5, DailyExpense: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeDays(t *testing.T) {
	strict := newTestPlanner(t, DefaultOptions())
	_, err := strict.NormalizeDays(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = strict.NormalizeDays(11)
	assert.ErrorIs(t, err, ErrInvalidInput)

	opts := DefaultOptions()
	opts.ClampDays = true
	clamped := newTestPlanner(t, opts)
	n, err := clamped.NormalizeDays(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = clamped.NormalizeDays(40)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestSessionHotelRequiresDestination(t *testing.T) {
	p := newTestPlanner(t, DefaultOptions())
	s := NewSession(time.Now())

	_, err := p.SessionHotel(s, HotelQuery{MaxPrice: 5000, MinRating: 1})
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = p.SessionPriceAlternatives(s)
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = p.SessionItinerary(s, "", OnePerDay)
	assert.ErrorIs(t, err, ErrNoDestination)

	_, err = p.SessionBudget(s, nil)
	assert.ErrorIs(t, err, ErrNoFlight)
}

func TestSessionFlow(t *testing.T) {
	p := newTestPlanner(t, DefaultOptions())
	s := NewSession(time.Date(2025, 12, 20, 15, 0, 0, 0, time.UTC))

	// No direct route: session stays empty, fallback offers Goa's reachable cities.
	res, err := p.SessionFlight(s, FlightQuery{Source: "Goa", Destination: "Delhi"})
	require.NoError(t, err)
	assert.False(t, res.IsFound())
	assert.Nil(t, s.Flight)
	assert.Empty(t, s.Destination)

	_, err = p.SessionDestinationAlternatives(s)
	assert.ErrorIs(t, err, ErrNoAlternatives)

	res, err = p.SessionFlight(s, FlightQuery{Source: "Hyderabad", Destination: "Mumbai"})
	require.NoError(t, err)
	assert.False(t, res.IsFound())

	alts, err := p.SessionDestinationAlternatives(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Goa"}, alts)

	res, err = p.SessionFlight(s, FlightQuery{Source: "Hyderabad", Destination: alts[0], Preference: Cheapest})
	require.NoError(t, err)
	require.True(t, res.IsFound())
	assert.Equal(t, "Delhi", s.Destination)
	assert.Equal(t, 5400.0, s.Flight.Price)

	// Hotel miss keeps the session unchanged and offers prices.
	hres, err := p.SessionHotel(s, HotelQuery{MaxPrice: 1000, MinRating: 1})
	require.NoError(t, err)
	assert.False(t, hres.IsFound())
	assert.Nil(t, s.Hotel)

	prices, err := p.SessionPriceAlternatives(s)
	require.NoError(t, err)
	assert.Equal(t, []int{1200, 3000, 4783, 6900, 7800}, prices)

	hres, err = p.SessionHotel(s, HotelQuery{MaxPrice: float64(prices[1]), MinRating: 3})
	require.NoError(t, err)
	require.True(t, hres.IsFound())
	assert.Equal(t, "Bloomrooms", s.Hotel.Name)

	require.NoError(t, p.SetDays(s, 2, time.Time{}))
	it, err := p.SessionItinerary(s, "", OnePerDay)
	require.NoError(t, err)
	assert.Equal(t, "Qutub Minar", it[0].Places[0].Name)
	assert.Equal(t, "Red Fort", it[1].Places[0].Name)

	b, err := p.SessionBudget(s, nil)
	require.NoError(t, err)
	assert.Equal(t, BudgetBreakdown{FlightCost: 5400, HotelCost: 3000, LocalExpenses: 3000, TotalCost: 11400}, b)

	override := 500.0
	b, err = p.SessionBudget(s, &override)
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.HotelCost)

	// Switching destination drops the hotel chosen for the old one.
	_, err = p.SessionFlight(s, FlightQuery{Source: "Hyderabad", Destination: "Goa"})
	require.NoError(t, err)
	assert.Equal(t, "Goa", s.Destination)
	assert.Nil(t, s.Hotel)
}

func TestSetDaysUpdatesWindow(t *testing.T) {
	p := newTestPlanner(t, DefaultOptions())
	s := NewSession(time.Date(2025, 12, 20, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, DefaultDays, s.Days)

	require.NoError(t, p.SetDays(s, 4, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), s.StartDate)
	assert.Equal(t, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), s.EndDate())

	assert.ErrorIs(t, p.SetDays(s, 0, time.Time{}), ErrInvalidInput)
	assert.Equal(t, 4, s.Days)
}

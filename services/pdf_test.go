package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/dataset"
	"tripplanner/planner"
)

func fullSummary() TripSummary {
	start := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	return TripSummary{
		SessionID:   "5b6f0e0c-2b7e-4a8e-9b1f-8d8f3c1e2a44",
		Destination: "Goa",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		Days:        3,
		Flight: &planner.FlightSelection{
			FlightChoice: planner.FlightChoice{
				Airline:         "IndiGo",
				Price:           3900,
				DurationMinutes: 75,
				DepartureTime:   "2025-12-20T09:15:00",
			},
			Source:      "Hyderabad",
			Destination: "Goa",
		},
		Hotel: &planner.HotelChoice{Name: "Panjim Inn", Price: 2500, Rating: 3, Amenities: []string{"wifi", "breakfast"}},
		Itinerary: planner.ItineraryMap{
			{Label: "Day 1", Places: []planner.PlaceView{{Name: "Baga Beach", Category: "beach", Rating: 4.5}}},
			{Label: "Day 2", Places: []planner.PlaceView{}},
		},
		Budget:  &planner.BudgetBreakdown{FlightCost: 3900, HotelCost: 5000, LocalExpenses: 4500, TotalCost: 13400},
		Weather: []WeatherDay{{Date: "2025-12-20", Condition: "Clear sky", TempRange: "21.0–31.5 °C"}},
	}
}

func TestGeneratePDFBytes(t *testing.T) {
	out, err := GeneratePDFBytes(fullSummary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGeneratePDFBytesEmptyTrip(t *testing.T) {
	out, err := GeneratePDFBytes(TripSummary{Days: 3})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRecommendation(t *testing.T) {
	got := Recommendation(fullSummary())
	assert.Equal(t,
		"Flying IndiGo from Hyderabad to Goa at $3900. "+
			"Staying at Panjim Inn (3-star) at $2500/night for 2 night(s). "+
			"Must-see: Baga Beach. Estimated total: $13400 for 3 day(s).",
		got)

	assert.Contains(t, Recommendation(TripSummary{}), "No flight selected")

	s := fullSummary()
	s.Hotel = nil
	assert.Contains(t, Recommendation(s), "No hotel selected yet.")
}

func TestFormatDurationMin(t *testing.T) {
	assert.Equal(t, "2h 05m", formatDurationMin(125))
	assert.Equal(t, "0h 45m", formatDurationMin(45))
}

func TestFormatDeparture(t *testing.T) {
	dep := time.Date(2025, 12, 20, 13, 0, 0, 0, time.UTC).Format(dataset.TimeLayout)
	assert.Equal(t, "20 Dec 13:00", formatDeparture(dep))
	assert.Equal(t, "N/A", formatDeparture(""))
	assert.Equal(t, "soon", formatDeparture("soon"))
}

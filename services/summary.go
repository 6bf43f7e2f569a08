package services

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/planner"
)

// TripSummary is everything known about a planned trip, ready for export.
type TripSummary struct {
	SessionID   string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Flight      *planner.FlightSelection
	Hotel       *planner.HotelChoice
	Itinerary   planner.ItineraryMap
	Budget      *planner.BudgetBreakdown
	Weather     []WeatherDay
}

// Recommendation renders a short plain-text overview of the trip.
func Recommendation(s TripSummary) string {
	if s.Flight == nil {
		return "No flight selected yet. Search a flight to start planning."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Flying %s from %s to %s at $%.0f.",
		s.Flight.Airline, s.Flight.Source, s.Flight.Destination, s.Flight.Price)

	nights := max(s.Days-1, 0)
	if s.Hotel != nil {
		fmt.Fprintf(&b, " Staying at %s (%d-star) at $%.0f/night for %d night(s).",
			s.Hotel.Name, s.Hotel.Rating, s.Hotel.Price, nights)
	} else {
		b.WriteString(" No hotel selected yet.")
	}

	if places := s.Itinerary.Places(); len(places) > 0 {
		names := make([]string, 0, len(places))
		for _, p := range places {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, " Must-see: %s.", strings.Join(names, ", "))
	}

	if s.Budget != nil {
		fmt.Fprintf(&b, " Estimated total: $%.0f for %d day(s).", s.Budget.TotalCost, s.Days)
	}

	return b.String()
}

package planner

import (
	"fmt"
	"log/slog"
	"strings"

	"tripplanner/dataset"
)

type FlightQuery struct {
	Source      string
	Destination string
	Preference  Preference
}

// FlightChoice is the public projection of the selected flight.
type FlightChoice struct {
	Airline         string  `json:"airline"`
	Price           float64 `json:"price"`
	DurationMinutes float64 `json:"duration_minutes"`
	DepartureTime   string  `json:"departure_time"`
}

type FlightResult = SelectionResult[FlightChoice]

// SearchFlights picks the best flight on the source→destination route.
func SearchFlights(flights []dataset.FlightRecord, q FlightQuery) (FlightResult, error) {
	src := strings.TrimSpace(q.Source)
	dst := strings.TrimSpace(q.Destination)
	if src == "" {
		return FlightResult{}, invalid("source", "must be non-empty")
	}
	if dst == "" {
		return FlightResult{}, invalid("destination", "must be non-empty")
	}

	better, err := flightOrdering(q.Preference)
	if err != nil {
		return FlightResult{}, err
	}

	match := func(f dataset.FlightRecord) bool {
		return sameKey(f.From, src) && sameKey(f.To, dst) && validFlight(f)
	}

	best, ok := Select(flights, match, better)
	if !ok {
		return notFound[FlightChoice](fmt.Sprintf("No flights found from %s to %s.", src, dst)), nil
	}

	choice := FlightChoice{
		Airline:         best.Airline,
		Price:           best.Price,
		DurationMinutes: best.DurationMinutes(),
		DepartureTime:   best.DepartureTime.Format(dataset.TimeLayout),
	}
	msg := fmt.Sprintf("Best flight from %s to %s: %s at $%s.", src, dst, best.Airline, formatAmount(best.Price))

	return found(choice, msg), nil
}

func flightOrdering(p Preference) (func(a, b dataset.FlightRecord) bool, error) {
	switch p {
	case "", Cheapest:
		return func(a, b dataset.FlightRecord) bool { return a.Price < b.Price }, nil
	case Fastest:
		return func(a, b dataset.FlightRecord) bool { return a.DurationMinutes() < b.DurationMinutes() }, nil
	default:
		return nil, invalid("preference", "flights support %q or %q, got %q", Cheapest, Fastest, p)
	}
}

// validFlight rejects records whose arrival precedes departure. Selection and
// the destination fallback share it.
func validFlight(f dataset.FlightRecord) bool {
	if f.DurationMinutes() >= 0 {
		return true
	}
	slog.Warn("skipping flight with arrival before departure",
		slog.String("airline", f.Airline),
		slog.String("from", f.From),
		slog.String("to", f.To),
		slog.Time("departure", f.DepartureTime),
		slog.Time("arrival", f.ArrivalTime),
	)
	return false
}

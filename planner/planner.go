package planner

import (
	"errors"
	"fmt"
	"time"

	"tripplanner/dataset"
)

// Options are the product knobs of the planner.
type Options struct {
	DailyExpense float64
	MaxDays      int
	// ClampDays clamps an out-of-range day count into [1, MaxDays] instead of
	// rejecting it.
	ClampDays bool
	// HotelFallbackHonorsRating keeps the requested minimum rating when
	// offering alternative hotel prices. Off by default: any price in the city
	// is offered.
	HotelFallbackHonorsRating bool
}

func DefaultOptions() Options {
	return Options{
		DailyExpense: DefaultDailyExpense,
		MaxDays:      10,
	}
}

// Planner binds a dataset to the selection, fallback, itinerary and budget
// stages. Every method is synchronous and leaves the dataset untouched.
type Planner struct {
	data *dataset.Dataset
	opts Options
}

func New(data *dataset.Dataset, opts Options) (*Planner, error) {
	if data == nil {
		return nil, errors.New("new planner: dataset must be non-nil")
	}
	if opts.MaxDays < 1 {
		return nil, fmt.Errorf("new planner: max days must be at least 1, got %d", opts.MaxDays)
	}
	if err := nonNegative("daily_expense", opts.DailyExpense); err != nil {
		return nil, fmt.Errorf("new planner: %w", err)
	}
	return &Planner{data: data, opts: opts}, nil
}

func (p *Planner) Dataset() *dataset.Dataset { return p.data }
func (p *Planner) Options() Options          { return p.opts }

// NormalizeDays validates a requested day count against the configured range.
func (p *Planner) NormalizeDays(days int) (int, error) {
	if days >= 1 && days <= p.opts.MaxDays {
		return days, nil
	}
	if !p.opts.ClampDays {
		return 0, invalid("days", "must be between 1 and %d, got %d", p.opts.MaxDays, days)
	}
	if days < 1 {
		return 1, nil
	}
	return p.opts.MaxDays, nil
}

// ─── Stateless entry points ───────────────────────────────────────────────────

func (p *Planner) SearchFlight(q FlightQuery) (FlightResult, error) {
	return SearchFlights(p.data.Flights, q)
}

func (p *Planner) DestinationAlternatives(source string) ([]string, error) {
	return DestinationAlternatives(p.data.Flights, source)
}

func (p *Planner) SearchHotel(q HotelQuery) (HotelResult, error) {
	return SearchHotels(p.data.Hotels, q)
}

func (p *Planner) PriceAlternatives(city string, minRating int) ([]int, error) {
	return PriceAlternatives(p.data.Hotels, city, minRating, p.opts.HotelFallbackHonorsRating)
}

func (p *Planner) Itinerary(q ItineraryQuery) (ItineraryMap, error) {
	days, err := p.NormalizeDays(q.Days)
	if err != nil {
		return nil, err
	}
	q.Days = days
	return BuildItinerary(p.data.Places, q)
}

func (p *Planner) Budget(flightPrice, hotelPricePerNight float64, days int) (BudgetBreakdown, error) {
	return CalculateBudget(flightPrice, hotelPricePerNight, days, p.opts.DailyExpense)
}

// ─── Session-bound entry points ───────────────────────────────────────────────

// SessionFlight runs a flight search and applies a Found outcome to s.
func (p *Planner) SessionFlight(s *Session, q FlightQuery) (FlightResult, error) {
	res, err := p.SearchFlight(q)
	if err != nil {
		return FlightResult{}, err
	}
	s.ApplyFlight(q, res)
	return res, nil
}

// SessionDestinationAlternatives offers destinations reachable from the
// source of the last flight search.
func (p *Planner) SessionDestinationAlternatives(s *Session) ([]string, error) {
	if s.LastFlightQuery == nil {
		return nil, invalid("source", "no flight search has been made in this session")
	}
	return p.DestinationAlternatives(s.LastFlightQuery.Source)
}

// SessionHotel searches hotels in the session destination. The query city is
// overwritten by the destination.
func (p *Planner) SessionHotel(s *Session, q HotelQuery) (HotelResult, error) {
	dest, err := s.RequireDestination()
	if err != nil {
		return HotelResult{}, err
	}
	q.City = dest

	res, err := p.SearchHotel(q)
	if err != nil {
		return HotelResult{}, err
	}
	s.ApplyHotel(q, res)
	return res, nil
}

// SessionPriceAlternatives offers nightly prices in the session destination.
func (p *Planner) SessionPriceAlternatives(s *Session) ([]int, error) {
	dest, err := s.RequireDestination()
	if err != nil {
		return nil, err
	}
	minRating := 0
	if s.LastHotelQuery != nil {
		minRating = s.LastHotelQuery.MinRating
	}
	return p.PriceAlternatives(dest, minRating)
}

// SetDays updates the session day count and, when non-zero, the start date.
func (p *Planner) SetDays(s *Session, days int, start time.Time) error {
	n, err := p.NormalizeDays(days)
	if err != nil {
		return err
	}
	s.Days = n
	if !start.IsZero() {
		y, m, d := start.Date()
		s.StartDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return nil
}

func (p *Planner) SessionItinerary(s *Session, category string, mode ItineraryMode) (ItineraryMap, error) {
	dest, err := s.RequireDestination()
	if err != nil {
		return nil, err
	}
	return p.Itinerary(ItineraryQuery{City: dest, Category: category, Days: s.Days, Mode: mode})
}

// SessionBudget prices the trip from the chosen flight. hotelPricePerNight
// overrides the chosen hotel's rate when non-nil.
func (p *Planner) SessionBudget(s *Session, hotelPricePerNight *float64) (BudgetBreakdown, error) {
	if s.Flight == nil {
		return BudgetBreakdown{}, ErrNoFlight
	}

	var nightly float64
	switch {
	case hotelPricePerNight != nil:
		nightly = *hotelPricePerNight
	case s.Hotel != nil:
		nightly = s.Hotel.Price
	default:
		return BudgetBreakdown{}, invalid("hotel_price_per_night", "required when no hotel has been selected")
	}

	return p.Budget(s.Flight.Price, nightly, s.Days)
}

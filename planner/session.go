package planner

import (
	"strings"
	"time"
)

// DefaultDays is the day count a fresh session starts with.
const DefaultDays = 3

// FlightSelection is a chosen flight together with the route it was found on.
type FlightSelection struct {
	FlightChoice
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Session is the state of one in-progress planning flow. Flight, Hotel and
// Destination change only when a selection comes back Found.
type Session struct {
	Flight      *FlightSelection `json:"flight,omitempty"`
	Hotel       *HotelChoice     `json:"hotel,omitempty"`
	Destination string           `json:"destination,omitempty"`
	Days        int              `json:"days"`
	StartDate   time.Time        `json:"start_date"`

	// LastFlightQuery is the most recent flight search, found or not. The
	// destination fallback is anchored on its source.
	LastFlightQuery *FlightQuery `json:"-"`
	// LastHotelQuery is the most recent hotel search, found or not.
	LastHotelQuery *HotelQuery `json:"-"`
}

func NewSession(now time.Time) *Session {
	y, m, d := now.Date()
	return &Session{
		Days:      DefaultDays,
		StartDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// ApplyFlight records the outcome of a flight search. It returns true when the
// session changed. A new destination invalidates the chosen hotel.
func (s *Session) ApplyFlight(q FlightQuery, r FlightResult) bool {
	qc := q
	s.LastFlightQuery = &qc

	choice, ok := r.Get()
	if !ok {
		return false
	}

	dest := strings.TrimSpace(q.Destination)
	if !sameKey(dest, s.Destination) {
		s.Hotel = nil
	}
	s.Flight = &FlightSelection{
		FlightChoice: choice,
		Source:       strings.TrimSpace(q.Source),
		Destination:  dest,
	}
	s.Destination = dest
	return true
}

// ApplyHotel records the outcome of a hotel search.
func (s *Session) ApplyHotel(q HotelQuery, r HotelResult) bool {
	qc := q
	s.LastHotelQuery = &qc

	choice, ok := r.Get()
	if !ok {
		return false
	}
	s.Hotel = &choice
	return true
}

// RequireDestination guards every stage downstream of flight selection.
func (s *Session) RequireDestination() (string, error) {
	if strings.TrimSpace(s.Destination) == "" {
		return "", ErrNoDestination
	}
	return s.Destination, nil
}

// Clone returns a deep copy that shares no pointers or slices with s.
func (s *Session) Clone() Session {
	c := *s
	if s.Flight != nil {
		f := *s.Flight
		c.Flight = &f
	}
	if s.Hotel != nil {
		h := *s.Hotel
		if s.Hotel.Amenities != nil {
			h.Amenities = append([]string{}, s.Hotel.Amenities...)
		}
		c.Hotel = &h
	}
	if s.LastFlightQuery != nil {
		q := *s.LastFlightQuery
		c.LastFlightQuery = &q
	}
	if s.LastHotelQuery != nil {
		q := *s.LastHotelQuery
		c.LastHotelQuery = &q
	}
	return c
}

// EndDate is the last calendar day of the trip.
func (s *Session) EndDate() time.Time {
	return s.StartDate.AddDate(0, 0, s.Days-1)
}

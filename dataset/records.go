package dataset

import (
	"sort"
	"time"
)

// TimeLayout is the wire format used for flight timestamps in the reference data.
const TimeLayout = "2006-01-02T15:04:05"

// ─── Records ──────────────────────────────────────────────────────────────────

// FlightRecord is a single scheduled flight. Duration is derived, never stored.
type FlightRecord struct {
	Airline       string
	From          string
	To            string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64
}

// DurationMinutes returns arrival minus departure in minutes. A negative value
// means the record is inconsistent.
func (f FlightRecord) DurationMinutes() float64 {
	return f.ArrivalTime.Sub(f.DepartureTime).Minutes()
}

type HotelRecord struct {
	Name          string
	City          string
	Stars         int
	PricePerNight float64
	Amenities     []string
}

type PlaceRecord struct {
	Name   string
	City   string
	Type   string
	Rating float64
}

// ─── Dataset ──────────────────────────────────────────────────────────────────

// Dataset holds the reference collections for one planning session.
// Slices are shared with callers and must be treated as read-only.
type Dataset struct {
	Flights []FlightRecord
	Hotels  []HotelRecord
	Places  []PlaceRecord
}

// Sources returns the sorted distinct origin cities.
func (d *Dataset) Sources() []string {
	vals := make([]string, 0, len(d.Flights))
	for _, f := range d.Flights {
		vals = append(vals, f.From)
	}
	return sortedDistinct(vals)
}

// Destinations returns the sorted distinct destination cities.
func (d *Dataset) Destinations() []string {
	vals := make([]string, 0, len(d.Flights))
	for _, f := range d.Flights {
		vals = append(vals, f.To)
	}
	return sortedDistinct(vals)
}

// Cities returns every city a trip can end up in: flight destinations plus
// any city that has hotels or places.
func (d *Dataset) Cities() []string {
	vals := make([]string, 0, len(d.Flights)+len(d.Hotels)+len(d.Places))
	for _, f := range d.Flights {
		vals = append(vals, f.To)
	}
	for _, h := range d.Hotels {
		vals = append(vals, h.City)
	}
	for _, p := range d.Places {
		vals = append(vals, p.City)
	}
	return sortedDistinct(vals)
}

func sortedDistinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

package planner

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"tripplanner/dataset"
)

// ItineraryMode controls how ranked places are spread across days.
type ItineraryMode string

const (
	// OnePerDay gives Day i the i-th ranked place. Days past the last place stay empty.
	OnePerDay ItineraryMode = "one_per_day"
	// RoundRobin puts place idx on Day (idx mod days)+1. After truncation to the
	// day count it yields the same assignment as OnePerDay.
	RoundRobin ItineraryMode = "round_robin"
)

type ItineraryQuery struct {
	City     string
	Category string
	Days     int
	Mode     ItineraryMode
}

type PlaceView struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

type ItineraryDay struct {
	Label  string      `json:"day"`
	Places []PlaceView `json:"places"`
}

// ItineraryMap is ordered Day 1..Day N.
type ItineraryMap []ItineraryDay

// Places flattens the map in day order.
func (m ItineraryMap) Places() []PlaceView {
	out := make([]PlaceView, 0, len(m))
	for _, d := range m {
		out = append(out, d.Places...)
	}
	return out
}

// RankPlaces returns the places in city (and category, when non-empty) ordered
// by rating descending. Equal ratings keep dataset order.
func RankPlaces(places []dataset.PlaceRecord, city, category string) []dataset.PlaceRecord {
	out := make([]dataset.PlaceRecord, 0)
	for _, p := range places {
		if !sameKey(p.City, city) {
			continue
		}
		if strings.TrimSpace(category) != "" && !sameKey(p.Type, category) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b dataset.PlaceRecord) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return out
}

// BuildItinerary ranks the matching places, keeps at most q.Days of them and
// assigns them to days. Extra places beyond the day count are dropped.
func BuildItinerary(places []dataset.PlaceRecord, q ItineraryQuery) (ItineraryMap, error) {
	city := strings.TrimSpace(q.City)
	if city == "" {
		return nil, invalid("city", "must be non-empty")
	}
	if q.Days < 1 {
		return nil, invalid("days", "must be at least 1, got %d", q.Days)
	}

	mode := q.Mode
	if mode == "" {
		mode = OnePerDay
	}
	if mode != OnePerDay && mode != RoundRobin {
		return nil, invalid("mode", "must be %q or %q, got %q", OnePerDay, RoundRobin, q.Mode)
	}

	ranked := RankPlaces(places, city, q.Category)
	if len(ranked) > q.Days {
		ranked = ranked[:q.Days]
	}

	itinerary := make(ItineraryMap, q.Days)
	for i := range itinerary {
		itinerary[i] = ItineraryDay{Label: fmt.Sprintf("Day %d", i+1), Places: []PlaceView{}}
	}

	for idx, p := range ranked {
		day := idx
		if mode == RoundRobin {
			day = idx % q.Days
		}
		itinerary[day].Places = append(itinerary[day].Places, PlaceView{
			Name:     p.Name,
			Category: p.Type,
			Rating:   p.Rating,
		})
	}

	return itinerary, nil
}

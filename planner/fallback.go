package planner

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"tripplanner/dataset"
)

// Alternatives collects the sorted distinct field values of every record
// accepted by anchor. It never re-runs a selection; the caller re-queries with
// one of the returned values.
//
// An empty candidate set is reported as ErrNoAlternatives, not as an empty slice.
func Alternatives[T any, K cmp.Ordered](records []T, anchor func(T) bool, field func(T) K) ([]K, error) {
	seen := make(map[K]struct{})
	out := make([]K, 0)
	for _, r := range records {
		if !anchor(r) {
			continue
		}
		k := field(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	if len(out) == 0 {
		return nil, ErrNoAlternatives
	}

	slices.Sort(out)
	return out, nil
}

// DestinationAlternatives lists every destination reachable from source.
func DestinationAlternatives(flights []dataset.FlightRecord, source string) ([]string, error) {
	src := strings.TrimSpace(source)
	if src == "" {
		return nil, invalid("source", "must be non-empty")
	}

	dests, err := Alternatives(flights,
		func(f dataset.FlightRecord) bool { return sameKey(f.From, src) && validFlight(f) },
		func(f dataset.FlightRecord) string { return f.To },
	)
	if err != nil {
		return nil, fmt.Errorf("destination alternatives from %q: %w", src, err)
	}
	return dests, nil
}

// PriceAlternatives lists the distinct whole nightly prices of hotels in city.
// The caller's price ceiling is ignored. minRating only narrows the set when
// honorRating is true.
func PriceAlternatives(hotels []dataset.HotelRecord, city string, minRating int, honorRating bool) ([]int, error) {
	c := strings.TrimSpace(city)
	if c == "" {
		return nil, invalid("city", "must be non-empty")
	}

	prices, err := Alternatives(hotels,
		func(h dataset.HotelRecord) bool {
			if !sameKey(h.City, c) {
				return false
			}
			return !honorRating || h.Stars >= minRating
		},
		func(h dataset.HotelRecord) int { return int(h.PricePerNight) },
	)
	if err != nil {
		return nil, fmt.Errorf("price alternatives in %q: %w", c, err)
	}
	return prices, nil
}

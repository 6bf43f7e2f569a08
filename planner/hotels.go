package planner

import (
	"fmt"
	"math"
	"strings"

	"tripplanner/dataset"
)

type HotelQuery struct {
	City       string
	MaxPrice   float64
	MinRating  int
	Preference Preference
}

// HotelChoice is the public projection of the selected hotel.
type HotelChoice struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Rating    int      `json:"rating"`
	Amenities []string `json:"amenities"`
}

type HotelResult = SelectionResult[HotelChoice]

// SearchHotels picks the best hotel in a city within a nightly price ceiling
// and at or above a star rating.
func SearchHotels(hotels []dataset.HotelRecord, q HotelQuery) (HotelResult, error) {
	city := strings.TrimSpace(q.City)
	if city == "" {
		return HotelResult{}, invalid("city", "must be non-empty")
	}
	if q.MaxPrice < 0 || math.IsNaN(q.MaxPrice) {
		return HotelResult{}, invalid("max_price", "must be non-negative, got %v", q.MaxPrice)
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return HotelResult{}, invalid("min_rating", "must be between 0 and 5, got %d", q.MinRating)
	}

	better, err := hotelOrdering(q.Preference)
	if err != nil {
		return HotelResult{}, err
	}

	match := func(h dataset.HotelRecord) bool {
		return sameKey(h.City, city) && h.Stars >= q.MinRating && h.PricePerNight <= q.MaxPrice
	}

	best, ok := Select(hotels, match, better)
	if !ok {
		return notFound[HotelChoice](fmt.Sprintf(
			"No hotels found in %s within price $%s and rating %d+.",
			city, formatAmount(q.MaxPrice), q.MinRating,
		)), nil
	}

	amenities := make([]string, len(best.Amenities))
	copy(amenities, best.Amenities)

	choice := HotelChoice{
		Name:      best.Name,
		Price:     best.PricePerNight,
		Rating:    best.Stars,
		Amenities: amenities,
	}
	msg := fmt.Sprintf("Best hotel in %s: %s at $%s per night.", city, best.Name, formatAmount(best.PricePerNight))

	return found(choice, msg), nil
}

func hotelOrdering(p Preference) (func(a, b dataset.HotelRecord) bool, error) {
	switch p {
	case "", Cheapest:
		return func(a, b dataset.HotelRecord) bool { return a.PricePerNight < b.PricePerNight }, nil
	case HighestRating:
		return func(a, b dataset.HotelRecord) bool { return a.Stars > b.Stars }, nil
	default:
		return nil, invalid("preference", "hotels support %q or %q, got %q", Cheapest, HighestRating, p)
	}
}

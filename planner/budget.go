package planner

import "math"

// DefaultDailyExpense covers food, local transport and sundries per day.
const DefaultDailyExpense = 1500

type BudgetBreakdown struct {
	FlightCost    float64 `json:"flight_cost"`
	HotelCost     float64 `json:"hotel_cost"`
	LocalExpenses float64 `json:"local_expenses"`
	TotalCost     float64 `json:"total_cost"`
}

// CalculateBudget estimates the trip cost. The last day is the departure day,
// so a trip of n days is charged n-1 hotel nights.
func CalculateBudget(flightPrice, hotelPricePerNight float64, days int, dailyExpense float64) (BudgetBreakdown, error) {
	if err := nonNegative("flight_price", flightPrice); err != nil {
		return BudgetBreakdown{}, err
	}
	if err := nonNegative("hotel_price_per_night", hotelPricePerNight); err != nil {
		return BudgetBreakdown{}, err
	}
	if err := nonNegative("daily_expense", dailyExpense); err != nil {
		return BudgetBreakdown{}, err
	}
	if days < 1 {
		return BudgetBreakdown{}, invalid("number_of_days", "must be at least 1, got %d", days)
	}

	nights := days - 1
	hotelCost := hotelPricePerNight * float64(nights)
	local := dailyExpense * float64(days)

	return BudgetBreakdown{
		FlightCost:    flightPrice,
		HotelCost:     hotelCost,
		LocalExpenses: local,
		TotalCost:     flightPrice + hotelCost + local,
	}, nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return invalid(field, "must be a non-negative number, got %v", v)
	}
	return nil
}

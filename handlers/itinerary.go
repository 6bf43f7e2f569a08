package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
)

type itineraryQuery struct {
	City     string `form:"city" binding:"required"`
	Days     int    `form:"days"`
	Category string `form:"category"`
	Mode     string `form:"mode"`
}

type BudgetRequest struct {
	FlightPrice        *float64 `json:"flight_price" binding:"required"`
	HotelPricePerNight *float64 `json:"hotel_price_per_night" binding:"required"`
	NumberOfDays       int      `json:"number_of_days"`
}

func (h *Handler) Itinerary(c *gin.Context) {
	q := itineraryQuery{Days: planner.DefaultDays}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.planner.Itinerary(planner.ItineraryQuery{
		City:     q.City,
		Category: q.Category,
		Days:     q.Days,
		Mode:     planner.ItineraryMode(q.Mode),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":      q.City,
		"days":      len(it),
		"itinerary": it,
		"empty":     len(it.Places()) == 0,
	})
}

func (h *Handler) Budget(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.planner.Budget(*req.FlightPrice, *req.HotelPricePerNight, req.NumberOfDays)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

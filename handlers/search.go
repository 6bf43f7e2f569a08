package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
)

type FlightSearchRequest struct {
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Preference  string `json:"preference"`
}

type HotelSearchRequest struct {
	City       string   `json:"city"`
	MaxPrice   *float64 `json:"max_price" binding:"required"`
	MinRating  int      `json:"min_rating"`
	Preference string   `json:"preference"`
}

func (r HotelSearchRequest) query() planner.HotelQuery {
	return planner.HotelQuery{
		City:       r.City,
		MaxPrice:   *r.MaxPrice,
		MinRating:  r.MinRating,
		Preference: planner.Preference(r.Preference),
	}
}

type hotelAlternativesQuery struct {
	City      string `form:"city" binding:"required"`
	MinRating int    `form:"min_rating"`
}

func (h *Handler) Cities(c *gin.Context) {
	ds := h.planner.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"sources":      ds.Sources(),
		"destinations": ds.Destinations(),
		"cities":       ds.Cities(),
	})
}

func (h *Handler) SearchFlights(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.planner.SearchFlight(planner.FlightQuery{
		Source:      req.Source,
		Destination: req.Destination,
		Preference:  planner.Preference(req.Preference),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) FlightAlternatives(c *gin.Context) {
	source := c.Query("source")
	dests, err := h.planner.DestinationAlternatives(source)
	h.alternatives(c, "destinations", dests, err)
}

func (h *Handler) SearchHotels(c *gin.Context) {
	var req HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.planner.SearchHotel(req.query())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) HotelAlternatives(c *gin.Context) {
	var q hotelAlternativesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	prices, err := h.planner.PriceAlternatives(q.City, q.MinRating)
	h.alternatives(c, "prices", prices, err)
}

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
	"tripplanner/services"
)

type DaysRequest struct {
	Days      int    `json:"days" binding:"required"`
	StartDate string `json:"start_date"`
}

type SessionHotelRequest struct {
	MaxPrice   *float64 `json:"max_price" binding:"required"`
	MinRating  int      `json:"min_rating"`
	Preference string   `json:"preference"`
}

type SessionBudgetRequest struct {
	HotelPricePerNight *float64 `json:"hotel_price_per_night"`
}

type sessionItineraryQuery struct {
	Category string `form:"category"`
	Mode     string `form:"mode"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	id, trip := h.sessions.Create()
	h.log.InfoContext(c.Request.Context(), "session created", slog.String("session_id", id))
	c.JSON(http.StatusCreated, newSessionView(id, trip))
}

func (h *Handler) GetSession(c *gin.Context) {
	id := c.Param("id")
	trip, err := h.sessions.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(id, trip))
}

func (h *Handler) SetDays(c *gin.Context) {
	var req DaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	id := c.Param("id")
	trip, err := h.sessions.Update(id, func(s *planner.Session) error {
		return h.planner.SetDays(s, req.Days, start)
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionView(id, trip))
}

func (h *Handler) SessionFlight(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	var res planner.FlightResult
	trip, err := h.sessions.Update(id, func(s *planner.Session) error {
		var err error
		res, err = h.planner.SessionFlight(s, planner.FlightQuery{
			Source:      req.Source,
			Destination: req.Destination,
			Preference:  planner.Preference(req.Preference),
		})
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  res.Status,
		"result":  res.Result,
		"message": res.Message,
		"session": newSessionView(id, trip),
	})
}

func (h *Handler) SessionFlightAlternatives(c *gin.Context) {
	trip, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	dests, err := h.planner.SessionDestinationAlternatives(&trip)
	h.alternatives(c, "destinations", dests, err)
}

func (h *Handler) SessionHotel(c *gin.Context) {
	var req SessionHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id := c.Param("id")
	var res planner.HotelResult
	trip, err := h.sessions.Update(id, func(s *planner.Session) error {
		var err error
		res, err = h.planner.SessionHotel(s, planner.HotelQuery{
			MaxPrice:   *req.MaxPrice,
			MinRating:  req.MinRating,
			Preference: planner.Preference(req.Preference),
		})
		return err
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  res.Status,
		"result":  res.Result,
		"message": res.Message,
		"session": newSessionView(id, trip),
	})
}

func (h *Handler) SessionHotelAlternatives(c *gin.Context) {
	trip, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	prices, err := h.planner.SessionPriceAlternatives(&trip)
	h.alternatives(c, "prices", prices, err)
}

func (h *Handler) SessionItinerary(c *gin.Context) {
	var q sessionItineraryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	trip, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	it, err := h.planner.SessionItinerary(&trip, q.Category, planner.ItineraryMode(q.Mode))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":      trip.Destination,
		"days":      len(it),
		"itinerary": it,
		"empty":     len(it.Places()) == 0,
	})
}

func (h *Handler) SessionWeather(c *gin.Context) {
	id := c.Param("id")
	trip, err := h.sessions.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	dest, err := trip.RequireDestination()
	if err != nil {
		h.respondError(c, err)
		return
	}

	start, end := trip.StartDate, trip.EndDate()
	days, err := h.forecast(c.Request.Context(), dest, start, end)
	if err != nil {
		msg := "Weather is unavailable right now."
		if errors.Is(err, services.ErrCityNotFound) {
			msg = "City not found"
		}
		c.JSON(http.StatusOK, gin.H{"city": dest, "weather": nil, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"city":       dest,
		"start_date": start.Format(dateLayout),
		"end_date":   end.Format(dateLayout),
		"weather":    days,
	})
}

// forecast degrades to ErrWeatherUnavailable when no provider is configured.
func (h *Handler) forecast(ctx context.Context, city string, start, end time.Time) ([]services.WeatherDay, error) {
	if h.weather == nil {
		return nil, services.ErrWeatherUnavailable
	}
	days, err := h.weather.Forecast(ctx, city, start, end)
	if err != nil {
		h.log.WarnContext(ctx, "weather lookup failed", slog.String("city", city), slog.Any("error", err))
		return nil, err
	}
	return days, nil
}

func (h *Handler) SessionBudget(c *gin.Context) {
	var req SessionBudgetRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err)
			return
		}
	}

	trip, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	b, err := h.planner.SessionBudget(&trip, req.HotelPricePerNight)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

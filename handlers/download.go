package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/services"
)

// DownloadSummary renders the session as a PDF trip summary. Weather is
// included when it can be fetched quickly; its absence never fails the export.
func (h *Handler) DownloadSummary(c *gin.Context) {
	id := c.Param("id")
	trip, err := h.sessions.Get(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summary := services.TripSummary{
		SessionID:   id,
		Destination: trip.Destination,
		StartDate:   trip.StartDate,
		EndDate:     trip.EndDate(),
		Days:        trip.Days,
		Flight:      trip.Flight,
		Hotel:       trip.Hotel,
	}

	if _, err := trip.RequireDestination(); err == nil {
		if it, err := h.planner.SessionItinerary(&trip, "", ""); err == nil {
			summary.Itinerary = it
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		if days, err := h.forecast(ctx, trip.Destination, summary.StartDate, summary.EndDate); err == nil {
			summary.Weather = days
		}
		cancel()
	}

	if trip.Flight != nil && trip.Hotel != nil {
		if b, err := h.planner.SessionBudget(&trip, nil); err == nil {
			summary.Budget = &b
		}
	}

	pdfBytes, err := services.GeneratePDFBytes(summary)
	if err != nil {
		h.respondError(c, fmt.Errorf("generate summary pdf: %w", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=trip-summary.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) Health(c *gin.Context) {
	ds := h.planner.Dataset()
	h.log.DebugContext(c.Request.Context(), "health check", slog.Int("sessions", h.sessions.Len()))

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "Trip Planner API",
		"dataset": gin.H{
			"source":  h.source,
			"flights": len(ds.Flights),
			"hotels":  len(ds.Hotels),
			"places":  len(ds.Places),
		},
		"sessions": h.sessions.Len(),
	})
}

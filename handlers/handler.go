package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/planner"
	"tripplanner/services"
	"tripplanner/session"
)

const dateLayout = "2006-01-02"

// Handler serves the planner over HTTP.
type Handler struct {
	planner  *planner.Planner
	sessions *session.Store
	weather  services.WeatherProvider
	log      *slog.Logger
	source   string
}

type Option func(*Handler)

// WithWeather enables the weather section. Without it the weather endpoint
// always reports the service as unavailable.
func WithWeather(w services.WeatherProvider) Option {
	return func(h *Handler) { h.weather = w }
}

// WithDatasetSource names where the reference data came from, for /health.
func WithDatasetSource(name string) Option {
	return func(h *Handler) { h.source = name }
}

func New(p *planner.Planner, sessions *session.Store, log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{planner: p, sessions: sessions, log: log, source: "embedded"}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Register mounts every route under r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/cities", h.Cities)

		api.POST("/flights/search", h.SearchFlights)
		api.GET("/flights/alternatives", h.FlightAlternatives)
		api.POST("/hotels/search", h.SearchHotels)
		api.GET("/hotels/alternatives", h.HotelAlternatives)
		api.GET("/places/itinerary", h.Itinerary)
		api.POST("/budget", h.Budget)

		s := api.Group("/sessions")
		s.POST("", h.CreateSession)
		s.GET("/:id", h.GetSession)
		s.PUT("/:id/days", h.SetDays)
		s.POST("/:id/flights", h.SessionFlight)
		s.GET("/:id/flights/alternatives", h.SessionFlightAlternatives)
		s.POST("/:id/hotels", h.SessionHotel)
		s.GET("/:id/hotels/alternatives", h.SessionHotelAlternatives)
		s.GET("/:id/itinerary", h.SessionItinerary)
		s.GET("/:id/weather", h.SessionWeather)
		s.POST("/:id/budget", h.SessionBudget)
		s.GET("/:id/summary.pdf", h.DownloadSummary)
	}
}

// respondError maps planner and store errors to HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var iie *planner.InvalidInputError
	switch {
	case errors.As(err, &iie):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": iie.Field})
	case errors.Is(err, planner.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
	case errors.Is(err, planner.ErrNoDestination):
		c.JSON(http.StatusConflict, gin.H{"error": "Choose a flight first: no destination selected yet"})
	case errors.Is(err, planner.ErrNoFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Choose a flight first: no flight selected yet"})
	default:
		_ = c.Error(err)
		h.log.ErrorContext(c.Request.Context(), "request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// alternatives renders a fallback list. An empty candidate set is a normal
// answer, flagged with no_alternatives.
func (h *Handler) alternatives(c *gin.Context, key string, vals any, err error) {
	if errors.Is(err, planner.ErrNoAlternatives) {
		c.JSON(http.StatusOK, gin.H{key: []any{}, "no_alternatives": true, "message": "No alternatives available."})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: vals, "no_alternatives": false})
}

type sessionView struct {
	ID          string                   `json:"id"`
	Destination string                   `json:"destination,omitempty"`
	Days        int                      `json:"days"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	Flight      *planner.FlightSelection `json:"flight,omitempty"`
	Hotel       *planner.HotelChoice     `json:"hotel,omitempty"`
}

func newSessionView(id string, s planner.Session) sessionView {
	return sessionView{
		ID:          id,
		Destination: s.Destination,
		Days:        s.Days,
		StartDate:   s.StartDate.Format(dateLayout),
		EndDate:     s.EndDate().Format(dateLayout),
		Flight:      s.Flight,
		Hotel:       s.Hotel,
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &planner.InvalidInputError{Field: "start_date", Reason: "use YYYY-MM-DD"}
	}
	return t, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"tripplanner/logger"
)

var (
	// ErrCityNotFound means geocoding returned no match for the city.
	ErrCityNotFound = errors.New("city not found")
	// ErrWeatherUnavailable wraps any transport or decoding failure.
	ErrWeatherUnavailable = errors.New("weather service unavailable")
)

const (
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	dateLayout = "2006-01-02"
)

// WeatherDay is one day of a forecast.
type WeatherDay struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`
	TempRange string `json:"temp_range"`
}

type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// WeatherProvider returns a daily forecast for city between start and end
// inclusive.
type WeatherProvider interface {
	Forecast(ctx context.Context, city string, start, end time.Time) ([]WeatherDay, error)
}

type WeatherConfig struct {
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// OpenMeteoClient implements WeatherProvider against the Open-Meteo geocoding
// and forecast APIs. Geocoding results are cached in memory.
//
// The client is safe for concurrent use.
type OpenMeteoClient struct {
	session      *http.Client
	geocodeURL   string
	forecastURL  string
	geocodeCache *cache.Cache

	maxAttempts int
	backoff     time.Duration
}

func NewOpenMeteoClient(cfg WeatherConfig) *OpenMeteoClient {
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = DefaultGeocodeURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	return &OpenMeteoClient{
		session:      &http.Client{Timeout: cfg.Timeout},
		geocodeURL:   cfg.GeocodeURL,
		forecastURL:  cfg.ForecastURL,
		geocodeCache: cache.New(cfg.CacheTTL, time.Hour),
		maxAttempts:  4,
		backoff:      200 * time.Millisecond,
	}
}

// normalize collapses whitespace and case so cache keys are stable.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Coordinates resolves city to its best geocoding match.
func (c *OpenMeteoClient) Coordinates(ctx context.Context, city string) (_ Coordinates, err error) {
	defer logger.Time(ctx, "weather.geocode")(&err)

	key := normalize(city)
	if key == "" {
		return Coordinates{}, fmt.Errorf("geocode: %w", ErrCityNotFound)
	}
	if v, ok := c.geocodeCache.Get(key); ok {
		return v.(Coordinates), nil
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, c.geocodeURL, map[string]string{
			"name":  strings.TrimSpace(city),
			"count": "1",
		})
	})
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w: %w", city, ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Coordinates{}, fmt.Errorf("decode geocode response: %w: %w", ErrWeatherUnavailable, err)
	}
	if len(decoded.Results) == 0 {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", city, ErrCityNotFound)
	}

	coords := Coordinates{Lat: decoded.Results[0].Latitude, Lon: decoded.Results[0].Longitude}
	c.geocodeCache.Set(key, coords, cache.DefaultExpiration)
	return coords, nil
}

type forecastResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		TempMax     []*float64 `json:"temperature_2m_max"`
		TempMin     []*float64 `json:"temperature_2m_min"`
		WeatherCode []*int     `json:"weathercode"`
	} `json:"daily"`
}

// Forecast geocodes city and fetches its daily forecast for [start, end].
func (c *OpenMeteoClient) Forecast(ctx context.Context, city string, start, end time.Time) (_ []WeatherDay, err error) {
	defer logger.Time(ctx, "weather.forecast")(&err)

	if end.Before(start) {
		return nil, fmt.Errorf("forecast: end %s before start %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	coords, err := c.Coordinates(ctx, city)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"latitude":   strconv.FormatFloat(coords.Lat, 'f', -1, 64),
		"longitude":  strconv.FormatFloat(coords.Lon, 'f', -1, 64),
		"start_date": start.Format(dateLayout),
		"end_date":   end.Format(dateLayout),
		"daily":      "temperature_2m_max,temperature_2m_min,weathercode",
		"timezone":   "auto",
	}
	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, c.forecastURL, params)
	})
	if err != nil {
		return nil, fmt.Errorf("forecast %q: %w: %w", city, ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w: %w", ErrWeatherUnavailable, err)
	}

	days, err := formatForecast(decoded)
	if err != nil {
		return nil, fmt.Errorf("forecast %q: %w: %w", city, ErrWeatherUnavailable, err)
	}

	slog.DebugContext(ctx, "forecast fetched",
		slog.String("city", city),
		slog.Int("days", len(days)),
	)
	return days, nil
}

func formatForecast(r forecastResponse) ([]WeatherDay, error) {
	d := r.Daily
	n := len(d.Time)
	if len(d.TempMax) != n || len(d.TempMin) != n || len(d.WeatherCode) != n {
		return nil, fmt.Errorf("daily series lengths differ: time=%d max=%d min=%d code=%d",
			n, len(d.TempMax), len(d.TempMin), len(d.WeatherCode))
	}

	out := make([]WeatherDay, 0, n)
	for i := range n {
		condition := "Unknown"
		if d.WeatherCode[i] != nil {
			condition = DescribeWeatherCode(*d.WeatherCode[i])
		}
		out = append(out, WeatherDay{
			Date:      d.Time[i],
			Condition: condition,
			TempRange: fmt.Sprintf("%s–%s °C", formatTemp(d.TempMin[i]), formatTemp(d.TempMax[i])),
		})
	}
	return out, nil
}

func formatTemp(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

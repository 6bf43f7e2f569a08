package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TRIP"

// Dataset sources.
const (
	SourceEmbedded = "embedded"
	SourceJSON     = "json"
	SourcePostgres = "postgres"
)

type Config struct {
	Env string `mapstructure:"env"`

	Server struct {
		Port         string   `mapstructure:"port"`
		Mode         string   `mapstructure:"mode"`
		FrontendURLs []string `mapstructure:"frontend_urls"`
	} `mapstructure:"server"`

	Dataset struct {
		Source string `mapstructure:"source"`
		Dir    string `mapstructure:"dir"`
	} `mapstructure:"dataset"`

	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`

	Planner struct {
		DailyExpense              float64 `mapstructure:"daily_expense"`
		MaxDays                   int     `mapstructure:"max_days"`
		ClampDays                 bool    `mapstructure:"clamp_days"`
		HotelFallbackHonorsRating bool    `mapstructure:"hotel_fallback_honors_rating"`
	} `mapstructure:"planner"`

	Session struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`

	Weather struct {
		GeocodeURL  string        `mapstructure:"geocode_url"`
		ForecastURL string        `mapstructure:"forecast_url"`
		Timeout     time.Duration `mapstructure:"timeout"`
		CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"weather"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.frontend_urls", []string{"http://localhost:5173", "http://localhost:3000"})

	v.SetDefault("dataset.source", SourceEmbedded)
	v.SetDefault("dataset.dir", "")
	v.SetDefault("database.url", "")

	v.SetDefault("planner.daily_expense", 1500)
	v.SetDefault("planner.max_days", 10)
	v.SetDefault("planner.clamp_days", false)
	v.SetDefault("planner.hotel_fallback_honors_rating", false)

	v.SetDefault("session.ttl", 2*time.Hour)

	v.SetDefault("weather.geocode_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("weather.forecast_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("weather.cache_ttl", 24*time.Hour)
}

// Load reads config.yml from the given paths (if present), then applies
// TRIP_* environment overrides, e.g. TRIP_SERVER_PORT or TRIP_PLANNER_MAX_DAYS.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "APP_ENV", envPrefix+"_ENV")
	_ = v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Dataset.Source {
	case SourceEmbedded:
	case SourceJSON:
		if c.Dataset.Dir == "" {
			return fmt.Errorf("config: dataset.dir is required when dataset.source is %q", SourceJSON)
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("config: database.url is required when dataset.source is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown dataset.source %q", c.Dataset.Source)
	}

	if c.Planner.MaxDays < 1 {
		return fmt.Errorf("config: planner.max_days must be at least 1, got %d", c.Planner.MaxDays)
	}
	if c.Planner.DailyExpense < 0 {
		return fmt.Errorf("config: planner.daily_expense must be non-negative, got %v", c.Planner.DailyExpense)
	}
	return nil
}

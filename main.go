package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/dataset"
	"tripplanner/handlers"
	"tripplanner/logger"
	"tripplanner/planner"
	"tripplanner/services"
	"tripplanner/session"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(".", "config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(appLog)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds, err := loadDataset(ctx, cfg, appLog)
	if err != nil {
		appLog.Error("failed to load reference data", slog.Any("error", err))
		os.Exit(1)
	}
	appLog.Info("reference data loaded",
		slog.String("source", cfg.Dataset.Source),
		slog.Int("flights", len(ds.Flights)),
		slog.Int("hotels", len(ds.Hotels)),
		slog.Int("places", len(ds.Places)),
	)

	p, err := planner.New(ds, planner.Options{
		DailyExpense:              cfg.Planner.DailyExpense,
		MaxDays:                   cfg.Planner.MaxDays,
		ClampDays:                 cfg.Planner.ClampDays,
		HotelFallbackHonorsRating: cfg.Planner.HotelFallbackHonorsRating,
	})
	if err != nil {
		appLog.Error("failed to build planner", slog.Any("error", err))
		os.Exit(1)
	}

	weather := services.NewOpenMeteoClient(services.WeatherConfig{
		GeocodeURL:  cfg.Weather.GeocodeURL,
		ForecastURL: cfg.Weather.ForecastURL,
		Timeout:     cfg.Weather.Timeout,
		CacheTTL:    cfg.Weather.CacheTTL,
	})

	h := handlers.New(p, session.NewStore(cfg.Session.TTL), appLog,
		handlers.WithWeather(weather),
		handlers.WithDatasetSource(cfg.Dataset.Source),
	)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(appLog))

	// Trusted proxies (the service usually sits behind one)
	_ = r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.Server.FrontendURLs),
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", logger.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(appLog.Handler(), slog.LevelError),
	}

	go func() {
		appLog.Info("trip planner starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("server failed", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	appLog.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("graceful shutdown failed", slog.Any("error", err))
		return
	}
	appLog.Info("server stopped")
}

func loadDataset(ctx context.Context, cfg config.Config, log *slog.Logger) (*dataset.Dataset, error) {
	switch cfg.Dataset.Source {
	case config.SourceJSON:
		return dataset.Load(cfg.Dataset.Dir)
	case config.SourcePostgres:
		store, err := database.Open(ctx, cfg.Database.URL, log)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadDataset(ctx)
	case config.SourceEmbedded:
		return dataset.LoadEmbedded()
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}

func allowedOrigins(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

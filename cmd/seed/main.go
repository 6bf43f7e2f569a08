// Command seed creates the reference tables and loads flights, hotels and
// places into PostgreSQL from a JSON directory or the embedded data.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/dataset"
	"tripplanner/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dir := flag.String("dir", "", "directory with flights.json, hotels.json and places.json (default: embedded data)")
	flag.Parse()

	cfg, err := config.Load(".", "config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database.url (TRIP_DATABASE_URL or DATABASE_URL) is required")
	}

	appLog := logger.New(cfg.Env, os.Stdout)
	slog.SetDefault(appLog)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ds, err := readDataset(*dir)
	if err != nil {
		log.Fatal(err)
	}

	store, err := database.Open(ctx, cfg.Database.URL, appLog)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	appLog.Info("initializing database schema")
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}

	appLog.Info("seeding database")
	if err := store.Seed(ctx, ds); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	appLog.Info("seeding complete",
		slog.Int("flights", len(ds.Flights)),
		slog.Int("hotels", len(ds.Hotels)),
		slog.Int("places", len(ds.Places)),
	)
}

func readDataset(dir string) (*dataset.Dataset, error) {
	if dir == "" {
		return dataset.LoadEmbedded()
	}
	return dataset.Load(dir)
}

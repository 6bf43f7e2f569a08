package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"tripplanner/dataset"
)

// Store is the PostgreSQL home of the reference dataset. The planner only
// ever reads it; the seeder writes it.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

// ─── Init ─────────────────────────────────────────────────────────────────────

// Open connects to url, retrying the ping while the database comes up.
func Open(ctx context.Context, url string, log *slog.Logger) (*Store, error) {
	if url == "" {
		return nil, fmt.Errorf("open database: url must be non-empty")
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	const attempts = 10
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		log.Warn("waiting for database", slog.Int("attempt", i), slog.Int("of", attempts), slog.Any("error", err))

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, err)
	}

	log.Info("database connected")
	return NewStore(db), nil
}

// ─── Migrations ───────────────────────────────────────────────────────────────

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS flights (
		id             SERIAL PRIMARY KEY,
		airline        TEXT NOT NULL,
		from_city      TEXT NOT NULL,
		to_city        TEXT NOT NULL,
		departure_time TIMESTAMP NOT NULL,
		arrival_time   TIMESTAMP NOT NULL,
		price          NUMERIC(12,2) NOT NULL CHECK (price >= 0)
	)`,

	`CREATE TABLE IF NOT EXISTS hotels (
		id              SERIAL PRIMARY KEY,
		name            TEXT NOT NULL,
		city            TEXT NOT NULL,
		stars           INTEGER NOT NULL CHECK (stars BETWEEN 1 AND 5),
		price_per_night NUMERIC(12,2) NOT NULL CHECK (price_per_night >= 0),
		amenities       TEXT[] NOT NULL DEFAULT '{}'
	)`,

	`CREATE TABLE IF NOT EXISTS places (
		id     SERIAL PRIMARY KEY,
		name   TEXT NOT NULL,
		city   TEXT NOT NULL,
		type   TEXT NOT NULL DEFAULT '',
		rating NUMERIC(3,1) NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(lower(from_city), lower(to_city))`,
	`CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels(lower(city))`,
	`CREATE INDEX IF NOT EXISTS idx_places_city ON places(lower(city))`,
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Seed ─────────────────────────────────────────────────────────────────────

// Seed replaces the stored reference data with ds in one transaction.
func (s *Store) Seed(ctx context.Context, ds *dataset.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `TRUNCATE flights, hotels, places RESTART IDENTITY`); err != nil {
		return fmt.Errorf("seed: truncate: %w", err)
	}

	for _, f := range ds.Flights {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO flights (airline, from_city, to_city, departure_time, arrival_time, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			f.Airline, f.From, f.To, f.DepartureTime, f.ArrivalTime, f.Price); err != nil {
			return fmt.Errorf("seed: insert flight %s %s->%s: %w", f.Airline, f.From, f.To, err)
		}
	}

	for _, h := range ds.Hotels {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO hotels (name, city, stars, price_per_night, amenities)
			VALUES ($1, $2, $3, $4, $5)`,
			h.Name, h.City, h.Stars, h.PricePerNight, pq.Array(h.Amenities)); err != nil {
			return fmt.Errorf("seed: insert hotel %q: %w", h.Name, err)
		}
	}

	for _, p := range ds.Places {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO places (name, city, type, rating)
			VALUES ($1, $2, $3, $4)`,
			p.Name, p.City, p.Type, p.Rating); err != nil {
			return fmt.Errorf("seed: insert place %q: %w", p.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// ─── Load ─────────────────────────────────────────────────────────────────────

// LoadDataset reads the reference tables in insertion order, which keeps
// tie-breaking identical to the JSON files they were seeded from.
func (s *Store) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}

	flights, err := s.db.QueryContext(ctx, `
		SELECT airline, from_city, to_city, departure_time, arrival_time, price
		FROM flights ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	defer flights.Close()
	for flights.Next() {
		var f dataset.FlightRecord
		if err := flights.Scan(&f.Airline, &f.From, &f.To, &f.DepartureTime, &f.ArrivalTime, &f.Price); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		ds.Flights = append(ds.Flights, f)
	}
	if err := flights.Err(); err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}

	hotels, err := s.db.QueryContext(ctx, `
		SELECT name, city, stars, price_per_night, amenities
		FROM hotels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}
	defer hotels.Close()
	for hotels.Next() {
		var h dataset.HotelRecord
		if err := hotels.Scan(&h.Name, &h.City, &h.Stars, &h.PricePerNight, pq.Array(&h.Amenities)); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		ds.Hotels = append(ds.Hotels, h)
	}
	if err := hotels.Err(); err != nil {
		return nil, fmt.Errorf("load hotels: %w", err)
	}

	places, err := s.db.QueryContext(ctx, `
		SELECT name, city, type, rating
		FROM places ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}
	defer places.Close()
	for places.Next() {
		var p dataset.PlaceRecord
		if err := places.Scan(&p.Name, &p.City, &p.Type, &p.Rating); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		ds.Places = append(ds.Places, p)
	}
	if err := places.Err(); err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

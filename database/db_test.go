package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/dataset"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func sampleDataset() *dataset.Dataset {
	dep := time.Date(2025, 12, 20, 6, 0, 0, 0, time.UTC)
	return &dataset.Dataset{
		Flights: []dataset.FlightRecord{{
			Airline: "IndiGo", From: "Hyderabad", To: "Goa",
			DepartureTime: dep, ArrivalTime: dep.Add(75 * time.Minute), Price: 3900,
		}},
		Hotels: []dataset.HotelRecord{{Name: "Panjim Inn", City: "Goa", Stars: 3, PricePerNight: 2500, Amenities: []string{"wifi"}}},
		Places: []dataset.PlaceRecord{{Name: "Baga Beach", City: "Goa", Type: "beach", Rating: 4.5}},
	}
}

func TestMigrate(t *testing.T) {
	store, mock := newMockStore(t)
	for range migrations {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed(t *testing.T) {
	store, mock := newMockStore(t)
	ds := sampleDataset()
	f := ds.Flights[0]

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE flights, hotels, places").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO flights").
		WithArgs(f.Airline, f.From, f.To, f.DepartureTime, f.ArrivalTime, f.Price).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO hotels").
		WithArgs("Panjim Inn", "Goa", 3, 2500.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO places").
		WithArgs("Baga Beach", "Goa", "beach", 4.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Seed(context.Background(), ds))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO flights").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Seed(context.Background(), sampleDataset())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDataset(t *testing.T) {
	store, mock := newMockStore(t)
	want := sampleDataset()
	f := want.Flights[0]

	mock.ExpectQuery("SELECT airline, from_city").WillReturnRows(
		sqlmock.NewRows([]string{"airline", "from_city", "to_city", "departure_time", "arrival_time", "price"}).
			AddRow(f.Airline, f.From, f.To, f.DepartureTime, f.ArrivalTime, f.Price))
	mock.ExpectQuery("SELECT name, city, stars").WillReturnRows(
		sqlmock.NewRows([]string{"name", "city", "stars", "price_per_night", "amenities"}).
			AddRow("Panjim Inn", "Goa", 3, 2500.0, "{wifi}"))
	mock.ExpectQuery("SELECT name, city, type").WillReturnRows(
		sqlmock.NewRows([]string{"name", "city", "type", "rating"}).
			AddRow("Baga Beach", "Goa", "beach", 4.5))

	got, err := store.LoadDataset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDatasetRejectsInvalidRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT airline").WillReturnRows(
		sqlmock.NewRows([]string{"airline", "from_city", "to_city", "departure_time", "arrival_time", "price"}))
	mock.ExpectQuery("SELECT name, city, stars").WillReturnRows(
		sqlmock.NewRows([]string{"name", "city", "stars", "price_per_night", "amenities"}).
			AddRow("Nowhere Inn", "", 3, 100.0, "{}"))
	mock.ExpectQuery("SELECT name, city, type").WillReturnRows(
		sqlmock.NewRows([]string{"name", "city", "type", "rating"}))

	_, err := store.LoadDataset(context.Background())
	assert.Error(t, err)
}

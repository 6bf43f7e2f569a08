package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripplanner/planner"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(time.Hour)
	s.now = func() time.Time { return time.Date(2025, 12, 20, 18, 30, 0, 0, time.UTC) }

	id, trip := s.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, planner.DefaultDays, trip.Days)
	assert.Equal(t, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC), trip.StartDate)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, trip, got)
	assert.Equal(t, 1, s.Len())
}

func TestGetUnknown(t *testing.T) {
	s := NewStore(time.Hour)
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update("missing", func(*planner.Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	s := NewStore(time.Hour)
	id, _ := s.Create()

	got, err := s.Update(id, func(trip *planner.Session) error {
		trip.Destination = "Goa"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Goa", got.Destination)

	boom := errors.New("boom")
	_, err = s.Update(id, func(*planner.Session) error { return boom })
	assert.ErrorIs(t, err, boom)

	again, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Goa", again.Destination)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore(time.Hour)
	id, _ := s.Create()

	snap, err := s.Get(id)
	require.NoError(t, err)
	snap.Days = 9

	fresh, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultDays, fresh.Days)
}

func TestSnapshotSharesNoPointers(t *testing.T) {
	s := NewStore(time.Hour)
	id, _ := s.Create()

	_, err := s.Update(id, func(trip *planner.Session) error {
		trip.Hotel = &planner.HotelChoice{Name: "Panjim Inn", Price: 100, Rating: 3, Amenities: []string{"wifi"}}
		trip.Flight = &planner.FlightSelection{FlightChoice: planner.FlightChoice{Airline: "Akasa", Price: 3900}}
		trip.LastHotelQuery = &planner.HotelQuery{City: "Goa", MaxPrice: 3000}
		return nil
	})
	require.NoError(t, err)

	snap, err := s.Get(id)
	require.NoError(t, err)
	snap.Hotel.Price = 1
	snap.Hotel.Amenities[0] = "pool"
	snap.Flight.Price = 1
	snap.LastHotelQuery.MaxPrice = 1

	fresh, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fresh.Hotel.Price)
	assert.Equal(t, []string{"wifi"}, fresh.Hotel.Amenities)
	assert.Equal(t, 3900.0, fresh.Flight.Price)
	assert.Equal(t, 3000.0, fresh.LastHotelQuery.MaxPrice)
}

func TestConcurrentUpdates(t *testing.T) {
	s := NewStore(time.Hour)
	id, _ := s.Create()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(id, func(trip *planner.Session) error {
				trip.Days++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, planner.DefaultDays+50, got.Days)
}

func TestExpiry(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	id, _ := s.Create()

	time.Sleep(60 * time.Millisecond)
	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewStore(time.Hour)
	id, _ := s.Create()
	s.Delete(id)
	_, err := s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

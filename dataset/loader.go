package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed data/*.json
var embedded embed.FS

const (
	FlightsFile = "flights.json"
	HotelsFile  = "hotels.json"
	PlacesFile  = "places.json"
)

// Wire shapes of the reference JSON files.
type flightJSON struct {
	Airline       string  `json:"airline"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
}

type hotelJSON struct {
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Stars         int      `json:"stars"`
	PricePerNight float64  `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
}

type placeJSON struct {
	Name   string  `json:"name"`
	City   string  `json:"city"`
	Type   string  `json:"type"`
	Rating float64 `json:"rating"`
}

// LoadEmbedded returns the reference data compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("load embedded dataset: %w", err)
	}
	return LoadFS(sub)
}

// Load reads flights.json, hotels.json and places.json from dir.
func Load(dir string) (*Dataset, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("load dataset: directory must be non-empty")
	}
	return LoadFS(os.DirFS(filepath.Clean(dir)))
}

// LoadFS reads the three reference files from fsys and validates every record.
func LoadFS(fsys fs.FS) (*Dataset, error) {
	var (
		rawFlights []flightJSON
		rawHotels  []hotelJSON
		rawPlaces  []placeJSON
	)

	if err := readJSON(fsys, FlightsFile, &rawFlights); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, HotelsFile, &rawHotels); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, PlacesFile, &rawPlaces); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Flights: make([]FlightRecord, 0, len(rawFlights)),
		Hotels:  make([]HotelRecord, 0, len(rawHotels)),
		Places:  make([]PlaceRecord, 0, len(rawPlaces)),
	}

	for i, f := range rawFlights {
		rec, err := f.toRecord()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %s item %d: %w", FlightsFile, i+1, err)
		}
		ds.Flights = append(ds.Flights, rec)
	}
	for i, h := range rawHotels {
		rec, err := h.toRecord()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %s item %d: %w", HotelsFile, i+1, err)
		}
		ds.Hotels = append(ds.Hotels, rec)
	}
	for i, p := range rawPlaces {
		rec, err := p.toRecord()
		if err != nil {
			return nil, fmt.Errorf("load dataset: %s item %d: %w", PlacesFile, i+1, err)
		}
		ds.Places = append(ds.Places, rec)
	}

	return ds, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("load dataset: read %q: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("load dataset: parse %q: %w", name, err)
	}
	return nil
}

func (f flightJSON) toRecord() (FlightRecord, error) {
	dep, err := ParseTime(f.DepartureTime)
	if err != nil {
		return FlightRecord{}, fmt.Errorf("departure_time: %w", err)
	}
	arr, err := ParseTime(f.ArrivalTime)
	if err != nil {
		return FlightRecord{}, fmt.Errorf("arrival_time: %w", err)
	}
	rec := FlightRecord{
		Airline:       f.Airline,
		From:          f.From,
		To:            f.To,
		DepartureTime: dep,
		ArrivalTime:   arr,
		Price:         f.Price,
	}
	return rec, rec.validate()
}

func (h hotelJSON) toRecord() (HotelRecord, error) {
	amenities := h.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	rec := HotelRecord{
		Name:          h.Name,
		City:          h.City,
		Stars:         h.Stars,
		PricePerNight: h.PricePerNight,
		Amenities:     amenities,
	}
	return rec, rec.validate()
}

func (p placeJSON) toRecord() (PlaceRecord, error) {
	rec := PlaceRecord{Name: p.Name, City: p.City, Type: p.Type, Rating: p.Rating}
	return rec, rec.validate()
}

var timeLayouts = []string{
	TimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseTime accepts the timestamp layouts found in reference data.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

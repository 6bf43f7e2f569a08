package dataset

import (
	"fmt"
	"strings"
)

func (f FlightRecord) validate() error {
	if strings.TrimSpace(f.From) == "" || strings.TrimSpace(f.To) == "" {
		return fmt.Errorf("from and to must be non-empty")
	}
	if f.Price < 0 {
		return fmt.Errorf("negative price %v", f.Price)
	}
	return nil
}

func (h HotelRecord) validate() error {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.City) == "" {
		return fmt.Errorf("name and city must be non-empty")
	}
	if h.Stars < 1 || h.Stars > 5 {
		return fmt.Errorf("stars must be between 1 and 5, got %d", h.Stars)
	}
	if h.PricePerNight < 0 {
		return fmt.Errorf("negative price_per_night %v", h.PricePerNight)
	}
	return nil
}

func (p PlaceRecord) validate() error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("name and city must be non-empty")
	}
	return nil
}

// Validate checks every record the way the JSON loader does. Sources other
// than the JSON files (the database) call it after reading.
func (d *Dataset) Validate() error {
	for i, f := range d.Flights {
		if err := f.validate(); err != nil {
			return fmt.Errorf("flight %d: %w", i+1, err)
		}
	}
	for i := range d.Hotels {
		if err := d.Hotels[i].validate(); err != nil {
			return fmt.Errorf("hotel %d: %w", i+1, err)
		}
		if d.Hotels[i].Amenities == nil {
			d.Hotels[i].Amenities = []string{}
		}
	}
	for i, p := range d.Places {
		if err := p.validate(); err != nil {
			return fmt.Errorf("place %d: %w", i+1, err)
		}
	}
	return nil
}

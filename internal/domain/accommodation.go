package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccommodationStatus tracks whether a stay is merely planned or actually booked.
type AccommodationStatus string

const (
	AccommodationPlanned AccommodationStatus = "planned"
	AccommodationBooked  AccommodationStatus = "booked"
)

// Valid reports whether s is one of the known statuses.
func (s AccommodationStatus) Valid() bool {
	return s == AccommodationPlanned || s == AccommodationBooked
}

// Accommodation is where the traveller sleeps on a given day.
// At most one accommodation exists per trip day (enforced by a unique
// constraint); writing one for a day that already has one replaces it.
// CheckIn/CheckOut are zero-padded "HH:mm" strings.
type Accommodation struct {
	ID        uuid.UUID           `json:"id"`
	TripDayID uuid.UUID           `json:"trip_day_id"`
	Name      string              `json:"name"`
	Status    AccommodationStatus `json:"status"`
	Cost      *float64            `json:"cost,omitempty"`
	Link      string              `json:"link,omitempty"`
	CheckIn   *string             `json:"check_in,omitempty"`
	CheckOut  *string             `json:"check_out,omitempty"`
	Location  *Location           `json:"location,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

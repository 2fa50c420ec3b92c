// Package domain contains the core data types and the pure planning
// algorithms for the Tripfolio API: day-range reconciliation and the
// per-day timeline/adjacency rules. This package has no knowledge of
// HTTP or SQL and is imported by every other internal package.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single multi-day trip.
// A trip is the top-level aggregate; every other entity hangs off it and is
// only reachable through its owning user.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"-"`
	Name        string     `json:"name"`
	StartDate   time.Time  `json:"start_date"` // UTC midnight
	EndDate     time.Time  `json:"end_date"`   // UTC midnight, >= StartDate
	HeroImageID *uuid.UUID `json:"hero_image_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Location is an optional coordinate + label attached to accommodations and
// plan items. The three fields are all-or-nothing: a partially filled
// location is a validation error.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label"`
}

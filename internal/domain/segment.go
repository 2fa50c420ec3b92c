package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransportMode is how the traveller covers a segment.
type TransportMode string

const (
	TransportWalk    TransportMode = "walk"
	TransportBicycle TransportMode = "bicycle"
	TransportCar     TransportMode = "car"
	TransportBus     TransportMode = "bus"
	TransportTrain   TransportMode = "train"
	TransportPlane   TransportMode = "plane"
	TransportBoat    TransportMode = "boat"
	TransportOther   TransportMode = "other"
)

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportWalk, TransportBicycle, TransportCar, TransportBus,
		TransportTrain, TransportPlane, TransportBoat, TransportOther:
		return true
	}
	return false
}

// TravelSegment is the movement between two consecutive anchors of a day's
// timeline. The adjacency requirement is enforced at write time, so the
// stored segments of a day always form edges of a simple path.
type TravelSegment struct {
	ID              uuid.UUID     `json:"id"`
	TripDayID       uuid.UUID     `json:"trip_day_id"`
	From            AnchorRef     `json:"from"`
	To              AnchorRef     `json:"to"`
	Mode            TransportMode `json:"mode"`
	DurationMinutes int           `json:"duration_minutes"`
	DistanceMeters  *int          `json:"distance_meters,omitempty"`
	Link            string        `json:"link,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

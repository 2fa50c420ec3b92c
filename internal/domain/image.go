package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripImage is gallery metadata for one image attached to a trip. The image
// bytes live in external storage under FileKey; this service only tracks
// metadata and ordering. SortOrder is the zero-based gallery position.
type TripImage struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	FileKey   string    `json:"file_key"`
	Alt       string    `json:"alt,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

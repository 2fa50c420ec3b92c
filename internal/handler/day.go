package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripfolio/backend/internal/domain"
)

// dayResponse is the wire representation of one trip day with its content.
// Items are in timeline order.
type dayResponse struct {
	ID            uuid.UUID              `json:"id"`
	TripID        uuid.UUID              `json:"trip_id"`
	Date          openapi_types.Date     `json:"date"`
	DayIndex      int                    `json:"day_index"`
	Accommodation *domain.Accommodation  `json:"accommodation,omitempty"`
	Items         []domain.DayPlanItem   `json:"items"`
	Segments      []domain.TravelSegment `json:"segments"`
}

// ListDays handles GET /api/trips/{tripID}/days.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}

	days, err := s.svc.Days.ListByTrip(r.Context(), uid, tripID)
	if err != nil {
		serviceError(w, err, "trip not found")
		return
	}

	data := make([]dayResponse, len(days))
	for i, d := range days {
		data[i] = dayResponse{
			ID:            d.ID,
			TripID:        d.TripID,
			Date:          openapi_types.Date{Time: d.Date},
			DayIndex:      d.DayIndex,
			Accommodation: d.Accommodation,
			Items:         d.Items,
			Segments:      d.Segments,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTimeline handles GET /api/trips/{tripID}/days/{dayID}/timeline.
// The timeline is the ordered anchor list travel segments connect: the
// previous day's accommodation, the day's plan items, the day's own
// accommodation.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(r, "tripID")
	if !ok {
		notFound(w, "trip not found")
		return
	}
	dayID, ok := pathUUID(r, "dayID")
	if !ok {
		notFound(w, "day not found")
		return
	}

	timeline, err := s.svc.Timeline.Get(r.Context(), uid, tripID, dayID)
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": timeline})
}

package handler

import (
	"net/http"

	"github.com/tripfolio/backend/internal/domain"
)

// accommodationRequest is the body of PUT .../accommodation. Writing one for
// a day that already has a stay replaces it.
type accommodationRequest struct {
	Name     string                     `json:"name"`
	Status   domain.AccommodationStatus `json:"status"`
	Cost     *float64                   `json:"cost,omitempty"`
	Link     string                     `json:"link,omitempty"`
	CheckIn  *string                    `json:"check_in,omitempty"`
	CheckOut *string                    `json:"check_out,omitempty"`
	Location *domain.Location           `json:"location,omitempty"`
}

// PutAccommodation handles PUT /api/trips/{tripID}/days/{dayID}/accommodation.
func (s *Server) PutAccommodation(w http.ResponseWriter, r *http.Request) {
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
	var req accommodationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	acc, err := s.svc.Accommodations.Upsert(r.Context(), uid, tripID, domain.Accommodation{
		TripDayID: dayID,
		Name:      req.Name,
		Status:    req.Status,
		Cost:      req.Cost,
		Link:      req.Link,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Location:  req.Location,
	})
	if err != nil {
		serviceError(w, err, "day not found")
		return
	}

	writeJSON(w, http.StatusOK, acc)
}

// DeleteAccommodation handles DELETE /api/trips/{tripID}/days/{dayID}/accommodation.
// Travel segments anchored to the stay are removed with it.
func (s *Server) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
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

	if err := s.svc.Accommodations.Delete(r.Context(), uid, tripID, dayID); err != nil {
		serviceError(w, err, "accommodation not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
